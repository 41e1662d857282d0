package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type stubOwnership struct {
	ownerID uuid.UUID
	storeID uuid.UUID
}

func (s stubOwnership) RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error) {
	if storeID != s.storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if actorID != s.ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store belongs to another owner")
	}
	return &models.Store{ID: storeID, OwnerID: s.ownerID}, nil
}

func buildCouponService(t *testing.T, ownerID, storeID uuid.UUID) (Service, *gorm.DB) {
	t.Helper()

	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, NewCatalog(repo), stubOwnership{ownerID: ownerID, storeID: storeID})
	require.NoError(t, err)
	return svc, db
}

func TestCreateCouponDefaults(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, _ := buildCouponService(t, ownerID, storeID)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateCouponInput{
		Title:         "  Lunch Set Discount  ",
		BenefitType:   string(enums.BenefitTypeAmount),
		BenefitValue:  decimal.NewFromInt(2000),
		TotalQuantity: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lunch Set Discount", dto.Title)
	assert.Equal(t, 1, dto.LimitPerUser)
	assert.Equal(t, enums.CouponStatusDraft, dto.Status)
}

func TestCreateCouponRejectsBadInput(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, _ := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerID, storeID, CreateCouponInput{
		BenefitType:   string(enums.BenefitTypeGift),
		TotalQuantity: 10,
	})
	requireErrorCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, ownerID, storeID, CreateCouponInput{
		Title:         "Mystery",
		BenefitType:   "raffle",
		TotalQuantity: 10,
	})
	requireErrorCode(t, err, pkgerrors.CodeValidation)

	starts := time.Now().UTC()
	ends := starts.Add(-time.Hour)
	_, err = svc.Create(ctx, ownerID, storeID, CreateCouponInput{
		Title:         "Backwards Window",
		BenefitType:   string(enums.BenefitTypeGift),
		TotalQuantity: 10,
		IssueStartsAt: &starts,
		IssueEndsAt:   &ends,
	})
	requireErrorCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, uuid.New(), storeID, CreateCouponInput{
		Title:         "Not My Store",
		BenefitType:   string(enums.BenefitTypeGift),
		TotalQuantity: 10,
	})
	requireErrorCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateCouponFreezesQuantityOnceClaimed(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, db := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()

	coupon := newCoupon(t, db, 50, 1, func(c *models.Coupon) {
		c.StoreID = storeID
	})

	// no claims yet, quantity may still move
	qty := 60
	dto, err := svc.Update(ctx, ownerID, coupon.ID, UpdateCouponInput{TotalQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 60, dto.TotalQuantity)

	require.NoError(t, db.Create(&models.CouponIssuance{
		ID:        uuid.New(),
		CouponID:  coupon.ID,
		UserID:    uuid.New(),
		Status:    enums.IssuanceStatusUnused,
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}).Error)

	qty = 70
	_, err = svc.Update(ctx, ownerID, coupon.ID, UpdateCouponInput{TotalQuantity: &qty})
	requireErrorCode(t, err, pkgerrors.CodeConflict)

	// other fields stay editable
	title := "Renamed"
	dto, err = svc.Update(ctx, ownerID, coupon.ID, UpdateCouponInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", dto.Title)
	assert.Equal(t, 60, dto.TotalQuantity)
}

func TestUpdateCouponStatusTransitions(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, db := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()

	coupon := newCoupon(t, db, 10, 1, func(c *models.Coupon) {
		c.StoreID = storeID
		c.Status = enums.CouponStatusDraft
	})

	status := string(enums.CouponStatusActive)
	dto, err := svc.Update(ctx, ownerID, coupon.ID, UpdateCouponInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, enums.CouponStatusActive, dto.Status)

	bogus := "archived"
	_, err = svc.Update(ctx, ownerID, coupon.ID, UpdateCouponInput{Status: &bogus})
	requireErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteCouponOwnerOnly(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, db := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()

	coupon := newCoupon(t, db, 10, 1, func(c *models.Coupon) {
		c.StoreID = storeID
	})

	err := svc.Delete(ctx, uuid.New(), coupon.ID)
	requireErrorCode(t, err, pkgerrors.CodeForbidden)

	require.NoError(t, svc.Delete(ctx, ownerID, coupon.ID))

	err = db.First(&models.Coupon{}, "id = ?", coupon.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByStoreHidesInactiveFromCustomers(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, db := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()

	newCoupon(t, db, 10, 1, func(c *models.Coupon) {
		c.StoreID = storeID
		c.Status = enums.CouponStatusActive
	})
	newCoupon(t, db, 10, 1, func(c *models.Coupon) {
		c.StoreID = storeID
		c.Status = enums.CouponStatusDraft
	})

	asOwner, err := svc.ListByStore(ctx, &ownerID, storeID)
	require.NoError(t, err)
	assert.Len(t, asOwner, 2)

	asCustomer, err := svc.ListByStore(ctx, nil, storeID)
	require.NoError(t, err)
	require.Len(t, asCustomer, 1)
	assert.Equal(t, enums.CouponStatusActive, asCustomer[0].Status)
}

func TestListMineDemotesOverdueIssuances(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	svc, db := buildCouponService(t, ownerID, storeID)
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()

	coupon := newCoupon(t, db, 10, 5, func(c *models.Coupon) {
		c.StoreID = storeID
	})

	code := "3141"
	activatedAt := now.Add(-40 * 24 * time.Hour)
	stale := &models.CouponIssuance{
		ID:               uuid.New(),
		CouponID:         coupon.ID,
		UserID:           userID,
		Status:           enums.IssuanceStatusActivated,
		VerificationCode: &code,
		IssuedAt:         activatedAt,
		ActivatedAt:      &activatedAt,
		ExpiresAt:        now.Add(-10 * 24 * time.Hour),
	}
	fresh := &models.CouponIssuance{
		ID:        uuid.New(),
		CouponID:  coupon.ID,
		UserID:    userID,
		Status:    enums.IssuanceStatusUnused,
		IssuedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)

	list, err := svc.ListMine(ctx, userID, now)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[uuid.UUID]IssuanceDTO{}
	for _, dto := range list {
		byID[dto.ID] = dto
	}
	assert.Equal(t, enums.IssuanceStatusExpired, byID[stale.ID].Status)
	assert.Equal(t, enums.IssuanceStatusUnused, byID[fresh.ID].Status)

	var stored models.CouponIssuance
	require.NoError(t, db.First(&stored, "id = ?", stale.ID).Error)
	assert.Equal(t, enums.IssuanceStatusExpired, stored.Status)
	assert.Nil(t, stored.VerificationCode)
}
