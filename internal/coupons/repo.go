package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// Repository encapsulates coupon and issuance persistence. The *ForUpdate
// variants take row locks and must be called inside a transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a coupons repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// withRowLock adds FOR UPDATE on dialects that support it. sqlite (used by
// the test suite) serializes writers itself and rejects the clause.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateCoupon inserts a coupon definition.
func (r *Repository) CreateCoupon(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		return nil, err
	}
	return coupon, nil
}

// FindCoupon loads a coupon by its UUID.
func (r *Repository) FindCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindCouponTx loads a coupon by its UUID inside tx, without locking.
func (r *Repository) FindCouponTx(tx *gorm.DB, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := tx.First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// UpdateCoupon persists the full coupon row.
func (r *Repository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// DeleteCoupon removes the coupon; issuances cascade in Postgres.
func (r *Repository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Coupon{}).Error
}

// ListByStore returns a store's coupons, optionally restricted to active ones.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]models.Coupon, error) {
	query := r.db.WithContext(ctx).
		Where("store_id = ?", storeID)
	if activeOnly {
		query = query.Where("status = ?", enums.CouponStatusActive)
	}

	var records []models.Coupon
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetCouponForUpdate locks and returns the coupon row inside tx. The lock
// serializes concurrent issuance against the same coupon.
func (r *Repository) GetCouponForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := withRowLock(tx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// CountIssuances counts every issuance row for the coupon inside tx.
func (r *Repository) CountIssuances(tx *gorm.DB, couponID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.CouponIssuance{}).
		Where("coupon_id = ?", couponID).
		Count(&count).Error
	return count, err
}

// CountUserIssuances counts one user's issuance rows for the coupon inside tx.
func (r *Repository) CountUserIssuances(tx *gorm.DB, couponID, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.CouponIssuance{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	return count, err
}

// InsertIssuance persists a fresh issuance row inside tx.
func (r *Repository) InsertIssuance(tx *gorm.DB, issuance *models.CouponIssuance) error {
	if issuance.ID == uuid.Nil {
		issuance.ID = uuid.New()
	}
	return tx.Create(issuance).Error
}

// HasIssuances reports whether any issuance exists for the coupon.
func (r *Repository) HasIssuances(ctx context.Context, couponID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CouponIssuance{}).
		Where("coupon_id = ?", couponID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetIssuanceForUpdate locks and returns the issuance owned by userID.
func (r *Repository) GetIssuanceForUpdate(tx *gorm.DB, id, userID uuid.UUID) (*models.CouponIssuance, error) {
	var issuance models.CouponIssuance
	if err := withRowLock(tx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&issuance).Error; err != nil {
		return nil, err
	}
	return &issuance, nil
}

// SaveIssuance persists the full issuance row inside tx.
func (r *Repository) SaveIssuance(tx *gorm.DB, issuance *models.CouponIssuance) error {
	return tx.Save(issuance).Error
}

// ActiveCodesForStore returns the verification codes of currently ACTIVATED
// issuances for the store, via the owning coupon.
func (r *Repository) ActiveCodesForStore(tx *gorm.DB, storeID uuid.UUID) ([]string, error) {
	var codes []string
	err := tx.Table("coupon_issuances ci").
		Select("ci.verification_code").
		Joins("JOIN coupons c ON c.id = ci.coupon_id").
		Where("c.store_id = ? AND ci.status = ? AND ci.verification_code IS NOT NULL", storeID, enums.IssuanceStatusActivated).
		Scan(&codes).Error
	return codes, err
}

// FindActivatedByCodeForUpdate locks every ACTIVATED issuance carrying the
// code at the store. Callers treat zero rows as not-found and more than one
// as ambiguous.
func (r *Repository) FindActivatedByCodeForUpdate(tx *gorm.DB, storeID uuid.UUID, code string) ([]models.CouponIssuance, error) {
	sub := tx.Session(&gorm.Session{NewDB: true}).
		Table("coupons").
		Select("id").
		Where("store_id = ?", storeID)

	var records []models.CouponIssuance
	err := withRowLock(tx).
		Where("coupon_id IN (?) AND status = ? AND verification_code = ?", sub, enums.IssuanceStatusActivated, code).
		Find(&records).Error
	return records, err
}

// ListIssuancesByUser returns a user's issuances newest-first with the
// owning coupon preloaded.
func (r *Repository) ListIssuancesByUser(ctx context.Context, userID uuid.UUID) ([]models.CouponIssuance, error) {
	var records []models.CouponIssuance
	if err := r.db.WithContext(ctx).
		Preload("Coupon").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ExpireOverdue demotes the listed rows to EXPIRED when their expiry has
// passed and they are not yet terminal. Used by the lazy expiry pass on read.
func (r *Repository) ExpireOverdue(ctx context.Context, ids []uuid.UUID, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CouponIssuance{}).
		Where("id IN ? AND status IN ? AND expires_at < ?", ids, []enums.IssuanceStatus{enums.IssuanceStatusUnused, enums.IssuanceStatusActivated}, now).
		Updates(map[string]any{
			"status":            enums.IssuanceStatusExpired,
			"verification_code": nil,
		}).Error
}
