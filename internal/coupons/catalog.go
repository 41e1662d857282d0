package coupons

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

// Issuability detail kinds reported under STATE_CONFLICT.
const (
	stateKindInvalid    = "INVALID_STATE"
	stateKindNotYetOpen = "NOT_YET_OPEN"
	stateKindClosed     = "CLOSED"
)

type couponLookup interface {
	FindCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
}

// Catalog answers read queries about coupon definitions.
type Catalog struct {
	repo couponLookup
}

// NewCatalog constructs a catalog over the provided lookup.
func NewCatalog(repo couponLookup) *Catalog {
	return &Catalog{repo: repo}
}

// Get loads a coupon definition.
func (c *Catalog) Get(ctx context.Context, couponID uuid.UUID) (*models.Coupon, error) {
	coupon, err := c.repo.FindCoupon(ctx, couponID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	return coupon, nil
}

// IsOpenForIssuance reports whether the coupon can be claimed at the given
// instant. A nil return means open; otherwise the typed error explains why.
// Both window bounds are optional; a missing bound is unbounded on that side.
func IsOpenForIssuance(coupon *models.Coupon, now time.Time) error {
	if coupon.Status != enums.CouponStatusActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon is not active").
			WithDetails(map[string]string{"kind": stateKindInvalid})
	}
	if coupon.IssueStartsAt != nil && now.Before(*coupon.IssueStartsAt) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "issuance has not opened yet").
			WithDetails(map[string]string{"kind": stateKindNotYetOpen})
	}
	if coupon.IssueEndsAt != nil && now.After(*coupon.IssueEndsAt) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "issuance window closed").
			WithDetails(map[string]string{"kind": stateKindClosed})
	}
	return nil
}
