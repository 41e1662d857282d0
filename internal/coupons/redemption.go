package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/metrics"
)

// RedemptionVerifier is the store-side entry point: look up the ACTIVATED
// issuance carrying the code at this store and consume it. The lookup and
// the Use transition share one transaction and one row lock, so of two
// concurrent redeemers exactly one wins.
type RedemptionVerifier struct {
	db      txRunner
	repo    *Repository
	machine *ActivationStateMachine
	metrics *metrics.CouponMetrics
}

// NewRedemptionVerifier builds a verifier with the provided dependencies.
func NewRedemptionVerifier(db txRunner, repo *Repository, machine *ActivationStateMachine, m *metrics.CouponMetrics) (*RedemptionVerifier, error) {
	if db == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if machine == nil {
		return nil, fmt.Errorf("activation state machine required")
	}
	return &RedemptionVerifier{db: db, repo: repo, machine: machine, metrics: m}, nil
}

// Redeem consumes the issuance presenting the code at the store. More than
// one match is ambiguous and refused outright; the clerk re-asks for a code
// rather than the system guessing.
func (v *RedemptionVerifier) Redeem(ctx context.Context, storeID uuid.UUID, code string, now time.Time) error {
	err := v.redeem(ctx, storeID, code, now)
	v.metrics.IncRedemption(redemptionOutcome(err))
	return err
}

func (v *RedemptionVerifier) redeem(ctx context.Context, storeID uuid.UUID, code string, now time.Time) error {
	code = strings.TrimSpace(code)
	if len(code) != 4 {
		return pkgerrors.New(pkgerrors.CodeValidation, "code must be 4 digits")
	}

	var expired bool
	err := v.db.WithTx(ctx, func(tx *gorm.DB) error {
		matches, err := v.repo.FindActivatedByCodeForUpdate(tx, storeID, code)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup code")
		}

		switch len(matches) {
		case 0:
			return pkgerrors.New(pkgerrors.CodeNotFound, "no activated coupon for code")
		case 1:
		default:
			return pkgerrors.New(pkgerrors.CodeConflict, "ambiguous verification code")
		}

		issuance := &matches[0]
		if now.After(issuance.ExpiresAt) {
			issuance.Status = enums.IssuanceStatusExpired
			issuance.VerificationCode = nil
			if err := v.repo.SaveIssuance(tx, issuance); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire issuance")
			}
			// Return nil so the EXPIRED write commits; the caller still
			// sees the expiry as an error.
			expired = true
			return nil
		}
		return v.machine.Use(tx, issuance, now)
	})
	if err != nil {
		return err
	}
	if expired {
		return pkgerrors.New(pkgerrors.CodeExpired, "coupon expired")
	}
	return nil
}

func redemptionOutcome(err error) string {
	if err == nil {
		return "used"
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeNotFound:
		return "not_found"
	case pkgerrors.CodeConflict:
		return "conflict"
	case pkgerrors.CodeExpired:
		return "expired"
	case pkgerrors.CodeValidation:
		return "invalid"
	default:
		return "error"
	}
}
