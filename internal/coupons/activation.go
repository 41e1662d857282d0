package coupons

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/config"
	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/metrics"
)

// ActivationStateMachine governs the lifecycle of one issuance:
// UNUSED -> ACTIVATED -> USED, with lazy EXPIRED from either live state.
// Every transition runs under a row lock on the issuance.
type ActivationStateMachine struct {
	db        txRunner
	repo      *Repository
	couponCfg config.CouponConfig
	metrics   *metrics.CouponMetrics

	// codeFn is swappable in tests; defaults to uniform random 4 digits.
	codeFn func() string
}

// NewActivationStateMachine builds the state machine with the provided
// dependencies.
func NewActivationStateMachine(db txRunner, repo *Repository, couponCfg config.CouponConfig, m *metrics.CouponMetrics) (*ActivationStateMachine, error) {
	if db == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &ActivationStateMachine{
		db:        db,
		repo:      repo,
		couponCfg: couponCfg,
		metrics:   m,
		codeFn:    randomCode,
	}, nil
}

func randomCode() string {
	return fmt.Sprintf("%04d", rand.IntN(10000))
}

// Activate moves the user's issuance to ACTIVATED and returns the fresh
// verification code. Already-activated issuances conflict rather than
// reissue, so a code shown to a clerk never silently changes.
func (a *ActivationStateMachine) Activate(ctx context.Context, issuanceID, userID uuid.UUID, now time.Time) (string, error) {
	code, err := a.activate(ctx, issuanceID, userID, now)
	a.metrics.IncActivation(activationOutcome(err))
	return code, err
}

func (a *ActivationStateMachine) activate(ctx context.Context, issuanceID, userID uuid.UUID, now time.Time) (string, error) {
	var code string
	var expired bool
	err := a.db.WithTx(ctx, func(tx *gorm.DB) error {
		issuance, err := a.repo.GetIssuanceForUpdate(tx, issuanceID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "issuance not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock issuance")
		}

		switch issuance.Status {
		case enums.IssuanceStatusUsed:
			return pkgerrors.New(pkgerrors.CodeConflict, "already used")
		case enums.IssuanceStatusActivated:
			return pkgerrors.New(pkgerrors.CodeConflict, "already activated")
		case enums.IssuanceStatusExpired:
			return pkgerrors.New(pkgerrors.CodeExpired, "coupon expired")
		}

		if now.After(issuance.ExpiresAt) {
			issuance.Status = enums.IssuanceStatusExpired
			issuance.VerificationCode = nil
			if err := a.repo.SaveIssuance(tx, issuance); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire issuance")
			}
			// Return nil so the EXPIRED write commits; the caller still
			// sees the expiry as an error.
			expired = true
			return nil
		}

		coupon, err := a.repo.FindCouponTx(tx, issuance.CouponID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
		}

		generated, err := a.generateCode(tx, coupon.StoreID)
		if err != nil {
			return err
		}

		issuance.Status = enums.IssuanceStatusActivated
		issuance.VerificationCode = &generated
		issuance.ActivatedAt = &now
		if err := a.repo.SaveIssuance(tx, issuance); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate issuance")
		}
		code = generated
		return nil
	})
	if err != nil {
		return "", err
	}
	if expired {
		return "", pkgerrors.New(pkgerrors.CodeExpired, "coupon expired")
	}
	return code, nil
}

// generateCode draws random 4-digit codes until one is free among the
// store's currently ACTIVATED issuances. The retry bound guards against a
// store with a nearly saturated code space.
func (a *ActivationStateMachine) generateCode(tx *gorm.DB, storeID uuid.UUID) (string, error) {
	active, err := a.repo.ActiveCodesForStore(tx, storeID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active codes")
	}
	taken := make(map[string]struct{}, len(active))
	for _, code := range active {
		taken[code] = struct{}{}
	}

	attempts := a.couponCfg.CodeMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		candidate := a.codeFn()
		if _, clash := taken[candidate]; !clash {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "no verification code available")
}

// Use consumes an ACTIVATED issuance. It must be called with the issuance
// row already locked inside tx, after the caller scoped the lookup to the
// redeeming store.
func (a *ActivationStateMachine) Use(tx *gorm.DB, issuance *models.CouponIssuance, now time.Time) error {
	if issuance.Status != enums.IssuanceStatusActivated {
		return pkgerrors.New(pkgerrors.CodeConflict, "coupon is not activated")
	}

	issuance.Status = enums.IssuanceStatusUsed
	issuance.VerificationCode = nil
	issuance.UsedAt = &now
	if err := a.repo.SaveIssuance(tx, issuance); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "use issuance")
	}
	return nil
}

func activationOutcome(err error) string {
	if err == nil {
		return "activated"
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeExpired:
		return "expired"
	case pkgerrors.CodeConflict:
		return "conflict"
	case pkgerrors.CodeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
