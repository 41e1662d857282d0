package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/config"
	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type membershipChecker interface {
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

// IssuanceService orchestrates a single claim: window/status gate, quota
// reservation and the issuance insert, all in one transaction with the
// coupon row locked.
type IssuanceService struct {
	db          txRunner
	repo        *Repository
	ledger      *QuotaLedger
	memberships membershipChecker
	couponCfg   config.CouponConfig
	metrics     *metrics.CouponMetrics
}

// IssuanceServiceParams bundles the dependencies of the issuance flow.
type IssuanceServiceParams struct {
	DB           txRunner
	Repo         *Repository
	Ledger       *QuotaLedger
	Memberships  membershipChecker
	CouponConfig config.CouponConfig
	Metrics      *metrics.CouponMetrics
}

// NewIssuanceService builds the issuance flow with the provided dependencies.
func NewIssuanceService(params IssuanceServiceParams) (*IssuanceService, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("quota ledger required")
	}
	return &IssuanceService{
		db:          params.DB,
		repo:        params.Repo,
		ledger:      params.Ledger,
		memberships: params.Memberships,
		couponCfg:   params.CouponConfig,
		metrics:     params.Metrics,
	}, nil
}

// Issue claims one unit of the coupon for the user. On success exactly one
// UNUSED issuance row exists; on any failure zero rows are written.
func (s *IssuanceService) Issue(ctx context.Context, couponID, userID uuid.UUID, now time.Time) (*models.CouponIssuance, error) {
	issuance, err := s.issue(ctx, couponID, userID, now)
	s.metrics.IncIssuance(issuanceOutcome(err))
	return issuance, err
}

func (s *IssuanceService) issue(ctx context.Context, couponID, userID uuid.UUID, now time.Time) (*models.CouponIssuance, error) {
	var issuance *models.CouponIssuance
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		coupon, err := s.repo.GetCouponForUpdate(tx, couponID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock coupon")
		}

		if err := IsOpenForIssuance(coupon, now); err != nil {
			return err
		}

		if coupon.TargetOrganizationID != nil {
			if s.memberships == nil {
				return pkgerrors.New(pkgerrors.CodeForbidden, "organization membership required")
			}
			member, err := s.memberships.IsMember(ctx, *coupon.TargetOrganizationID, userID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check organization membership")
			}
			if !member {
				return pkgerrors.New(pkgerrors.CodeForbidden, "organization membership required")
			}
		}

		if err := s.ledger.TryReserve(tx, coupon, userID); err != nil {
			return err
		}

		issuance = &models.CouponIssuance{
			CouponID:  coupon.ID,
			UserID:    userID,
			Status:    enums.IssuanceStatusUnused,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.couponCfg.Validity()),
		}
		if err := s.repo.InsertIssuance(tx, issuance); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert issuance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issuance, nil
}

func issuanceOutcome(err error) string {
	if err == nil {
		return "issued"
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeQuotaExceeded:
		if details, ok := typed.Details().(map[string]string); ok && details["kind"] == QuotaKindPerUser {
			return "quota_per_user"
		}
		return "quota_global"
	case pkgerrors.CodeStateConflict:
		return "not_issuable"
	case pkgerrors.CodeNotFound:
		return "not_found"
	case pkgerrors.CodeForbidden:
		return "forbidden"
	default:
		return "error"
	}
}
