package coupons

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

// Quota detail kinds reported under QUOTA_EXCEEDED.
const (
	QuotaKindGlobal  = "GLOBAL"
	QuotaKindPerUser = "PER_USER"
)

type quotaCounter interface {
	CountIssuances(tx *gorm.DB, couponID uuid.UUID) (int64, error)
	CountUserIssuances(tx *gorm.DB, couponID, userID uuid.UUID) (int64, error)
}

// QuotaLedger is the only component allowed to decide whether one more unit
// of a coupon may be claimed. TryReserve must run inside the transaction
// that also inserts the issuance, with the coupon row already locked, so the
// dual count check is atomic with the claim it authorizes.
type QuotaLedger struct {
	repo quotaCounter
}

// NewQuotaLedger constructs a ledger over the provided counters.
func NewQuotaLedger(repo quotaCounter) *QuotaLedger {
	return &QuotaLedger{repo: repo}
}

// TryReserve checks both caps for the locked coupon. A nil return authorizes
// exactly one insert within the same transaction.
func (l *QuotaLedger) TryReserve(tx *gorm.DB, coupon *models.Coupon, userID uuid.UUID) error {
	total, err := l.repo.CountIssuances(tx, coupon.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count issuances")
	}
	if total >= int64(coupon.TotalQuantity) {
		return pkgerrors.New(pkgerrors.CodeQuotaExceeded, "coupon supply exhausted").
			WithDetails(map[string]string{"kind": QuotaKindGlobal})
	}

	mine, err := l.repo.CountUserIssuances(tx, coupon.ID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count user issuances")
	}
	if mine >= int64(coupon.LimitPerUser) {
		return pkgerrors.New(pkgerrors.CodeQuotaExceeded, "per-user limit reached").
			WithDetails(map[string]string{"kind": QuotaKindPerUser})
	}

	return nil
}
