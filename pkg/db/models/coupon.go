package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// Coupon is a store-owned coupon definition. TotalQuantity is the global
// issuance cap across all users; LimitPerUser caps one user's claims.
type Coupon struct {
	ID                   uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID              uuid.UUID          `gorm:"column:store_id;type:uuid;not null"`
	Title                string             `gorm:"column:title;not null"`
	Description          *string            `gorm:"column:description"`
	TargetOrganizationID *uuid.UUID         `gorm:"column:target_organization_id;type:uuid"`
	BenefitType          enums.BenefitType  `gorm:"column:benefit_type;type:benefit_type;not null"`
	BenefitValue         decimal.Decimal    `gorm:"column:benefit_value;type:numeric(10,2);not null"`
	MinOrderAmount       *decimal.Decimal   `gorm:"column:min_order_amount;type:numeric(10,2)"`
	IssueStartsAt        *time.Time         `gorm:"column:issue_starts_at"`
	IssueEndsAt          *time.Time         `gorm:"column:issue_ends_at"`
	TotalQuantity        int                `gorm:"column:total_quantity;not null"`
	LimitPerUser         int                `gorm:"column:limit_per_user;not null;default:1"`
	Status               enums.CouponStatus `gorm:"column:status;type:coupon_status;not null;default:'draft'"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// CouponIssuance is one redeemable instance claimed by one user. The row is
// the serialization point for Activate/Use; VerificationCode is set only
// while Status is activated.
type CouponIssuance struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CouponID         uuid.UUID            `gorm:"column:coupon_id;type:uuid;not null"`
	UserID           uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	Status           enums.IssuanceStatus `gorm:"column:status;type:issuance_status;not null;default:'unused'"`
	VerificationCode *string              `gorm:"column:verification_code;size:4"`
	IssuedAt         time.Time            `gorm:"column:issued_at;not null"`
	ActivatedAt      *time.Time           `gorm:"column:activated_at"`
	UsedAt           *time.Time           `gorm:"column:used_at"`
	ExpiresAt        time.Time            `gorm:"column:expires_at;not null"`
	Coupon           *Coupon              `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
