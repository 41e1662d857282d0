package coupons

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
)

// CouponDTO exposes a coupon definition in API responses.
type CouponDTO struct {
	ID                   uuid.UUID          `json:"id"`
	StoreID              uuid.UUID          `json:"store_id"`
	Title                string             `json:"title"`
	Description          *string            `json:"description,omitempty"`
	TargetOrganizationID *uuid.UUID         `json:"target_organization_id,omitempty"`
	BenefitType          enums.BenefitType  `json:"benefit_type"`
	BenefitValue         decimal.Decimal    `json:"benefit_value"`
	MinOrderAmount       *decimal.Decimal   `json:"min_order_amount,omitempty"`
	IssueStartsAt        *time.Time         `json:"issue_starts_at,omitempty"`
	IssueEndsAt          *time.Time         `json:"issue_ends_at,omitempty"`
	TotalQuantity        int                `json:"total_quantity"`
	LimitPerUser         int                `json:"limit_per_user"`
	Status               enums.CouponStatus `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// IssuanceDTO exposes one claimed coupon instance. The verification code is
// never included; Activate returns it once.
type IssuanceDTO struct {
	ID          uuid.UUID            `json:"id"`
	CouponID    uuid.UUID            `json:"coupon_id"`
	Status      enums.IssuanceStatus `json:"status"`
	IssuedAt    time.Time            `json:"issued_at"`
	ActivatedAt *time.Time           `json:"activated_at,omitempty"`
	UsedAt      *time.Time           `json:"used_at,omitempty"`
	ExpiresAt   time.Time            `json:"expires_at"`
	Coupon      *CouponDTO           `json:"coupon,omitempty"`
}

// FromCouponModel maps the persisted coupon into a DTO.
func FromCouponModel(m *models.Coupon) *CouponDTO {
	if m == nil {
		return nil
	}

	return &CouponDTO{
		ID:                   m.ID,
		StoreID:              m.StoreID,
		Title:                m.Title,
		Description:          m.Description,
		TargetOrganizationID: m.TargetOrganizationID,
		BenefitType:          m.BenefitType,
		BenefitValue:         m.BenefitValue,
		MinOrderAmount:       m.MinOrderAmount,
		IssueStartsAt:        m.IssueStartsAt,
		IssueEndsAt:          m.IssueEndsAt,
		TotalQuantity:        m.TotalQuantity,
		LimitPerUser:         m.LimitPerUser,
		Status:               m.Status,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// FromIssuanceModel maps the persisted issuance into a DTO.
func FromIssuanceModel(m *models.CouponIssuance) *IssuanceDTO {
	if m == nil {
		return nil
	}

	return &IssuanceDTO{
		ID:          m.ID,
		CouponID:    m.CouponID,
		Status:      m.Status,
		IssuedAt:    m.IssuedAt,
		ActivatedAt: m.ActivatedAt,
		UsedAt:      m.UsedAt,
		ExpiresAt:   m.ExpiresAt,
		Coupon:      FromCouponModel(m.Coupon),
	}
}
