package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neardeal/neardeal-backend/pkg/db/models"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
)

type ownershipChecker interface {
	RequireOwnership(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error)
}

// Service exposes the owner-facing coupon CRUD and the customer listings.
// Claim, activation and redemption live on their dedicated components.
type Service interface {
	Create(ctx context.Context, actorID, storeID uuid.UUID, input CreateCouponInput) (*CouponDTO, error)
	Update(ctx context.Context, actorID, couponID uuid.UUID, input UpdateCouponInput) (*CouponDTO, error)
	Delete(ctx context.Context, actorID, couponID uuid.UUID) error
	ListByStore(ctx context.Context, actorID *uuid.UUID, storeID uuid.UUID) ([]CouponDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID, now time.Time) ([]IssuanceDTO, error)
}

type service struct {
	repo    *Repository
	catalog *Catalog
	stores  ownershipChecker
}

// NewService builds the coupon CRUD service.
func NewService(repo *Repository, catalog *Catalog, stores ownershipChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("coupon catalog required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store ownership checker required")
	}
	return &service{repo: repo, catalog: catalog, stores: stores}, nil
}

// CreateCouponInput captures the fields accepted when defining a coupon.
type CreateCouponInput struct {
	Title                string
	Description          *string
	TargetOrganizationID *uuid.UUID
	BenefitType          string
	BenefitValue         decimal.Decimal
	MinOrderAmount       *decimal.Decimal
	IssueStartsAt        *time.Time
	IssueEndsAt          *time.Time
	TotalQuantity        int
	LimitPerUser         int
	Status               string
}

// UpdateCouponInput captures the allowed coupon fields for mutation.
type UpdateCouponInput struct {
	Title          *string
	Description    *string
	BenefitValue   *decimal.Decimal
	MinOrderAmount *decimal.Decimal
	IssueStartsAt  *time.Time
	IssueEndsAt    *time.Time
	TotalQuantity  *int
	LimitPerUser   *int
	Status         *string
}

func (s *service) Create(ctx context.Context, actorID, storeID uuid.UUID, input CreateCouponInput) (*CouponDTO, error) {
	if _, err := s.stores.RequireOwnership(ctx, actorID, storeID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	benefitType, err := enums.ParseBenefitType(input.BenefitType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid benefit type")
	}
	if input.TotalQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_quantity must not be negative")
	}
	limitPerUser := input.LimitPerUser
	if limitPerUser == 0 {
		limitPerUser = 1
	}
	if limitPerUser < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit_per_user must be at least 1")
	}
	if err := validateIssueWindow(input.IssueStartsAt, input.IssueEndsAt); err != nil {
		return nil, err
	}

	status := enums.CouponStatusDraft
	if trimmed := strings.TrimSpace(input.Status); trimmed != "" {
		parsed, err := enums.ParseCouponStatus(trimmed)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		status = parsed
	}

	coupon, err := s.repo.CreateCoupon(ctx, &models.Coupon{
		StoreID:              storeID,
		Title:                title,
		Description:          input.Description,
		TargetOrganizationID: input.TargetOrganizationID,
		BenefitType:          benefitType,
		BenefitValue:         input.BenefitValue,
		MinOrderAmount:       input.MinOrderAmount,
		IssueStartsAt:        input.IssueStartsAt,
		IssueEndsAt:          input.IssueEndsAt,
		TotalQuantity:        input.TotalQuantity,
		LimitPerUser:         limitPerUser,
		Status:               status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return FromCouponModel(coupon), nil
}

func (s *service) Update(ctx context.Context, actorID, couponID uuid.UUID, input UpdateCouponInput) (*CouponDTO, error) {
	coupon, err := s.loadOwned(ctx, actorID, couponID)
	if err != nil {
		return nil, err
	}

	if input.TotalQuantity != nil && *input.TotalQuantity != coupon.TotalQuantity {
		claimed, err := s.repo.HasIssuances(ctx, coupon.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check issuances")
		}
		if claimed {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "total_quantity is frozen once claimed")
		}
		if *input.TotalQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_quantity must not be negative")
		}
		coupon.TotalQuantity = *input.TotalQuantity
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
		}
		coupon.Title = title
	}
	if input.Description != nil {
		coupon.Description = input.Description
	}
	if input.BenefitValue != nil {
		coupon.BenefitValue = *input.BenefitValue
	}
	if input.MinOrderAmount != nil {
		coupon.MinOrderAmount = input.MinOrderAmount
	}
	if input.IssueStartsAt != nil {
		coupon.IssueStartsAt = input.IssueStartsAt
	}
	if input.IssueEndsAt != nil {
		coupon.IssueEndsAt = input.IssueEndsAt
	}
	if err := validateIssueWindow(coupon.IssueStartsAt, coupon.IssueEndsAt); err != nil {
		return nil, err
	}
	if input.LimitPerUser != nil {
		if *input.LimitPerUser < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit_per_user must be at least 1")
		}
		coupon.LimitPerUser = *input.LimitPerUser
	}
	if input.Status != nil {
		parsed, err := enums.ParseCouponStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		coupon.Status = parsed
	}

	if err := s.repo.UpdateCoupon(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return FromCouponModel(coupon), nil
}

func (s *service) Delete(ctx context.Context, actorID, couponID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, couponID); err != nil {
		return err
	}
	if err := s.repo.DeleteCoupon(ctx, couponID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

// ListByStore returns a store's coupons. Owners see every status; everyone
// else sees only active ones.
func (s *service) ListByStore(ctx context.Context, actorID *uuid.UUID, storeID uuid.UUID) ([]CouponDTO, error) {
	activeOnly := true
	if actorID != nil {
		if _, err := s.stores.RequireOwnership(ctx, *actorID, storeID); err == nil {
			activeOnly = false
		}
	}

	records, err := s.repo.ListByStore(ctx, storeID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	items := make([]CouponDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromCouponModel(&records[i]))
	}
	return items, nil
}

// ListMine returns the user's issuances with lazy expiry applied: rows whose
// expiry has passed are demoted before they are reported.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID, now time.Time) ([]IssuanceDTO, error) {
	records, err := s.repo.ListIssuancesByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list issuances")
	}

	var overdue []uuid.UUID
	for i := range records {
		record := &records[i]
		if record.Status.IsTerminal() || !now.After(record.ExpiresAt) {
			continue
		}
		overdue = append(overdue, record.ID)
		record.Status = enums.IssuanceStatusExpired
		record.VerificationCode = nil
	}
	if err := s.repo.ExpireOverdue(ctx, overdue, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire issuances")
	}

	items := make([]IssuanceDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromIssuanceModel(&records[i]))
	}
	return items, nil
}

func (s *service) loadOwned(ctx context.Context, actorID, couponID uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.catalog.Get(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if _, err := s.stores.RequireOwnership(ctx, actorID, coupon.StoreID); err != nil {
		return nil, err
	}
	return coupon, nil
}

func validateIssueWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "issue_ends_at must be after issue_starts_at")
	}
	return nil
}
