package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neardeal/neardeal-backend/api/middleware"
	"github.com/neardeal/neardeal-backend/api/responses"
	"github.com/neardeal/neardeal-backend/api/validators"
	"github.com/neardeal/neardeal-backend/internal/coupons"
	"github.com/neardeal/neardeal-backend/internal/stores"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/logger"
)

type createCouponRequest struct {
	Title                string           `json:"title" validate:"required,min=1,max=200"`
	Description          *string          `json:"description,omitempty"`
	TargetOrganizationID *uuid.UUID       `json:"target_organization_id,omitempty"`
	BenefitType          string           `json:"benefit_type" validate:"required"`
	BenefitValue         decimal.Decimal  `json:"benefit_value"`
	MinOrderAmount       *decimal.Decimal `json:"min_order_amount,omitempty"`
	IssueStartsAt        *time.Time       `json:"issue_starts_at,omitempty"`
	IssueEndsAt          *time.Time       `json:"issue_ends_at,omitempty"`
	TotalQuantity        int              `json:"total_quantity" validate:"min=0"`
	LimitPerUser         int              `json:"limit_per_user" validate:"min=0"`
	Status               string           `json:"status,omitempty"`
}

// CouponCreate defines a coupon on an owned store.
func CouponCreate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sid, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Create(r.Context(), uid, sid, coupons.CreateCouponInput{
			Title:                payload.Title,
			Description:          payload.Description,
			TargetOrganizationID: payload.TargetOrganizationID,
			BenefitType:          payload.BenefitType,
			BenefitValue:         payload.BenefitValue,
			MinOrderAmount:       payload.MinOrderAmount,
			IssueStartsAt:        payload.IssueStartsAt,
			IssueEndsAt:          payload.IssueEndsAt,
			TotalQuantity:        payload.TotalQuantity,
			LimitPerUser:         payload.LimitPerUser,
			Status:               payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// CouponListByStore returns a store's coupons. Owners see every status.
func CouponListByStore(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		sid, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var actor *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if uid, parseErr := uuid.Parse(raw); parseErr == nil {
				actor = &uid
			}
		}

		list, err := svc.ListByStore(r.Context(), actor, sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateCouponRequest struct {
	Title          *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description,omitempty"`
	BenefitValue   *decimal.Decimal `json:"benefit_value,omitempty"`
	MinOrderAmount *decimal.Decimal `json:"min_order_amount,omitempty"`
	IssueStartsAt  *time.Time       `json:"issue_starts_at,omitempty"`
	IssueEndsAt    *time.Time       `json:"issue_ends_at,omitempty"`
	TotalQuantity  *int             `json:"total_quantity,omitempty"`
	LimitPerUser   *int             `json:"limit_per_user,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

// CouponUpdate mutates a coupon definition on an owned store.
func CouponUpdate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		couponID, err := pathUUID(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Update(r.Context(), uid, couponID, coupons.UpdateCouponInput{
			Title:          payload.Title,
			Description:    payload.Description,
			BenefitValue:   payload.BenefitValue,
			MinOrderAmount: payload.MinOrderAmount,
			IssueStartsAt:  payload.IssueStartsAt,
			IssueEndsAt:    payload.IssueEndsAt,
			TotalQuantity:  payload.TotalQuantity,
			LimitPerUser:   payload.LimitPerUser,
			Status:         payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// CouponDelete removes a coupon definition from an owned store.
func CouponDelete(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		couponID, err := pathUUID(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, couponID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// CouponIssue claims one instance of the coupon for the caller.
func CouponIssue(svc *coupons.IssuanceService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issuance service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		couponID, err := pathUUID(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issuance, err := svc.Issue(r.Context(), couponID, uid, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupons.FromIssuanceModel(issuance))
	}
}

// CouponListMine returns the caller's claimed coupons, newest first.
func CouponListMine(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), uid, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CouponActivate reveals the one-time verification code for a claimed coupon.
func CouponActivate(machine *coupons.ActivationStateMachine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if machine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activation unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		issuanceID, err := pathUUID(r, "issuanceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := machine.Activate(r.Context(), issuanceID, uid, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"verification_code": code})
	}
}

type verifyCouponRequest struct {
	Code string `json:"code" validate:"required,len=4"`
}

// CouponVerify redeems an activated code at the owner's counter.
func CouponVerify(verifier *coupons.RedemptionVerifier, storeSvc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if verifier == nil || storeSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "redemption unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sid, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// only the store's owner may burn codes at its counter
		if _, err := storeSvc.RequireOwnership(r.Context(), uid, sid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload verifyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := verifier.Redeem(r.Context(), sid, payload.Code, time.Now().UTC()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"redeemed": true})
	}
}
