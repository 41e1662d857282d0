package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/neardeal/neardeal-backend/api/middleware"
	"github.com/neardeal/neardeal-backend/api/responses"
	"github.com/neardeal/neardeal-backend/api/validators"
	"github.com/neardeal/neardeal-backend/internal/items"
	pkgerrors "github.com/neardeal/neardeal-backend/pkg/errors"
	"github.com/neardeal/neardeal-backend/pkg/logger"
)

type createItemRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=120"`
	Price            int     `json:"price" validate:"min=0"`
	Description      *string `json:"description,omitempty"`
	ImageURL         *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsRepresentative bool    `json:"is_representative"`
	Position         *int    `json:"position,omitempty"`
}

// ItemCreate adds a menu item to an owned store.
func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
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

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), uid, sid, items.CreateItemInput{
			Name:             payload.Name,
			Price:            payload.Price,
			Description:      payload.Description,
			ImageURL:         payload.ImageURL,
			IsRepresentative: payload.IsRepresentative,
			Position:         payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemListByStore returns a store's menu. Owners also see hidden items.
func ItemListByStore(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
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

type updateItemRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Price            *int    `json:"price,omitempty" validate:"omitempty,min=0"`
	Description      *string `json:"description,omitempty"`
	ImageURL         *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsSoldOut        *bool   `json:"is_sold_out,omitempty"`
	IsRepresentative *bool   `json:"is_representative,omitempty"`
	IsHidden         *bool   `json:"is_hidden,omitempty"`
	Position         *int    `json:"position,omitempty"`
}

// ItemUpdate mutates an owned menu item.
func ItemUpdate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), uid, itemID, items.UpdateItemInput{
			Name:             payload.Name,
			Price:            payload.Price,
			Description:      payload.Description,
			ImageURL:         payload.ImageURL,
			IsSoldOut:        payload.IsSoldOut,
			IsRepresentative: payload.IsRepresentative,
			IsHidden:         payload.IsHidden,
			Position:         payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemDelete removes an owned menu item.
func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
