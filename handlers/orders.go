// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/submission"
)

type OrdersHandler struct {
	svc rpc.Service
}

func NewOrdersHandler(svc rpc.Service) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// OrdersPreviewResponse summarises a draft submission for the form sidebar.
type OrdersPreviewResponse struct {
	Checklist         int      `json:"checklist"`
	ImprovementChance string   `json:"improvement_chance"`
	Messages          []string `json:"messages"`
}

func payloadFromRequest(req models.SubmitOrdersRequest) models.SubmissionPayload {
	return submission.Build(submission.Fields{
		EventID:             req.EventID,
		EventChoice:         req.EventChoice,
		ImprovementTarget:   req.ImprovementTarget,
		ImprovementBuilding: req.ImprovementBuilding,
		CampaignTarget:      req.CampaignTarget,
		CampaignNote:        req.CampaignNote,
	})
}

// SubmitOrders handles POST /api/orders
func (h *OrdersHandler) SubmitOrders(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrdersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FactionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "faction_id is required")
		return
	}

	payload := payloadFromRequest(req)
	if errs := submission.Validate(payload); len(errs) > 0 {
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Error:    http.StatusText(http.StatusUnprocessableEntity),
			Messages: errs,
		})
		return
	}

	err := h.svc.SubmitTurn(r.Context(), req.FactionID, req.Passcode, submission.Normalize(payload))
	if err != nil {
		serviceError(w, err)
		return
	}

	// Re-fetch the status so the form shows the updated submission count
	status, err := h.svc.TurnStatus(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitOrdersResponse{
		Message: "Orders received.",
		Status:  status,
	})
}

// PreviewOrders handles POST /api/orders/preview
// Returns the checklist count, the improvement chance label, and any
// outstanding validation messages for a draft. Nothing is stored.
func (h *OrdersHandler) PreviewOrders(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrdersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	payload := payloadFromRequest(req)
	messages := submission.Validate(payload)
	if messages == nil {
		messages = []string{}
	}

	middleware.JSONResponse(w, http.StatusOK, OrdersPreviewResponse{
		Checklist:         submission.Checklist(payload),
		ImprovementChance: submission.ImprovementChance(payload),
		Messages:          messages,
	})
}
