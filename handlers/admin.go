// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/submission"
	"github.com/FahryJean/Mapso/viewstate"
)

type AdminHandler struct {
	svc rpc.Service
}

func NewAdminHandler(svc rpc.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func adminPasscode(r *http.Request) string {
	return r.Header.Get("X-Admin-Passcode")
}

// ListSubmissions handles GET /api/admin/submissions
// Returns every stored submission for the current turn, newest first per
// faction. The ?latest=1 flag collapses resubmissions to the newest each.
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.AdminListSubmissions(r.Context(), adminPasscode(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	if r.URL.Query().Get("latest") == "1" {
		subs = submission.Latest(subs)
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminSubmissionsResponse{Submissions: subs})
}

// ListResolutions handles GET /api/admin/resolutions
func (h *AdminHandler) ListResolutions(w http.ResponseWriter, r *http.Request) {
	resolutions, err := h.svc.AdminListResolutions(r.Context(), adminPasscode(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	if resolutions == nil {
		resolutions = []models.FactionResolution{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminResolutionsResponse{Resolutions: resolutions})
}

// SaveResolution handles POST /api/admin/resolutions
// Re-saving for the same faction overwrites the previous resolution. The
// refreshed resolution list comes back so the console can repaint at once.
func (h *AdminHandler) SaveResolution(w http.ResponseWriter, r *http.Request) {
	var req models.SaveResolutionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FactionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "faction_id is required")
		return
	}

	passcode := adminPasscode(r)
	if err := h.svc.AdminSaveResolution(r.Context(), passcode, req.FactionID, req.Resolution); err != nil {
		serviceError(w, err)
		return
	}

	resolutions, err := h.svc.AdminListResolutions(r.Context(), passcode)
	if err != nil {
		serviceError(w, err)
		return
	}
	if resolutions == nil {
		resolutions = []models.FactionResolution{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminResolutionsResponse{Resolutions: resolutions})
}

// LockTurn handles POST /api/admin/lock
func (h *AdminHandler) LockTurn(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdminLockTurn(r.Context(), adminPasscode(r)); err != nil {
		serviceError(w, err)
		return
	}
	h.respondWithStatus(w, r)
}

// PublishTurn handles POST /api/admin/publish
// Resolves the current turn and opens the next one. The fresh status comes
// back so every panel repaints from the new turn, not the published one.
func (h *AdminHandler) PublishTurn(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdminPublishNextTurn(r.Context(), adminPasscode(r)); err != nil {
		serviceError(w, err)
		return
	}
	h.respondWithStatus(w, r)
}

func (h *AdminHandler) respondWithStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.TurnStatus(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, TurnStatusResponse{
		Status: status,
		View:   viewstate.FormatStatus(status),
	})
}

// AdminOverviewResponse is the admin console's full view state in one fetch.
type AdminOverviewResponse struct {
	Status          viewstate.StatusView       `json:"status"`
	Submissions     []models.Submission        `json:"submissions"`
	Resolutions     []models.FactionResolution `json:"resolutions"`
	SelectedFaction string                     `json:"selected_faction"`
	Form            viewstate.ResolutionForm   `json:"form"`
	Resolved        string                     `json:"resolved"`
	Submitted       string                     `json:"submitted"`
}

// Overview handles GET /api/admin/overview?faction=<id>
// Assembles status, latest submissions, resolutions, and the editor form for
// the selected faction in a single response.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	passcode := adminPasscode(r)
	ctx := r.Context()

	status, err := h.svc.TurnStatus(ctx)
	if err != nil {
		serviceError(w, err)
		return
	}
	subs, err := h.svc.AdminListSubmissions(ctx, passcode)
	if err != nil {
		serviceError(w, err)
		return
	}
	resolutions, err := h.svc.AdminListResolutions(ctx, passcode)
	if err != nil {
		serviceError(w, err)
		return
	}

	view := viewstate.AdminView{}.
		WithStatus(status).
		WithSubmissions(submission.Latest(subs)).
		WithResolutions(resolutions).
		SelectFaction(r.URL.Query().Get("faction"))

	if view.Submissions == nil {
		view.Submissions = []models.Submission{}
	}
	if view.Resolutions == nil {
		view.Resolutions = []models.FactionResolution{}
	}
	resolved, submitted := view.Progress()

	middleware.JSONResponse(w, http.StatusOK, AdminOverviewResponse{
		Status:          viewstate.FormatStatus(view.Status),
		Submissions:     view.Submissions,
		Resolutions:     view.Resolutions,
		SelectedFaction: view.SelectedFaction,
		Form:            view.Form,
		Resolved:        resolved,
		Submitted:       submitted,
	})
}
