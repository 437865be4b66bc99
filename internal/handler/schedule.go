package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/Rugbydude80/localops-ai-sub001/internal/reasoning"
	"github.com/Rugbydude80/localops-ai-sub001/internal/scheduler"
)

const dateLayout = "2006-01-02"

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}

	staff, err := h.repository.GetStaffByBusiness(businessID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff fetched", staff)
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}

	startDate, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		h.errorResponse(w, r, "invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		h.errorResponse(w, r, "invalid end date, expected YYYY-MM-DD")
		return
	}

	shifts, err := h.repository.GetShiftsByBusinessAndRange(businessID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}

	drafts, err := h.repository.GetDraftsByBusiness(businessID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "drafts fetched", drafts)
}

// loadContext assembles the read-only snapshots for one solve or
// validation run.
func (h *Handler) loadContext(businessID int64, startDate, endDate time.Time) (*scheduler.SchedulingContext, error) {
	staff, err := h.repository.GetStaffByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	shifts, err := h.repository.GetShiftsByBusinessAndRange(businessID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	constraints, err := h.repository.GetActiveConstraints(businessID)
	if err != nil {
		return nil, err
	}
	preferences, err := h.repository.GetActivePreferencesByBusiness(businessID)
	if err != nil {
		return nil, err
	}

	return scheduler.NewSchedulingContext(businessID, startDate, endDate, staff, shifts, constraints, preferences, nil), nil
}

func (h *Handler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}

	req := struct {
		Name      string `json:"name" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
	}{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "invalid end date, expected YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		h.errorResponse(w, r, "end date cannot be before start date")
		return
	}

	sc, err := h.loadContext(businessID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := h.solver.Solve(sc)

	// annotate every assignment before the draft is persisted; the full
	// breakdown is kept for the response, the flattened summary for the row
	reasonings := make([]*domain.AssignmentReasoning, len(result.Assignments))
	for i, a := range result.Assignments {
		shift, _ := sc.ShiftByID(a.ShiftID)
		staff, _ := sc.StaffByID(a.StaffID)
		if shift == nil || staff == nil {
			continue
		}
		ar := h.reasoner.GenerateAssignmentReasoning(r.Context(), shift, staff, a, sc, h.config.AI.Enabled)
		a.Reasoning = ar.Summary()
		reasonings[i] = ar
	}

	draft := &domain.ScheduleDraft{
		BusinessID: businessID,
		Name:       req.Name,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if err := h.repository.InsertDraft(draft, result.Assignments); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.publishNotification("draft_generated", businessID, draft.ID, map[string]any{
		"assignedCount":   result.AssignedCount,
		"unassignedCount": len(result.UnassignedShifts),
	})

	h.successResponse(w, r, "draft generated", map[string]any{
		"draft":            draft,
		"assignments":      result.Assignments,
		"reasonings":       reasonings,
		"unassignedShifts": result.UnassignedShifts,
		"meanConfidence":   result.MeanConfidence,
		"confidenceLabel":  reasoning.ConfidenceLabel(result.MeanConfidence),
	})
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	draft, err := h.repository.GetDraftByID(draftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "draft not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignments, err := h.repository.GetDraftAssignments(draftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft fetched", map[string]any{
		"draft":       draft,
		"assignments": assignments,
	})
}

// ValidateAssignments runs the cross-assignment batch checks over a
// proposed assignment set and reports violations as data, not errors.
func (h *Handler) ValidateAssignments(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	req := struct {
		Assignments []struct {
			ShiftID int64 `json:"shiftID" validate:"required"`
			StaffID int64 `json:"staffID" validate:"required"`
		} `json:"assignments" validate:"required,dive"`
	}{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	draft, err := h.repository.GetDraftByID(draftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "draft not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	sc, err := h.loadContext(businessID, draft.StartDate, draft.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	proposed := make([]*domain.DraftShiftAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		proposed = append(proposed, &domain.DraftShiftAssignment{
			DraftID: draftID,
			ShiftID: a.ShiftID,
			StaffID: a.StaffID,
		})
	}

	result := h.solver.Evaluator().ValidateAssignments(proposed, sc)
	h.successResponse(w, r, "validation complete", result)
}

func (h *Handler) PublishDraft(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	draft, err := h.repository.GetDraftByID(draftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "draft not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if draft.Status == domain.DraftStatusPublished {
		h.errorResponse(w, r, "draft is already published")
		return
	}

	if err := h.repository.PublishDraft(draft); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "draft was modified concurrently, refresh and retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishNotification("draft_published", businessID, draft.ID, nil)
	h.successResponse(w, r, "draft published", draft)
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	if err := h.repository.DeleteDraft(draftID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "draft not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "draft discarded", nil)
}
