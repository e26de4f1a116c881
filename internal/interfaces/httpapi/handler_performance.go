package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

type recordPerformanceRequest struct {
	Sport string  `json:"sport" validate:"required"`
	Value float64 `json:"value" validate:"gte=0"`
	Date  string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes string  `json:"notes" validate:"max=512"`
}

func (h *Handler) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPerformance")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordPerformanceRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecordPerformanceInput{
		SportName: req.Sport,
		Value:     req.Value,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		date, parseErr := time.ParseInLocation(dateLayout, req.Date, time.UTC)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date", usecase.ErrInvalidInput))
			return
		}
		input.Date = &date
	}

	created, err := h.performanceService.Record(ctx, principal.UserID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "record performance failed", "user_id", principal.UserID, "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"id":     created.ID,
		"sport":  req.Sport,
		"value":  created.Value,
		"points": created.PointsCalculated,
		"date":   created.DateRecorded.Format(dateLayout),
	})
}

func (h *Handler) ListMyPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPerformances")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := usecase.HistoryFilter{
		SportName: strings.TrimSpace(r.URL.Query().Get("sport")),
		Limit:     queryInt(r, "limit", 0),
	}
	if from, ok := parseDateParam(r, "from"); ok {
		filter.From = from
	}
	if to, ok := parseDateParam(r, "to"); ok {
		filter.To = to
	}

	entries, err := h.performanceService.History(ctx, principal.UserID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list performances failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyEntriesToDTO(entries))
}

func parseDateParam(r *http.Request, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, false
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, false
	}
	return &date, true
}
