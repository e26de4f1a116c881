package httpapi

import "net/http"

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Build(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "build dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	top := make([]leaderboardEntryDTO, 0, len(dashboard.TopOverall))
	for _, e := range dashboard.TopOverall {
		top = append(top, leaderboardEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardDTO{
		Profile:    userToDTO(dashboard.Profile),
		Ranking:    userRankingToDTO(dashboard.Ranking),
		Summary:    progressSummaryToDTO(dashboard.Summary),
		Streaks:    streaksToDTO(dashboard.Streaks),
		TopOverall: top,
		Recent:     historyEntriesToDTO(dashboard.Recent),
	})
}
