package httpapi

import "net/http"

const defaultLeaderboardLimit = 50

func (h *Handler) GetOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallLeaderboard")
	defer span.End()

	limit := queryInt(r, "limit", defaultLeaderboardLimit)
	entries, err := h.leaderboardService.OverallLeaderboard(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "overall leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderboardEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLeaderboard")
	defer span.End()

	limit := queryInt(r, "limit", defaultLeaderboardLimit)
	entries, err := h.leaderboardService.TeamLeaderboard(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "team leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamLeaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		dto := teamLeaderboardEntryDTO{
			Rank:               e.Rank,
			TeamID:             e.TeamID,
			Name:               e.Name,
			MemberCount:        e.MemberCount,
			TotalPoints:        e.TotalPoints,
			AvgPointsPerMember: e.AvgPointsPerMember,
			TotalActivities:    e.TotalActivities,
		}
		if e.LastActivity != nil {
			last := e.LastActivity.UTC().Format(dateLayout)
			dto.LastActivity = &last
		}
		items = append(items, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSportLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSportLeaderboard")
	defer span.End()

	sportName := r.PathValue("sportName")
	limit := queryInt(r, "limit", defaultLeaderboardLimit)
	board, err := h.leaderboardService.SportLeaderboard(ctx, sportName, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "sport leaderboard failed", "sport", sportName, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]sportLeaderboardEntryDTO, 0, len(board.Entries))
	for _, e := range board.Entries {
		entries = append(entries, sportLeaderboardEntryDTO{
			Rank:         e.Rank,
			UserID:       e.UserID,
			Username:     e.Username,
			TotalPoints:  e.TotalPoints,
			TotalValue:   e.TotalValue,
			AvgValue:     e.AvgValue,
			MaxValue:     e.MaxValue,
			Activities:   e.Activities,
			LastActivity: e.LastActivity.UTC().Format(dateLayout),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, sportLeaderboardDTO{
		Sport:   board.SportName,
		Unit:    board.Unit,
		Entries: entries,
	})
}

func (h *Handler) GetDemographicLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDemographicLeaderboard")
	defer span.End()

	dimension := r.PathValue("dimension")
	groups, err := h.leaderboardService.DemographicLeaderboard(ctx, dimension)
	if err != nil {
		h.logger.WarnContext(ctx, "demographic leaderboard failed", "dimension", dimension, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]demographicGroupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, demographicGroupDTO{
			Value:            g.Value,
			Users:            g.Users,
			TotalPoints:      g.TotalPoints,
			AvgPointsPerUser: g.AvgPointsPerUser,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRanking")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ranking, err := h.leaderboardService.UserRanking(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "user ranking failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userRankingToDTO(ranking))
}
