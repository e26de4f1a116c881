package httpapi

import "net/http"

func (h *Handler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProgress")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.progressService.Snapshot(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "progress snapshot failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressSnapshotToDTO(snapshot))
}

func (h *Handler) GetMyWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyWeeklyProgress")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weeks := queryInt(r, "weeks", 0)
	points, err := h.progressService.Weekly(ctx, principal.UserID, weeks)
	if err != nil {
		h.logger.WarnContext(ctx, "weekly progress failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weeklyPointDTO, 0, len(points))
	for _, p := range points {
		items = append(items, weeklyPointDTO{
			ISOYear:              p.ISOYear,
			ISOWeek:              p.ISOWeek,
			WeekStart:            p.WeekStart.Format(dateLayout),
			Points:               p.Points,
			Activities:           p.Activities,
			AvgPointsPerActivity: p.AvgPointsPerActivity,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyStreaks")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	streaks, err := h.progressService.Streaks(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "streaks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, streaksToDTO(streaks))
}

func (h *Handler) GetMyAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyAchievements")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	achievements, err := h.progressService.Achievements(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "achievements failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]achievementDTO, 0, len(achievements))
	for _, a := range achievements {
		items = append(items, achievementDTO{
			Code:        a.Code,
			Name:        a.Name,
			Description: a.Description,
			Earned:      a.Earned,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
