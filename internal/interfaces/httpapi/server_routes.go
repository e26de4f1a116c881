package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports", handler.ListSports)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetOverallLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/teams", handler.GetTeamLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/sports/{sportName}", handler.GetSportLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/demographics/{dimension}", handler.GetDemographicLeaderboard)
	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("PUT /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMe)))
	mux.Handle("GET /v1/me/ranking", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRanking)))
	mux.Handle("GET /v1/me/progress", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProgress)))
	mux.Handle("GET /v1/me/progress/weekly", RequireAuth(verifier, http.HandlerFunc(handler.GetMyWeeklyProgress)))
	mux.Handle("GET /v1/me/streaks", RequireAuth(verifier, http.HandlerFunc(handler.GetMyStreaks)))
	mux.Handle("GET /v1/me/achievements", RequireAuth(verifier, http.HandlerFunc(handler.GetMyAchievements)))
	mux.Handle("GET /v1/me/performances", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPerformances)))
	mux.Handle("POST /v1/performances", RequireAuth(verifier, http.HandlerFunc(handler.RecordPerformance)))
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/teams/{teamID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTeam)))
}
