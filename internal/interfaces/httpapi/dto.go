package httpapi

import (
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

const dateLayout = "2006-01-02"

type sportDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	PointsPerUnit float64 `json:"points_per_unit"`
	Description   string  `json:"description,omitempty"`
}

func sportToDTO(s sport.Sport) sportDTO {
	return sportDTO{
		ID:            s.ID,
		Name:          s.Name,
		Unit:          s.Unit,
		PointsPerUnit: s.PointsPerUnit,
		Description:   s.Description,
	}
}

type userDTO struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name,omitempty"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender,omitempty"`
	AgeGroup  string  `json:"age_group,omitempty"`
	Location  string  `json:"location,omitempty"`
	TeamID    *string `json:"team_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Gender:    u.Gender,
		AgeGroup:  u.AgeGroup,
		Location:  u.Location,
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type teamDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type teamSummaryDTO struct {
	teamDTO
	MemberCount   int    `json:"member_count"`
	CreatedByName string `json:"created_by_name,omitempty"`
}

func teamSummaryToDTO(s usecase.TeamSummary) teamSummaryDTO {
	return teamSummaryDTO{
		teamDTO:       teamToDTO(s.Team),
		MemberCount:   s.MemberCount,
		CreatedByName: s.CreatedByName,
	}
}

type leaderboardEntryDTO struct {
	Rank                 int      `json:"rank"`
	UserID               string   `json:"user_id"`
	Username             string   `json:"username"`
	FullName             string   `json:"full_name,omitempty"`
	TeamName             *string  `json:"team_name,omitempty"`
	TotalPoints          float64  `json:"total_points"`
	TotalActivities      int      `json:"total_activities"`
	LastActivity         *string  `json:"last_activity,omitempty"`
	AvgPointsPerActivity *float64 `json:"avg_points_per_activity,omitempty"`
}

func leaderboardEntryToDTO(e usecase.LeaderboardEntry) leaderboardEntryDTO {
	dto := leaderboardEntryDTO{
		Rank:                 e.Rank,
		UserID:               e.UserID,
		Username:             e.Username,
		FullName:             e.FullName,
		TeamName:             e.TeamName,
		TotalPoints:          e.TotalPoints,
		TotalActivities:      e.TotalActivities,
		AvgPointsPerActivity: e.AvgPointsPerActivity,
	}
	if e.LastActivity != nil {
		last := e.LastActivity.UTC().Format(dateLayout)
		dto.LastActivity = &last
	}
	return dto
}

type teamLeaderboardEntryDTO struct {
	Rank               int     `json:"rank"`
	TeamID             string  `json:"team_id"`
	Name               string  `json:"name"`
	MemberCount        int     `json:"member_count"`
	TotalPoints        float64 `json:"total_points"`
	AvgPointsPerMember float64 `json:"avg_points_per_member"`
	TotalActivities    int     `json:"total_activities"`
	LastActivity       *string `json:"last_activity,omitempty"`
}

type sportLeaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	TotalPoints  float64 `json:"total_points"`
	TotalValue   float64 `json:"total_value"`
	AvgValue     float64 `json:"avg_value"`
	MaxValue     float64 `json:"max_value"`
	Activities   int     `json:"activities"`
	LastActivity string  `json:"last_activity"`
}

type sportLeaderboardDTO struct {
	Sport   string                     `json:"sport"`
	Unit    string                     `json:"unit"`
	Entries []sportLeaderboardEntryDTO `json:"entries"`
}

type demographicGroupDTO struct {
	Value            string  `json:"value"`
	Users            int     `json:"users"`
	TotalPoints      float64 `json:"total_points"`
	AvgPointsPerUser float64 `json:"avg_points_per_user"`
}

type userRankingDTO struct {
	UserID      string  `json:"user_id"`
	Rank        int     `json:"rank"`
	TotalUsers  int     `json:"total_users"`
	TotalPoints float64 `json:"total_points"`
	Percentile  float64 `json:"percentile"`
}

type historyEntryDTO struct {
	ID     string  `json:"id"`
	Sport  string  `json:"sport"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
	Points float64 `json:"points"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes,omitempty"`
}

func historyEntryToDTO(e usecase.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		ID:     e.ID,
		Sport:  e.SportName,
		Unit:   e.Unit,
		Value:  e.Value,
		Points: e.Points,
		Date:   e.Date.UTC().Format(dateLayout),
		Notes:  e.Notes,
	}
}

func historyEntriesToDTO(entries []usecase.HistoryEntry) []historyEntryDTO {
	out := make([]historyEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryToDTO(e))
	}
	return out
}

type progressSummaryDTO struct {
	TotalPoints          float64 `json:"total_points"`
	TotalActivities      int     `json:"total_activities"`
	SportsPlayed         int     `json:"sports_played"`
	ActiveDays           int     `json:"active_days"`
	FirstActivity        *string `json:"first_activity,omitempty"`
	LastActivity         *string `json:"last_activity,omitempty"`
	AvgPointsPerActivity float64 `json:"avg_points_per_activity"`
	TeamName             *string `json:"team_name,omitempty"`
}

func progressSummaryToDTO(s usecase.ProgressSummary) progressSummaryDTO {
	dto := progressSummaryDTO{
		TotalPoints:          s.TotalPoints,
		TotalActivities:      s.TotalActivities,
		SportsPlayed:         s.SportsPlayed,
		ActiveDays:           s.ActiveDays,
		AvgPointsPerActivity: s.AvgPointsPerActivity,
		TeamName:             s.TeamName,
	}
	if s.FirstActivity != nil {
		first := s.FirstActivity.UTC().Format(dateLayout)
		dto.FirstActivity = &first
	}
	if s.LastActivity != nil {
		last := s.LastActivity.UTC().Format(dateLayout)
		dto.LastActivity = &last
	}
	return dto
}

type dailyPointDTO struct {
	Date             string  `json:"date"`
	Points           float64 `json:"points"`
	Activities       int     `json:"activities"`
	CumulativePoints float64 `json:"cumulative_points"`
}

type sportTotalsDTO struct {
	Sport       string  `json:"sport"`
	Unit        string  `json:"unit"`
	TotalValue  float64 `json:"total_value"`
	AvgValue    float64 `json:"avg_value"`
	MaxValue    float64 `json:"max_value"`
	TotalPoints float64 `json:"total_points"`
	Activities  int     `json:"activities"`
}

type progressSnapshotDTO struct {
	Summary        progressSummaryDTO `json:"summary"`
	Daily          []dailyPointDTO    `json:"daily"`
	SportBreakdown []sportTotalsDTO   `json:"sport_breakdown"`
	Recent         []historyEntryDTO  `json:"recent"`
}

func progressSnapshotToDTO(s usecase.ProgressSnapshot) progressSnapshotDTO {
	daily := make([]dailyPointDTO, 0, len(s.Daily))
	for _, d := range s.Daily {
		daily = append(daily, dailyPointDTO{
			Date:             d.Date.Format(dateLayout),
			Points:           d.Points,
			Activities:       d.Activities,
			CumulativePoints: d.CumulativePoints,
		})
	}
	breakdown := make([]sportTotalsDTO, 0, len(s.SportBreakdown))
	for _, b := range s.SportBreakdown {
		breakdown = append(breakdown, sportTotalsDTO{
			Sport:       b.SportName,
			Unit:        b.Unit,
			TotalValue:  b.TotalValue,
			AvgValue:    b.AvgValue,
			MaxValue:    b.MaxValue,
			TotalPoints: b.TotalPoints,
			Activities:  b.Activities,
		})
	}
	return progressSnapshotDTO{
		Summary:        progressSummaryToDTO(s.Summary),
		Daily:          daily,
		SportBreakdown: breakdown,
		Recent:         historyEntriesToDTO(s.Recent),
	}
}

type weeklyPointDTO struct {
	ISOYear              int     `json:"iso_year"`
	ISOWeek              int     `json:"iso_week"`
	WeekStart            string  `json:"week_start"`
	Points               float64 `json:"points"`
	Activities           int     `json:"activities"`
	AvgPointsPerActivity float64 `json:"avg_points_per_activity"`
}

type streaksDTO struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	ActiveDays    int     `json:"active_days"`
	SpanDays      int     `json:"span_days"`
	Consistency   float64 `json:"consistency"`
}

func streaksToDTO(s usecase.Streaks) streaksDTO {
	return streaksDTO{
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		ActiveDays:    s.ActiveDays,
		SpanDays:      s.SpanDays,
		Consistency:   s.Consistency,
	}
}

type achievementDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

type dashboardDTO struct {
	Profile    userDTO               `json:"profile"`
	Ranking    userRankingDTO        `json:"ranking"`
	Summary    progressSummaryDTO    `json:"summary"`
	Streaks    streaksDTO            `json:"streaks"`
	TopOverall []leaderboardEntryDTO `json:"top_overall"`
	Recent     []historyEntryDTO     `json:"recent"`
}

func userRankingToDTO(r usecase.UserRanking) userRankingDTO {
	return userRankingDTO{
		UserID:      r.UserID,
		Rank:        r.Rank,
		TotalUsers:  r.TotalUsers,
		TotalPoints: r.TotalPoints,
		Percentile:  r.Percentile,
	}
}
