package team

import "time"

// Team groups users for the team leaderboard. Membership is the inverse
// of User.TeamID; a team does not own its member list.
type Team struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
