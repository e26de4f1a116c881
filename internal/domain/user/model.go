package user

import "time"

// User is a registered challenge participant. Credentials live in the
// external account service; this record carries profile attributes and
// the optional team affiliation only.
type User struct {
	ID        string
	Username  string
	FullName  string
	Email     string
	Gender    string
	AgeGroup  string
	Location  string
	TeamID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}
