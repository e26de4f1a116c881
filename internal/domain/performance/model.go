package performance

import "time"

// Performance is one recorded activity. PointsCalculated is fixed at
// insertion time from the sport's factor and never rebased, even if the
// factor changes later.
type Performance struct {
	ID               string
	UserID           string
	SportID          string
	Value            float64
	PointsCalculated float64
	DateRecorded     time.Time
	Notes            string
	CreatedAt        time.Time
}

// Filter narrows List calls. Zero-valued fields are ignored.
type Filter struct {
	UserID  string
	SportID string
	From    *time.Time
	To      *time.Time
}
