package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/platform/cache"
)

// Demographic dimensions accepted by DemographicLeaderboard.
const (
	DimensionGender   = "gender"
	DimensionAgeGroup = "age_group"
	DimensionLocation = "location"
)

// LeaderboardEntry covers every user. LastActivity and
// AvgPointsPerActivity are nil for users with no performances.
type LeaderboardEntry struct {
	Rank                 int
	UserID               string
	Username             string
	FullName             string
	TeamName             *string
	TotalPoints          float64
	TotalActivities      int
	LastActivity         *time.Time
	AvgPointsPerActivity *float64
}

type TeamLeaderboardEntry struct {
	Rank               int
	TeamID             string
	Name               string
	MemberCount        int
	TotalPoints        float64
	AvgPointsPerMember float64
	TotalActivities    int
	LastActivity       *time.Time
}

// SportLeaderboardEntry describes one participant, so the value
// aggregates are always defined.
type SportLeaderboardEntry struct {
	Rank         int
	UserID       string
	Username     string
	TotalPoints  float64
	TotalValue   float64
	AvgValue     float64
	MaxValue     float64
	Activities   int
	LastActivity time.Time
}

type SportLeaderboard struct {
	SportName string
	Unit      string
	Entries   []SportLeaderboardEntry
}

type DemographicGroup struct {
	Value            string
	Users            int
	TotalPoints      float64
	AvgPointsPerUser float64
}

// UserRanking places one user inside the overall standings. Rank is 0
// when the user is not part of the population.
type UserRanking struct {
	UserID      string
	Rank        int
	TotalUsers  int
	TotalPoints float64
	Percentile  float64
}

type LeaderboardService struct {
	userRepo        user.Repository
	teamRepo        team.Repository
	sportRepo       sport.Repository
	performanceRepo performance.Repository
	store           *cache.Store
}

func NewLeaderboardService(
	userRepo user.Repository,
	teamRepo team.Repository,
	sportRepo sport.Repository,
	performanceRepo performance.Repository,
	store *cache.Store,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:        userRepo,
		teamRepo:        teamRepo,
		sportRepo:       sportRepo,
		performanceRepo: performanceRepo,
		store:           store,
	}
}

// OverallLeaderboard ranks every user by total points. Users without
// any recorded performance appear with zero totals. A limit <= 0 means
// no truncation.
func (s *LeaderboardService) OverallLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startSpan(ctx, "LeaderboardService.OverallLeaderboard", attribute.Int("leaderboard.limit", limit))
	var err error
	defer func() { endSpan(span, err) }()

	standings, err := s.overallStandings(ctx)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}

	out := make([]LeaderboardEntry, len(standings))
	copy(out, standings)
	return out, nil
}

// TeamLeaderboard ranks teams with at least one member by combined
// points, then by average points per member.
func (s *LeaderboardService) TeamLeaderboard(ctx context.Context, limit int) ([]TeamLeaderboardEntry, error) {
	ctx, span := startSpan(ctx, "LeaderboardService.TeamLeaderboard", attribute.Int("leaderboard.limit", limit))
	var err error
	defer func() { endSpan(span, err) }()

	value, err := s.store.GetOrLoad(ctx, "leaderboard:teams", func(ctx context.Context) (any, error) {
		return s.buildTeamStandings(ctx)
	})
	if err != nil {
		return nil, err
	}

	standings := value.([]TeamLeaderboardEntry)
	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}

	out := make([]TeamLeaderboardEntry, len(standings))
	copy(out, standings)
	return out, nil
}

// SportLeaderboard ranks users within one sport. Only users with at
// least one performance in that sport participate.
func (s *LeaderboardService) SportLeaderboard(ctx context.Context, sportName string, limit int) (SportLeaderboard, error) {
	ctx, span := startSpan(ctx, "LeaderboardService.SportLeaderboard", attribute.String("leaderboard.sport", sportName))
	var err error
	defer func() { endSpan(span, err) }()

	sportName = strings.TrimSpace(sportName)
	if sportName == "" {
		err = fmt.Errorf("%w: sport name is required", ErrInvalidInput)
		return SportLeaderboard{}, err
	}

	sp, exists, err := s.sportRepo.GetByName(ctx, sportName)
	if err != nil {
		err = fmt.Errorf("get sport: %w", err)
		return SportLeaderboard{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: sport=%s", ErrUnknownSport, sportName)
		return SportLeaderboard{}, err
	}

	value, err := s.store.GetOrLoad(ctx, "leaderboard:sport:"+sp.ID, func(ctx context.Context) (any, error) {
		return s.buildSportStandings(ctx, sp)
	})
	if err != nil {
		return SportLeaderboard{}, err
	}

	entries := value.([]SportLeaderboardEntry)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]SportLeaderboardEntry, len(entries))
	copy(out, entries)
	return SportLeaderboard{SportName: sp.Name, Unit: sp.Unit, Entries: out}, nil
}

// DemographicLeaderboard groups users by one profile dimension and
// aggregates points per group.
func (s *LeaderboardService) DemographicLeaderboard(ctx context.Context, dimension string) ([]DemographicGroup, error) {
	ctx, span := startSpan(ctx, "LeaderboardService.DemographicLeaderboard", attribute.String("leaderboard.dimension", dimension))
	var err error
	defer func() { endSpan(span, err) }()

	dimension = strings.TrimSpace(dimension)
	switch dimension {
	case DimensionGender, DimensionAgeGroup, DimensionLocation:
	default:
		err = fmt.Errorf("%w: unknown demographic dimension %q", ErrInvalidInput, dimension)
		return nil, err
	}

	value, err := s.store.GetOrLoad(ctx, "leaderboard:demographics:"+dimension, func(ctx context.Context) (any, error) {
		return s.buildDemographicGroups(ctx, dimension)
	})
	if err != nil {
		return nil, err
	}

	groups := value.([]DemographicGroup)
	out := make([]DemographicGroup, len(groups))
	copy(out, groups)
	return out, nil
}

// UserRanking resolves one user's place in the overall standings.
// Percentile is the share of the population at or below the user's
// rank, rounded to one decimal.
func (s *LeaderboardService) UserRanking(ctx context.Context, userID string) (UserRanking, error) {
	ctx, span := startSpan(ctx, "LeaderboardService.UserRanking", attribute.String("leaderboard.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return UserRanking{}, err
	}

	standings, err := s.overallStandings(ctx)
	if err != nil {
		return UserRanking{}, err
	}

	total := len(standings)
	for _, entry := range standings {
		if entry.UserID != userID {
			continue
		}
		percentile := float64(total-entry.Rank+1) / float64(total) * 100
		return UserRanking{
			UserID:      userID,
			Rank:        entry.Rank,
			TotalUsers:  total,
			TotalPoints: entry.TotalPoints,
			Percentile:  math.Round(percentile*10) / 10,
		}, nil
	}

	return UserRanking{UserID: userID, Rank: 0, TotalUsers: total}, nil
}

func (s *LeaderboardService) overallStandings(ctx context.Context) ([]LeaderboardEntry, error) {
	value, err := s.store.GetOrLoad(ctx, "leaderboard:overall", func(ctx context.Context) (any, error) {
		return s.buildOverallStandings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]LeaderboardEntry), nil
}

func (s *LeaderboardService) buildOverallStandings(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	performances, err := s.performanceRepo.List(ctx, performance.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	type totals struct {
		points     float64
		activities int
		last       time.Time
	}
	byUser := make(map[string]totals, len(users))
	for _, p := range performances {
		t := byUser[p.UserID]
		t.points += p.PointsCalculated
		t.activities++
		if p.DateRecorded.After(t.last) {
			t.last = p.DateRecorded
		}
		byUser[p.UserID] = t
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		t := byUser[u.ID]
		entry := LeaderboardEntry{
			UserID:          u.ID,
			Username:        u.Username,
			FullName:        u.FullName,
			TotalPoints:     t.points,
			TotalActivities: t.activities,
		}
		if t.activities > 0 {
			last := t.last
			avg := t.points / float64(t.activities)
			entry.LastActivity = &last
			entry.AvgPointsPerActivity = &avg
		}
		if u.TeamID != nil {
			if name, ok := teamNames[*u.TeamID]; ok {
				entry.TeamName = &name
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].TotalActivities != entries[j].TotalActivities {
			return entries[i].TotalActivities > entries[j].TotalActivities
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (s *LeaderboardService) buildTeamStandings(ctx context.Context) ([]TeamLeaderboardEntry, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	performances, err := s.performanceRepo.List(ctx, performance.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	type userTotals struct {
		points     float64
		activities int
		last       time.Time
	}
	byUser := make(map[string]userTotals, len(users))
	for _, p := range performances {
		t := byUser[p.UserID]
		t.points += p.PointsCalculated
		t.activities++
		if p.DateRecorded.After(t.last) {
			t.last = p.DateRecorded
		}
		byUser[p.UserID] = t
	}

	type totals struct {
		members    int
		points     float64
		activities int
		last       time.Time
	}
	byTeam := make(map[string]totals, len(teams))
	for _, u := range users {
		if u.TeamID == nil {
			continue
		}
		ut := byUser[u.ID]
		t := byTeam[*u.TeamID]
		t.members++
		t.points += ut.points
		t.activities += ut.activities
		if ut.last.After(t.last) {
			t.last = ut.last
		}
		byTeam[*u.TeamID] = t
	}

	entries := make([]TeamLeaderboardEntry, 0, len(teams))
	for _, tm := range teams {
		t := byTeam[tm.ID]
		if t.members == 0 {
			continue
		}
		entry := TeamLeaderboardEntry{
			TeamID:             tm.ID,
			Name:               tm.Name,
			MemberCount:        t.members,
			TotalPoints:        t.points,
			AvgPointsPerMember: t.points / float64(t.members),
			TotalActivities:    t.activities,
		}
		if t.activities > 0 {
			last := t.last
			entry.LastActivity = &last
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].AvgPointsPerMember != entries[j].AvgPointsPerMember {
			return entries[i].AvgPointsPerMember > entries[j].AvgPointsPerMember
		}
		return entries[i].TeamID < entries[j].TeamID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (s *LeaderboardService) buildSportStandings(ctx context.Context, sp sport.Sport) ([]SportLeaderboardEntry, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	performances, err := s.performanceRepo.List(ctx, performance.Filter{SportID: sp.ID})
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	type totals struct {
		points     float64
		value      float64
		maxValue   float64
		activities int
		last       time.Time
	}
	byUser := make(map[string]totals)
	for _, p := range performances {
		t := byUser[p.UserID]
		t.points += p.PointsCalculated
		t.value += p.Value
		if p.Value > t.maxValue {
			t.maxValue = p.Value
		}
		t.activities++
		if p.DateRecorded.After(t.last) {
			t.last = p.DateRecorded
		}
		byUser[p.UserID] = t
	}

	entries := make([]SportLeaderboardEntry, 0, len(byUser))
	for userID, t := range byUser {
		entries = append(entries, SportLeaderboardEntry{
			UserID:       userID,
			Username:     usernames[userID],
			TotalPoints:  t.points,
			TotalValue:   t.value,
			AvgValue:     t.value / float64(t.activities),
			MaxValue:     t.maxValue,
			Activities:   t.activities,
			LastActivity: t.last,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].TotalValue != entries[j].TotalValue {
			return entries[i].TotalValue > entries[j].TotalValue
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (s *LeaderboardService) buildDemographicGroups(ctx context.Context, dimension string) ([]DemographicGroup, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	performances, err := s.performanceRepo.List(ctx, performance.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	pointsByUser := make(map[string]float64, len(users))
	for _, p := range performances {
		pointsByUser[p.UserID] += p.PointsCalculated
	}

	type totals struct {
		users  int
		points float64
	}
	byValue := make(map[string]totals)
	for _, u := range users {
		var v string
		switch dimension {
		case DimensionGender:
			v = u.Gender
		case DimensionAgeGroup:
			v = u.AgeGroup
		case DimensionLocation:
			v = u.Location
		}
		if v == "" {
			v = "Unspecified"
		}
		t := byValue[v]
		t.users++
		t.points += pointsByUser[u.ID]
		byValue[v] = t
	}

	groups := make([]DemographicGroup, 0, len(byValue))
	for v, t := range byValue {
		groups = append(groups, DemographicGroup{
			Value:            v,
			Users:            t.users,
			TotalPoints:      t.points,
			AvgPointsPerUser: t.points / float64(t.users),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalPoints != groups[j].TotalPoints {
			return groups[i].TotalPoints > groups[j].TotalPoints
		}
		return groups[i].Value < groups[j].Value
	})

	return groups, nil
}
