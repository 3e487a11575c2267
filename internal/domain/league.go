package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Settings
// ──────────────────────────────────────────────────────────────────────────────

// Settings holds the league-wide auction rules. They are read-mostly: fixed
// at process start and only ever applied again to grow the league.
type Settings struct {
	TeamCount       int                          `json:"team_count"`
	InitialBudget   int                          `json:"initial_budget"`
	Quotas          map[Position]int             `json:"quotas"`
	AllowDuplicates bool                         `json:"allow_duplicates"`
	TargetFractions map[Position]decimal.Decimal `json:"target_fractions"`
}

// DefaultSettings returns the standard league setup: 10 teams, 700 credits,
// roster 3P/8D/8C/6A, duplicates disallowed, spending targets 10/20/30/40 %.
func DefaultSettings() Settings {
	return Settings{
		TeamCount:     10,
		InitialBudget: 700,
		Quotas: map[Position]int{
			PositionGoalkeeper: 3,
			PositionDefender:   8,
			PositionMidfielder: 8,
			PositionAttacker:   6,
		},
		AllowDuplicates: false,
		TargetFractions: map[Position]decimal.Decimal{
			PositionGoalkeeper: decimal.NewFromFloat(0.10),
			PositionDefender:   decimal.NewFromFloat(0.20),
			PositionMidfielder: decimal.NewFromFloat(0.30),
			PositionAttacker:   decimal.NewFromFloat(0.40),
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PurchaseRecord
// ──────────────────────────────────────────────────────────────────────────────

// PurchaseRecord is one entry of the append-only auction audit log. Records
// are written exactly once per successful acquisition and never mutated or
// deleted — removing a player from a roster does not retract the historical
// record, and renaming a team does not rewrite the name captured here.
type PurchaseRecord struct {
	ID         uuid.UUID `json:"id"`
	Team       string    `json:"team"`
	Player     string    `json:"player"`
	Position   Position  `json:"position"`
	Price      int       `json:"price"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ──────────────────────────────────────────────────────────────────────────────
// League
// ──────────────────────────────────────────────────────────────────────────────

// League is the aggregate root: settings, the insertion-ordered set of teams
// (unique by name), the purchase history, and the index of the team the
// operator is following on the board.
//
// League methods are NOT safe for concurrent use; the service layer wraps
// every call in a league-scoped lock so the duplicate scan and the roster
// append stay atomic together.
type League struct {
	Settings     Settings
	Teams        []*Team
	History      []PurchaseRecord
	FollowedTeam int
}

// NewLeague creates a league with default-named teams at the configured
// budget. The first team keeps the traditional house name.
func NewLeague(s Settings) *League {
	l := &League{Settings: s}
	l.growTeams(s.TeamCount)
	return l
}

// growTeams appends default-named teams until the league has n of them.
// The league never shrinks: a smaller n is a no-op.
func (l *League) growTeams(n int) {
	for i := len(l.Teams); i < n; i++ {
		name := fmt.Sprintf("Squadra %d", i+1)
		if i == 0 {
			name = "Terzetto Scherzetto"
		}
		l.Teams = append(l.Teams, NewTeam(name, l.Settings.InitialBudget))
	}
}

// EnsureTeamCount grows the league to at least n teams. Used after a
// snapshot restore when the configured team count exceeds the saved one.
func (l *League) EnsureTeamCount(n int) {
	l.growTeams(n)
	if n > l.Settings.TeamCount {
		l.Settings.TeamCount = n
	}
}

// TeamByName returns the team with exactly the given name.
func (l *League) TeamByName(name string) (*Team, error) {
	for _, t := range l.Teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, ErrTeamNotFound
}

// RosteredPlayerNames returns every player name across all teams and all
// positions. Recomputed by full scan on every call — league sizes are tens
// of teams with tens of players each, so an incremental index is not worth
// its invalidation burden.
func (l *League) RosteredPlayerNames() []string {
	var names []string
	for _, t := range l.Teams {
		for _, pos := range Positions {
			for _, pl := range t.Roster[pos] {
				names = append(names, pl.Name)
			}
		}
	}
	return names
}

// isRostered reports whether name is held by any team at any position.
func (l *League) isRostered(name string) bool {
	for _, t := range l.Teams {
		if t.HasPlayer(name) {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger engine — the only code path permitted to mutate rosters or history
// ──────────────────────────────────────────────────────────────────────────────

// Acquire validates and applies a player acquisition for the named team.
// Checks run in a fixed order and the first failure wins:
//
//	1. name non-empty after trimming
//	2. position within the closed set
//	3. price ≥ 0
//	4. no league-wide duplicate (trimmed, case-sensitive) unless allowed
//	5. open quota slot at the position
//	6. price within remaining credits
//
// On success the roster append and the history append happen together; a
// rejection leaves no observable state change.
func (l *League) Acquire(teamName, playerName string, pos Position, price int) (*PurchaseRecord, error) {
	team, err := l.TeamByName(teamName)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(playerName)
	if name == "" {
		return nil, ErrEmptyPlayerName
	}
	if !pos.IsValid() {
		return nil, ErrInvalidPosition
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if !l.Settings.AllowDuplicates && l.isRostered(name) {
		return nil, ErrDuplicatePlayer
	}
	if l.Settings.Quotas[pos]-len(team.Roster[pos]) <= 0 {
		return nil, ErrQuotaFull
	}
	if team.RemainingCredits() < price {
		return nil, ErrInsufficientCredits
	}

	team.Roster[pos] = append(team.Roster[pos], Player{Name: name, Position: pos, Price: price})
	rec := PurchaseRecord{
		ID:         uuid.New(),
		Team:       team.Name,
		Player:     name,
		Position:   pos,
		Price:      price,
		RecordedAt: time.Now().UTC(),
	}
	l.History = append(l.History, rec)
	return &rec, nil
}

// Remove deletes the first roster entry at pos whose stored name equals
// playerName exactly (no trimming). The purchase history is deliberately
// left untouched: it is an audit log, not a mirror of current state.
func (l *League) Remove(teamName string, pos Position, playerName string) error {
	team, err := l.TeamByName(teamName)
	if err != nil {
		return err
	}
	if !pos.IsValid() {
		return ErrInvalidPosition
	}
	entries := team.Roster[pos]
	for i, pl := range entries {
		if pl.Name == playerName {
			team.Roster[pos] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// Rename changes a team's name in place. An empty (after trimming) or
// unchanged name is a silent no-op; a collision with another team is
// rejected. Historical purchase records keep the name captured at purchase
// time.
func (l *League) Rename(teamName, newName string) error {
	team, err := l.TeamByName(teamName)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(newName)
	if name == "" || name == team.Name {
		return nil
	}
	for _, other := range l.Teams {
		if other != team && other.Name == name {
			return ErrTeamNameTaken
		}
	}
	team.Name = name
	return nil
}

// SetFollowedTeam points the board at the team with the given index.
func (l *League) SetFollowedTeam(idx int) error {
	if idx < 0 || idx >= len(l.Teams) {
		return ErrFollowedTeamOutOfRange
	}
	l.FollowedTeam = idx
	return nil
}
