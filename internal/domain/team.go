package domain

// ──────────────────────────────────────────────────────────────────────────────
// Team & Roster
// ──────────────────────────────────────────────────────────────────────────────

// Roster maps each position to the players acquired for it, in acquisition
// order. The order matters only for display; ledger logic never depends on it.
type Roster map[Position][]Player

// NewRoster returns an empty roster with a slot for every position.
func NewRoster() Roster {
	r := make(Roster, len(Positions))
	for _, p := range Positions {
		r[p] = []Player{}
	}
	return r
}

// Team is one auction participant. Budget is fixed at creation; everything
// spent is derived from the roster on every query, never stored redundantly.
type Team struct {
	Name   string `json:"name"`
	Budget int    `json:"budget"`
	Roster Roster `json:"roster"`
}

// NewTeam creates a team with an empty roster.
func NewTeam(name string, budget int) *Team {
	return &Team{Name: name, Budget: budget, Roster: NewRoster()}
}

// SpentOn returns the credits spent on a single position.
func (t *Team) SpentOn(pos Position) int {
	total := 0
	for _, pl := range t.Roster[pos] {
		total += pl.Price
	}
	return total
}

// Spent returns the total credits spent across the whole roster.
func (t *Team) Spent() int {
	total := 0
	for _, pos := range Positions {
		total += t.SpentOn(pos)
	}
	return total
}

// RemainingCredits returns budget minus total spend.
func (t *Team) RemainingCredits() int {
	return t.Budget - t.Spent()
}

// RemainingQuota returns, per position, how many roster slots are still open
// under the given quotas. Values are not clamped: external state corruption
// would show up as a negative remainder rather than being hidden.
func (t *Team) RemainingQuota(quotas map[Position]int) map[Position]int {
	out := make(map[Position]int, len(Positions))
	for _, pos := range Positions {
		out[pos] = quotas[pos] - len(t.Roster[pos])
	}
	return out
}

// RosterComplete returns true when every position has reached its quota.
func (t *Team) RosterComplete(quotas map[Position]int) bool {
	for _, pos := range Positions {
		if len(t.Roster[pos]) < quotas[pos] {
			return false
		}
	}
	return true
}

// HasPlayer reports whether name (exact match against stored names) appears
// anywhere in the roster, at any position.
func (t *Team) HasPlayer(name string) bool {
	for _, pos := range Positions {
		for _, pl := range t.Roster[pos] {
			if pl.Name == name {
				return true
			}
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// TeamSummary — read model for API responses and WS broadcasts
// ──────────────────────────────────────────────────────────────────────────────

// TeamSummary is a derived, read-only view of a team's auction progress.
type TeamSummary struct {
	Name             string           `json:"name"`
	Budget           int              `json:"budget"`
	Spent            int              `json:"spent"`
	RemainingCredits int              `json:"remaining_credits"`
	RemainingQuota   map[Position]int `json:"remaining_quota"`
	Complete         bool             `json:"complete"`
	Roster           Roster           `json:"roster"`
	Targets          map[Position]int `json:"targets"`
}

// ToSummary builds a TeamSummary under the given settings, including the
// dynamically reallocated spending targets.
func (t *Team) ToSummary(s Settings) TeamSummary {
	return TeamSummary{
		Name:             t.Name,
		Budget:           t.Budget,
		Spent:            t.Spent(),
		RemainingCredits: t.RemainingCredits(),
		RemainingQuota:   t.RemainingQuota(s.Quotas),
		Complete:         t.RosterComplete(s.Quotas),
		Roster:           t.Roster,
		Targets:          t.SpendingTargets(s),
	}
}
