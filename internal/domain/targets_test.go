package domain_test

import (
	"testing"

	"github.com/fantalega/asta/internal/domain"
	"github.com/shopspring/decimal"
)

// ── Static baseline ───────────────────────────────────────────────────────────

func TestSpendingTargets_FreshTeam(t *testing.T) {
	s := domain.DefaultSettings()
	team := domain.NewTeam("Test", 700)

	got := team.SpendingTargets(s)
	want := map[domain.Position]int{
		domain.PositionGoalkeeper: 70,
		domain.PositionDefender:   140,
		domain.PositionMidfielder: 210,
		domain.PositionAttacker:   280,
	}
	for pos, w := range want {
		if got[pos] != w {
			t.Errorf("targets[%s] = %d, want %d", pos, got[pos], w)
		}
	}
}

// ── Reallocation after a completed position ───────────────────────────────────

// A team that fills its goalkeeper quota for 50 total gets the saved 20
// credits folded back into the open positions, weighted by the original
// fractions.
func TestSpendingTargets_GoalkeepersCompleteUnderTarget(t *testing.T) {
	s := domain.DefaultSettings()
	l := domain.NewLeague(s)
	team := l.Teams[0]

	for i, price := range []int{30, 15, 5} {
		name := []string{"Maignan", "Sommer", "Carnesecchi"}[i]
		if _, err := l.Acquire(team.Name, name, domain.PositionGoalkeeper, price); err != nil {
			t.Fatalf("Acquire(%s) error = %v", name, err)
		}
	}

	got := team.SpendingTargets(s)
	// Pool 650 over fractions .20/.30/.40 (sum .90):
	//   D = round(650×2/9) = 144, C = round(650×3/9) = 217, A = 650−144−217 = 289.
	want := map[domain.Position]int{
		domain.PositionGoalkeeper: 50,
		domain.PositionDefender:   144,
		domain.PositionMidfielder: 217,
		domain.PositionAttacker:   289,
	}
	for pos, w := range want {
		if got[pos] != w {
			t.Errorf("targets[%s] = %d, want %d", pos, got[pos], w)
		}
	}
}

// Overspending on a completed position shrinks the pool for the others.
func TestSpendingTargets_GoalkeepersCompleteOverTarget(t *testing.T) {
	s := domain.DefaultSettings()
	l := domain.NewLeague(s)
	team := l.Teams[0]

	for i, price := range []int{80, 30, 10} {
		name := []string{"Maignan", "Sommer", "Carnesecchi"}[i]
		if _, err := l.Acquire(team.Name, name, domain.PositionGoalkeeper, price); err != nil {
			t.Fatal(err)
		}
	}

	got := team.SpendingTargets(s)
	if got[domain.PositionGoalkeeper] != 120 {
		t.Errorf("completed position locked at %d, want actual spend 120",
			got[domain.PositionGoalkeeper])
	}
	sum := 0
	for _, v := range got {
		sum += v
	}
	if sum != 700 {
		t.Errorf("targets sum = %d, want the full budget 700", sum)
	}
}

// ── Sum property ──────────────────────────────────────────────────────────────

// While at least one position is still open, the targets always sum to the
// budget, whatever mix of purchases preceded the query.
func TestSpendingTargets_SumEqualsBudget(t *testing.T) {
	s := domain.DefaultSettings()
	l := domain.NewLeague(s)
	team := l.Teams[0]

	buys := []struct {
		name  string
		pos   domain.Position
		price int
	}{
		{"Maignan", domain.PositionGoalkeeper, 33},
		{"Bastoni", domain.PositionDefender, 27},
		{"Barella", domain.PositionMidfielder, 51},
		{"Lautaro", domain.PositionAttacker, 119},
		{"Sommer", domain.PositionGoalkeeper, 14},
		{"Dimarco", domain.PositionDefender, 22},
	}
	for _, b := range buys {
		if _, err := l.Acquire(team.Name, b.name, b.pos, b.price); err != nil {
			t.Fatalf("Acquire(%s) error = %v", b.name, err)
		}
		sum := 0
		for _, v := range team.SpendingTargets(s) {
			sum += v
		}
		if sum != team.Budget {
			t.Errorf("after buying %s: targets sum = %d, want %d", b.name, sum, team.Budget)
		}
	}
}

// ── All positions complete ────────────────────────────────────────────────────

func TestSpendingTargets_FullRoster(t *testing.T) {
	s := domain.Settings{
		TeamCount:     2,
		InitialBudget: 100,
		Quotas: map[domain.Position]int{
			domain.PositionGoalkeeper: 1,
			domain.PositionDefender:   1,
			domain.PositionMidfielder: 1,
			domain.PositionAttacker:   1,
		},
		TargetFractions: domain.DefaultSettings().TargetFractions,
	}
	l := domain.NewLeague(s)
	team := l.Teams[0]

	for _, b := range []struct {
		name  string
		pos   domain.Position
		price int
	}{
		{"GK", domain.PositionGoalkeeper, 5},
		{"DF", domain.PositionDefender, 10},
		{"MF", domain.PositionMidfielder, 20},
		{"FW", domain.PositionAttacker, 40},
	} {
		if _, err := l.Acquire(team.Name, b.name, b.pos, b.price); err != nil {
			t.Fatal(err)
		}
	}

	got := team.SpendingTargets(s)
	// Complete roster: every target is the actual spend, summing to 75 not 100.
	want := map[domain.Position]int{
		domain.PositionGoalkeeper: 5,
		domain.PositionDefender:   10,
		domain.PositionMidfielder: 20,
		domain.PositionAttacker:   40,
	}
	for pos, w := range want {
		if got[pos] != w {
			t.Errorf("targets[%s] = %d, want actual spend %d", pos, got[pos], w)
		}
	}
}

// ── Degenerate fractions ──────────────────────────────────────────────────────

// Open positions whose fractions sum to zero fall back to equal weights
// rather than dividing by zero.
func TestSpendingTargets_ZeroFractionFallback(t *testing.T) {
	s := domain.DefaultSettings()
	s.TargetFractions = map[domain.Position]decimal.Decimal{}
	team := domain.NewTeam("Test", 700)

	got := team.SpendingTargets(s)
	sum := 0
	for _, v := range got {
		sum += v
	}
	if sum != 700 {
		t.Errorf("targets sum = %d, want 700 under equal-weight fallback", sum)
	}
	// 700/4 = 175 per position.
	if got[domain.PositionGoalkeeper] != 175 {
		t.Errorf("targets[P] = %d, want 175", got[domain.PositionGoalkeeper])
	}
}
