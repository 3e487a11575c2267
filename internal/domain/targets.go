package domain

import "github.com/shopspring/decimal"

// ──────────────────────────────────────────────────────────────────────────────
// Dynamic spending targets
// ──────────────────────────────────────────────────────────────────────────────

// SpendingTargets computes the per-position spending target in credits for
// this team. The result is advisory: it never gates an acquisition — only
// quota and budget checks are hard constraints.
//
// Positions whose quota is complete are locked at their actual spend; the
// rest of the budget is redistributed over the still-open positions in
// proportion to the original target fractions. A manager who is done buying
// goalkeepers has that spend reclassified as a sunk baseline instead of
// being compared against a stale estimate.
//
// The computation is a pure function of the current roster and is redone
// from scratch on every call: any acquisition or removal can flip a
// position between open and complete and change the whole partition.
func (t *Team) SpendingTargets(s Settings) map[Position]int {
	targets := make(map[Position]int, len(Positions))

	var completed, remaining []Position
	for _, pos := range Positions {
		if len(t.Roster[pos]) >= s.Quotas[pos] {
			completed = append(completed, pos)
		} else {
			remaining = append(remaining, pos)
		}
	}

	// Lock completed positions at what was actually spent there.
	locked := 0
	for _, pos := range completed {
		spent := t.SpentOn(pos)
		targets[pos] = spent
		locked += spent
	}

	// Everything complete: the targets sum to the actual total spend.
	if len(remaining) == 0 {
		return targets
	}

	pool := t.Budget - locked
	if pool < 0 {
		pool = 0
	}

	// Normalised weights over the open positions, from the original
	// fractions. A zero denominator falls back to equal weights.
	sumFrac := decimal.Zero
	for _, pos := range remaining {
		sumFrac = sumFrac.Add(s.TargetFractions[pos])
	}

	poolDec := decimal.NewFromInt(int64(pool))
	assigned := 0
	for i, pos := range remaining {
		if i == len(remaining)-1 {
			// Last open position absorbs the rounding error so the open
			// targets sum exactly to the pool.
			targets[pos] = pool - assigned
			break
		}
		var weight decimal.Decimal
		if sumFrac.IsZero() {
			weight = decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(remaining))))
		} else {
			weight = s.TargetFractions[pos].Div(sumFrac)
		}
		share := int(poolDec.Mul(weight).Round(0).IntPart())
		targets[pos] = share
		assigned += share
	}

	// Residual correction: with pool = budget − locked actuals the grand
	// total already equals the budget, but a clamped pool can leave a gap.
	// Any leftover lands on the first open position.
	total := 0
	for _, pos := range Positions {
		total += targets[pos]
	}
	if residual := t.Budget - total; residual != 0 {
		targets[remaining[0]] += residual
	}

	return targets
}
