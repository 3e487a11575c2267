// Package domain defines the core business entities and types for the
// fantacalcio auction ledger system.
package domain

import "strings"

// ──────────────────────────────────────────────────────────────────────────────
// Position
// ──────────────────────────────────────────────────────────────────────────────

// Position is one of the four fantacalcio roster roles.
type Position string

const (
	PositionGoalkeeper Position = "P"
	PositionDefender   Position = "D"
	PositionMidfielder Position = "C"
	PositionAttacker   Position = "A"
)

// Positions lists all roles in the fixed display order P, D, C, A.
// The order is used for roster rendering and for deterministic target
// redistribution; it carries no other meaning.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionAttacker,
}

// IsValid returns true if the position is one of the four recognised roles.
func (p Position) IsValid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionAttacker:
		return true
	}
	return false
}

// Label returns the human-readable Italian role name.
func (p Position) Label() string {
	switch p {
	case PositionGoalkeeper:
		return "Portiere"
	case PositionDefender:
		return "Difensore"
	case PositionMidfielder:
		return "Centrocampista"
	case PositionAttacker:
		return "Attaccante"
	}
	return string(p)
}

// ParsePosition normalises a raw role code ("p", " D ", …) to a Position.
// Returns ErrInvalidPosition for anything outside the closed set.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", ErrInvalidPosition
	}
	return p, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Player
// ──────────────────────────────────────────────────────────────────────────────

// Player is an acquired roster entry. Players are created at acquisition
// time with a trimmed name and are never mutated afterwards.
type Player struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Price    int      `json:"price"`
}
