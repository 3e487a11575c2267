package domain

import (
	"errors"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

// Acquisition input errors
var (
	// ErrEmptyPlayerName is returned when the player name is empty or
	// whitespace-only after trimming.
	ErrEmptyPlayerName = errors.New("player name must not be empty")

	// ErrInvalidPosition is returned when a role code is outside P/D/C/A.
	ErrInvalidPosition = errors.New("invalid position: must be one of P, D, C, A")

	// ErrNegativePrice is returned when the acquisition price is below zero.
	ErrNegativePrice = errors.New("price must not be negative")
)

// Constraint errors
var (
	// ErrDuplicatePlayer is returned when the player name is already rostered
	// by any team in the league while duplicates are disallowed.
	ErrDuplicatePlayer = errors.New("player is already assigned to a team")

	// ErrQuotaFull is returned when the target position has no open roster
	// slot left for the team.
	ErrQuotaFull = errors.New("position quota is already complete")

	// ErrInsufficientCredits is returned when the price exceeds the team's
	// remaining credits.
	ErrInsufficientCredits = errors.New("insufficient remaining credits")
)

// Lookup / rename errors
var (
	// ErrTeamNotFound is returned when no team matches the given name.
	ErrTeamNotFound = errors.New("team not found")

	// ErrPlayerNotFound is returned when a removal target does not exist in
	// the specified roster slot.
	ErrPlayerNotFound = errors.New("player not found in roster")

	// ErrTeamNameTaken is returned when a rename collides with another team.
	ErrTeamNameTaken = errors.New("team name is already in use")

	// ErrFollowedTeamOutOfRange is returned when the followed-team index does
	// not point at an existing team.
	ErrFollowedTeamOutOfRange = errors.New("followed team index out of range")
)

// Snapshot errors
var (
	// ErrSnapshotNotFound is returned by a snapshot store when no previously
	// saved league state exists. Callers start from a default league.
	ErrSnapshotNotFound = errors.New("no league snapshot found")
)

// ──────────────────────────────────────────────────────────────────────────────
// Helper predicates
// ──────────────────────────────────────────────────────────────────────────────

// invalidInputErrors collects the input-shape rejections so IsInvalidInput
// stays in sync automatically.
var invalidInputErrors = []error{
	ErrEmptyPlayerName,
	ErrInvalidPosition,
	ErrNegativePrice,
	ErrFollowedTeamOutOfRange,
}

// IsInvalidInput returns true when err is a malformed-input rejection
// (empty name, unknown role, negative price). Use it to translate domain
// errors to HTTP 400 responses.
func IsInvalidInput(err error) bool {
	for _, target := range invalidInputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound returns true when err (or any error in its chain) is one of the
// domain "not found" errors.
func IsNotFound(err error) bool {
	for _, target := range []error{ErrTeamNotFound, ErrPlayerNotFound, ErrSnapshotNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConstraint returns true for business-rule rejections — the acquisition
// was well-formed but the current league state forbids it.
func IsConstraint(err error) bool {
	for _, target := range []error{ErrDuplicatePlayer, ErrQuotaFull, ErrInsufficientCredits, ErrTeamNameTaken} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
