// Package ws holds WebSocket message types and the Hub implementation.
// messages.go defines all message structs broadcast to connected clients.
package ws

import (
	"time"

	"github.com/fantalega/asta/internal/domain"
)

// MsgType identifies the kind of WS message so clients can switch on it.
type MsgType string

const (
	MsgTypePurchase      MsgType = "purchase"
	MsgTypePlayerRemoved MsgType = "player_removed"
	MsgTypeTeamRenamed   MsgType = "team_renamed"
	MsgTypeError         MsgType = "error"
)

// ──────────────────────────────────────────────────────────────────────────────
// PurchaseMessage — broadcast after every accepted acquisition so all
// auction-room clients see the hammer fall without polling.
// ──────────────────────────────────────────────────────────────────────────────

// PurchaseMessage carries the purchase and the buyer's refreshed standing.
type PurchaseMessage struct {
	Type             MsgType                 `json:"type"`
	Team             string                  `json:"team"`
	Player           string                  `json:"player"`
	Position         domain.Position         `json:"position"`
	Price            int                     `json:"price"`
	RemainingCredits int                     `json:"remaining_credits"`
	RemainingQuota   map[domain.Position]int `json:"remaining_quota"`
	Timestamp        time.Time               `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// PlayerRemovedMessage — broadcast when a roster entry is deleted.
// ──────────────────────────────────────────────────────────────────────────────

// PlayerRemovedMessage notifies clients that a player slot reopened.
type PlayerRemovedMessage struct {
	Type             MsgType         `json:"type"`
	Team             string          `json:"team"`
	Player           string          `json:"player"`
	Position         domain.Position `json:"position"`
	RemainingCredits int             `json:"remaining_credits"`
	Timestamp        time.Time       `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// TeamRenamedMessage — broadcast when the operator renames a team.
// ──────────────────────────────────────────────────────────────────────────────

// TeamRenamedMessage carries both names; clients re-key their local state.
type TeamRenamedMessage struct {
	Type      MsgType   `json:"type"`
	OldName   string    `json:"old_name"`
	NewName   string    `json:"new_name"`
	Timestamp time.Time `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorMessage — sent to a single client on a non-fatal error.
// ──────────────────────────────────────────────────────────────────────────────

// ErrorMessage is sent directly to one client (not broadcast).
type ErrorMessage struct {
	Type    MsgType `json:"type"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}
