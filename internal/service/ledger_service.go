package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fantalega/asta/internal/domain"
	"github.com/fantalega/asta/internal/ws"
)

// ──────────────────────────────────────────────────────────────────────────────
// Interfaces injected into LedgerService
// ──────────────────────────────────────────────────────────────────────────────

// SnapshotStore is the persistence boundary. Implemented by
// repository.FileStore and repository.PostgresStore.
type SnapshotStore interface {
	Save(ctx context.Context, l *domain.League) error
	Load(ctx context.Context) (*domain.League, error)
	Backup(ctx context.Context, l *domain.League) error
}

// Broadcaster is the minimal interface LedgerService needs from the WS hub.
// Implemented by ws.Hub.
type Broadcaster interface {
	BroadcastPurchase(msg ws.PurchaseMessage)
	BroadcastPlayerRemoved(msg ws.PlayerRemovedMessage)
	BroadcastTeamRenamed(msg ws.TeamRenamedMessage)
}

// ──────────────────────────────────────────────────────────────────────────────
// LedgerService
// ──────────────────────────────────────────────────────────────────────────────

// LedgerService is the only component allowed to touch the League. Every
// operation runs inside a league-scoped critical section so the duplicate
// scan and the roster+history append stay atomic together — two operators
// can never award the same player twice. Reads take the shared lock.
//
// After each successful mutation the league is snapshotted through the
// store. A failed save is logged and does not fail the operation: the
// in-memory league remains the source of truth for the session.
type LedgerService struct {
	mu          sync.RWMutex
	league      *domain.League
	store       SnapshotStore
	logger      *slog.Logger
	broadcaster Broadcaster // injected after the WS hub is built
}

// NewLedgerService creates a LedgerService around an already-restored league.
func NewLedgerService(league *domain.League, store SnapshotStore, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		league: league,
		store:  store,
		logger: logger,
	}
}

// SetBroadcaster injects the WS hub dependency post-construction.
func (s *LedgerService) SetBroadcaster(b Broadcaster) { s.broadcaster = b }

// ──────────────────────────────────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────────────────────────────────

// Acquire awards a player to a team at the given price, subject to the
// ledger engine's validation chain. On success the snapshot is persisted
// and a purchase event is broadcast to all connected clients.
func (s *LedgerService) Acquire(ctx context.Context, teamName, playerName string, pos domain.Position, price int) (*domain.PurchaseRecord, error) {
	s.mu.Lock()
	rec, err := s.league.Acquire(teamName, playerName, pos, price)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.persistLocked(ctx)

	team, _ := s.league.TeamByName(teamName)
	msg := ws.PurchaseMessage{
		Type:             ws.MsgTypePurchase,
		Team:             rec.Team,
		Player:           rec.Player,
		Position:         rec.Position,
		Price:            rec.Price,
		RemainingCredits: team.RemainingCredits(),
		RemainingQuota:   team.RemainingQuota(s.league.Settings.Quotas),
		Timestamp:        time.Now().UTC(),
	}
	s.mu.Unlock()

	s.logger.Info("player acquired",
		"team", rec.Team, "player", rec.Player, "position", rec.Position, "price", rec.Price)
	if s.broadcaster != nil {
		go s.broadcaster.BroadcastPurchase(msg)
	}
	return rec, nil
}

// Remove deletes a roster entry. The purchase history is untouched; only
// current roster state changes.
func (s *LedgerService) Remove(ctx context.Context, teamName string, pos domain.Position, playerName string) error {
	s.mu.Lock()
	if err := s.league.Remove(teamName, pos, playerName); err != nil {
		s.mu.Unlock()
		return err
	}
	s.persistLocked(ctx)

	team, _ := s.league.TeamByName(teamName)
	msg := ws.PlayerRemovedMessage{
		Type:             ws.MsgTypePlayerRemoved,
		Team:             teamName,
		Player:           playerName,
		Position:         pos,
		RemainingCredits: team.RemainingCredits(),
		Timestamp:        time.Now().UTC(),
	}
	s.mu.Unlock()

	s.logger.Info("player removed", "team", teamName, "player", playerName, "position", pos)
	if s.broadcaster != nil {
		go s.broadcaster.BroadcastPlayerRemoved(msg)
	}
	return nil
}

// Rename changes a team's name. Empty or unchanged names are a no-op that
// leaves the league byte-for-byte untouched (no snapshot written either).
func (s *LedgerService) Rename(ctx context.Context, teamName, newName string) error {
	s.mu.Lock()
	team, err := s.league.TeamByName(teamName)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	before := team.Name
	if err := s.league.Rename(teamName, newName); err != nil {
		s.mu.Unlock()
		return err
	}
	if team.Name == before {
		// no-op rename
		s.mu.Unlock()
		return nil
	}
	s.persistLocked(ctx)
	msg := ws.TeamRenamedMessage{
		Type:      ws.MsgTypeTeamRenamed,
		OldName:   before,
		NewName:   team.Name,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Unlock()

	s.logger.Info("team renamed", "old", before, "new", msg.NewName)
	if s.broadcaster != nil {
		go s.broadcaster.BroadcastTeamRenamed(msg)
	}
	return nil
}

// SetFollowedTeam moves the board focus to the team at idx.
func (s *LedgerService) SetFollowedTeam(ctx context.Context, idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.league.SetFollowedTeam(idx); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

// persistLocked snapshots the league; the caller holds the write lock.
// Persistence failures are logged, never surfaced: a dead disk or database
// must not abort the live auction.
func (s *LedgerService) persistLocked(ctx context.Context) {
	if err := s.store.Save(ctx, s.league); err != nil {
		s.logger.Error("snapshot save failed", "err", err)
	}
}

// Backup writes a scheduled backup copy of the current state.
func (s *LedgerService) Backup(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.store.Backup(ctx, s.league); err != nil {
		return fmt.Errorf("ledger_service.Backup: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries — recomputed from roster state on every call, never cached
// ──────────────────────────────────────────────────────────────────────────────

// Overview is the full read model of the league for the board.
type Overview struct {
	Settings     domain.Settings      `json:"settings"`
	Teams        []domain.TeamSummary `json:"teams"`
	FollowedTeam int                  `json:"followed_team"`
	Purchases    int                  `json:"purchases"`
}

// GetOverview returns settings plus a summary of every team.
func (s *LedgerService) GetOverview(ctx context.Context) Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ov := Overview{
		Settings:     s.league.Settings,
		FollowedTeam: s.league.FollowedTeam,
		Purchases:    len(s.league.History),
	}
	for _, t := range s.league.Teams {
		ov.Teams = append(ov.Teams, t.ToSummary(s.league.Settings))
	}
	return ov
}

// GetTeam returns the summary for one team.
func (s *LedgerService) GetTeam(ctx context.Context, name string) (domain.TeamSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, err := s.league.TeamByName(name)
	if err != nil {
		return domain.TeamSummary{}, err
	}
	return team.ToSummary(s.league.Settings), nil
}

// GetTargets returns the dynamic spending targets for one team.
func (s *LedgerService) GetTargets(ctx context.Context, name string) (map[domain.Position]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, err := s.league.TeamByName(name)
	if err != nil {
		return nil, err
	}
	return team.SpendingTargets(s.league.Settings), nil
}

// GetHistory returns a page of the purchase log, oldest first.
func (s *LedgerService) GetHistory(ctx context.Context, limit, offset int) ([]domain.PurchaseRecord, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.league.History)
	if offset >= total {
		return []domain.PurchaseRecord{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]domain.PurchaseRecord, end-offset)
	copy(page, s.league.History[offset:end])
	return page, total
}

// RosteredPlayerNames returns every rostered player name league-wide.
func (s *LedgerService) RosteredPlayerNames(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.league.RosteredPlayerNames()
}
