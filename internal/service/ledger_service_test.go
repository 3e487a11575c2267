package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/fantalega/asta/internal/domain"
	"github.com/fantalega/asta/internal/service"
	"github.com/fantalega/asta/internal/ws"
)

// ── Test doubles ──────────────────────────────────────────────────────────────

// memStore counts saves and backups and can be told to fail.
type memStore struct {
	mu      sync.Mutex
	saves   int
	backups int
	failing bool
}

func (m *memStore) Save(ctx context.Context, l *domain.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("disk full")
	}
	m.saves++
	return nil
}

func (m *memStore) Load(ctx context.Context) (*domain.League, error) {
	return nil, domain.ErrSnapshotNotFound
}

func (m *memStore) Backup(ctx context.Context, l *domain.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("disk full")
	}
	m.backups++
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// recordingBroadcaster captures broadcast messages.
type recordingBroadcaster struct {
	mu        sync.Mutex
	purchases []ws.PurchaseMessage
	removals  []ws.PlayerRemovedMessage
	renames   []ws.TeamRenamedMessage
}

func (b *recordingBroadcaster) BroadcastPurchase(msg ws.PurchaseMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purchases = append(b.purchases, msg)
}

func (b *recordingBroadcaster) BroadcastPlayerRemoved(msg ws.PlayerRemovedMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removals = append(b.removals, msg)
}

func (b *recordingBroadcaster) BroadcastTeamRenamed(msg ws.TeamRenamedMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renames = append(b.renames, msg)
}

func newTestService() (*service.LedgerService, *memStore) {
	league := domain.NewLeague(domain.DefaultSettings())
	store := &memStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewLedgerService(league, store, logger), store
}

// ── Mutations persist ─────────────────────────────────────────────────────────

func TestLedgerService_AcquirePersists(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	rec, err := svc.Acquire(ctx, "Terzetto Scherzetto", "Maignan", domain.PositionGoalkeeper, 25)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if rec.Player != "Maignan" {
		t.Errorf("record player = %q", rec.Player)
	}
	if store.saveCount() != 1 {
		t.Errorf("saves = %d, want 1", store.saveCount())
	}
}

func TestLedgerService_RejectedAcquireDoesNotPersist(t *testing.T) {
	svc, store := newTestService()
	_, err := svc.Acquire(context.Background(), "Terzetto Scherzetto", "", domain.PositionGoalkeeper, 25)
	if !errors.Is(err, domain.ErrEmptyPlayerName) {
		t.Fatalf("err = %v, want ErrEmptyPlayerName", err)
	}
	if store.saveCount() != 0 {
		t.Errorf("saves = %d, a rejected operation must not snapshot", store.saveCount())
	}
}

// A dead store must not fail the live operation.
func TestLedgerService_SaveFailureDoesNotFailOperation(t *testing.T) {
	svc, store := newTestService()
	store.failing = true

	_, err := svc.Acquire(context.Background(), "Terzetto Scherzetto", "Maignan", domain.PositionGoalkeeper, 25)
	if err != nil {
		t.Fatalf("Acquire() error = %v, persistence failures must stay internal", err)
	}
	ov := svc.GetOverview(context.Background())
	if ov.Purchases != 1 {
		t.Errorf("purchases = %d, the in-memory league is still the source of truth", ov.Purchases)
	}
}

func TestLedgerService_NoOpRenameSkipsPersist(t *testing.T) {
	svc, store := newTestService()
	if err := svc.Rename(context.Background(), "Terzetto Scherzetto", "Terzetto Scherzetto"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if store.saveCount() != 0 {
		t.Errorf("saves = %d, a no-op rename must not snapshot", store.saveCount())
	}
}

func TestLedgerService_Backup(t *testing.T) {
	svc, store := newTestService()
	if err := svc.Backup(context.Background()); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if store.backups != 1 {
		t.Errorf("backups = %d, want 1", store.backups)
	}

	store.failing = true
	if err := svc.Backup(context.Background()); err == nil {
		t.Error("Backup() should surface store errors to the scheduler")
	}
}

// ── Queries ───────────────────────────────────────────────────────────────────

func TestLedgerService_GetOverview(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Acquire(ctx, "Squadra 2", "Lautaro", domain.PositionAttacker, 120); err != nil {
		t.Fatal(err)
	}

	ov := svc.GetOverview(ctx)
	if len(ov.Teams) != 10 {
		t.Fatalf("teams = %d, want 10", len(ov.Teams))
	}
	if ov.Purchases != 1 {
		t.Errorf("purchases = %d, want 1", ov.Purchases)
	}
	for _, ts := range ov.Teams {
		if ts.Name == "Squadra 2" {
			if ts.RemainingCredits != 580 {
				t.Errorf("Squadra 2 remaining = %d, want 580", ts.RemainingCredits)
			}
			if ts.RemainingQuota[domain.PositionAttacker] != 5 {
				t.Errorf("attacker quota left = %d, want 5", ts.RemainingQuota[domain.PositionAttacker])
			}
		}
	}
}

func TestLedgerService_GetHistoryPagination(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	players := []string{"Uno", "Due", "Tre", "Quattro", "Cinque"}
	for _, p := range players {
		if _, err := svc.Acquire(ctx, "Terzetto Scherzetto", p, domain.PositionMidfielder, 1); err != nil {
			t.Fatal(err)
		}
	}

	page, total := svc.GetHistory(ctx, 2, 2)
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 || page[0].Player != "Tre" || page[1].Player != "Quattro" {
		t.Errorf("page = %+v, want [Tre Quattro]", page)
	}

	empty, total := svc.GetHistory(ctx, 10, 99)
	if total != 5 || len(empty) != 0 {
		t.Errorf("out-of-range page: got %d records, total %d", len(empty), total)
	}
}

func TestLedgerService_RosteredPlayerNames(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Acquire(ctx, "Terzetto Scherzetto", "Maignan", domain.PositionGoalkeeper, 25); err != nil {
		t.Fatal(err)
	}
	names := svc.RosteredPlayerNames(ctx)
	if len(names) != 1 || names[0] != "Maignan" {
		t.Errorf("names = %v, want [Maignan]", names)
	}
}

// ── Broadcasts ────────────────────────────────────────────────────────────────

func TestLedgerService_BroadcastsPurchase(t *testing.T) {
	svc, _ := newTestService()
	b := &recordingBroadcaster{}
	svc.SetBroadcaster(b)
	ctx := context.Background()

	if _, err := svc.Acquire(ctx, "Terzetto Scherzetto", "Maignan", domain.PositionGoalkeeper, 25); err != nil {
		t.Fatal(err)
	}

	// Broadcasts are fired on a goroutine; poll briefly.
	waitFor(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.purchases) == 1
	})

	b.mu.Lock()
	msg := b.purchases[0]
	b.mu.Unlock()
	if msg.Player != "Maignan" || msg.RemainingCredits != 675 {
		t.Errorf("broadcast = %+v", msg)
	}
}
