// Package repository persists and restores league snapshots. The snapshot
// document keeps the field names of the original export format
// (settings / squadre / storico / followed_team_index) so previously
// exported leagues keep loading.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fantalega/asta/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot document
// ──────────────────────────────────────────────────────────────────────────────

type snapshotDoc struct {
	Settings          settingsDoc   `json:"settings"`
	Squadre           []teamDoc     `json:"squadre"`
	Storico           []purchaseDoc `json:"storico"`
	FollowedTeamIndex int           `json:"followed_team_index"`
}

type settingsDoc struct {
	NumSquadre int                `json:"num_squadre"`
	Crediti    int                `json:"crediti"`
	QuoteRosa  map[string]int     `json:"quote_rosa"`
	NoDoppioni bool               `json:"no_doppioni"`
	Obiettivi  map[string]float64 `json:"obiettivi_spesa,omitempty"`
}

type teamDoc struct {
	Nome   string                 `json:"nome"`
	Budget int                    `json:"budget"`
	Rosa   map[string][]playerDoc `json:"rosa"`
}

type playerDoc struct {
	Nome   string `json:"nome"`
	Ruolo  string `json:"ruolo"`
	Prezzo int    `json:"prezzo"`
}

type purchaseDoc struct {
	ID        string    `json:"id,omitempty"`
	Squadra   string    `json:"squadra"`
	Giocatore string    `json:"giocatore"`
	Ruolo     string    `json:"ruolo"`
	Prezzo    int       `json:"prezzo"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Encoding
// ──────────────────────────────────────────────────────────────────────────────

func encodeLeague(l *domain.League) snapshotDoc {
	doc := snapshotDoc{
		Settings: settingsDoc{
			NumSquadre: l.Settings.TeamCount,
			Crediti:    l.Settings.InitialBudget,
			QuoteRosa:  make(map[string]int, len(domain.Positions)),
			NoDoppioni: !l.Settings.AllowDuplicates,
			Obiettivi:  make(map[string]float64, len(domain.Positions)),
		},
		FollowedTeamIndex: l.FollowedTeam,
	}
	for _, pos := range domain.Positions {
		doc.Settings.QuoteRosa[string(pos)] = l.Settings.Quotas[pos]
		doc.Settings.Obiettivi[string(pos)], _ = l.Settings.TargetFractions[pos].Float64()
	}

	for _, t := range l.Teams {
		td := teamDoc{
			Nome:   t.Name,
			Budget: t.Budget,
			Rosa:   make(map[string][]playerDoc, len(domain.Positions)),
		}
		for _, pos := range domain.Positions {
			entries := make([]playerDoc, 0, len(t.Roster[pos]))
			for _, pl := range t.Roster[pos] {
				entries = append(entries, playerDoc{Nome: pl.Name, Ruolo: string(pl.Position), Prezzo: pl.Price})
			}
			td.Rosa[string(pos)] = entries
		}
		doc.Squadre = append(doc.Squadre, td)
	}

	for _, rec := range l.History {
		doc.Storico = append(doc.Storico, purchaseDoc{
			ID:        rec.ID.String(),
			Squadra:   rec.Team,
			Giocatore: rec.Player,
			Ruolo:     string(rec.Position),
			Prezzo:    rec.Price,
			Timestamp: rec.RecordedAt,
		})
	}
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Decoding
// ──────────────────────────────────────────────────────────────────────────────

// decodeLeague rebuilds a league from a snapshot document. Team order,
// per-position roster order, and history order are preserved exactly.
// Settings fields absent from older snapshots fall back to the defaults.
func decodeLeague(doc snapshotDoc) *domain.League {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		TeamCount:       doc.Settings.NumSquadre,
		InitialBudget:   doc.Settings.Crediti,
		Quotas:          make(map[domain.Position]int, len(domain.Positions)),
		AllowDuplicates: !doc.Settings.NoDoppioni,
		TargetFractions: make(map[domain.Position]decimal.Decimal, len(domain.Positions)),
	}
	if settings.TeamCount < 2 {
		settings.TeamCount = defaults.TeamCount
	}
	if settings.InitialBudget < 1 {
		settings.InitialBudget = defaults.InitialBudget
	}
	for _, pos := range domain.Positions {
		if q, ok := doc.Settings.QuoteRosa[string(pos)]; ok {
			settings.Quotas[pos] = q
		} else {
			settings.Quotas[pos] = defaults.Quotas[pos]
		}
		if f, ok := doc.Settings.Obiettivi[string(pos)]; ok {
			settings.TargetFractions[pos] = decimal.NewFromFloat(f)
		} else {
			settings.TargetFractions[pos] = defaults.TargetFractions[pos]
		}
	}

	l := &domain.League{Settings: settings, FollowedTeam: doc.FollowedTeamIndex}

	for _, td := range doc.Squadre {
		team := domain.NewTeam(td.Nome, td.Budget)
		for _, pos := range domain.Positions {
			for _, pd := range td.Rosa[string(pos)] {
				team.Roster[pos] = append(team.Roster[pos], domain.Player{
					Name:     pd.Nome,
					Position: pos,
					Price:    pd.Prezzo,
				})
			}
		}
		l.Teams = append(l.Teams, team)
	}
	if l.FollowedTeam < 0 || l.FollowedTeam >= len(l.Teams) {
		l.FollowedTeam = 0
	}

	for _, pd := range doc.Storico {
		rec := domain.PurchaseRecord{
			Team:       pd.Squadra,
			Player:     pd.Giocatore,
			Position:   domain.Position(pd.Ruolo),
			Price:      pd.Prezzo,
			RecordedAt: pd.Timestamp,
		}
		if id, err := uuid.Parse(pd.ID); err == nil {
			rec.ID = id
		} else {
			rec.ID = uuid.New()
		}
		l.History = append(l.History, rec)
	}
	return l
}
