// Package catalog loads the player listone from a CSV export and serves
// name lookups and fuzzy search. The catalog is advisory display data: the
// ledger engine never depends on it, and a missing or malformed file simply
// yields an empty catalog.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fantalega/asta/internal/domain"
)

// Entry is one candidate player row. Only Name and Position are guaranteed;
// everything else is optional column data carried through for display.
type Entry struct {
	Name       string          `json:"name"`
	Position   domain.Position `json:"position"`
	Club       string          `json:"club,omitempty"`
	Slot       string          `json:"slot,omitempty"`
	PriceRange string          `json:"price_range,omitempty"`
	Projection float64         `json:"projection,omitempty"`
}

// Catalog is an immutable, read-only set of candidate players keyed by
// position. Safe for concurrent use after construction.
type Catalog struct {
	byPosition map[domain.Position][]Entry
	size       int
}

// NewEmpty returns a catalog with no entries.
func NewEmpty() *Catalog {
	return &Catalog{byPosition: make(map[domain.Position][]Entry)}
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV loading
// ──────────────────────────────────────────────────────────────────────────────

// Column aliases, matched case-insensitively against the header row.
// The Italian names come first: that is what listone exports actually use.
var (
	nameColumns       = []string{"nome", "name", "giocatore", "player"}
	positionColumns   = []string{"ruolo", "role", "position", "pos"}
	clubColumns       = []string{"squadra", "club", "team"}
	slotColumns       = []string{"fascia", "slot", "tier"}
	priceRangeColumns = []string{"quotazione", "price_range", "price"}
	projectionColumns = []string{"punteggio", "projection", "score", "fvm"}
)

// Load reads a CSV listone from path. The name and position columns are
// required; club, slot, price-range, and projection are optional. Rows with
// an unknown role code or empty name are skipped, not fatal.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV rows from r. Exposed separately for tests and for callers
// holding an in-memory upload.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog.Parse: header: %w", err)
	}

	nameIdx := findColumn(header, nameColumns)
	posIdx := findColumn(header, positionColumns)
	if nameIdx < 0 || posIdx < 0 {
		return nil, fmt.Errorf("catalog.Parse: missing name or role column in header %v", header)
	}
	clubIdx := findColumn(header, clubColumns)
	slotIdx := findColumn(header, slotColumns)
	priceIdx := findColumn(header, priceRangeColumns)
	projIdx := findColumn(header, projectionColumns)

	c := NewEmpty()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog.Parse: row: %w", err)
		}

		name := strings.TrimSpace(field(row, nameIdx))
		if name == "" {
			continue
		}
		pos, err := domain.ParsePosition(field(row, posIdx))
		if err != nil {
			continue // unknown role code: skip the row
		}

		e := Entry{
			Name:       name,
			Position:   pos,
			Club:       strings.TrimSpace(field(row, clubIdx)),
			Slot:       strings.TrimSpace(field(row, slotIdx)),
			PriceRange: strings.TrimSpace(field(row, priceIdx)),
		}
		if raw := strings.TrimSpace(field(row, projIdx)); raw != "" {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
				e.Projection = v
			}
		}
		c.byPosition[pos] = append(c.byPosition[pos], e)
		c.size++
	}
	return c, nil
}

// findColumn returns the index of the first header cell matching any alias
// (case-insensitive), or -1.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		for _, a := range aliases {
			if cell == a {
				return i
			}
		}
	}
	return -1
}

// field returns row[idx] or "" when the column is absent or the row short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────────────────────────

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return c.size }

// ByPosition returns all entries for a role, in file order.
func (c *Catalog) ByPosition(pos domain.Position) []Entry {
	return c.byPosition[pos]
}

// Lookup finds an entry by name, case-insensitively. Used to enrich a
// manual acquisition with display metadata.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, pos := range domain.Positions {
		for _, e := range c.byPosition[pos] {
			if strings.ToLower(e.Name) == target {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Search returns up to limit entries whose names fuzzy-match query, best
// matches first. A zero-value position searches every role; an empty query
// returns the position's entries in file order.
func (c *Catalog) Search(query string, pos domain.Position, limit int) []Entry {
	if limit <= 0 {
		limit = 20
	}

	var pool []Entry
	if pos != "" {
		pool = c.byPosition[pos]
	} else {
		for _, p := range domain.Positions {
			pool = append(pool, c.byPosition[p]...)
		}
	}

	if strings.TrimSpace(query) == "" {
		if len(pool) > limit {
			return pool[:limit]
		}
		return pool
	}

	names := make([]string, len(pool))
	for i, e := range pool {
		names[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	out := make([]Entry, 0, limit)
	for _, r := range ranks {
		out = append(out, pool[r.OriginalIndex])
		if len(out) == limit {
			break
		}
	}
	return out
}
