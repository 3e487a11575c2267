package catalog_test

import (
	"strings"
	"testing"

	"github.com/fantalega/asta/internal/catalog"
	"github.com/fantalega/asta/internal/domain"
)

const sampleCSV = `Nome,Ruolo,Squadra,Fascia,Quotazione,Punteggio
Maignan,P,Milan,Top,25-35,7.5
Sommer,P,Inter,Top,20-30,7
Bastoni,D,Inter,Top,25-32,6.8
Barella,C,Inter,Top,40-55,"7,2"
Lautaro Martinez,A,Inter,Top,110-130,8.1
Osimhen,A,Napoli,Top,100-120,8
`

// ── Parsing ───────────────────────────────────────────────────────────────────

func TestParse_Sample(t *testing.T) {
	c, err := catalog.Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Len() != 6 {
		t.Errorf("Len() = %d, want 6", c.Len())
	}
	if got := len(c.ByPosition(domain.PositionAttacker)); got != 2 {
		t.Errorf("attackers = %d, want 2", got)
	}

	e, ok := c.Lookup("Barella")
	if !ok {
		t.Fatal("Lookup(Barella) not found")
	}
	if e.Club != "Inter" || e.Slot != "Top" || e.PriceRange != "40-55" {
		t.Errorf("entry = %+v", e)
	}
	// Italian exports write decimals with a comma.
	if e.Projection != 7.2 {
		t.Errorf("projection = %v, want 7.2", e.Projection)
	}
}

func TestParse_HeaderCaseAndAliases(t *testing.T) {
	csvs := []string{
		"NOME,RUOLO\nMeret,P\n",
		"name,position\nMeret,P\n",
		"Giocatore , Pos \nMeret,P\n",
	}
	for _, src := range csvs {
		c, err := catalog.Parse(strings.NewReader(src))
		if err != nil {
			t.Errorf("Parse(%q) error = %v", src, err)
			continue
		}
		if _, ok := c.Lookup("Meret"); !ok {
			t.Errorf("Parse(%q): Meret not found", src)
		}
	}
}

func TestParse_MissingRequiredColumns(t *testing.T) {
	if _, err := catalog.Parse(strings.NewReader("Squadra,Fascia\nInter,Top\n")); err == nil {
		t.Error("Parse() without name/role columns should fail")
	}
}

// Malformed rows are skipped, never fatal: a hand-edited listone with a few
// stray lines must still load.
func TestParse_SkipsBadRows(t *testing.T) {
	src := "Nome,Ruolo\nMaignan,P\n,D\nGhost,X\nBastoni,D\n"
	c, err := catalog.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (empty name and unknown role skipped)", c.Len())
	}
}

// ── Lookup & search ───────────────────────────────────────────────────────────

func TestLookup_CaseInsensitive(t *testing.T) {
	c, _ := catalog.Parse(strings.NewReader(sampleCSV))
	for _, q := range []string{"maignan", "MAIGNAN", " Maignan "} {
		if _, ok := c.Lookup(q); !ok {
			t.Errorf("Lookup(%q) not found", q)
		}
	}
	if _, ok := c.Lookup("Buffon"); ok {
		t.Error("Lookup(Buffon) should miss")
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	c, _ := catalog.Parse(strings.NewReader(sampleCSV))

	got := c.Search("lautaro", "", 10)
	if len(got) == 0 || got[0].Name != "Lautaro Martinez" {
		t.Errorf("Search(lautaro) = %+v", got)
	}

	// Position filter narrows the pool.
	got = c.Search("o", domain.PositionGoalkeeper, 10)
	for _, e := range got {
		if e.Position != domain.PositionGoalkeeper {
			t.Errorf("position filter leaked %+v", e)
		}
	}
}

func TestSearch_EmptyQueryReturnsFileOrder(t *testing.T) {
	c, _ := catalog.Parse(strings.NewReader(sampleCSV))
	got := c.Search("", domain.PositionGoalkeeper, 10)
	if len(got) != 2 || got[0].Name != "Maignan" || got[1].Name != "Sommer" {
		t.Errorf("Search empty query = %+v, want file order", got)
	}

	limited := c.Search("", "", 3)
	if len(limited) != 3 {
		t.Errorf("limit not applied: got %d entries", len(limited))
	}
}
