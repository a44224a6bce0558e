package rechner

import (
	"testing"

	"foerderrechner/internal/models"
)

func f(v float64) *float64 { return &v }

func TestComputeGrant_FixedOnly(t *testing.T) {
	p := models.Program{BetragFix: f(1500)}
	for _, preis := range []float64{0, 100, 25000, 90000} {
		if got := ComputeGrant(p, preis, false); got != 1500 {
			t.Errorf("ComputeGrant(fix=1500, preis=%v) = %d, want 1500", preis, got)
		}
	}
}

func TestComputeGrant_PercentageWithCap(t *testing.T) {
	p := models.Program{Prozentsatz: f(20), Deckel: f(3000)}
	// 20% of 10000 = 2000, below the cap
	if got := ComputeGrant(p, 10000, false); got != 2000 {
		t.Errorf("got %d, want 2000", got)
	}
	// 20% of 30000 = 6000, clamped to 3000
	if got := ComputeGrant(p, 30000, false); got != 3000 {
		t.Errorf("got %d, want 3000 (Deckel)", got)
	}
}

func TestComputeGrant_RoundingBeforeCap(t *testing.T) {
	// 2.5% of 12340 = 308.5, half away from zero -> 309
	p := models.Program{Prozentsatz: f(2.5)}
	if got := ComputeGrant(p, 12340, false); got != 309 {
		t.Errorf("got %d, want 309 (kaufmännische Rundung)", got)
	}
}

func TestComputeGrant_THGAddedAfterCap(t *testing.T) {
	p := models.Program{BetragFix: f(2000), Prozentsatz: f(10), Deckel: f(2500)}
	base := ComputeGrant(p, 20000, false)
	withTHG := ComputeGrant(p, 20000, true)
	if base != 2500 {
		t.Fatalf("Basis = %d, want 2500", base)
	}
	// The THG premium is never clamped by the program's Deckel.
	if withTHG != base+THGBonus {
		t.Errorf("mit THG = %d, want %d", withTHG, base+THGBonus)
	}
}

func TestComputeGrant_NoAmountsYieldsZero(t *testing.T) {
	if got := ComputeGrant(models.Program{}, 30000, false); got != 0 {
		t.Errorf("Programm ohne Beträge: got %d, want 0", got)
	}
}

func TestNetCost_NeverNegative(t *testing.T) {
	if got := NetCost(1000, 5000); got != 0 {
		t.Errorf("NetCost(1000, 5000) = %d, want 0", got)
	}
	if got := NetCost(5000, 1000); got != 4000 {
		t.Errorf("NetCost(5000, 1000) = %d, want 4000", got)
	}
}

func TestProjectLeasing(t *testing.T) {
	est := ProjectLeasing(1000, 12)
	if est == nil {
		t.Fatal("Leasing-Schätzung fehlt")
	}
	// ceil(1000 * 1.05 / 12) = ceil(87.5) = 88
	if est.Rate != 88 || est.Monate != 12 {
		t.Errorf("got rate=%d monate=%d, want 88/12", est.Rate, est.Monate)
	}
}

func TestProjectLeasing_NoTerm(t *testing.T) {
	if ProjectLeasing(10000, 0) != nil {
		t.Error("ohne Laufzeit keine Leasing-Schätzung")
	}
	if ProjectLeasing(10000, -6) != nil {
		t.Error("negative Laufzeit keine Leasing-Schätzung")
	}
}

func TestLabel(t *testing.T) {
	if l, _ := Label(0, 20000); l != models.FullyCovered {
		t.Errorf("Label(0, 20000) = %s", l)
	}
	// 250 < max(300, 3000)
	if l, _ := Label(250, 20000); l != models.NearlyCovered {
		t.Errorf("Label(250, 20000) = %s", l)
	}
	// 3500 >= 3000
	if l, _ := Label(3500, 20000); l != models.OutOfPocket {
		t.Errorf("Label(3500, 20000) = %s", l)
	}
	// Absolute floor: for a cheap vehicle 15% may be below 300.
	if l, _ := Label(250, 1000); l != models.NearlyCovered {
		t.Errorf("Label(250, 1000) = %s, 300-€-Untergrenze greift", l)
	}
}

func testCatalog() models.Catalog {
	return models.Catalog{
		Programs: []models.Program{
			{ID: "nw-1", Land: "NRW", Programm: "Landesprogramm E-Mobil", BetragFix: f(1000), Deckel: f(1000), Stand: "2025-11-01"},
			{ID: "nw-2", Land: "Nordrhein-Westfalen", Programm: "Kommunaler Zuschuss", Prozentsatz: f(10), Deckel: f(2000), Stand: "2025-12-15"},
			{ID: "by-1", Land: "Bayern", Programm: "Bayern-Bonus", BetragFix: f(500), Stand: "2025-10-20"},
			{ID: "bw-1", Land: "Land Baden-Württemberg", Programm: "BW-Prämie", BetragFix: f(800), Stand: "2025-09-30"},
		},
		Meta: models.Meta{Version: "v1.0"},
	}
}

func TestSelect_NormalizedMatching(t *testing.T) {
	progs := Select(testCatalog(), "NW")
	if len(progs) != 2 {
		t.Fatalf("NW sollte 2 Programme treffen, got %d", len(progs))
	}
	if progs[0].ID != "nw-1" || progs[1].ID != "nw-2" {
		t.Error("Katalogreihenfolge muss erhalten bleiben")
	}
}

func TestSelect_BWSpecialCase(t *testing.T) {
	progs := Select(testCatalog(), "BW")
	if len(progs) != 1 || progs[0].ID != "bw-1" {
		t.Errorf("BW sollte das dekorierte Baden-Württemberg-Programm treffen, got %v", progs)
	}
}

func TestRank_MonotonicAndStable(t *testing.T) {
	results := Rank(testCatalog().Programs, 20000, false, 0)
	for i := 1; i < len(results); i++ {
		if results[i-1].Netto > results[i].Netto {
			t.Fatalf("Netto nicht aufsteigend: %d vor %d", results[i-1].Netto, results[i].Netto)
		}
	}
}

func TestCalculate_EndToEnd(t *testing.T) {
	catalog := models.Catalog{
		Programs: []models.Program{
			{ID: "p1", Land: "NRW", BetragFix: f(1000), Deckel: f(1000)},
		},
	}
	res := Calculate(catalog, models.Query{Land: "NW", Preis: 5000})
	if res.Treffer != 1 {
		t.Fatalf("Treffer = %d, want 1", res.Treffer)
	}
	r := res.Ergebnisse[0]
	if r.FoerderSumme != 1000 || r.Netto != 4000 {
		t.Errorf("got foerder=%d netto=%d, want 1000/4000", r.FoerderSumme, r.Netto)
	}
	// 4000 >= max(300, 750)
	if res.Score != models.OutOfPocket {
		t.Errorf("Score = %s, want out_of_pocket", res.Score)
	}
}

func TestCalculate_EmptySelection(t *testing.T) {
	res := Calculate(testCatalog(), models.Query{Land: "Saarland", Preis: 30000})
	if res.Treffer != 0 || len(res.Ergebnisse) != 0 {
		t.Fatalf("keine Treffer erwartet, got %d", res.Treffer)
	}
	// Label falls back to the raw price as net cost.
	if res.Score != models.OutOfPocket {
		t.Errorf("Score = %s, want out_of_pocket", res.Score)
	}
}

func TestCalculate_TopEightCut(t *testing.T) {
	var progs []models.Program
	for i := 0; i < 12; i++ {
		fix := float64(100 * i)
		progs = append(progs, models.Program{ID: string(rune('a' + i)), Land: "HH", BetragFix: &fix})
	}
	res := Calculate(models.Catalog{Programs: progs}, models.Query{Land: "Hamburg", Preis: 40000})
	if res.Treffer != 12 {
		t.Errorf("Treffer = %d, want 12", res.Treffer)
	}
	if len(res.Ergebnisse) != MaxResults {
		t.Errorf("angezeigt = %d, want %d", len(res.Ergebnisse), MaxResults)
	}
}

func TestCalculate_LeasingPassedThrough(t *testing.T) {
	res := Calculate(testCatalog(), models.Query{Land: "Bayern", Preis: 10000, LeasingMonate: 24})
	if len(res.Ergebnisse) == 0 {
		t.Fatal("Bayern sollte ein Programm treffen")
	}
	if res.Ergebnisse[0].Leasing == nil {
		t.Error("Leasing-Schätzung fehlt trotz Laufzeit")
	}
}

func TestMaxStand(t *testing.T) {
	if got := MaxStand(testCatalog()); got != "2025-12-15" {
		t.Errorf("MaxStand = %q, want 2025-12-15", got)
	}
	if got := MaxStand(models.Catalog{}); got != "" {
		t.Errorf("MaxStand(leer) = %q, want \"\"", got)
	}
}
