// Package rechner computes the grant, net cost and leasing estimate for
// subsidy programs and ranks them for one query. All functions are pure
// and operate on an already-loaded catalog snapshot.
package rechner

import (
	"math"
	"sort"

	"foerderrechner/internal/models"
	"foerderrechner/internal/region"
)

// THGBonus is the flat premium for registering the vehicle's THG quota
// with a marketer. It is independent of the program and therefore never
// subject to the program's Deckel.
const THGBonus = 80

// MaxResults is how many ranked programs are surfaced to the caller.
const MaxResults = 8

// ComputeGrant calculates the total grant of one program for a vehicle
// price. Order matters: the percentage share is rounded before the cap
// is applied, and the THG bonus is added after the cap.
func ComputeGrant(p models.Program, preis float64, thg bool) int {
	g := 0.0
	if p.BetragFix != nil {
		g += *p.BetragFix
	}
	if p.Prozentsatz != nil {
		g += math.Round(preis * *p.Prozentsatz / 100)
	}
	if p.Deckel != nil && g > *p.Deckel {
		g = *p.Deckel
	}
	if thg {
		g += THGBonus
	}
	return int(g)
}

// NetCost is the vehicle price minus the grant, floored at zero. A
// grant may nominally exceed the price; the displayed net never goes
// negative.
func NetCost(preis float64, grant int) int {
	netto := int(math.Round(preis)) - grant
	if netto < 0 {
		return 0
	}
	return netto
}

// ProjectLeasing converts a net cost into a monthly rate over the given
// term: flat 5% markup, evenly amortized, rounded up so the stated rate
// is never an under-estimate. Returns nil when no term is given.
func ProjectLeasing(netto int, monate int) *models.LeasingEstimate {
	if monate <= 0 {
		return nil
	}
	rate := int(math.Ceil(float64(netto) * 1.05 / float64(monate)))
	return &models.LeasingEstimate{Rate: rate, Monate: monate}
}

// Label buckets a net cost against the vehicle price: fully covered,
// nearly covered (own share below max(300 €, 15% of the price)) or a
// real out-of-pocket amount.
func Label(netto int, preis float64) (models.ScoreLabel, string) {
	switch {
	case netto <= 0:
		return models.FullyCovered, "0 € Anzahlung realistisch"
	case float64(netto) < math.Max(300, preis*0.15):
		return models.NearlyCovered, "Fast 0 € – kleiner Eigenanteil"
	default:
		return models.OutOfPocket, "Eigenanteil erforderlich"
	}
}

// Select returns the programs whose Land field refers to the queried
// state, in catalog order.
func Select(catalog models.Catalog, land string) []models.Program {
	var out []models.Program
	for _, p := range catalog.Programs {
		if region.Matches(p.Land, land) {
			out = append(out, p)
		}
	}
	return out
}

// Rank scores each program and sorts by net cost ascending. The sort is
// stable so catalog order breaks ties and output stays reproducible.
func Rank(programs []models.Program, preis float64, thg bool, monate int) []models.GrantResult {
	results := make([]models.GrantResult, 0, len(programs))
	for _, p := range programs {
		grant := ComputeGrant(p, preis, thg)
		netto := NetCost(preis, grant)
		results = append(results, models.GrantResult{
			Program:      p,
			FoerderSumme: grant,
			Netto:        netto,
			Leasing:      ProjectLeasing(netto, monate),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Netto < results[j].Netto
	})
	return results
}

// MaxStand returns the freshest Stand value in the catalog. Stand is a
// sortable date-like string, so the lexicographic maximum is the newest.
func MaxStand(catalog models.Catalog) string {
	max := ""
	for _, p := range catalog.Programs {
		if p.Stand > max {
			max = p.Stand
		}
	}
	return max
}

// Calculate runs the full pipeline for one query: select, rank, trim to
// the top results and label the cheapest one. With zero matches the
// result is an explicit empty set (not an error) and the label is
// computed from the raw price, i.e. the no-subsidy worst case.
func Calculate(catalog models.Catalog, q models.Query) models.CalcResult {
	ranked := Rank(Select(catalog, q.Land), q.Preis, q.THG, q.LeasingMonate)

	bestNetto := int(math.Round(q.Preis))
	if len(ranked) > 0 {
		bestNetto = ranked[0].Netto
	}
	score, text := Label(bestNetto, q.Preis)

	shown := ranked
	if len(shown) > MaxResults {
		shown = shown[:MaxResults]
	}

	return models.CalcResult{
		Treffer:    len(ranked),
		Ergebnisse: shown,
		Score:      score,
		ScoreText:  text,
		Stand:      MaxStand(catalog),
	}
}
