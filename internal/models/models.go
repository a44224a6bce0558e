package models

// Program is one subsidy program as delivered by the catalog pipeline.
// The JSON field names follow the spreadsheet export format (German
// column names). The three money fields are pointers because a program
// may define any subset of them; an absent field contributes nothing.
type Program struct {
	ID           string   `json:"id"`
	Gebiet       string   `json:"gebiet"`
	Land         string   `json:"land"`
	Programm     string   `json:"programm"`
	Status       string   `json:"status"`
	Typ          string   `json:"typ"`
	BetragFix    *float64 `json:"betrag_fix"`
	Prozentsatz  *float64 `json:"prozentsatz"`
	Deckel       *float64 `json:"deckel"`
	KumuliertMit []string `json:"kumuliert_mit,omitempty"`
	Bedingungen  []string `json:"bedingungen,omitempty"`
	Richtlinie   string   `json:"richtlinie"`
	Antrag       string   `json:"antrag"`
	Stand        string   `json:"stand"`

	// Set by the link checker, not by the catalog.
	LinkVerifiziert   bool   `json:"link_verifiziert"`
	LinkVerifiziertAm string `json:"link_verifiziert_am,omitempty"`
}

// Meta describes the catalog export itself.
type Meta struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generated_at"`
}

// Catalog is the full program set. It is loaded once and treated as
// immutable; a reload swaps the whole snapshot.
type Catalog struct {
	Programs []Program `json:"programs"`
	Meta     Meta      `json:"meta"`
}

// Query is one calculation request.
type Query struct {
	Land          string  `json:"land"`
	Preis         float64 `json:"preis"`
	THG           bool    `json:"thg"`
	LeasingMonate int     `json:"leasing_monate,omitempty"`
}

// LeasingEstimate is the approximate monthly rate over a term. It is
// an even amortization with a flat markup, not an interest calculation.
type LeasingEstimate struct {
	Rate   int `json:"rate"`
	Monate int `json:"monate"`
}

// GrantResult is the computed outcome for one program and one query.
type GrantResult struct {
	Program
	FoerderSumme int              `json:"foerder_summe"`
	Netto        int              `json:"netto"`
	Leasing      *LeasingEstimate `json:"leasing,omitempty"`
}

// ScoreLabel is the qualitative affordability bucket for the best result.
type ScoreLabel string

const (
	FullyCovered  ScoreLabel = "fully_covered"
	NearlyCovered ScoreLabel = "nearly_covered"
	OutOfPocket   ScoreLabel = "out_of_pocket"
)

// CalcResult is the response of one calculation: the ranked programs
// (at most eight), the affordability label for the cheapest one and the
// freshest data date found in the catalog.
type CalcResult struct {
	Treffer    int           `json:"treffer"`
	Ergebnisse []GrantResult `json:"ergebnisse"`
	Score      ScoreLabel    `json:"score"`
	ScoreText  string        `json:"score_text"`
	Stand      string        `json:"stand,omitempty"`
}
