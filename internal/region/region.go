// Package region maps free-text German state spellings to the official
// two-letter Länder codes. Catalog rows come from hand-maintained
// spreadsheets, so the same state shows up as "NRW", "Nordrhein-Westfalen",
// "NORDRHEINWESTFALEN" or the English exonym depending on who typed it.
package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks after canonical decomposition,
// so Ü -> U, é -> e. ß has no decomposition and is replaced separately.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var eszett = strings.NewReplacer("ß", "ss", "ẞ", "SS")

// aliases maps cleaned spellings to canonical codes. Covers the code
// itself, common abbreviations, full names (hyphenated forms clean to
// the same key), pre-transliterated umlaut spellings and English exonyms.
var aliases = map[string]string{
	"BW": "BW", "BADENWURTTEMBERG": "BW", "BADENWUERTTEMBERG": "BW",

	"BY": "BY", "BAY": "BY", "BAYERN": "BY", "BAVARIA": "BY",

	"BE": "BE", "BERLIN": "BE",

	"BB": "BB", "BRANDENBURG": "BB",

	"HB": "HB", "BREMEN": "HB",

	"HH": "HH", "HAMBURG": "HH",

	"HE": "HE", "HESSEN": "HE", "HESSE": "HE",

	"MV": "MV", "MECKLENBURGVORPOMMERN": "MV", "MECKLENBURGWESTERNPOMERANIA": "MV",

	"NI": "NI", "NDS": "NI", "NIEDERSACHSEN": "NI", "LOWERSAXONY": "NI",

	"NW": "NW", "NRW": "NW", "NORDRHEINWESTFALEN": "NW", "NORTHRHINEWESTPHALIA": "NW",

	"RP": "RP", "RLP": "RP", "RHEINLANDPFALZ": "RP", "RHINELANDPALATINATE": "RP",

	"SL": "SL", "SAARLAND": "SL",

	"SN": "SN", "SACHSEN": "SN", "SAXONY": "SN",

	"ST": "ST", "SACHSENANHALT": "ST", "SAXONYANHALT": "ST",

	"SH": "SH", "SCHLESWIGHOLSTEIN": "SH",

	"TH": "TH", "THURINGEN": "TH", "THUERINGEN": "TH", "THURINGIA": "TH",
}

// names maps each canonical code to the official state name.
var names = map[string]string{
	"BW": "Baden-Württemberg",
	"BY": "Bayern",
	"BE": "Berlin",
	"BB": "Brandenburg",
	"HB": "Bremen",
	"HH": "Hamburg",
	"HE": "Hessen",
	"MV": "Mecklenburg-Vorpommern",
	"NI": "Niedersachsen",
	"NW": "Nordrhein-Westfalen",
	"RP": "Rheinland-Pfalz",
	"SL": "Saarland",
	"SN": "Sachsen",
	"ST": "Sachsen-Anhalt",
	"SH": "Schleswig-Holstein",
	"TH": "Thüringen",
}

// Codes returns the sixteen canonical codes with their official names.
func Codes() map[string]string {
	out := make(map[string]string, len(names))
	for k, v := range names {
		out[k] = v
	}
	return out
}

// Normalize canonicalizes a free-text state spelling. Known spellings
// map to their two-letter code; anything else degrades to its cleaned
// form so that two identically-misspelled strings still match each
// other, and an already-canonical code maps to itself. Never fails.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = eszett.Replace(s)
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if code, ok := aliases[cleaned]; ok {
		return code
	}
	return cleaned
}

// Matches reports whether a catalog row's state field refers to the
// queried state. Normal path is normalized equality. When the query
// resolves to Baden-Württemberg there is an extra fragment fallback:
// real-world rows carry decorated or garbled compound spellings
// ("Land Baden-Wuerttemberg", "Baden-Württemberg (Landesprogramm)"),
// so any cleaned value containing both BADEN and a WURTTEMBERG variant
// counts. The fallback is one-sided: it must not loosen matching for
// any other state.
func Matches(catalogLand, queryLand string) bool {
	p := Normalize(catalogLand)
	q := Normalize(queryLand)
	if p == q && p != "" {
		return true
	}
	if q == "BW" {
		return strings.Contains(p, "BADEN") &&
			(strings.Contains(p, "WURTTEMBERG") || strings.Contains(p, "WUERTTEMBERG"))
	}
	return false
}
