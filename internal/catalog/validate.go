package catalog

import (
	"fmt"
	"strings"

	"foerderrechner/internal/models"
)

// Validate checks the schema contract the pipeline promises: every
// program has an id, a land and a programm, numeric fields are
// non-negative and percentages stay within 0–100. The optional money
// fields may each be absent; that is a zero contribution, not an error.
func Validate(c models.Catalog) error {
	var problems []string
	seen := make(map[string]bool, len(c.Programs))

	for i, p := range c.Programs {
		where := fmt.Sprintf("programs[%d]", i)
		if p.ID != "" {
			where = fmt.Sprintf("programs[%d] (%s)", i, p.ID)
		}

		if p.ID == "" {
			problems = append(problems, where+": id fehlt")
		} else if seen[p.ID] {
			problems = append(problems, where+": id doppelt")
		} else {
			seen[p.ID] = true
		}
		if strings.TrimSpace(p.Land) == "" {
			problems = append(problems, where+": land fehlt")
		}
		if strings.TrimSpace(p.Programm) == "" {
			problems = append(problems, where+": programm fehlt")
		}
		if p.BetragFix != nil && *p.BetragFix < 0 {
			problems = append(problems, where+": betrag_fix negativ")
		}
		if p.Prozentsatz != nil && (*p.Prozentsatz < 0 || *p.Prozentsatz > 100) {
			problems = append(problems, where+": prozentsatz außerhalb 0–100")
		}
		if p.Deckel != nil && *p.Deckel < 0 {
			problems = append(problems, where+": deckel negativ")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("catalog: %d Schemafehler: %s", len(problems), strings.Join(problems, "; "))
	}
	return nil
}
