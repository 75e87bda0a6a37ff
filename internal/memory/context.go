package memory

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// BuildContext renders the memory as one line of comma-joined clauses for
// prompt injection. Clause order is fixed and absent fields are skipped, so
// equal inputs always render byte-identical output.
func BuildContext(m models.UserMemoryContext) string {
	parts := make([]string, 0, 7)

	if g := strings.TrimSpace(m.Gender); g != "" {
		parts = append(parts, "Gender: "+g)
	}
	if id := strings.TrimSpace(m.Identity); id != "" {
		parts = append(parts, "Identity: "+id)
	}

	parts = append(parts, fmt.Sprintf("Spiciness preference: %d/5", effectiveSpiciness(m.SpicinessLevel)))

	if m.Blueprint != nil {
		parts = append(parts, "Blueprint: "+string(m.Blueprint.PrimaryType))
	}

	if name := strings.TrimSpace(m.PartnerName); m.PartnerLinked && name != "" {
		parts = append(parts, "Partner: "+name+" (linked)")
		if pb := m.PartnerBlueprint; pb != nil {
			clause := "Partner blueprint: " + string(pb.PrimaryType)
			if pb.IsPredicted {
				clause += " (predicted)"
			}
			parts = append(parts, clause)
		}
	} else {
		parts = append(parts, "Single/no partner linked")
	}

	if m.Mood != nil && strings.TrimSpace(m.Mood.Current) != "" {
		parts = append(parts, fmt.Sprintf("Current mood: %s, libido: %d/10",
			strings.TrimSpace(m.Mood.Current), models.ClampLibido(m.Mood.Libido)))
	}

	return strings.Join(parts, ", ")
}

// effectiveSpiciness treats an unset level as the default.
func effectiveSpiciness(n int) int {
	if n == 0 {
		return models.DefaultSpiciness
	}
	return models.ClampSpiciness(n)
}
