package memory

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

func TestBuildContextMinimal(t *testing.T) {
	got := BuildContext(models.UserMemoryContext{UserID: "u1"})
	assert.Equal(t, "Spiciness preference: 3/5, Single/no partner linked", got)
}

func TestBuildContextFull(t *testing.T) {
	mem := models.UserMemoryContext{
		UserID:         "u1",
		Gender:         "female",
		Identity:       "bisexual",
		SpicinessLevel: 4,
		Blueprint:      &models.BlueprintProfile{PrimaryType: models.Sensual},
		PartnerLinked:  true,
		PartnerName:    "Sam",
		PartnerBlueprint: &models.PartnerBlueprint{
			PrimaryType: models.Kinky,
			IsPredicted: true,
		},
		Mood: &models.Mood{Current: "playful", Libido: 7},
	}
	want := "Gender: female, Identity: bisexual, Spiciness preference: 4/5, Blueprint: Sensual, " +
		"Partner: Sam (linked), Partner blueprint: Kinky (predicted), Current mood: playful, libido: 7/10"
	assert.Equal(t, want, BuildContext(mem))
	assert.NotContains(t, BuildContext(mem), "\n")
}

func TestBuildContextSelfReportedPartner(t *testing.T) {
	mem := models.UserMemoryContext{
		SpicinessLevel:   2,
		PartnerLinked:    true,
		PartnerName:      "Alex",
		PartnerBlueprint: &models.PartnerBlueprint{PrimaryType: models.Energetic},
	}
	got := BuildContext(mem)
	assert.Contains(t, got, "Partner blueprint: Energetic")
	assert.NotContains(t, got, "(predicted)")
}

func TestBuildContextLinkedWithoutNameIsSingle(t *testing.T) {
	got := BuildContext(models.UserMemoryContext{PartnerLinked: true, SpicinessLevel: 1})
	assert.Equal(t, "Spiciness preference: 1/5, Single/no partner linked", got)
}

func TestBuildContextClampsStoredValues(t *testing.T) {
	got := BuildContext(models.UserMemoryContext{
		SpicinessLevel: 9,
		Mood:           &models.Mood{Current: "tired", Libido: 40},
	})
	assert.Equal(t, "Spiciness preference: 5/5, Single/no partner linked, Current mood: tired, libido: 10/10", got)
}

// Two memories decoded from JSON with differently ordered keys must render
// identically.
func TestBuildContextOrderIsStable(t *testing.T) {
	a := `{"mood":{"current":"calm","libido":5},"gender":"male","partnerLinked":true,"partnerName":"Jo","spicinessLevel":2,"blueprint":{"primaryType":"Sexual"}}`
	b := `{"spicinessLevel":2,"blueprint":{"primaryType":"Sexual"},"partnerName":"Jo","partnerLinked":true,"gender":"male","mood":{"libido":5,"current":"calm"}}`

	var ma, mb models.UserMemoryContext
	require.NoError(t, json.Unmarshal([]byte(a), &ma))
	require.NoError(t, json.Unmarshal([]byte(b), &mb))

	ca, cb := BuildContext(ma), BuildContext(mb)
	assert.Equal(t, ca, cb)
	assert.True(t, strings.HasPrefix(ca, "Gender: male, Spiciness preference: 2/5, Blueprint: Sexual, Partner: Jo (linked)"))
}
