package suggest

// Topics are the boudoir generator's idea categories.
var Topics = []string{
	"Naughty Texts",
	"Naughty Pictures",
	"Naughty Game Ideas",
	"I Had a Fantasy…",
	"Roleplay Scenarios",
	"Massage & Touch",
	"Toys & Accessories",
	"Adventure Ideas",
	"Morning Rituals",
	"Evening Activities",
	"Weekend Escapes",
	"Surprise Elements",
	"Connection Exercises",
	"Celebration Ideas",
	"Sensory Experiences",
	"Communication Starters",
	"Boundary Exploration",
	"Intimacy Challenges",
	"Date Night Ideas",
	"Custom Scenarios",
}

type SpicinessLevel struct {
	Level       int    `json:"level"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Guideline   string `json:"guideline"`
}

// SpicinessLevels is indexed by level-1.
var SpicinessLevels = []SpicinessLevel{
	{Level: 1, Label: "Safe", Description: "Playful, lighthearted", Guideline: "Safe, playful, lighthearted"},
	{Level: 2, Label: "Flirty", Description: "Suggestive, sweet", Guideline: "Flirty, suggestive, sweet"},
	{Level: 3, Label: "Cheeky", Description: "Bold, romantic", Guideline: "Cheeky, bold, romantic"},
	{Level: 4, Label: "Sensual", Description: "Physical, intense", Guideline: "Sensual, physical, intense"},
	{Level: 5, Label: "Erotic", Description: "Daring, elegant", Guideline: "Erotic, daring, but still elegant"},
}
