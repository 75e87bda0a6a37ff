package suggest

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/memory"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

const ideaSystemPrompt = "You are an expert in intimacy and relationship guidance, specializing in Erotic Blueprint theory. " +
	"Generate tasteful, creative suggestions that help couples connect more deeply."

const suggestionsSystemPrompt = "You are an expert relationship coach. Provide tasteful, romantic suggestions for couples to deepen their connection."

func chatSystemPrompt(mem models.UserMemoryContext) string {
	return fmt.Sprintf(`You are SeggsyBot, an expert intimacy and relationship coach specializing in Erotic Blueprint theory. You provide warm, supportive, and practical guidance to help people improve their intimate connections. Keep responses helpful, respectful, and tasteful while being knowledgeable about intimacy, communication, and relationships. Keep responses concise but meaningful.

About the person you are talking to: %s`, memory.BuildContext(mem))
}

func ideaPrompt(topic string, spiciness int, mem models.UserMemoryContext) string {
	var b strings.Builder
	b.WriteString("User context: " + memory.BuildContext(mem) + "\n")
	b.WriteString("Topic: " + topic + "\n")
	b.WriteString(fmt.Sprintf("Spiciness Level: %d\n\n", spiciness))
	b.WriteString("Create 1 intimacy idea. Make it creative, emotionally intelligent, non-cringe. Do not repeat topic name. Adapt tone to spiciness level.\n\n")
	b.WriteString("Spiciness Guidelines:\n")
	for _, lvl := range SpicinessLevels {
		b.WriteString(fmt.Sprintf("%d: %s\n", lvl.Level, lvl.Guideline))
	}
	b.WriteString("\nReturn only the suggestion, no additional text.")
	return b.String()
}

func suggestionsPrompt(mem models.UserMemoryContext) string {
	return fmt.Sprintf(`Based on this user context: %s, generate 3 personalized, tasteful intimacy suggestions for couples. Focus on connection, communication, and romance.

Return ONLY a JSON object of the form {"suggestions": ["...", "...", "..."]}.`, memory.BuildContext(mem))
}
