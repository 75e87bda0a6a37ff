package suggest

import (
	"hash/fnv"
	"strings"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// fallbackIdeas is indexed by spiciness-1. The first entry of each tier is
// the uncategorised default.
var fallbackIdeas = [models.MaxSpiciness][]string{
	{
		"Try writing a sweet note about something you appreciate about your connection and leave it somewhere they'll find it.",
		"Swap three things you noticed and loved about each other this week, one at a time, over a cup of tea.",
		"Put on the song that was playing when you first met and slow dance in the kitchen.",
	},
	{
		"Send a text describing your favorite memory together and hint at creating a new one soon.",
		"Leave a lipstick or sticky-note heart on the mirror with a teasing 'later…'.",
		"Plan a cosy movie night where the only rule is you have to hold hands the whole time.",
	},
	{
		"Plan a surprise date night at home with candles, music, and their favorite meal.",
		"Write three date ideas on slips of paper, let them pick one blind, and commit to it tonight.",
		"Recreate your first date, but this time tell each other what you were secretly thinking.",
	},
	{
		"Create a playlist of songs that remind you of intimate moments and share it with a personal message.",
		"Trade slow, unhurried massages by candlelight with a no-rushing rule.",
		"Blindfold one another and take turns exploring with touch, scent and taste.",
	},
	{
		"Write a letter expressing your desires and what you'd like to explore together, then read it aloud.",
		"Each write down a fantasy, swap envelopes, and talk through what excites you about the other's.",
		"Plan an evening where one of you sets the script and the other follows it, then switch next time.",
	},
}

// SelectFallback returns canned content for when the AI collaborator is
// unavailable. spiciness is clamped into 1..5 and the result is never empty.
// The same (tier, category) pair always selects the same candidate.
func SelectFallback(spiciness int, category string) string {
	tier := fallbackIdeas[models.ClampSpiciness(spiciness)-1]
	return tier[pick(category, len(tier))]
}

var fallbackChatReplies = []string{
	"That's a great question! I'm here to help you explore intimacy and connection in meaningful ways. What specific aspect would you like to discuss?",
	"Communication is so important in relationships. Have you and your partner talked about your needs and desires recently?",
	"I love that you're taking steps to deepen your connection. Building intimacy takes time and patience with yourself and your partner.",
	"Every relationship is unique, and what works for one couple might be different for another. What feels right for you both?",
	"Trust and emotional safety are the foundation of great intimacy. How comfortable do you feel expressing your authentic self?",
	"Small gestures often have the biggest impact. Sometimes it's the everyday moments of connection that matter most.",
}

// FallbackChatReply picks a supportive canned reply for message.
func FallbackChatReply(message string) string {
	return fallbackChatReplies[pick(message, len(fallbackChatReplies))]
}

var defaultSuggestions = []string{
	"Schedule 15 minutes of phone-free conversation daily",
	"Practice expressing appreciation for one specific thing your partner did today",
	"Plan a surprise activity based on something your partner mentioned recently",
}

// DefaultSuggestions returns a fresh copy of the canned suggestion list.
func DefaultSuggestions() []string {
	return append([]string(nil), defaultSuggestions...)
}

func pick(key string, n int) int {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || n <= 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
