package blueprint

import "github.com/BerylCAtieno/blueprint-companion-agent/internal/models"

func w(sensual, sexual, energetic, kinky, shapeshifter int) models.Scores {
	return models.Scores{
		Sensual:      sensual,
		Sexual:       sexual,
		Energetic:    energetic,
		Kinky:        kinky,
		Shapeshifter: shapeshifter,
	}
}

// questionBank is the only copy of the quiz. Handlers and clients render
// it through Questions so displayed options can never drift from scoring.
var questionBank = []models.QuizQuestion{
	{
		ID:   1,
		Text: "What kind of touch do you find most arousing?",
		Options: []models.AnswerOption{
			{Value: "gentle", Label: "Gentle, slow caresses and soft touches", Weights: w(3, 1, 0, 0, 1)},
			{Value: "direct", Label: "Direct touch to erogenous zones", Weights: w(0, 3, 1, 0, 1)},
			{Value: "teasing", Label: "Teasing touches that build anticipation", Weights: w(1, 1, 3, 1, 2)},
			{Value: "intense", Label: "Intense, possibly rough physical contact", Weights: w(0, 1, 1, 3, 1)},
		},
	},
	{
		ID:   2,
		Text: "What turns you on most in intimate moments?",
		Options: []models.AnswerOption{
			{Value: "emotional", Label: "Emotional connection and feeling cherished", Weights: w(3, 0, 1, 0, 1)},
			{Value: "physical", Label: "Physical pleasure and bodily sensations", Weights: w(1, 3, 0, 1, 1)},
			{Value: "psychological", Label: "Psychological arousal and mental stimulation", Weights: w(0, 0, 3, 2, 2)},
			{Value: "variety", Label: "Variety and trying new things", Weights: w(1, 1, 1, 1, 3)},
		},
	},
	{
		ID:   3,
		Text: "What environment helps you feel most sexually open?",
		Options: []models.AnswerOption{
			{Value: "romantic", Label: "Romantic atmosphere with candles and soft music", Weights: w(3, 0, 1, 0, 1)},
			{Value: "spontaneous", Label: "Spontaneous moments without much setup", Weights: w(0, 3, 1, 1, 1)},
			{Value: "playful", Label: "Playful, teasing interactions throughout the day", Weights: w(1, 1, 3, 0, 2)},
			{Value: "structured", Label: "Structured scenarios or role-playing", Weights: w(0, 1, 1, 3, 1)},
		},
	},
	{
		ID:   4,
		Text: "How do you prefer to build sexual tension?",
		Options: []models.AnswerOption{
			{Value: "slowly", Label: "Slowly over time with gentle escalation", Weights: w(3, 0, 1, 0, 1)},
			{Value: "directly", Label: "Direct communication about desires", Weights: w(0, 3, 0, 1, 1)},
			{Value: "anticipation", Label: "Building anticipation and suspense", Weights: w(1, 1, 3, 1, 2)},
			{Value: "power", Label: "Through power dynamics or control", Weights: w(0, 1, 0, 3, 1)},
		},
	},
	{
		ID:   5,
		Text: "What type of communication during intimacy excites you?",
		Options: []models.AnswerOption{
			{Value: "appreciation", Label: "Words of appreciation and love", Weights: w(3, 0, 1, 0, 1)},
			{Value: "instruction", Label: "Clear instructions about what feels good", Weights: w(0, 3, 0, 1, 1)},
			{Value: "creative", Label: "Creative, imaginative scenarios", Weights: w(1, 0, 3, 1, 2)},
			{Value: "commanding", Label: "Commanding or submissive language", Weights: w(0, 1, 0, 3, 1)},
		},
	},
}

// Questions returns a copy of the canonical question bank.
func Questions() []models.QuizQuestion {
	out := make([]models.QuizQuestion, len(questionBank))
	for i, q := range questionBank {
		q.Options = append([]models.AnswerOption(nil), q.Options...)
		out[i] = q
	}
	return out
}
