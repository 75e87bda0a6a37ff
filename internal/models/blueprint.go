package models

import (
	"strings"
	"time"
)

// Dimension is one of the five blueprint trait dimensions.
type Dimension string

const (
	Sensual      Dimension = "Sensual"
	Sexual       Dimension = "Sexual"
	Energetic    Dimension = "Energetic"
	Kinky        Dimension = "Kinky"
	Shapeshifter Dimension = "Shapeshifter"
)

// Dimensions lists every dimension in canonical order. Scoring ties resolve
// to the dimension that appears first here.
var Dimensions = [5]Dimension{Sensual, Sexual, Energetic, Kinky, Shapeshifter}

// ParseDimension accepts any casing of a dimension name.
func ParseDimension(s string) (Dimension, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Dimensions {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Scores holds one integer per dimension. It is used both for option
// weights and for computed percentages.
type Scores struct {
	Sensual      int `json:"sensual"`
	Sexual       int `json:"sexual"`
	Energetic    int `json:"energetic"`
	Kinky        int `json:"kinky"`
	Shapeshifter int `json:"shapeshifter"`
}

func (s Scores) Get(d Dimension) int {
	switch d {
	case Sensual:
		return s.Sensual
	case Sexual:
		return s.Sexual
	case Energetic:
		return s.Energetic
	case Kinky:
		return s.Kinky
	case Shapeshifter:
		return s.Shapeshifter
	}
	return 0
}

func (s *Scores) Set(d Dimension, v int) {
	switch d {
	case Sensual:
		s.Sensual = v
	case Sexual:
		s.Sexual = v
	case Energetic:
		s.Energetic = v
	case Kinky:
		s.Kinky = v
	case Shapeshifter:
		s.Shapeshifter = v
	}
}

func (s Scores) Total() int {
	return s.Sensual + s.Sexual + s.Energetic + s.Kinky + s.Shapeshifter
}

type AnswerOption struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Weights Scores `json:"scores"`
}

type QuizQuestion struct {
	ID      int            `json:"id"`
	Text    string         `json:"text"`
	Options []AnswerOption `json:"options"`
}

// AnswerSet maps question id to the chosen option value.
type AnswerSet map[int]string

// BlueprintProfile is the immutable result of scoring one quiz submission.
type BlueprintProfile struct {
	Scores      Scores    `json:"scores"`
	PrimaryType Dimension `json:"primaryType"`
	CompletedAt time.Time `json:"completedAt"`
}

// PartnerBlueprint is a partner's profile. IsPredicted is set when the
// linked user estimated it instead of the partner taking the quiz.
type PartnerBlueprint struct {
	Scores      Scores    `json:"scores"`
	PrimaryType Dimension `json:"primaryType"`
	IsPredicted bool      `json:"isPredicted"`
}
