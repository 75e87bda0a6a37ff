package blueprint

import (
	"math"
	"sort"
	"time"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// Classifier turns completed answer sets into blueprint profiles. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	questions []models.QuizQuestion
	now       func() time.Time
}

// NewClassifier scores against the given questions, or the canonical bank
// when questions is nil.
func NewClassifier(questions []models.QuizQuestion) *Classifier {
	if questions == nil {
		questions = Questions()
	}
	return &Classifier{questions: questions, now: time.Now}
}

// WithClock returns a copy of the classifier that stamps profiles using now.
func (c *Classifier) WithClock(now func() time.Time) *Classifier {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Classifier) Questions() []models.QuizQuestion {
	return c.questions
}

func (c *Classifier) Score(answers models.AnswerSet) (models.BlueprintProfile, error) {
	return score(answers, c.questions, c.now)
}

// Score classifies answers against questions using the wall clock.
func Score(answers models.AnswerSet, questions []models.QuizQuestion) (models.BlueprintProfile, error) {
	return score(answers, questions, time.Now)
}

func score(answers models.AnswerSet, questions []models.QuizQuestion, now func() time.Time) (models.BlueprintProfile, error) {
	var missing []int
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return models.BlueprintProfile{}, &ValidationError{Kind: KindIncompleteSubmission, QuestionIDs: missing}
	}

	var acc models.Scores
	for _, q := range questions {
		value := answers[q.ID]
		opt, ok := findOption(q, value)
		if !ok {
			return models.BlueprintProfile{}, &ValidationError{
				Kind:        KindUnknownOptionValue,
				QuestionIDs: []int{q.ID},
				Value:       value,
			}
		}
		for _, d := range models.Dimensions {
			acc.Set(d, acc.Get(d)+opt.Weights.Get(d))
		}
	}

	total := acc.Total()
	if total == 0 {
		return models.BlueprintProfile{}, &ValidationError{Kind: KindDegenerateInput}
	}

	// Each dimension is rounded on its own; the sum may drift from 100.
	var pct models.Scores
	for _, d := range models.Dimensions {
		pct.Set(d, int(math.Round(float64(acc.Get(d))/float64(total)*100)))
	}

	return models.BlueprintProfile{
		Scores:      pct,
		PrimaryType: PrimaryType(pct),
		CompletedAt: now().UTC(),
	}, nil
}

// PrimaryType returns the dimension with the highest score. Ties go to the
// dimension that comes first in canonical order.
func PrimaryType(s models.Scores) models.Dimension {
	best := models.Dimensions[0]
	for _, d := range models.Dimensions[1:] {
		if s.Get(d) > s.Get(best) {
			best = d
		}
	}
	return best
}

func findOption(q models.QuizQuestion, value string) (models.AnswerOption, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return models.AnswerOption{}, false
}
