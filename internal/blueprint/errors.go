package blueprint

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a ValidationError.
type Kind string

const (
	KindIncompleteSubmission Kind = "incomplete_submission"
	KindUnknownOptionValue   Kind = "unknown_option_value"
	KindDegenerateInput      Kind = "degenerate_input"
)

// Sentinels for errors.Is. Any *ValidationError of the same Kind matches.
var (
	ErrIncompleteSubmission = &ValidationError{Kind: KindIncompleteSubmission}
	ErrUnknownOptionValue   = &ValidationError{Kind: KindUnknownOptionValue}
	ErrDegenerateInput      = &ValidationError{Kind: KindDegenerateInput}
)

// ValidationError is returned by Score for any submission that cannot be
// classified. Its message is safe to show to the user.
type ValidationError struct {
	Kind Kind
	// QuestionIDs lists the questions that caused the failure, if any.
	QuestionIDs []int
	// Value is the rejected option value for KindUnknownOptionValue.
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindIncompleteSubmission:
		if len(e.QuestionIDs) == 0 {
			return "incomplete submission: please answer all questions"
		}
		return fmt.Sprintf("incomplete submission: please answer all questions (missing %s)", joinIDs(e.QuestionIDs))
	case KindUnknownOptionValue:
		if len(e.QuestionIDs) == 0 {
			return "unknown option value"
		}
		return fmt.Sprintf("unknown option value %q for question %d", e.Value, e.QuestionIDs[0])
	case KindDegenerateInput:
		return "no signal to score"
	}
	return "invalid submission"
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
