package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseQuestionSet decodes the raw structured-generation output. Some models
// still wrap JSON in a markdown code fence even when asked not to, so fences
// are stripped before decoding.
func ParseQuestionSet(raw string) (QuestionSet, error) {
	cleaned := stripJSONFence(raw)

	var set QuestionSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return QuestionSet{}, fmt.Errorf("failed to parse question set: %w", err)
	}
	return set, nil
}

func stripJSONFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ValidateQuestions checks every item against the question contract and
// returns the normalized items alongside the violations found. Items with
// violations are flagged, never dropped: the caller sees partial validity
// instead of silent data loss.
func ValidateQuestions(questions []Question) ([]Question, []string) {
	out := make([]Question, 0, len(questions))
	var violations []string

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			violations = append(violations, fmt.Sprintf("question %d: empty question text", i+1))
		}

		switch q.Type {
		case TypeMultipleChoice, TypeTrueFalse:
		case "":
			// Models routinely omit type; default rather than reject.
			q.Type = TypeMultipleChoice
		default:
			violations = append(violations, fmt.Sprintf("question %d: unknown type %q", i+1, q.Type))
		}

		if n := len(q.Options); n < MinOptions || n > MaxOptions {
			violations = append(violations, fmt.Sprintf("question %d: %d options outside [%d,%d]", i+1, n, MinOptions, MaxOptions))
		} else if q.Type == TypeTrueFalse && n != TrueFalseOptions {
			violations = append(violations, fmt.Sprintf("question %d: true-false requires exactly %d options, got %d", i+1, TrueFalseOptions, n))
		}

		seen := make(map[string]bool, len(q.Options))
		dup := ""
		for _, opt := range q.Options {
			if seen[opt] && dup == "" {
				dup = opt
			}
			seen[opt] = true
		}
		if dup != "" {
			violations = append(violations, fmt.Sprintf("question %d: duplicate option %q", i+1, dup))
		}

		if !seen[q.CorrectAnswer] {
			violations = append(violations, fmt.Sprintf("question %d: correctAnswer %q is not one of the options", i+1, q.CorrectAnswer))
		}

		out = append(out, q)
	}
	return out, violations
}
