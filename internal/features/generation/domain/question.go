package domain

// QuestionType identifies the answer format of a generated question.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
)

// Question is a single quiz item produced by the generation chain.
type Question struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// QuestionSet is the wire shape the structured-generation phase asks the
// provider to return.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

const (
	// MinOptions and MaxOptions bound the options array for any question.
	MinOptions = 2
	MaxOptions = 4
	// TrueFalseOptions is the exact option count a true/false question carries.
	TrueFalseOptions = 2
)
