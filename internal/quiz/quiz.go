// Package quiz runs a multiple-choice knowledge quiz: one question at a
// time, a single answer per question, and a banded result at the end.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("question not answered yet")
	ErrCompleted       = errors.New("quiz is completed")
	ErrNoSuchOption    = errors.New("no such option")
)

// Question is one entry of a question bank. Answer indexes Options.
type Question struct {
	Prompt      string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// Bank is the YAML layout of a question file.
type Bank struct {
	Questions []Question `yaml:"questions"`
}

// Load reads a question bank from path and validates it.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse questions %s: %w", path, err)
	}
	if err := validate(b.Questions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.Questions, nil
}

func validate(qs []Question) error {
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	for i, q := range qs {
		switch {
		case q.Prompt == "":
			return fmt.Errorf("%w %d: empty prompt", ErrInvalidQuestion, i+1)
		case len(q.Options) < 2:
			return fmt.Errorf("%w %d: need at least 2 options, got %d", ErrInvalidQuestion, i+1, len(q.Options))
		case q.Answer < 0 || q.Answer >= len(q.Options):
			return fmt.Errorf("%w %d: answer %d out of range", ErrInvalidQuestion, i+1, q.Answer)
		}
	}
	return nil
}

// Band groups a final percentage.
type Band int

const (
	KeepStudying Band = iota
	Good
	Excellent
)

func (b Band) String() string {
	switch b {
	case Excellent:
		return "Excellent! You have a strong understanding of ERP!"
	case Good:
		return "Good job! Keep learning to master ERP concepts."
	default:
		return "Keep studying! Review the content and try again."
	}
}

// BandFor maps a whole percentage to its band: 80 and up is Excellent,
// 60 and up is Good.
func BandFor(percent int) Band {
	switch {
	case percent >= 80:
		return Excellent
	case percent >= 60:
		return Good
	}
	return KeepStudying
}

// Quiz is the progression state over a fixed list of questions.
type Quiz struct {
	questions []Question
	current   int
	selected  int // -1 until the current question is answered
	score     int
	answered  []bool
	completed bool
}

func New(questions []Question) (*Quiz, error) {
	if err := validate(questions); err != nil {
		return nil, err
	}
	q := &Quiz{questions: questions}
	q.Restart()
	return q, nil
}

// Answer selects option for the current question and reports whether it
// was correct. Each question takes exactly one answer.
func (q *Quiz) Answer(option int) (bool, error) {
	switch {
	case q.completed:
		return false, ErrCompleted
	case q.selected >= 0:
		return false, ErrAlreadyAnswered
	case option < 0 || option >= len(q.questions[q.current].Options):
		return false, fmt.Errorf("%w: %d", ErrNoSuchOption, option)
	}

	q.selected = option
	q.answered[q.current] = true
	correct := option == q.questions[q.current].Answer
	if correct {
		q.score++
	}
	return correct, nil
}

// Next moves past an answered question. After the last one the quiz is
// completed.
func (q *Quiz) Next() error {
	switch {
	case q.completed:
		return ErrCompleted
	case q.selected < 0:
		return ErrNotAnswered
	}
	if q.current < len(q.questions)-1 {
		q.current++
		q.selected = -1
		return nil
	}
	q.completed = true
	return nil
}

// Restart clears all progress.
func (q *Quiz) Restart() {
	q.current = 0
	q.selected = -1
	q.score = 0
	q.answered = make([]bool, len(q.questions))
	q.completed = false
}

func (q *Quiz) Current() Question { return q.questions[q.current] }

// Index is the zero-based position of the current question.
func (q *Quiz) Index() int { return q.current }

func (q *Quiz) Len() int { return len(q.questions) }

func (q *Quiz) Score() int { return q.score }

// Selected returns the chosen option of the current question, if any.
func (q *Quiz) Selected() (int, bool) { return q.selected, q.selected >= 0 }

// AnsweredCount is how many questions have been answered so far.
func (q *Quiz) AnsweredCount() int {
	n := 0
	for _, a := range q.answered {
		if a {
			n++
		}
	}
	return n
}

func (q *Quiz) Completed() bool { return q.completed }

// Percentage is the score over all questions, rounded to a whole percent.
func (q *Quiz) Percentage() int {
	return int(math.Round(float64(q.score) / float64(len(q.questions)) * 100))
}

func (q *Quiz) Result() Band { return BandFor(q.Percentage()) }
