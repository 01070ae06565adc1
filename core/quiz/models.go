package quiz

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// NumQuestions is the fixed size of a quiz; one answer slot per question.
const NumQuestions = 5

// Unanswered marks a slot the user has not selected an option for yet.
const Unanswered = ""

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrSlotOutOfRange  = errors.New("answer slot index out of range")
)

type (
	Question struct {
		Text    string   `json:"text"`
		Options []string `json:"options"`
	}

	// Quiz couples the ordered question set with its answer key; slot i of a
	// session answers question i and is scored against key entry i.
	Quiz struct {
		Title     string     `json:"title"`
		Questions []Question `json:"questions"`
		answerKey []string
	}

	// Session holds one user's answer slots for a quiz. The score is derived,
	// recomputed only on Submit, and meaningless until a submit has occurred.
	Session struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"` // UTC

		mu        sync.Mutex
		quiz      Quiz
		answers   []string
		score     int
		submitted bool
	}

	// SlotResult is one row of the results view: a stored answer next to its
	// key entry.
	SlotResult struct {
		Index         int    `json:"index"`
		Question      string `json:"question"`
		GivenAnswer   string `json:"given_answer"`
		CorrectAnswer string `json:"correct_answer"`
		IsCorrect     bool   `json:"is_correct"`
	}
)

// NewQuiz builds a quiz from question/key pairs. The key is fixed at
// construction time and never mutated afterwards.
func NewQuiz(title string, questions []Question, answerKey []string) (Quiz, error) {
	if len(questions) != len(answerKey) {
		return Quiz{}, errors.Errorf(
			"quiz %q: %d questions for %d key entries", title, len(questions), len(answerKey))
	}
	key := make([]string, len(answerKey))
	copy(key, answerKey)
	return Quiz{Title: title, Questions: questions, answerKey: key}, nil
}

func (q Quiz) Len() int { return len(q.Questions) }

// AnswerKey returns a copy of the key; callers cannot alias the original.
func (q Quiz) AnswerKey() []string {
	key := make([]string, len(q.answerKey))
	copy(key, q.answerKey)
	return key
}

// DefaultQuiz is the site's fixed 5-question AI quiz.
func DefaultQuiz() Quiz {
	q, err := NewQuiz(
		"AI Quiz",
		[]Question{
			{
				Text: "Which of the following is a key component of a neural network?",
				Options: []string{
					"Neurons",
					"Decision Trees",
					"Support Vector Machines",
					"K-Means Clustering",
				},
			},
			{
				Text: "What is the primary purpose of a loss function in machine learning?",
				Options: []string{
					"To measure the accuracy of the model",
					"To optimize the model's parameters",
					"To evaluate the difference between predicted and actual values",
					"To visualize the data",
				},
			},
			{
				Text: "Which of the following is a valid activation function used in neural networks?",
				Options: []string{
					"ReLU (Rectified Linear Unit)",
					"Sigmoid",
					"Tanh",
					"All of the above",
				},
			},
			{
				Text: "What is the main goal of reinforcement learning?",
				Options: []string{
					"To classify data into predefined categories",
					"To learn a policy that maximizes cumulative rewards",
					"To cluster data into groups",
					"To reduce the dimensionality of data",
				},
			},
			{
				Text: "Which of the following is a common application of Natural Language Processing (NLP)?",
				Options: []string{
					"Sentiment Analysis",
					"Image Recognition",
					"Speech Recognition",
					"Both 1 and 3",
				},
			},
		},
		[]string{
			"Neurons",
			"To evaluate the difference between predicted and actual values",
			"All of the above",
			"To learn a policy that maximizes cumulative rewards",
			"Both 1 and 3",
		},
	)
	if err != nil {
		panic(err) // unreachable: the default quiz is well-formed
	}
	return q
}

func newSession(id string, q Quiz) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		quiz:      q,
		answers:   make([]string, q.Len()),
	}
}

func (s *Session) Quiz() Quiz { return s.quiz }

// Answers returns a copy of the answer slots.
func (s *Session) Answers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers := make([]string, len(s.answers))
	copy(answers, s.answers)
	return answers
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// SetAnswer overwrites slot `index` with `value`, leaving all other slots
// unchanged. The value is not checked against the question's options.
func (s *Session) SetAnswer(index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.answers) {
		return errors.Wrap(ErrSlotOutOfRange, "slot "+strconv.Itoa(index))
	}
	s.answers[index] = value
	return nil
}

// Reset sets every slot back to unanswered and discards any prior score.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.score = 0
	s.submitted = false
}

// Submit scores the slots against the answer key using exact string equality
// and returns the integer percentage. Unanswered slots count as non-matches.
func (s *Session) Submit() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, correct := 0, 0
	for i := range s.answers {
		if s.answers[i] == s.quiz.answerKey[i] {
			correct++
		}
		total++
	}

	if total == 0 {
		s.score = 0
	} else {
		s.score = correct * 100 / total
	}
	s.submitted = true
	return s.score
}

// PercentScore formats the score as "<n>%", e.g. 60 -> "60%".
func (s *Session) PercentScore() string {
	return fmt.Sprintf("%d%%", s.Score())
}

// Results pairs every stored answer with its key entry for the results view,
// using the same exact-equality comparison as Submit.
func (s *Session) Results() []SlotResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]SlotResult, len(s.answers))
	for i, ans := range s.answers {
		results[i] = SlotResult{
			Index:         i,
			Question:      s.quiz.Questions[i].Text,
			GivenAnswer:   ans,
			CorrectAnswer: s.quiz.answerKey[i],
			IsCorrect:     ans == s.quiz.answerKey[i],
		}
	}
	return results
}
