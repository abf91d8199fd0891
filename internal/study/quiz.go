package study

import (
	"errors"
	"math/rand/v2"
	"sync"

	"go_5_study_keep/internal/model"
)

const maxDistractors = 3

var (
	ErrQuizFinished   = errors.New("quiz already finished")
	ErrAlreadyChecked = errors.New("answer already checked")
	ErrNoAnswer       = errors.New("no answer selected")
	ErrNotChecked     = errors.New("answer not checked yet")
	ErrUnknownOption  = errors.New("answer is not one of the options")
)

// Question は1問分。Prompt が用語、CorrectAnswer が定義です。
type Question struct {
	CardID        string
	Prompt        string
	CorrectAnswer string
	Options       []string
}

type QuizOption func(*Quiz)

func WithQuizRand(rng *rand.Rand) QuizOption {
	return func(q *Quiz) { q.rng = rng }
}

// WithQuizComplete は最後の問題を終えたときに1度だけ呼ばれる関数を設定します
func WithQuizComplete(fn func(score, total int)) QuizOption {
	return func(q *Quiz) { q.onComplete = fn }
}

// WithQuizCheck は答え合わせのたびに呼ばれる関数を設定します
func WithQuizCheck(fn func(correct bool)) QuizOption {
	return func(q *Quiz) { q.onCheck = fn }
}

// Quiz は4択クイズです。問題は生成時に1度だけ作られ、Restart でも作り直しません。
type Quiz struct {
	mu sync.Mutex

	questions      []Question
	currentIndex   int
	selectedAnswer string
	isAnswered     bool
	score          int
	finished       bool
	missed         []string // 間違えたカードID（回答順）

	rng        *rand.Rand
	onComplete func(score, total int)
	onCheck    func(correct bool)
}

// NewQuiz は問題を生成します。必要な最小カード数の検証は呼び出し側で行います。
func NewQuiz(pairs []model.Card, opts ...QuizOption) *Quiz {
	q := &Quiz{}
	for _, opt := range opts {
		opt(q)
	}
	if q.rng == nil {
		q.rng = NewRand()
	}
	q.questions = generateQuestions(q.rng, pairs)
	q.finished = len(q.questions) == 0
	return q
}

// generateQuestions は各カードについて、他のカードの定義から最大3つを誤答に選びます。
// 同じ定義文が別カードにあれば、正解と同じ文字列が誤答に入ることもあります。
func generateQuestions(rng *rand.Rand, pairs []model.Card) []Question {
	questions := make([]Question, 0, len(pairs))
	for i, card := range pairs {
		others := make([]string, 0, len(pairs)-1)
		for j, other := range pairs {
			if j != i {
				others = append(others, other.Definition)
			}
		}
		distractors := shuffled(rng, others)
		if len(distractors) > maxDistractors {
			distractors = distractors[:maxDistractors]
		}
		options := append([]string{card.Definition}, distractors...)
		questions = append(questions, Question{
			CardID:        card.ID,
			Prompt:        card.Term,
			CorrectAnswer: card.Definition,
			Options:       shuffled(rng, options),
		})
	}
	return questions
}

// Select は回答を選びます。答え合わせ後は何もしません。
func (q *Quiz) Select(answer string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finished {
		return ErrQuizFinished
	}
	if q.isAnswered {
		return nil
	}
	for _, opt := range q.questions[q.currentIndex].Options {
		if opt == answer {
			q.selectedAnswer = answer
			return nil
		}
	}
	return ErrUnknownOption
}

// Check は選んだ回答を採点します。
func (q *Quiz) Check() (bool, error) {
	q.mu.Lock()
	if q.finished {
		q.mu.Unlock()
		return false, ErrQuizFinished
	}
	if q.isAnswered {
		q.mu.Unlock()
		return false, ErrAlreadyChecked
	}
	if q.selectedAnswer == "" {
		q.mu.Unlock()
		return false, ErrNoAnswer
	}
	current := q.questions[q.currentIndex]
	correct := q.selectedAnswer == current.CorrectAnswer
	if correct {
		q.score++
	} else if current.CardID != "" {
		q.missed = append(q.missed, current.CardID)
	}
	q.isAnswered = true
	onCheck := q.onCheck
	q.mu.Unlock()

	if onCheck != nil {
		onCheck(correct)
	}
	return correct, nil
}

// Next は次の問題へ進みます。最後の問題なら結果に移り、finished=true を返します。
func (q *Quiz) Next() (finished bool, err error) {
	q.mu.Lock()
	if q.finished {
		q.mu.Unlock()
		return true, ErrQuizFinished
	}
	if !q.isAnswered {
		q.mu.Unlock()
		return false, ErrNotChecked
	}
	if q.currentIndex < len(q.questions)-1 {
		q.currentIndex++
		q.selectedAnswer = ""
		q.isAnswered = false
		q.mu.Unlock()
		return false, nil
	}

	q.finished = true
	score, total := q.score, len(q.questions)
	onComplete := q.onComplete
	q.mu.Unlock()

	if onComplete != nil {
		onComplete(score, total)
	}
	return true, nil
}

// Restart は最初の問題・0点に戻します。問題と選択肢はそのままです。
func (q *Quiz) Restart() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.currentIndex = 0
	q.selectedAnswer = ""
	q.isAnswered = false
	q.score = 0
	q.finished = len(q.questions) == 0
	q.missed = nil
}

// QuizSnapshot はクイズの現在状態のコピー
type QuizSnapshot struct {
	Questions      []Question
	CurrentIndex   int
	SelectedAnswer string
	IsAnswered     bool
	Score          int
	Finished       bool
	Missed         []string
}

func (q *Quiz) Snapshot() QuizSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	questions := make([]Question, len(q.questions))
	for i, question := range q.questions {
		question.Options = append([]string(nil), question.Options...)
		questions[i] = question
	}
	return QuizSnapshot{
		Questions:      questions,
		CurrentIndex:   q.currentIndex,
		SelectedAnswer: q.selectedAnswer,
		IsAnswered:     q.isAnswered,
		Score:          q.score,
		Finished:       q.finished,
		Missed:         append([]string(nil), q.missed...),
	}
}

// ResultMessage は正答数に応じた励ましのメッセージを返します
func ResultMessage(score, total int) string {
	switch {
	case total > 0 && score == total:
		return "Perfect score! Amazing work!"
	case score*10 >= total*8:
		return "Great job!"
	case score*10 >= total*6:
		return "Good effort!"
	}
	return "Keep practicing!"
}
