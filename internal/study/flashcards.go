package study

import (
	"math/rand/v2"
	"sync"

	"go_5_study_keep/internal/model"
)

// FlashcardDeck はカードを1枚ずつめくるデッキです。前後の移動は端で一周します。
type FlashcardDeck struct {
	mu       sync.Mutex
	original []model.Card
	cards    []model.Card
	index    int
	flipped  bool
	rng      *rand.Rand
}

func NewFlashcardDeck(cards []model.Card, rng *rand.Rand) *FlashcardDeck {
	if rng == nil {
		rng = NewRand()
	}
	original := append([]model.Card(nil), cards...)
	return &FlashcardDeck{
		original: original,
		cards:    append([]model.Card(nil), original...),
		rng:      rng,
	}
}

// Flip は表裏を反転し、反転後に裏面（定義）が見えているかを返します
func (d *FlashcardDeck) Flip() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flipped = !d.flipped
	return d.flipped
}

func (d *FlashcardDeck) Next() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index + 1) % len(d.cards)
	d.flipped = false
}

func (d *FlashcardDeck) Previous() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index - 1 + len(d.cards)) % len(d.cards)
	d.flipped = false
}

// Shuffle は並びをシャッフルして先頭に戻ります
func (d *FlashcardDeck) Shuffle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = shuffled(d.rng, d.cards)
	d.index = 0
	d.flipped = false
}

// Reset は元の並びに戻して先頭に戻ります
func (d *FlashcardDeck) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = append([]model.Card(nil), d.original...)
	d.index = 0
	d.flipped = false
}

// Current は現在のカードを返します。空のデッキなら ok=false です。
func (d *FlashcardDeck) Current() (card model.Card, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return model.Card{}, false
	}
	return d.cards[d.index], true
}

func (d *FlashcardDeck) View() model.FlashcardsView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return model.FlashcardsView{
		Cards:        append([]model.Card(nil), d.cards...),
		CurrentIndex: d.index,
		Flipped:      d.flipped,
		Total:        len(d.cards),
	}
}
