package study

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go_5_study_keep/internal/model"
)

// CardKind はマッチングカードの種類
type CardKind string

const (
	KindTerm       CardKind = "term"
	KindDefinition CardKind = "definition"
)

// MatchState はマッチングゲームの状態
type MatchState string

const (
	MatchIdle     MatchState = "idle"
	MatchRunning  MatchState = "running"
	MatchComplete MatchState = "complete"
)

// ClickOutcome はカードを1回クリックした結果
type ClickOutcome string

const (
	ClickIgnored    ClickOutcome = "ignored"
	ClickSelected   ClickOutcome = "selected"
	ClickMatched    ClickOutcome = "matched"
	ClickMismatched ClickOutcome = "mismatched"
)

var ErrUnknownCard = errors.New("unknown match card")

const (
	DefaultMismatchDelay = 1000 * time.Millisecond
	DefaultTickInterval  = 100 * time.Millisecond
)

// MatchCard はゲーム内だけで使うカード。ペアの判定は表示順ではなく pair で行う。
type MatchCard struct {
	ID       string
	Content  string
	Kind     CardKind
	Matched  bool
	Selected bool
	pair     int
}

type MatchOption func(*MatchGame)

// WithClock は現在時刻の取得関数を差し替えます
func WithClock(now func() time.Time) MatchOption {
	return func(g *MatchGame) { g.now = now }
}

// WithAfterFunc は遅延実行の仕組みを差し替えます
func WithAfterFunc(after func(d time.Duration, f func())) MatchOption {
	return func(g *MatchGame) { g.afterFunc = after }
}

func WithMismatchDelay(d time.Duration) MatchOption {
	return func(g *MatchGame) { g.mismatchDelay = d }
}

func WithMatchRand(rng *rand.Rand) MatchOption {
	return func(g *MatchGame) { g.rng = rng }
}

// WithOnComplete は全ペアが揃ったときに1度だけ呼ばれる関数を設定します
func WithOnComplete(fn func(elapsed time.Duration)) MatchOption {
	return func(g *MatchGame) { g.onComplete = fn }
}

// WithTicker はプレイ中、interval ごとに経過時間を通知します
func WithTicker(interval time.Duration, fn func(elapsed time.Duration)) MatchOption {
	return func(g *MatchGame) {
		g.tickInterval = interval
		g.onTick = fn
	}
}

// MatchGame は用語と定義のペアを揃えるゲームです。タイマーは別ゴルーチンから
// 呼ばれるため、状態はすべて mu で保護します。
type MatchGame struct {
	mu sync.Mutex

	pairs []model.Card
	cards []MatchCard
	state MatchState

	pendingID     string // 1枚目に選んだカード
	revertPending bool   // 不一致の2枚が戻るのを待っている
	matchedPairs  int
	startedAt     time.Time
	elapsed       time.Duration
	generation    uint64
	stopTicker    chan struct{}

	now           func() time.Time
	afterFunc     func(d time.Duration, f func())
	mismatchDelay time.Duration
	rng           *rand.Rand
	onComplete    func(elapsed time.Duration)
	tickInterval  time.Duration
	onTick        func(elapsed time.Duration)
}

// NewMatchGame はカードを配ってシャッフルした Idle 状態のゲームを返します。
// 必要な最小ペア数の検証は呼び出し側で行います。
func NewMatchGame(pairs []model.Card, opts ...MatchOption) *MatchGame {
	g := &MatchGame{
		pairs:         append([]model.Card(nil), pairs...),
		now:           time.Now,
		afterFunc:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		mismatchDelay: DefaultMismatchDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand()
	}
	g.deal()
	return g
}

func (g *MatchGame) deal() {
	cards := make([]MatchCard, 0, len(g.pairs)*2)
	for i, p := range g.pairs {
		cards = append(cards, MatchCard{ID: fmt.Sprintf("term-%d", i), Content: p.Term, Kind: KindTerm, pair: i})
	}
	for i, p := range g.pairs {
		cards = append(cards, MatchCard{ID: fmt.Sprintf("def-%d", i), Content: p.Definition, Kind: KindDefinition, pair: i})
	}
	g.cards = shuffled(g.rng, cards)
	g.state = MatchIdle
	g.pendingID = ""
	g.revertPending = false
	g.matchedPairs = 0
	g.startedAt = time.Time{}
	g.elapsed = 0
}

// Click はカードを1枚選択します。
func (g *MatchGame) Click(cardID string) (ClickOutcome, error) {
	g.mu.Lock()
	idx := g.indexOf(cardID)
	if idx < 0 {
		g.mu.Unlock()
		return ClickIgnored, ErrUnknownCard
	}
	if g.state == MatchComplete {
		g.mu.Unlock()
		return ClickIgnored, nil
	}
	if g.state == MatchIdle {
		g.state = MatchRunning
		g.startedAt = g.now()
		g.startTickerLocked()
	}

	card := &g.cards[idx]
	if card.Matched || card.Selected || g.revertPending {
		g.mu.Unlock()
		return ClickIgnored, nil
	}

	card.Selected = true
	if g.pendingID == "" {
		g.pendingID = card.ID
		g.mu.Unlock()
		return ClickSelected, nil
	}

	first := &g.cards[g.indexOf(g.pendingID)]
	if first.pair == card.pair && first.Kind != card.Kind {
		first.Matched, first.Selected = true, false
		card.Matched, card.Selected = true, false
		g.pendingID = ""
		g.matchedPairs++

		var onComplete func(time.Duration)
		var elapsed time.Duration
		if g.matchedPairs == len(g.pairs) && g.state == MatchRunning {
			g.state = MatchComplete
			g.elapsed = g.now().Sub(g.startedAt)
			g.stopTickerLocked()
			onComplete, elapsed = g.onComplete, g.elapsed
		}
		g.mu.Unlock()
		if onComplete != nil {
			onComplete(elapsed)
		}
		return ClickMatched, nil
	}

	// 不一致: 2枚とも選択状態のまま見せ、一定時間後に戻す
	g.revertPending = true
	gen := g.generation
	firstID, secondID := first.ID, card.ID
	g.mu.Unlock()

	g.afterFunc(g.mismatchDelay, func() { g.revertMismatch(gen, firstID, secondID) })
	return ClickMismatched, nil
}

func (g *MatchGame) revertMismatch(gen uint64, ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// Restart 後に届いた古い遅延処理は無視する
	if gen != g.generation {
		return
	}
	for _, id := range ids {
		if i := g.indexOf(id); i >= 0 {
			g.cards[i].Selected = false
		}
	}
	g.pendingID = ""
	g.revertPending = false
}

// Restart は同じインスタンスのまま配り直します。
func (g *MatchGame) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.stopTickerLocked()
	g.deal()
}

// Stop はティッカーを止めます。プレイを破棄するときに呼びます。
func (g *MatchGame) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.stopTickerLocked()
}

func (g *MatchGame) State() MatchState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *MatchGame) MatchedPairs() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.matchedPairs
}

func (g *MatchGame) TotalPairs() int {
	return len(g.pairs)
}

// Cards は表示順のカードのコピーを返します
func (g *MatchGame) Cards() []MatchCard {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]MatchCard(nil), g.cards...)
}

// Elapsed はプレイ中なら現在までの、完了後なら確定した経過時間を返します
func (g *MatchGame) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elapsedLocked()
}

func (g *MatchGame) elapsedLocked() time.Duration {
	switch g.state {
	case MatchRunning:
		return g.now().Sub(g.startedAt)
	case MatchComplete:
		return g.elapsed
	}
	return 0
}

func (g *MatchGame) indexOf(cardID string) int {
	for i := range g.cards {
		if g.cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

func (g *MatchGame) startTickerLocked() {
	if g.onTick == nil || g.tickInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	g.stopTicker = stop
	go func() {
		ticker := time.NewTicker(g.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				g.mu.Lock()
				if g.state != MatchRunning {
					g.mu.Unlock()
					return
				}
				elapsed := g.elapsedLocked()
				g.mu.Unlock()
				g.onTick(elapsed)
			}
		}
	}()
}

func (g *MatchGame) stopTickerLocked() {
	if g.stopTicker != nil {
		close(g.stopTicker)
		g.stopTicker = nil
	}
}
