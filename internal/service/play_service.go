package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/study"

	"github.com/google/uuid"
)

// PlayService はサーバー上で進行する学習（フラッシュカード・クイズ・マッチング）を管理します。
// 完了または中断したプレイは学習セッションとして自動で記録されます。
type PlayService interface {
	StartPlay(ctx context.Context, identity model.Identity, setID string, req *model.StartPlayRequest) (*model.PlayView, error)
	GetPlay(ctx context.Context, identity model.Identity, playID string) (*model.PlayView, error)
	ApplyAction(ctx context.Context, identity model.Identity, playID string, req *model.PlayActionRequest) (*model.PlayView, error)
	AbandonPlay(ctx context.Context, identity model.Identity, playID string) (*model.PlayView, error)
	// PruneExpired は一定時間操作のないプレイを破棄し、破棄した件数を返します
	PruneExpired(ctx context.Context) int
}

// play は1回分のプレイ。エンジンの操作とセッションの記録は mu の下で行います。
type play struct {
	mu sync.Mutex

	id         string
	owner      string
	studySetID string
	mode       model.StudyMode
	status     model.PlayStatus
	startedAt  time.Time
	lastActive time.Time

	quiz      *study.Quiz
	match     *study.MatchGame
	deck      *study.FlashcardDeck
	lastCheck *model.QuizCheckResult

	// 完了コールバックで受け取った結果。記録したら nil に戻す
	quizResult   *quizResult
	matchElapsed *time.Duration

	session *model.StudySession
}

type quizResult struct {
	score int
	total int
}

type playService struct {
	studySets StudySetService
	sessions  SessionService
	cfg       *config.Config

	mu    sync.Mutex
	plays map[string]*play

	now       func() time.Time
	afterFunc func(d time.Duration, f func())
}

func NewPlayService(studySets StudySetService, sessions SessionService, cfg *config.Config) PlayService {
	return &playService{
		studySets: studySets,
		sessions:  sessions,
		cfg:       cfg,
		plays:     make(map[string]*play),
		now:       time.Now,
	}
}

func playNotFound() error {
	return model.NewAppError("PLAY_NOT_FOUND", "指定されたプレイが見つかりません。", "", model.ErrNotFound)
}

func (s *playService) StartPlay(ctx context.Context, identity model.Identity, setID string, req *model.StartPlayRequest) (*model.PlayView, error) {
	logger := middleware.GetLogger(ctx).With("study_set_id", setID, "mode", req.Mode)

	set, err := s.studySets.GetStudySet(ctx, identity, setID)
	if err != nil {
		return nil, err
	}
	cards := set.CompleteCards()
	if err := s.checkCardCount(req.Mode, len(cards)); err != nil {
		logger.Info("Not enough cards to start play", "complete_cards", len(cards))
		return nil, err
	}

	now := s.now()
	p := &play{
		id:         uuid.NewString(),
		owner:      ownerOf(identity),
		studySetID: set.ID,
		mode:       req.Mode,
		status:     model.PlayActive,
		startedAt:  now,
		lastActive: now,
	}

	switch req.Mode {
	case model.ModeQuiz:
		p.quiz = study.NewQuiz(cards, study.WithQuizComplete(func(score, total int) {
			p.quizResult = &quizResult{score: score, total: total}
		}))
	case model.ModeMatch:
		opts := []study.MatchOption{
			study.WithClock(s.now),
			study.WithMismatchDelay(s.cfg.App.MismatchDelay),
			study.WithOnComplete(func(elapsed time.Duration) {
				p.matchElapsed = &elapsed
			}),
		}
		if s.afterFunc != nil {
			opts = append(opts, study.WithAfterFunc(s.afterFunc))
		}
		p.match = study.NewMatchGame(cards, opts...)
	case model.ModeFlashcards:
		p.deck = study.NewFlashcardDeck(cards, nil)
	default:
		return nil, model.NewAppError("VALIDATION_ERROR", "未対応の学習モードです。", "mode", model.ErrInvalidInput)
	}

	s.PruneExpired(ctx)
	s.mu.Lock()
	s.plays[p.id] = p
	s.mu.Unlock()

	logger.Info("Play started", "play_id", p.id, "cards", len(cards))
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view(), nil
}

func (s *playService) GetPlay(ctx context.Context, identity model.Identity, playID string) (*model.PlayView, error) {
	p, err := s.lookup(identity, playID)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view(), nil
}

func (s *playService) ApplyAction(ctx context.Context, identity model.Identity, playID string, req *model.PlayActionRequest) (*model.PlayView, error) {
	logger := middleware.GetLogger(ctx).With("play_id", playID, "action", req.Action)

	p, err := s.lookup(identity, playID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastActive = s.now()

	if p.status == model.PlayCompleted && !isRestartAction(p.mode, req.Action) {
		return nil, model.NewAppError("PLAY_COMPLETED", "このプレイは終了しています。", "action", model.ErrConflict)
	}

	switch p.mode {
	case model.ModeQuiz:
		err = s.applyQuiz(p, req)
	case model.ModeMatch:
		err = s.applyMatch(p, req)
	case model.ModeFlashcards:
		err = s.applyFlashcards(p, req)
	}
	if err != nil {
		logger.Info("Play action rejected", "error", err)
		return nil, err
	}

	s.recordCompletion(ctx, identity, p)
	return p.view(), nil
}

func (s *playService) AbandonPlay(ctx context.Context, identity model.Identity, playID string) (*model.PlayView, error) {
	logger := middleware.GetLogger(ctx).With("play_id", playID)

	p, err := s.lookup(identity, playID)
	if err != nil {
		return nil, err
	}
	s.remove(playID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.match != nil {
		p.match.Stop()
	}

	if p.status == model.PlayActive {
		session := s.buildSession(p, false)
		if err := s.sessions.AppendSession(ctx, identity, session); err != nil {
			logger.Error("Failed to record abandoned play", "error", err)
		} else {
			p.session = session
		}
		p.status = model.PlayAbandoned
		logger.Info("Play abandoned")
	}
	return p.view(), nil
}

func (s *playService) PruneExpired(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.App.PlayTTL)

	s.mu.Lock()
	var expired []*play
	for id, p := range s.plays {
		p.mu.Lock()
		idle := p.lastActive.Before(cutoff)
		p.mu.Unlock()
		if idle {
			expired = append(expired, p)
			delete(s.plays, id)
		}
	}
	s.mu.Unlock()

	for _, p := range expired {
		if p.match != nil {
			p.match.Stop()
		}
	}
	if len(expired) > 0 {
		middleware.GetLogger(ctx).Info("Expired plays pruned", "count", len(expired))
	}
	return len(expired)
}

func (s *playService) lookup(identity model.Identity, playID string) (*play, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plays[playID]
	if !ok || p.owner != ownerOf(identity) {
		return nil, playNotFound()
	}
	return p, nil
}

func (s *playService) remove(playID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plays, playID)
}

func (s *playService) checkCardCount(mode model.StudyMode, complete int) error {
	var required int
	var label string
	switch mode {
	case model.ModeQuiz:
		required, label = s.cfg.App.MinQuizCards, "クイズ"
	case model.ModeMatch:
		required, label = s.cfg.App.MinMatchCards, "マッチング"
	case model.ModeFlashcards:
		required, label = s.cfg.App.MinSetCards, "フラッシュカード"
	default:
		return model.NewAppError("VALIDATION_ERROR", "未対応の学習モードです。", "mode", model.ErrInvalidInput)
	}
	if complete < required {
		msg := fmt.Sprintf("%sには用語と定義が揃ったカードが%d枚以上必要です。", label, required)
		return model.NewAppError("NOT_ENOUGH_CARDS", msg, "cards", model.ErrInvalidInput)
	}
	return nil
}

func isRestartAction(mode model.StudyMode, action string) bool {
	if mode == model.ModeFlashcards {
		return action == model.ActionReset
	}
	return action == model.ActionRestart
}

func unsupportedAction() error {
	return model.NewAppError("UNSUPPORTED_ACTION", "この学習モードでは使用できない操作です。", "action", model.ErrInvalidInput)
}

func (s *playService) applyQuiz(p *play, req *model.PlayActionRequest) error {
	switch req.Action {
	case model.ActionSelect:
		return quizError(p.quiz.Select(req.Value))
	case model.ActionCheck:
		correct, err := p.quiz.Check()
		if err != nil {
			return quizError(err)
		}
		snap := p.quiz.Snapshot()
		p.lastCheck = &model.QuizCheckResult{
			Correct:       correct,
			CorrectAnswer: snap.Questions[snap.CurrentIndex].CorrectAnswer,
		}
		return nil
	case model.ActionNext:
		if _, err := p.quiz.Next(); err != nil {
			return quizError(err)
		}
		p.lastCheck = nil
		return nil
	case model.ActionRestart:
		p.quiz.Restart()
		s.restart(p)
		return nil
	}
	return unsupportedAction()
}

func quizError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, study.ErrQuizFinished):
		return model.NewAppError("QUIZ_FINISHED", "クイズは終了しています。", "action", model.ErrConflict)
	case errors.Is(err, study.ErrAlreadyChecked):
		return model.NewAppError("ALREADY_CHECKED", "この問題は答え合わせ済みです。", "action", model.ErrConflict)
	case errors.Is(err, study.ErrNoAnswer):
		return model.NewAppError("NO_ANSWER", "回答を選択してください。", "value", model.ErrInvalidInput)
	case errors.Is(err, study.ErrNotChecked):
		return model.NewAppError("NOT_CHECKED", "答え合わせをしてから次へ進んでください。", "action", model.ErrInvalidInput)
	case errors.Is(err, study.ErrUnknownOption):
		return model.NewAppError("UNKNOWN_OPTION", "選択肢にない回答です。", "value", model.ErrInvalidInput)
	}
	return err
}

func (s *playService) applyMatch(p *play, req *model.PlayActionRequest) error {
	switch req.Action {
	case model.ActionClick:
		if _, err := p.match.Click(req.Value); err != nil {
			if errors.Is(err, study.ErrUnknownCard) {
				return model.NewAppError("UNKNOWN_CARD", "存在しないカードです。", "value", model.ErrInvalidInput)
			}
			return err
		}
		return nil
	case model.ActionRestart:
		p.match.Restart()
		s.restart(p)
		return nil
	}
	return unsupportedAction()
}

func (s *playService) applyFlashcards(p *play, req *model.PlayActionRequest) error {
	switch req.Action {
	case model.ActionFlip:
		p.deck.Flip()
	case model.ActionNext:
		p.deck.Next()
	case model.ActionPrevious:
		p.deck.Previous()
	case model.ActionShuffle:
		p.deck.Shuffle()
	case model.ActionReset:
		p.deck.Reset()
		if p.status == model.PlayCompleted {
			s.restart(p)
		}
	case model.ActionFinish:
		p.status = model.PlayCompleted
		p.session = s.buildSession(p, true)
	default:
		return unsupportedAction()
	}
	return nil
}

// restart は同じプレイで新しい回を始めます
func (s *playService) restart(p *play) {
	p.status = model.PlayActive
	p.startedAt = s.now()
	p.lastCheck = nil
	p.quizResult = nil
	p.matchElapsed = nil
	p.session = nil
}

// recordCompletion は完了したプレイのセッションを1回だけ記録します
func (s *playService) recordCompletion(ctx context.Context, identity model.Identity, p *play) {
	logger := middleware.GetLogger(ctx).With("play_id", p.id)

	if p.quizResult != nil || p.matchElapsed != nil {
		p.status = model.PlayCompleted
		p.session = s.buildSession(p, true)
		p.quizResult = nil
		p.matchElapsed = nil
	}
	// 記録済みのセッションには ID が振られている
	if p.status != model.PlayCompleted || p.session == nil || p.session.ID != "" {
		return
	}

	if err := s.sessions.AppendSession(ctx, identity, p.session); err != nil {
		logger.Error("Failed to record completed play", "error", err)
		p.session = nil
		return
	}
	logger.Info("Play completed", "session_id", p.session.ID, "mode", p.mode)
}

func (s *playService) buildSession(p *play, completed bool) *model.StudySession {
	now := s.now()
	spent := now.Sub(p.startedAt).Seconds()
	session := &model.StudySession{
		StudySetID: p.studySetID,
		Mode:       p.mode,
		Completed:  completed,
		StartedAt:  p.startedAt,
	}
	if completed {
		session.CompletedAt = &now
	}

	switch p.mode {
	case model.ModeQuiz:
		snap := p.quiz.Snapshot()
		correct, total := snap.Score, len(snap.Questions)
		if p.quizResult != nil {
			correct, total = p.quizResult.score, p.quizResult.total
		}
		session.CorrectAnswers = &correct
		session.TotalQuestions = &total
		if total > 0 {
			score := float64(correct) / float64(total) * 100
			session.Score = &score
		}
		session.DifficultCards = snap.Missed
	case model.ModeMatch:
		if p.matchElapsed != nil {
			spent = p.matchElapsed.Seconds()
		} else {
			spent = p.match.Elapsed().Seconds()
		}
	}
	session.TimeSpentSeconds = &spent
	return session
}

// view は p.mu を保持した状態で呼びます
func (p *play) view() *model.PlayView {
	v := &model.PlayView{
		ID:         p.id,
		StudySetID: p.studySetID,
		Mode:       p.mode,
		Status:     p.status,
		StartedAt:  p.startedAt,
		Session:    p.session,
	}
	switch {
	case p.quiz != nil:
		v.Quiz = quizView(p.quiz.Snapshot(), p.lastCheck)
	case p.match != nil:
		v.Match = matchView(p.match)
	case p.deck != nil:
		fv := p.deck.View()
		v.Flashcards = &fv
	}
	return v
}

func quizView(snap study.QuizSnapshot, lastCheck *model.QuizCheckResult) *model.QuizView {
	questions := make([]model.QuizQuestionView, 0, len(snap.Questions))
	for _, q := range snap.Questions {
		questions = append(questions, model.QuizQuestionView{Prompt: q.Prompt, Options: q.Options})
	}
	v := &model.QuizView{
		Questions:      questions,
		CurrentIndex:   snap.CurrentIndex,
		SelectedAnswer: snap.SelectedAnswer,
		IsAnswered:     snap.IsAnswered,
		Score:          snap.Score,
		ShowResults:    snap.Finished,
		Total:          len(snap.Questions),
		LastCheck:      lastCheck,
	}
	if snap.Finished {
		v.FinalScore = snap.Score
		v.Message = study.ResultMessage(snap.Score, len(snap.Questions))
	}
	return v
}

func matchView(g *study.MatchGame) *model.MatchView {
	cards := g.Cards()
	views := make([]model.MatchCardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, model.MatchCardView{
			ID:       c.ID,
			Content:  c.Content,
			Kind:     string(c.Kind),
			Matched:  c.Matched,
			Selected: c.Selected,
		})
	}
	return &model.MatchView{
		Cards:        views,
		MatchedPairs: g.MatchedPairs(),
		TotalPairs:   g.TotalPairs(),
		State:        string(g.State()),
		ElapsedMs:    g.Elapsed().Milliseconds(),
	}
}
