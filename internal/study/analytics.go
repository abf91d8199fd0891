package study

import (
	"slices"
	"time"

	"go_5_study_keep/internal/model"
)

const (
	recentSessionsLimit = 5
	difficultCardsLimit = 10
)

// MasteryLevel は1つの単語帳のセッション履歴から習熟度を判定します。
// 完了済みかつスコアのあるセッションだけを使い、閾値はすべて「より大きい」で比較します。
func MasteryLevel(sessions []model.StudySession) model.MasteryLevel {
	var count int
	var total float64
	for _, s := range sessions {
		if s.Completed && s.Score != nil {
			count++
			total += *s.Score
		}
	}
	if count == 0 {
		return model.MasteryBeginner
	}
	avg := total / float64(count)

	switch {
	case count < 3:
		if avg > 80 {
			return model.MasteryIntermediate
		}
	case count < 8:
		if avg > 90 {
			return model.MasteryAdvanced
		}
		if avg > 75 {
			return model.MasteryIntermediate
		}
	default:
		if avg > 95 {
			return model.MasteryMaster
		}
		if avg > 85 {
			return model.MasteryAdvanced
		}
		if avg > 70 {
			return model.MasteryIntermediate
		}
	}
	return model.MasteryBeginner
}

// ComputeAnalytics はセッションログと単語帳一覧から集計結果を毎回作り直します。
func ComputeAnalytics(sets []model.StudySet, sessions []model.StudySession) model.StudyAnalytics {
	analytics := model.StudyAnalytics{
		TotalSessions:    len(sessions),
		StudySetProgress: make(map[string]*model.StudySetProgress),
		RecentSessions:   []model.StudySession{},
		DifficultCards:   []model.DifficultCard{},
	}
	if len(sessions) == 0 {
		return analytics
	}

	titles := make(map[string]string, len(sets))
	for _, set := range sets {
		if _, ok := titles[set.ID]; !ok {
			titles[set.ID] = set.Title
		}
	}

	var totalScore float64
	var scored int
	bySet := make(map[string][]model.StudySession)

	for _, s := range sessions {
		switch s.Mode {
		case model.ModeFlashcards:
			analytics.SessionsByMode.Flashcards++
		case model.ModeQuiz:
			analytics.SessionsByMode.Quiz++
		case model.ModeMatch:
			analytics.SessionsByMode.Match++
		}

		if s.TimeSpentSeconds != nil {
			analytics.TotalTimeSpentMinutes += *s.TimeSpentSeconds / 60
		}

		hasScore := countsTowardScore(s)
		if hasScore {
			totalScore += *s.Score
			scored++
		}

		progress, ok := analytics.StudySetProgress[s.StudySetID]
		if !ok {
			title, found := titles[s.StudySetID]
			if !found {
				title = model.UnknownSetTitle
			}
			progress = &model.StudySetProgress{SetTitle: title, MasteryLevel: model.MasteryBeginner}
			analytics.StudySetProgress[s.StudySetID] = progress
		}
		progress.SessionsCount++

		studied := s.StudiedAt()
		if progress.LastStudied == nil || studied.After(*progress.LastStudied) {
			t := studied
			progress.LastStudied = &t
		}

		// スコアのないセッションも件数には入るため、混在すると平均は低めに出る
		if hasScore {
			n := float64(progress.SessionsCount)
			progress.AverageScore = (progress.AverageScore*(n-1) + *s.Score) / n
		}

		bySet[s.StudySetID] = append(bySet[s.StudySetID], s)
	}

	if scored > 0 {
		analytics.AverageScore = totalScore / float64(scored)
	}

	for setID, progress := range analytics.StudySetProgress {
		progress.MasteryLevel = MasteryLevel(bySet[setID])
	}

	analytics.RecentSessions = recentSessions(sessions, recentSessionsLimit)
	analytics.DifficultCards = rankDifficultCards(sets, sessions, difficultCardsLimit)
	return analytics
}

// countsTowardScore は平均スコアの計算対象か（完了済みでスコアあり）を返します。
func countsTowardScore(s model.StudySession) bool {
	return s.Completed && s.Score != nil
}

func recentSessions(sessions []model.StudySession, limit int) []model.StudySession {
	sorted := slices.Clone(sessions)
	slices.SortStableFunc(sorted, func(a, b model.StudySession) int {
		return compareTimeDesc(a.StudiedAt(), b.StudiedAt())
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func compareTimeDesc(a, b time.Time) int {
	switch {
	case a.After(b):
		return -1
	case a.Before(b):
		return 1
	}
	return 0
}

// rankDifficultCards は間違えた回数の多い順にカードを並べます。
// 同数のときは最初に出現した順で、どの単語帳にも見つからないIDは除外します。
func rankDifficultCards(sets []model.StudySet, sessions []model.StudySession, limit int) []model.DifficultCard {
	counts := make(map[string]int)
	var order []string
	for _, s := range sessions {
		for _, cardID := range s.DifficultCards {
			if _, ok := counts[cardID]; !ok {
				order = append(order, cardID)
			}
			counts[cardID]++
		}
	}
	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	ranked := make([]model.DifficultCard, 0, min(len(order), limit))
	for _, cardID := range order {
		if len(ranked) == limit {
			break
		}
		card, ok := findCard(sets, cardID)
		if !ok {
			continue
		}
		ranked = append(ranked, model.DifficultCard{
			CardID:         cardID,
			Term:           card.Term,
			Definition:     card.Definition,
			IncorrectCount: counts[cardID],
		})
	}
	return ranked
}

func findCard(sets []model.StudySet, cardID string) (model.Card, bool) {
	for i := range sets {
		if card, ok := sets[i].FindCard(cardID); ok {
			return card, true
		}
	}
	return model.Card{}, false
}
