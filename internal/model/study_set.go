// internal/model/study_set.go
package model

import (
	"strings"
	"time"
)

// Card は用語とその定義のペアです。ID は編集をまたいで変わりません。
type Card struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// IsComplete は用語・定義の両方が空白以外で埋まっているかを返します
func (c Card) IsComplete() bool {
	return strings.TrimSpace(c.Term) != "" && strings.TrimSpace(c.Definition) != ""
}

// StudySet は単語帳（カードの集合）です
type StudySet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompleteCards は用語・定義が揃っているカードだけを返します
func (s *StudySet) CompleteCards() []Card {
	cards := make([]Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		if c.IsComplete() {
			cards = append(cards, c)
		}
	}
	return cards
}

// FindCard は ID でカードを探します
func (s *StudySet) FindCard(cardID string) (Card, bool) {
	for _, c := range s.Cards {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// CardInput はカード作成・更新時の入力DTO
type CardInput struct {
	ID         string `json:"id,omitempty"`
	Term       string `json:"term" validate:"required,notblank"`
	Definition string `json:"definition" validate:"required,notblank"`
}

// 単語帳作成リクエストDTO
type CreateStudySetRequest struct {
	Title       string      `json:"title" validate:"required,notblank,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Cards       []CardInput `json:"cards" validate:"required,min=1,dive"`
}

// 単語帳更新（全体）リクエストDTO
type UpdateStudySetRequest struct {
	Title       string      `json:"title" validate:"required,notblank,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Cards       []CardInput `json:"cards" validate:"required,min=1,dive"`
}

// ExtractedSet はドキュメント抽出結果（保存前のプレビュー）
type ExtractedSet struct {
	Title string      `json:"title"`
	Cards []CardInput `json:"cards"`
}
