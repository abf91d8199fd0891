package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
)

// Document はアップロードされたファイル
type Document struct {
	FileName string
	Data     []byte
}

// Extractor はドキュメントから用語と定義のペアを取り出します
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*model.ExtractedSet, error)
}

// NewExtractor は extraction.provider に応じた実装を返します
func NewExtractor(cfg *config.Config) (Extractor, error) {
	switch cfg.Extraction.Provider {
	case "", "mock":
		return MockExtractor{}, nil
	case "openai":
		ext, err := NewOpenAIExtractor(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return ext, nil
	}
	return nil, fmt.Errorf("unknown extraction provider: %q", cfg.Extraction.Provider)
}

// titleFromFileName は拡張子を除いたファイル名を返します
func titleFromFileName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MockExtractor はファイルの中身を見ずに固定のカードを返します。AI を使わない開発用です。
type MockExtractor struct{}

func (MockExtractor) Extract(_ context.Context, doc Document) (*model.ExtractedSet, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrUnsupportedDocument)
	}
	return &model.ExtractedSet{
		Title: titleFromFileName(doc.FileName),
		Cards: []model.CardInput{
			{Term: "Artificial Intelligence", Definition: "The simulation of human intelligence processes by machines, especially computer systems."},
			{Term: "Machine Learning", Definition: "An application of AI that provides systems the ability to automatically learn and improve from experience without being explicitly programmed."},
			{Term: "Neural Network", Definition: "A computer system modeled on the human brain and nervous system."},
			{Term: "Deep Learning", Definition: "A subset of machine learning that uses neural networks with many layers."},
			{Term: "Natural Language Processing", Definition: "A field of AI that gives computers the ability to understand text and spoken words."},
			{Term: "Computer Vision", Definition: "A field of AI that enables computers to see, identify and process images in the same way that human vision does."},
			{Term: "Reinforcement Learning", Definition: "A type of machine learning based on rewarding desired behaviors and punishing undesired ones."},
			{Term: "Supervised Learning", Definition: "The machine learning task of learning a function that maps an input to an output based on example input-output pairs."},
		},
	}, nil
}

// ExtractionService はアップロードからカード案を作ります。単語帳は作成・変更しません。
type ExtractionService interface {
	ExtractStudySet(ctx context.Context, doc Document) (*model.ExtractedSet, error)
}

type extractionService struct {
	extractor Extractor
}

func NewExtractionService(extractor Extractor) ExtractionService {
	return &extractionService{extractor: extractor}
}

func (s *extractionService) ExtractStudySet(ctx context.Context, doc Document) (*model.ExtractedSet, error) {
	logger := middleware.GetLogger(ctx).With("file_name", doc.FileName, "size", len(doc.Data))

	set, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		if errors.Is(err, ErrUnsupportedDocument) {
			logger.Info("Unsupported document uploaded", "error", err)
			return nil, model.NewAppError("UNSUPPORTED_DOCUMENT", "対応していないファイル形式です。PDFまたはテキストファイルをアップロードしてください。", "file", model.ErrInvalidInput)
		}
		logger.Error("Document extraction failed", "error", err)
		return nil, model.NewAppError("EXTRACTION_FAILED", "ドキュメントからカードを作成できませんでした。時間をおいて再度お試しください。", "", model.ErrUpstream)
	}

	cards := make([]model.CardInput, 0, len(set.Cards))
	for _, c := range set.Cards {
		c.Term, c.Definition = strings.TrimSpace(c.Term), strings.TrimSpace(c.Definition)
		if c.Term != "" && c.Definition != "" {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		logger.Warn("Extraction returned no usable cards")
		return nil, model.NewAppError("EXTRACTION_FAILED", "ドキュメントから用語を見つけられませんでした。", "", model.ErrUpstream)
	}
	set.Cards = cards
	if strings.TrimSpace(set.Title) == "" {
		set.Title = titleFromFileName(doc.FileName)
	}

	logger.Info("Document extracted", "cards", len(cards))
	return set, nil
}
