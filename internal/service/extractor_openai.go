package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"

	"github.com/sashabaranov/go-openai"
)

const extractionSystemPrompt = `You create study flashcards. Extract the key terms and their definitions from the user's document.
Respond with a JSON object of the form {"title": string, "cards": [{"term": string, "definition": string}]}.
Use the document's main topic as the title. Keep definitions to one or two sentences.`

// chatCompleter は openai.Client のうち抽出で使うメソッド
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIExtractor はドキュメントのテキストをチャットモデルに渡してカードを作ります
type OpenAIExtractor struct {
	client chatCompleter
	cfg    config.OpenAIConfig
}

func NewOpenAIExtractor(cfg config.OpenAIConfig) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required for the openai extraction provider")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

type extractionResponse struct {
	Title string `json:"title"`
	Cards []struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
	} `json:"cards"`
}

func (e *OpenAIExtractor) Extract(ctx context.Context, doc Document) (*model.ExtractedSet, error) {
	logger := middleware.GetLogger(ctx)

	text, err := DocumentText(doc.Data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("no text in %s: %w", doc.FileName, ErrUnsupportedDocument)
	}
	text = truncateRunes(text, e.cfg.MaxChars)

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("File name: %s\n\n%s", doc.FileName, text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai chat completion: empty response")
	}
	logger.Debug("OpenAI extraction finished", "model", resp.Model, "total_tokens", resp.Usage.TotalTokens)

	var parsed extractionResponse
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("openai response is not valid JSON: %w", err)
	}

	set := &model.ExtractedSet{Title: strings.TrimSpace(parsed.Title)}
	for _, c := range parsed.Cards {
		set.Cards = append(set.Cards, model.CardInput{Term: c.Term, Definition: c.Definition})
	}
	if set.Title == "" {
		set.Title = titleFromFileName(doc.FileName)
	}
	return set, nil
}
