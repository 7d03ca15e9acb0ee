// Package gemini はGoogle Gemini APIを使用したメモ要約の生成を提供します。
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"aurora_backend/internal/feature/memo/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// EnvKeyEnabled は要約生成を有効にする環境変数名です。
	EnvKeyEnabled = "GEMINI_ENABLED"
)

// GeminiDrafter はGoogle Gemini APIを使用してメモの要約を生成します。
type GeminiDrafter struct {
	client *genai.Client
	model  string
}

// GeminiDrafterがDrafterを実装していることをコンパイル時に検証します。
var _ usecase.Drafter = (*GeminiDrafter)(nil)

// Enabled は GEMINI_ENABLED=true の場合に true を返します。
func Enabled() bool {
	return os.Getenv(EnvKeyEnabled) == "true"
}

// NewGeminiDrafter はGeminiDrafterの新しいインスタンスを生成します。
// 認証情報は genai SDK の環境変数（GOOGLE_API_KEY、または GOOGLE_GENAI_USE_VERTEXAI と
// GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION）から読み込まれます。
func NewGeminiDrafter(ctx context.Context, model string) (*GeminiDrafter, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDrafter{client: client, model: model}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiDrafter) Model() string {
	return g.model
}

// Draft はプロンプトから要約を生成します。
func (g *GeminiDrafter) Draft(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
