// Package openai реализует адаптер llm.Provider для OpenAI-совместимых
// chat API (OpenAI, Zai, DeepSeek).
//
// В отличие от textgen, работает через chat completions: prompt
// оборачивается в одно user-сообщение. Соблюдает правило 4 манифеста:
// наружу отдаёт только интерфейс llm.Provider.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/llm"
	"github.com/ilkoid/localgen/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
type Client struct {
	api      *openai.Client
	model    string
	defaults llm.GenerateOptions
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Принимает ModelDef напрямую для упрощения создания клиентов через factory.
// Использует APIKey из конфигурации для аутентификации.
//
// Правило 2: Все настройки из конфигурации, никакого хардкода.
func NewClient(modelDef config.ModelDef) *Client {
	// Поддержка custom BaseURL для non-OpenAI провайдеров (Zai, DeepSeek и т.д.)
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	client := openai.NewClientWithConfig(cfg)

	defaults := llm.DefaultGenerateOptions()
	defaults.Model = modelDef.ModelName
	if modelDef.MaxTokens > 0 {
		defaults.MaxTokens = modelDef.MaxTokens
	}
	if modelDef.Temperature > 0 {
		defaults.Temperature = modelDef.Temperature
	}
	if modelDef.TopP > 0 {
		defaults.TopP = modelDef.TopP
	}
	if len(modelDef.Stop) > 0 {
		defaults.Stop = append([]string(nil), modelDef.Stop...)
	}

	return &Client{
		api:      client,
		model:    modelDef.ModelName,
		defaults: defaults,
	}
}

// Complete отправляет prompt как одно user-сообщение и возвращает ответ модели.
//
// Chat API не знает sampling-параметров локальных серверов (typical_p,
// top_k, min_p, repetition_penalty) — они молча игнорируются. Передаются
// model, max_tokens, temperature, top_p и stop.
//
// Правило 7: Все ошибки возвращаются, никаких panic.
func (c *Client) Complete(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	startTime := time.Now()

	genOpts := c.defaults
	genOpts.Stop = append([]string(nil), c.defaults.Stop...)
	for _, opt := range opts {
		opt(&genOpts)
	}

	model := c.model
	if genOpts.Model != "" {
		model = genOpts.Model
	}

	utils.Debug("chat completion request",
		"model", model,
		"prompt_length", len(prompt),
		"max_tokens", genOpts.MaxTokens)

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   genOpts.MaxTokens,
		Temperature: float32(genOpts.Temperature),
		TopP:        float32(genOpts.TopP),
		Stop:        genOpts.Stop,
	}

	// Правило 7: возвращаем ошибку вместо panic
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Error("chat completion request failed",
			"error", err,
			"model", model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", &llm.RequestError{Cause: fmt.Errorf("openai api error: %w", err)}
	}

	// Проверяем что есть хотя бы один выбор
	if len(resp.Choices) == 0 {
		return "", &llm.DataError{Cause: fmt.Errorf("no choices in response")}
	}

	text := resp.Choices[0].Message.Content

	utils.Info("chat completion received",
		"model", model,
		"content_length", len(text),
		"duration_ms", time.Since(startTime).Milliseconds())

	return text, nil
}
