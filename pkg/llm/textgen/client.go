// Package textgen реализует адаптер llm.Provider для локального
// text-generation сервера (text-generation-webui, koboldcpp и совместимые).
//
// Работает через legacy completion endpoint (/v1/completions): один prompt
// строкой, без chat-шаблонов. Соблюдает правило 4 манифеста: наружу отдаёт
// только интерфейс llm.Provider.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/llm"
	"github.com/ilkoid/localgen/pkg/utils"
	"golang.org/x/time/rate"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах (Rule 9).
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client реализует интерфейс llm.Provider для локального completion API.
type Client struct {
	baseURL    string
	apiKey     string
	defaults   llm.GenerateOptions
	httpClient HTTPClient // Интерфейс вместо конкретного типа для testability

	limiter *rate.Limiter // nil = без ограничения частоты

	maskHeaders      []string // Заголовки, скрываемые в debug-логах
	maskResponseKeys []string // Ключи ответа, скрываемые в debug-логах
}

// completionResponse — ожидаемая форма ответа completion endpoint.
type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// NewClient создает клиент локального completion API из конфигурации модели.
//
// Незаполненные поля ModelDef добиваются дефолтами через GetDefaults():
// base_url http://127.0.0.1:5000/v1/completions, timeout 60s. Rate limiter
// создаётся только при rate_limit > 0.
//
// Правило 2: Все настройки из конфигурации, никакого хардкода.
func NewClient(modelDef config.ModelDef, masking config.MaskingConfig) *Client {
	modelDef = modelDef.GetDefaults()
	masking = masking.GetDefaults()

	var limiter *rate.Limiter
	if modelDef.RateLimit > 0 {
		// rate_limit в запросах/минуту → rate.Limit в запросах/секунду
		ratePerSec := float64(modelDef.RateLimit) / 60.0
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), modelDef.BurstLimit)
	}

	return &Client{
		baseURL:  modelDef.BaseURL,
		apiKey:   modelDef.APIKey,
		defaults: optionsFromModelDef(modelDef),
		httpClient: &http.Client{
			Timeout: modelDef.Timeout,
		},
		limiter:          limiter,
		maskHeaders:      masking.Headers,
		maskResponseKeys: masking.ResponseKeys,
	}
}

// optionsFromModelDef накладывает параметры генерации из конфига модели
// поверх дефолтов пакета llm. Нулевое значение поля = "не задано".
func optionsFromModelDef(def config.ModelDef) llm.GenerateOptions {
	opts := llm.DefaultGenerateOptions()

	opts.Model = def.ModelName
	if def.MaxTokens > 0 {
		opts.MaxTokens = def.MaxTokens
	}
	if def.Temperature > 0 {
		opts.Temperature = def.Temperature
	}
	if def.TopP > 0 {
		opts.TopP = def.TopP
	}
	if def.TypicalP > 0 {
		opts.TypicalP = def.TypicalP
	}
	if def.TopK > 0 {
		opts.TopK = def.TopK
	}
	if def.MinP > 0 {
		opts.MinP = def.MinP
	}
	if def.RepetitionPenalty > 0 {
		opts.RepetitionPenalty = def.RepetitionPenalty
	}
	if len(def.Stop) > 0 {
		opts.Stop = append([]string(nil), def.Stop...)
	}
	if len(def.Extra) > 0 {
		opts.Extra = make(map[string]any, len(def.Extra))
		for k, v := range def.Extra {
			opts.Extra[k] = v
		}
	}

	return opts
}

// Complete отправляет prompt на completion endpoint и возвращает текст
// первого choice.
//
// Алгоритм:
//  1. Накладывает runtime-опции поверх дефолтов клиента
//  2. Ждёт разрешения rate limiter (если настроен)
//  3. Собирает payload и заголовки, отправляет POST
//  4. Разбирает JSON ответа и достаёт choices[0].text
//
// Ошибки типизированы: *llm.RequestError (сеть, таймаут, не-200 статус)
// и *llm.DataError (невалидный JSON, нет choices). Пустой текст
// генерации — не ошибка: решение о предупреждении принимает вызывающий.
//
// Правило 7: Все ошибки возвращаются, никаких panic.
func (c *Client) Complete(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	startTime := time.Now()

	// 1. Копируем дефолты, чтобы опции вызова их не изменили
	genOpts := c.defaults
	genOpts.Stop = append([]string(nil), c.defaults.Stop...)
	if len(c.defaults.Extra) > 0 {
		genOpts.Extra = make(map[string]any, len(c.defaults.Extra))
		for k, v := range c.defaults.Extra {
			genOpts.Extra[k] = v
		}
	}
	for _, opt := range opts {
		opt(&genOpts)
	}

	// 2. Ждем разрешения от лимитера (блокирует горутину, если превысили лимит)
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &llm.RequestError{Cause: fmt.Errorf("rate limiter wait: %w", err)}
		}
	}

	// 3. Собираем и отправляем запрос
	payload := BuildPayload(prompt, genOpts)
	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return "", &llm.DataError{Cause: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", &llm.RequestError{Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header = BuildHeaders(c.apiKey)

	utils.Debug("completion request",
		"url", c.baseURL,
		"headers", utils.MaskHeaders(req.Header, c.maskHeaders),
		"prompt_length", len(prompt),
		"max_tokens", genOpts.MaxTokens)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.Error("completion request failed",
			"error", err,
			"url", c.baseURL,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", &llm.RequestError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.RequestError{Cause: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		utils.Error("completion request failed",
			"status", resp.StatusCode,
			"url", c.baseURL,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", &llm.RequestError{
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	c.logResponseBody(body)

	// 4. Разбираем ответ
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &llm.DataError{Cause: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(parsed.Choices) == 0 {
		return "", &llm.DataError{Cause: fmt.Errorf("no choices in response")}
	}

	text := parsed.Choices[0].Text

	utils.Info("completion received",
		"content_length", len(text),
		"duration_ms", time.Since(startTime).Milliseconds())

	return text, nil
}

// logResponseBody пишет тело ответа в debug-лог, маскируя настроенные ключи.
//
// Пустой maskResponseKeys — штатный режим: тело логируется как есть.
// Ошибки разбора здесь не фатальны, логирование best effort.
func (c *Client) logResponseBody(body []byte) {
	if len(c.maskResponseKeys) == 0 {
		utils.Debug("completion response body", "body", string(body))
		return
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		utils.Debug("completion response body", "body", string(body))
		return
	}

	masked, err := json.Marshal(utils.MaskKeys(data, c.maskResponseKeys))
	if err != nil {
		return
	}
	utils.Debug("completion response body", "body", string(masked))
}
