// PingEndpointTool — инструмент проверки доступности completion endpoint.

package std

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/llm"
	"github.com/ilkoid/localgen/pkg/llm/textgen"
	"github.com/ilkoid/localgen/pkg/models"
	"github.com/ilkoid/localgen/pkg/tools"
)

// PingEndpointTool проверяет completion endpoint крошечным запросом
// генерации (max_tokens=1) и классифицирует результат.
//
// В отличие от GET /models, реальный POST на /v1/completions ловит и
// случаи "сервер поднят, но это не completion API": такие ответы
// приходят как DATA_ERROR.
type PingEndpointTool struct {
	modelRegistry *models.Registry
	defaultModel  string
}

// NewPingEndpointTool создает инструмент проверки endpoint'а.
//
// Параметры:
//   - registry: реестр моделей (может быть nil, если пинговать только по url)
//   - defaultModel: алиас модели по умолчанию
func NewPingEndpointTool(registry *models.Registry, defaultModel string) *PingEndpointTool {
	return &PingEndpointTool{
		modelRegistry: registry,
		defaultModel:  defaultModel,
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *PingEndpointTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "ping_endpoint",
		Description: "Проверяет доступность completion endpoint'а крошечным запросом генерации. Возвращает JSON со статусом, задержкой и описанием проблемы.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Алиас модели из реестра. Если не указан, используется модель по умолчанию.",
				},
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Прямой URL completion endpoint'а. Задан — реестр не используется.",
				},
				"api_key": map[string]interface{}{
					"type":        "string",
					"description": "API ключ для прямого endpoint'а. Пустой — без Authorization.",
				},
			},
			"required": []string{},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *PingEndpointTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	// Парсим аргументы
	var args struct {
		Model  string `json:"model"`
		URL    string `json:"url"`
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		// Пустой или битый JSON — пингуем модель по умолчанию
		args.Model, args.URL, args.APIKey = "", "", ""
	}

	// Прямой endpoint: реестр не нужен
	if args.URL != "" {
		modelDef := config.ModelDef{
			Provider: "textgen",
			BaseURL:  args.URL,
			APIKey:   args.APIKey,
		}
		provider := textgen.NewClient(modelDef, config.MaskingConfig{})
		return t.marshalResult(t.pingEndpoint(ctx, "(direct)", provider, modelDef.GetDefaults()))
	}

	if t.modelRegistry == nil {
		return t.marshalResult(buildErrorResult("реестр моделей не настроен, укажите url", "CONFIG_ERROR"))
	}

	// Модель из реестра с fallback на дефолтную
	provider, modelDef, actualName, err := t.modelRegistry.GetWithFallback(args.Model, t.defaultModel)
	if err != nil {
		return t.marshalResult(buildErrorResult(
			fmt.Sprintf("модель '%s' не найдена в реестре: %v", args.Model, err), "MODEL_NOT_FOUND"))
	}

	return t.marshalResult(t.pingEndpoint(ctx, actualName, provider, modelDef.GetDefaults()))
}

// pingEndpoint делает тестовую генерацию и раскладывает результат по полочкам.
func (t *PingEndpointTool) pingEndpoint(ctx context.Context, modelAlias string, provider llm.Provider, modelDef config.ModelDef) map[string]interface{} {
	startTime := time.Now()
	text, err := provider.Complete(ctx, "ping", llm.WithMaxTokens(1))
	latency := time.Since(startTime)

	result := map[string]interface{}{
		"provider":   modelDef.Provider,
		"model":      modelAlias,
		"base_url":   modelDef.BaseURL,
		"latency_ms": latency.Milliseconds(),
	}

	if err == nil {
		result["available"] = true
		result["status"] = "OK"
		result["status_code"] = http.StatusOK
		result["message"] = fmt.Sprintf("Endpoint отвечает. Модель '%s' вернула %d символов за %dms.",
			modelAlias, len(text), latency.Milliseconds())
		return result
	}

	result["available"] = false

	var reqErr *llm.RequestError
	var dataErr *llm.DataError
	switch {
	case errors.As(err, &dataErr):
		result["error"] = dataErr.Cause.Error()
		result["error_type"] = "DATA_ERROR"
		result["message"] = fmt.Sprintf("Endpoint %s доступен, но ответ не похож на completion API. Проверьте путь /v1/completions.", modelDef.BaseURL)

	case errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized:
		result["status_code"] = reqErr.StatusCode
		result["error"] = "недействительный API ключ"
		result["error_type"] = "AUTH_ERROR"
		result["message"] = fmt.Sprintf("Endpoint %s отверг API ключ. Проверьте api_key модели '%s'.", modelDef.BaseURL, modelAlias)

	case errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusTooManyRequests:
		result["status_code"] = reqErr.StatusCode
		result["error"] = "превышен лимит запросов"
		result["error_type"] = "RATE_LIMIT_ERROR"
		result["message"] = "Превышен лимит запросов к endpoint'у. Попробуйте позже."

	case errors.As(err, &reqErr) && reqErr.StatusCode > 0:
		result["status_code"] = reqErr.StatusCode
		result["error"] = fmt.Sprintf("HTTP %d", reqErr.StatusCode)
		result["error_type"] = "HTTP_ERROR"
		result["message"] = fmt.Sprintf("Endpoint %s вернул статус %d. Проверьте конфигурацию сервера.", modelDef.BaseURL, reqErr.StatusCode)

	default:
		result["error"] = err.Error()
		result["error_type"] = "CONNECTION_ERROR"
		result["message"] = fmt.Sprintf("Не удалось подключиться к %s. Сервер генерации запущен?", modelDef.BaseURL)
	}

	return result
}

// buildErrorResult создает результат ошибки в формате map.
func buildErrorResult(message, errType string) map[string]interface{} {
	return map[string]interface{}{
		"available":  false,
		"error":      message,
		"error_type": errType,
		"message":    message,
	}
}

// marshalResult маршалит результат в JSON строку.
func (t *PingEndpointTool) marshalResult(result map[string]interface{}) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
