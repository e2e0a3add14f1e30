// Package component — адаптер генерации текста для workflow-хостов.
//
// Компонент принимает типизированные поля хоста (Fields), выполняет один
// синхронный запрос к completion endpoint и всегда возвращает ровно одно
// сообщение. Ошибки не поднимаются к хосту: сбой сети, невалидный ответ и
// пустая генерация приходят тем же каналом, что и успешный текст — хост
// различает исходы только по содержимому.
//
// Basic usage:
//
//	cfg, _ := config.Load("config.yaml")
//	comp, _ := component.New(cfg)
//	msg := comp.Run(ctx, component.Fields{Prompt: "Once upon a time"})
//	fmt.Println(msg.Content)
package component

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/llm"
	"github.com/ilkoid/localgen/pkg/llm/textgen"
	"github.com/ilkoid/localgen/pkg/models"
	"github.com/ilkoid/localgen/pkg/prompts"
	"github.com/ilkoid/localgen/pkg/utils"
)

// Фиксированные тексты результата. Хост сравнивает их по префиксу,
// поэтому менять формулировки нельзя без миграции workflow.
const (
	// EmptyResultText возвращается при пустом тексте генерации.
	EmptyResultText = "No text generated."

	// RequestErrorPrefix предваряет описание сетевых сбоев,
	// таймаутов и не-2xx статусов.
	RequestErrorPrefix = "Request Error: "

	// DataErrorPrefix предваряет описание невалидного или
	// неожиданного ответа сервера.
	DataErrorPrefix = "Data Processing Error: "
)

// Fields — входные поля компонента в том виде, в котором их отдаёт
// workflow-хост: уже типизированные и проверенные.
//
// Нулевое значение числового поля означает "не задано" — провайдер
// использует свой дефолт. Буквальный ноль передаётся через Extra.
type Fields struct {
	// Prompt — готовый текст промпта. Если задан, побеждает PromptID.
	Prompt string

	// PromptID — имя шаблона из источников промптов.
	PromptID string

	// Variables — значения плейсхолдеров шаблона {{.name}}.
	Variables map[string]string

	// Model — алиас модели из реестра. Пустой = дефолтная модель.
	Model string

	// APIURL — прямой адрес completion endpoint. Если задан, компонент
	// собирает клиент на этот адрес, минуя реестр моделей.
	APIURL string

	// APIKey — секрет для заголовка Authorization: Bearer.
	// Пустой = заголовок не отправляется.
	APIKey string

	// Параметры генерации (ноль = дефолт провайдера).
	MaxTokens         int
	Temperature       float64
	TopP              float64
	TypicalP          float64
	TopK              int
	MinP              float64
	RepetitionPenalty float64

	// Stop — стоп-последовательности. Пустой список не отправляется.
	Stop []string

	// Extra — произвольные параметры payload (seed, guidance_scale, ...).
	// Отправляются как есть и перекрывают одноимённые поля.
	Extra map[string]any
}

// TextGeneration — компонент генерации текста.
//
// Фасад над реестром моделей и источниками промптов. Живёт столько же,
// сколько хост; каждый Run — независимый одиночный вызов без состояния
// между инвокациями.
type TextGeneration struct {
	registry     *models.Registry
	prompts      *prompts.SourceRegistry // может быть nil
	masking      config.MaskingConfig
	defaultModel string
}

// New создаёт компонент из конфигурации.
//
// Инициализирует реестр моделей и цепочку источников промптов.
// Возвращает ошибку если хоть один провайдер не создаётся.
//
// Rule 2: конфигурация через YAML.
// Rule 7: возвращает ошибку вместо panic.
func New(cfg *config.AppConfig) (*TextGeneration, error) {
	registry, err := models.NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build model registry: %w", err)
	}

	promptSources, err := prompts.CreateSourceRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt sources: %w", err)
	}

	return &TextGeneration{
		registry:     registry,
		prompts:      promptSources,
		masking:      cfg.Masking.GetDefaults(),
		defaultModel: cfg.Models.Default,
	}, nil
}

// NewWithRegistry создаёт компонент из уже собранных зависимостей.
//
// Для хостов, которые держат собственный реестр моделей (агенты, TUI).
// promptSources может быть nil — тогда доступны только literal промпты.
func NewWithRegistry(registry *models.Registry, promptSources *prompts.SourceRegistry, masking config.MaskingConfig, defaultModel string) *TextGeneration {
	return &TextGeneration{
		registry:     registry,
		prompts:      promptSources,
		masking:      masking.GetDefaults(),
		defaultModel: defaultModel,
	}
}

// Run выполняет одну генерацию и ВСЕГДА возвращает сообщение.
//
// Компонент никогда не возвращает ошибку хосту. Возможные исходы
// (различимы только по содержимому):
//   - текст генерации;
//   - EmptyResultText — сервер ответил корректно, но текст пуст;
//   - "Request Error: <причина>" — сеть, таймаут, не-2xx статус;
//   - "Data Processing Error: <причина>" — невалидный JSON, нет choices,
//     сбой загрузки или рендера шаблона.
//
// Rule 11: принимает context.Context; хост без отмены передаёт
// context.Background() и ждёт завершения или таймаута транспорта.
func (t *TextGeneration) Run(ctx context.Context, fields Fields) llm.Message {
	startTime := time.Now()

	// 1. Разрешаем текст промпта (literal или шаблон из источников)
	prompt, promptCfg, err := t.resolvePrompt(fields)
	if err != nil {
		utils.Error("prompt resolution failed",
			"prompt_id", fields.PromptID,
			"error", err)
		return llm.NewAssistantMessage(DataErrorPrefix + err.Error())
	}

	// 2. Выбираем провайдера (прямой URL или реестр моделей)
	provider, err := t.resolveProvider(fields, promptCfg)
	if err != nil {
		utils.Error("provider resolution failed",
			"model", fields.Model,
			"error", err)
		return llm.NewAssistantMessage(RequestErrorPrefix + err.Error())
	}

	// 3. Собираем runtime-опции: конфиг шаблона, поверх — поля хоста
	opts := buildOptions(fields, promptCfg)

	// 4. Один синхронный вызов генерации
	text, err := provider.Complete(ctx, prompt, opts...)
	if err != nil {
		utils.Error("completion failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.NewAssistantMessage(messageFromError(err))
	}

	// 5. Пустой текст — предупреждение, не ошибка
	if text == "" {
		utils.Warn("completion returned empty text",
			"prompt_length", len(prompt),
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.NewAssistantMessage(EmptyResultText)
	}

	utils.Info("component run completed",
		"content_length", len(text),
		"duration_ms", time.Since(startTime).Milliseconds())
	return llm.NewAssistantMessage(text)
}

// resolvePrompt определяет текст промпта.
//
// Приоритет:
//  1. Fields.Prompt — готовый текст от хоста
//  2. Fields.PromptID — шаблон из источников с подстановкой Variables
//
// Для literal промпта конфиг шаблона отсутствует (nil).
func (t *TextGeneration) resolvePrompt(fields Fields) (string, *prompts.PromptConfig, error) {
	if fields.Prompt != "" || fields.PromptID == "" {
		return fields.Prompt, nil, nil
	}

	if t.prompts == nil || !t.prompts.HasSources() {
		return "", nil, fmt.Errorf("prompt '%s' requested but no prompt sources configured", fields.PromptID)
	}

	file, err := t.prompts.Load(fields.PromptID)
	if err != nil {
		return "", nil, fmt.Errorf("load prompt '%s': %w", fields.PromptID, err)
	}

	rendered, err := file.Render(fields.Variables)
	if err != nil {
		return "", nil, fmt.Errorf("render prompt '%s': %w", fields.PromptID, err)
	}

	return rendered, &file.Config, nil
}

// resolveProvider выбирает провайдера генерации.
//
// Приоритет:
//  1. Fields.APIURL — клиент собирается прямо на этот адрес
//  2. Реестр моделей: Fields.Model, затем алиас из конфига шаблона,
//     затем дефолтная модель
func (t *TextGeneration) resolveProvider(fields Fields, promptCfg *prompts.PromptConfig) (llm.Provider, error) {
	if fields.APIURL != "" {
		modelDef := config.ModelDef{
			Provider: "textgen",
			BaseURL:  fields.APIURL,
			APIKey:   fields.APIKey,
		}
		return textgen.NewClient(modelDef, t.masking), nil
	}

	if t.registry == nil {
		return nil, fmt.Errorf("no api_url given and no model registry configured")
	}

	requested := fields.Model
	if requested == "" && promptCfg != nil {
		requested = promptCfg.Model
	}

	provider, _, actualModel, err := t.registry.GetWithFallback(requested, t.defaultModel)
	if err != nil {
		return nil, err
	}

	utils.Debug("model resolved",
		"requested", requested,
		"actual", actualModel)
	return provider, nil
}

// buildOptions собирает runtime-опции генерации из полей хоста и конфига
// шаблона.
//
// Приоритет (младший → старший):
//  1. Дефолты провайдера
//  2. Конфиг шаблона (promptCfg)
//  3. Поля хоста (fields)
//
// Нулевое значение поля = "не задано", опция не применяется.
func buildOptions(fields Fields, promptCfg *prompts.PromptConfig) []llm.GenerateOption {
	var opts []llm.GenerateOption

	if promptCfg != nil {
		if promptCfg.MaxTokens > 0 {
			opts = append(opts, llm.WithMaxTokens(promptCfg.MaxTokens))
		}
		if promptCfg.Temperature > 0 {
			opts = append(opts, llm.WithTemperature(promptCfg.Temperature))
		}
		if len(promptCfg.Stop) > 0 {
			opts = append(opts, llm.WithStop(promptCfg.Stop...))
		}
	}

	if fields.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(fields.MaxTokens))
	}
	if fields.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(fields.Temperature))
	}
	if fields.TopP > 0 {
		opts = append(opts, llm.WithTopP(fields.TopP))
	}
	if fields.TypicalP > 0 {
		opts = append(opts, llm.WithTypicalP(fields.TypicalP))
	}
	if fields.TopK > 0 {
		opts = append(opts, llm.WithTopK(fields.TopK))
	}
	if fields.MinP > 0 {
		opts = append(opts, llm.WithMinP(fields.MinP))
	}
	if fields.RepetitionPenalty > 0 {
		opts = append(opts, llm.WithRepetitionPenalty(fields.RepetitionPenalty))
	}
	if len(fields.Stop) > 0 {
		opts = append(opts, llm.WithStop(fields.Stop...))
	}
	for name, value := range fields.Extra {
		opts = append(opts, llm.WithParam(name, value))
	}

	return opts
}

// messageFromError переводит ошибку провайдера в текст сообщения для хоста.
//
// Типизированные ошибки дают точный префикс; всё остальное трактуется
// как сбой запроса.
func messageFromError(err error) string {
	var dataErr *llm.DataError
	if errors.As(err, &dataErr) {
		return DataErrorPrefix + dataErr.Cause.Error()
	}

	var reqErr *llm.RequestError
	if errors.As(err, &reqErr) {
		return RequestErrorPrefix + reqErr.Cause.Error()
	}

	return RequestErrorPrefix + err.Error()
}
