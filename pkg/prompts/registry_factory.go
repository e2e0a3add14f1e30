package prompts

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite драйвер для database источника

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/prompts/sources"
	"github.com/ilkoid/localgen/pkg/s3storage"
)

// CreateSourceRegistry создаёт реестр источников промптов из конфигурации.
//
// OCP Principle: Добавление новых источников через YAML конфигурацию
// без изменения вызывающего кода.
//
// Fallback Chain (в порядке приоритета):
// 1. File source (cfg.Prompts.Dir)
// 2. Database source (cfg.Prompts.DatabasePath, SQLite)
// 3. S3 source (cfg.S3 + cfg.Prompts.S3Prefix)
// 4. API source (cfg.Prompts.APIEndpoint)
// 5. Default source (Go defaults) — всегда добавляется как резерв
//
// YAML-first философия: файлы приоритетны, Go defaults — резерв.
func CreateSourceRegistry(cfg *config.AppConfig) (*SourceRegistry, error) {
	registry := NewSourceRegistry()

	// 1. Файловый источник
	if cfg.Prompts.Dir != "" {
		registry.AddSource(adapt(sources.NewFileSource(cfg.Prompts.Dir)))
	}

	// 2. SQLite источник
	if cfg.Prompts.DatabasePath != "" {
		db, err := sql.Open("sqlite3", cfg.Prompts.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open prompts database: %w", err)
		}
		registry.AddSource(adapt(sources.NewDatabaseSource(db, "prompts")))
	}

	// 3. S3 источник
	if cfg.S3.Enabled() && cfg.Prompts.S3Prefix != "" {
		s3client, err := s3storage.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client for prompts: %w", err)
		}
		registry.AddSource(adapt(sources.NewS3Source(s3client, cfg.Prompts.S3Prefix)))
	}

	// 4. API источник
	if cfg.Prompts.APIEndpoint != "" {
		registry.AddSource(adapt(sources.NewAPISource(cfg.Prompts.APIEndpoint, cfg.Prompts.APIToken)))
	}

	// 5. Встроенные дефолты — всегда ПОСЛЕ пользовательских источников
	defaultSrc := sources.NewDefaultSource()
	defaultSrc.PopulateDefaults()
	registry.AddSource(adapt(defaultSrc))

	return registry, nil
}

// LoadPrompt — удобная обёртка: создаёт реестр и загружает один промпт.
//
// Для многократных загрузок создавайте реестр один раз через
// CreateSourceRegistry.
func LoadPrompt(cfg *config.AppConfig, promptID string) (*PromptFile, error) {
	registry, err := CreateSourceRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create source registry: %w", err)
	}

	file, err := registry.Load(promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt '%s': %w", promptID, err)
	}

	return file, nil
}

// === Adapters: sources.PromptData → prompts.PromptFile ===

// rawSource — общий вид источников из пакета sources.
type rawSource interface {
	Load(promptID string) (*sources.PromptData, error)
}

// rawListable — источник из пакета sources с перечислением ID.
type rawListable interface {
	rawSource
	List() ([]string, error)
}

// adapt оборачивает источник, сохраняя способность к перечислению.
func adapt(src rawSource) PromptSource {
	if listable, ok := src.(rawListable); ok {
		return &listableSourceAdapter{sourceAdapter{src: src}, listable}
	}
	return &sourceAdapter{src: src}
}

// sourceAdapter конвертирует PromptData в PromptFile при загрузке.
type sourceAdapter struct {
	src rawSource
}

func (a *sourceAdapter) Load(promptID string) (*PromptFile, error) {
	data, err := a.src.Load(promptID)
	if err != nil {
		return nil, err
	}
	return fromPromptData(data), nil
}

// listableSourceAdapter дополнительно пробрасывает List().
type listableSourceAdapter struct {
	sourceAdapter
	listable rawListable
}

func (a *listableSourceAdapter) List() ([]string, error) {
	return a.listable.List()
}

// fromPromptData маппит сырые данные источника в PromptFile.
func fromPromptData(data *sources.PromptData) *PromptFile {
	return &PromptFile{
		Template: data.Template,
		Config: PromptConfig{
			Model:       data.Config.Model,
			MaxTokens:   data.Config.MaxTokens,
			Temperature: data.Config.Temperature,
			Stop:        data.Config.Stop,
		},
		Variables: data.Variables,
		Metadata:  data.Metadata,
	}
}
