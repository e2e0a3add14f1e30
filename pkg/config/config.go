package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру твоего config.yaml.
type AppConfig struct {
	Models  ModelsConfig  `yaml:"models"`
	Masking MaskingConfig `yaml:"masking"`
	Prompts PromptsConfig `yaml:"prompts"`
	S3      S3Config      `yaml:"s3"`
	App     AppSpecific   `yaml:"app"`
}

// ModelsConfig — настройки моделей генерации.
type ModelsConfig struct {
	Default     string              `yaml:"default"`     // Алиас по умолчанию (например, "local")
	Definitions map[string]ModelDef `yaml:"definitions"` // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider  string `yaml:"provider"`   // "textgen", "openai", "zai", "deepseek"
	ModelName string `yaml:"model_name"` // Реальное имя в API (для локального сервера не требуется)
	APIKey    string `yaml:"api_key"`    // Поддерживает ${VAR}. Пустой ключ = без Authorization
	BaseURL   string `yaml:"base_url"`   // Полный URL completion endpoint

	// Параметры генерации. Нулевое значение = дефолт провайдера.
	MaxTokens         int      `yaml:"max_tokens"`
	Temperature       float64  `yaml:"temperature"`
	TopP              float64  `yaml:"top_p"`
	TypicalP          float64  `yaml:"typical_p"`
	TopK              int      `yaml:"top_k"`
	MinP              float64  `yaml:"min_p"`
	RepetitionPenalty float64  `yaml:"repetition_penalty"`
	Stop              []string `yaml:"stop"`

	// Extra — произвольные параметры payload (seed, mirostat_mode...).
	// Отправляются серверу как есть.
	Extra map[string]any `yaml:"extra"`

	Timeout time.Duration `yaml:"timeout"` // Go умеет парсить строки вида "60s", "1m"

	// Rate limiting (опционально). 0 = без ограничений.
	RateLimit  int `yaml:"rate_limit"`  // Запросов в минуту
	BurstLimit int `yaml:"burst_limit"` // Burst для rate limiter
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (m *ModelDef) GetDefaults() ModelDef {
	result := *m // Копируем текущие значения

	if result.Provider == "" {
		result.Provider = "textgen"
	}
	if result.BaseURL == "" && result.Provider == "textgen" {
		result.BaseURL = "http://127.0.0.1:5000/v1/completions"
	}
	if result.Timeout == 0 {
		result.Timeout = 60 * time.Second
	}
	if result.BurstLimit == 0 && result.RateLimit > 0 {
		result.BurstLimit = 5
	}

	return result
}

// MaskingConfig — правила сокрытия секретов в логах.
type MaskingConfig struct {
	Headers      []string `yaml:"headers"`       // Заголовки запроса для маскирования
	ResponseKeys []string `yaml:"response_keys"` // Ключи JSON-ответа для маскирования
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
//
// Заголовки по умолчанию маскируют Authorization. Ключи ответа по
// умолчанию пусты: ответ логируется как есть.
func (c *MaskingConfig) GetDefaults() MaskingConfig {
	result := *c

	if result.Headers == nil {
		result.Headers = []string{"Authorization"}
	}

	return result
}

// PromptsConfig — источники промптов.
//
// Каждое заполненное поле включает свой источник. Порядок в fallback
// chain фиксирован: файлы, база, S3, API, встроенные дефолты.
type PromptsConfig struct {
	Dir          string `yaml:"dir"`           // Каталог с YAML файлами промптов
	DatabasePath string `yaml:"database_path"` // Путь к SQLite базе промптов
	S3Prefix     string `yaml:"s3_prefix"`     // Префикс объектов промптов в S3
	APIEndpoint  string `yaml:"api_endpoint"`  // Базовый URL HTTP API промптов
	APIToken     string `yaml:"api_token"`     // Bearer token. Поддерживает ${VAR}
}

// S3Config — настройки объектного хранилища.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled сообщает, настроено ли хранилище.
func (s *S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if c.Models.Default != "" {
		if _, ok := c.Models.Definitions[c.Models.Default]; !ok {
			return fmt.Errorf("default model '%s' is not defined in definitions", c.Models.Default)
		}
	}
	for alias, def := range c.Models.Definitions {
		switch def.GetDefaults().Provider {
		case "textgen", "openai", "zai", "deepseek":
		default:
			return fmt.Errorf("model '%s': unknown provider '%s'", alias, def.Provider)
		}
	}
	// S3 опционален, но если endpoint задан — bucket обязателен
	if c.S3.Enabled() && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	return nil
}

// Helper методы для удобства доступа (Syntactic sugar)

// GetModel возвращает конфигурацию модели по умолчанию или по имени.
func (c *AppConfig) GetModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.Default
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
