// textgen-cli — одноразовая генерация текста через completion endpoint.
//
// Usage:
//   textgen-cli [flags] "prompt text"
//   echo "prompt" | textgen-cli [flags]
//   textgen-cli -prompt-id summarize -vars "input=..."
//
// Examples:
//   textgen-cli "Once upon a time"
//   textgen-cli -model local -max-tokens 100 -stop "###" "Write a haiku"
//   textgen-cli -url http://127.0.0.1:5000/v1/completions "ping"
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ilkoid/localgen/pkg/component"
	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/utils"
)

func main() {
	// 1. Флаги
	var (
		configPath  = flag.String("config", "config.yaml", "путь к config.yaml")
		modelAlias  = flag.String("model", "", "алиас модели из реестра")
		promptID    = flag.String("prompt-id", "", "ID шаблона промпта вместо literal-промпта")
		varsFlag    = flag.String("vars", "", "переменные шаблона: key=value,key2=value2")
		apiURL      = flag.String("url", "", "прямой URL completion endpoint'а (мимо реестра)")
		apiKey      = flag.String("key", "", "API ключ для прямого endpoint'а")
		maxTokens   = flag.Int("max-tokens", 0, "переопределить max_tokens")
		temperature = flag.Float64("temperature", 0, "переопределить temperature")
		stopFlag    = flag.String("stop", "", "stop-последовательности через запятую")
		quiet       = flag.Bool("q", false, "печатать только текст ответа, без рамки")
	)
	flag.Parse()

	// 2. Логгер и graceful shutdown: Ctrl+C посреди долгой генерации
	// отменяет контекст, и наружу выходит обычный "Request Error"
	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	// 3. Промпт: аргументы или stdin
	prompt := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if prompt == "" && *promptID == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
		prompt = strings.TrimSpace(string(data))
		if prompt == "" {
			fmt.Fprintln(os.Stderr, "❌ Пустой промпт: передайте текст аргументом, через stdin или флагом -prompt-id")
			flag.Usage()
			os.Exit(1)
		}
	}

	// 4. Компонент: с конфигом, либо без него при прямом -url
	comp := buildComponent(*configPath, *apiURL)

	// 5. Одна генерация
	msg := comp.Run(ctx, component.Fields{
		Prompt:      prompt,
		PromptID:    *promptID,
		Variables:   parseVars(*varsFlag),
		Model:       *modelAlias,
		APIURL:      *apiURL,
		APIKey:      *apiKey,
		MaxTokens:   *maxTokens,
		Temperature: *temperature,
		Stop:        splitList(*stopFlag),
	})

	// 6. Вывод результата
	if *quiet {
		fmt.Println(msg.Content)
		return
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("RESULT:")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(msg.Content)
	fmt.Println(strings.Repeat("=", 70))
}

// buildComponent собирает компонент генерации.
//
// Приоритет:
//  1. Конфиг загрузился — полный компонент (реестр моделей + источники промптов)
//  2. Конфига нет, но задан -url — "голый" компонент с прямым клиентом
func buildComponent(configPath, apiURL string) *component.TextGeneration {
	cfg, err := config.Load(configPath)
	if err != nil {
		if apiURL == "" {
			log.Fatalf("Config Error: %v", err)
		}
		utils.Warn("config not loaded, using direct endpoint only", "error", err)
		return component.NewWithRegistry(nil, nil, config.MaskingConfig{}, "")
	}

	comp, err := component.New(cfg)
	if err != nil {
		log.Fatalf("Init Error: %v", err)
	}
	return comp
}

// parseVars разбирает строку "key=value,key2=value2" в map для шаблона.
func parseVars(s string) map[string]string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	vars := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(key)] = value
	}
	return vars
}

// splitList разбирает список через запятую, пустые элементы отбрасывает.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
