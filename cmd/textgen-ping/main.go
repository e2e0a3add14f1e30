// textgen-ping — утилита для проверки доступности completion endpoint'а.
//
// Делает крошечный запрос генерации (max_tokens=1) и классифицирует
// результат: доступен / ошибка HTTP / сеть / ответ не от completion API.
//
// Использование:
//   ./textgen-ping                       # модель по умолчанию из config.yaml
//   ./textgen-ping -model local
//   ./textgen-ping -url http://127.0.0.1:5000/v1/completions
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/models"
	"github.com/ilkoid/localgen/pkg/tools/std"
)

func main() {
	// 1. Флаги
	var (
		configPath = flag.String("config", "config.yaml", "путь к config.yaml")
		modelAlias = flag.String("model", "", "алиас модели из реестра")
		apiURL     = flag.String("url", "", "прямой URL completion endpoint'а (конфиг не нужен)")
		apiKey     = flag.String("key", "", "API ключ для прямого endpoint'а")
	)
	flag.Parse()

	// 2. Собираем инструмент пинга
	var pingTool *std.PingEndpointTool
	var args map[string]string

	if *apiURL != "" {
		// Прямой endpoint: реестр не нужен
		pingTool = std.NewPingEndpointTool(nil, "")
		args = map[string]string{"url": *apiURL, "api_key": *apiKey}
		fmt.Printf("🔍 Testing completion endpoint: %s\n\n", *apiURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config from %s: %v", *configPath, err)
		}

		registry, err := models.NewRegistryFromConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to create model registry: %v", err)
		}

		pingTool = std.NewPingEndpointTool(registry, cfg.Models.Default)
		args = map[string]string{"model": *modelAlias}

		label := *modelAlias
		if label == "" {
			label = cfg.Models.Default
		}
		fmt.Printf("🔍 Testing model: %s\n\n", label)
	}

	// 3. Выполняем ping
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	argsJSON, _ := json.Marshal(args)
	result, err := pingTool.Execute(ctx, string(argsJSON))
	if err != nil {
		log.Fatalf("Failed to execute ping: %v", err)
	}

	// 4. Парсим и выводим результат
	var pingResult map[string]interface{}
	if err := json.Unmarshal([]byte(result), &pingResult); err != nil {
		fmt.Printf("Raw result: %s\n", result)
		return
	}

	printResult(pingResult)
}

// printResult выводит результат пинга в красивом формате
func printResult(result map[string]interface{}) {
	available, _ := result["available"].(bool)
	statusCode, _ := result["status_code"].(float64)
	latencyMs, _ := result["latency_ms"].(float64)
	provider, _ := result["provider"].(string)
	model, _ := result["model"].(string)
	baseURL, _ := result["base_url"].(string)

	if available {
		fmt.Printf("✅ Status: AVAILABLE\n")
		fmt.Printf("   Provider: %s\n", provider)
		fmt.Printf("   Model: %s\n", model)
		fmt.Printf("   Endpoint: %s\n", baseURL)
		fmt.Printf("   Latency: %dms\n", int(latencyMs))
		if statusCode > 0 {
			fmt.Printf("   HTTP Code: %d\n", int(statusCode))
		}
		if msg, ok := result["message"].(string); ok {
			fmt.Printf("   Message: %s\n", msg)
		}
	} else {
		fmt.Printf("❌ Status: UNAVAILABLE\n")
		if provider != "" {
			fmt.Printf("   Provider: %s\n", provider)
		}
		if model != "" {
			fmt.Printf("   Model: %s\n", model)
		}
		if baseURL != "" {
			fmt.Printf("   Endpoint: %s\n", baseURL)
		}
		if errType, ok := result["error_type"].(string); ok {
			fmt.Printf("   Error Type: %s\n", errType)
		}
		if errMsg, ok := result["error"].(string); ok {
			fmt.Printf("   Error: %s\n", errMsg)
		}
		if statusCode > 0 {
			fmt.Printf("   HTTP Code: %d\n", int(statusCode))
		}
		if latencyMs > 0 {
			fmt.Printf("   Latency: %dms\n", int(latencyMs))
		}
	}
}
