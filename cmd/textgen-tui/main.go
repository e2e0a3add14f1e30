// textgen-tui — интерактивная консоль для проверки completion endpoint'ов.
//
// Каждая введённая строка уходит одним запросом генерации, ответ
// печатается в лог чата. Служебные команды начинаются с ":" (см. :help).
//
// Использование:
//   ./textgen-tui                          # config.yaml в текущей директории
//   ./textgen-tui -config dev.yaml -model local
//   ./textgen-tui -max-tokens 100 -temperature 0.3
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilkoid/localgen/internal/ui"
	"github.com/ilkoid/localgen/pkg/component"
	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/utils"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// 1. Флаги
	var (
		configPath  = flag.String("config", "config.yaml", "путь к config.yaml")
		modelAlias  = flag.String("model", "", "алиас модели из реестра (по умолчанию из конфига)")
		maxTokens   = flag.Int("max-tokens", 0, "переопределить max_tokens")
		temperature = flag.Float64("temperature", 0, "переопределить temperature")
	)
	flag.Parse()

	// 2. Логгер (пишет в файл localgen-*.log, stdout остаётся за TUI)
	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	utils.Info("textgen-tui started", "version", "1.0")

	// 3. Конфигурация и компонент генерации
	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Error("failed to load config", "error", err)
		log.Fatalf("Config Error: %v", err)
	}

	comp, err := component.New(cfg)
	if err != nil {
		utils.Error("failed to build component", "error", err)
		log.Fatalf("Init Error: %v", err)
	}

	// 4. Базовые поля генерации из флагов
	fields := component.Fields{
		Model:       *modelAlias,
		MaxTokens:   *maxTokens,
		Temperature: *temperature,
	}

	modelLabel := *modelAlias
	if modelLabel == "" {
		modelLabel = cfg.Models.Default
	}

	// 5. Запускаем TUI
	p := tea.NewProgram(
		ui.InitialModel(comp, fields, modelLabel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
