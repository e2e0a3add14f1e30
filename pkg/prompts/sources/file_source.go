package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource — загрузка промптов из YAML файлов.
//
// Использует baseDir для поиска файлов: <baseDir>/<promptID>.yaml
type FileSource struct {
	baseDir string
}

// NewFileSource создаёт FileSource с указанной базовой директорией.
//
// baseDir обычно берётся из cfg.Prompts.Dir (YAML-first философия).
func NewFileSource(baseDir string) *FileSource {
	return &FileSource{
		baseDir: baseDir,
	}
}

// Load загружает промпт из YAML файла.
//
// Возвращает *PromptData для избежания циклического импорта.
func (s *FileSource) Load(promptID string) (*PromptData, error) {
	// Construct file path: <baseDir>/<promptID>.yaml
	path := filepath.Join(s.baseDir, promptID+".yaml")

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	// Parse YAML
	var file PromptData
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt YAML: %w", err)
	}

	return &file, nil
}

// List возвращает отсортированные ID всех промптов в директории.
//
// Несуществующая директория — пустой список, не ошибка: источник
// просто пуст и fallback chain идёт дальше.
func (s *FileSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read prompts dir: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".yaml"))
	}

	sort.Strings(ids)
	return ids, nil
}
