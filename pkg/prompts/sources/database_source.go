package sources

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// DatabaseSource — загрузка промптов из SQL базы данных.
//
// Рассчитан на SQLite (placeholder `?`), но работает с любым драйвером,
// понимающим этот синтаксис. Соединение открывает вызывающий код —
// источник драйвер-агностичен.
type DatabaseSource struct {
	db    *sql.DB
	table string
}

// NewDatabaseSource создаёт источник промптов из SQL базы.
//
// Параметры:
//   - db: *sql.DB с открытым соединением
//   - table: имя таблицы с промптами (default: "prompts")
//
// Структура таблицы (пример SQL):
//
//	CREATE TABLE prompts (
//	    id TEXT PRIMARY KEY,
//	    template TEXT,
//	    model TEXT,
//	    variables TEXT,  -- JSON object
//	    metadata TEXT    -- JSON object
//	);
func NewDatabaseSource(db *sql.DB, table string) *DatabaseSource {
	if table == "" {
		table = "prompts"
	}
	return &DatabaseSource{
		db:    db,
		table: table,
	}
}

// Load загружает промпт из базы данных по ID.
//
// Возвращает *PromptData для избежания циклического импорта.
func (s *DatabaseSource) Load(promptID string) (*PromptData, error) {
	var template, model, variablesJSON, metadataJSON sql.NullString

	query := fmt.Sprintf(
		"SELECT template, model, variables, metadata FROM %s WHERE id = ?",
		s.table,
	)

	err := s.db.QueryRow(query, promptID).Scan(&template, &model, &variablesJSON, &metadataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prompt '%s' in table '%s': %w", promptID, s.table, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	file := &PromptData{
		Template: template.String,
		Config: GenerationConfig{
			Model: model.String,
		},
	}

	if variablesJSON.Valid && variablesJSON.String != "" {
		if err := json.Unmarshal([]byte(variablesJSON.String), &file.Variables); err != nil {
			return nil, fmt.Errorf("failed to parse variables JSON for '%s': %w", promptID, err)
		}
	}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &file.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse metadata JSON for '%s': %w", promptID, err)
		}
	}

	return file, nil
}

// List возвращает ID всех промптов в таблице.
func (s *DatabaseSource) List() ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id", s.table)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
