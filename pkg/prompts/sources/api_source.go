package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APISource — загрузка промптов из HTTP API.
//
// Поддерживает Bearer token авторизацию. Заголовок Authorization
// добавляется только при непустом токене — так же, как в textgen клиенте.
type APISource struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewAPISource создаёт источник промптов из HTTP API.
//
// Параметры:
//   - endpoint: базовый URL API (например, "https://prompts.example.com")
//   - token: опциональный Bearer token для авторизации
//
// API контракт:
//
//	GET /prompts/{promptID}
//	Authorization: Bearer {token}
//
//	Response 200:
//	{
//	  "template": "Summarize: {{.input}}",
//	  "variables": {"key": "value"},
//	  "metadata": {"version": "1.0"}
//	}
func NewAPISource(endpoint string, token string) *APISource {
	return &APISource{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Load загружает промпт из HTTP API.
//
// Возвращает *PromptData для избежания циклического импорта.
func (s *APISource) Load(promptID string) (*PromptData, error) {
	url := fmt.Sprintf("%s/prompts/%s", s.endpoint, promptID)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("prompt '%s' in API: %w", promptID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned error %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var file PromptData
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	return &file, nil
}

// SetClient устанавливает кастомный HTTP клиент (для тестирования).
func (s *APISource) SetClient(client *http.Client) {
	s.client = client
}
