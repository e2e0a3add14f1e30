package std

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ilkoid/localgen/pkg/component"
	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/tools"
)

// newTestComponent собирает компонент поверх мок-сервера.
func newTestComponent(t *testing.T, responseBody string) *component.TextGeneration {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{
		Models: config.ModelsConfig{
			Default: "local",
			Definitions: map[string]config.ModelDef{
				"local": {Provider: "textgen", BaseURL: server.URL},
			},
		},
	}

	comp, err := component.New(cfg)
	if err != nil {
		t.Fatalf("component.New() error = %v", err)
	}
	return comp
}

// TestCompleteTextToolExecute тестирует генерацию через инструмент.
func TestCompleteTextToolExecute(t *testing.T) {
	comp := newTestComponent(t, `{"choices":[{"text":"generated"}]}`)
	tool := NewCompleteTextTool(comp)

	result, err := tool.Execute(context.Background(), `{"prompt":"hello"}`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "generated" {
		t.Errorf("Execute() = %q, want 'generated'", result)
	}
}

// TestCompleteTextToolFailureAsText тестирует контракт: сбой генерации
// приходит текстом, а не ошибкой.
func TestCompleteTextToolFailureAsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{
		Models: config.ModelsConfig{
			Default: "local",
			Definitions: map[string]config.ModelDef{
				"local": {Provider: "textgen", BaseURL: server.URL},
			},
		},
	}
	comp, err := component.New(cfg)
	if err != nil {
		t.Fatalf("component.New() error = %v", err)
	}

	tool := NewCompleteTextTool(comp)
	result, err := tool.Execute(context.Background(), `{"prompt":"hello"}`)
	if err != nil {
		t.Fatalf("Execute() error = %v, want failure as result text", err)
	}
	if result == "" {
		t.Fatal("Execute() returned empty result for failed completion")
	}
}

// TestCompleteTextToolBadArguments тестирует ошибки аргументов.
func TestCompleteTextToolBadArguments(t *testing.T) {
	tool := NewCompleteTextTool(newTestComponent(t, `{"choices":[{"text":"x"}]}`))

	if _, err := tool.Execute(context.Background(), `{broken json`); err == nil {
		t.Error("Execute() expected error for invalid JSON")
	}

	if _, err := tool.Execute(context.Background(), `{}`); err == nil {
		t.Error("Execute() expected error when prompt and prompt_id are both empty")
	}
}

// TestCompleteTextToolDefinition тестирует что определение проходит
// валидацию реестра.
func TestCompleteTextToolDefinition(t *testing.T) {
	tool := NewCompleteTextTool(newTestComponent(t, `{"choices":[{"text":"x"}]}`))

	if err := tools.NewRegistry().Register(tool); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	def := tool.Definition()
	if def.Name != "complete_text" {
		t.Errorf("Name = %q, want 'complete_text'", def.Name)
	}
	if def.Description == "" {
		t.Error("Description is empty")
	}
}
