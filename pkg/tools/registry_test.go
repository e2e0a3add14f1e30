package tools

import (
	"context"
	"strings"
	"testing"
)

// fakeTool — минимальный инструмент для тестов реестра.
type fakeTool struct {
	def    ToolDefinition
	result string
}

func (t *fakeTool) Definition() ToolDefinition { return t.def }

func (t *fakeTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	return t.result, nil
}

// validDefinition собирает минимальное валидное определение.
func validDefinition(name string) ToolDefinition {
	return ToolDefinition{
		Name:        name,
		Description: "tool for tests",
		Parameters: JSONSchema{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []string{},
		},
	}
}

// TestRegistryRegisterAndGet тестирует регистрацию и поиск инструмента.
func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	tool := &fakeTool{def: validDefinition("echo"), result: "ok"}
	if err := registry.Register(tool); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := registry.Get("echo")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != tool {
		t.Error("Get() returned different tool")
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Error("Get() expected error for unknown tool")
	}
}

// TestRegistryValidation тестирует проверку схемы при регистрации.
func TestRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		def     ToolDefinition
		wantErr string
	}{
		{
			name:    "empty name",
			def:     ToolDefinition{Parameters: JSONSchema{"type": "object"}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "nil parameters",
			def:     ToolDefinition{Name: "broken"},
			wantErr: "parameters cannot be nil",
		},
		{
			name:    "missing type",
			def:     ToolDefinition{Name: "broken", Parameters: JSONSchema{"properties": map[string]any{}}},
			wantErr: "must have 'type' field",
		},
		{
			name:    "type not object",
			def:     ToolDefinition{Name: "broken", Parameters: JSONSchema{"type": "array"}},
			wantErr: "must be 'object'",
		},
		{
			name:    "required not array",
			def:     ToolDefinition{Name: "broken", Parameters: JSONSchema{"type": "object", "required": "prompt"}},
			wantErr: "must be an array",
		},
		{
			name:    "required with non-string",
			def:     ToolDefinition{Name: "broken", Parameters: JSONSchema{"type": "object", "required": []any{42}}},
			wantErr: "must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(&fakeTool{def: tt.def})
			if err == nil {
				t.Fatal("Register() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestRegistryExecute тестирует выполнение инструмента по имени.
func TestRegistryExecute(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&fakeTool{def: validDefinition("echo"), result: "done"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := registry.Execute(context.Background(), "echo", "{}")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "done" {
		t.Errorf("Execute() = %q, want 'done'", result)
	}

	if _, err := registry.Execute(context.Background(), "missing", "{}"); err == nil {
		t.Error("Execute() expected error for unknown tool")
	}
}

// TestRegistryListNames тестирует сортированный список имён.
func TestRegistryListNames(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := registry.Register(&fakeTool{def: validDefinition(name)}); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	names := registry.ListNames()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("ListNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if defs := registry.GetDefinitions(); len(defs) != 3 {
		t.Errorf("GetDefinitions() returned %d definitions, want 3", len(defs))
	}
}
