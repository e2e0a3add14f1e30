package prompts

import (
	"strings"
	"testing"
)

// TestRender тестирует подстановку переменных в шаблон.
func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		file     PromptFile
		vars     map[string]string
		want     string
		wantErr  bool
	}{
		{
			name: "simple substitution",
			file: PromptFile{Template: "Summarize: {{.input}}"},
			vars: map[string]string{"input": "long text"},
			want: "Summarize: long text",
		},
		{
			name: "call vars override file defaults",
			file: PromptFile{
				Template:  "{{.style}} {{.input}}",
				Variables: map[string]string{"style": "Formal.", "input": "unused"},
			},
			vars: map[string]string{"input": "hello"},
			want: "Formal. hello",
		},
		{
			name: "file defaults used when var not passed",
			file: PromptFile{
				Template:  "{{.style}}",
				Variables: map[string]string{"style": "Casual."},
			},
			vars: nil,
			want: "Casual.",
		},
		{
			name: "no placeholders",
			file: PromptFile{Template: "static prompt"},
			vars: map[string]string{"unused": "x"},
			want: "static prompt",
		},
		{
			name:    "missing variable is an error",
			file:    PromptFile{Template: "{{.ghost}}"},
			vars:    nil,
			wantErr: true,
		},
		{
			name:    "broken template syntax",
			file:    PromptFile{Template: "{{.unclosed"},
			vars:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.file.Render(tt.vars)

			if tt.wantErr {
				if err == nil {
					t.Error("Render() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRenderDoesNotMutateDefaults тестирует изоляцию Variables промпта.
func TestRenderDoesNotMutateDefaults(t *testing.T) {
	file := PromptFile{
		Template:  "{{.style}}",
		Variables: map[string]string{"style": "original"},
	}

	if _, err := file.Render(map[string]string{"style": "override"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if file.Variables["style"] != "original" {
		t.Errorf("Variables mutated: %v", file.Variables)
	}
}

// TestRenderMultiline тестирует многострочный шаблон.
func TestRenderMultiline(t *testing.T) {
	file := PromptFile{
		Template: "Text:\n{{.input}}\n\nSummary:",
	}

	got, err := file.Render(map[string]string{"input": "a\nb"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "a\nb") {
		t.Errorf("Render() = %q, want input preserved", got)
	}
	if !strings.HasSuffix(got, "Summary:") {
		t.Errorf("Render() = %q, want trailing 'Summary:'", got)
	}
}
