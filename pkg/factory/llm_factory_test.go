package factory

import (
	"testing"

	"github.com/ilkoid/localgen/pkg/config"
)

// TestNewProvider тестирует выбор провайдера по конфигурации.
func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{name: "textgen", provider: "textgen", wantErr: false},
		{name: "empty defaults to textgen", provider: "", wantErr: false},
		{name: "openai", provider: "openai", wantErr: false},
		{name: "zai", provider: "zai", wantErr: false},
		{name: "deepseek", provider: "deepseek", wantErr: false},
		{name: "unknown", provider: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(config.ModelDef{
				Provider: tt.provider,
				APIKey:   "test-key",
			}, config.MaskingConfig{})

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if provider == nil {
				t.Fatal("expected non-nil provider")
			}
		})
	}
}
