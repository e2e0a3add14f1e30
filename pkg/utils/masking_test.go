package utils

import (
	"net/http"
	"testing"
)

func TestMaskHeaders(t *testing.T) {
	tests := []struct {
		name      string
		headers   http.Header
		sensitive []string
		want      map[string]string // header -> expected first value
	}{
		{
			name: "masks Authorization",
			headers: http.Header{
				"Authorization": {"Bearer sk-secret-key"},
				"Content-Type":  {"application/json"},
			},
			sensitive: []string{"Authorization"},
			want: map[string]string{
				"Authorization": "***",
				"Content-Type":  "application/json",
			},
		},
		{
			name: "case insensitive match",
			headers: http.Header{
				"Authorization": {"Bearer sk-secret-key"},
			},
			sensitive: []string{"authorization"},
			want: map[string]string{
				"Authorization": "***",
			},
		},
		{
			name: "empty sensitive list is no-op",
			headers: http.Header{
				"Authorization": {"Bearer sk-secret-key"},
			},
			sensitive: nil,
			want: map[string]string{
				"Authorization": "Bearer sk-secret-key",
			},
		},
		{
			name: "masks multiple headers",
			headers: http.Header{
				"Authorization": {"Bearer sk-secret-key"},
				"X-Api-Key":     {"secret123"},
				"Accept":        {"application/json"},
			},
			sensitive: []string{"Authorization", "X-Api-Key"},
			want: map[string]string{
				"Authorization": "***",
				"X-Api-Key":     "***",
				"Accept":        "application/json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskHeaders(tt.headers, tt.sensitive)

			for name, wantValue := range tt.want {
				if gotValue := got.Get(name); gotValue != wantValue {
					t.Errorf("header %q = %q, want %q", name, gotValue, wantValue)
				}
			}
		})
	}
}

func TestMaskHeadersDoesNotMutateOriginal(t *testing.T) {
	original := http.Header{
		"Authorization": {"Bearer sk-secret-key"},
	}

	_ = MaskHeaders(original, []string{"Authorization"})

	if got := original.Get("Authorization"); got != "Bearer sk-secret-key" {
		t.Errorf("original header mutated: got %q", got)
	}
}

func TestMaskKeys(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		keys []string
		want map[string]any
	}{
		{
			name: "masks top-level key",
			data: map[string]any{"token": "secret", "text": "hello"},
			keys: []string{"token"},
			want: map[string]any{"token": "***", "text": "hello"},
		},
		{
			name: "case insensitive",
			data: map[string]any{"Token": "secret"},
			keys: []string{"token"},
			want: map[string]any{"Token": "***"},
		},
		{
			name: "masks nested key",
			data: map[string]any{
				"outer": map[string]any{"api_key": "secret", "model": "glm-4.6"},
			},
			keys: []string{"api_key"},
			want: map[string]any{
				"outer": map[string]any{"api_key": "***", "model": "glm-4.6"},
			},
		},
		{
			name: "masks key inside slice elements",
			data: map[string]any{
				"choices": []any{
					map[string]any{"text": "hi", "secret": "x"},
					map[string]any{"text": "bye", "secret": "y"},
				},
			},
			keys: []string{"secret"},
			want: map[string]any{
				"choices": []any{
					map[string]any{"text": "hi", "secret": "***"},
					map[string]any{"text": "bye", "secret": "***"},
				},
			},
		},
		{
			name: "empty keys list is no-op",
			data: map[string]any{"token": "secret"},
			keys: nil,
			want: map[string]any{"token": "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskKeys(tt.data, tt.keys)
			assertEqualMap(t, got, tt.want)
		})
	}
}

func TestMaskKeysDoesNotMutateOriginal(t *testing.T) {
	original := map[string]any{
		"token":  "secret",
		"nested": map[string]any{"key": "value"},
	}

	_ = MaskKeys(original, []string{"token", "key"})

	if original["token"] != "secret" {
		t.Errorf("original token mutated: got %v", original["token"])
	}
	nested := original["nested"].(map[string]any)
	if nested["key"] != "value" {
		t.Errorf("original nested key mutated: got %v", nested["key"])
	}
}

// assertEqualMap сравнивает две map рекурсивно.
func assertEqualMap(t *testing.T, got, want map[string]any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("map size = %d, want %d (got=%v want=%v)", len(got), len(want), got, want)
	}

	for key, wantValue := range want {
		gotValue, ok := got[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}

		switch wv := wantValue.(type) {
		case map[string]any:
			gv, ok := gotValue.(map[string]any)
			if !ok {
				t.Errorf("key %q: got %T, want map", key, gotValue)
				continue
			}
			assertEqualMap(t, gv, wv)
		case []any:
			gv, ok := gotValue.([]any)
			if !ok {
				t.Errorf("key %q: got %T, want slice", key, gotValue)
				continue
			}
			if len(gv) != len(wv) {
				t.Errorf("key %q: slice len = %d, want %d", key, len(gv), len(wv))
				continue
			}
			for i := range wv {
				wm, wok := wv[i].(map[string]any)
				gm, gok := gv[i].(map[string]any)
				if wok && gok {
					assertEqualMap(t, gm, wm)
					continue
				}
				if gv[i] != wv[i] {
					t.Errorf("key %q[%d] = %v, want %v", key, i, gv[i], wv[i])
				}
			}
		default:
			if gotValue != wantValue {
				t.Errorf("key %q = %v, want %v", key, gotValue, wantValue)
			}
		}
	}
}
