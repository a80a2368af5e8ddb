package providers

import "testing"

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{
			name: "base without version segment",
			base: "https://api.openai.com",
			path: "/v1/chat/completions",
			want: "https://api.openai.com/v1/chat/completions",
		},
		{
			name: "base with version segment collapses",
			base: "https://api.openai.com/v1",
			path: "/v1/chat/completions",
			want: "https://api.openai.com/v1/chat/completions",
		},
		{
			name: "trailing slash trimmed",
			base: "https://api.cerebras.ai/v1/",
			path: "/v1/completions",
			want: "https://api.cerebras.ai/v1/completions",
		},
		{
			name: "non-versioned path appended as is",
			base: "https://api.anthropic.com/v1",
			path: "/health",
			want: "https://api.anthropic.com/v1/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinURL(tt.base, tt.path); got != tt.want {
				t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}
