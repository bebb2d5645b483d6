package logger

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short string untouched", "hola", 10, "hola"},
		{"exact length untouched", "abcde", 5, "abcde"},
		{"long ascii clipped", "abcdefgh", 5, "abcde..."},
		{"accented text clipped on runes", "Operación de pagos", 9, "Operación..."},
		{"multibyte run clipped on runes", strings.Repeat("ñ", 8), 4, "ññññ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate(%q, %d) produced invalid UTF-8", tt.in, tt.maxLen)
			}
		})
	}
}
