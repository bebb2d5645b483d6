package common

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
		wantErr  bool
	}{
		{"simple", "Payment Platform", "default", "payment-platform", false},
		{"with special chars", "Payments@Core!", "default", "payments-core", false},
		{"preserves numbers", "Team 42", "default", "team-42", false},
		{"trims hyphens", "---backend---", "default", "backend", false},
		{"uses fallback when empty", "", "workspace", "workspace", false},
		{"uses fallback when whitespace only", "   ", "workspace", "workspace", false},
		{"uses fallback when special chars only", "@#$%", "workspace", "workspace", false},
		{"folds accents", "Operación Niño", "default", "operacion-nino", false},
		{"clamps long names", strings.Repeat("equipo ", 20), "default", "equipo-equipo-equipo-equipo-equipo-equipo-equipo-equipo-equi", false},
		{"error when both empty", "", "", "", true},
		{"error when both result in empty", "@#$", "!@#", "", true},
		{"already lowercase", "mobile-app", "default", "mobile-app", false},
		{"mixed case", "MoBiLe ApP", "default", "mobile-app", false},
		{"multiple spaces", "mobile    app", "default", "mobile-app", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slugify(tt.input, tt.fallback)
			if (err != nil) != tt.wantErr {
				t.Errorf("Slugify() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Slugify() = %q, want %q", got, tt.want)
			}
		})
	}
}
