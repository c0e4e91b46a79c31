package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"legacy switch flags", []string{"switch", "-mo", "feature", "-mi"}, []string{"switch", "--move-over", "feature", "--move-ignored"}},
		{"legacy branch flags", []string{"branch", "-c", "x", "-dp", "HEAD~1"}, []string{"branch", "-c", "x", "--divergent-point", "HEAD~1"}},
		{"legacy commit point", []string{"checkout", "a.txt", "-cp", "HEAD~1"}, []string{"checkout", "a.txt", "--commit-point", "HEAD~1"}},
		{"short flags untouched", []string{"switch", "-o", "feature"}, []string{"switch", "-o", "feature"}},
		{"after double dash", []string{"diff", "--", "-mo"}, []string{"diff", "--", "-mo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeArgs(tt.in))
		})
	}
}
