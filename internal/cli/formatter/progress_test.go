package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 50, 4, "[██░░]  50%"},
		{"full", 100, 4, "[████] 100%"},
		{"rounds bar down", 67, 3, "[██░]  67%"},
		{"clamps above", 150, 2, "[██] 100%"},
		{"clamps below", -10, 2, "[░░]   0%"},
		{"minimum width", 50, 0, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.percent, tt.width)))
		})
	}
}
