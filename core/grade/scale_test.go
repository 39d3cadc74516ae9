package grade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePoints(t *testing.T) {
	tests := []struct {
		pct  float64
		want float64
	}{
		{100, 4.0}, {97, 4.0}, {96.99, 3.7}, {93, 3.7}, {90, 3.3}, {89.9, 3.0}, {87, 3.0},
		{83, 2.7}, {80, 2.3}, {77, 2.0}, {73, 1.7}, {70, 1.3}, {67, 1.0}, {65, 0.7},
		{64.99, 0.0}, {0, 0.0}, {-5, 0.0}, {120, 4.0}, {math.NaN(), 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradePoints(tt.pct), "GradePoints(%v)", tt.pct)
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A"}, {90, "A"}, {89.99, "B"}, {80, "B"}, {79.5, "C"}, {70, "C"},
		{69, "D"}, {60, "D"}, {59.99, "F"}, {0, "F"}, {math.NaN(), "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.pct), "LetterGrade(%v)", tt.pct)
	}
}
