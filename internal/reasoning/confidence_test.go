package reasoning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "excellent"},
		{0.85, "excellent"},
		{0.84, "good"},
		{0.65, "good"},
		{0.64, "fair"},
		{0.50, "fair"},
		{0.49, "weak"},
		{0.35, "weak"},
		{0.34, "poor"},
		{0.0, "poor"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ConfidenceLabel(tt.score), "score %.2f", tt.score)
	}
}

func TestConfidenceColorClass(t *testing.T) {
	assert.Equal(t, "text-green-600", ConfidenceColorClass(0.9))
	assert.Equal(t, "text-emerald-600", ConfidenceColorClass(0.7))
	assert.Equal(t, "text-yellow-600", ConfidenceColorClass(0.55))
	assert.Equal(t, "text-orange-600", ConfidenceColorClass(0.4))
	assert.Equal(t, "text-red-600", ConfidenceColorClass(0.1))
}

func TestGenerateConfidenceExplanation(t *testing.T) {
	assert.Contains(t, GenerateConfidenceExplanation(0.9), "excellent")
	assert.Contains(t, GenerateConfidenceExplanation(0.2), "alternative candidate")
}
