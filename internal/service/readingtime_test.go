package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t ", 0},
		{"single word", "hello", 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"rounds up", strings.Repeat("word ", 201), 2},
		{"strips markup", "<p>" + strings.Repeat("word ", 50) + "</p><div>more</div>", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingTime(tt.text))
		})
	}
}

func TestReadingTimeIgnoresTagNames(t *testing.T) {
	// Fifty real words wrapped in heavy markup still reads as one
	// minute; tags must not inflate the count.
	html := "<article><section><p><span>" + strings.Repeat("word ", 50) + "</span></p></section></article>"
	assert.Equal(t, 1, ReadingTime(html))
}

func TestFormatReadingTime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "< 1 min read"},
		{1, "1 min read"},
		{2, "2 min read"},
		{15, "15 min read"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatReadingTime(tt.minutes))
	}
}
