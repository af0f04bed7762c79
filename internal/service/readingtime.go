package service

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wordsPerMinute = 200

// ReadingTime estimates minutes to read the given text. Markup is
// stripped first so tag names don't count as words.
func ReadingTime(text string) int {
	plain := stripHTML(text)
	words := len(strings.Fields(plain))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

// FormatReadingTime renders the estimate for display.
func FormatReadingTime(minutes int) string {
	if minutes < 1 {
		return "< 1 min read"
	}
	if minutes == 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

func stripHTML(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}
