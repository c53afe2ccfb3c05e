package dialogue

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "January 2, 2006"

var usd = message.NewPrinter(language.AmericanEnglish)

// formatCurrency renders an amount as US dollars with digit grouping.
func formatCurrency(amount float64) string {
	return usd.Sprintf("$%.2f", amount)
}

// ordinal renders 1 -> "1st", 2 -> "2nd", etc.
func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// containsAny reports whether any of the keywords appears as a substring of
// the lowercased utterance.
func containsAny(utterance string, keywords []string) bool {
	norm := strings.ToLower(utterance)
	for _, kw := range keywords {
		if strings.Contains(norm, kw) {
			return true
		}
	}
	return false
}
