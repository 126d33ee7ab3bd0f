package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var splitWordsPattern = regexp.MustCompile(`[_\-.\s]+`)

// HumanizeKey converts a field key into a title-cased label: "first_name"
// becomes "First Name" and "companyName" becomes "Company Name".
func HumanizeKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}

	caser := cases.Title(language.Und)
	words := splitWordsPattern.Split(key, -1)
	segments := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, caser.String(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && isBoundary(runes[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
