package model

import (
	"regexp"
	"strings"
	"unicode"
)

var labelSeparators = regexp.MustCompile(`[_\-.\s]+`)

// DefaultLabeler turns a field name such as "fullName" or "birth_date" into a
// display label ("Full Name", "Birth Date"). Fields declared with an explicit
// Label never go through it.
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var words []string
	for _, chunk := range labelSeparators.Split(name, -1) {
		for _, word := range splitCamelWords(chunk) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamelWords(chunk string) []string {
	if chunk == "" {
		return nil
	}
	runes := []rune(chunk)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
