package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// minTokenLength drops very short tokens ("a", "of", "5") that carry no
// lexical signal on their own.
const minTokenLength = 3

// Normalize applies NFKC normalization and lowercasing. Ligatures and
// compatibility forms coming out of PDF extraction fold into their plain
// equivalents so keyword matching sees uniform text.
func Normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// Tokenize splits text into lowercase word tokens. Tokens are maximal runs
// of letters and digits; tokens shorter than three runes and pure-digit
// tokens are dropped.
func Tokenize(s string) []string {
	normalized := Normalize(s)

	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	result := tokens[:0]
	for _, tok := range tokens {
		if len([]rune(tok)) < minTokenLength {
			continue
		}
		if digitsOnly(tok) {
			continue
		}
		result = append(result, tok)
	}
	return result
}

// Keywords tokenizes text and removes stopwords, returning the set of
// distinct remaining tokens.
func Keywords(s string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		keywords[tok] = struct{}{}
	}
	return keywords
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stopwords is a small English function-word list. Enough to keep persona
// and job keyword sets free of glue words; full linguistic stopword
// handling is out of scope.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "has": {}, "him": {},
	"his": {}, "how": {}, "its": {}, "may": {}, "new": {}, "now": {},
	"old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "did": {},
	"get": {}, "use": {}, "that": {}, "with": {}, "have": {}, "this": {},
	"will": {}, "your": {}, "from": {}, "they": {}, "been": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "their": {},
	"would": {}, "there": {}, "about": {}, "into": {}, "than": {},
	"them": {}, "then": {}, "some": {}, "such": {}, "only": {},
	"over": {}, "also": {}, "after": {}, "before": {}, "between": {},
	"each": {}, "other": {}, "should": {}, "could": {}, "these": {},
	"those": {}, "being": {}, "does": {}, "doing": {}, "during": {},
	"having": {}, "here": {}, "itself": {}, "just": {}, "more": {},
	"most": {}, "must": {}, "very": {},
}
