package match

import "strings"

// stopwords excluded from bio keyword extraction. Small list on purpose:
// bios are short and the Jaccard comparison tolerates noise.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "my": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"that": {}, "the": {}, "their": {}, "this": {}, "to": {}, "we": {},
	"with": {}, "who": {}, "you": {}, "your": {},
}

// bioKeywords extracts a lower-cased keyword set from free-text bio copy.
// It keeps stopword-filtered words plus adjacent word pairs, approximating
// noun-phrase extraction without a full NLP pipeline.
func bioKeywords(bio string) map[string]struct{} {
	words := tokenize(bio)

	keywords := make(map[string]struct{}, len(words)*2)
	for i, w := range words {
		keywords[w] = struct{}{}
		if i+1 < len(words) {
			keywords[w+" "+words[i+1]] = struct{}{}
		}
	}
	return keywords
}

// tokenize lower-cases text, splits on non-letter runs, and drops stopwords
// and single-character fragments.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	var words []string
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		words = append(words, f)
	}
	return words
}

// jaccard returns intersection/union over two keyword sets, 0 when both are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
