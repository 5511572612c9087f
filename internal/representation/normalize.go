package representation

import "strings"

// punctuation is the ASCII punctuation set stripped from every token.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases a sentence, splits it on whitespace and strips
// punctuation from each token. Tokens made only of punctuation become empty
// strings and are kept; they simply never match a vocabulary.
func Normalize(sentence string) []string {
	fields := strings.Fields(strings.ToLower(sentence))
	for i, f := range fields {
		fields[i] = stripPunctuation(f)
	}
	return fields
}

// NormalizeToken applies the same lowercasing and punctuation stripping to a
// single token.
func NormalizeToken(token string) string {
	return stripPunctuation(strings.ToLower(token))
}

func stripPunctuation(token string) string {
	if !strings.ContainsAny(token, punctuation) {
		return token
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, token)
}
