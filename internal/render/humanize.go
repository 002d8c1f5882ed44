package render

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type caserWrapper struct {
	caser cases.Caser
}

// cases.Caser keeps state between calls, so each goroutine borrows its own.
var upperCaserPool = sync.Pool{
	New: func() any {
		return &caserWrapper{caser: cases.Upper(language.Und)}
	},
}

// HumanizeKey turns an object key into a display label: underscores become
// spaces and the first letter of each space-separated word is upper-cased.
// The rest of each word is kept, so "api_URL" reads "Api URL" and "3d_model"
// reads "3d Model".
func HumanizeKey(key string) string {
	w, ok := upperCaserPool.Get().(*caserWrapper)
	if !ok || w == nil {
		w = &caserWrapper{caser: cases.Upper(language.Und)}
	}
	defer upperCaserPool.Put(w)

	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		if size == 0 || first == utf8.RuneError {
			continue
		}
		words[i] = w.caser.String(string(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
