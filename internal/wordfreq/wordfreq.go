// Package wordfreq finds the most frequent words of a paragraph, ignoring a
// list of banned words.
package wordfreq

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/Iron-Ham/prodpath/internal/errors"
)

// WordCount is one entry of a ranking.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
	// First is the token index of the word's first occurrence.
	First int `json:"first" yaml:"first"`
}

// Tokenize splits text into case-folded words. A word is a maximal run of
// letters and digits; everything else separates words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	folder := cases.Fold()
	for i, f := range fields {
		fields[i] = folder.String(f)
	}
	return fields
}

// Count ranks the words of text that are not banned: most frequent first,
// ties broken by earliest first occurrence. Banned words are matched
// case-insensitively.
func Count(text string, banned []string) []WordCount {
	ban := make(map[string]struct{}, len(banned))
	folder := cases.Fold()
	for _, b := range banned {
		ban[folder.String(strings.TrimSpace(b))] = struct{}{}
	}

	index := make(map[string]int)
	var ranking []WordCount
	for i, w := range Tokenize(text) {
		if _, ok := ban[w]; ok {
			continue
		}
		if j, ok := index[w]; ok {
			ranking[j].Count++
			continue
		}
		index[w] = len(ranking)
		ranking = append(ranking, WordCount{Word: w, Count: 1, First: i})
	}

	// ranking is already in first-occurrence order, so a stable sort on
	// count keeps the tie break.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// Top returns at most n entries of ranking. n <= 0 returns all of them.
func Top(ranking []WordCount, n int) []WordCount {
	if n <= 0 || n >= len(ranking) {
		return ranking
	}
	return ranking[:n]
}

// MostCommon returns the most frequent word of text that is not banned.
// It returns errors.ErrNoWords when every word is banned or text has none.
func MostCommon(text string, banned []string) (string, error) {
	ranking := Count(text, banned)
	if len(ranking) == 0 {
		return "", errors.NewInputError("most common word", errors.ErrNoWords)
	}
	return ranking[0].Word, nil
}
