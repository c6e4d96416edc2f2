package policydoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matches reports whether haystack contains needle as a contiguous
// substring, ignoring case. An empty needle matches everything; callers
// that treat empty queries specially must check before calling.
//
// Bytes that are not valid UTF-8 only match the same byte.
func Matches(haystack, needle string) bool {
	h, _ := foldText(haystack)
	n, _ := foldText(needle)
	return indexUnits(h, n, 0) >= 0
}

// NormalizeQuery trims surrounding whitespace from a raw user query.
// An empty result means "no query".
func NormalizeQuery(rawQuery string) string {
	return strings.TrimSpace(rawQuery)
}

// foldText lowercases s one rune at a time. Invalid UTF-8 bytes become
// negative units so no two distinct bytes, and no byte and rune, compare
// equal. starts[i] is the byte offset of unit i in s; starts has one extra
// entry holding len(s).
func foldText(s string) (units []rune, starts []int) {
	units = make([]rune, 0, len(s))
	starts = make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			r = -1 - rune(s[i])
		} else {
			r = unicode.ToLower(r)
		}
		units = append(units, r)
		starts = append(starts, i)
		i += size
	}
	return units, append(starts, len(s))
}

// indexUnits returns the index of the first occurrence of n in h at or
// after from, or -1.
func indexUnits(h, n []rune, from int) int {
	for i := from; i+len(n) <= len(h); i++ {
		j := 0
		for j < len(n) && h[i+j] == n[j] {
			j++
		}
		if j == len(n) {
			return i
		}
	}
	return -1
}
