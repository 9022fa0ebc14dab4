// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textproc

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Stop words excluded from keyword statistics. Normalization must behave
// identically at build time and query time, so the set is fixed.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "in": true,
	"that": true, "have": true, "has": true, "it": true, "for": true,
	"not": true, "on": true, "with": true, "as": true, "you": true, "do": true,
	"at": true, "this": true, "but": true, "by": true, "from": true,
	"or": true, "so": true, "if": true, "its": true,
}

// Normalize lowercases text, replaces every non-alphanumeric character with a
// space, collapses whitespace, removes stop words, and reduces each remaining
// token to its stem. A token that cannot be stemmed is kept as-is; stemming
// failure is local and never aborts the call. Normalize is pure and total:
// empty input yields the empty string.
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens returns the normalized token sequence for text. See Normalize.
func Tokens(text string) []string {
	lowered := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		if unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(lowered)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if stopWords[tok] {
			continue
		}
		stemmed, err := snowball.Stem(tok, "english", false)
		if err != nil || stemmed == "" {
			stemmed = tok
		}
		tokens = append(tokens, stemmed)
	}
	return tokens
}

// IsStopWord reports whether word is in the fixed stop-word set.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}
