// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode strings into ASCII storage keys.
//
// # Usage
//
// Library profile identifiers arrive in a request header and end up inside
// Redis keys and SQLite rows, so they are reduced to lowercase letters, digits
// and single hyphens first ("Living Room TV" becomes "living-room-tv").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds the length of a generated slug.
const MaxLength = 64

// invalid matches any run of characters that may not appear in a slug.
var invalid = regexp.MustCompile(`[^a-z0-9]+`)

// From converts s into a slug of at most [MaxLength] bytes.
//
// # Transformation Pipeline
//
// 1. Decompose (NFD) and drop combining marks, so "é" becomes "e".
// 2. Lowercase.
// 3. Replace every run of non-alphanumerics with one hyphen.
// 4. Trim hyphens and truncate.
func From(s string) string {
	// 1. Strip accents
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(stripper, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Collapse separators
	result = invalid.ReplaceAllString(result, "-")

	// 4. Clean up edges
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}

	return result
}
