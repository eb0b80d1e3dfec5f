// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides strict conversions for optional query values.

Unlike lenient parsers, these helpers distinguish "absent" (nil, no error) from
"malformed" (error), which lets handlers report bad filters instead of silently
ignoring them.
*/
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

// OptionalInt parses s as a base-10 integer. An empty string yields nil.
func OptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("convert: %q is not an integer", s)
	}
	return pointer.To(v), nil
}

// OptionalFloat parses s as a finite float64. An empty string yields nil.
func OptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("convert: %q is not a number", s)
	}
	return pointer.To(v), nil
}

// IntD converts a string to an int, returning def if it is empty or malformed.
func IntD(s string, def int) int {
	v, err := OptionalInt(s)
	if err != nil || v == nil {
		return def
	}
	return *v
}
