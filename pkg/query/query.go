// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters and settings.
package query

import (
	"net/url"
	"strings"
)

// StringSlice parses a single comma-separated string into a trimmed slice.
// Empty entries are dropped; an empty input yields nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Terms collects every value of key, accepting both repeated parameters
// (?genre=a&genre=b) and comma-separated lists (?genres=a,b).
func Terms(values url.Values, key string) []string {
	var res []string
	for _, raw := range values[key] {
		res = append(res, StringSlice(raw)...)
	}
	return res
}
