// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"action", "drama"}, query.StringSlice(" action,, drama "))
}

func TestTerms_RepeatedAndComma(t *testing.T) {
	values, err := url.ParseQuery("genres=Action,Drama&genres=Comedy&tags=")
	assert.NoError(t, err)

	assert.Equal(t, []string{"Action", "Drama", "Comedy"}, query.Terms(values, "genres"))
	assert.Nil(t, query.Terms(values, "tags"))
	assert.Nil(t, query.Terms(values, "missing"))
}
