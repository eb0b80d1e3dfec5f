// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	upper := slice.Map([]string{"a", "b"}, strings.ToUpper)
	assert.Equal(t, []string{"A", "B"}, upper)

	even := slice.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Nil(t, slice.Map[int, int](nil, nil))
}

/*
TestRankByFrequency verifies ordering by count with first-appearance tie breaking.
*/
func TestRankByFrequency(t *testing.T) {
	input := []string{"Drama", "Action", "Comedy", "Action", "Drama", "Horror"}

	assert.Equal(t, []string{"Drama", "Action", "Comedy", "Horror"}, slice.RankByFrequency(input, 0))
	assert.Equal(t, []string{"Drama", "Action"}, slice.RankByFrequency(input, 2))
	assert.Empty(t, slice.RankByFrequency([]string{}, 12))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, slice.Unique([]int{3, 1, 3, 2, 1}))
}
