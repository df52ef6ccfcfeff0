package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageWindow_Invariants(t *testing.T) {
	for totalPages := 1; totalPages <= 15; totalPages++ {
		for current := 1; current <= totalPages; current++ {
			t.Run(fmt.Sprintf("total=%d/current=%d", totalPages, current), func(t *testing.T) {
				window := PageWindow(current, totalPages)

				want := windowSize
				if totalPages < want {
					want = totalPages
				}
				require.Len(t, window, want)

				for i, page := range window {
					assert.GreaterOrEqual(t, page, 1)
					assert.LessOrEqual(t, page, totalPages)
					if i > 0 {
						assert.Equal(t, window[i-1]+1, page, "window must be contiguous")
					}
				}

				assert.Contains(t, window, current)
			})
		}
	}
}

func TestPageWindow_Clamping(t *testing.T) {
	testCases := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"Centered", 6, 12, []int{4, 5, 6, 7, 8}},
		{"TouchesStart", 1, 12, []int{1, 2, 3, 4, 5}},
		{"NearStart", 2, 12, []int{1, 2, 3, 4, 5}},
		{"TouchesEnd", 12, 12, []int{8, 9, 10, 11, 12}},
		{"NearEnd", 11, 12, []int{8, 9, 10, 11, 12}},
		{"FewerPagesThanWindow", 2, 3, []int{1, 2, 3}},
		{"SinglePage", 1, 1, []int{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageWindow(tc.current, tc.totalPages))
		})
	}
}

func TestPageItems(t *testing.T) {
	page := func(n int) PageItem { return PageItem{Page: n} }
	gap := PageItem{Ellipsis: true}

	testCases := []struct {
		name       string
		current    int
		totalPages int
		want       []PageItem
	}{
		{"NoPagerForSinglePage", 1, 1, nil},
		{"NoPagerForZeroPages", 1, 0, nil},
		{"AllPagesVisible", 2, 5, []PageItem{page(1), page(2), page(3), page(4), page(5)}},
		{
			"GapsBothSides", 5, 10,
			[]PageItem{page(1), gap, page(3), page(4), page(5), page(6), page(7), gap, page(10)},
		},
		{
			"WindowTouchesStart", 1, 10,
			[]PageItem{page(1), page(2), page(3), page(4), page(5), gap, page(10)},
		},
		{
			"WindowTouchesEnd", 10, 10,
			[]PageItem{page(1), gap, page(6), page(7), page(8), page(9), page(10)},
		},
		{
			"AdjacentLastNeedsNoGap", 4, 6,
			[]PageItem{page(1), page(2), page(3), page(4), page(5), page(6)},
		},
		{
			"AdjacentFirstNeedsNoGap", 4, 7,
			[]PageItem{page(1), page(2), page(3), page(4), page(5), page(6), page(7)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageItems(tc.current, tc.totalPages))
		})
	}
}
