package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Range(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantFrom int
		wantTo   int
	}{
		{"first page", Filter{Page: 1, PageSize: 20}, 0, 19},
		{"third page", Filter{Page: 3, PageSize: 20}, 40, 59},
		{"zero page clamps to first", Filter{Page: 0, PageSize: 20}, 0, 19},
		{"missing size uses default", Filter{Page: 2}, 20, 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.filter.Range()
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)

	empty := NewPaginated([]int{}, 0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}
