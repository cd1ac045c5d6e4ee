package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        Params
	}{
		{"defaults", 0, 0, Params{Page: 1, Limit: DefaultLimit}},
		{"negative", -3, -1, Params{Page: 1, Limit: DefaultLimit}},
		{"over max", 2, 500, Params{Page: 2, Limit: MaxLimit}},
		{"in range", 4, 25, Params{Page: 4, Limit: 25}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.page, tc.limit))
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())

	p = Params{Page: 1, Limit: 100}
	assert.Equal(t, 0, p.Offset())
}

func TestTotalPages(t *testing.T) {
	p := Params{Page: 1, Limit: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 7, p.TotalPages(70))
}
