package cep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"01310-100", "01310100", false},
		{"01310100", "01310100", false},
		{"  01.310-100  ", "01310100", false},
		{"1310100", "", true},
		{"013101000", "", true},
		{"abcdefgh", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCEP, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}
