package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address    string
		normalized string
	}{
		{
			address:    "0xAbCdEf0123",
			normalized: "0xabcdef0123",
		},
		{
			address:    "0xabc",
			normalized: "0xabc",
		},
		{
			address:    "",
			normalized: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.address, func(t *testing.T) {
			assert.Equal(t, tc.normalized, Normalize(tc.address))
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal("0xA", "0xa"))
	assert.True(t, Equal("0xDEADbeef", "0xdeadBEEF"))
	assert.False(t, Equal("0xa", "0xab"))
	assert.False(t, Equal("0xab", "0xa"))
}
