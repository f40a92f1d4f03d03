package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	const checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	t.Run("accepts a checksummed address unchanged", func(t *testing.T) {
		addr, err := ParseAddress(checksummed)
		require.NoError(t, err)
		assert.Equal(t, checksummed, addr.Hex())
	})

	t.Run("is idempotent on canonical input", func(t *testing.T) {
		for _, s := range []string{
			checksummed,
			"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
			"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		} {
			first, err := ParseAddress(s)
			require.NoError(t, err, s)

			second, err := ParseAddress(first.Hex())
			require.NoError(t, err, s)
			assert.Equal(t, first.Hex(), second.Hex(), s)
		}
	})

	t.Run("canonicalises single-case input", func(t *testing.T) {
		for _, s := range []string{
			"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			"0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED",
			"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		} {
			addr, err := ParseAddress(s)
			require.NoError(t, err, s)
			assert.Equal(t, checksummed, addr.Hex(), s)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{
			"",
			"0x",
			"hello",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA",     // too short
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed00", // too long
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeg",   // not hex
			"vitalik.eth",
		} {
			_, err := ParseAddress(s)
			assert.ErrorIs(t, err, ErrInvalidAddress, s)
		}
	})

	t.Run("rejects a mixed-case address with a wrong checksum", func(t *testing.T) {
		_, err := ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD")
		assert.ErrorIs(t, err, ErrInvalidAddress)
		assert.Contains(t, err.Error(), "checksum")
	})
}
