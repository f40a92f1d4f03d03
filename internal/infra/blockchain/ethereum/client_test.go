package ethereum

import (
	"testing"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("returns valid ethereum client with jsonrpc mock", func(t *testing.T) {
		mockConn := new(connMock)
		c := NewClient(mockConn)

		assert.NotNil(t, c, "NewClient should not return nil")
		assert.Equal(t, mockConn, c.conn, "conn field should be assigned correctly")

		// Compile-time interface check
		var _ explorer.ContractCaller = c
	})
}
