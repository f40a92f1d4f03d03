// Package ethereum implements the explorer.ContractCaller interface for
// Ethereum-compatible nodes using a JSON-RPC client.
package ethereum

import (
	"github.com/gabapcia/chainscope/internal/explorer"
	"github.com/gabapcia/chainscope/internal/pkg/transport/jsonrpc"
)

// client implements the explorer.ContractCaller interface for Ethereum-based networks.
// It communicates with an Ethereum node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
}

// Ensure client implements the explorer.ContractCaller interface at compile time.
var _ explorer.ContractCaller = (*client)(nil)

// NewClient creates a new Ethereum node client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}
