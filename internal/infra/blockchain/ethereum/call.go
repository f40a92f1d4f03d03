package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/chainscope/internal/explorer"
	transporthttp "github.com/gabapcia/chainscope/internal/pkg/transport/http"
	"github.com/gabapcia/chainscope/internal/pkg/transport/jsonrpc"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallRequest is the transaction object of an eth_call request.
type CallRequest struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// CallContract implements the explorer.ContractCaller interface.
// It runs eth_call against the latest block and decodes the hex output.
//
// Errors reported by the node are mapped to explorer.ErrUpstream; any other
// failure of the exchange is mapped to explorer.ErrTransport.
func (c *client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	req := CallRequest{
		To:   to.Hex(),
		Data: hexutil.Encode(data),
	}

	raw, err := c.conn.Fetch(ctx, "eth_call", req, "latest")
	if err != nil {
		if errors.Is(err, jsonrpc.ErrProviderReturnedError) {
			return nil, fmt.Errorf("%w: eth_call: %v", explorer.ErrUpstream, err)
		}
		return nil, fmt.Errorf("%w: eth_call: %v", explorer.ErrTransport, transporthttp.StripURL(err))
	}

	var out hexutil.Bytes
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: eth_call result: %v", explorer.ErrMalformedRecord, err)
	}

	return out, nil
}
