package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// proxyResponse covers both shapes the proxy module answers with: a JSON-RPC
// response relayed from a node, or the regular envelope when Etherscan itself
// rejects the call (bad key, rate limit).
type proxyResponse struct {
	envelope
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CallContract implements explorer.ContractCaller through the proxy/eth_call
// action against the latest block.
func (c *client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	params := url.Values{
		"module": {"proxy"},
		"action": {"eth_call"},
		"to":     {to.Hex()},
		"data":   {hexutil.Encode(data)},
		"tag":    {"latest"},
	}

	status, body, err := c.do(ctx, params)
	if err != nil {
		return nil, err
	}

	var res proxyResponse
	if err := json.Unmarshal(body, &res); err != nil {
		if !isSuccess(status) {
			return nil, fmt.Errorf("%w: unexpected http status %d", explorer.ErrTransport, status)
		}
		return nil, fmt.Errorf("%w: eth_call response: %v", explorer.ErrMalformedRecord, err)
	}

	if res.Error != nil {
		return nil, fmt.Errorf("%w: eth_call: [%d] %s", explorer.ErrUpstream, res.Error.Code, res.Error.Message)
	}

	if res.Status != "" {
		if err := res.envelope.Err(); err != nil {
			return nil, err
		}
	}

	var result string
	if err := json.Unmarshal(res.Result, &result); err != nil {
		if !isSuccess(status) {
			return nil, fmt.Errorf("%w: unexpected http status %d", explorer.ErrTransport, status)
		}
		return nil, fmt.Errorf("%w: eth_call result: %v", explorer.ErrMalformedRecord, err)
	}

	out, err := hexutil.Decode(result)
	if err != nil {
		return nil, fmt.Errorf("%w: eth_call result %q: %v", explorer.ErrMalformedRecord, result, err)
	}

	return out, nil
}
