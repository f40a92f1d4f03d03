package etherscan

import (
	"context"
	"net/url"

	"github.com/gabapcia/chainscope/internal/explorer"
)

// GasOracleResponse is the result of the gastracker/gasoracle action.
type GasOracleResponse struct {
	LastBlock       string `json:"LastBlock"`
	SafeGasPrice    string `json:"SafeGasPrice"`
	ProposeGasPrice string `json:"ProposeGasPrice"`
	FastGasPrice    string `json:"FastGasPrice"`
	SuggestBaseFee  string `json:"suggestBaseFee"`
}

func (g GasOracleResponse) toExplorerGasPrice() explorer.GasPrice {
	return explorer.GasPrice{
		SafeGwei:       g.SafeGasPrice,
		ProposeGwei:    g.ProposeGasPrice,
		FastGwei:       g.FastGasPrice,
		SuggestBaseFee: g.SuggestBaseFee,
		LastBlock:      parseUint(g.LastBlock),
	}
}

// GasOracle implements explorer.Explorer.
func (c *client) GasOracle(ctx context.Context) (explorer.GasPrice, error) {
	params := url.Values{
		"module": {"gastracker"},
		"action": {"gasoracle"},
	}

	var result GasOracleResponse
	if err := c.get(ctx, params, &result); err != nil {
		return explorer.GasPrice{}, err
	}

	return result.toExplorerGasPrice(), nil
}
