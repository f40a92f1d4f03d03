package etherscan

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/ethereum/go-ethereum/common"
)

// SourceCodeResponse is a row of the contract/getsourcecode action.
type SourceCodeResponse struct {
	SourceCode       string `json:"SourceCode"`
	ABI              string `json:"ABI"`
	ContractName     string `json:"ContractName"`
	CompilerVersion  string `json:"CompilerVersion"`
	OptimizationUsed string `json:"OptimizationUsed"`
	Runs             string `json:"Runs"`
	EVMVersion       string `json:"EVMVersion"`
	LicenseType      string `json:"LicenseType"`
	Proxy            string `json:"Proxy"`
	Implementation   string `json:"Implementation"`
}

// toExplorerContractSource converts the row into an explorer.ContractSource.
func (s SourceCodeResponse) toExplorerContractSource() explorer.ContractSource {
	return explorer.ContractSource{
		SourceCode:       s.SourceCode,
		ContractName:     s.ContractName,
		CompilerVersion:  s.CompilerVersion,
		OptimizationUsed: s.OptimizationUsed == "1",
		Runs:             parseUint(s.Runs),
		EVMVersion:       s.EVMVersion,
		LicenseType:      s.LicenseType,
		Proxy:            s.Proxy == "1",
		Implementation:   s.Implementation,
	}
}

// Name implements explorer.ABISource.
func (c *client) Name() string {
	return "etherscan"
}

// FetchABI implements explorer.ABISource using the contract/getabi action.
// Unverified contracts are reported by Etherscan as an upstream failure.
func (c *client) FetchABI(ctx context.Context, address common.Address) (string, error) {
	params := url.Values{
		"module":  {"contract"},
		"action":  {"getabi"},
		"address": {address.Hex()},
	}

	var abiJSON string
	if err := c.get(ctx, params, &abiJSON); err != nil {
		return "", err
	}

	return abiJSON, nil
}

// SourceCode implements explorer.Explorer.
func (c *client) SourceCode(ctx context.Context, address common.Address) (explorer.ContractSource, error) {
	params := url.Values{
		"module":  {"contract"},
		"action":  {"getsourcecode"},
		"address": {address.Hex()},
	}

	var rows []SourceCodeResponse
	if err := c.get(ctx, params, &rows); err != nil {
		return explorer.ContractSource{}, err
	}

	if len(rows) == 0 {
		return explorer.ContractSource{}, fmt.Errorf("%w: empty source code result", explorer.ErrMalformedRecord)
	}

	return rows[0].toExplorerContractSource(), nil
}
