package etherscan

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strconv"

	"github.com/gabapcia/chainscope/internal/explorer"
	"github.com/gabapcia/chainscope/internal/pkg/units"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// TransactionResponse is a row of the account/txlist action.
	TransactionResponse struct {
		BlockNumber string `json:"blockNumber"`
		TimeStamp   string `json:"timeStamp"`
		Hash        string `json:"hash"`
		From        string `json:"from"`
		To          string `json:"to"`
		Value       string `json:"value"`
		IsError     string `json:"isError"`
	}

	// TokenTransferResponse is a row of the account/tokentx action.
	TokenTransferResponse struct {
		BlockNumber     string `json:"blockNumber"`
		TimeStamp       string `json:"timeStamp"`
		Hash            string `json:"hash"`
		From            string `json:"from"`
		To              string `json:"to"`
		Value           string `json:"value"`
		ContractAddress string `json:"contractAddress"`
		TokenName       string `json:"tokenName"`
		TokenSymbol     string `json:"tokenSymbol"`
		TokenDecimal    string `json:"tokenDecimal"`
	}
)

// recipient substitutes the contract creation marker for an empty recipient.
func recipient(to string) string {
	if to == "" {
		return explorer.ContractCreation
	}
	return to
}

// parseUint decodes a numeric field, reading anything unparsable as zero.
func parseUint(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}

// toExplorerTransaction converts the row into an explorer.Transaction with the value in ether.
func (t TransactionResponse) toExplorerTransaction() (explorer.Transaction, error) {
	value, err := units.FormatAmount(t.Value, units.EtherDecimals)
	if err != nil {
		return explorer.Transaction{}, fmt.Errorf("%w: transaction %s value: %v", explorer.ErrMalformedRecord, t.Hash, err)
	}

	return explorer.Transaction{
		Hash:        t.Hash,
		From:        t.From,
		To:          recipient(t.To),
		Value:       value,
		Timestamp:   int64(parseUint(t.TimeStamp)),
		BlockNumber: parseUint(t.BlockNumber),
		Failed:      t.IsError == "1",
	}, nil
}

// toExplorerTokenTransfer converts the row into an explorer.TokenTransfer with
// the value scaled by the token decimals.
func (t TokenTransferResponse) toExplorerTokenTransfer() (explorer.TokenTransfer, error) {
	decimals, err := strconv.Atoi(t.TokenDecimal)
	if err != nil {
		return explorer.TokenTransfer{}, fmt.Errorf("%w: transfer %s token decimals %q", explorer.ErrMalformedRecord, t.Hash, t.TokenDecimal)
	}

	value, err := units.FormatAmount(t.Value, decimals)
	if err != nil {
		return explorer.TokenTransfer{}, fmt.Errorf("%w: transfer %s value: %v", explorer.ErrMalformedRecord, t.Hash, err)
	}

	return explorer.TokenTransfer{
		Hash:        t.Hash,
		Token:       t.ContractAddress,
		TokenName:   t.TokenName,
		TokenSymbol: t.TokenSymbol,
		From:        t.From,
		To:          recipient(t.To),
		Value:       value,
		Timestamp:   int64(parseUint(t.TimeStamp)),
		BlockNumber: parseUint(t.BlockNumber),
	}, nil
}

// historyParams builds the query of a paginated account action, newest first.
func historyParams(action string, address common.Address, limit int) url.Values {
	return url.Values{
		"module":     {"account"},
		"action":     {action},
		"address":    {address.Hex()},
		"startblock": {"0"},
		"endblock":   {"99999999"},
		"page":       {"1"},
		"offset":     {strconv.Itoa(limit)},
		"sort":       {"desc"},
	}
}

// Balance implements explorer.Explorer.
func (c *client) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	params := url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address.Hex()},
		"tag":     {"latest"},
	}

	var result string
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	wei, ok := new(big.Int).SetString(result, 10)
	if !ok {
		return nil, fmt.Errorf("%w: balance %q", explorer.ErrMalformedRecord, result)
	}

	return wei, nil
}

// Transactions implements explorer.Explorer.
func (c *client) Transactions(ctx context.Context, address common.Address, limit int) ([]explorer.Transaction, error) {
	var rows []TransactionResponse
	if err := c.get(ctx, historyParams("txlist", address, limit), &rows); err != nil {
		return nil, err
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}

	txs := make([]explorer.Transaction, len(rows))
	for i, row := range rows {
		tx, err := row.toExplorerTransaction()
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	return txs, nil
}

// TokenTransfers implements explorer.Explorer.
func (c *client) TokenTransfers(ctx context.Context, address common.Address, limit int) ([]explorer.TokenTransfer, error) {
	var rows []TokenTransferResponse
	if err := c.get(ctx, historyParams("tokentx", address, limit), &rows); err != nil {
		return nil, err
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}

	transfers := make([]explorer.TokenTransfer, len(rows))
	for i, row := range rows {
		transfer, err := row.toExplorerTokenTransfer()
		if err != nil {
			return nil, err
		}
		transfers[i] = transfer
	}

	return transfers, nil
}
