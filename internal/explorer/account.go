package explorer

import (
	"context"
	"fmt"

	"github.com/gabapcia/chainscope/internal/pkg/units"
	"github.com/gabapcia/chainscope/internal/pkg/validator"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
)

// historyQuery is the validated input of the history operations. The upper
// bound of Limit is the largest page the explorer serves.
type historyQuery struct {
	Address common.Address
	Limit   int `validate:"gte=1,lte=10000"`
}

// buildHistoryQuery parses the address and validates the limit.
func buildHistoryQuery(address string, limit int) (historyQuery, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return historyQuery{}, err
	}

	q := historyQuery{
		Address: addr,
		Limit:   limit,
	}

	return q, validator.Validate(q)
}

// GetBalance returns the balance of address both in wei and as an ether decimal string.
func (s *service) GetBalance(ctx context.Context, address string) (b Balance, err error) {
	ctx, end := s.instrument(ctx, "GetBalance", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}

	wei, err := s.explorer.Balance(ctx, addr)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}

	return Balance{
		Address: addr.Hex(),
		Wei:     wei,
		Ether:   units.FormatEther(wei),
	}, nil
}

// GetTransactionHistory returns at most limit transactions of address in the
// order given by the explorer (newest first).
func (s *service) GetTransactionHistory(ctx context.Context, address string, limit int) (txs []Transaction, err error) {
	ctx, end := s.instrument(ctx, "GetTransactionHistory",
		attribute.String("address", address),
		attribute.Int("limit", limit),
	)
	defer func() { end(err) }()

	q, err := buildHistoryQuery(address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}

	txs, err = s.explorer.Transactions(ctx, q.Address, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}

	return truncate(txs, q.Limit), nil
}

// GetTokenTransfers returns at most limit ERC-20 transfers of address in the
// order given by the explorer (newest first).
func (s *service) GetTokenTransfers(ctx context.Context, address string, limit int) (transfers []TokenTransfer, err error) {
	ctx, end := s.instrument(ctx, "GetTokenTransfers",
		attribute.String("address", address),
		attribute.Int("limit", limit),
	)
	defer func() { end(err) }()

	q, err := buildHistoryQuery(address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get token transfers: %w", err)
	}

	transfers, err = s.explorer.TokenTransfers(ctx, q.Address, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get token transfers: %w", err)
	}

	return truncate(transfers, q.Limit), nil
}

// truncate keeps the first limit elements of items.
func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}

	return items
}
