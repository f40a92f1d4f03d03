// Package mocks provides testify doubles of the explorer interfaces.
package mocks

import (
	"context"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// Service is a mock of explorer.Service.
type Service struct {
	mock.Mock
}

var _ explorer.Service = (*Service)(nil)

// NewService creates a Service mock whose expectations are asserted when the test ends.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := new(Service)
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Service) GetBalance(ctx context.Context, address string) (explorer.Balance, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(explorer.Balance), args.Error(1)
}

func (m *Service) GetTransactionHistory(ctx context.Context, address string, limit int) ([]explorer.Transaction, error) {
	args := m.Called(ctx, address, limit)
	txs, _ := args.Get(0).([]explorer.Transaction)
	return txs, args.Error(1)
}

func (m *Service) GetTokenTransfers(ctx context.Context, address string, limit int) ([]explorer.TokenTransfer, error) {
	args := m.Called(ctx, address, limit)
	transfers, _ := args.Get(0).([]explorer.TokenTransfer)
	return transfers, args.Error(1)
}

func (m *Service) GetContractABI(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

func (m *Service) ResolveABI(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

func (m *Service) DetectImplementation(ctx context.Context, address, contractABI string) (common.Address, bool, error) {
	args := m.Called(ctx, address, contractABI)
	return args.Get(0).(common.Address), args.Bool(1), args.Error(2)
}

func (m *Service) GetGasOracle(ctx context.Context) (explorer.GasPrice, error) {
	args := m.Called(ctx)
	return args.Get(0).(explorer.GasPrice), args.Error(1)
}

func (m *Service) GetENSName(ctx context.Context, address string) (string, bool, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Service) GetContractSourceCode(ctx context.Context, address string) (explorer.ContractSource, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(explorer.ContractSource), args.Error(1)
}
