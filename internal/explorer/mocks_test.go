package explorer

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
)

type explorerMock struct {
	mock.Mock
}

func newExplorerMock(t *testing.T) *explorerMock {
	m := new(explorerMock)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *explorerMock) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	args := m.Called(ctx, address)
	wei, _ := args.Get(0).(*big.Int)
	return wei, args.Error(1)
}

func (m *explorerMock) Transactions(ctx context.Context, address common.Address, limit int) ([]Transaction, error) {
	args := m.Called(ctx, address, limit)
	txs, _ := args.Get(0).([]Transaction)
	return txs, args.Error(1)
}

func (m *explorerMock) TokenTransfers(ctx context.Context, address common.Address, limit int) ([]TokenTransfer, error) {
	args := m.Called(ctx, address, limit)
	transfers, _ := args.Get(0).([]TokenTransfer)
	return transfers, args.Error(1)
}

func (m *explorerMock) GasOracle(ctx context.Context) (GasPrice, error) {
	args := m.Called(ctx)
	return args.Get(0).(GasPrice), args.Error(1)
}

func (m *explorerMock) SourceCode(ctx context.Context, address common.Address) (ContractSource, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(ContractSource), args.Error(1)
}

type abiSourceMock struct {
	mock.Mock
	name string
}

func newABISourceMock(t *testing.T, name string) *abiSourceMock {
	m := &abiSourceMock{name: name}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *abiSourceMock) Name() string { return m.name }

func (m *abiSourceMock) FetchABI(ctx context.Context, address common.Address) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

type callerMock struct {
	mock.Mock
}

func newCallerMock(t *testing.T) *callerMock {
	m := new(callerMock)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *callerMock) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	args := m.Called(ctx, to, data)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

// selector returns the calldata of a zero-argument function.
func selector(name string) []byte {
	return crypto.Keccak256([]byte(name + "()"))[:4]
}

// encodeAddress returns addr as a single ABI-encoded word.
func encodeAddress(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

// accessorABI builds an ABI declaring one zero-argument, address-returning view per name.
func accessorABI(names ...string) string {
	entries := make([]string, len(names))
	for i, name := range names {
		entries[i] = fmt.Sprintf(
			`{"type":"function","name":%q,"stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}`,
			name,
		)
	}

	return "[" + strings.Join(entries, ",") + "]"
}
