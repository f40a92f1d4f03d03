// Package explorer is the library surface of chainscope. It validates caller
// input, delegates to a block-explorer backend, an ordered chain of ABI
// sources and a contract caller, and returns typed results.
//
// Every public operation performs its network calls sequentially and keeps no
// state between invocations.
package explorer

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ContractCreation replaces the recipient of a transaction that deployed a contract.
const ContractCreation = "Contract Creation"

// DefaultLimit is the number of history entries callers usually ask for.
const DefaultLimit = 10

var (
	// ErrInvalidAddress is returned when an address string fails format or checksum validation.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrTransport is returned when the HTTP exchange itself fails.
	ErrTransport = errors.New("transport error")

	// ErrUpstream is returned when a provider reports a logical failure.
	ErrUpstream = errors.New("upstream error")

	// ErrMalformedRecord is returned when a response does not have the expected shape.
	ErrMalformedRecord = errors.New("malformed record")
)

type (
	// Transaction is a native-currency transaction touching an address.
	Transaction struct {
		Hash        string `json:"hash"`
		From        string `json:"from"`
		To          string `json:"to"`
		Value       string `json:"value"` // ether, decimal string
		Timestamp   int64  `json:"timestamp"`
		BlockNumber uint64 `json:"blockNumber"`
		Failed      bool   `json:"failed,omitempty"` // reverted on chain
	}

	// TokenTransfer is an ERC-20 transfer touching an address.
	TokenTransfer struct {
		Hash        string `json:"hash"`
		Token       string `json:"token"`
		TokenName   string `json:"tokenName"`
		TokenSymbol string `json:"tokenSymbol"`
		From        string `json:"from"`
		To          string `json:"to"`
		Value       string `json:"value"` // scaled by the token's decimals
		Timestamp   int64  `json:"timestamp"`
		BlockNumber uint64 `json:"blockNumber"`
	}

	// GasPrice holds the gas oracle tiers, in gwei.
	GasPrice struct {
		SafeGwei       string `json:"safeGwei"`
		ProposeGwei    string `json:"proposeGwei"`
		FastGwei       string `json:"fastGwei"`
		SuggestBaseFee string `json:"suggestBaseFee,omitempty"`
		LastBlock      uint64 `json:"lastBlock,omitempty"`
	}

	// Balance is the native-currency balance of an address.
	Balance struct {
		Address string   `json:"address"` // EIP-55 checksum form
		Wei     *big.Int `json:"wei"`
		Ether   string   `json:"ether"`
	}

	// ContractSource is the verified source code of a contract as published by the explorer.
	ContractSource struct {
		SourceCode       string `json:"sourceCode"`
		ContractName     string `json:"contractName"`
		CompilerVersion  string `json:"compilerVersion"`
		OptimizationUsed bool   `json:"optimizationUsed"`
		Runs             uint64 `json:"runs"`
		EVMVersion       string `json:"evmVersion"`
		LicenseType      string `json:"licenseType"`
		Proxy            bool   `json:"proxy"`
		Implementation   string `json:"implementation,omitempty"`
	}
)

// Explorer is the block-explorer backend (Etherscan or a compatible API).
type Explorer interface {
	// Balance returns the balance of address in wei.
	Balance(ctx context.Context, address common.Address) (*big.Int, error)

	// Transactions returns at most limit native transactions, newest first.
	Transactions(ctx context.Context, address common.Address, limit int) ([]Transaction, error)

	// TokenTransfers returns at most limit ERC-20 transfers, newest first.
	TokenTransfers(ctx context.Context, address common.Address, limit int) ([]TokenTransfer, error)

	// GasOracle returns the current gas price tiers.
	GasOracle(ctx context.Context) (GasPrice, error)

	// SourceCode returns the verified source of the contract at address.
	SourceCode(ctx context.Context, address common.Address) (ContractSource, error)
}

// ABISource is a registry able to return the ABI of a verified contract.
type ABISource interface {
	// Name identifies the source in logs and errors.
	Name() string

	// FetchABI returns the contract ABI as a JSON string.
	FetchABI(ctx context.Context, address common.Address) (string, error)
}

// ContractCaller executes read-only calls against a live chain.
type ContractCaller interface {
	// CallContract runs an eth_call against the latest block and returns the raw output.
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}
