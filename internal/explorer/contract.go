package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/chainscope/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
)

// errNoABISource is returned when the service was built without ABI sources.
var errNoABISource = errors.New("no ABI source configured")

// resolveABI walks the ABI sources in order and returns the first ABI found.
// Failures of all but the last source are logged and dropped; the last
// failure is returned prefixed with the name of the source that produced it.
func (s *service) resolveABI(ctx context.Context, address common.Address) (string, error) {
	if len(s.abiSources) == 0 {
		return "", errNoABISource
	}

	var lastErr error
	for _, source := range s.abiSources {
		abiJSON, err := source.FetchABI(ctx, address)
		if err == nil {
			logger.Debug(ctx, "abi resolved", "source", source.Name(), "address", address.Hex())
			return abiJSON, nil
		}

		logger.Debug(ctx, "abi source failed", "source", source.Name(), "address", address.Hex(), "error", err)
		lastErr = fmt.Errorf("%s: %w", source.Name(), err)
	}

	return "", lastErr
}

// ResolveABI returns the ABI of the contract at address from the first ABI
// source that has it.
func (s *service) ResolveABI(ctx context.Context, address string) (abiJSON string, err error) {
	ctx, end := s.instrument(ctx, "ResolveABI", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return "", fmt.Errorf("failed to resolve contract ABI: %w", err)
	}

	abiJSON, err = s.resolveABI(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("failed to resolve contract ABI: %w", err)
	}

	return abiJSON, nil
}

// GetContractABI resolves the ABI of address and, when the contract turns out
// to be a proxy, resolves and returns the ABI of its implementation instead.
// The proxy's own ABI is discarded in that case.
func (s *service) GetContractABI(ctx context.Context, address string) (abiJSON string, err error) {
	ctx, end := s.instrument(ctx, "GetContractABI", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return "", fmt.Errorf("failed to get contract ABI: %w", err)
	}

	abiJSON, err = s.resolveABI(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("failed to get contract ABI: %w", err)
	}

	impl, found, err := s.detectImplementation(ctx, addr, abiJSON)
	if err != nil {
		return "", fmt.Errorf("failed to get contract ABI: %w", err)
	}

	if !found {
		return abiJSON, nil
	}

	logger.Info(ctx, "proxy contract detected", "proxy", addr.Hex(), "implementation", impl.Hex())

	abiJSON, err = s.resolveABI(ctx, impl)
	if err != nil {
		return "", fmt.Errorf("failed to get contract ABI: implementation %s: %w", impl.Hex(), err)
	}

	return abiJSON, nil
}

// GetContractSourceCode returns the verified source of the contract at address.
func (s *service) GetContractSourceCode(ctx context.Context, address string) (src ContractSource, err error) {
	ctx, end := s.instrument(ctx, "GetContractSourceCode", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return ContractSource{}, fmt.Errorf("failed to get contract code: %w", err)
	}

	src, err = s.explorer.SourceCode(ctx, addr)
	if err != nil {
		return ContractSource{}, fmt.Errorf("failed to get contract code: %w", err)
	}

	return src, nil
}
