package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/chainscope/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
)

// implementationAccessors lists the zero-argument functions through which
// proxy contracts expose their implementation address, in probing order.
var implementationAccessors = [...]string{
	"implementation",           // OpenZeppelin transparent and UUPS proxies
	"_implementation",
	"getImplementation",
	"getImplementationAddress",
}

// errNotAnAddress is returned by callAccessor when the accessor output is not a usable address.
var errNotAnAddress = errors.New("accessor did not return an address")

// detectImplementation scans implementationAccessors in order and returns the
// first address one of them yields, the zero address included. A failing
// accessor is logged and skipped. The only error returned is for an ABI that
// does not parse.
func (s *service) detectImplementation(ctx context.Context, proxy common.Address, abiJSON string) (common.Address, bool, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return common.Address{}, false, fmt.Errorf("%w: contract ABI: %v", ErrMalformedRecord, err)
	}

	for _, name := range implementationAccessors {
		method, ok := parsed.Methods[name]
		if !ok || len(method.Inputs) != 0 {
			continue
		}

		impl, err := s.callAccessor(ctx, proxy, parsed, method)
		if err != nil {
			logger.Warn(ctx, "implementation accessor failed",
				"proxy", proxy.Hex(),
				"accessor", name,
				"error", err,
			)
			continue
		}

		return impl, true, nil
	}

	logger.Debug(ctx, "no implementation address found", "proxy", proxy.Hex())
	return common.Address{}, false, nil
}

// callAccessor calls method on proxy and decodes its first output as an address.
func (s *service) callAccessor(ctx context.Context, proxy common.Address, parsed abi.ABI, method abi.Method) (common.Address, error) {
	data, err := parsed.Pack(method.Name)
	if err != nil {
		return common.Address{}, err
	}

	out, err := s.caller.CallContract(ctx, proxy, data)
	if err != nil {
		return common.Address{}, err
	}

	values, err := method.Outputs.Unpack(out)
	if err != nil {
		return common.Address{}, err
	}

	if len(values) == 0 {
		return common.Address{}, errNotAnAddress
	}

	addr, ok := asAddress(values[0])
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %v", errNotAnAddress, values[0])
	}

	return addr, nil
}

// asAddress accepts an address output or a string output holding a hex address.
func asAddress(v any) (common.Address, bool) {
	switch v := v.(type) {
	case common.Address:
		return v, true
	case string:
		if common.IsHexAddress(v) {
			return common.HexToAddress(v), true
		}
	}

	return common.Address{}, false
}

// DetectImplementation returns the implementation address of the proxy
// contract at address, given the proxy's ABI.
func (s *service) DetectImplementation(ctx context.Context, address, contractABI string) (impl common.Address, found bool, err error) {
	ctx, end := s.instrument(ctx, "DetectImplementation", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to detect implementation: %w", err)
	}

	impl, found, err = s.detectImplementation(ctx, addr, contractABI)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to detect implementation: %w", err)
	}

	return impl, found, nil
}
