package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/chainscope/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.opentelemetry.io/otel/attribute"
)

// ensRegistry is the ENS registry, deployed at the same address on mainnet and its testnets.
var ensRegistry = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// ensABIJSON covers the registry and resolver functions needed for a verified reverse lookup.
const ensABIJSON = `[
	{"type":"function","name":"resolver","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"name","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"addr","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}
]`

var ensABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(ensABIJSON))
	if err != nil {
		panic(err)
	}

	ensABI = parsed
}

// namehash implements the ENS name hashing algorithm (EIP-137).
func namehash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}

	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), label)
	}

	return node
}

// reverseNode returns the node of the reverse record of addr.
func reverseNode(addr common.Address) common.Hash {
	return namehash(strings.ToLower(addr.Hex()[2:]) + ".addr.reverse")
}

// errEmptyOutput is returned by callENS when the called contract returned no data.
var errEmptyOutput = errors.New("empty call output")

// callENS invokes method(node) on contract and returns its single output.
func (s *service) callENS(ctx context.Context, contract common.Address, method string, node common.Hash) (any, error) {
	data, err := ensABI.Pack(method, [32]byte(node))
	if err != nil {
		return nil, err
	}

	out, err := s.caller.CallContract(ctx, contract, data)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: ens %s: %w", ErrMalformedRecord, method, errEmptyOutput)
	}

	values, err := ensABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%w: ens %s: %v", ErrMalformedRecord, method, err)
	}

	return values[0], nil
}

// resolverOf returns the resolver registered for node, or the zero address.
func (s *service) resolverOf(ctx context.Context, node common.Hash) (common.Address, error) {
	v, err := s.callENS(ctx, ensRegistry, "resolver", node)
	if err != nil {
		return common.Address{}, err
	}

	resolver, _ := v.(common.Address)
	return resolver, nil
}

// unanswered reports whether a resolver call failed in a way that means the
// resolver holds no record: a revert or an empty return.
func unanswered(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, errEmptyOutput)
}

// lookupName resolves the primary name of addr and checks that the name
// resolves back to addr. Unverified names are reported as absent.
func (s *service) lookupName(ctx context.Context, addr common.Address) (string, bool, error) {
	node := reverseNode(addr)

	resolver, err := s.resolverOf(ctx, node)
	if err != nil {
		return "", false, err
	}
	if resolver == (common.Address{}) {
		return "", false, nil
	}

	v, err := s.callENS(ctx, resolver, "name", node)
	if unanswered(err) {
		logger.Debug(ctx, "ens resolver has no name record", "resolver", resolver.Hex(), "error", err)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	name, _ := v.(string)
	if name == "" {
		return "", false, nil
	}

	forwardNode := namehash(name)

	forwardResolver, err := s.resolverOf(ctx, forwardNode)
	if err != nil {
		return "", false, err
	}
	if forwardResolver == (common.Address{}) {
		logger.Debug(ctx, "ens name has no forward resolver", "name", name)
		return "", false, nil
	}

	v, err = s.callENS(ctx, forwardResolver, "addr", forwardNode)
	if unanswered(err) {
		logger.Debug(ctx, "ens resolver has no address record", "name", name, "error", err)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if resolved, _ := v.(common.Address); resolved != addr {
		logger.Debug(ctx, "ens name does not resolve back to the address", "name", name, "resolved", resolved.Hex())
		return "", false, nil
	}

	return name, true, nil
}

// GetENSName returns the verified primary ENS name of address.
func (s *service) GetENSName(ctx context.Context, address string) (name string, found bool, err error) {
	ctx, end := s.instrument(ctx, "GetENSName", attribute.String("address", address))
	defer func() { end(err) }()

	addr, err := ParseAddress(address)
	if err != nil {
		return "", false, fmt.Errorf("failed to get ENS name: %w", err)
	}

	name, found, err = s.lookupName(ctx, addr)
	if err != nil {
		return "", false, fmt.Errorf("failed to get ENS name: %w", err)
	}

	return name, found, nil
}
