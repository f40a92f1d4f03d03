package explorer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddress validates s and returns it as an address. s must hold 40 hex
// digits with an optional 0x prefix. All-lowercase and all-uppercase input is
// accepted as is; mixed-case input must match its EIP-55 checksum.
//
// Calling ParseAddress on the Hex() of its own result returns the same address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	addr := common.HexToAddress(s)

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if isMixedCase(digits) && digits != addr.Hex()[2:] {
		return common.Address{}, fmt.Errorf("%w: bad address checksum %q", ErrInvalidAddress, s)
	}

	return addr, nil
}

// isMixedCase reports whether s contains both lower and upper case letters.
func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
