// Package units converts integer amounts expressed in a token's smallest unit
// into human-readable decimal strings.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimals of the native currency (wei per ether).
const EtherDecimals = 18

// maxDecimals bounds the scale accepted by FormatUnits; ERC-20 stores decimals as uint8.
const maxDecimals = 255

var (
	// ErrInvalidAmount is returned when an amount is not a base-10 integer.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDecimals is returned when the decimal count is out of range.
	ErrInvalidDecimals = errors.New("invalid decimals")
)

// FormatUnits renders value scaled down by 10^decimals. The result always
// carries at least one fractional digit and never has trailing zeros beyond
// that, e.g. 10^18 with 18 decimals renders as "1.0" and 15*10^17 as "1.5".
func FormatUnits(value *big.Int, decimals int) (string, error) {
	if decimals < 0 || decimals > maxDecimals {
		return "", fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}

	if value == nil {
		value = new(big.Int)
	}

	s := decimal.NewFromBigInt(value, -int32(decimals)).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s, nil
}

// FormatEther renders a wei amount as ether.
func FormatEther(wei *big.Int) string {
	s, _ := FormatUnits(wei, EtherDecimals)
	return s
}

// ParseAmount parses a base-10 integer amount such as the ones returned by
// block explorers. An empty string is treated as zero.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return v, nil
}

// FormatAmount parses s with ParseAmount and formats it with FormatUnits.
func FormatAmount(s string, decimals int) (string, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return "", err
	}

	return FormatUnits(v, decimals)
}
