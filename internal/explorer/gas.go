package explorer

import (
	"context"
	"fmt"
)

// GetGasOracle returns the current safe, proposed and fast gas prices.
func (s *service) GetGasOracle(ctx context.Context) (gp GasPrice, err error) {
	ctx, end := s.instrument(ctx, "GetGasOracle")
	defer func() { end(err) }()

	gp, err = s.explorer.GasOracle(ctx)
	if err != nil {
		return GasPrice{}, fmt.Errorf("failed to get gas prices: %w", err)
	}

	return gp, nil
}
