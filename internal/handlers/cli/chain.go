package cli

import (
	"context"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// gasCommand returns a CLI command that prints the gas oracle.
//
// Usage example:
//
//	chainscope gas
func gasCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "gas",
		Description: "Print the current safe, proposed and fast gas prices in gwei.",
		Usage:       "Shows the gas oracle.",
		Action: func(ctx context.Context, c *cli.Command) error {
			gp, err := svc.GetGasOracle(ctx)
			if err != nil {
				return err
			}

			return writeJSON(c, gp)
		},
	}
}

// ensCommand returns a CLI command that prints the primary ENS name of an address.
//
// Usage example:
//
//	chainscope ens --address 0xABC123...
func ensCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "ens",
		Description: "Print the primary ENS name of an address, verified against its forward record.",
		Usage:       "Shows the ENS name of an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			name, found, err := svc.GetENSName(ctx, address)
			if err != nil {
				return err
			}

			return writeJSON(c, struct {
				Address string `json:"address"`
				Name    string `json:"name,omitempty"`
				Found   bool   `json:"found"`
			}{
				Address: address,
				Name:    name,
				Found:   found,
			})
		},
	}
}
