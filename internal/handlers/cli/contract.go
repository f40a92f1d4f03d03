package cli

import (
	"context"
	"encoding/json"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// abiCommand returns a CLI command that prints the ABI of a contract.
//
// Usage example:
//
//	chainscope abi --address 0xABC123... [--no-proxy]
func abiCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "abi",
		Description: "Print the ABI of a verified contract. Proxies are followed to their implementation unless --no-proxy is set.",
		Usage:       "Shows the ABI of a contract.",
		Flags: []cli.Flag{
			addressFlag(),
			&cli.BoolFlag{
				Name:  "no-proxy",
				Usage: "Return the contract's own ABI without proxy detection",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			var (
				abiJSON string
				err     error
			)
			if c.Bool("no-proxy") {
				abiJSON, err = svc.ResolveABI(ctx, address)
			} else {
				abiJSON, err = svc.GetContractABI(ctx, address)
			}
			if err != nil {
				return err
			}

			return writeJSON(c, json.RawMessage(abiJSON))
		},
	}
}

// proxyCommand returns a CLI command that prints the implementation behind a proxy contract.
//
// Usage example:
//
//	chainscope proxy --address 0xABC123...
func proxyCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "proxy",
		Description: "Call the implementation accessors of a contract and print the implementation address, if any.",
		Usage:       "Shows the implementation of a proxy contract.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			abiJSON, err := svc.ResolveABI(ctx, address)
			if err != nil {
				return err
			}

			impl, found, err := svc.DetectImplementation(ctx, address, abiJSON)
			if err != nil {
				return err
			}

			out := struct {
				Address        string `json:"address"`
				Proxy          bool   `json:"proxy"`
				Implementation string `json:"implementation,omitempty"`
			}{
				Address: address,
				Proxy:   found,
			}
			if found {
				out.Implementation = impl.Hex()
			}

			return writeJSON(c, out)
		},
	}
}

// sourceCommand returns a CLI command that prints the verified source of a contract.
//
// Usage example:
//
//	chainscope source --address 0xABC123...
func sourceCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "source",
		Description: "Print the verified source code and compiler settings of a contract.",
		Usage:       "Shows the source code of a contract.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			src, err := svc.GetContractSourceCode(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return writeJSON(c, src)
		},
	}
}
