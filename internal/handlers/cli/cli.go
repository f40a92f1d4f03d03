package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the chainscope CLI application.
//
// It registers all available commands:
//
//   - `balance`: Native-currency balance of an address.
//   - `txs`: Latest transactions of an address.
//   - `tokens`: Latest ERC-20 transfers of an address.
//   - `abi`: Contract ABI, following proxies to their implementation.
//   - `proxy`: Implementation address behind a proxy contract.
//   - `source`: Verified source code of a contract.
//   - `gas`: Current gas price tiers.
//   - `ens`: Primary ENS name of an address.
//
// Every command prints its result as indented JSON on standard output.
func Run(ctx context.Context, svc explorer.Service) error {
	return newApp(svc).Run(ctx, os.Args)
}

// newApp builds the root command.
func newApp(svc explorer.Service) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "chainscope",
		Description:           "Command-line client for block explorer and contract metadata lookups.",
		Usage:                 "chainscope [command] [flags]",
		Commands: []*cli.Command{
			balanceCommand(svc),
			transactionsCommand(svc),
			tokenTransfersCommand(svc),
			abiCommand(svc),
			proxyCommand(svc),
			sourceCommand(svc),
			gasCommand(svc),
			ensCommand(svc),
		},
	}
}

// addressFlag is the required --address flag shared by the address-scoped commands.
func addressFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "address",
		Usage:    "Account or contract address (0x-prefixed, 40 hex digits)",
		Required: true,
	}
}

// writeJSON prints v as indented JSON to the root command's writer.
func writeJSON(c *cli.Command, v any) error {
	var w io.Writer = os.Stdout
	if root := c.Root(); root.Writer != nil {
		w = root.Writer
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
