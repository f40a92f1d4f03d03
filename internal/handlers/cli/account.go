package cli

import (
	"context"

	"github.com/gabapcia/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// limitFlag is the --limit flag of the history commands.
func limitFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of entries to return (1-10000)",
		Value: explorer.DefaultLimit,
	}
}

// balanceCommand returns a CLI command that prints the balance of an address.
//
// Usage example:
//
//	chainscope balance --address 0xABC123...
func balanceCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "balance",
		Description: "Print the native-currency balance of an address, in wei and ether.",
		Usage:       "Shows the balance of an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			balance, err := svc.GetBalance(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return writeJSON(c, balance)
		},
	}
}

// transactionsCommand returns a CLI command that prints the latest transactions of an address.
//
// Usage example:
//
//	chainscope txs --address 0xABC123... --limit 5
func transactionsCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "txs",
		Description: "Print the latest native-currency transactions of an address, newest first.",
		Usage:       "Shows the transaction history of an address.",
		Flags:       []cli.Flag{addressFlag(), limitFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			txs, err := svc.GetTransactionHistory(ctx, c.String("address"), c.Int("limit"))
			if err != nil {
				return err
			}

			return writeJSON(c, txs)
		},
	}
}

// tokenTransfersCommand returns a CLI command that prints the latest ERC-20 transfers of an address.
//
// Usage example:
//
//	chainscope tokens --address 0xABC123... --limit 5
func tokenTransfersCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "tokens",
		Description: "Print the latest ERC-20 token transfers of an address, newest first.",
		Usage:       "Shows the token transfer history of an address.",
		Flags:       []cli.Flag{addressFlag(), limitFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			transfers, err := svc.GetTokenTransfers(ctx, c.String("address"), c.Int("limit"))
			if err != nil {
				return err
			}

			return writeJSON(c, transfers)
		},
	}
}
