// Command chainscope queries a block explorer and contract metadata
// repositories from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/chainscope/internal/config"
	"github.com/gabapcia/chainscope/internal/explorer"
	"github.com/gabapcia/chainscope/internal/handlers/cli"
	"github.com/gabapcia/chainscope/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/chainscope/internal/infra/etherscan"
	"github.com/gabapcia/chainscope/internal/infra/sourcify"
	"github.com/gabapcia/chainscope/internal/pkg/logger"
	"github.com/gabapcia/chainscope/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/chainscope/internal/pkg/transport/http"
	"github.com/gabapcia/chainscope/internal/pkg/transport/jsonrpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "chainscope:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	shutdown := telemetry.ShutdownFunc(telemetry.Noop)
	if cfg.TelemetryEnabled {
		shutdown, err = telemetry.Init(ctx, cfg.ServiceName, telemetryOptions(cfg)...)
		if err != nil {
			return fmt.Errorf("failed to start telemetry: %w", err)
		}
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	return cli.Run(ctx, newService(cfg))
}

// telemetryOptions maps the collector settings onto exporter options.
func telemetryOptions(cfg config.Config) []telemetry.Option {
	var opts []telemetry.Option
	if cfg.OTLPEndpoint != "" {
		opts = append(opts, telemetry.WithEndpoint(cfg.OTLPEndpoint))
	}
	if cfg.OTLPInsecure {
		opts = append(opts, telemetry.WithInsecure())
	}

	return opts
}

// newService wires the explorer service. Contract calls go through the
// explorer's proxy module unless a node endpoint is configured.
func newService(cfg config.Config) explorer.Service {
	httpClient := transporthttp.NewClient()

	etherscanClient := etherscan.NewClient(httpClient, cfg.EtherscanURL, cfg.EtherscanAPIKey, cfg.ChainID)
	sourcifyClient := sourcify.NewClient(httpClient, cfg.SourcifyURL, cfg.ChainID)

	var caller explorer.ContractCaller = etherscanClient
	if cfg.RPCURL != "" {
		caller = ethereum.NewClient(jsonrpc.NewClient(httpClient, cfg.RPCURL))
	}

	return explorer.New(etherscanClient, caller, sourcifyClient, etherscanClient)
}
