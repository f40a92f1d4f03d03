package explorer

import (
	"context"

	"github.com/gabapcia/chainscope/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName is the OpenTelemetry scope used by this package.
const instrumentationName = "github.com/gabapcia/chainscope/internal/explorer"

// Service defines the operations exposed to callers.
//
// Every method validates its address argument first and fails with
// ErrInvalidAddress without any network call when it is malformed. Failures
// are wrapped with a prefix naming the operation, keeping the original error
// reachable through errors.Is.
type Service interface {
	// GetBalance returns the native-currency balance of address.
	GetBalance(ctx context.Context, address string) (Balance, error)

	// GetTransactionHistory returns the latest limit transactions of address, newest first.
	GetTransactionHistory(ctx context.Context, address string, limit int) ([]Transaction, error)

	// GetTokenTransfers returns the latest limit ERC-20 transfers of address, newest first.
	GetTokenTransfers(ctx context.Context, address string, limit int) ([]TokenTransfer, error)

	// GetContractABI returns the ABI of the contract at address. When the
	// contract is a proxy, the ABI of its implementation is returned instead.
	GetContractABI(ctx context.Context, address string) (string, error)

	// ResolveABI returns the ABI of the contract at address from the first
	// ABI source that has it, without proxy detection.
	ResolveABI(ctx context.Context, address string) (string, error)

	// DetectImplementation calls the accessors of a proxy contract and
	// returns the implementation address. The boolean is false when the
	// contract exposes no usable accessor, which is not an error.
	DetectImplementation(ctx context.Context, address, contractABI string) (common.Address, bool, error)

	// GetGasOracle returns the current gas price tiers.
	GetGasOracle(ctx context.Context) (GasPrice, error)

	// GetENSName returns the primary ENS name of address. The boolean is
	// false when no verified reverse record exists.
	GetENSName(ctx context.Context, address string) (string, bool, error)

	// GetContractSourceCode returns the verified source of the contract at address.
	GetContractSourceCode(ctx context.Context, address string) (ContractSource, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	explorer   Explorer
	caller     ContractCaller
	abiSources []ABISource

	tracer     trace.Tracer
	operations metric.Int64Counter
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a Service backed by the given explorer and contract caller.
// abiSources are consulted in order by ResolveABI; the usual chain is the
// metadata registry followed by the explorer itself.
func New(explorer Explorer, caller ContractCaller, abiSources ...ABISource) *service {
	operations, err := otel.Meter(instrumentationName).Int64Counter(
		"chainscope.explorer.operations",
		metric.WithDescription("Number of explorer operations, by operation and outcome."),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &service{
		explorer:   explorer,
		caller:     caller,
		abiSources: abiSources,
		tracer:     otel.Tracer(instrumentationName),
		operations: operations,
	}
}

// instrument starts a span for operation and returns the derived context and
// a function that ends it, recording the outcome on the span and the
// operations counter.
func (s *service) instrument(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "explorer."+operation, trace.WithAttributes(attrs...))
	ctx = logger.Derive(ctx, "operation", operation)

	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Debug(ctx, "operation failed", "error", err)
		}

		if s.operations != nil {
			s.operations.Add(ctx, 1, metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("outcome", outcome),
			))
		}

		span.End()
	}
}
