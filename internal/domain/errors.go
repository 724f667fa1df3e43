package domain

import "errors"

// Sentinel errors for the lifecycle API. Callers match with errors.Is;
// wrapping sites add context with fmt.Errorf("...: %w", err).
var (
	// ErrAgentNotFound means the agent id is not in the registry.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrWalletNotFound means the public key resolves to no ledger entry.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidStrategy means the strategy configuration is malformed,
	// e.g. an unknown kind or buy threshold >= sell threshold.
	ErrInvalidStrategy = errors.New("invalid strategy config")

	// ErrInsufficientBalance means a trade exceeds the available funds.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrExecutionFailed means the settlement provider rejected the swap.
	ErrExecutionFailed = errors.New("swap execution failed")
)
