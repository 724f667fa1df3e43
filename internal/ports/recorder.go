package ports

import (
	"context"

	"github.com/dmarban/solagent/internal/domain"
)

// ActivityRecorder persists the audit trail beyond the in-memory bounded
// log. The controller treats it as optional: a nil recorder disables
// persistence and recorder errors are logged, never fatal.
type ActivityRecorder interface {
	// RecordActivity appends one activity for the agent.
	RecordActivity(ctx context.Context, agentID string, act domain.Activity) error

	// RecordTrade appends one settled trade.
	RecordTrade(ctx context.Context, trade domain.Trade) error
}
