package ports

import (
	"context"

	"github.com/dmarban/solagent/internal/domain"
)

// Notifier presents the state of the agent fleet to the operator.
type Notifier interface {
	// Notify renders the fleet, ordered by creation time. The console
	// implementation prints a compact line or a full table.
	Notify(ctx context.Context, agents []domain.Agent) error
}
