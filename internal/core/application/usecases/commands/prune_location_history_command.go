package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPruneLocationHistoryCommandIsNotConstructed = errors.New(
	"PruneLocationHistoryCommand must be created via NewPruneLocationHistoryCommand constructor",
)

// PruneLocationHistoryCommand requests deletion of location samples older
// than the retention window, across all drivers. The per-driver prune that
// runs with each location report keeps active drivers' trails short; this
// command catches samples of drivers who stopped reporting.
type PruneLocationHistoryCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPruneLocationHistoryCommand creates a command to sweep old location
// samples. retention must be positive.
func NewPruneLocationHistoryCommand(retention time.Duration) (PruneLocationHistoryCommand, error) {
	if retention <= 0 {
		return PruneLocationHistoryCommand{}, errs.NewValueIsInvalidError("retention")
	}

	return PruneLocationHistoryCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PruneLocationHistoryCommand) Validate() error {
	return c.guard.Validate(ErrPruneLocationHistoryCommandIsNotConstructed)
}

// Retention returns how long samples are kept.
func (c PruneLocationHistoryCommand) Retention() time.Duration { return c.retention }
