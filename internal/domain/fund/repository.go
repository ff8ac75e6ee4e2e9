package fund

import "context"

type Repository interface {
	// Get returns the singleton ledger row without locking it.
	Get(ctx context.Context) (*Ledger, error)
	// GetForUpdate locks the ledger row for the current tx; every
	// balance-changing operation must read it this way.
	GetForUpdate(ctx context.Context) (*Ledger, error)
	Create(ctx context.Context, l *Ledger) error
	Save(ctx context.Context, l *Ledger) error
}
