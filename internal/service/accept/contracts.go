package accept

import (
	"context"

	"mogilev-express/internal/ports/accepttx"
)

// txRunner abstracts running a function within an acceptance transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx accepttx.Repository) error) error
}

// counter is the subset of prometheus.Counter the service needs.
type counter interface {
	Inc()
}
