package mongodb

import (
	"context"

	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"github.com/VishwaPriyan-S/ChitFunds/pkg/mongodb"
)

// UnitOfWork implements repositories.UnitOfWork on top of MongoDB session
// transactions.
type UnitOfWork struct {
	client *mongodb.Client
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(client *mongodb.Client) repositories.UnitOfWork {
	return &UnitOfWork{client: client}
}

// WithinTransaction runs fn inside a single MongoDB transaction. Repository
// calls made with the context handed to fn share the transaction; an error
// from fn aborts it and none of the writes become visible.
func (u *UnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.client.WithTransaction(ctx, fn)
}
