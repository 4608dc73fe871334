package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// OperatorPair an address the owner allows to act on its accounts
type OperatorPair struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner     string    `sql:"size:64;unique_index:operator_idx" json:"owner"`
	Operator  string    `sql:"size:64;unique_index:operator_idx" json:"operator"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IOperatorStore operator store interface
type IOperatorStore interface {
	Save(ctx context.Context, tx *db.DB, pair *OperatorPair) error
	Delete(ctx context.Context, tx *db.DB, owner, operator string) error
	IsOperator(ctx context.Context, owner, operator string) (bool, error)
}
