package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
)

// markerTx only needs identity, none of its methods are called.
type markerTx struct {
	pgx.Tx
	id string
}

func TestGetQuerier_ReturnsAmbientTransaction(t *testing.T) {
	db := &database.DB{}
	tx := markerTx{id: "ambient"}
	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))

	assert.Equal(t, pgx.Tx(tx), GetQuerier(ctx, db))
}

func TestGetQuerier_FallsBackToPool(t *testing.T) {
	db := &database.DB{}

	assert.Equal(t, database.Querier(db.Pool), GetQuerier(context.Background(), db))
}
