package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type SpawnLogRepo struct {
	db *DB
}

func NewSpawnLogRepo(db *DB) *SpawnLogRepo {
	return &SpawnLogRepo{db: db}
}

// WriteSpawns inserts a batch of spawn records in a single transaction.
func (r *SpawnLogRepo) WriteSpawns(ctx context.Context, records []SpawnRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("spawn log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, spawnBatch(records)).Close(); err != nil {
		return fmt.Errorf("spawn log insert: %w", err)
	}
	return tx.Commit(ctx)
}

const insertSpawnSQL = `INSERT INTO spawn_log (tick, entity_id, kind, pos_x, pos_y, pos_z, item_id, item_count, created_at)
 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// spawnBatch queues one insert per record, in record order.
func spawnBatch(records []SpawnRecord) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertSpawnSQL,
			int64(rec.Tick), int64(rec.Entity), rec.Kind, rec.X, rec.Y, rec.Z,
			rec.ItemID, int16(rec.ItemCount), rec.At,
		)
	}
	return batch
}

// CountSince returns how many entities were logged at or after tick.
func (r *SpawnLogRepo) CountSince(ctx context.Context, tick uint64) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM spawn_log WHERE tick >= $1`, int64(tick),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("spawn log count: %w", err)
	}
	return n, nil
}
