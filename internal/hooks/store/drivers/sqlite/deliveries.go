package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/promptside/hooklistener/internal/hooks/store"
)

type deliveriesRepo struct {
	db *sql.DB
}

func (r *deliveriesRepo) Record(ctx context.Context, d store.Delivery) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO deliveries (uuid, action, received_at) VALUES (?, ?, ?)`,
		d.UUID, d.Action, d.ReceivedAt.UTC(),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrDuplicate
	}
	return nil
}

func (r *deliveriesRepo) Get(ctx context.Context, uuid string) (store.Delivery, error) {
	var d store.Delivery
	err := r.db.QueryRowContext(ctx,
		`SELECT uuid, action, received_at FROM deliveries WHERE uuid = ?`,
		uuid,
	).Scan(&d.UUID, &d.Action, &d.ReceivedAt)
	if err != nil {
		return store.Delivery{}, mapNotFound(err)
	}
	return d, nil
}

func (r *deliveriesRepo) Delete(ctx context.Context, uuid string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM deliveries WHERE uuid = ?`,
		uuid,
	)
	return err
}

func (r *deliveriesRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM deliveries WHERE received_at < ?`,
		cutoff.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
