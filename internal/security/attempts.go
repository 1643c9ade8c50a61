package security

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptRepo records login attempts so repeated failures from one address
// can trigger a block.
type AttemptRepo struct {
	db *pgxpool.Pool
}

func NewAttemptRepo(db *pgxpool.Pool) *AttemptRepo {
	return &AttemptRepo{db: db}
}

func (r *AttemptRepo) Record(ctx context.Context, email, ip string, success bool) error {
	const q = `
insert into login_attempts (email, ip, success)
values ($1, $2, $3);
`
	_, err := r.db.Exec(ctx, q, email, ip, success)
	return err
}

// CountRecentFailures returns the number of failed attempts from ip inside
// the trailing window.
func (r *AttemptRepo) CountRecentFailures(ctx context.Context, ip string, window time.Duration) (int, error) {
	const q = `
select count(*)
from login_attempts
where ip = $1 and success = false and created_at > now() - make_interval(secs => $2);
`
	var n int
	err := r.db.QueryRow(ctx, q, ip, window.Seconds()).Scan(&n)
	return n, err
}

// PurgeOlderThan drops attempt rows past the retention horizon.
func (r *AttemptRepo) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	const q = `
delete from login_attempts
where created_at < now() - make_interval(secs => $1);
`
	ct, err := r.db.Exec(ctx, q, age.Seconds())
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
