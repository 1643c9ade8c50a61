package security

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Blocklist manages blocked source addresses. Enforcement happens here on
// the server, not in the caller's hands.
type Blocklist struct {
	db *pgxpool.Pool
}

func NewBlocklist(db *pgxpool.Pool) *Blocklist {
	return &Blocklist{db: db}
}

func (b *Blocklist) IsBlocked(ctx context.Context, ip string) (bool, error) {
	const q = `
select exists (
	select 1 from blocked_ips
	where ip = $1 and expires_at > now()
);
`
	var blocked bool
	err := b.db.QueryRow(ctx, q, ip).Scan(&blocked)
	return blocked, err
}

// Block inserts or refreshes a block for ip. Re-blocking an already blocked
// address extends the expiry.
func (b *Blocklist) Block(ctx context.Context, ip, reason string, duration time.Duration) error {
	const q = `
insert into blocked_ips (ip, reason, expires_at)
values ($1, $2, now() + make_interval(secs => $3))
on conflict (ip) do update
set reason = excluded.reason, expires_at = excluded.expires_at;
`
	_, err := b.db.Exec(ctx, q, ip, reason, duration.Seconds())
	return err
}

// PurgeExpired removes blocks whose expiry has passed.
func (b *Blocklist) PurgeExpired(ctx context.Context) (int64, error) {
	const q = `
delete from blocked_ips
where expires_at <= now();
`
	ct, err := b.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
