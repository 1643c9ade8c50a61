package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminUser is a row in the admin membership table. The hosted provider
// authenticates; this table decides who is actually allowed in.
type AdminUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is a server-side admin session. Unverified sessions exist between
// login and second-factor confirmation.
type Session struct {
	Token     string    `json:"token"`
	AdminID   uuid.UUID `json:"admin_id"`
	Verified  bool      `json:"two_factor_verified"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotAdmin = errors.New("no active admin membership")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// GetActiveAdminByEmail returns the active membership row for email, or
// ErrNotAdmin when there is none.
func (r *Repo) GetActiveAdminByEmail(ctx context.Context, email string) (*AdminUser, error) {
	const q = `
select id, email, display_name, is_active, created_at
from admin_users
where lower(email) = lower($1) and is_active = true;
`
	var u AdminUser
	err := r.db.QueryRow(ctx, q, email).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotAdmin
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) CreateSession(ctx context.Context, token string, adminID uuid.UUID, verified bool, ttl time.Duration) (*Session, error) {
	const q = `
insert into admin_sessions (token, admin_id, two_factor_verified, expires_at)
values ($1, $2, $3, now() + make_interval(secs => $4))
returning token, admin_id, two_factor_verified, expires_at, created_at;
`
	var s Session
	err := r.db.QueryRow(ctx, q, token, adminID, verified, ttl.Seconds()).
		Scan(&s.Token, &s.AdminID, &s.Verified, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession returns the live session for token; expired or unknown tokens
// both come back as pgx.ErrNoRows.
func (r *Repo) GetSession(ctx context.Context, token string) (*Session, error) {
	const q = `
select token, admin_id, two_factor_verified, expires_at, created_at
from admin_sessions
where token = $1 and expires_at > now();
`
	var s Session
	err := r.db.QueryRow(ctx, q, token).
		Scan(&s.Token, &s.AdminID, &s.Verified, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) MarkSessionVerified(ctx context.Context, token string) (bool, error) {
	const q = `
update admin_sessions
set two_factor_verified = true
where token = $1 and expires_at > now();
`
	ct, err := r.db.Exec(ctx, q, token)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) DeleteSession(ctx context.Context, token string) error {
	const q = `
delete from admin_sessions
where token = $1;
`
	_, err := r.db.Exec(ctx, q, token)
	return err
}

// SweepExpiredSessions removes sessions past their expiry instant.
func (r *Repo) SweepExpiredSessions(ctx context.Context) (int64, error) {
	const q = `
delete from admin_sessions
where expires_at <= now();
`
	ct, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *Repo) GetAdminByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	const q = `
select id, email, display_name, is_active, created_at
from admin_users
where id = $1 and is_active = true;
`
	var u AdminUser
	err := r.db.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotAdmin
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
