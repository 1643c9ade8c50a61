package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, sub Submission, userAgent string) (*Message, error) {
	const q = `
insert into contact_messages (name, email, subject, message, user_agent)
values ($1, $2, $3, $4, $5)
returning id, name, email, subject, message, user_agent, is_read, is_spam, created_at;
`
	var m Message
	err := r.db.QueryRow(ctx, q, sub.Name, sub.Email, sub.Subject, sub.Message, userAgent).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.UserAgent, &m.Read, &m.Spam, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListOptions filters the admin inbox. Nil flags mean "either".
type ListOptions struct {
	Read   *bool
	Spam   *bool
	Limit  int
	Offset int
}

func (r *Repo) List(ctx context.Context, opt ListOptions) ([]Message, int64, error) {
	if opt.Limit <= 0 || opt.Limit > 100 {
		opt.Limit = 50
	}
	if opt.Offset < 0 {
		opt.Offset = 0
	}

	// COUNT(*) OVER() returns the unpaginated total alongside each row.
	const q = `
select id, name, email, subject, message, user_agent, is_read, is_spam, created_at,
       count(*) over() as total
from contact_messages
where ($1::boolean is null or is_read = $1)
  and ($2::boolean is null or is_spam = $2)
order by created_at desc
limit $3 offset $4;
`
	rows, err := r.db.Query(ctx, q, opt.Read, opt.Spam, opt.Limit, opt.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Message, 0, opt.Limit)
	var total int64
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body,
			&m.UserAgent, &m.Read, &m.Spam, &m.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *Repo) SetRead(ctx context.Context, id string, read bool) (bool, error) {
	const q = `
update contact_messages
set is_read = $2
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id, read)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) SetSpam(ctx context.Context, id string, spam bool) (bool, error) {
	const q = `
update contact_messages
set is_spam = $2
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id, spam)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
