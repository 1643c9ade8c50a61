package portfolio

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `
id, name, description, url, image_url, technologies, category,
featured, is_active, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.URL, &p.ImageURL,
		&p.Technologies, &p.Category, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where is_active = true
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Create(ctx context.Context, in ProjectInput) (*Project, error) {
	const q = `
insert into projects (name, description, url, image_url, technologies, category, featured)
values ($1, $2, $3, $4, $5, $6, $7)
returning ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.URL, in.ImageURL, in.Technologies, in.Category, in.Featured))
	if err != nil {
		return nil, mapProjectUniqueErr(err)
	}
	return p, nil
}

func (r *ProjectRepo) Update(ctx context.Context, id string, in ProjectInput) (*Project, error) {
	const q = `
update projects
set name = $2, description = $3, url = $4, image_url = $5,
    technologies = $6, category = $7, featured = $8, updated_at = now()
where id = $1::uuid and is_active = true
returning ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, id,
		in.Name, in.Description, in.URL, in.ImageURL, in.Technologies, in.Category, in.Featured))
	if err != nil {
		return nil, mapProjectUniqueErr(err)
	}
	return p, nil
}

// SoftDelete clears the active flag. Deleting an already-inactive project
// still reports success; only a missing row is an error for the caller.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	const q = `
update projects
set is_active = false, updated_at = now()
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// mapProjectUniqueErr turns the partial unique indexes on active projects
// into field-level validation errors.
func mapProjectUniqueErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "projects_active_name_key":
			return validate.Errorf("name", "A project with this name already exists")
		case "projects_active_url_key":
			return validate.Errorf("url", "A project with this URL already exists")
		}
	}
	return err
}
