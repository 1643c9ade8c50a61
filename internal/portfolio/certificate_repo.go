package portfolio

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CertificateRepo struct {
	db *pgxpool.Pool
}

func NewCertificateRepo(db *pgxpool.Pool) *CertificateRepo {
	return &CertificateRepo{db: db}
}

const certificateColumns = `
id, name, description, image_url, issuer, issue_date, expiry_date,
credential_id, credential_url, is_active, created_at, updated_at`

func scanCertificate(row interface{ Scan(...any) error }) (*Certificate, error) {
	var ct Certificate
	err := row.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.ImageURL, &ct.Issuer,
		&ct.IssueDate, &ct.ExpiryDate, &ct.CredentialID, &ct.CredentialURL,
		&ct.Active, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *CertificateRepo) List(ctx context.Context) ([]Certificate, error) {
	const q = `
select ` + certificateColumns + `
from certificates
where is_active = true
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Certificate, 0, 16)
	for rows.Next() {
		ct, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ct)
	}
	return out, rows.Err()
}

func (r *CertificateRepo) Create(ctx context.Context, in CertificateInput) (*Certificate, error) {
	const q = `
insert into certificates (name, description, image_url, issuer, issue_date,
                          expiry_date, credential_id, credential_url)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning ` + certificateColumns + `;
`
	return scanCertificate(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.ImageURL, in.Issuer,
		in.IssueDate, in.ExpiryDate, in.CredentialID, in.CredentialURL))
}

func (r *CertificateRepo) Update(ctx context.Context, id string, in CertificateInput) (*Certificate, error) {
	const q = `
update certificates
set name = $2, description = $3, image_url = $4, issuer = $5,
    issue_date = $6, expiry_date = $7, credential_id = $8,
    credential_url = $9, updated_at = now()
where id = $1::uuid and is_active = true
returning ` + certificateColumns + `;
`
	return scanCertificate(r.db.QueryRow(ctx, q, id,
		in.Name, in.Description, in.ImageURL, in.Issuer,
		in.IssueDate, in.ExpiryDate, in.CredentialID, in.CredentialURL))
}

// SoftDelete mirrors ProjectRepo.SoftDelete: idempotent, never removes the
// row.
func (r *CertificateRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	const q = `
update certificates
set is_active = false, updated_at = now()
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
