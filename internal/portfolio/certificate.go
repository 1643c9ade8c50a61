package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

type Certificate struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image_url"`
	Issuer        string     `json:"issuer"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CredentialID  string     `json:"credential_id,omitempty"`
	CredentialURL string     `json:"credential_url,omitempty"`
	Active        bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CertificateInput struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image_url"`
	Issuer        string     `json:"issuer"`
	IssueDate     *time.Time `json:"issue_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialID  string     `json:"credential_id"`
	CredentialURL string     `json:"credential_url"`
}

func (in *CertificateInput) sanitize() {
	in.Name = validate.Clean(in.Name)
	in.Description = validate.Clean(in.Description)
	in.ImageURL = validate.Clean(in.ImageURL)
	in.Issuer = validate.Clean(in.Issuer)
	in.CredentialID = validate.Clean(in.CredentialID)
	in.CredentialURL = validate.Clean(in.CredentialURL)
}

func (in *CertificateInput) validateFields() *validate.Error {
	if err := validate.Length("name", "Certificate name", in.Name, 3, 100); err != nil {
		return err
	}
	if err := validate.Length("description", "Certificate description", in.Description, 10, 300); err != nil {
		return err
	}
	if !validate.IsAbsoluteURL(in.ImageURL) {
		return validate.Errorf("image_url", "A valid certificate image URL is required")
	}
	if err := validate.Length("issuer", "Issuer", in.Issuer, 2, 100); err != nil {
		return err
	}
	if in.IssueDate != nil && in.ExpiryDate != nil && !in.ExpiryDate.After(*in.IssueDate) {
		return validate.Errorf("expiry_date", "Expiry date must be after the issue date")
	}
	if in.CredentialURL != "" && !validate.IsAbsoluteURL(in.CredentialURL) {
		return validate.Errorf("credential_url", "A valid credential URL is required")
	}
	return nil
}
