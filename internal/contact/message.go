package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

// Message is a stored contact form submission. Visitors only ever create
// these; the read/spam flags belong to the admin inbox.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	UserAgent string    `json:"user_agent"`
	Read      bool      `json:"is_read"`
	Spam      bool      `json:"is_spam"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is the raw form payload. Website is the hidden honeypot field;
// Token is the per-page-load token issued by the token endpoint.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Website string `json:"website"`
	Token   string `json:"token"`
}

func (s *Submission) sanitize() {
	s.Name = validate.Clean(s.Name)
	s.Email = validate.Clean(s.Email)
	s.Subject = validate.Clean(s.Subject)
	s.Message = validate.Clean(s.Message)
}

func (s *Submission) validateFields() *validate.Error {
	if err := validate.Length("name", "Name", s.Name, 2, 50); err != nil {
		return err
	}
	if !validate.IsEmail(s.Email) {
		return validate.Errorf("email", "A valid email address is required")
	}
	if err := validate.Length("subject", "Subject", s.Subject, 5, 100); err != nil {
		return err
	}
	if err := validate.Length("message", "Message", s.Message, 10, 1000); err != nil {
		return err
	}
	return nil
}
