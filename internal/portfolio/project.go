package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/internal/validate"
)

type Category string

const (
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryOther   Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryDesktop, CategoryOther:
		return true
	}
	return false
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ImageURL     string    `json:"image_url,omitempty"`
	Technologies []string  `json:"technologies"`
	Category     Category  `json:"category"`
	Featured     bool      `json:"featured"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectInput is the write payload for create and update.
type ProjectInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	ImageURL     string   `json:"image_url"`
	Technologies []string `json:"technologies"`
	Category     Category `json:"category"`
	Featured     bool     `json:"featured"`
}

func (in *ProjectInput) sanitize() {
	in.Name = validate.Clean(in.Name)
	in.Description = validate.Clean(in.Description)
	in.URL = validate.Clean(in.URL)
	in.ImageURL = validate.Clean(in.ImageURL)

	tags := make([]string, 0, len(in.Technologies))
	for _, t := range in.Technologies {
		if t = validate.Clean(t); t != "" {
			tags = append(tags, t)
		}
	}
	in.Technologies = tags
}

func (in *ProjectInput) validateFields() *validate.Error {
	if err := validate.Length("name", "Project name", in.Name, 3, 100); err != nil {
		return err
	}
	if err := validate.Length("description", "Project description", in.Description, 10, 500); err != nil {
		return err
	}
	if !validate.IsAbsoluteURL(in.URL) {
		return validate.Errorf("url", "A valid project URL is required")
	}
	if in.ImageURL != "" && !validate.IsAbsoluteURL(in.ImageURL) {
		return validate.Errorf("image_url", "A valid image URL is required")
	}
	if !in.Category.Valid() {
		return validate.Errorf("category", "Category must be one of web, mobile, desktop, other")
	}
	if len(in.Technologies) > 20 {
		return validate.Errorf("technologies", "At most 20 technology tags are allowed")
	}
	for _, t := range in.Technologies {
		if err := validate.Length("technologies", "Technology tag", t, 1, 30); err != nil {
			return err
		}
	}
	return nil
}
