package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProjectInput() ProjectInput {
	return ProjectInput{
		Name:         "Portfolio Website",
		Description:  "A personal site with projects and certificates.",
		URL:          "https://example.com/portfolio",
		Technologies: []string{"Go", "PostgreSQL"},
		Category:     CategoryWeb,
	}
}

func TestProjectValidation(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		in := validProjectInput()
		in.sanitize()
		assert.Nil(t, in.validateFields())
	})

	cases := []struct {
		name    string
		mutate  func(*ProjectInput)
		field   string
		message string
	}{
		{
			name:    "short name",
			mutate:  func(in *ProjectInput) { in.Name = "ab" },
			field:   "name",
			message: "Project name must be at least 3 characters",
		},
		{
			name:    "long description",
			mutate:  func(in *ProjectInput) { in.Description = strings.Repeat("a", 501) },
			field:   "description",
			message: "Project description must be at most 500 characters",
		},
		{
			name:    "relative url",
			mutate:  func(in *ProjectInput) { in.URL = "not-a-url" },
			field:   "url",
			message: "A valid project URL is required",
		},
		{
			name:    "bad image url",
			mutate:  func(in *ProjectInput) { in.ImageURL = "ftp://example.com/x.png" },
			field:   "image_url",
			message: "A valid image URL is required",
		},
		{
			name:    "unknown category",
			mutate:  func(in *ProjectInput) { in.Category = "game" },
			field:   "category",
			message: "Category must be one of web, mobile, desktop, other",
		},
		{
			name: "too many tags",
			mutate: func(in *ProjectInput) {
				in.Technologies = make([]string, 21)
				for i := range in.Technologies {
					in.Technologies[i] = "Go"
				}
			},
			field:   "technologies",
			message: "At most 20 technology tags are allowed",
		},
		{
			name:    "oversized tag",
			mutate:  func(in *ProjectInput) { in.Technologies = []string{strings.Repeat("x", 31)} },
			field:   "technologies",
			message: "Technology tag must be at most 30 characters",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProjectInput()
			tc.mutate(&in)

			err := in.validateFields()
			require.NotNil(t, err)
			assert.Equal(t, tc.field, err.Field)
			assert.Equal(t, tc.message, err.Message)
		})
	}
}

func TestProjectSanitize(t *testing.T) {
	in := validProjectInput()
	in.Name = "  <My> Project  "
	in.Technologies = []string{" Go ", "", "  ", "React"}

	in.sanitize()

	assert.Equal(t, "My Project", in.Name)
	assert.Equal(t, []string{"Go", "React"}, in.Technologies)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryWeb, CategoryMobile, CategoryDesktop, CategoryOther} {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("game").Valid())
}
