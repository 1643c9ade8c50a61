package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "hello", Clean("  hello  "))
	assert.Equal(t, "scriptalert(1)/script", Clean("<script>alert(1)</script>"))
	assert.Equal(t, "", Clean("   "))
	assert.Equal(t, "a b", Clean("\t<a> <b>\n"))
}

func TestIsEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"a@b.co",
	}
	for _, s := range valid {
		assert.True(t, IsEmail(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user name@example.com",
	}
	for _, s := range invalid {
		assert.False(t, IsEmail(s), "expected %q to be invalid", s)
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://example.com/page"))
	assert.True(t, IsAbsoluteURL("http://example.com"))

	assert.False(t, IsAbsoluteURL("not-a-url"))
	assert.False(t, IsAbsoluteURL("ftp://example.com/file"))
	assert.False(t, IsAbsoluteURL("https://"))
	assert.False(t, IsAbsoluteURL("/relative/path"))
	assert.False(t, IsAbsoluteURL(""))
}

func TestLength(t *testing.T) {
	t.Run("within bounds", func(t *testing.T) {
		assert.Nil(t, Length("name", "Name", "Ada", 2, 50))
	})

	t.Run("too short", func(t *testing.T) {
		err := Length("name", "Name", "J", 2, 50)
		require.NotNil(t, err)
		assert.Equal(t, "name", err.Field)
		assert.Equal(t, "Name must be at least 2 characters", err.Message)
	})

	t.Run("too long", func(t *testing.T) {
		err := Length("subject", "Subject", "aaaaaa", 1, 5)
		require.NotNil(t, err)
		assert.Equal(t, "subject", err.Field)
		assert.Equal(t, "Subject must be at most 5 characters", err.Message)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// 3 runes, 9 bytes
		assert.Nil(t, Length("name", "Name", "日本語", 3, 3))
	})
}
