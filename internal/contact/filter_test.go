package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckContent(t *testing.T) {
	t.Run("clean message passes", func(t *testing.T) {
		res := CheckContent("Hi, I saw your portfolio and would like to discuss a project.")
		assert.True(t, res.OK)
	})

	t.Run("keyword is rejected case-insensitively", func(t *testing.T) {
		res := CheckContent("Try our CASINO today, winnings guaranteed")
		assert.False(t, res.OK)
		assert.Contains(t, res.Reason, "keyword")
	})

	t.Run("embedded url is rejected", func(t *testing.T) {
		for _, body := range []string{
			"check this out https://spam.example/offer now",
			"visit www.sketchy.example for deals",
			"HTTP://UPPER.example also counts",
		} {
			res := CheckContent(body)
			assert.False(t, res.OK, "expected %q to be rejected", body)
			assert.Equal(t, "contains URL", res.Reason)
		}
	})

	t.Run("repeated character run is rejected", func(t *testing.T) {
		res := CheckContent("hello" + strings.Repeat("!", 10) + " world")
		assert.False(t, res.OK)
		assert.Equal(t, "repeated character run", res.Reason)
	})

	t.Run("short run passes", func(t *testing.T) {
		res := CheckContent("wow!!! that is really nice work you have there")
		assert.True(t, res.OK)
	})
}

func TestHasRepeatedRun(t *testing.T) {
	assert.False(t, hasRepeatedRun("", 10))
	assert.False(t, hasRepeatedRun("abcabcabcabc", 10))
	assert.False(t, hasRepeatedRun(strings.Repeat("a", 9), 10))
	assert.True(t, hasRepeatedRun(strings.Repeat("a", 10), 10))
	assert.True(t, hasRepeatedRun("x"+strings.Repeat("ñ", 10)+"y", 10))
}
