package notify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Run("short bodies pass through", func(t *testing.T) {
		assert.Equal(t, "nice entry", truncateBody("nice entry", 120))
	})

	t.Run("exactly at the limit passes through", func(t *testing.T) {
		body := strings.Repeat("a", 120)
		assert.Equal(t, body, truncateBody(body, 120))
	})

	t.Run("long bodies end in an ellipsis at the limit", func(t *testing.T) {
		got := truncateBody(strings.Repeat("a", 200), 120)
		assert.Equal(t, strings.Repeat("a", 117)+"...", got)
		assert.Equal(t, 120, utf8.RuneCountInString(got))
	})

	t.Run("multi-byte runes are never split", func(t *testing.T) {
		got := truncateBody(strings.Repeat("日本語", 60), 120)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 120, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}
