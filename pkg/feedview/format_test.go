package feedview

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := map[string]time.Time{
		"Just now":    now.Add(-30 * time.Second),
		"5m ago":      now.Add(-5 * time.Minute),
		"59m ago":     now.Add(-59*time.Minute - 59*time.Second),
		"3h ago":      now.Add(-3 * time.Hour),
		"6d ago":      now.Add(-6 * 24 * time.Hour),
		"Feb 1, 2025": time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	for want, at := range cases {
		assert.Equal(t, want, RelativeTime(at, now))
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, DefaultPreview, Preview(""))
	assert.Equal(t, "Meal drive today", Preview("Meal drive today"))
	assert.Equal(t, strings.Repeat("z", 160), Preview(strings.Repeat("z", 300)))
}
