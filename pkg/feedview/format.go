package feedview

import (
	"fmt"
	"time"
)

const (
	PreviewLimit   = 160
	DefaultPreview = "View this update from Pusat Jagaan Warga Tua Damai"
	absoluteLayout = "Jan 2, 2006"
)

// RelativeTime renders a post timestamp the way the feed shows it.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return t.Format(absoluteLayout)
}

// Preview is the short description used for a post's detail page metadata.
func Preview(content string) string {
	if content == "" {
		return DefaultPreview
	}
	runes := []rune(content)
	if len(runes) <= PreviewLimit {
		return content
	}
	return string(runes[:PreviewLimit])
}
