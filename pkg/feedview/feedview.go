// Package feedview is the public feed's interaction state: incremental
// reveal, per-post text expansion, and a media lightbox over the visible
// posts.
package feedview

import (
	"damai-site/pkg/carousel"
)

const (
	PageSize      = 3
	TruncateLimit = 200
	Ellipsis      = "..."
)

type Item struct {
	ID        string
	Content   string
	MediaURL  string
	MediaType string
}

func (i Item) HasMedia() bool { return i.MediaURL != "" }

// Rendered is an item's text as it should be displayed right now.
type Rendered struct {
	Text string
	// NeedsToggle is true when the content is long enough to show a
	// "Show More"/"Show Less" control.
	NeedsToggle bool
	Expanded    bool
}

// Lightbox describes the open media overlay. Index and Total are relative to
// MediaItems at the time of the call.
type Lightbox struct {
	PostID         string
	URL            string
	Type           string
	Index          int
	Total          int
	ShowNavigation bool
}

type State struct {
	items        []Item
	visibleCount int
	expanded     map[string]bool
	// enlarged is the post id shown in the lightbox; the index is always
	// derived from the current media list.
	enlarged string
}

func New(items []Item) *State {
	return &State{
		items:        items,
		visibleCount: PageSize,
		expanded:     map[string]bool{},
	}
}

// SetItems swaps in a fresh snapshot. Pagination and expansion survive; the
// lightbox closes if its post is no longer visible with media.
func (s *State) SetItems(items []Item) {
	s.items = items
	if s.enlarged != "" && s.mediaIndex(s.enlarged) < 0 {
		s.enlarged = ""
	}
}

func (s *State) VisibleCount() int { return s.visibleCount }

func (s *State) Visible() []Item {
	if s.visibleCount >= len(s.items) {
		return s.items
	}
	return s.items[:s.visibleCount]
}

func (s *State) HasMore() bool { return s.visibleCount < len(s.items) }

func (s *State) LoadMore() { s.visibleCount += PageSize }

func (s *State) ToggleExpanded(id string) {
	if s.expanded[id] {
		delete(s.expanded, id)
		return
	}
	s.expanded[id] = true
}

func (s *State) IsExpanded(id string) bool { return s.expanded[id] }

func (s *State) Render(item Item) Rendered {
	expanded := s.expanded[item.ID]
	text, needsToggle := Truncate(item.Content, expanded)
	return Rendered{Text: text, NeedsToggle: needsToggle, Expanded: expanded && needsToggle}
}

// Truncate cuts content longer than TruncateLimit characters unless expanded.
// The second result reports whether the content exceeds the limit at all.
func Truncate(content string, expanded bool) (string, bool) {
	runes := []rune(content)
	if len(runes) <= TruncateLimit {
		return content, false
	}
	if expanded {
		return content, true
	}
	return string(runes[:TruncateLimit]) + Ellipsis, true
}

// MediaItems is the lightbox domain: visible posts that carry media, in feed
// order. It is recomputed on every call.
func (s *State) MediaItems() []Item {
	var out []Item
	for _, item := range s.Visible() {
		if item.HasMedia() {
			out = append(out, item)
		}
	}
	return out
}

// Enlarge opens the lightbox on postID. It reports false when that post is
// not currently visible with media.
func (s *State) Enlarge(postID string) bool {
	if s.mediaIndex(postID) < 0 {
		return false
	}
	s.enlarged = postID
	return true
}

func (s *State) Close() { s.enlarged = "" }

func (s *State) Lightbox() (Lightbox, bool) {
	if s.enlarged == "" {
		return Lightbox{}, false
	}
	media := s.MediaItems()
	idx := indexOf(media, s.enlarged)
	if idx < 0 {
		s.enlarged = ""
		return Lightbox{}, false
	}
	item := media[idx]
	return Lightbox{
		PostID:         item.ID,
		URL:            item.MediaURL,
		Type:           item.MediaType,
		Index:          idx,
		Total:          len(media),
		ShowNavigation: len(media) > 1,
	}, true
}

func (s *State) Next() { s.step(1) }

func (s *State) Prev() { s.step(-1) }

// HandleKey applies a key press and reports whether it changed anything.
// Keys are ignored while the lightbox is closed.
func (s *State) HandleKey(key carousel.Key) bool {
	if s.enlarged == "" {
		return false
	}
	switch key {
	case carousel.KeyEscape:
		s.Close()
		return true
	case carousel.KeyArrowLeft:
		return s.step(-1)
	case carousel.KeyArrowRight:
		return s.step(1)
	}
	return false
}

func (s *State) step(delta int) bool {
	if s.enlarged == "" {
		return false
	}
	media := s.MediaItems()
	idx := indexOf(media, s.enlarged)
	if idx < 0 {
		s.enlarged = ""
		return true
	}
	if len(media) <= 1 {
		return false
	}
	s.enlarged = media[carousel.Step(idx, delta, len(media))].ID
	return true
}

func (s *State) mediaIndex(id string) int {
	return indexOf(s.MediaItems(), id)
}

func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
