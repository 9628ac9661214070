// Package galleryview tracks the gallery carousel and its full-screen
// overlay.
package galleryview

import (
	"fmt"

	"damai-site/pkg/carousel"
)

type Image struct {
	ID      string
	URL     string
	Caption string
}

// Overlay is the enlarged view. Index is -1 for a static image that is not
// part of the gallery.
type Overlay struct {
	URL            string
	Caption        string
	Index          int
	Total          int
	ShowNavigation bool
}

type State struct {
	images []Image
	index  int

	open       bool
	overlayIdx int
	staticURL  string
}

func New(images []Image) *State {
	s := &State{}
	s.SetImages(images)
	return s
}

// SetImages replaces the gallery snapshot and clamps both indexes into it.
func (s *State) SetImages(images []Image) {
	s.images = images
	if len(images) == 0 {
		s.index = 0
		if s.open && s.overlayIdx >= 0 {
			s.Close()
		}
		return
	}
	if s.index >= len(images) {
		s.index = len(images) - 1
	}
	if s.open && s.overlayIdx >= len(images) {
		s.overlayIdx = len(images) - 1
	}
}

func (s *State) Len() int { return len(s.images) }

func (s *State) Index() int { return s.index }

// Current returns the image under the carousel, or false when the gallery is
// empty.
func (s *State) Current() (Image, bool) {
	if len(s.images) == 0 {
		return Image{}, false
	}
	return s.images[s.index], true
}

func (s *State) Next() {
	if len(s.images) > 0 {
		s.index = carousel.Next(s.index, len(s.images))
	}
}

func (s *State) Prev() {
	if len(s.images) > 0 {
		s.index = carousel.Prev(s.index, len(s.images))
	}
}

// JumpTo selects an image from the dot navigation. Out-of-range indexes are
// ignored.
func (s *State) JumpTo(i int) bool {
	if i < 0 || i >= len(s.images) {
		return false
	}
	s.index = i
	return true
}

// Counter renders the "i / n" caption, 1-based.
func (s *State) Counter() string {
	if len(s.images) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.index+1, len(s.images))
}

// Enlarge opens the overlay on the current carousel image.
func (s *State) Enlarge() bool {
	if len(s.images) == 0 {
		return false
	}
	s.open = true
	s.overlayIdx = s.index
	s.staticURL = ""
	return true
}

// EnlargeStatic opens the overlay on an image outside the gallery, such as a
// page hero image. Navigation is disabled.
func (s *State) EnlargeStatic(url string) {
	s.open = true
	s.overlayIdx = -1
	s.staticURL = url
}

// Close hides the overlay. The carousel index is untouched.
func (s *State) Close() {
	s.open = false
	s.overlayIdx = 0
	s.staticURL = ""
}

func (s *State) Overlay() (Overlay, bool) {
	if !s.open {
		return Overlay{}, false
	}
	if s.overlayIdx < 0 {
		return Overlay{URL: s.staticURL, Index: -1}, true
	}
	img := s.images[s.overlayIdx]
	return Overlay{
		URL:            img.URL,
		Caption:        img.Caption,
		Index:          s.overlayIdx,
		Total:          len(s.images),
		ShowNavigation: len(s.images) > 1,
	}, true
}

func (s *State) OverlayNext() bool { return s.stepOverlay(1) }

func (s *State) OverlayPrev() bool { return s.stepOverlay(-1) }

// HandleKey applies a key press to the open overlay and reports whether it
// changed anything.
func (s *State) HandleKey(key carousel.Key) bool {
	if !s.open {
		return false
	}
	switch key {
	case carousel.KeyEscape:
		s.Close()
		return true
	case carousel.KeyArrowLeft:
		return s.stepOverlay(-1)
	case carousel.KeyArrowRight:
		return s.stepOverlay(1)
	}
	return false
}

func (s *State) stepOverlay(delta int) bool {
	if !s.open || s.overlayIdx < 0 || len(s.images) <= 1 {
		return false
	}
	s.overlayIdx = carousel.Step(s.overlayIdx, delta, len(s.images))
	return true
}
