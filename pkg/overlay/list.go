package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/genie/pkg/geometry"
)

// ListItem is an entry in a list section.
type ListItem struct {
	ID    string
	Label string
	Data  any
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

// WithMaxVisible caps how many rows render before the list scrolls.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// List builds a scrollable, selectable list. selected points at the
// current index so callers can read or steer the selection; nil disables
// selection. Choosing an item emits its ID as the action.
func List(id string, items []ListItem, selected *int, opts ...ListOption) Section {
	s := &listSection{
		id:         id,
		items:      items,
		selected:   selected,
		maxVisible: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type listSection struct {
	id           string
	items        []ListItem
	selected     *int
	maxVisible   int
	scrollOffset int
}

func (s *listSection) FocusID() string { return s.id }

func (s *listSection) hitID(item ListItem) string { return s.id + ":" + item.ID }

func (s *listSection) Render(width int, th Theme, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: th.Muted.Render("(no items)")}
	}

	visibleCount := min(s.maxVisible, len(s.items))
	selectedIdx := -1
	if s.selected != nil {
		selectedIdx = *s.selected
	}

	// Keep the selection in view, then clamp the scroll window.
	if selectedIdx >= 0 {
		if selectedIdx < s.scrollOffset {
			s.scrollOffset = selectedIdx
		} else if selectedIdx >= s.scrollOffset+visibleCount {
			s.scrollOffset = selectedIdx - visibleCount + 1
		}
	}
	maxScroll := max(0, len(s.items)-visibleCount)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxScroll)

	listFocused := focusID == s.id
	cursor := th.Title.Render("❯ ")

	var sb strings.Builder
	var hits []SectionHit

	for i := 0; i < visibleCount; i++ {
		itemIdx := s.scrollOffset + i
		if itemIdx >= len(s.items) {
			break
		}
		item := s.items[itemIdx]
		isSelected := itemIdx == selectedIdx
		isHovered := s.hitID(item) == hoverID

		style := th.Body
		switch {
		case isSelected && listFocused:
			style = th.Body.Reverse(true).Bold(true)
		case isSelected || isHovered:
			style = th.Body.Reverse(true)
		}

		prefix := "  "
		if isSelected {
			prefix = cursor
		}

		label := ansi.Truncate(item.Label, max(1, width-2), "…")
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + style.Render(label))

		hits = append(hits, SectionHit{
			ID:   s.hitID(item),
			Rect: geometry.NewRect(0, i, width, 1),
		})
	}

	return RenderedSection{Content: sb.String(), Hits: hits}
}

func (s *listSection) HandleKey(msg tea.KeyMsg) (string, bool) {
	if s.selected == nil || len(s.items) == 0 {
		return "", false
	}

	switch msg.String() {
	case "up", "k":
		if *s.selected > 0 {
			*s.selected--
		}
		return "", true
	case "down", "j":
		if *s.selected < len(s.items)-1 {
			*s.selected++
		}
		return "", true
	case "enter":
		if *s.selected >= 0 && *s.selected < len(s.items) {
			return s.items[*s.selected].ID, true
		}
	}
	return "", false
}

func (s *listSection) HandleClick(id string) string {
	for i, item := range s.items {
		if s.hitID(item) == id {
			if s.selected != nil {
				*s.selected = i
			}
			return item.ID
		}
	}
	return ""
}
