package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parallax-dev/parallax/internal/app"
)

// headerItem is a non-selectable repository label in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// buildGroupedItems flattens groups into list items, each group led by a
// header.
func buildGroupedItems(groups []app.WorkspaceGroup) []list.Item {
	var items []list.Item
	for _, g := range groups {
		items = append(items, headerItem{label: fmt.Sprintf("%s (%d)", g.RepoName, len(g.Workspaces))})
		for _, ws := range g.Workspaces {
			items = append(items, workspaceItem{ws: ws})
		}
	}
	return items
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders headers itself and defers the rest to the default
// delegate.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}
	d.inner.Render(w, m, index, item)
}

// skipHeaders moves the cursor off a header, preferring direction (1 down,
// -1 up) and wrapping if needed.
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	n := len(items)
	if n == 0 || !isHeader(items[l.Index()]) {
		return
	}
	idx := l.Index()
	for _, step := range []int{direction, -direction} {
		if next := idx + step; next >= 0 && next < n && !isHeader(items[next]) {
			l.Select(next)
			return
		}
	}
	for i := 1; i < n; i++ {
		if candidate := ((idx+i*direction)%n + n) % n; !isHeader(items[candidate]) {
			l.Select(candidate)
			return
		}
	}
}

func isHeader(item list.Item) bool {
	_, ok := item.(headerItem)
	return ok
}

func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}
