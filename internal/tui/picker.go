package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parallax-dev/parallax/internal/app"
	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/workspace"
)

// Action is what the user chose in the picker.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionNew
	ActionDelete
	ActionMerge
	ActionQuit
)

// CreateRequest is the outcome of the new-workspace wizard.
type CreateRequest struct {
	Repo repo.Repository
	Task string
}

// PickerResult holds the result of the picker.
type PickerResult struct {
	Action    Action
	Workspace *workspace.Workspace
	Create    *CreateRequest
}

// workspaceItem implements list.Item for a workspace.
type workspaceItem struct {
	ws workspace.Workspace
}

func (i workspaceItem) Title() string {
	return i.ws.TaskName
}

func (i workspaceItem) Description() string {
	branch := i.ws.BranchName
	if branch == "" {
		branch = "no branch"
	}
	icon := "○"
	if i.ws.CanMergeBack() {
		icon = "⇄"
	}
	return fmt.Sprintf("%s %s | %s | %s", icon, branch, age(i.ws.CreatedAt, time.Now()), truncatePath(i.ws.Path, 40))
}

func (i workspaceItem) FilterValue() string {
	return i.ws.RepoName + " " + i.ws.TaskName
}

// age renders how long ago t was, coarsely.
func age(t, now time.Time) string {
	if t.IsZero() {
		return "unknown age"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model for the workspace picker.
type Model struct {
	list     list.Model
	repos    []repo.Repository
	wizard   *wizardModel
	status   string
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker builds a picker over the workspaces and repositories in snap.
func NewPicker(snap app.Snapshot) Model {
	l := list.New(buildGroupedItems(snap.FilterWorkspaces("")), newGroupedDelegate(), 80, 20)
	l.Title = "Parallax - Workspaces"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{
		list:  l,
		repos: snap.FilterRepositories(""),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.list.SetSize(size.Width, size.Height-4)
		if m.wizard != nil {
			m.wizard.setSize(size.Width, size.Height)
		}
		return m, nil
	}

	if m.wizard != nil {
		done, req, cmd := m.wizard.Update(msg)
		if !done {
			return m, cmd
		}
		m.wizard = nil
		if req == nil {
			return m, nil
		}
		return m.finish(PickerResult{Action: ActionNew, Create: req})
	}

	key, isKey := msg.(tea.KeyMsg)
	if isKey && m.list.FilterState() != list.Filtering {
		m.status = ""
		switch key.String() {
		case "enter":
			if ws, ok := m.selected(); ok {
				return m.finish(PickerResult{Action: ActionOpen, Workspace: &ws})
			}
		case "n":
			if len(m.repos) == 0 {
				m.status = "No repositories found under the configured roots."
				return m, nil
			}
			w := newWizardModel(m.repos)
			w.setSize(m.width, m.height)
			m.wizard = &w
			return m, w.Init()
		case "d":
			if ws, ok := m.selected(); ok {
				return m.finish(PickerResult{Action: ActionDelete, Workspace: &ws})
			}
		case "m":
			if ws, ok := m.selected(); ok {
				if !ws.CanMergeBack() {
					m.status = fmt.Sprintf("%s has no known source repository or branch.", ws.Name())
					return m, nil
				}
				return m.finish(PickerResult{Action: ActionMerge, Workspace: &ws})
			}
		case "q", "esc":
			return m.finish(PickerResult{Action: ActionQuit})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if isKey {
		skipHeaders(&m.list, navigationDirection(key))
	}
	return m, cmd
}

func (m Model) finish(result PickerResult) (tea.Model, tea.Cmd) {
	m.result = result
	m.quitting = true
	return m, tea.Quit
}

func (m Model) selected() (workspace.Workspace, bool) {
	item, ok := m.list.SelectedItem().(workspaceItem)
	return item.ws, ok
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.wizard != nil {
		return m.wizard.View()
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	b.WriteString("\n" + helpStyle.Render("[enter] Open  [n] New  [d] Delete  [m] Merge  [/] Filter  [q] Quit"))
	return b.String()
}

// Result returns the picker result.
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive picker until the user chooses an action.
func RunPicker(snap app.Snapshot) (PickerResult, error) {
	p := tea.NewProgram(NewPicker(snap), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}
	return final.(Model).Result(), nil
}
