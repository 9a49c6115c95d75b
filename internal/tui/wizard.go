package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/slug"
	"github.com/parallax-dev/parallax/internal/workspace"
)

type wizardStep int

const (
	stepRepo wizardStep = iota
	stepTask
	stepConfirm
)

var wizardSteps = []string{"Repository", "Task", "Confirm"}

// wizardModel collects a repository and task name for a new workspace.
type wizardModel struct {
	step      wizardStep
	repoList  list.Model
	taskInput textinput.Model

	selectedRepo repo.Repository
	selectedTask string
	taskErr      string
}

// repoItem implements list.Item for repository selection.
type repoItem struct {
	repo repo.Repository
}

func (r repoItem) Title() string { return r.repo.Name }

func (r repoItem) Description() string {
	if r.repo.Frequency == 0 {
		return truncatePath(r.repo.Path, 50)
	}
	return fmt.Sprintf("%s | used %d×", truncatePath(r.repo.Path, 50), r.repo.Frequency)
}

func (r repoItem) FilterValue() string { return r.repo.Name }

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

// newWizardModel starts the wizard on the repository step. repos should
// already be in display order.
func newWizardModel(repos []repo.Repository) wizardModel {
	items := make([]list.Item, len(repos))
	for i, r := range repos {
		items[i] = repoItem{repo: r}
	}
	l := list.New(items, list.NewDefaultDelegate(), 60, 15)
	l.Title = "Select repository"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	ti := textinput.New()
	ti.Placeholder = "Fix login bug"
	ti.CharLimit = 128
	ti.Width = 50

	return wizardModel{
		step:      stepRepo,
		repoList:  l,
		taskInput: ti,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return nil
}

func (w *wizardModel) setSize(width, height int) {
	if width > 0 && height > 6 {
		w.repoList.SetSize(width, height-6)
	}
}

// Update returns done=true when the wizard ends. A nil request means the
// user cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *CreateRequest, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			if w.step != stepRepo || w.repoList.FilterState() != list.Filtering {
				return w.back()
			}
		}
	}

	switch w.step {
	case stepRepo:
		return w.updateRepo(msg)
	case stepTask:
		return w.updateTask(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}
	return false, nil, nil
}

func (w *wizardModel) back() (bool, *CreateRequest, tea.Cmd) {
	switch w.step {
	case stepTask:
		w.step = stepRepo
		w.taskInput.Blur()
		return false, nil, nil
	case stepConfirm:
		w.step = stepTask
		w.taskInput.Focus()
		return false, nil, textinput.Blink
	default:
		return true, nil, nil
	}
}

func (w *wizardModel) updateRepo(msg tea.Msg) (bool, *CreateRequest, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter && w.repoList.FilterState() != list.Filtering {
		item, ok := w.repoList.SelectedItem().(repoItem)
		if !ok {
			return false, nil, nil
		}
		w.selectedRepo = item.repo
		w.step = stepTask
		w.taskInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.repoList, cmd = w.repoList.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateTask(msg tea.Msg) (bool, *CreateRequest, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if _, err := slug.Make(w.taskInput.Value()); err != nil {
			w.taskErr = err.Error()
			return false, nil, nil
		}
		w.taskErr = ""
		w.selectedTask = strings.TrimSpace(w.taskInput.Value())
		w.step = stepConfirm
		w.taskInput.Blur()
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.taskInput, cmd = w.taskInput.Update(msg)
	w.taskErr = ""
	return false, nil, cmd
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *CreateRequest, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "y":
			return true, &CreateRequest{Repo: w.selectedRepo, Task: w.selectedTask}, nil
		case "n":
			w.step = stepTask
			w.taskInput.Focus()
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("New Workspace"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepRepo:
		b.WriteString(w.repoList.View())
	case stepTask:
		b.WriteString(wizardLabelStyle.Render(fmt.Sprintf("Task for %s:", w.selectedRepo.Name)))
		b.WriteString("\n")
		b.WriteString(w.taskInput.View())
		b.WriteString("\n\n")
		if w.taskErr != "" {
			b.WriteString(wizardErrorStyle.Render(w.taskErr))
		} else {
			b.WriteString(w.preview())
		}
	case stepConfirm:
		s, _ := slug.Preview(w.selectedTask)
		b.WriteString(wizardLabelStyle.Render("Create this workspace?"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Repository: %s\n", wizardValueStyle.Render(w.selectedRepo.Path))
		fmt.Fprintf(&b, "  Folder:     %s\n", wizardValueStyle.Render(workspace.FolderName(w.selectedRepo.Name, s)))
		fmt.Fprintf(&b, "  Branch:     %s\n", wizardValueStyle.Render(workspace.BranchName(s)))
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("[enter/y] Create  [n] Edit task  [esc] Back"))
	}
	return b.String()
}

func (w *wizardModel) preview() string {
	s, ok := slug.Preview(w.taskInput.Value())
	if !ok {
		return wizardDimStyle.Render("Letters, numbers, spaces, '-', '_' and '.' are allowed.")
	}
	return wizardDimStyle.Render(fmt.Sprintf("Branch %s in %s",
		workspace.BranchName(s), workspace.FolderName(w.selectedRepo.Name, s)))
}

func (w *wizardModel) progressBar() string {
	parts := make([]string, len(wizardSteps))
	for i, label := range wizardSteps {
		style := wizardStepStyle
		if wizardStep(i) == w.step {
			style = wizardActiveStepStyle
		}
		parts[i] = style.Render(fmt.Sprintf("%d. %s", i+1, label))
	}
	return strings.Join(parts, wizardStepStyle.Render("  ›  "))
}
