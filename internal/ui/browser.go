package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kirksw/ezorg/internal/github"
)

type repoDelegate struct{}

func (d repoDelegate) Height() int                             { return 2 }
func (d repoDelegate) Spacing() int                            { return 1 }
func (d repoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d repoDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	repo, ok := listItem.(repoItem)
	if !ok {
		return
	}

	license := repo.License
	if license == "" {
		license = "no license"
	}

	str := fmt.Sprintf("%s  [%s]", repo.Name, license)
	if repo.Description != "" {
		str += fmt.Sprintf("\n  %s", truncateString(repo.Description, 60))
	}

	var style lipgloss.Style
	if index == m.Index() {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	} else {
		style = lipgloss.NewStyle()
	}

	fmt.Fprint(w, style.Render(str))
}

type repoItem struct {
	github.Repo
}

func (i repoItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.Name, i.FullName, i.Description)
}

type model struct {
	org           string
	repos         []github.Repo
	repoList      list.Model
	textinput     textinput.Model
	license       string
	licenseFilter bool
	quitting      bool
	selected      *github.Repo
	lastInput     string
}

// newModel builds the browser. When license is non-empty, tab toggles a
// filter that keeps only repositories carrying that license key.
func newModel(org string, repos []github.Repo, license string) model {
	ti := textinput.New()
	ti.Placeholder = "Search repos..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 80

	l := list.New(nil, repoDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.SetWidth(80)
	l.SetHeight(12)

	m := model{
		org:           org,
		repos:         repos,
		textinput:     ti,
		license:       license,
		licenseFilter: license != "",
	}

	l.SetItems(m.filterRepos(""))
	m.repoList = l

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.repoList.SetWidth(msg.Width)
		listHeight := msg.Height - 8
		if listHeight < 4 {
			listHeight = 4
		}
		m.repoList.SetHeight(listHeight)
		m.textinput.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.selected = nil
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if item := m.repoList.SelectedItem(); item != nil {
				if ri, ok := item.(repoItem); ok {
					repo := ri.Repo
					m.selected = &repo
					m.quitting = true
					return m, tea.Quit
				}
			}
			return m, nil

		case tea.KeyTab:
			if m.license == "" {
				return m, nil
			}
			m.licenseFilter = !m.licenseFilter
			m.repoList.SetItems(m.filterRepos(m.textinput.Value()))
			m.repoList.ResetSelected()
			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			m.repoList.CursorDown()
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			m.repoList.CursorUp()
			return m, nil
		}
	}

	ti, cmd := m.textinput.Update(msg)
	m.textinput = ti

	if current := m.textinput.Value(); current != m.lastInput {
		m.lastInput = current
		m.repoList.SetItems(m.filterRepos(current))
		m.repoList.ResetSelected()
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("228")).
		Bold(true)

	instructionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)

	toggleOnStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("120")).
		Bold(true)

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Public repositories of %s", m.org)))
	if m.licenseFilter {
		b.WriteString("  ")
		b.WriteString(toggleOnStyle.Render("license: " + m.license))
	}

	b.WriteString("\n\n")
	b.WriteString(m.textinput.View())
	b.WriteString("\n\n")

	if len(m.repoList.Items()) > 0 {
		b.WriteString(m.repoList.View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No repos found"))
	}

	b.WriteString("\n\n")

	instructions := []string{"up/down: navigate"}
	if m.license != "" {
		instructions = append(instructions, "tab: toggle license filter")
	}
	instructions = append(instructions, "enter: select", "esc: cancel")
	b.WriteString(instructionStyle.Render(strings.Join(instructions, " | ")))

	return b.String()
}

func (m model) filterRepos(query string) []list.Item {
	query = strings.ToLower(query)
	var items []list.Item
	for _, repo := range m.repos {
		if m.licenseFilter && repo.License != m.license {
			continue
		}
		if query != "" {
			if !strings.Contains(strings.ToLower(repo.Name), query) &&
				!strings.Contains(strings.ToLower(repo.FullName), query) &&
				!strings.Contains(strings.ToLower(repo.Description), query) {
				continue
			}
		}
		items = append(items, repoItem{Repo: repo})
	}
	return items
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// RunBrowser shows repos in an interactive list and returns the one the user
// picked, or nil if they cancelled.
func RunBrowser(org string, repos []github.Repo, license string) (*github.Repo, error) {
	p := tea.NewProgram(
		newModel(org, repos, license),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run repository browser: %w", err)
	}

	m, ok := finalModel.(model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	return m.selected, nil
}
