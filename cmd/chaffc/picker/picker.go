// Package picker is a small interactive list for choosing one entry when
// the command line did not name one: which chaff to splice, which template
// file to preview.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user quits the picker without choosing.
var ErrAborted = errors.New("selection aborted")

type item string

func (i item) Title() string       { return string(i) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return string(i) }

type model struct {
	list    list.Model
	choice  string
	aborted bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(item); ok {
				m.choice = string(selected)
			}
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.list.View()
}

// Pick runs the interactive picker and returns the chosen entry. A single
// candidate is returned directly without entering the UI.
func Pick(title string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("nothing to pick: %s", title)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = item(c)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, 40, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	final, err := tea.NewProgram(model{list: l}).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.aborted || m.choice == "" {
		return "", ErrAborted
	}
	return m.choice, nil
}
