package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-recommender/internal/recommend"
)

type movieSelectMode int

const (
	pickingFromList movieSelectMode = iota
	typingTitle
)

type MovieSelectModel struct {
	list       list.Model
	titleInput textinput.Model
	mode       movieSelectMode
	user       string
	width      int
	height     int
}

type movieItem struct {
	movie recommend.Movie
}

func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string { return fmt.Sprintf("Genre: %s", i.movie.Genre) }
func (i movieItem) FilterValue() string { return i.movie.Title }

// MovieChosen is sent when a seed movie is picked or typed
type MovieChosen struct {
	User  string
	Title string
}

// BackToUsers returns to the user picker
type BackToUsers struct{}

func NewMovieSelectModel(user string, catalog recommend.Catalog, width, height int) MovieSelectModel {
	items := make([]list.Item, len(catalog))
	for i, mv := range catalog {
		items[i] = movieItem{movie: mv}
	}

	l := list.New(items, CreateThemedDelegate(), width, height-6)
	l.Title = fmt.Sprintf("Pick a favorite movie for %s", user)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	ConfigureListStyles(&l)
	l.KeyMap.Quit = key.NewBinding()

	ti := textinput.New()
	ti.Placeholder = "The Matrix"
	ti.CharLimit = 200
	ti.Width = 50

	return MovieSelectModel{
		list:       l,
		titleInput: ti,
		mode:       pickingFromList,
		user:       user,
		width:      width,
		height:     height,
	}
}

func (m MovieSelectModel) Init() tea.Cmd {
	return nil
}

func (m MovieSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.mode == pickingFromList && m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+x":
			return m, tea.Quit

		case "tab":
			if m.mode == pickingFromList {
				m.mode = typingTitle
				return m, m.titleInput.Focus()
			}
			m.mode = pickingFromList
			m.titleInput.Blur()
			return m, nil

		case "esc":
			if m.mode == typingTitle {
				m.mode = pickingFromList
				m.titleInput.Blur()
				return m, nil
			}
			return m, func() tea.Msg {
				return BackToUsers{}
			}

		case "enter":
			var title string
			if m.mode == typingTitle {
				title = strings.TrimSpace(m.titleInput.Value())
				if title == "" {
					return m, nil
				}
			} else {
				selectedItem := m.list.SelectedItem()
				if selectedItem == nil {
					return m, nil
				}
				title = selectedItem.(movieItem).movie.Title
			}
			user := m.user
			return m, func() tea.Msg {
				return MovieChosen{User: user, Title: title}
			}
		}
	}

	if m.mode == typingTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MovieSelectModel) View() string {
	helpText := "↑/↓: Navigate • Enter: Recommend • /: Filter • Tab: Type a title • Esc: Back • Ctrl+X: Exit"
	if m.mode == typingTitle {
		helpText = "Enter: Recommend • Tab/Esc: Back to list • Ctrl+X: Exit"
	}

	input := lipgloss.JoinHorizontal(lipgloss.Left,
		RenderFieldLabel("Title: ", m.mode == typingTitle),
		InputStyle.Render(m.titleInput.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		input,
		helpStyle.Render(helpText),
	)
}
