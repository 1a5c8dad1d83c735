package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type UserSelectModel struct {
	list    list.Model
	users   []string
	version string
	width   int
	height  int
}

type userItem struct {
	name  string
	rated int
}

func (i userItem) Title() string       { return i.name }
func (i userItem) Description() string { return fmt.Sprintf("Rated movies: %d", i.rated) }
func (i userItem) FilterValue() string { return i.name }

// UserSelected is sent when a user is picked from the list
type UserSelected struct {
	User string
}

// ReloadRequested asks the root model to reload the tables from config
type ReloadRequested struct{}

// UserInfo describes one selectable user
type UserInfo struct {
	Name  string
	Rated int
}

func NewUserSelectModel(users []UserInfo, version string, width, height int) UserSelectModel {
	items := make([]list.Item, len(users))
	names := make([]string, len(users))
	for i, u := range users {
		items[i] = userItem{name: u.Name, rated: u.Rated}
		names[i] = u.Name
	}

	l := list.New(items, CreateThemedDelegate(), width, height-4)
	l.Title = "Who is watching?"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	ConfigureListStyles(&l)

	// Disable all built-in key bindings except arrows and filter
	l.KeyMap.CursorUp = key.NewBinding(key.WithKeys("up"))
	l.KeyMap.CursorDown = key.NewBinding(key.WithKeys("down"))
	l.KeyMap.NextPage = key.NewBinding()
	l.KeyMap.PrevPage = key.NewBinding()
	l.KeyMap.GoToStart = key.NewBinding()
	l.KeyMap.GoToEnd = key.NewBinding()
	l.KeyMap.Filter = key.NewBinding(key.WithKeys("/"))
	l.KeyMap.ClearFilter = key.NewBinding(key.WithKeys("esc"))
	l.KeyMap.CancelWhileFiltering = key.NewBinding(key.WithKeys("esc"))
	l.KeyMap.AcceptWhileFiltering = key.NewBinding(key.WithKeys("enter"))
	l.KeyMap.ShowFullHelp = key.NewBinding()
	l.KeyMap.CloseFullHelp = key.NewBinding()
	l.KeyMap.Quit = key.NewBinding()
	l.KeyMap.ForceQuit = key.NewBinding()

	return UserSelectModel{
		list:    l,
		users:   names,
		version: version,
		width:   width,
		height:  height,
	}
}

func (m UserSelectModel) Init() tea.Cmd {
	return nil
}

func (m UserSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Let the list consume keys while the filter is being typed
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+x":
			return m, tea.Quit

		case "enter":
			selectedItem := m.list.SelectedItem()
			if selectedItem == nil {
				return m, nil
			}
			user := selectedItem.(userItem).name
			return m, func() tea.Msg {
				return UserSelected{User: user}
			}

		case "ctrl+r":
			return m, func() tea.Msg {
				return ReloadRequested{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m UserSelectModel) View() string {
	helpText := "↑/↓: Navigate • Enter: Select • /: Filter • Ctrl+R: Reload ratings • Ctrl+X: Exit"

	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		statusBarStyle.Render(fmt.Sprintf("Users: %d | Data version: %s", len(m.users), shortVersion(m.version))),
		helpStyle.Render(helpText),
	)
}

func shortVersion(version string) string {
	if len(version) > 8 {
		return version[:8]
	}
	return version
}
