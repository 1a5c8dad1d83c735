package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"movie-recommender/internal/recommend"
)

// ErrorDismissed is sent when the error dialog is closed
type ErrorDismissed struct{}

// DescribeError turns a scorer error into a message for the user
func DescribeError(err error) (title, message string) {
	var nf *recommend.NotFoundError
	switch {
	case errors.As(err, &nf) && nf.Kind == recommend.KindMovie:
		return "Movie not found!", "\"" + nf.Name + "\" is not in the catalog. Titles are case-sensitive."
	case errors.As(err, &nf) && nf.Kind == recommend.KindUser:
		return "User not found!", "\"" + nf.Name + "\" has no ratings. Usernames are case-sensitive."
	case errors.Is(err, recommend.ErrInsufficientData):
		return "Not enough users", "At least two users with ratings are needed to find a similar user."
	case errors.Is(err, recommend.ErrInvalidData):
		return "Invalid data", err.Error()
	default:
		return "Error", err.Error()
	}
}

// ErrorDialogModel is the foreground of the error overlay
type ErrorDialogModel struct {
	title   string
	message string
	width   int
	height  int
}

func (m ErrorDialogModel) Init() tea.Cmd {
	return nil
}

func (m ErrorDialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, key.NewBinding(key.WithKeys("esc", "enter"))) {
			return m, func() tea.Msg {
				return ErrorDismissed{}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m ErrorDialogModel) View() string {
	// Use 50% of window width
	dialogWidth := m.width / 2
	if dialogWidth < 40 {
		dialogWidth = 40 // Minimum width
	}

	var content strings.Builder
	content.WriteString(DialogTitleStyle.Render(m.title))
	content.WriteString("\n")
	content.WriteString(DialogMessageStyle.Width(dialogWidth - 10).Render(m.message))
	content.WriteString("\n\n")
	content.WriteString(HelpTextSimpleStyle.Render("Enter/Esc: Close"))

	return GetDialogBorderStyle(dialogWidth).Render(content.String())
}

// ErrorOverlayModel wraps the error dialog with the overlay library
type ErrorOverlayModel struct {
	dialog  ErrorDialogModel
	visible bool
}

func (m *ErrorOverlayModel) Show(err error) {
	m.dialog.title, m.dialog.message = DescribeError(err)
	m.visible = true
}

func (m *ErrorOverlayModel) Hide() {
	m.visible = false
}

func (m *ErrorOverlayModel) IsVisible() bool {
	return m.visible
}

func (m *ErrorOverlayModel) UpdateSize(width, height int) {
	m.dialog.width = width
	m.dialog.height = height
}

func (m *ErrorOverlayModel) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}

	mdl, cmd := m.dialog.Update(msg)
	m.dialog = mdl.(ErrorDialogModel)
	return cmd
}

func (m ErrorOverlayModel) RenderOverlay(backgroundView string) string {
	if !m.visible {
		return backgroundView
	}

	overlayModel := overlay.New(
		m.dialog,
		&staticViewModel{content: backgroundView},
		overlay.Center, // horizontal position
		overlay.Center, // vertical position
		0,
		0,
	)

	return overlayModel.View()
}

// staticViewModel is a simple model that renders static content (background)
type staticViewModel struct {
	content string
}

func (m staticViewModel) Init() tea.Cmd {
	return nil
}

func (m staticViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m staticViewModel) View() string {
	return m.content
}
