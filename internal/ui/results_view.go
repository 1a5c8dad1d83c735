package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"movie-recommender/internal/logging"
	"movie-recommender/internal/recommend"
)

type ResultsViewModel struct {
	rec        *recommend.Recommendation
	rendered   string
	mdRenderer *glamour.TermRenderer
	width      int
	height     int
}

// BackToMovies returns to the movie picker for the same user
type BackToMovies struct {
	User string
}

func NewResultsViewModel(rec *recommend.Recommendation, width, height int) ResultsViewModel {
	m := ResultsViewModel{
		rec:        rec,
		mdRenderer: createMarkdownRenderer(width),
		width:      width,
		height:     height,
	}
	m.render()
	return m
}

func createMarkdownRenderer(width int) *glamour.TermRenderer {
	// Try auto style first
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-10),
	)
	if err == nil {
		return renderer
	}

	logging.Error("Failed to create markdown renderer with auto style: %v, trying fallback", err)

	renderer, err = glamour.NewTermRenderer(
		glamour.WithWordWrap(width - 10),
	)
	if err == nil {
		return renderer
	}

	logging.Error("Failed to create markdown renderer with basic style: %v, using plain text", err)
	return nil
}

func (m *ResultsViewModel) render() {
	md := ResultsMarkdown(m.rec)
	if m.mdRenderer == nil {
		m.rendered = md
		return
	}

	out, err := m.mdRenderer.Render(md)
	if err != nil {
		logging.Error("Failed to render results: %v", err)
		m.rendered = md
		return
	}
	m.rendered = out
}

// ResultsMarkdown formats a recommendation as a markdown document
func ResultsMarkdown(rec *recommend.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Recommendations for %s\n\n", rec.User)
	fmt.Fprintf(&b, "Based on **%s**.\n\n", rec.Seed)

	if len(rec.Results) == 0 {
		b.WriteString("_No other movies in the catalog._\n\n")
	} else {
		b.WriteString("| # | Title | Genre match | Neighbor bonus | Score |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for i, st := range rec.Results {
			fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f | %.2f |\n", i+1, escapeTableCell(st.Title), st.ContentScore, st.Bonus, st.Score)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Most similar user: **%s** (similarity %.2f)", rec.Neighbor, rec.NeighborSimilarity)
	if len(rec.Liked) > 0 {
		fmt.Fprintf(&b, ", who liked: %s", strings.Join(rec.Liked, ", "))
	}
	b.WriteString("\n")

	return b.String()
}

// escapeTableCell keeps a pipe in a title from splitting the table row
func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func (m ResultsViewModel) Init() tea.Cmd {
	return nil
}

func (m ResultsViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != m.width {
			m.mdRenderer = createMarkdownRenderer(msg.Width)
		}
		m.width = msg.Width
		m.height = msg.Height
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+x", "q":
			return m, tea.Quit

		case "esc", "enter":
			user := m.rec.User
			return m, func() tea.Msg {
				return BackToMovies{User: user}
			}

		case "ctrl+r":
			return m, func() tea.Msg {
				return ReloadRequested{}
			}
		}
	}

	return m, nil
}

func (m ResultsViewModel) View() string {
	helpText := "Esc/Enter: Pick another movie • Ctrl+R: Reload ratings • Q/Ctrl+X: Exit"

	return lipgloss.JoinVertical(lipgloss.Left,
		m.rendered,
		statusBarStyle.Render(fmt.Sprintf("Data version: %s", shortVersion(m.rec.Version))),
		helpStyle.Render(helpText),
	)
}
