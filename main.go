package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"movie-recommender/internal/config"
	"movie-recommender/internal/logging"
	"movie-recommender/internal/recommend"
	"movie-recommender/internal/ui"
)

type appState int

const (
	stateUserSelect appState = iota
	stateMovieSelect
	stateResults
)

type model struct {
	state  appState
	cfg    *config.Config
	scorer *recommend.Scorer

	// UI models
	userSelectModel  ui.UserSelectModel
	movieSelectModel ui.MovieSelectModel
	resultsModel     ui.ResultsViewModel
	errorOverlay     ui.ErrorOverlayModel

	// Screen size
	width  int
	height int
}

func main() {
	plain := flag.Bool("plain", false, "use the line-based prompt instead of the terminal UI")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		// Logging is optional; keep running without it
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	scorer, err := cfg.NewScorer()
	if err != nil {
		log.Fatalf("Failed to build recommender: %v", err)
	}

	if *plain {
		if err := ui.RunPrompt(os.Stdin, os.Stdout, scorer, cfg.TopN); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		return
	}

	initialModel := model{
		state:  stateUserSelect,
		cfg:    cfg,
		scorer: scorer,
		width:  80,
		height: 24,
	}
	initialModel.userSelectModel = initialModel.newUserSelect()
	initialModel.errorOverlay.UpdateSize(80, 24)

	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func (m model) newUserSelect() ui.UserSelectModel {
	snap := m.scorer.Snapshot()
	users := snap.Users()

	counts := make(map[string]int, len(users))
	for _, ur := range m.cfg.Ratings {
		for _, value := range ur.Ratings {
			if value > 0 {
				counts[ur.User]++
			}
		}
	}

	infos := make([]ui.UserInfo, len(users))
	for i, u := range users {
		infos[i] = ui.UserInfo{Name: u, Rated: counts[u]}
	}
	return ui.NewUserSelectModel(infos, snap.Version, m.width, m.height)
}

// reload rereads the config and swaps in a new snapshot.
// A failed reload keeps the current tables.
func (m model) reload() (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return m, err
	}
	if err := m.scorer.Update(cfg.Catalog, cfg.Ratings); err != nil {
		return m, err
	}
	m.cfg = cfg
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.userSelectModel.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.errorOverlay.UpdateSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// The error dialog takes all keys while shown
		if m.errorOverlay.IsVisible() {
			return m, m.errorOverlay.Update(msg)
		}

	case ui.ErrorDismissed:
		m.errorOverlay.Hide()
		return m, nil

	case ui.UserSelected:
		m.state = stateMovieSelect
		m.movieSelectModel = ui.NewMovieSelectModel(msg.User, m.scorer.Snapshot().Catalog(), m.width, m.height)
		return m, m.movieSelectModel.Init()

	case ui.MovieChosen:
		rec, err := m.scorer.Explain(msg.User, msg.Title, m.cfg.TopN)
		if err != nil {
			logging.Info("Recommendation failed for %s/%s: %v", msg.User, msg.Title, err)
			m.errorOverlay.Show(err)
			return m, nil
		}
		m.state = stateResults
		m.resultsModel = ui.NewResultsViewModel(rec, m.width, m.height)
		return m, m.resultsModel.Init()

	case ui.BackToUsers:
		m.state = stateUserSelect
		m.userSelectModel = m.newUserSelect()
		return m, m.userSelectModel.Init()

	case ui.BackToMovies:
		m.state = stateMovieSelect
		m.movieSelectModel = ui.NewMovieSelectModel(msg.User, m.scorer.Snapshot().Catalog(), m.width, m.height)
		return m, m.movieSelectModel.Init()

	case ui.ReloadRequested:
		reloaded, err := m.reload()
		if err != nil {
			logging.Error("Reload failed: %v", err)
			m.errorOverlay.Show(err)
			return m, nil
		}
		m = reloaded
		m.state = stateUserSelect
		m.userSelectModel = m.newUserSelect()
		return m, m.userSelectModel.Init()
	}

	// Delegate to current screen
	switch m.state {
	case stateUserSelect:
		newModel, cmd := m.userSelectModel.Update(msg)
		m.userSelectModel = newModel.(ui.UserSelectModel)
		return m, cmd

	case stateMovieSelect:
		newModel, cmd := m.movieSelectModel.Update(msg)
		m.movieSelectModel = newModel.(ui.MovieSelectModel)
		return m, cmd

	case stateResults:
		newModel, cmd := m.resultsModel.Update(msg)
		m.resultsModel = newModel.(ui.ResultsViewModel)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var view string
	switch m.state {
	case stateUserSelect:
		view = m.userSelectModel.View()
	case stateMovieSelect:
		view = m.movieSelectModel.View()
	case stateResults:
		view = m.resultsModel.View()
	default:
		view = "Loading..."
	}

	return m.errorOverlay.RenderOverlay(view)
}
