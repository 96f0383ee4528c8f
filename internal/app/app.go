// Package app is the bubbletea root model: it lays out the search bar, the
// player surfaces and the three track lists, and routes keys to the
// playback controller.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/notify"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/prefs"
	"github.com/llehouerou/tunedeck/internal/search"
	"github.com/llehouerou/tunedeck/internal/speech"
	"github.com/llehouerou/tunedeck/internal/tracker"
	"github.com/llehouerou/tunedeck/internal/ui/help"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
	"github.com/llehouerou/tunedeck/internal/ui/tracklist"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
)

// ThemeSaver persists the theme choice. *prefs.Manager satisfies it.
type ThemeSaver interface {
	SaveTheme(prefs.Theme) error
}

// Deps holds everything the root model drives.
type Deps struct {
	Controller *playback.Controller
	Events     <-chan player.Event // engine events, fed to the controller
	Tracker    *tracker.Tracker
	Prefs      ThemeSaver
	Theme      prefs.Theme
	Recognizer speech.Recognizer
	NowPlaying *notify.NowPlaying // nil disables notifications
	Prober     catalog.ProbeFunc  // nil skips duration probing
	Autoplay   bool
	Debounce   time.Duration
	Logger     *zap.Logger
}

// Model is the root application model.
type Model struct {
	ctrl       *playback.Controller
	events     <-chan player.Event
	sub        *playback.Subscription
	tracker    *tracker.Tracker
	prefs      ThemeSaver
	recognizer speech.Recognizer
	nowPlaying *notify.NowPlaying
	prober     catalog.ProbeFunc
	resolver   *keymap.Resolver
	logger     *zap.Logger
	autoplay   bool

	search    search.Model
	lists     [listCount]tracklist.Model
	focus     listID
	help      help.Model
	showHelp  bool
	theme     prefs.Theme
	durations map[string]time.Duration
	listening bool

	status   string
	statusID int

	width  int
	height int
}

// New creates the root model. The controller subscription is taken here so
// no event emitted before the program starts is lost.
func New(d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	recognizer := d.Recognizer
	if recognizer == nil {
		recognizer = speech.Unsupported{}
	}
	theme := d.Theme
	if !theme.Valid() {
		theme = prefs.ThemeDark
	}
	styles.Set(theme)

	m := Model{
		ctrl:       d.Controller,
		events:     d.Events,
		sub:        d.Controller.Subscribe(),
		tracker:    d.Tracker,
		prefs:      d.Prefs,
		recognizer: recognizer,
		nowPlaying: d.NowPlaying,
		prober:     d.Prober,
		resolver:   keymap.Default(),
		logger:     logger,
		autoplay:   d.Autoplay,
		search:     search.New(d.Debounce),
		help:       help.New(keymap.All),
		theme:      theme,
		durations:  make(map[string]time.Duration),
	}
	m.lists[listPlaylist] = tracklist.New("Playlist", "No tracks match")
	m.lists[listFavorites] = tracklist.New("Favorites", "No favorites yet")
	m.lists[listRecents] = tracklist.New("Recently played", "Nothing played yet")
	m.lists[listPlaylist].Focus()
	m.refreshLists()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.WatchEngineEvents(),
		m.WatchControllerEvents(),
		ProbeDurationsCmd(m.ctrl.Catalog(), m.prober),
	}
	if m.autoplay {
		cmds = append(cmds, AutoplayCmd(m.ctrl))
	}
	return tea.Batch(cmds...)
}

// Theme returns the active theme.
func (m Model) Theme() prefs.Theme {
	return m.theme
}

// Status returns the transient status message.
func (m Model) Status() string {
	return m.status
}

func (m Model) ctx() context.Context {
	return context.Background()
}
