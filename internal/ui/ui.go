package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcavaliericopy-max/salomao/internal/formatter"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/repositories"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FolderListView ViewState = iota
	TrackListView
)

// Model represents the TUI application state.
type Model struct {
	view       ViewState
	store      *repositories.Store
	width      int
	height     int
	folderList list.Model
	folders    []models.FolderInfo
	counts     map[string]int
	trackList  list.Model
	selected   *models.FolderInfo
	err        error
	help       help.Model
	keys       keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.quit},
	}
}

// folderItem wraps [models.FolderInfo] to implement list.Item.
type folderItem struct {
	folder models.FolderInfo
	count  int
}

func (i folderItem) FilterValue() string { return i.folder.Name }
func (i folderItem) Title() string       { return i.folder.Name }
func (i folderItem) Description() string {
	return fmt.Sprintf("%d tracks • created %s", i.count, i.folder.CreatedAt.Format("2006-01-02"))
}

// trackItem wraps [models.TrackInfo] to implement list.Item.
type trackItem struct {
	track models.TrackInfo
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	return fmt.Sprintf("%s • added %s", formatter.FormatBytes(i.track.Size), i.track.AddedAt.Format("2006-01-02"))
}

type foldersLoadedMsg struct {
	folders []models.FolderInfo
	counts  map[string]int
	err     error
}

type tracksLoadedMsg struct {
	folder models.FolderInfo
	tracks []models.TrackInfo
	err    error
}

// NewModel creates a new TUI model over the given store.
func NewModel(store *repositories.Store) *Model {
	return &Model{
		view:  FolderListView,
		store: store,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by loading the folder listing.
func (m *Model) Init() tea.Cmd {
	return m.loadFolders()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.folderList.Width() == 0 {
			m.folderList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FolderListView:
			return m.handleFolderListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case foldersLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.folders = msg.folders
		m.counts = msg.counts
		items := make([]list.Item, len(msg.folders))
		for i, folder := range msg.folders {
			items[i] = folderItem{folder: folder, count: msg.counts[folder.ID]}
		}
		m.folderList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.folderList.Title = "Playlists"
		m.folderList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = FolderListView
			return m, nil
		}
		m.selected = &msg.folder
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.folder.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case FolderListView:
		return m.folderList.View() + "\n" + styles.help.Render(m.help.View(m.keys))
	case TrackListView:
		return m.trackList.View() + "\n" + styles.help.Render(m.help.View(m.keys))
	default:
		return ""
	}
}

func (m *Model) handleFolderListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.folderList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(folderItem); ok {
				return m, m.loadTracks(item.folder)
			}
		}
	}

	var cmd tea.Cmd
	m.folderList, cmd = m.folderList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = FolderListView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case FolderListView:
		m.folderList, cmd = m.folderList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

// loadFolders reads the folder listing and per-folder track counts in a
// background command.
func (m *Model) loadFolders() tea.Cmd {
	return func() tea.Msg {
		folders, err := m.store.Folders().List()
		if err != nil {
			return foldersLoadedMsg{err: err}
		}

		tracks, err := m.store.Tracks().List()
		if err != nil {
			return foldersLoadedMsg{err: err}
		}

		counts := make(map[string]int)
		for _, track := range tracks {
			counts[track.FolderID()]++
		}

		infos := make([]models.FolderInfo, len(folders))
		for i, folder := range folders {
			infos[i] = folder.Info()
		}

		return foldersLoadedMsg{folders: infos, counts: counts}
	}
}

// loadTracks reads one folder's track listing in a background command.
func (m *Model) loadTracks(folder models.FolderInfo) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.store.Tracks().ListByFolder(folder.ID)
		if err != nil {
			return tracksLoadedMsg{err: err}
		}

		infos := make([]models.TrackInfo, len(tracks))
		for i, track := range tracks {
			infos[i] = track.Info()
		}

		return tracksLoadedMsg{folder: folder, tracks: infos}
	}
}
