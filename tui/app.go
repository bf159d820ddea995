package tui

import (
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/Superbil/PodcastMenu/imagecache"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CacheFactory builds a cache that delivers completions through d.
type CacheFactory func(d imagecache.Dispatcher) *imagecache.Cache

type App struct {
	cache    *imagecache.Cache
	rows     []row
	handles  []*imagecache.Handle
	selected int
	theme    *Theme
	width    int
}

func NewApp(cache *imagecache.Cache, locators []*url.URL) *App {
	rows := make([]row, len(locators))
	for i, u := range locators {
		rows[i] = row{locator: u}
	}
	return &App{
		cache: cache,
		rows:  rows,
		theme: DefaultTheme(),
	}
}

// Run shows the preview until the user quits. Completions are marshalled onto
// the program loop, so rows are only ever touched from Update.
func Run(locators []*url.URL, newCache CacheFactory) error {
	app := NewApp(nil, locators)
	p := tea.NewProgram(app)
	app.cache = newCache(ProgramDispatcher{Program: p})

	_, err := p.Run()
	app.cancelAll()
	return err
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width

	case startMsg:
		a.start()

	case dispatchMsg:
		msg.fn()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			a.cancelAll()
			return a, tea.Quit
		case "up", "k":
			if a.selected > 0 {
				a.selected--
			}
		case "down", "j":
			if a.selected < len(a.rows)-1 {
				a.selected++
			}
		}
	}
	return a, nil
}

func (a *App) start() {
	a.handles = make([]*imagecache.Handle, len(a.rows))
	for i := range a.rows {
		_, a.rows[i].cached = a.cache.Lookup(a.rows[i].locator)
		a.handles[i] = a.cache.FetchImage(a.rows[i].locator, func(_ *url.URL, img image.Image) {
			a.loaded(i, img)
		})
	}
}

func (a *App) loaded(i int, img image.Image) {
	if img == nil {
		a.rows[i].state = rowFailed
		return
	}
	a.rows[i].state = rowReady
	a.rows[i].image = img
}

func (a *App) cancelAll() {
	for _, h := range a.handles {
		if h != nil {
			h.Cancel()
		}
	}
}

func (a *App) pending() int {
	n := 0
	for _, r := range a.rows {
		if r.state == rowPending {
			n++
		}
	}
	return n
}

func (a *App) View() string {
	var lines []string

	header := fmt.Sprintf("Thumbnails (%d)", len(a.rows))
	if n := a.pending(); n > 0 {
		header += fmt.Sprintf(" %s %d pending", IconPending, n)
	}
	lines = append(lines, a.theme.HeaderStyle.Render(header), "")

	for i, r := range a.rows {
		line := a.renderRow(r)
		if i == a.selected {
			line = a.theme.SelectedItemStyle.Render(IconArrowRight+" ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	body := strings.Join(lines, "\n")
	if len(a.rows) > 0 && a.rows[a.selected].image != nil {
		preview := a.theme.PreviewStyle.Render(RenderThumbnail(a.rows[a.selected].image))
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", preview)
	}

	help := strings.Join([]string{
		KeyHelp("↑/↓", "select", a.theme),
		KeyHelp("q", "quit", a.theme),
	}, "  ")
	if a.pending() > 0 {
		help += "  " + a.theme.HelpStyle.Render("quitting cancels pending fetches")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", help)
}

func (a *App) renderRow(r row) string {
	var badge string
	switch r.state {
	case rowPending:
		badge = StatusBadge(IconPending+" fetching", "info", a.theme)
	case rowFailed:
		badge = StatusBadge(IconCross+" failed", "error", a.theme)
	case rowReady:
		size := r.image.Bounds().Size()
		label := fmt.Sprintf("%s %dx%d", IconCheck, size.X, size.Y)
		if r.cached {
			badge = StatusBadge(label+" cached", "success", a.theme)
		} else {
			badge = StatusBadge(label+" fetched", "warning", a.theme)
		}
	}

	text := r.locator.String()
	if a.width > 0 {
		limit := a.width - lipgloss.Width(badge) - 4
		if limit > 3 && len(text) > limit {
			text = text[:limit-3] + "..."
		}
	}
	return badge + " " + a.theme.NormalTextStyle.Render(text)
}
