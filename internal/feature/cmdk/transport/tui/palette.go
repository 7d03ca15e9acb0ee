// Package tui はターミナル上のコマンドパレットを提供します。
// 検索は稼働中のAPIサーバの /api/cmdk/search に委譲します。
package tui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aurora_backend/internal/feature/cmdk/domain/entity"
)

const (
	// DebounceDelay は入力から検索発行までの待ち時間です。
	DebounceDelay = 150 * time.Millisecond
	searchLimit   = 20
	// Placeholder は入力欄のヒントです。接頭辞は ParseCommand の記法に合わせます。
	Placeholder = "Search companies, @lists, #topics or >commands..."
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Searcher はパレットの検索を行います。
type Searcher interface {
	Search(ctx context.Context, q string, limit int) (*entity.SearchResponse, error)
}

// JSONGetter はAPIサーバからJSONを取得します。
type JSONGetter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// APISearcher は /api/cmdk/search を呼び出す Searcher です。
type APISearcher struct {
	client JSONGetter
}

var _ Searcher = (*APISearcher)(nil)

// NewAPISearcher は APISearcher を生成します。
func NewAPISearcher(client JSONGetter) *APISearcher {
	return &APISearcher{client: client}
}

// Search は GET /api/cmdk/search?q&limit を実行します。
func (s *APISearcher) Search(ctx context.Context, q string, limit int) (*entity.SearchResponse, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))
	var resp entity.SearchResponse
	if err := s.client.GetJSON(ctx, "/api/cmdk/search", query, &resp); err != nil {
		return nil, fmt.Errorf("palette search: %w", err)
	}
	return &resp, nil
}

// resultItem は SearchResult を bubbles/list.Item に適合させます。
type resultItem struct{ r entity.SearchResult }

func (i resultItem) Title() string       { return i.r.Title }
func (i resultItem) Description() string { return i.r.Subtitle }
func (i resultItem) FilterValue() string { return i.r.Title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(resultItem)
	if !ok {
		return
	}
	prefix := "  "
	title := it.r.Title
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		title = selectedStyle.Render(title)
	}
	line := fmt.Sprintf("%s%s %s", prefix, typeStyle.Render("["+it.r.Type+"]"), title)
	if it.r.Subtitle != "" {
		line += " " + mutedStyle.Render(it.r.Subtitle)
	}
	fmt.Fprintln(w, line)
}

// debounceMsg は入力後の待ち時間が経過したことを知らせます。
type debounceMsg struct {
	seq   int
	query string
}

// resultsMsg は検索結果です。
type resultsMsg struct {
	seq  int
	resp *entity.SearchResponse
	err  error
}

// Model はパレットの Bubble Tea モデルです。
type Model struct {
	ctx      context.Context
	searcher Searcher
	input    textinput.Model
	list     list.Model
	seq      int
	err      error
	took     int64
	selected *entity.SearchResult
	quitting bool
}

var (
	selectKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	quitKey   = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit"))
	upKey     = key.NewBinding(key.WithKeys("up", "ctrl+p"))
	downKey   = key.NewBinding(key.WithKeys("down", "ctrl+n"))
)

// NewModel はパレットのモデルを生成します。
func NewModel(ctx context.Context, searcher Searcher) Model {
	ti := textinput.New()
	ti.Prompt = "⌘K "
	ti.Placeholder = Placeholder
	ti.CharLimit = 200
	ti.Focus()

	l := list.New(nil, itemDelegate{}, 80, 12)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)

	return Model{ctx: ctx, searcher: searcher, input: ti, list: l}
}

// Selected は確定された候補を返します。未選択で終了した場合は nil です。
func (m Model) Selected() *entity.SearchResult { return m.selected }

func (m Model) search(seq int, q string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.searcher.Search(m.ctx, q, searchLimit)
		return resultsMsg{seq: seq, resp: resp, err: err}
	}
}

func debounce(seq int, q string) tea.Cmd {
	return tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: q}
	})
}

// Init は空クエリで初回検索を行います。
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search(0, ""))
}

// Update は Bubble Tea の Update を実装します。
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(3, msg.Height-4))
		return m, nil

	case debounceMsg:
		// 古い入力に対する検索は発行しない
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.search(msg.seq, msg.query)

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.resp.Results))
		for _, r := range msg.resp.Results {
			items = append(items, resultItem{r: r})
		}
		m.took = msg.resp.TookMS
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, selectKey):
			if it, ok := m.list.SelectedItem().(resultItem); ok {
				r := it.r
				m.selected = &r
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, upKey):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, downKey):
			m.list.CursorDown()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != before {
		m.seq++
		return m, tea.Batch(cmd, debounce(m.seq, strings.TrimSpace(q)))
	}
	return m, cmd
}

// View は Bubble Tea の View を実装します。
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("AURORA command palette"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("search failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("  no results"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d results · %dms · enter select · esc quit", len(m.list.Items()), m.took)))
	return b.String()
}

// Run はパレットを起動し、選択された候補を返します。
func Run(ctx context.Context, searcher Searcher, opts ...tea.ProgramOption) (*entity.SearchResult, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewModel(ctx, searcher), opts...).Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Selected(), nil
	}
	return nil, nil
}
