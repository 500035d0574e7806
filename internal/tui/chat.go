// Package tui implements the interactive query loop.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mwiater/docsearch/internal/appconfig"
	"github.com/mwiater/docsearch/internal/logging"
	"github.com/mwiater/docsearch/internal/rag"
	"github.com/mwiater/docsearch/internal/util"
)

// Searcher ranks chunks for a query.
type Searcher interface {
	Search(query string, k int) []rag.ScoredChunk
}

// exchange is one query and the results shown for it.
type exchange struct {
	id      string
	query   string
	results []rag.ScoredChunk
}

var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	queryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	headerHeight = 2
	footerHeight = 3
)

// model is the Bubble Tea model for the query loop.
type model struct {
	cfg           appconfig.Config
	searcher      Searcher
	chunkCount    int
	textArea      textarea.Model
	viewport      viewport.Model
	history       []exchange
	width, height int
}

func initialModel(cfg appconfig.Config, searcher Searcher, chunkCount int) *model {
	ta := textarea.New()
	ta.Placeholder = "Type a query and press enter..."
	ta.Focus()
	ta.Prompt = "Query: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(100, 5)
	vp.KeyMap = historyKeyMap()

	return &model{
		cfg:        cfg,
		searcher:   searcher,
		chunkCount: chunkCount,
		textArea:   ta,
		viewport:   vp,
	}
}

// historyKeyMap scrolls the results without claiming any key the query
// input types or edits with.
func historyKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	}
}

// Run starts the interactive loop and blocks until the user quits.
func Run(cfg appconfig.Config, searcher Searcher, chunkCount int) error {
	p := tea.NewProgram(initialModel(cfg, searcher, chunkCount), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.refresh()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.textArea, cmd = m.textArea.Update(msg)
	cmds = append(cmds, cmd)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if query := strings.TrimSpace(m.textArea.Value()); query != "" {
			m.runQuery(query)
			m.textArea.Reset()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) runQuery(query string) {
	ex := exchange{id: uuid.NewString(), query: query}
	if m.searcher != nil {
		ex.results = m.searcher.Search(query, m.cfg.TopK)
	}
	logging.LogQuery(ex.id, ex.query, ex.results)
	m.history = append(m.history, ex)
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *model) renderHistory() string {
	if len(m.history) == 0 {
		return emptyStyle.Render(fmt.Sprintf("%d chunks loaded. Ask something.", m.chunkCount))
	}

	width := m.width - 2
	var b strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(queryStyle.Render("> " + ex.query))
		b.WriteString("\n")
		if len(ex.results) == 0 {
			b.WriteString(emptyStyle.Render("No results."))
			b.WriteString("\n")
			continue
		}
		for rank, r := range ex.results {
			b.WriteString(scoreStyle.Render(fmt.Sprintf("#%d score=%d", rank+1, r.Score)))
			b.WriteString(" ")
			b.WriteString(sourceStyle.Render(fmt.Sprintf("%s [chunk %d]", r.Source, r.ChunkID)))
			b.WriteString("\n")
			text := util.CollapseWhitespace(r.Text)
			if m.cfg.PreviewChars > 0 {
				text = util.TruncateRunes(text, m.cfg.PreviewChars)
			}
			b.WriteString(util.WrapToWidth(text, width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// View implements tea.Model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render(fmt.Sprintf("docsearch | chunks: %d | topK: %d", m.chunkCount, m.cfg.TopK))
	footer := footerStyle.Render("enter: search • ↑/↓ pgup/pgdn: scroll • esc/ctrl+c: quit")
	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, m.viewport.View(), m.textArea.View(), footer)
}
