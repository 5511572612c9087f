package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sentrepr/internal/domain"
)

// PipelinePort is the TUI-facing subset of the pipeline service.
type PipelinePort interface {
	Find(query string) (int, error)
	Similar(original, topK int) ([]domain.SearchResult, error)
	Sentences() []domain.Sentence
}

// Model is the Bubble Tea model for browsing sentences and their neighbours.
type Model struct {
	service  PipelinePort
	input    textinput.Model
	viewport viewport.Model
	results  []domain.SearchResult
	header   string
	summary  string
	status   string
	topK     int
	cursor   int
	selected int
	ready    bool
}

// New creates a new TUI model instance.
func New(service PipelinePort, header, summary string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Sentence number or text, then Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		header:   header,
		summary:  summary,
		topK:     topK,
		selected: -1,
		status:   "Loaded. Pick a sentence to see its neighbours.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 + strings.Count(m.summary, "\n") // header + summary
		totalFooterLines := 1                                  // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m = m.lookup(q)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "tab":
			// follow the highlighted neighbour
			if len(m.results) > 0 {
				m = m.lookup(fmt.Sprint(m.results[m.cursor].Record.Index))
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) lookup(query string) Model {
	idx, err := m.service.Find(query)
	if err == nil {
		m.results, err = m.service.Similar(idx, m.topK)
	}
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		m.selected = -1
		return m
	}
	m.selected = idx
	m.cursor = 0
	m.status = fmt.Sprintf("%d neighbours of sentence %d", len(m.results), idx)
	return m
}

// View renders the TUI layout and the current neighbour list.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.header)
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if m.selected < 0 {
		return "No sentence selected."
	}
	sentences := m.service.Sentences()
	var b strings.Builder
	b.WriteString(highlightStyle.Render(fmt.Sprintf("[%d] %s", m.selected, sentences[m.selected].Text)))
	b.WriteString("\n\n")
	if len(m.results) == 0 {
		b.WriteString("No neighbours.")
		return b.String()
	}
	for i, r := range m.results {
		line := fmt.Sprintf("%.3f  [%d] %s", r.Score, r.Record.Index, r.Record.Text)
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)
