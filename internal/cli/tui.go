package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// barWidth is the width of the frequency column's bar.
const barWidth = 24

// =============================================================================
// WordListModel - Interactive ranked word browser
// =============================================================================

// WordListModel is the bubbletea model for browsing a ranked word list.
type WordListModel struct {
	Title    string
	Words    []wordfreq.WordCount
	Cursor   int
	Offset   int
	Height   int
	Selected *wordfreq.WordCount
}

// NewWordListModel creates a word list model showing words under title.
func NewWordListModel(title string, words []wordfreq.WordCount) WordListModel {
	return WordListModel{Title: title, Words: words, Height: 15}
}

func (m WordListModel) Init() tea.Cmd {
	return nil
}

func (m WordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup", "b":
			m.move(-m.Height)
		case "pgdown", "f", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Words))
		case "end", "G":
			m.move(len(m.Words))
		case "enter":
			if len(m.Words) == 0 {
				return m, tea.Quit
			}
			w := m.Words[m.Cursor]
			m.Selected = &w
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window so the cursor stays visible.
func (m *WordListModel) move(delta int) {
	if len(m.Words) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Words)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m WordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Words))
	t := wordTable(m.Words, m.Offset, end, func(i int) bool { return i == m.Cursor })
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Words) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Words))))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// wordTable renders words[from:to] as a table with rank, word, frequency
// and a proportional bar. current marks highlighted rows.
func wordTable(words []wordfreq.WordCount, from, to int, current func(int) bool) *table.Table {
	top := wordfreq.MaxFrequency(words)

	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		w := words[i]
		cursor := "  "
		if current != nil && current(i) {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor + strconv.Itoa(i+1),
			w.Text,
			strconv.Itoa(w.Frequency),
			bar(w.Frequency, top, barWidth),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Word", "Freq", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 2 {
				base = base.Align(lipgloss.Right)
			}
			idx := from + row
			if current != nil && current(idx) {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 0 {
				return base.Foreground(colorDim)
			}
			return base
		})
}
