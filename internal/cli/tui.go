package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseSections runs the interactive section browser for a document.
func browseSections(doc *docs.Document) error {
	model := newSectionBrowser(doc)
	_, err := tea.NewProgram(model).Run()
	return err
}

// sectionBrowser is the bubbletea model for navigating document sections.
// The left pane lists sections, the body pane shows the selected one.
type sectionBrowser struct {
	doc    *docs.Document
	cursor int
	height int
	scroll int
}

func newSectionBrowser(doc *docs.Document) sectionBrowser {
	return sectionBrowser{doc: doc, height: 20}
}

func (m sectionBrowser) Init() tea.Cmd {
	return nil
}

func (m sectionBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll = 0
			}
		case "down", "j":
			if m.cursor < len(m.doc.Sections)-1 {
				m.cursor++
				m.scroll = 0
			}
		case "pgdown", " ":
			m.scroll += m.bodyHeight()
		case "pgup":
			m.scroll -= m.bodyHeight()
			if m.scroll < 0 {
				m.scroll = 0
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.height < 10 {
			m.height = 10
		}
	}
	return m, nil
}

func (m sectionBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.doc.Key.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ section  space/pgup scroll  q quit"))
	b.WriteString("\n\n")

	for i, sec := range m.doc.Sections {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		heading := sec.Heading
		if heading == "" {
			heading = string(sec.Label)
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("[%s] %s", sec.Label, heading)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := strings.Split(strings.TrimSpace(m.doc.Sections[m.cursor].Body), "\n")
	start := m.scroll
	if start >= len(body) {
		start = max(0, len(body)-1)
	}
	end := start + m.bodyHeight()
	if end > len(body) {
		end = len(body)
	}
	for _, line := range body[start:end] {
		b.WriteString("  " + line + "\n")
	}
	if end < len(body) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more lines", len(body)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// bodyHeight is the space left for the body pane under the section list.
func (m sectionBrowser) bodyHeight() int {
	h := m.height - len(m.doc.Sections) - 6
	if h < 4 {
		h = 4
	}
	return h
}
