package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/rawtransfer"
	"github.com/wippyai/rawtransfer/ast"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// treeRow is one node of the browser. key is the property it hangs off.
type treeRow struct {
	node     *ast.Node
	key      string
	depth    int
	expanded bool
	children []*treeRow
}

type interactiveModel struct {
	err      error
	ctx      context.Context
	dec      *rawtransfer.Decoder
	source   string
	roots    []*treeRow
	visible  []*treeRow
	filter   textinput.Model
	selected int
	height   int
	offset   int
	loaded   bool
}

type loadedMsg struct {
	err   error
	roots []*treeRow
}

func newInteractiveModel(ctx context.Context, dec *rawtransfer.Decoder, source string) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "node type"
	ti.Width = 30
	return &interactiveModel{ctx: ctx, dec: dec, source: source, filter: ti, height: 20}
}

func runInteractive(ctx context.Context, dec *rawtransfer.Decoder, source string) error {
	p := tea.NewProgram(newInteractiveModel(ctx, dec, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	res, err := m.dec.Eager(m.ctx, m.source)
	if err != nil {
		return loadedMsg{err: err}
	}
	roots := []*treeRow{buildRow(res.Program, "program", 0)}
	for _, c := range res.Comments {
		roots = append(roots, buildRow(c, "comment", 0))
	}
	roots[0].expanded = true
	return loadedMsg{roots: roots}
}

// buildRow mirrors the node tree, one row per nested node.
func buildRow(n *ast.Node, key string, depth int) *treeRow {
	r := &treeRow{node: n, key: key, depth: depth}
	for _, p := range n.Props {
		switch v := p.Value.(type) {
		case *ast.Node:
			r.children = append(r.children, buildRow(v, p.Key, depth+1))
		case []any:
			for i, e := range v {
				if c, ok := e.(*ast.Node); ok {
					r.children = append(r.children, buildRow(c, fmt.Sprintf("%s[%d]", p.Key, i), depth+1))
				}
			}
		}
	}
	return r
}

// flatten lists the rows to show. With a filter every matching node is
// listed regardless of expansion.
func (m *interactiveModel) flatten() {
	m.visible = m.visible[:0]
	query := strings.ToLower(m.filter.Value())
	var walk func(rows []*treeRow)
	walk = func(rows []*treeRow) {
		for _, r := range rows {
			match := query == "" || strings.Contains(strings.ToLower(r.node.Type), query)
			if match {
				m.visible = append(m.visible, r)
			}
			if query != "" || r.expanded {
				walk(r.children)
			}
		}
	}
	walk(m.roots)
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)

	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.roots = msg.roots
		m.flatten()

	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.flatten()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.flatten()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter", " ", "right", "l":
			if m.selected < len(m.visible) {
				r := m.visible[m.selected]
				r.expanded = !r.expanded || msg.String() == "right" || msg.String() == "l"
				m.flatten()
			}

		case "left", "h":
			if m.selected < len(m.visible) {
				m.visible[m.selected].expanded = false
				m.flatten()
			}

		case "/":
			m.filter.Focus()
			return m, textinput.Blink

		case "esc":
			m.filter.SetValue("")
			m.flatten()
		}
	}

	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Decoding..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("rawast"))
	b.WriteString(fmt.Sprintf(" %d bytes, %s flavor\n\n", len(m.source), m.dec.Flavor()))

	end := min(m.offset+m.height, len(m.visible))
	for i := m.offset; i < end; i++ {
		line := m.formatRow(m.visible[i])
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.selected < len(m.visible) {
		n := m.visible[m.selected].node
		b.WriteString("\n")
		b.WriteString(sourceStyle.Render(snippet(m.source, n.Start, n.End)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter toggle • / filter • esc clear • q quit"))
	return b.String()
}

func (m *interactiveModel) formatRow(r *treeRow) string {
	marker := "  "
	if len(r.children) > 0 {
		marker = "▸ "
		if r.expanded {
			marker = "▾ "
		}
	}
	indent := ""
	if m.filter.Value() == "" {
		indent = strings.Repeat("  ", r.depth)
	}
	line := indent + marker + keyStyle.Render(r.key) + " " + typeStyle.Render(r.node.Type) +
		fmt.Sprintf(" %d-%d", r.node.Start, r.node.End)
	if name, ok := r.node.Get("name").(string); ok {
		line += " " + name
	}
	return line
}

// snippet returns the first line of the node's source, shortened.
func snippet(src string, start, end uint32) string {
	if start > end || int(end) > len(src) {
		return ""
	}
	s := src[start:end]
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	if len(s) > 80 {
		s = s[:80] + " …"
	}
	return s
}
