// Package picker implements the interactive fuzzy picker and the new-project prompt.
package picker

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/sahilm/fuzzy"

	"github.com/zhubert/hopper/internal/keys"
	"github.com/zhubert/hopper/internal/ui"
)

// QueryCharLimit caps the length of the query line.
const QueryCharLimit = 256

// Item is one row in the picker.
type Item struct {
	Label  string // text shown and matched against the query
	Pinned bool   // always listed first, whatever the query
}

type match struct {
	index   int   // into Model.items
	matched []int // byte offsets into the label to highlight
}

// Model is the Bubble Tea model behind the picker.
type Model struct {
	title string
	items []Item
	input textinput.Model

	matches      []match
	cursor       int
	scrollOffset int
	maxVisible   int
	width        int

	chosen    int
	cancelled bool
}

// NewModel returns a picker over items. An empty query lists every item in input order.
func NewModel(title string, items []Item) *Model {
	input := textinput.New()
	input.Placeholder = "Type to filter..."
	input.CharLimit = QueryCharLimit
	input.SetWidth(ui.DefaultWidth - 8)
	input.Focus()

	m := &Model{
		title:      title,
		items:      items,
		input:      input,
		maxVisible: ui.PickerMaxVisible,
		width:      ui.DefaultWidth,
		chosen:     -1,
	}
	m.filter()
	return m
}

// Selected returns the index of the chosen item. ok is false if the user cancelled.
func (m *Model) Selected() (index int, ok bool) {
	if m.cancelled || m.chosen < 0 {
		return -1, false
	}
	return m.chosen, true
}

// Query returns the current query text.
func (m *Model) Query() string {
	return m.input.Value()
}

// Visible returns the labels currently listed, in display order.
func (m *Model) Visible() []string {
	out := make([]string, len(m.matches))
	for i, mt := range m.matches {
		out[i] = m.items[mt.index].Label
	}
	return out
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.Escape, keys.CtrlC:
			m.cancelled = true
			return m, tea.Quit
		case keys.Enter:
			if len(m.matches) == 0 {
				return m, nil
			}
			m.chosen = m.matches[m.cursor].index
			return m, tea.Quit
		case keys.Up, keys.CtrlP, keys.CtrlK:
			m.move(-1)
			return m, nil
		case keys.Down, keys.CtrlN, keys.CtrlJ, keys.Tab:
			m.move(1)
			return m, nil
		case keys.PgUp:
			m.move(-m.maxVisible)
			return m, nil
		case keys.PgDown:
			m.move(m.maxVisible)
			return m, nil
		case keys.CtrlU:
			m.input.SetValue("")
			m.filter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	oldQuery := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != oldQuery {
		m.filter()
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = max(width, ui.MinWidth)
	m.input.SetWidth(m.width - 8)

	// two border lines plus title, query, blank and help
	m.maxVisible = min(ui.PickerMaxVisible, max(1, height-2-ui.PickerChrome))
	m.clampScroll()
}

func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.maxVisible {
		m.scrollOffset = m.cursor - m.maxVisible + 1
	}
}

// itemSource exposes the unpinned items to the fuzzy matcher.
type itemSource struct {
	items []Item
	index []int
}

func (s itemSource) String(i int) string { return s.items[s.index[i]].Label }
func (s itemSource) Len() int            { return len(s.index) }

// filter recomputes the visible rows. Pinned items come first; the rest are
// ranked by how well the query names their last path element, then by fuzzy
// score, or kept in input order when the query is empty.
func (m *Model) filter() {
	query := strings.TrimSpace(m.input.Value())
	m.matches = m.matches[:0]

	src := itemSource{items: m.items}
	for i, it := range m.items {
		if it.Pinned {
			m.matches = append(m.matches, match{index: i})
		} else {
			src.index = append(src.index, i)
		}
	}

	pinned := len(m.matches)
	if query == "" {
		for _, i := range src.index {
			m.matches = append(m.matches, match{index: i})
		}
	} else {
		ranked := fuzzy.FindFrom(query, src)
		slices.SortStableFunc(ranked, func(a, b fuzzy.Match) int {
			return baseRank(a.Str, query) - baseRank(b.Str, query)
		})
		for _, r := range ranked {
			m.matches = append(m.matches, match{index: src.index[r.Index], matched: r.MatchedIndexes})
		}
	}

	// With a query the best match is the default, not the pinned rows.
	m.cursor = 0
	if query != "" && len(m.matches) > pinned {
		m.cursor = pinned
	}
	m.scrollOffset = 0
	m.clampScroll()
}

// baseRank orders fuzzy matches by how the query fits the last path element:
// 0 for a prefix, 1 for a substring, 2 otherwise. Ties keep the fuzzy order.
func baseRank(label, query string) int {
	base := strings.ToLower(path.Base(label))
	q := strings.ToLower(query)
	switch {
	case strings.HasPrefix(base, q):
		return 0
	case strings.Contains(base, q):
		return 1
	default:
		return 2
	}
}

func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	innerWidth := m.width - 4 // border and padding
	title := ui.PickerTitleStyle.Render(m.title)
	count := ui.PickerCountStyle.Render(fmt.Sprintf("%d/%d", m.countUnpinned(), m.totalUnpinned()))
	gap := max(1, innerWidth-lipgloss.Width(title)-lipgloss.Width(count))
	header := title + strings.Repeat(" ", gap) + count

	query := ui.PickerQueryStyle.Render(m.input.View())

	var rows []string
	if len(m.matches) == 0 {
		rows = append(rows, ui.PickerEmptyStyle.Render("No matches"))
	} else {
		end := min(m.scrollOffset+m.maxVisible, len(m.matches))
		for i := m.scrollOffset; i < end; i++ {
			rows = append(rows, m.renderRow(i, innerWidth))
		}
	}

	help := ui.PickerHelpStyle.Render("↑/↓ move  enter select  ctrl+u clear  esc cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		query,
		"",
		strings.Join(rows, "\n"),
		help,
	)
	return ui.PickerStyle.Width(m.width).Render(content)
}

func (m *Model) renderRow(i, width int) string {
	mt := m.matches[i]
	item := m.items[mt.index]

	prefix := "  "
	if i == m.cursor {
		prefix = "> "
	}
	label := highlight(item.Label, mt.matched, width-len(prefix)-2)

	switch {
	case i == m.cursor:
		return ui.PickerSelectedStyle.Render(prefix + label)
	case item.Pinned:
		return ui.PickerSpecialStyle.Render(prefix + label)
	default:
		return ui.PickerItemStyle.Render(prefix + label)
	}
}

func (m *Model) countUnpinned() int {
	n := 0
	for _, mt := range m.matches {
		if !m.items[mt.index].Pinned {
			n++
		}
	}
	return n
}

func (m *Model) totalUnpinned() int {
	n := 0
	for _, it := range m.items {
		if !it.Pinned {
			n++
		}
	}
	return n
}

// highlight truncates label to width cells and styles the grapheme clusters
// containing a matched byte. Clusters are styled whole so combining marks and
// joined emoji are never split by escape codes.
func highlight(label string, matched []int, width int) string {
	plain := ansi.Truncate(label, max(width, 1), "…")
	if len(matched) == 0 {
		return plain
	}

	keep := len(plain)
	if plain != label {
		keep = len(strings.TrimSuffix(plain, "…"))
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var sb strings.Builder
	gr := uniseg.NewGraphemes(plain)
	for gr.Next() {
		start, end := gr.Positions()
		cluster := gr.Str()
		if start < keep && anyHit(hit, start, end) {
			sb.WriteString(ui.PickerMatchStyle.Render(cluster))
		} else {
			sb.WriteString(cluster)
		}
	}
	return sb.String()
}

func anyHit(hit map[int]bool, start, end int) bool {
	for i := start; i < end; i++ {
		if hit[i] {
			return true
		}
	}
	return false
}
