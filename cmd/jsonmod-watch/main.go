// Command jsonmod-watch replays a command script against the document
// engine one line at a time, rendering a live terminal dashboard of the
// engine's metrics as each command lands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"go.jsondoc.dev/jsondoc/command"
	"go.jsondoc.dev/jsondoc/config"
	"go.jsondoc.dev/jsondoc/hostcmd"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: jsonmod-watch <script>")
		os.Exit(1)
	}

	lines, err := readLines(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading script: %v\n", err)
		os.Exit(1)
	}

	m := &model{
		eng:   command.New(config.NewLimits()),
		lines: lines,
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // script path is a CLI argument.
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" && line[0] != '#' {
			lines = append(lines, line)
		}
	}

	return lines, scanner.Err()
}

type tickMsg struct{}

// model is the bubbletea model driving the live metrics dashboard.
type model struct {
	eng     *command.Engine
	lines   []string
	pos     int
	lastCmd string
	lastErr string
	done    bool
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		if m.pos >= len(m.lines) {
			m.done = true

			return m, nil
		}

		line := m.lines[m.pos]
		m.pos++
		m.lastCmd = line

		tokens, err := hostcmd.Tokenize(line)
		if err == nil {
			_, err = hostcmd.Dispatch(m.eng, tokens)
		}

		if err != nil {
			m.lastErr = err.Error()
		} else {
			m.lastErr = ""
		}

		return m, tick()
	}

	return m, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m *model) View() tea.View {
	snap := m.eng.Metrics().Snapshot()

	var sb []byte

	sb = append(sb, headerStyle.Render("jsonmod-watch")...)
	sb = append(sb, '\n', '\n')

	sb = appendField(sb, "progress", fmt.Sprintf("%d/%d", m.pos, len(m.lines)))
	sb = appendField(sb, "documents", fmt.Sprintf("%d", snap.NumDocuments))
	sb = appendField(sb, "memory bytes", fmt.Sprintf("%d", snap.TotalMemoryBytes))
	sb = appendField(sb, "max depth seen", fmt.Sprintf("%d", snap.MaxPathDepthEverSeen))
	sb = appendField(sb, "max size seen", fmt.Sprintf("%d", snap.MaxDocSizeEverSeen))
	sb = appendField(sb, "last command", m.lastCmd)

	sb = append(sb, '\n')

	if m.lastErr != "" {
		sb = append(sb, errStyle.Render(m.lastErr)...)
		sb = append(sb, '\n')
	}

	if m.done {
		sb = append(sb, labelStyle.Render("done -- press q to quit")...)
		sb = append(sb, '\n')
	}

	v := tea.NewView(string(sb))
	v.AltScreen = true

	return v
}

func appendField(sb []byte, label, value string) []byte {
	sb = append(sb, labelStyle.Render(label+":")...)
	sb = append(sb, ' ')
	sb = append(sb, value...)
	sb = append(sb, '\n')

	return sb
}
