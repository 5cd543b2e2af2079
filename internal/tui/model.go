package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	whiteLevel = 150
	barWidth   = 32
	largeStep  = 16
)

var channelNames = [3]string{`Red`, `Green`, `Blue`}

// Sender delivers LED frames to the server.  *gohyperion.Client implements it.
type Sender interface {
	SendLEDFrame(data []byte, priority int, duration time.Duration) error
}

type sentMsg struct {
	frame   [3]uint8
	skipped bool
	err     error
}

// frameSender serializes frames onto a Sender, which is not safe for
// concurrent use.  bubbletea runs each command in its own goroutine, so
// frames may arrive out of order: any frame older than the last one delivered
// is skipped.
type frameSender struct {
	sender    Sender
	priority  int
	issued    uint64
	delivered uint64
	sync.Mutex
}

// next returns the sequence number for a new frame
func (f *frameSender) next() uint64 {
	f.Lock()
	defer f.Unlock()
	f.issued++
	return f.issued
}

func (f *frameSender) send(seq uint64, frame [3]uint8) (bool, error) {
	f.Lock()
	defer f.Unlock()
	if seq <= f.delivered {
		return false, nil
	}
	f.delivered = seq
	return true, f.sender.SendLEDFrame(frame[:], f.priority, 0)
}

// Model is the bubbletea model of the color picker
type Model struct {
	frames   *frameSender
	channels [3]uint8
	focus    int
	white    bool
	sent     bool
	err      error
	keys     keyMap
	help     help.Model
}

// New returns a color picker sending through sender at the given priority
func New(sender Sender, priority int) Model {
	return Model{
		frames: &frameSender{sender: sender, priority: priority},
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Run starts the color picker on the terminal and blocks until it exits
func Run(sender Sender, priority int) error {
	_, err := tea.NewProgram(New(sender, priority), tea.WithAltScreen()).Run()
	return err
}

// Color returns the currently selected red, green and blue values
func (m Model) Color() (uint8, uint8, uint8) {
	return m.channels[0], m.channels[1], m.channels[2]
}

// White reports whether the white toggle is on
func (m Model) White() bool {
	return m.white
}

// Err returns the error of the last send, if any
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sentMsg:
		if msg.skipped {
			return m, nil
		}
		m.err = msg.err
		m.sent = msg.err == nil
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus + len(m.channels) - 1) % len(m.channels)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % len(m.channels)
		return m, nil
	case key.Matches(msg, m.keys.Increase):
		return m.adjust(1)
	case key.Matches(msg, m.keys.Decrease):
		return m.adjust(-1)
	case key.Matches(msg, m.keys.IncreaseLg):
		return m.adjust(largeStep)
	case key.Matches(msg, m.keys.DecreaseLg):
		return m.adjust(-largeStep)
	case key.Matches(msg, m.keys.White):
		m.white = !m.white
		level := uint8(0)
		if m.white {
			level = whiteLevel
		}
		m.channels = [3]uint8{level, level, level}
		return m, m.send()
	case key.Matches(msg, m.keys.Send):
		return m, m.send()
	}
	return m, nil
}

func (m Model) adjust(delta int) (tea.Model, tea.Cmd) {
	v := int(m.channels[m.focus]) + delta
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	if uint8(v) == m.channels[m.focus] {
		return m, nil
	}
	m.channels[m.focus] = uint8(v)
	return m, m.send()
}

func (m Model) send() tea.Cmd {
	frame := m.channels
	frames := m.frames
	seq := frames.next()
	return func() tea.Msg {
		sent, err := frames.send(seq, frame)
		return sentMsg{frame: frame, skipped: !sent, err: err}
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(`Hyperion color picker`))
	b.WriteString("\n\n")

	bars := make([]string, 0, len(m.channels))
	for i, v := range m.channels {
		style := labelStyle
		if i == m.focus {
			style = focusStyle
		}
		bars = append(bars, style.Render(channelNames[i])+bar(v, channelColors[i])+fmt.Sprintf(" %3d", v))
	}
	r, g, bl := m.Color()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(bars, "\n"), `  `, swatch(r, g, bl)))
	b.WriteString("\n\n")

	status := fmt.Sprintf("(R, G, B): %d, %d, %d", r, g, bl)
	if m.white {
		status += `  white`
	}
	b.WriteString(status)
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(`send failed: ` + m.err.Error()))
	case m.sent:
		b.WriteString(mutedStyle.Render(`sent`))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func bar(v uint8, color string) string {
	filled := int(v) * barWidth / 255
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat(`█`, filled)) +
		mutedStyle.Render(strings.Repeat(`░`, barWidth-filled))
}
