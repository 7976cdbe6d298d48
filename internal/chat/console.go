package chat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	channelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	whisperStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ConsoleChannel renders channel traffic to a terminal. Editable messages are
// re-printed on update rather than redrawn in place; a scrollback is closer
// to how a chat channel reads anyway.
type ConsoleChannel struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleChannel creates a console-backed channel
func NewConsoleChannel(out io.Writer) *ConsoleChannel {
	return &ConsoleChannel{out: out}
}

// Send posts a message to the console
func (c *ConsoleChannel) Send(text string) EditableMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, channelStyle.Render(text))
	return &consoleMessage{channel: c}
}

type consoleMessage struct {
	channel *ConsoleChannel
}

// Update re-posts countdown edits. Only the final seconds are echoed so the
// scrollback isn't a wall of ticks.
func (m *consoleMessage) Update(text string) {
	if !strings.Contains(text, " 5 ") && !strings.Contains(text, " 10 ") {
		return
	}
	m.channel.mu.Lock()
	defer m.channel.mu.Unlock()
	fmt.Fprintln(m.channel.out, promptStyle.Render(text))
}

// ConsolePlayerChannel whispers to one seat on the shared console
type ConsolePlayerChannel struct {
	Name    string
	Console *ConsoleChannel
}

// Send prints a whisper-styled private line
func (p *ConsolePlayerChannel) Send(text string) {
	p.Console.mu.Lock()
	defer p.Console.mu.Unlock()
	fmt.Fprintln(p.Console.out, whisperStyle.Render(fmt.Sprintf("(to %s) %s", p.Name, text)))
}

// ReadConsoleMessages pumps lines typed on the reader into a message stream.
// Lines take the form "name: action" or, with a default sender, just the
// action text. The channel closes when the reader is exhausted.
func ReadConsoleMessages(r io.Reader, defaultSender string) <-chan Message {
	messages := make(chan Message)
	go func() {
		defer close(messages)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			sender := defaultSender
			if name, rest, ok := strings.Cut(line, ":"); ok {
				sender = strings.TrimSpace(name)
				line = strings.TrimSpace(rest)
			}
			messages <- Message{SenderID: sender, Text: line}
		}
	}()
	return messages
}
