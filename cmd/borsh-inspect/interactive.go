package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	codec    codec.Codec[any]
	typ      *schema.Type
	result   string
	input    textinput.Model
	encoding int
	offset   int
	size     int
}

func newInteractiveModel(c codec.Codec[any], typ *schema.Type, opts options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "paste account or instruction data"
	ti.Prompt = "data: "
	ti.Width = 80
	ti.CharLimit = 0
	ti.Focus()

	m := &interactiveModel{codec: c, typ: typ, input: ti, offset: opts.offset}
	for i, e := range encodings {
		if e == opts.encoding {
			m.encoding = i
		}
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.encoding = (m.encoding + 1) % len(encodings)
			m.decode()
			return m, nil
		case "ctrl+u":
			m.input.SetValue("")
			m.decode()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.decode()
	return m, cmd
}

// decode refreshes the result from the current input.
func (m *interactiveModel) decode() {
	m.result, m.err, m.size = "", nil, 0
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	data, err := decodeInput(m.input.Value(), encodings[m.encoding])
	if err != nil {
		m.err = err
		return
	}
	v, n, err := codec.Deserialize(m.codec, data, m.offset)
	if err != nil {
		m.err = err
		return
	}
	var b strings.Builder
	writeTree(&b, v, 0)
	m.result = b.String()
	m.size = n
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Borsh Inspector"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(m.typ.String()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("[" + encodings[m.encoding] + "]"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(fmt.Sprintf("%d bytes", m.size)))
		b.WriteString("\n")
		b.WriteString(m.result)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab encoding • ctrl+u clear • esc quit"))
	return b.String()
}

func runInteractive(c codec.Codec[any], typ *schema.Type, opts options) error {
	p := tea.NewProgram(newInteractiveModel(c, typ, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
