// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conchshell/conch/lib/version"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

type keyMap struct {
	Quit     key.Binding
	Scroll   key.Binding
	Complete key.Binding
	Erase    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+f"), key.WithHelp("pgup/pgdn", "scroll")),
		Complete: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Erase:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase")),
	}
}

type model struct {
	eng        *engine
	keys       keyMap
	vp         viewport.Model
	transcript []string
	prompt     string
	width      int
	height     int
	ready      bool
}

func newModel(eng *engine, prompt string) model {
	return model{
		eng:    eng,
		keys:   newKeyMap(),
		prompt: prompt,
		transcript: []string{
			"conch " + version.Short() + " — type 'help' for commands",
		},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, input line, and footer each take one row.
		body := msg.Height - 3
		if body < 1 {
			body = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, body)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = body
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Complete):
		return m.completeLine()

	case key.Matches(msg, m.keys.Erase):
		m.eng.feed([]byte{0x08})
		return m, nil

	case msg.Type == tea.KeySpace:
		m.eng.feed([]byte{' '})
		return m, nil

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= 0x20 && r < 0x7F {
				m.eng.feed([]byte{byte(r)})
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) completeLine() (tea.Model, tea.Cmd) {
	echoed := m.prompt + m.eng.line()
	m.transcript = append(m.transcript, echoStyle.Render(echoed))
	output := m.eng.feed([]byte{'\r'})
	m.transcript = append(m.transcript, output...)

	if m.eng.exit {
		return m, tea.Quit
	}
	if m.eng.clear {
		m.eng.clear = false
		m.transcript = nil
	}
	m.syncViewport()
	m.vp.GotoBottom()
	return m, nil
}

func (m *model) syncViewport() {
	if !m.ready {
		return
	}
	m.vp.SetContent(strings.Join(m.transcript, "\n"))
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("conch console"))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString(m.eng.line())
	b.WriteString(cursorStyle.Render(" "))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter run · backspace erase · pgup/pgdn scroll · ctrl+c quit"))
	return b.String()
}
