package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phinze/niceview/internal/app"
	"github.com/phinze/niceview/internal/config"
	"github.com/phinze/niceview/internal/display"
	"github.com/phinze/niceview/internal/display/term"
	"github.com/phinze/niceview/internal/modules/sim"
)

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

type model struct {
	kb      *sim.Keyboard
	frame   *display.Frame
	failing bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case term.FrameMsg:
		m.frame = msg.Frame
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.kb.AdjustBattery(10)
		case "down":
			m.kb.AdjustBattery(-10)
		case "f":
			m.failing = !m.failing
			m.kb.FailBattery(m.failing)
		case "u":
			m.kb.ToggleUSB()
		case "e":
			m.kb.ToggleEndpoint()
		case "p":
			m.kb.NextProfile()
		case "c":
			m.kb.ToggleConnected()
		case "x":
			m.kb.ClearProfile()
		case "l":
			m.kb.NextLayer()
		case " ":
			m.kb.Type()
		case "r":
			m.kb.Reset()
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.frame == nil {
		return "waiting for first frame..."
	}

	level, err := m.kb.StateOfCharge()
	gauge := "ok"
	if err != nil {
		gauge = "failing"
	}
	line := fmt.Sprintf("battery %d%% (%s)  ·  layer %d  ·  profile %d  ·  wpm %d",
		level, gauge, m.kb.HighestLayerActive(), m.kb.ActiveProfileIndex()+1, m.kb.WPM())

	var b strings.Builder
	b.WriteString(term.Render(m.frame))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(line))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ battery  f gauge failure  u usb  e output  p profile  c connect  x clear  l layer  space type  r reset  q quit"))
	return b.String()
}

func main() {
	if path := os.Getenv("NICEVIEW_TUI_LOG"); path != "" {
		f, err := tea.LogToFile(path, "niceview")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	a, err := app.New(cfg, time.Second)
	if err != nil {
		log.Fatalf("Failed to build display: %v", err)
	}

	p := tea.NewProgram(model{kb: a.Keyboard}, tea.WithAltScreen())
	a.Coordinator.AddSink(term.NewSink(p))
	a.Listen()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := a.Coordinator.Start(ctx); err != nil {
			log.Printf("Failed to start coordinator: %v", err)
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}

	cancel()
	a.Coordinator.Stop()
}
