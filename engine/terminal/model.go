// Package terminal hosts a camera rig in a bubbletea terminal UI. Arrow keys (or WASD/HJKL)
// become directional input, a tea.Tick drives the rig's Tick, and the view shows the
// current preset, its neighbors, the transition progress and the camera pose.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
)

// PoseReader is the read side of the camera the rig drives.
type PoseReader interface {
	Position() mgl32.Vec3
	Orientation() mgl32.Quat
	Forward() mgl32.Vec3
}

// tickMsg carries the wall-clock time of a tea.Tick.
type tickMsg time.Time

// Model is the bubbletea model for the rig terminal host.
type Model struct {
	rig        rig.RigController
	camera     PoseReader
	dispatcher *input.Dispatcher

	keyMap   KeyMap
	interval time.Duration
	lastTick time.Time
	quitting bool

	styles styles
}

type styles struct {
	title    lipgloss.Style
	current  lipgloss.Style
	neighbor lipgloss.Style
	dead     lipgloss.Style
	box      lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		current:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		neighbor: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dead:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var _ tea.Model = Model{}

// NewModel creates the terminal model and subscribes rc to the model's key dispatcher.
// rc must already be initialized against the camera.
//
// Parameters:
//   - rc: the initialized rig controller
//   - camera: the pose sink rc drives, read back for display
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the model, ready for tea.NewProgram
//   - error: if the controller cannot subscribe
func NewModel(rc rig.RigController, camera PoseReader, options ...ModelOption) (Model, error) {
	m := Model{
		rig:        rc,
		camera:     camera,
		dispatcher: input.NewDispatcher(),
		keyMap:     DefaultKeyMap(),
		interval:   time.Second / 60,
		styles:     defaultStyles(),
	}
	for _, option := range options {
		option(&m)
	}
	if err := rc.Start(m.dispatcher); err != nil {
		return Model{}, fmt.Errorf("failed to start rig input: %w", err)
	}
	return m, nil
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.rig.Stop()
			return m, tea.Quit
		}
		if direction, ok := m.keyMap[key]; ok {
			m.dispatcher.Emit(direction)
		}
	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.rig.Tick(float32(now.Sub(m.lastTick).Seconds()))
		}
		m.lastTick = now
		if m.quitting {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// View implements tea.Model interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("oxy-rig"))
	b.WriteString("\n\n")

	if m.rig.Disabled() {
		b.WriteString("rig disabled: configuration error\n")
		return m.styles.box.Render(b.String())
	}

	graph := m.rig.Graph()
	current := m.rig.CurrentIndex()
	preset, _ := m.rig.CurrentPreset()
	fmt.Fprintf(&b, "preset   %s\n", m.styles.current.Render(displayName(preset.Name, current)))

	for _, dir := range rig.Directions {
		label := m.styles.dead.Render("-")
		if n, ok := graph.Neighbor(current, dir); ok {
			label = m.styles.neighbor.Render(displayName(graph.PresetAt(n).Name, n))
		}
		fmt.Fprintf(&b, "  %-6s %s\n", dir, label)
	}

	state := "idle"
	if m.rig.State() == rig.StateTransitioning {
		target := m.rig.Target()
		state = fmt.Sprintf("moving to %s", displayName(graph.PresetAt(target).Name, target))
	}
	fmt.Fprintf(&b, "\nstate    %s\n", state)
	fmt.Fprintf(&b, "progress %s\n", progressBar(m.rig.Progress(), 20))

	p := m.camera.Position()
	f := m.camera.Forward()
	fmt.Fprintf(&b, "position (%.2f, %.2f, %.2f)\n", p.X(), p.Y(), p.Z())
	fmt.Fprintf(&b, "forward  (%.2f, %.2f, %.2f)", f.X(), f.Y(), f.Z())

	return m.styles.box.Render(b.String()) + "\n" + m.styles.help.Render("arrows/wasd move, q quits") + "\n"
}

func displayName(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("#%d", index)
	}
	return name
}

func progressBar(progress float32, width int) string {
	filled := int(mgl32.Clamp(progress, 0, 1)*float32(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
