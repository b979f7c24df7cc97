package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/tui"
)

const (
	historyCapacity = 600
	progressWidth   = 30
)

// FrameMsg carries one drawn frame from the driver goroutine.
type FrameMsg struct {
	Step   int
	Time   float64
	Frame  string
	Height float64
}

// DoneMsg reports that the driver has returned.
type DoneMsg struct {
	Err error
}

// Model is the live view of a single run.
type Model struct {
	scene   string
	steps   int
	step    int
	t       float64
	frame   string
	history []float64
	done    bool
	err     error
	cancel  context.CancelFunc
	theme   Theme
	styles  styles
}

// NewModel builds a view for a run of steps steps. cancel is called when
// the user quits so the driver stops before its next collide.
func NewModel(scene string, steps int, cancel context.CancelFunc) Model {
	theme := Themes[0]
	return Model{
		scene:   scene,
		steps:   steps,
		history: make([]float64, 0, historyCapacity),
		cancel:  cancel,
		theme:   theme,
		styles:  newStyles(theme),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		}
	case FrameMsg:
		m.step = msg.Step + 1
		m.t = msg.Time
		m.frame = msg.Frame
		m.history = append(m.history, msg.Height)
		if len(m.history) > historyCapacity {
			m.history = m.history[len(m.history)-historyCapacity:]
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) Steps() (done, total int) { return m.step, m.steps }
func (m Model) Err() error               { return m.err }

func (m Model) status() string {
	switch {
	case m.err != nil && !errors.Is(m.err, context.Canceled):
		return m.styles.failed.Render("FAILED: " + m.err.Error())
	case m.err != nil:
		return m.styles.done.Render("STOPPED")
	case m.done:
		return m.styles.done.Render("DONE")
	default:
		return m.styles.running.Render("RUNNING")
	}
}

func (m Model) View() string {
	var s strings.Builder

	fraction := 0.0
	if m.steps > 0 {
		fraction = float64(m.step) / float64(m.steps)
	}
	s.WriteString(m.styles.title.Render(strings.ToUpper(m.scene)) + "  " + m.status() + "\n")
	s.WriteString(m.styles.label.Render("step ") +
		m.styles.value.Render(fmt.Sprintf("%d/%d", m.step, m.steps)) + "  " +
		m.styles.label.Render("t ") +
		m.styles.value.Render(fmt.Sprintf("%.2fs", m.t)) + "  " +
		m.styles.graph.Render(ProgressBar(fraction, progressWidth)) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(50), asciigraph.Caption("height of body 0"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}
	s.WriteString(m.styles.help.Render("q: quit  t: theme"))

	return lipgloss.JoinVertical(lipgloss.Left, m.frame, m.styles.bar.Render(s.String()))
}

// FrameRenderer returns a render callback that draws the layout on s and
// sends the frame through send instead of writing it to a terminal.
func FrameRenderer(send func(tea.Msg), s *tui.Screen, l tui.Layout, bodies ...tui.Positioner) dynamo.RenderFunc {
	pos := make([]mgl64.Vec3, len(bodies))
	return func(sc dynamo.StepContext) error {
		for i, b := range bodies {
			pos[i] = b.Position()
		}
		s.Erase()
		l.Draw(s, sc.Time, pos)

		height := 0.0
		if len(pos) > 0 {
			height = pos[0].Z()
		}
		send(FrameMsg{Step: sc.Step, Time: sc.Time, Frame: s.String(), Height: height})
		s.Pace()
		return nil
	}
}

// RunFunc runs the simulation, sending frames through send until it
// finishes or ctx is cancelled.
type RunFunc func(ctx context.Context, send func(tea.Msg)) error

// Run shows the live view while run executes on its own goroutine. It
// returns run's error; quitting early yields context.Canceled.
func Run(ctx context.Context, scene string, steps int, run RunFunc, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(scene, steps, cancel), opts...)

	errCh := make(chan error, 1)
	go func() {
		err := run(ctx, p.Send)
		errCh <- err
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errCh
		return err
	}
	cancel()
	return <-errCh
}
