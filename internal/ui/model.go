package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/showcase/internal/browse"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/route"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *browse.Controller
	ThemeName  string
	PrefsPath  string
	Log        *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *browse.Controller
	log       *zap.Logger
	prefsPath string

	// UI state
	theme     Theme
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	gotoInput textinput.Model
	prompting bool
	width     int
	height    int

	// Data state
	state  browse.State
	status string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "go to: "
	input.Placeholder = "id or slug"
	input.CharLimit = 128

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		log:       log,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		gotoInput: input,
	}
	if m.ctrl != nil {
		m.state = m.ctrl.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		m.state = browse.State(msg)
		return m, nil

	case opDoneMsg:
		m.state = msg.state
		if msg.err != nil {
			m.status = msg.err.Error()
			m.log.Warn("catalog operation failed", zap.String("op", msg.op), zap.Error(msg.err))
		} else {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input outside the goto prompt.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		p := prefs.Prefs{Theme: m.theme.Name, LastProductID: m.state.CurrentID}
		if err := prefs.Save(m.prefsPath, p); err != nil {
			m.status = fmt.Sprintf("save prefs: %v", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.opCmd("next", m.ctrl.Next)

	case key.Matches(msg, m.keys.Prev):
		return m, m.opCmd("prev", m.ctrl.Prev)

	case key.Matches(msg, m.keys.GoTo):
		m.prompting = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()
	}

	return m, nil
}

// handlePromptKey processes keyboard input while the goto prompt is open.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.gotoInput.Value())
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		ref, err := route.ParseRef(value)
		if err != nil {
			m.status = fmt.Sprintf("not a product: %q", value)
			return m, nil
		}
		if m.state.MaxID > 0 && ref.ID > m.state.MaxID {
			m.status = fmt.Sprintf("product %d is out of range (1-%d)", ref.ID, m.state.MaxID)
			return m, nil
		}
		id := ref.ID
		return m, m.opCmd("goto", func(ctx context.Context) error {
			return m.ctrl.GoTo(ctx, id)
		})
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.gotoInput.Blur()
	m.gotoInput.SetValue("")
}

// Messages

type stateMsg browse.State

type opDoneMsg struct {
	op    string
	state browse.State
	err   error
}

// Commands

// startCmd sizes the catalog and loads the current product. A failed count
// still attempts the load so a product can show while the count recovers.
func (m Model) startCmd() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		initErr := ctrl.Init(ctx)
		loadErr := ctrl.Load(ctx)
		return opDoneMsg{op: "load", state: ctrl.State(), err: errors.Join(initErr, loadErr)}
	}
}

func (m Model) opCmd(op string, fn func(context.Context) error) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		return opDoneMsg{op: op, state: ctrl.State(), err: err}
	}
}
