package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/label"
	"github.com/five82/labelprint/internal/logtail"
	"github.com/five82/labelprint/internal/paste"
	"github.com/five82/labelprint/internal/prefs"
	"github.com/five82/labelprint/internal/state"
)

// view is the screen currently shown.
type view int

const (
	viewLabels view = iota
	viewConfig
	viewLog
)

// focus is the labels-screen widget receiving keys.
type focus int

const (
	focusTable focus = iota
	focusFirst
	focusLast
)

// tone colors the status line.
type tone int

const (
	toneInfo tone = iota
	toneOK
	toneError
)

const (
	refreshEvery = 2 * time.Second
	logTailLines = 400
)

// Printer parses pasted text and submits print jobs.
type Printer interface {
	Parse(text string) []label.Label
	Submit(ctx context.Context, printer string, labels []label.Label, first, last int) <-chan state.Job
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	Printer   Printer
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	Text      string // rows shown at startup
	Describe  func(error) string
	Log       logrus.FieldLogger

	// ReadClipboard defaults to paste.Clipboard.
	ReadClipboard func() (string, error)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx           context.Context
	cfg           config.Config
	printer       Printer
	store         *state.Store
	prefs         prefs.Prefs
	prefsPath     string
	describe      func(error) string
	log           logrus.FieldLogger
	readClipboard func() (string, error)

	keys     keyMap
	theme    Theme
	view     view
	focus    focus
	width    int
	height   int
	ready    bool
	showHelp bool

	columns    []column
	labels     []label.Label
	table      table.Model
	first      textinput.Model
	last       textinput.Model
	printerIdx int

	printing bool
	status   string
	tone     tone
	snapshot state.Snapshot

	viewport     viewport.Model
	logLines     []string
	logErr       error
	warningsOnly bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	describe := opts.Describe
	if describe == nil {
		describe = func(err error) string {
			if err == nil {
				return "Request sent."
			}
			return err.Error()
		}
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	readClipboard := opts.ReadClipboard
	if readClipboard == nil {
		readClipboard = paste.Clipboard
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:           ctx,
		cfg:           opts.Config,
		printer:       opts.Printer,
		store:         opts.Store,
		prefs:         opts.Prefs,
		prefsPath:     prefsPath,
		describe:      describe,
		log:           log,
		readClipboard: readClipboard,
		keys:          defaultKeyMap(),
		theme:         GetTheme(opts.Prefs.Theme),
		columns:       labelColumns(opts.Config),
		first:         newRangeInput(),
		last:          newRangeInput(),
		viewport:      viewport.New(80, 20),
	}

	m.table = table.New(
		table.WithColumns(tableColumns(m.columns, 80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.table.SetStyles(m.theme.Table(true))

	preferred := opts.Prefs.PreferredPrinter(opts.Config.Printers)
	for i, name := range opts.Config.Printers {
		if name == preferred {
			m.printerIdx = i
		}
	}

	if opts.Text != "" && m.printer != nil {
		m.setLabels(m.printer.Parse(opts.Text))
	}
	return m
}

func newRangeInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "-"
	ti.CharLimit = 5
	ti.Width = 5
	ti.SetValue("1")
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(refreshEvery)}
	if m.store != nil {
		cmds = append(cmds, snapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case pastedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("clipboard read failed")
			m.setStatus(m.describe(msg.err), toneError)
			return m, nil
		}
		m.setLabels(m.printer.Parse(msg.text))
		m.setStatus(fmt.Sprintf("Pasted %d row(s).", len(m.labels)), toneInfo)
		return m, nil

	case jobMsg:
		m.printing = false
		job := state.Job(msg)
		if job.Err != nil {
			m.setStatus(m.describe(job.Err), toneError)
		} else {
			m.setStatus(m.describe(nil), toneOK)
			m.rememberPrinter()
		}
		if m.store != nil {
			return m, snapshotCmd(m.store)
		}
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(refreshEvery)}
		if m.store != nil {
			cmds = append(cmds, snapshotCmd(m.store))
		}
		if m.view == viewLog {
			cmds = append(cmds, readLogCmd(m.cfg.LogFile))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.table.SetStyles(m.theme.Table(m.focus == focusTable))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.view = viewLabels
		return m, nil

	case key.Matches(msg, m.keys.ViewConfig):
		m.view = viewConfig
		m.updateConfigViewport()
		return m, nil

	case key.Matches(msg, m.keys.ViewLog):
		m.view = viewLog
		return m, readLogCmd(m.cfg.LogFile)
	}

	switch m.view {
	case viewLog:
		if key.Matches(msg, m.keys.WarningsOnly) {
			m.warningsOnly = !m.warningsOnly
			m.updateLogViewport()
			return m, nil
		}
		fallthrough
	case viewConfig:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	default:
		return m.handleLabelsKey(msg)
	}
}

func (m Model) handleLabelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Paste):
		if m.printing {
			return m, nil
		}
		return m, pasteCmd(m.readClipboard)

	case key.Matches(msg, m.keys.Clear):
		if m.printing {
			return m, nil
		}
		m.setLabels(nil)
		m.setStatus("", toneInfo)
		return m, nil

	case key.Matches(msg, m.keys.PrevPrinter):
		m.cyclePrinter(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextPrinter):
		m.cyclePrinter(1)
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		return m, m.cycleFocus()

	case key.Matches(msg, m.keys.Print):
		return m.startPrint()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusFirst:
		if digitsOnly(msg) {
			m.first, cmd = m.first.Update(msg)
		}
	case focusLast:
		if digitsOnly(msg) {
			m.last, cmd = m.last.Update(msg)
		}
	default:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// digitsOnly rejects typed characters other than digits. Editing keys such
// as backspace pass through.
func digitsOnly(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return true
	}
	for _, r := range msg.Runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// setLabels replaces the table contents and selects every row.
func (m *Model) setLabels(labels []label.Label) {
	m.labels = labels
	m.table.SetRows(tableRows(m.columns, labels))
	m.table.SetCursor(0)
	m.first.SetValue("1")
	m.last.SetValue(strconv.Itoa(max(len(labels), 1)))
}

// selection returns the typed range and whether it selects at least one row.
func (m Model) selection() (int, int, bool) {
	first, err := strconv.Atoi(m.first.Value())
	if err != nil {
		return 0, 0, false
	}
	last, err := strconv.Atoi(m.last.Value())
	if err != nil {
		return 0, 0, false
	}
	return first, last, label.ValidRange(first, last, len(m.labels))
}

// canPrint reports whether the print action is enabled.
func (m Model) canPrint() bool {
	_, _, ok := m.selection()
	return ok && !m.printing && m.currentPrinter() != "" && m.printer != nil
}

func (m Model) startPrint() (tea.Model, tea.Cmd) {
	if !m.canPrint() {
		return m, nil
	}
	first, last, _ := m.selection()
	printer := m.currentPrinter()
	m.printing = true
	m.setStatus(fmt.Sprintf("Printing rows %d-%d on %s...", first, last, printer), toneInfo)
	return m, waitJobCmd(m.printer.Submit(m.ctx, printer, m.labels, first, last))
}

func (m Model) currentPrinter() string {
	if len(m.cfg.Printers) == 0 {
		return ""
	}
	return m.cfg.Printers[m.printerIdx%len(m.cfg.Printers)]
}

func (m *Model) cyclePrinter(delta int) {
	n := len(m.cfg.Printers)
	if n == 0 || m.printing {
		return
	}
	m.printerIdx = ((m.printerIdx+delta)%n + n) % n
	m.rememberPrinter()
}

func (m *Model) rememberPrinter() {
	if name := m.currentPrinter(); name != "" && name != m.prefs.Printer {
		m.prefs.Printer = name
		m.savePrefs()
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("could not save preferences")
	}
}

// cycleFocus moves focus table → first → last → table.
func (m *Model) cycleFocus() tea.Cmd {
	m.focus = (m.focus + 1) % 3
	m.table.Blur()
	m.first.Blur()
	m.last.Blur()

	var cmd tea.Cmd
	switch m.focus {
	case focusTable:
		m.table.Focus()
	case focusFirst:
		cmd = m.first.Focus()
	case focusLast:
		cmd = m.last.Focus()
	}
	m.table.SetStyles(m.theme.Table(m.focus == focusTable))
	return cmd
}

func (m *Model) setStatus(text string, t tone) {
	m.status = text
	m.tone = t
}

// chromeLines is the number of lines around the table on the labels screen.
const chromeLines = 7

func (m *Model) resize() {
	m.table.SetColumns(tableColumns(m.columns, m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.height-chromeLines, 3))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-4, 1)
	m.updateConfigViewport()
	m.updateLogViewport()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type jobMsg state.Job

type pastedMsg struct {
	text string
	err  error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func pasteCmd(read func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := read()
		return pastedMsg{text: text, err: err}
	}
}

func waitJobCmd(done <-chan state.Job) tea.Cmd {
	return func() tea.Msg {
		job, ok := <-done
		if !ok {
			return jobMsg{Err: errors.New("print job ended without a result")}
		}
		return jobMsg(job)
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the operator quits or
// the context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
