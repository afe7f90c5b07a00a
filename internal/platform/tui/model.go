package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shape-explorers/internal/adjust"
	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/level"
	"github.com/vovakirdan/shape-explorers/internal/narration"
	"github.com/vovakirdan/shape-explorers/internal/session"
	"github.com/vovakirdan/shape-explorers/internal/storage"
)

// Lines above the board in the game view: HUD, prompt, progress, blank.
const boardTopOffset = 4

// progressWidth is the width of the level progress bar.
const progressWidth = 30

// view is the screen the model is showing.
type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// Options configures a GameModel.
type Options struct {
	Config  config.Config
	Store   *storage.Store  // Optional; nil plays without persistence
	Gateway *adjust.Gateway // Optional; nil skips difficulty adjustment
	Logger  *log.Logger
	Player  string
	Seed    int64
	Width   int
	Height  int
}

// GameModel is the Bubble Tea model for one player: start menu, board,
// level-complete panel, and scoreboard.
type GameModel struct {
	sess     *session.Session
	recorder *narration.Recorder
	gateway  *adjust.Gateway
	store    *storage.Store
	logger   *log.Logger
	player   string
	cfg      config.Config

	view    view
	menu    MenuModel
	scores  ScoreboardModel
	keys    GameKeyMap
	help    help.Model
	spinner spinner.Model

	cursor    level.Cell
	flash     level.Cell
	flashKind feedbackKind
	flashSeq  int

	notice     *session.Notice
	scoreSaved bool
	width      int
	height     int
	quitting   bool
}

// NewGameModel creates a model showing the start menu.
func NewGameModel(opts Options) GameModel {
	if opts.Config.Difficulty == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	if opts.Width == 0 {
		opts.Width, opts.Height = 80, 24
	}

	recorder := narration.NewRecorder()
	logger := opts.Logger.With("player", opts.Player)

	sess := session.New(session.Options{
		Config:   opts.Config,
		Seed:     opts.Seed,
		Narrator: narration.Multi{recorder, narration.NewLogNarrator(logger)},
	})

	h := help.New()
	h.Width = opts.Width

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = promptStyle

	m := GameModel{
		sess:     sess,
		recorder: recorder,
		gateway:  opts.Gateway,
		store:    opts.Store,
		logger:   logger,
		player:   opts.Player,
		cfg:      opts.Config,
		menu:     NewMenuModel(opts.Width, opts.Store != nil),
		keys:     DefaultGameKeyMap(),
		help:     h,
		spinner:  sp,
		width:    opts.Width,
		height:   opts.Height,
	}
	m.refreshHighScore()
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.menu.SetWidth(msg.Width)
		if m.view == viewScores {
			var cmd tea.Cmd
			m.scores, cmd = m.scores.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		// Keep spinning only while an adjustment is outstanding.
		if !m.sess.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashKind = feedbackNone
		}
		return m, nil

	case adjustmentMsg:
		return m.handleAdjustment(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.view {
		case viewMenu:
			return m.handleMenuKey(msg)
		case viewScores:
			return m.handleScoresKey(msg)
		default:
			return m.handleGameKey(msg)
		}
	}

	return m, nil
}

// handleMenuKey processes keyboard input on the start screen.
func (m GameModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.menu.Handle(MapKeyToMenuAction(msg)) {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceStart:
		m.startGame()

	case MenuChoiceScores:
		m.scores = NewScoreboardModel(m.store, "", m.width, m.height)
		m.view = viewScores
	}
	return m, nil
}

// handleScoresKey forwards input to the scoreboard.
func (m GameModel) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.view = viewMenu
		return m, nil
	}
	return m, cmd
}

// handleGameKey processes keyboard input while a game is running.
func (m GameModel) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveScore()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Menu):
		m.saveScore()
		m.sess.ReturnToMenu()
		m.notice = nil
		m.view = viewMenu
		m.refreshHighScore()
		return m, nil
	}

	switch m.sess.Status() {
	case session.StatusPlaying:
		return m.handlePlayingKey(msg)

	case session.StatusLevelComplete:
		if key.Matches(msg, m.keys.Next) && m.sess.NextLevel() {
			m.notice = nil
			m.cursor = level.Cell{}
			m.logger.Debug("next level", "level", m.sess.Level(), "difficulty", m.sess.Difficulty())
		}
	}

	return m, nil
}

func (m GameModel) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = max(0, m.cursor.Row-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = min(level.GridRows-1, m.cursor.Row+1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = max(0, m.cursor.Col-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = min(level.GridCols-1, m.cursor.Col+1)

	case key.Matches(msg, m.keys.Replay):
		m.sess.Replay()

	case key.Matches(msg, m.keys.Tap):
		return m.tapCell(m.cursor)

	case key.Matches(msg, m.keys.Pick):
		idx, ok := digitIndex(msg)
		shapes := m.sess.Shapes()
		if ok && idx < len(shapes) {
			m.cursor = shapes[idx].Cell
			return m.tapShape(shapes[idx])
		}
	}
	return m, nil
}

// handleMouse taps the clicked cell.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != viewGame || m.sess.Status() != session.StatusPlaying {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	cell, ok := m.layout().cellAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = cell
	return m.tapCell(cell)
}

// tapCell taps whatever shape occupies cell; empty cells are ignored.
func (m GameModel) tapCell(cell level.Cell) (tea.Model, tea.Cmd) {
	for _, sh := range m.sess.Shapes() {
		if sh.Cell == cell {
			return m.tapShape(sh)
		}
	}
	return m, nil
}

func (m GameModel) tapShape(sh level.Shape) (tea.Model, tea.Cmd) {
	outcome := m.sess.Tap(sh.ID)

	switch outcome {
	case session.TapIgnored:
		return m, nil
	case session.TapWrong:
		m.flashKind = feedbackWrong
	default:
		m.flashKind = feedbackCorrect
	}
	m.flash = sh.Cell
	m.flashSeq++

	cmds := []tea.Cmd{flashCmd(m.flashSeq)}
	if outcome == session.TapLevelComplete {
		m.logger.Info("level complete",
			"level", m.sess.Level(),
			"score", m.sess.Score(),
			"difficulty", m.sess.Difficulty(),
		)
		cmds = append(cmds, m.startAdjustment())
	}
	return m, tea.Batch(cmds...)
}

// startAdjustment requests a difficulty adjustment for the completed level.
func (m *GameModel) startAdjustment() tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	req, ok := m.sess.BeginAdjustment()
	if !ok {
		return nil
	}
	return tea.Batch(adjustCmd(m.gateway, req), m.spinner.Tick)
}

// handleAdjustment applies a finished adjustment unless it is stale.
func (m GameModel) handleAdjustment(msg adjustmentMsg) (tea.Model, tea.Cmd) {
	notice, ok := m.sess.ApplyAdjustment(msg.req, msg.res, msg.err)
	if !ok {
		m.logger.Debug("dropping stale adjustment", "epoch", msg.req.Epoch, "level", msg.req.Level)
		return m, nil
	}

	m.notice = &notice
	m.logger.Info("difficulty adjustment",
		"from", notice.From,
		"to", notice.To,
		"failed", notice.Failed,
	)
	m.saveAdjustment(msg.req, notice)
	return m, nil
}

// startGame begins a fresh game from the menu.
func (m *GameModel) startGame() {
	m.sess.Start()
	m.view = viewGame
	m.notice = nil
	m.scoreSaved = false
	m.cursor = level.Cell{}
	m.flashKind = feedbackNone
	m.logger.Info("game started", "difficulty", m.sess.Difficulty())
}

// saveScore records the current game once, if it scored anything.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.sess.Status() == session.StatusStart || m.sess.Score() <= 0 {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreEntry{
		Player:     m.player,
		Score:      m.sess.Score(),
		Level:      m.sess.Level(),
		Difficulty: m.sess.Difficulty().String(),
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

func (m *GameModel) saveAdjustment(req session.AdjustmentRequest, notice session.Notice) {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveAdjustment(storage.AdjustmentEntry{
		Player:         m.player,
		Level:          req.Level,
		FromDifficulty: notice.From.String(),
		ToDifficulty:   notice.To.String(),
		SuccessRate:    req.Snapshot.SuccessRate,
		Speed:          req.Snapshot.AverageLatencySeconds,
		ErrorPatterns:  req.Snapshot.ErrorSummary,
		Reasoning:      notice.Reasoning,
		Failed:         notice.Failed,
	})
	if err != nil {
		m.logger.Warn("could not save adjustment", "error", err)
	}
}

func (m *GameModel) refreshHighScore() {
	if m.store == nil {
		return
	}
	high, err := m.store.HighScore()
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
		return
	}
	m.menu.SetHighScore(high)
}

// layout returns where the board is drawn in the game view.
func (m GameModel) layout() boardLayout {
	return boardLayout{top: boardTopOffset, left: 0}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewMenu:
		return m.menu.View(m.cfg.StartDifficulty.String())
	case viewScores:
		return m.scores.View()
	}

	if m.sess.Status() == session.StatusLevelComplete {
		return m.hudView() + "\n\n" + m.levelCompleteView()
	}
	return m.gameView()
}

// hudView is the single status line shown above the board.
func (m GameModel) hudView() string {
	return fmt.Sprintf("%s  Level %d  ·  Score %d  ·  %s",
		titleStyle.Render("Shape Explorers"),
		m.sess.Level(),
		m.sess.Score(),
		subtleStyle.Render(m.sess.Difficulty().String()),
	)
}

func (m GameModel) gameView() string {
	var b strings.Builder

	// The header must stay exactly boardTopOffset lines for mouse hit-testing.
	b.WriteString(m.hudView())
	b.WriteString("\n")
	b.WriteString(m.promptView())
	b.WriteString("\n")
	b.WriteString(progressBar(m.sess.Progress(), progressWidth))
	b.WriteString(subtleStyle.Render(fmt.Sprintf(" %d/%d", len(m.sess.Shapes())-len(m.sess.Remaining()), len(m.sess.Shapes()))))
	b.WriteString("\n\n")

	b.WriteString(renderBoard(boardView{
		shapes:     m.sess.Shapes(),
		identified: m.sess.Identified,
		cursor:     m.cursor,
		showCursor: true,
		flash:      m.flash,
		flashKind:  m.flashKind,
	}))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// promptView shows the latest narration, with the target's symbol.
// promptView shows the latest prompt, with the wrong-tap line beside it
// when that was narrated last.
func (m GameModel) promptView() string {
	last := m.recorder.Last()
	prompt := last
	if last == narration.WrongTap {
		prompt = ""
		lines := m.recorder.Lines()
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] != narration.WrongTap {
				prompt = lines[i]
				break
			}
		}
	}

	out := promptStyle.Render(prompt)
	if t, ok := m.sess.Target(); ok {
		out += "  " + glyphSymbol(t.Type, t.Color)
	}
	if last == narration.WrongTap {
		out += "   " + errorStyle.Render(last)
	}
	return out
}

func (m GameModel) levelCompleteView() string {
	var b strings.Builder

	snap := m.sess.Stats()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Level %d Complete!", m.sess.Level())))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Accuracy  %3.0f%%\n", snap.SuccessRate*100))
	b.WriteString(fmt.Sprintf("Speed     %.1fs per shape\n", snap.AverageLatencySeconds))
	if snap.ErrorSummary != "" && snap.TotalTaps > snap.CorrectTaps {
		b.WriteString(subtleStyle.Render("Mix-ups: " + snap.ErrorSummary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.sess.Pending():
		b.WriteString(m.spinner.View() + " Thinking about the next level...")
	case m.notice != nil && m.notice.Failed:
		b.WriteString(errorStyle.Render(m.notice.Title))
	case m.notice != nil:
		b.WriteString(successStyle.Render(m.notice.Title))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(min(60, max(20, m.width-12))).Render(m.notice.Reasoning))
		if m.notice.From != m.notice.To {
			b.WriteString("\n\n")
			b.WriteString(subtleStyle.Render(fmt.Sprintf("%s → %s", m.notice.From, m.notice.To)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.levelCompleteHelp(m.sess.Pending())))

	return panelStyle.Render(b.String())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run starts a local Bubble Tea program for a single player.
func Run(opts Options) error {
	model := NewGameModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click a cell to tap it
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if gm, ok := final.(GameModel); ok && gm.IsQuitting() {
		gm.logger.Info("player quit",
			"player", gm.player,
			"level", gm.sess.Level(),
			"score", gm.sess.Score(),
		)
	}
	return nil
}
