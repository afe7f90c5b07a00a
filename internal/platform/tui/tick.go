// Package tui provides the Bubble Tea front end for Shape Explorers: the
// local game loop, the board renderer, and the SSH server for remote play.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shape-explorers/internal/adjust"
	"github.com/vovakirdan/shape-explorers/internal/session"
)

// flashDuration is how long a tapped cell stays highlighted.
const flashDuration = 400 * time.Millisecond

// flashDoneMsg clears the tap highlight. Seq matches the tap that set it so a
// newer highlight is not cleared early.
type flashDoneMsg struct {
	seq int
}

// flashCmd returns a Bubble Tea command that ends the highlight after flashDuration.
func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// adjustmentMsg carries a finished difficulty adjustment back to the update loop.
type adjustmentMsg struct {
	req session.AdjustmentRequest
	res adjust.Result
	err error
}

// adjustCmd runs the adjustment off the update loop.
func adjustCmd(gw *adjust.Gateway, req session.AdjustmentRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := gw.Adjust(context.Background(), req.Snapshot, req.Current)
		return adjustmentMsg{req: req, res: res, err: err}
	}
}
