// Package tui provides the Bubble Tea frontend for Sokoban.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long an info notice stays on screen.
const noticeTTL = 3 * time.Second

// restartMsg fires when a stuck level should be reset. gen ties the
// message to the stuck state that scheduled it.
type restartMsg struct{ gen int }

// noticeExpiredMsg clears the notice with the same generation.
type noticeExpiredMsg struct{ gen int }

// restartAfter schedules an automatic reset.
func restartAfter(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return restartMsg{gen: gen}
	})
}

// expireNotice schedules removal of the current notice.
func expireNotice(gen int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}
