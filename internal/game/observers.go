package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// LogObserver writes engine effects and notices to a logger at debug level.
type LogObserver struct {
	Logger *log.Logger
}

func (o LogObserver) OnEffect(e sokoban.Effect) {
	if e == sokoban.EffectNone {
		return
	}
	o.Logger.Debug("effect", "kind", e)
}

func (o LogObserver) OnNotice(n sokoban.Notice) {
	o.Logger.Debug("notice", "text", n.Text)
}

// BellObserver rings the terminal bell for the effects enabled in cfg.
type BellObserver struct {
	W   io.Writer
	Cfg config.EffectsConfig
}

func (o BellObserver) OnEffect(e sokoban.Effect) {
	if o.Cfg.BellFor(e) {
		//nolint:errcheck // Best-effort bell
		o.W.Write([]byte{'\a'})
	}
}

func (BellObserver) OnNotice(sokoban.Notice) {}
