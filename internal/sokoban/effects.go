package sokoban

// Effect is an observable side effect of an engine operation. Views map
// effects to sounds, bells or log lines.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectMove
	EffectPush
	EffectWin
	EffectStuck
	EffectReset
	EffectLevel
)

var effectNames = map[Effect]string{
	EffectNone:  "none",
	EffectMove:  "move",
	EffectPush:  "push",
	EffectWin:   "win",
	EffectStuck: "stuck",
	EffectReset: "reset",
	EffectLevel: "level",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

// ParseEffect converts an effect name back to an Effect.
func ParseEffect(s string) (Effect, bool) {
	for e, name := range effectNames {
		if name == s {
			return e, true
		}
	}
	return EffectNone, false
}

// NoticeKind grades a Notice.
type NoticeKind uint8

const (
	NoticeInfo NoticeKind = iota
	NoticeWarn
)

// Notice is a user-facing message produced by the session.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notice texts shown by views.
const (
	MsgLastLevel     = "You are already at the last level!"
	MsgFirstLevel    = "You are already at the first level!"
	MsgAlreadyActive = "That level is already selected!"
	MsgStuck         = "Looks like you're stuck!\nThe game will restart."
	MsgWon           = "You won!"
)

// Observer receives effects and notices from a Session.
type Observer interface {
	OnEffect(e Effect)
	OnNotice(n Notice)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Effect func(Effect)
	Notice func(Notice)
}

func (o ObserverFuncs) OnEffect(e Effect) {
	if o.Effect != nil {
		o.Effect(e)
	}
}

func (o ObserverFuncs) OnNotice(n Notice) {
	if o.Notice != nil {
		o.Notice(n)
	}
}
