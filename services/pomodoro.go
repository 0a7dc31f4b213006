package services

// Pomodoro phases.
const (
	PomodoroIdle  = "idle"
	PomodoroWork  = "work"
	PomodoroBreak = "break"
)

// Defaults: 25 minute work sessions, 5 minute breaks.
const (
	DefaultWorkSeconds  = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

type PomodoroConfig struct {
	WorkSeconds  int
	BreakSeconds int
}

// Pomodoro is the cooperative countdown layered on top of the
// start/stop timer primitives. The caller drives it with one Tick per
// second; the store only ever sees the start/stop calls the hooks
// issue. Phases cycle idle → work → break → idle.
//
// Pomodoro is not safe for concurrent use; a single client loop owns
// it.
type Pomodoro struct {
	cfg       PomodoroConfig
	phase     string
	remaining int
	sessions  int
	onStop    func()
}

// NewPomodoro builds an idle machine. Zero config fields fall back to
// the defaults. onStop fires when the underlying time log entry should
// be stopped (break finished, or manual stop); it may be nil.
func NewPomodoro(cfg PomodoroConfig, onStop func()) *Pomodoro {
	if cfg.WorkSeconds <= 0 {
		cfg.WorkSeconds = DefaultWorkSeconds
	}
	if cfg.BreakSeconds <= 0 {
		cfg.BreakSeconds = DefaultBreakSeconds
	}
	return &Pomodoro{cfg: cfg, phase: PomodoroIdle, onStop: onStop}
}

func (p *Pomodoro) Phase() string  { return p.phase }
func (p *Pomodoro) Remaining() int { return p.remaining }

// Sessions counts completed work phases.
func (p *Pomodoro) Sessions() int { return p.sessions }

// Start begins a work phase. Starting a machine that is already
// running restarts the work countdown.
func (p *Pomodoro) Start() {
	p.phase = PomodoroWork
	p.remaining = p.cfg.WorkSeconds
}

// Tick advances the countdown by one second. Reaching zero during work
// moves to break and counts the session; reaching zero during break
// returns to idle and fires the stop hook. Ticking an idle machine
// does nothing.
func (p *Pomodoro) Tick() {
	if p.phase == PomodoroIdle {
		return
	}
	p.remaining--
	if p.remaining > 0 {
		return
	}
	switch p.phase {
	case PomodoroWork:
		p.sessions++
		p.phase = PomodoroBreak
		p.remaining = p.cfg.BreakSeconds
	case PomodoroBreak:
		p.phase = PomodoroIdle
		p.remaining = 0
		p.fireStop()
	}
}

// Stop ends the cycle from any phase and fires the stop hook if a
// session was running.
func (p *Pomodoro) Stop() {
	if p.phase == PomodoroIdle {
		return
	}
	p.phase = PomodoroIdle
	p.remaining = 0
	p.fireStop()
}

func (p *Pomodoro) fireStop() {
	if p.onStop != nil {
		p.onStop()
	}
}
