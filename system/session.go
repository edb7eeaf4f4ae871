package system

import (
	"github.com/milk9111/gravityrunner/obj"
)

// Display is the narrow surface the session manager drives. The game's UI
// implements it; tests stub it.
type Display interface {
	ShowStart(resumed bool)
	ShowLoss()
	HideOverlays()
	PublishScore(score int)
}

// Session tracks started/lost state and the elapsed score, and mediates the
// win/loss transitions. It is an explicitly constructed object handed to its
// consumers; `started` lasts for the process lifetime while lost and score
// reset with each session.
type Session struct {
	display    Display
	world      *World
	difficulty *Difficulty

	started  bool
	lost     bool
	awaiting bool
	score    float64
}

func NewSession(display Display, world *World, difficulty *Difficulty) *Session {
	return &Session{
		display:    display,
		world:      world,
		difficulty: difficulty,
	}
}

// SetupGame puts the playfield into its pre-play state: gravity back to the
// default downward direction, spawning held, and the start prompt shown —
// the resume variant when this process has already played a session.
func (s *Session) SetupGame() {
	if s == nil {
		return
	}
	s.lost = false
	s.awaiting = true
	s.score = 0
	if s.world != nil {
		s.world.CollisionWorld.SetGravityDirection(1)
		s.world.Spawner.Enabled = false
	}
	if s.display != nil {
		s.display.PublishScore(0)
		s.display.ShowStart(s.started)
	}
}

// HandleInput applies the session-level triggers: reset, and the jump that
// starts (or resumes) play.
func (s *Session) HandleInput(in *obj.Input) {
	if s == nil || in == nil {
		return
	}
	if in.ResetPressed {
		s.ResetGame()
		return
	}
	if in.JumpPressed {
		if !s.started {
			s.StartGame()
		} else if s.awaiting {
			s.beginPlay()
		}
	}
}

// StartGame marks the session started — permanently, for the process — and
// begins play.
func (s *Session) StartGame() {
	if s == nil {
		return
	}
	s.started = true
	s.beginPlay()
}

func (s *Session) beginPlay() {
	s.awaiting = false
	s.lost = false
	if s.world != nil {
		s.world.Spawner.Enabled = true
		s.world.Spawner.ResetSpawn()
	}
	if s.display != nil {
		s.display.HideOverlays()
	}
}

// ResetGame discards all mutable entity state and re-runs SetupGame. The
// started flag survives.
func (s *Session) ResetGame() {
	if s == nil {
		return
	}
	if s.world != nil {
		// rebuild can only fail on broken specs, which were validated at
		// startup
		_ = s.world.Reset()
	}
	s.SetupGame()
}

// LoseGame is the terminal loss transition: obstacles freeze, spawning
// halts, and the loss banner shows. Idempotent; only an explicit reset
// leaves this state.
func (s *Session) LoseGame() {
	if s == nil || s.lost {
		return
	}
	s.lost = true
	if s.world != nil {
		s.world.Spawner.ModifyObstacleSpeed(0)
		s.world.Spawner.Enabled = false
	}
	if s.display != nil {
		s.display.ShowLoss()
	}
}

// Tick accumulates score while a session is live and republishes the
// truncated value. Loss transitions land before this runs within a tick, so
// a losing tick never scores.
func (s *Session) Tick(dt float64) {
	if s == nil || !s.started || s.lost || s.awaiting {
		return
	}
	s.score += dt
	if s.display != nil {
		s.display.PublishScore(int(s.score))
	}
	if s.difficulty != nil && s.world != nil {
		s.difficulty.Update(dt, s.score, s.world.Spawner)
	}
}

func (s *Session) Started() bool {
	return s != nil && s.started
}

func (s *Session) Lost() bool {
	return s != nil && s.lost
}

// Awaiting reports whether the session is parked on the start/resume prompt.
func (s *Session) Awaiting() bool {
	return s != nil && s.awaiting
}

func (s *Session) Score() float64 {
	if s == nil {
		return 0
	}
	return s.score
}
