package system

import (
	"testing"

	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/obj"
	"github.com/milk9111/gravityrunner/prefabs"
)

type displayRecorder struct {
	startCalls []bool
	lossCalls  int
	hideCalls  int
	scores     []int
}

func (d *displayRecorder) ShowStart(resumed bool) { d.startCalls = append(d.startCalls, resumed) }
func (d *displayRecorder) ShowLoss()              { d.lossCalls++ }
func (d *displayRecorder) HideOverlays()          { d.hideCalls++ }
func (d *displayRecorder) PublishScore(score int) { d.scores = append(d.scores, score) }

func (d *displayRecorder) lastScore() int {
	if len(d.scores) == 0 {
		return -1
	}
	return d.scores[len(d.scores)-1]
}

func testGameSpecs() *prefabs.GameSpecs {
	return &prefabs.GameSpecs{
		Player: &prefabs.PlayerSpec{
			Width: 48, Height: 48,
			StartX: 260, StartY: 694,
			JumpSpeed:           760,
			GroundCheckDistance: 6,
			RotationSpeed:       540,
			RotationSign:        1,
			HitImpulse:          420,
		},
		Obstacle: &prefabs.ObstacleSpec{
			Speed: 340, DirectionX: -1, Size: 56,
		},
		Spawner: &prefabs.SpawnerSpec{
			Enabled:      true,
			IntervalMean: 1.0,
			IntervalStd:  0,
			SpawnOffset:  5.9,
			SpawnSize:    1,
			OriginX:      1380,
			OriginY:      360,
			Template:     "obstacle.yaml",
		},
		Session: &prefabs.SessionSpec{
			StartText:  "press space",
			ResumeText: "press space to go again",
			LossText:   "ouch",
		},
		Camera: &prefabs.CameraSpec{TargetAspectW: 16, TargetAspectH: 9},
	}
}

func newTestSession(t *testing.T) (*Session, *World, *displayRecorder) {
	t.Helper()
	display := &displayRecorder{}

	var session *Session
	world, err := NewWorld(testGameSpecs(), obj.NewInput(), common.NewRand(1), func() {
		session.LoseGame()
	})
	if err != nil {
		t.Fatal(err)
	}

	session = NewSession(display, world, nil)
	session.SetupGame()
	return session, world, display
}

func TestSessionSetupShowsStartPrompt(t *testing.T) {
	s, w, display := newTestSession(t)

	if !s.Awaiting() || s.Started() || s.Lost() {
		t.Fatalf("fresh session state wrong: awaiting=%v started=%v lost=%v", s.Awaiting(), s.Started(), s.Lost())
	}
	if w.Spawner.Enabled {
		t.Fatalf("spawner should be held before play begins")
	}
	if len(display.startCalls) != 1 || display.startCalls[0] {
		t.Fatalf("expected one ShowStart(false), got %v", display.startCalls)
	}
	if display.lastScore() != 0 {
		t.Fatalf("setup should publish a zero score")
	}
}

func TestSessionJumpStartsPlay(t *testing.T) {
	s, w, display := newTestSession(t)

	in := obj.NewInput()
	in.JumpPressed = true
	s.HandleInput(in)

	if !s.Started() || s.Awaiting() {
		t.Fatalf("jump did not start play: started=%v awaiting=%v", s.Started(), s.Awaiting())
	}
	if !w.Spawner.Enabled {
		t.Fatalf("spawner not enabled at play start")
	}
	if display.hideCalls != 1 {
		t.Fatalf("overlays not hidden at play start")
	}
}

func TestSessionScoreAccumulates(t *testing.T) {
	s, _, display := newTestSession(t)
	s.StartGame()

	for i := 0; i < 3; i++ {
		s.Tick(0.4)
	}
	if got := s.Score(); got < 1.19 || got > 1.21 {
		t.Fatalf("score = %f after 1.2s, want ~1.2", got)
	}
	// published scores are truncated seconds
	if display.lastScore() != 1 {
		t.Fatalf("published score = %d, want 1", display.lastScore())
	}
}

func TestSessionAwaitingGatesScore(t *testing.T) {
	s, _, _ := newTestSession(t)

	// never started: ticks do nothing
	s.Tick(1.0)
	if s.Score() != 0 {
		t.Fatalf("score accumulated before start: %f", s.Score())
	}

	s.StartGame()
	s.Tick(1.0)
	s.ResetGame()

	// parked on the resume prompt: ticks do nothing again
	s.Tick(1.0)
	if s.Score() != 0 {
		t.Fatalf("score accumulated while awaiting resume: %f", s.Score())
	}
}

func TestSessionLossIsIdempotent(t *testing.T) {
	s, w, display := newTestSession(t)
	s.StartGame()

	o := w.Spawner.SpawnObstacle()
	s.LoseGame()

	if !s.Lost() {
		t.Fatalf("session not lost")
	}
	if w.Spawner.Enabled {
		t.Fatalf("spawner still enabled after loss")
	}
	if v := o.Velocity(); v.X != 0 {
		t.Fatalf("obstacle still moving after loss: %f", v.X)
	}

	before := s.Score()
	s.Tick(1.0)
	if s.Score() != before {
		t.Fatalf("score accumulated after loss")
	}

	s.LoseGame()
	if display.lossCalls != 1 {
		t.Fatalf("loss banner shown %d times, want 1", display.lossCalls)
	}
}

func TestSessionResetKeepsStarted(t *testing.T) {
	s, w, display := newTestSession(t)
	s.StartGame()
	s.Tick(2.5)
	s.LoseGame()

	in := obj.NewInput()
	in.ResetPressed = true
	s.HandleInput(in)

	if !s.Started() {
		t.Fatalf("started flag should survive a reset")
	}
	if s.Lost() || !s.Awaiting() {
		t.Fatalf("reset state wrong: lost=%v awaiting=%v", s.Lost(), s.Awaiting())
	}
	if s.Score() != 0 {
		t.Fatalf("score not cleared by reset: %f", s.Score())
	}
	if w.CollisionWorld.GravityDirection() != 1 {
		t.Fatalf("gravity not restored to down on reset")
	}
	// the prompt now shows the resume variant
	last := display.startCalls[len(display.startCalls)-1]
	if !last {
		t.Fatalf("reset after a played session should show the resume prompt")
	}

	// jump resumes play without flipping started again
	in = obj.NewInput()
	in.JumpPressed = true
	s.HandleInput(in)
	if s.Awaiting() {
		t.Fatalf("jump did not resume play")
	}
}

func TestWorldResetRebuildsEntities(t *testing.T) {
	_, w, _ := newTestSession(t)

	w.Spawner.Enabled = true
	w.Spawner.SpawnObstacle()
	oldPlayer := w.Player

	if err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if w.Player == oldPlayer {
		t.Fatalf("reset did not rebuild the player")
	}
	if len(w.Spawner.Obstacles()) != 0 {
		t.Fatalf("reset carried obstacles over")
	}
}

func TestWorldApplyTuning(t *testing.T) {
	_, w, _ := newTestSession(t)

	specs := testGameSpecs()
	specs.Spawner.IntervalMean = 0.8
	specs.Spawner.IntervalStd = 0
	specs.Player.JumpSpeed = 900

	w.ApplyTuning(specs)
	w.Spawner.ResetSpawn()

	if got := w.Spawner.NextInterval(); got != 0.8 {
		t.Fatalf("tuned interval = %f, want 0.8", got)
	}
	if w.Player.JumpSpeed != 900 {
		t.Fatalf("tuned jump speed = %f, want 900", w.Player.JumpSpeed)
	}
}
