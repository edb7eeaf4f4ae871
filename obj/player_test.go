package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityrunner/common"
)

func newGroundedPlayer(t *testing.T) (*Player, *Input, *CollisionWorld) {
	t.Helper()
	world := NewCollisionWorld()
	input := NewInput()
	p := NewPlayer(testPlayerSpec(), input, world, nil)
	if !p.IsOnGround() {
		t.Fatalf("player should start resting on the floor; position %+v", p.Position())
	}
	return p, input, world
}

func TestPlayerJumpAgainstGravity(t *testing.T) {
	p, input, _ := newGroundedPlayer(t)

	input.JumpPressed = true
	p.HandleInput()
	if v := p.Velocity(); v.Y != -760 {
		t.Fatalf("jump velocity = %f, want -760 with gravity down", v.Y)
	}
}

func TestPlayerJumpIgnoredAirborne(t *testing.T) {
	p, input, _ := newGroundedPlayer(t)

	// flipping gravity up makes the floor no longer ground, so the player is
	// airborne immediately
	input.MoveY = -1
	p.HandleInput()
	input.MoveY = 0

	input.JumpPressed = true
	p.HandleInput()
	if v := p.Velocity(); v.Y != 0 {
		t.Fatalf("airborne jump changed velocity to %f", v.Y)
	}
}

func TestGravityFlipOncePerAirtime(t *testing.T) {
	p, input, world := newGroundedPlayer(t)

	input.MoveY = -1
	p.HandleInput()
	if p.GravityDirection() != -1 {
		t.Fatalf("gravity direction = %f after flip up, want -1", p.GravityDirection())
	}
	if world.GravityDirection() != -1 {
		t.Fatalf("collision world gravity not flipped")
	}
	if !p.SwitchedSinceGround() {
		t.Fatalf("switch debounce not armed")
	}

	// a second flip in the same airtime is a no-op
	input.MoveY = 1
	p.HandleInput()
	if p.GravityDirection() != -1 {
		t.Fatalf("flip debounce failed: direction changed to %f mid-air", p.GravityDirection())
	}
	input.MoveY = 0

	// ride gravity up to the ceiling
	dt := 1.0 / common.TickRate
	landed := false
	for i := 0; i < 600; i++ {
		world.BeginStep()
		world.Step(dt)
		p.OnPhysics(dt)
		if p.IsOnGround() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatalf("player never reached the ceiling; position %+v", p.Position())
	}

	// the ceiling contact re-arms the switch
	input.MoveY = 1
	p.HandleInput()
	if p.GravityDirection() != 1 {
		t.Fatalf("gravity direction = %f after grounded flip down, want 1", p.GravityDirection())
	}
	if got := p.TargetRotation(); got != math.Pi {
		t.Fatalf("target rotation = %f after flip down, want pi", got)
	}
}

func TestPlayerRotationEasing(t *testing.T) {
	// no collision world: the player is permanently airborne, so the easing
	// branch runs on every tick
	p := NewPlayer(testPlayerSpec(), NewInput(), nil, nil)
	p.switchGravity(1)
	if p.TargetRotation() != math.Pi {
		t.Fatalf("target rotation = %f, want pi", p.TargetRotation())
	}

	dt := 1.0 / common.TickRate
	p.OnPhysics(dt)
	step := p.RotationSpeed * dt
	if math.Abs(p.Rotation()-step) > 1e-9 {
		t.Fatalf("first easing step = %f, want %f", p.Rotation(), step)
	}

	for i := 0; i < 600; i++ {
		p.OnPhysics(dt)
	}
	if p.Rotation() != math.Pi {
		t.Fatalf("rotation never settled on target: %f", p.Rotation())
	}
}

func TestPlayerObstacleHitIsTerminal(t *testing.T) {
	world := NewCollisionWorld()
	input := NewInput()
	losses := 0
	p := NewPlayer(testPlayerSpec(), input, world, func() { losses++ })

	o := NewObstacle(world, testObstacleSpec(), cp.Vector{X: p.StartX + 10, Y: p.StartY}, 10, cp.Vector{})

	dt := 1.0 / common.TickRate
	world.BeginStep()
	world.Step(dt)

	hit := world.PendingHit()
	if hit != o {
		t.Fatalf("overlapping obstacle not reported as a hit")
	}

	p.OnObstacleHit(hit)
	if !p.Lost() {
		t.Fatalf("player not lost after hit")
	}
	if p.Visual() != VisualSad {
		t.Fatalf("visual = %q after hit, want %q", p.Visual(), VisualSad)
	}
	if losses != 1 {
		t.Fatalf("loss callback fired %d times, want 1", losses)
	}
	if v := o.Velocity(); v.X <= 0 {
		t.Fatalf("obstacle not knocked away from the player: velocity %+v", v)
	}

	// a second hit on the same obstacle is a no-op
	before := o.Velocity()
	p.OnObstacleHit(o)
	if losses != 1 {
		t.Fatalf("loss callback fired again on a repeat hit")
	}
	if o.Velocity() != before {
		t.Fatalf("repeat hit re-applied the impulse")
	}

	// both bodies are off the live layers now, so no further hit is reported
	world.BeginStep()
	world.Step(dt)
	if world.PendingHit() != nil {
		t.Fatalf("dead bodies still reporting collisions")
	}
}

func TestPlayerInputIgnoredAfterLoss(t *testing.T) {
	p, input, _ := newGroundedPlayer(t)
	p.OnObstacleHit(nil)

	input.JumpPressed = true
	input.MoveY = -1
	p.HandleInput()
	if v := p.Velocity(); v.Y != 0 {
		t.Fatalf("lost player jumped: velocity %f", v.Y)
	}
	if p.GravityDirection() != 1 {
		t.Fatalf("lost player flipped gravity")
	}
}
