package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/prefabs"
	"golang.org/x/image/colornames"
)

// Visual state names. Only VisualSad is wired to anything today; the rest
// are hooks for session events.
const (
	VisualNeutral = "neutral"
	VisualHappy   = "happy"
	VisualSad     = "sad"
	VisualPog     = "pog"
)

// Player is the gravity-flip controller. Gravity points down (+1) or up (-1)
// and may be flipped at most once per airtime: the switch debounce only
// clears when a ground contact is detected again.
type Player struct {
	Width  float64
	Height float64
	StartX float64
	StartY float64

	JumpSpeed           float64
	GroundCheckDistance float64
	RotationSpeed       float64 // radians per second
	RotationSign        float64
	HitImpulse          float64

	Input          *Input
	CollisionWorld *CollisionWorld
	body           *cp.Body
	shape          *cp.Shape

	gravityDir          float64
	switchedSinceGround bool
	targetRotation      float64
	rotation            float64

	lost   bool
	visual string
	onLoss func()

	spec   *prefabs.PlayerSpec
	images map[string]*ebiten.Image
}

func NewPlayer(spec *prefabs.PlayerSpec, input *Input, world *CollisionWorld, onLoss func()) *Player {
	p := &Player{
		Width:               spec.Width,
		Height:              spec.Height,
		StartX:              spec.StartX,
		StartY:              spec.StartY,
		JumpSpeed:           spec.JumpSpeed,
		GroundCheckDistance: spec.GroundCheckDistance,
		RotationSpeed:       spec.RotationSpeed * math.Pi / 180.0,
		RotationSign:        spec.RotationSign,
		HitImpulse:          spec.HitImpulse,
		Input:               input,
		CollisionWorld:      world,
		gravityDir:          1,
		visual:              VisualNeutral,
		onLoss:              onLoss,
		spec:                spec,
	}
	if p.RotationSign == 0 {
		p.RotationSign = 1
	}
	if world != nil {
		p.gravityDir = world.GravityDirection()
		world.AttachPlayer(p)
	}
	return p
}

// HandleInput consumes the sampled input for this tick. Ground detection
// runs first so a fresh contact re-arms the gravity switch before the switch
// logic reads it.
func (p *Player) HandleInput() {
	if p == nil || p.Input == nil {
		return
	}

	grounded := p.IsOnGround()
	if grounded {
		p.switchedSinceGround = false
	}

	if p.lost {
		return
	}

	// jump is always against the current gravity
	if p.Input.JumpPressed && grounded && p.body != nil {
		v := p.body.Velocity()
		p.body.SetVelocity(v.X, -p.gravityDir*p.JumpSpeed)
	}

	if p.Input.MoveY != 0 && !p.switchedSinceGround {
		p.switchGravity(common.Sign(p.Input.MoveY))
	}
}

func (p *Player) switchGravity(dir float64) {
	p.gravityDir = dir
	if p.CollisionWorld != nil {
		p.CollisionWorld.SetGravityDirection(dir)
	}
	if dir > 0 {
		p.targetRotation = math.Pi * p.RotationSign
	} else {
		p.targetRotation = 0
	}
	p.switchedSinceGround = true
}

// OnPhysics runs after the space step: airborne, the visual rotation moves
// toward the target at a fixed angular rate; grounded, it snaps so no drift
// survives a landing.
func (p *Player) OnPhysics(dt float64) {
	if p == nil {
		return
	}
	if p.IsOnGround() {
		p.rotation = p.targetRotation
		p.switchedSinceGround = false
		return
	}
	p.rotation = common.MoveToward(p.rotation, p.targetRotation, p.RotationSpeed*dt)
}

// IsOnGround casts from the player's bounds along the current gravity
// direction, limited to the configured distance and filtered to the ground
// layer.
func (p *Player) IsOnGround() bool {
	if p == nil || p.CollisionWorld == nil || p.body == nil {
		return false
	}
	return p.CollisionWorld.GroundQuery(
		p.body.Position(),
		p.gravityDir,
		p.Height/2,
		p.GroundCheckDistance,
		p.Width*0.45,
	)
}

// OnObstacleHit is the terminal loss transition: sad sprite, both bodies off
// the live collision layers, an outward shove on the obstacle, and the
// session notified. Repeated hits are no-ops.
func (p *Player) OnObstacleHit(o *Obstacle) {
	if p == nil || p.lost {
		return
	}
	p.lost = true
	p.visual = VisualSad

	if p.shape != nil {
		p.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryDead, categoryGround))
	}

	if o != nil {
		away := cp.Vector{X: 1, Y: 0}
		if p.body != nil {
			d := o.Position().Sub(p.body.Position())
			if d.Length() > 0 {
				away = d.Normalize()
			}
		}
		o.OnPlayerHit(away.Mult(p.HitImpulse))
	}

	if p.onLoss != nil {
		p.onLoss()
	}
}

// SetVisual switches the named visual state.
func (p *Player) SetVisual(name string) {
	if p == nil || name == "" {
		return
	}
	p.visual = name
}

func (p *Player) Visual() string {
	if p == nil {
		return ""
	}
	return p.visual
}

func (p *Player) Lost() bool {
	return p != nil && p.lost
}

func (p *Player) GravityDirection() float64 {
	if p == nil {
		return 1
	}
	return p.gravityDir
}

func (p *Player) SwitchedSinceGround() bool {
	return p != nil && p.switchedSinceGround
}

func (p *Player) TargetRotation() float64 {
	if p == nil {
		return 0
	}
	return p.targetRotation
}

func (p *Player) Rotation() float64 {
	if p == nil {
		return 0
	}
	return p.rotation
}

func (p *Player) Position() cp.Vector {
	if p == nil || p.body == nil {
		return cp.Vector{}
	}
	return p.body.Position()
}

func (p *Player) Velocity() cp.Vector {
	if p == nil || p.body == nil {
		return cp.Vector{}
	}
	return p.body.Velocity()
}

func (p *Player) visualImage() *ebiten.Image {
	if p.images == nil {
		p.images = make(map[string]*ebiten.Image, 4)
	}
	if img, ok := p.images[p.visual]; ok {
		return img
	}
	img := ebiten.NewImage(int(p.Width), int(p.Height))
	if c, ok := p.spec.Visuals[p.visual]; ok && c != nil && c.Color != nil {
		img.Fill(c)
	} else {
		img.Fill(colornames.Crimson)
	}
	p.images[p.visual] = img
	return img
}

func (p *Player) Draw(screen *ebiten.Image) {
	if p == nil || p.body == nil {
		return
	}
	pos := p.body.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-p.Width/2, -p.Height/2)
	op.GeoM.Rotate(p.rotation)
	op.GeoM.Translate(math.Round(pos.X), math.Round(pos.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.visualImage(), op)
}
