package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityrunner/prefabs"
	"golang.org/x/image/colornames"
)

// Obstacle is a spawned body that moves at a constant velocity until it
// touches the despawn region or the player. It has no per-tick logic of its
// own; chipmunk integrates the motion.
type Obstacle struct {
	Size float64

	body  *cp.Body
	shape *cp.Shape
	world *CollisionWorld
	spec  *prefabs.ObstacleSpec

	removed bool
	img     *ebiten.Image
}

// NewObstacle builds an obstacle from its template spec and attaches it to
// the collision world. Velocity is set exactly once; a no-op velocity update
// keeps gravity from ever rewriting it.
func NewObstacle(world *CollisionWorld, spec *prefabs.ObstacleSpec, pos cp.Vector, size float64, velocity cp.Vector) *Obstacle {
	o := &Obstacle{
		Size:  size,
		world: world,
		spec:  spec,
	}

	body := cp.NewBody(1.0, cp.INFINITY)
	body.SetPosition(pos)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {})
	body.SetVelocity(velocity.X, velocity.Y)

	shape := cp.NewBox(body, size, size, 0)
	shape.SetSensor(false)
	shape.SetCollisionType(collisionTypeObstacle)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryObstacle, categoryPlayer|categoryDespawn))
	shape.UserData = o

	o.body = body
	o.shape = shape
	world.attachObstacle(o)
	return o
}

func (o *Obstacle) Position() cp.Vector {
	if o == nil || o.body == nil {
		return cp.Vector{}
	}
	return o.body.Position()
}

func (o *Obstacle) Velocity() cp.Vector {
	if o == nil || o.body == nil {
		return cp.Vector{}
	}
	return o.body.Velocity()
}

// ScaleSpeed rescales the horizontal velocity component only; the vertical
// component is left untouched.
func (o *Obstacle) ScaleSpeed(multiplier float64) {
	if o == nil || o.body == nil {
		return
	}
	v := o.body.Velocity()
	o.body.SetVelocity(v.X*multiplier, v.Y)
}

// Removed reports whether the obstacle has been taken out of the space.
func (o *Obstacle) Removed() bool {
	return o == nil || o.removed
}

// OnPlayerHit turns the obstacle into free-falling debris: collisions with
// the live world stop, gravity integration resumes, and the given impulse
// knocks it outward.
func (o *Obstacle) OnPlayerHit(impulse cp.Vector) {
	if o == nil || o.body == nil || o.removed {
		return
	}
	o.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryDead, 0))
	o.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
	o.body.ApplyImpulseAtWorldPoint(impulse, o.body.Position())
}

func (o *Obstacle) Draw(screen *ebiten.Image) {
	if o == nil || o.body == nil || o.removed {
		return
	}
	if o.img == nil {
		o.img = ebiten.NewImage(int(o.Size), int(o.Size))
		if o.spec != nil && o.spec.Color != nil && o.spec.Color.Color != nil {
			o.img.Fill(o.spec.Color)
		} else {
			o.img.Fill(colornames.Maroon)
		}
	}

	pos := o.body.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(pos.X-o.Size/2), math.Round(pos.Y-o.Size/2))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(o.img, op)
}
