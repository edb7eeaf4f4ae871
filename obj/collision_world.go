package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityrunner/common"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeObstacle
	collisionTypeGround
	collisionTypeDespawn
)

const (
	categoryGround   uint = 1 << 0
	categoryPlayer   uint = 1 << 1
	categoryObstacle uint = 1 << 2
	categoryDespawn  uint = 1 << 3
	// categoryDead collides with nothing; the lost player and the obstacle
	// that hit it are reassigned here so no further collision response fires.
	categoryDead uint = 1 << 7
)

const worldMargin = 256.0

type CollisionWorld struct {
	space      *cp.Space
	gravityDir float64

	playerBody  *cp.Body
	playerShape *cp.Shape

	// pendingHit is the obstacle the player touched during the current step.
	pendingHit *Obstacle
	// onDespawn fires after an obstacle crossed the despawn region and was
	// removed from the space.
	onDespawn func(*Obstacle)

	handlersReady bool
}

func NewCollisionWorld() *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	cw := &CollisionWorld{space: space, gravityDir: 1}
	cw.buildStaticShapes()
	cw.setupHandlers()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	// Floor and ceiling are both ground: with flipped gravity the ceiling is
	// what the player stands on.
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -worldMargin, Y: 0}, b: cp.Vector{X: common.BaseWidth + worldMargin, Y: 0}},
		{a: cp.Vector{X: -worldMargin, Y: common.BaseHeight}, b: cp.Vector{X: common.BaseWidth + worldMargin, Y: common.BaseHeight}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(cw.space.StaticBody, seg.a, seg.b, 1.0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeGround)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryGround, categoryPlayer))
		cw.space.AddShape(shape)
	}

	// Despawn region: a sensor column past the left edge of the world.
	despawnBB := cp.BB{
		L: -worldMargin - 64,
		B: -worldMargin,
		R: -worldMargin + 32,
		T: common.BaseHeight + worldMargin,
	}
	despawn := cp.NewBox2(cw.space.StaticBody, despawnBB, 0)
	despawn.SetSensor(true)
	despawn.SetCollisionType(collisionTypeDespawn)
	despawn.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryDespawn, categoryObstacle))
	cw.space.AddShape(despawn)
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady || cw.space == nil {
		return
	}

	hitHandler := cw.space.NewCollisionHandler(collisionTypePlayer, collisionTypeObstacle)
	hitHandler.UserData = cw
	hitHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		for _, s := range []*cp.Shape{shapeA, shapeB} {
			if o, ok := s.UserData.(*Obstacle); ok && o != nil {
				world.pendingHit = o
			}
		}
		return true
	}

	despawnHandler := cw.space.NewCollisionHandler(collisionTypeObstacle, collisionTypeDespawn)
	despawnHandler.UserData = cw
	despawnHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if !ok || world == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		for _, s := range []*cp.Shape{shapeA, shapeB} {
			if o, ok := s.UserData.(*Obstacle); ok && o != nil {
				// removal has to wait until the step finishes
				space.AddPostStepCallback(func(space *cp.Space, key interface{}, data interface{}) {
					obstacle, ok := data.(*Obstacle)
					if !ok || obstacle == nil {
						return
					}
					world.removeObstacleShapes(obstacle)
					if world.onDespawn != nil {
						world.onDespawn(obstacle)
					}
				}, o, o)
			}
		}
		return false
	}

	cw.handlersReady = true
}

// SetOnDespawn registers the callback invoked when an obstacle enters the
// despawn region.
func (cw *CollisionWorld) SetOnDespawn(f func(*Obstacle)) {
	if cw == nil {
		return
	}
	cw.onDespawn = f
}

// SetGravityDirection points gravity along dir (+1 down, -1 up), preserving
// the configured magnitude.
func (cw *CollisionWorld) SetGravityDirection(dir float64) {
	if cw == nil || cw.space == nil {
		return
	}
	if dir >= 0 {
		cw.gravityDir = 1
	} else {
		cw.gravityDir = -1
	}
	cw.space.SetGravity(cp.Vector{X: 0, Y: cw.gravityDir * common.Gravity})
}

func (cw *CollisionWorld) GravityDirection() float64 {
	if cw == nil {
		return 1
	}
	return cw.gravityDir
}

func (cw *CollisionWorld) AttachPlayer(p *Player) {
	if cw == nil || cw.space == nil || p == nil {
		return
	}
	if cw.playerBody != nil {
		return
	}

	mass := 1.0
	// infinite moment: the body itself never rotates, the visual flip is
	// driven by the controller's target rotation
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: p.StartX, Y: p.StartY})
	shape := cp.NewBox(body, p.Width, p.Height, 0)
	shape.SetFriction(0.0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, categoryGround|categoryObstacle))

	cw.space.AddBody(body)
	cw.space.AddShape(shape)

	cw.playerBody = body
	cw.playerShape = shape
	p.body = body
	p.shape = shape
}

func (cw *CollisionWorld) attachObstacle(o *Obstacle) {
	if cw == nil || cw.space == nil || o == nil || o.body == nil {
		return
	}
	cw.space.AddBody(o.body)
	cw.space.AddShape(o.shape)
}

func (cw *CollisionWorld) removeObstacleShapes(o *Obstacle) {
	if cw == nil || cw.space == nil || o == nil || o.removed {
		return
	}
	o.removed = true
	if o.shape != nil {
		cw.space.RemoveShape(o.shape)
	}
	if o.body != nil {
		cw.space.RemoveBody(o.body)
	}
}

// RemoveObstacle removes an obstacle from the space. Only valid outside of a
// physics step; despawn removal goes through the post-step callback instead.
func (cw *CollisionWorld) RemoveObstacle(o *Obstacle) {
	cw.removeObstacleShapes(o)
}

// GroundQuery casts from pos along dir and reports whether anything on the
// ground layer lies within distance past halfHeight. The cast carries radius
// so it behaves like a shape sweep rather than a ray.
func (cw *CollisionWorld) GroundQuery(pos cp.Vector, dir, halfHeight, distance, radius float64) bool {
	if cw == nil || cw.space == nil {
		return false
	}
	start := cp.Vector{X: pos.X, Y: pos.Y + dir*halfHeight}
	end := cp.Vector{X: pos.X, Y: pos.Y + dir*(halfHeight+distance)}
	filter := cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, categoryGround)
	info := cw.space.SegmentQueryFirst(start, end, radius, filter)
	return info.Shape != nil
}

// BeginStep clears per-step transient state. Call before Step.
func (cw *CollisionWorld) BeginStep() {
	if cw == nil {
		return
	}
	cw.pendingHit = nil
}

func (cw *CollisionWorld) Step(dt float64) {
	if cw == nil || cw.space == nil {
		return
	}
	cw.space.Step(dt)
}

// PendingHit returns the obstacle the player touched during the last step.
func (cw *CollisionWorld) PendingHit() *Obstacle {
	if cw == nil {
		return nil
	}
	return cw.pendingHit
}
