package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/obj"
	"github.com/milk9111/gravityrunner/prefabs"
)

// World owns the playfield: the collision space, the player, and the
// spawner. Reset discards all of it and rebuilds from the specs, which is
// the only abort mechanism the game has.
type World struct {
	CollisionWorld *obj.CollisionWorld
	Player         *obj.Player
	Spawner        *obj.Spawner

	specs  *prefabs.GameSpecs
	input  *obj.Input
	rng    *common.Rand
	onLoss func()
}

func NewWorld(specs *prefabs.GameSpecs, input *obj.Input, rng *common.Rand, onLoss func()) (*World, error) {
	if specs == nil {
		return nil, fmt.Errorf("world: nil specs")
	}
	w := &World{
		specs:  specs,
		input:  input,
		rng:    rng,
		onLoss: onLoss,
	}
	if err := w.rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) rebuild() error {
	cw := obj.NewCollisionWorld()
	player := obj.NewPlayer(w.specs.Player, w.input, cw, w.onLoss)
	spawner, err := obj.NewSpawner(w.specs.Spawner, w.specs.Obstacle, w.rng, cw)
	if err != nil {
		return err
	}

	w.CollisionWorld = cw
	w.Player = player
	w.Spawner = spawner
	return nil
}

// Reset throws away every mutable entity and rebuilds the playfield.
func (w *World) Reset() error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	return w.rebuild()
}

// Update runs one simulation tick. Input sampling happened before this call;
// the ordering below keeps ground detection ahead of the gravity switch and
// collision outcomes ahead of anything that reads them this tick.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}

	w.Player.HandleInput()
	w.Spawner.Update(dt)

	w.CollisionWorld.BeginStep()
	w.CollisionWorld.Step(dt)

	if hit := w.CollisionWorld.PendingHit(); hit != nil {
		w.Player.OnObstacleHit(hit)
	}

	w.Player.OnPhysics(dt)
}

// ApplyTuning folds freshly reloaded spec values into the live entities.
func (w *World) ApplyTuning(specs *prefabs.GameSpecs) {
	if w == nil || specs == nil {
		return
	}
	w.specs = specs
	if specs.Spawner != nil {
		w.Spawner.SetIntervalMean(specs.Spawner.IntervalMean)
		w.Spawner.SetIntervalStd(specs.Spawner.IntervalStd)
	}
	if specs.Player != nil {
		w.Player.JumpSpeed = specs.Player.JumpSpeed
		w.Player.GroundCheckDistance = specs.Player.GroundCheckDistance
	}
}

func (w *World) Draw(screen *ebiten.Image) {
	if w == nil {
		return
	}
	w.Spawner.Draw(screen)
	w.Player.Draw(screen)
}
