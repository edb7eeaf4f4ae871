package obj

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/prefabs"
)

// Spawner emits obstacles on a randomized schedule. The schedule is a single
// accumulator compared against an interval redrawn from a normal
// distribution after every spawn.
type Spawner struct {
	Enabled bool

	mean        float64
	std         float64
	spawnOffset float64
	spawnSize   float64
	originX     float64
	originY     float64
	speedScale  float64

	template *prefabs.ObstacleSpec
	rng      *common.Rand
	world    *CollisionWorld

	accumulated  float64
	nextInterval float64

	obstacles []*Obstacle
}

// NewSpawner builds a spawner from its spec. A nil obstacle template is a
// configuration error reported here, at startup, never per spawn.
func NewSpawner(spec *prefabs.SpawnerSpec, template *prefabs.ObstacleSpec, rng *common.Rand, world *CollisionWorld) (*Spawner, error) {
	if spec == nil {
		return nil, fmt.Errorf("spawner: nil spec")
	}
	if template == nil {
		return nil, fmt.Errorf("spawner %q: no obstacle template", spec.Name)
	}
	if rng == nil {
		return nil, fmt.Errorf("spawner %q: nil random source", spec.Name)
	}

	s := &Spawner{
		Enabled:     spec.Enabled,
		mean:        spec.IntervalMean,
		std:         spec.IntervalStd,
		spawnOffset: spec.SpawnOffset,
		spawnSize:   spec.SpawnSize,
		originX:     spec.OriginX,
		originY:     spec.OriginY,
		speedScale:  1.0,
		template:    template,
		rng:         rng,
		world:       world,
	}
	s.nextInterval = rng.Normal(s.mean, s.std)
	if world != nil {
		world.SetOnDespawn(s.unregister)
	}
	return s, nil
}

// Update advances the schedule by dt and spawns at most one obstacle per
// tick, no matter how far the accumulator overshoots. The interval is
// subtracted rather than zeroed so fractional overshoot carries into the
// next window. A non-positive interval drawn from an extreme configuration
// is kept as-is; the one-spawn-per-tick cap bounds the effect.
func (s *Spawner) Update(dt float64) {
	if s == nil || !s.Enabled {
		return
	}
	s.accumulated += dt
	if s.accumulated >= s.nextInterval {
		s.accumulated -= s.nextInterval
		s.nextInterval = s.rng.Normal(s.mean, s.std)
		s.SpawnObstacle()
	}
}

// SpawnObstacle emits one obstacle at the spawn origin, offset above or
// below by a fair coin flip and uniformly scaled by the spawn size.
func (s *Spawner) SpawnObstacle() *Obstacle {
	if s == nil || s.world == nil {
		return nil
	}

	offset := (s.spawnOffset + (1.0-s.spawnSize)/2.0) * s.template.Size
	if s.rng.CoinFlip() {
		offset = -offset
	}
	pos := cp.Vector{X: s.originX, Y: s.originY + offset}

	size := s.template.Size * s.spawnSize
	velocity := cp.Vector{
		X: s.template.DirectionX * s.template.Speed * s.speedScale,
		Y: s.template.DirectionY * s.template.Speed * s.speedScale,
	}

	o := NewObstacle(s.world, s.template, pos, size, velocity)
	s.obstacles = append(s.obstacles, o)
	return o
}

// ClearObstacles removes every live obstacle this spawner owns. Only valid
// outside of a physics step.
func (s *Spawner) ClearObstacles() {
	if s == nil {
		return
	}
	for _, o := range s.obstacles {
		if !o.Removed() {
			s.world.RemoveObstacle(o)
		}
	}
	s.obstacles = nil
}

// ModifyObstacleSpeed rescales the horizontal velocity of every live
// obstacle. A multiplier of zero freezes them in place.
func (s *Spawner) ModifyObstacleSpeed(multiplier float64) {
	if s == nil {
		return
	}
	for _, o := range s.obstacles {
		o.ScaleSpeed(multiplier)
	}
}

// ResetSpawn zeroes the accumulator and redraws the next interval. Existing
// obstacles are left alone; clearing them is the caller's call.
func (s *Spawner) ResetSpawn() {
	if s == nil {
		return
	}
	s.accumulated = 0
	s.nextInterval = s.rng.Normal(s.mean, s.std)
}

// SetIntervalMean retunes the schedule; takes effect from the next redraw.
func (s *Spawner) SetIntervalMean(mean float64) {
	if s == nil {
		return
	}
	s.mean = mean
}

// SetIntervalStd retunes the schedule spread; takes effect from the next
// redraw.
func (s *Spawner) SetIntervalStd(std float64) {
	if s == nil {
		return
	}
	s.std = std
}

// SetSpeedScale retunes the launch speed of future spawns.
func (s *Spawner) SetSpeedScale(scale float64) {
	if s == nil || scale <= 0 {
		return
	}
	s.speedScale = scale
}

// Obstacles returns the live obstacle registry.
func (s *Spawner) Obstacles() []*Obstacle {
	if s == nil {
		return nil
	}
	return s.obstacles
}

// Accumulated returns the schedule accumulator.
func (s *Spawner) Accumulated() float64 {
	if s == nil {
		return 0
	}
	return s.accumulated
}

// NextInterval returns the current spawn deadline.
func (s *Spawner) NextInterval() float64 {
	if s == nil {
		return 0
	}
	return s.nextInterval
}

func (s *Spawner) unregister(dead *Obstacle) {
	if s == nil {
		return
	}
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o != dead {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept
}

func (s *Spawner) Draw(screen *ebiten.Image) {
	if s == nil {
		return
	}
	for _, o := range s.obstacles {
		o.Draw(screen)
	}
}
