package obj

import (
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/prefabs"
)

func testPlayerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:                "player",
		Width:               48,
		Height:              48,
		StartX:              260,
		StartY:              694,
		JumpSpeed:           760,
		GroundCheckDistance: 6,
		RotationSpeed:       540,
		RotationSign:        1,
		HitImpulse:          420,
	}
}

func testObstacleSpec() *prefabs.ObstacleSpec {
	return &prefabs.ObstacleSpec{
		Name:       "obstacle",
		Speed:      100,
		DirectionX: -1,
		DirectionY: 0,
		Size:       10,
	}
}

func testSpawnerSpec() *prefabs.SpawnerSpec {
	return &prefabs.SpawnerSpec{
		Name:         "spawner",
		Enabled:      true,
		IntervalMean: 1.0,
		IntervalStd:  0,
		SpawnOffset:  2,
		SpawnSize:    1,
		OriginX:      1380,
		OriginY:      360,
		Template:     "obstacle.yaml",
	}
}

func newTestSpawner(spec *prefabs.SpawnerSpec, template *prefabs.ObstacleSpec, seed int64) (*Spawner, *CollisionWorld, error) {
	world := NewCollisionWorld()
	s, err := NewSpawner(spec, template, common.NewRand(seed), world)
	return s, world, err
}
