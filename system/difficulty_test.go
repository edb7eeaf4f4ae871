package system

import (
	"math"
	"testing"

	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/obj"
)

func newTestSpawner(t *testing.T) *obj.Spawner {
	t.Helper()
	specs := testGameSpecs()
	s, err := obj.NewSpawner(specs.Spawner, specs.Obstacle, common.NewRand(1), obj.NewCollisionWorld())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDifficultyRejectsBadScripts(t *testing.T) {
	if _, err := NewDifficulty("", 1); err == nil {
		t.Fatalf("empty script path should error")
	}
	if _, err := NewDifficulty("does_not_exist.tengo", 1); err == nil {
		t.Fatalf("missing script should error")
	}
}

func TestDifficultyRetunesSpawner(t *testing.T) {
	d, err := NewDifficulty("difficulty.tengo", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	spawner := newTestSpawner(t)

	// below the evaluation interval: nothing changes
	d.Update(0.25, 100, spawner)
	spawner.ResetSpawn()
	if got := spawner.NextInterval(); got != 1.0 {
		t.Fatalf("spawner retuned before the interval elapsed: %f", got)
	}

	// crossing the interval runs the script; at score 100 the ramp bottoms
	// out at the scripted floor of 0.55
	d.Update(0.25, 100, spawner)
	spawner.ResetSpawn()
	if got := spawner.NextInterval(); got != 0.55 {
		t.Fatalf("tuned interval = %f, want 0.55", got)
	}

	// speed scale 1 + 100*0.006 applies to future spawns
	o := spawner.SpawnObstacle()
	want := -340.0 * 1.6
	if v := o.Velocity(); math.Abs(v.X-want) > 1e-6 {
		t.Fatalf("scaled spawn velocity = %f, want %f", v.X, want)
	}
}

func TestDifficultySpeedScaleCapped(t *testing.T) {
	d, err := NewDifficulty("difficulty.tengo", 1)
	if err != nil {
		t.Fatal(err)
	}
	spawner := newTestSpawner(t)

	// far past the cap: speed_scale clamps at 2.2
	d.Update(1, 10000, spawner)
	o := spawner.SpawnObstacle()
	want := -340.0 * 2.2
	if v := o.Velocity(); math.Abs(v.X-want) > 1e-6 {
		t.Fatalf("capped spawn velocity = %f, want %f", v.X, want)
	}
}
