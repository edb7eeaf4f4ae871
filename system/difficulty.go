package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gravityrunner/obj"
	"github.com/milk9111/gravityrunner/prefabs"
)

// Difficulty evaluates a tengo script against the running score and feeds
// the resulting tuning back into the spawner. The script sees a `score`
// global and publishes `spawn_mean` and `speed_scale`.
type Difficulty struct {
	scriptPath string
	compiled   *tengo.Compiled
	interval   float64
	elapsed    float64
}

func NewDifficulty(scriptPath string, interval float64) (*Difficulty, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("difficulty: empty script path")
	}
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("difficulty: load %s: %w", scriptPath, err)
	}

	script := tengo.NewScript(src)
	if err := script.Add("score", 0.0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("difficulty: compile %s: %w", scriptPath, err)
	}

	if interval <= 0 {
		interval = 1.0
	}
	return &Difficulty{
		scriptPath: scriptPath,
		compiled:   compiled,
		interval:   interval,
	}, nil
}

// Update re-evaluates the script once per configured interval of play time.
func (d *Difficulty) Update(dt, score float64, spawner *obj.Spawner) {
	if d == nil || d.compiled == nil || spawner == nil {
		return
	}
	d.elapsed += dt
	if d.elapsed < d.interval {
		return
	}
	d.elapsed -= d.interval

	if err := d.compiled.Set("score", score); err != nil {
		fmt.Printf("difficulty: set score: %v\n", err)
		return
	}
	if err := d.compiled.Run(); err != nil {
		fmt.Printf("difficulty: script %s error: %v\n", d.scriptPath, err)
		return
	}

	if d.compiled.IsDefined("spawn_mean") {
		spawner.SetIntervalMean(d.compiled.Get("spawn_mean").Float())
	}
	if d.compiled.IsDefined("speed_scale") {
		spawner.SetSpeedScale(d.compiled.Get("speed_scale").Float())
	}
}
