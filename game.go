package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/obj"
	"github.com/milk9111/gravityrunner/prefabs"
	"github.com/milk9111/gravityrunner/system"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int
	debug  bool

	input   *obj.Input
	world   *system.World
	session *system.Session
	camera  *obj.Camera
	ui      *GameUI

	specs   *prefabs.GameSpecs
	watcher *prefabs.Watcher
}

func NewGame(specs *prefabs.GameSpecs, seed int64, debug bool) (*Game, error) {
	rng := common.NewRand(seed)
	input := obj.NewInput()
	ui := NewGameUI(specs.Session)

	// the loss callback closes over the session pointer, which only exists
	// once the world does
	var session *system.Session
	world, err := system.NewWorld(specs, input, rng, func() {
		session.LoseGame()
	})
	if err != nil {
		return nil, err
	}

	var difficulty *system.Difficulty
	if specs.Session != nil && specs.Session.DifficultyScript != "" {
		difficulty, err = system.NewDifficulty(specs.Session.DifficultyScript, specs.Session.DifficultyInterval)
		if err != nil {
			return nil, err
		}
	}

	session = system.NewSession(ui, world, difficulty)
	session.SetupGame()

	camera := obj.NewCamera(
		specs.Camera.TargetAspectW,
		specs.Camera.TargetAspectH,
		common.BaseWidth,
		common.BaseHeight,
	)

	// live tuning is a dev convenience; no on-disk prefabs dir just means no
	// watcher
	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		log.Printf("prefabs: watcher disabled: %v", err)
		watcher = nil
	}

	return &Game{
		debug:   debug,
		input:   input,
		world:   world,
		session: session,
		camera:  camera,
		ui:      ui,
		specs:   specs,
		watcher: watcher,
	}, nil
}

func (g *Game) Update() error {
	g.frames++
	dt := 1.0 / common.TickRate

	g.input.Update()
	g.drainWatcher()

	g.session.HandleInput(g.input)
	g.world.Update(dt)
	g.session.Tick(dt)

	g.ui.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("prefabs: change to %s, reloading tuning", name)
		specs, err := prefabs.LoadGameSpecs()
		if err != nil {
			log.Printf("prefabs: reload failed: %v", err)
			return
		}
		g.specs = specs
		g.world.ApplyTuning(specs)
	case err, ok := <-g.watcher.Errors:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("prefabs: watch error: %v", err)
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.camera.Render(screen, func(world *ebiten.Image) {
		world.Fill(colornames.Darkslategray)
		g.world.Draw(world)
		g.ui.Draw(world)

		if g.debug {
			ebitenutil.DebugPrint(world, fmt.Sprintf(
				"FPS: %.2f  score: %d  gravity: %+.0f",
				ebiten.ActualFPS(),
				int(g.session.Score()),
				g.world.Player.GravityDirection(),
			))
		}
	})
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
