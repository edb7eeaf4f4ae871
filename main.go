package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gravityrunner/common"
	"github.com/milk9111/gravityrunner/prefabs"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for the spawn schedule")
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gravityrunner")

	// missing or malformed prefab specs are unrecoverable configuration
	// errors; fail here, not per spawn
	specs, err := prefabs.LoadGameSpecs()
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(specs, *seed, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
