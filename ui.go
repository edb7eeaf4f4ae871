package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gravityrunner/prefabs"
)

// GameUI owns the three session surfaces: the start/resume prompt, the loss
// banner, and the score readout. It implements system.Display. Labels use
// the built-in basic font so no theme fonts need loading.
type GameUI struct {
	ui     *ebitenui.UI
	panel  *widget.Container
	prompt *widget.Text
	score  *widget.Text
	spec   *prefabs.SessionSpec
}

func NewGameUI(spec *prefabs.SessionSpec) *GameUI {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// semi-transparent panel behind the prompt
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	prompt := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	panel.AddChild(prompt)

	score := widget.NewText(
		widget.TextOpts.Text("0", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 24, Right: 24}),
		)),
	)
	root.AddChild(panel)
	root.AddChild(score)

	ui := &GameUI{
		ui:     &ebitenui.UI{Container: root},
		panel:  panel,
		prompt: prompt,
		score:  score,
		spec:   spec,
	}
	ui.HideOverlays()
	return ui
}

func (u *GameUI) ShowStart(resumed bool) {
	if u == nil || u.prompt == nil {
		return
	}
	if resumed {
		u.prompt.Label = u.spec.ResumeText
	} else {
		u.prompt.Label = u.spec.StartText
	}
	u.panel.GetWidget().Visibility = widget.Visibility_Show
}

func (u *GameUI) ShowLoss() {
	if u == nil || u.prompt == nil {
		return
	}
	u.prompt.Label = u.spec.LossText
	u.panel.GetWidget().Visibility = widget.Visibility_Show
}

func (u *GameUI) HideOverlays() {
	if u == nil || u.prompt == nil {
		return
	}
	u.prompt.Label = ""
	u.panel.GetWidget().Visibility = widget.Visibility_Hide
}

func (u *GameUI) PublishScore(score int) {
	if u == nil || u.score == nil {
		return
	}
	u.score.Label = fmt.Sprintf("%d", score)
}

func (u *GameUI) Update() {
	if u == nil || u.ui == nil {
		return
	}
	u.ui.Update()
}

func (u *GameUI) Draw(screen *ebiten.Image) {
	if u == nil || u.ui == nil {
		return
	}
	u.ui.Draw(screen)
}
