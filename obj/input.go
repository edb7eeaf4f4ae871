package obj

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the sampled input state for one tick. Systems read the fields;
// only Update talks to the keyboard/gamepad, so tests can set fields
// directly.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right. The gravity-flip core
	// ignores it; it is sampled for completeness.
	MoveX float64
	// MoveY is the vertical axis: +1 pulls gravity down, -1 pulls it up.
	MoveY float64
	// JumpPressed is true only on the frame the jump key went down.
	JumpPressed bool
	// JumpHeld is true while the jump key is down.
	JumpHeld bool
	// ResetPressed is true on the frame the reset key went down.
	ResetPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and, when present, the first gamepad.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY += 1
	}

	ids := ebiten.GamepadIDs()
	var gpJumpJustPressed, gpJumpHeld, gpResetJustPressed bool
	if len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftY < -0.3 {
			moveY = -1
		} else if leftY > 0.3 {
			moveY = 1
		}

		gpJumpJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpJumpHeld = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpResetJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
	i.MoveY = moveY
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJumpJustPressed
	i.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || gpJumpHeld
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpResetJustPressed
}
