package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadZone = 0.3

// State is one frame of polled input. Pressed fields are true only on the
// frame the key went down.
type State struct {
	// MoveX and MoveY are -1, 0 or +1.
	MoveX float64
	MoveY float64

	// Interact activates the interactable under the player.
	Interact bool
	// Confirm advances dialogue. It shares keys with Interact.
	Confirm bool
	Up      bool
	Down    bool

	// Reload re-reads changed assets from disk.
	Reload bool

	// CursorX/Y are in screen pixels.
	CursorX      float64
	CursorY      float64
	MousePressed bool
	MouseHeld    bool
	MouseRelease bool

	ToggleEditor    bool
	ToolSelect      bool
	ToolMove        bool
	ToolSpawn       bool
	ToggleCollision bool
	Delete          bool
	Duplicate       bool
	SpawnAtPlayer   bool
	Save            bool
	Load            bool
	Copy            bool
}

// Poll reads the keyboard, mouse and first gamepad.
func Poll() State {
	var s State

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		s.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		s.MoveY += 1
	}

	confirm := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyZ)
	s.Up = inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	s.Down = inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -stickDeadZone {
			s.MoveX = -1
		} else if lx > stickDeadZone {
			s.MoveX = 1
		}
		if ly < -stickDeadZone {
			s.MoveY = -1
		} else if ly > stickDeadZone {
			s.MoveY = 1
		}
		confirm = confirm || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		s.Up = s.Up || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftTop)
		s.Down = s.Down || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
	}
	s.Interact = confirm
	s.Confirm = confirm

	s.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)

	mx, my := ebiten.CursorPosition()
	s.CursorX, s.CursorY = float64(mx), float64(my)
	s.MousePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.MouseHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.MouseRelease = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	s.ToggleEditor = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	s.ToolSelect = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	s.ToolMove = !ctrl && inpututil.IsKeyJustPressed(ebiten.KeyW)
	s.ToolSpawn = inpututil.IsKeyJustPressed(ebiten.KeyE)
	s.ToggleCollision = inpututil.IsKeyJustPressed(ebiten.KeyH)
	s.Delete = inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	s.Duplicate = ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD)
	s.SpawnAtPlayer = inpututil.IsKeyJustPressed(ebiten.KeyP)
	s.Save = ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS)
	s.Load = ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL)
	s.Copy = ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC)

	return s
}
