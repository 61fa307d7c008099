package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actorkit/actor"
)

// EbitenSource reads the keyboard, mouse and first standard gamepad.
type EbitenSource struct {
	Bindings Bindings
	// Camera, when set, is turned by the yaw keys and the right stick.
	Camera   *actor.FixedCamera
	YawSpeed float64

	attack *pressThrottle
}

func NewEbitenSource(b Bindings, camera *actor.FixedCamera) *EbitenSource {
	return &EbitenSource{
		Bindings: b,
		Camera:   camera,
		YawSpeed: 90,
		attack:   newPressThrottle(AttackThrottle),
	}
}

func (s *EbitenSource) Poll(dt float64, into *Aggregator) error {
	if into == nil {
		return nil
	}
	b := s.Bindings

	var moveX, moveZ float64
	if ebiten.IsKeyPressed(b.Left) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(b.Right) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(b.Forward) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(b.Back) {
		moveZ -= 1
	}
	jump := ebiten.IsKeyPressed(b.Jump)
	sprint := ebiten.IsKeyPressed(b.Sprint)
	attack := ebiten.IsKeyPressed(b.Attack)
	defend := ebiten.IsKeyPressed(b.Defend)
	if b.MouseEnable {
		attack = attack || ebiten.IsMouseButtonPressed(b.AttackMouse)
		defend = defend || ebiten.IsMouseButtonPressed(b.DefendMouse)
	}

	var yaw float64
	if ebiten.IsKeyPressed(b.YawLeft) {
		yaw -= 1
	}
	if ebiten.IsKeyPressed(b.YawRight) {
		yaw += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > b.StickDeadzone {
			moveX = lx
			moveZ = -ly
		}
		if rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(rx) > b.StickDeadzone {
			yaw = rx
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		attack = attack || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		defend = defend || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
	}

	if s.Camera != nil && yaw != 0 {
		s.Camera.Degrees += yaw * s.YawSpeed * dt
	}

	into.Apply(Snapshot{
		Move:   clampMove(mgl64.Vec3{moveX, 0, moveZ}),
		Jump:   jump,
		Sprint: sprint,
		Attack: s.attack.update(dt, attack),
		Defend: defend,
	})
	return nil
}

func clampMove(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
