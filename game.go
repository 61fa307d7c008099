package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/actor/entity"
	"github.com/milk9111/actorkit/input"
	"github.com/milk9111/actorkit/internal/config"
	"github.com/milk9111/actorkit/physics"
	"github.com/milk9111/actorkit/prefabs"
	"github.com/milk9111/actorkit/reactive"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 32
	groundLine    = baseHeight * 3 / 4
	maxTrace      = 8
)

// pointOffsets place attach points relative to the character centre, in
// character diameters.
var pointOffsets = map[string]mgl64.Vec2{
	"RightHand": {0.45, 0.1},
	"LeftHand":  {-0.45, 0.1},
	"Back":      {0, 0.35},
}

type Game struct {
	frames int
	log    *slog.Logger
	cfg    config.Config

	spec       *prefabs.ActorSpec
	level      *prefabs.LevelSpec
	background color.Color

	world     *physics.World
	character *physics.Character
	camera    *actor.FixedCamera
	source    *input.EbitenSource
	props     *PropSet

	registry *entity.Registry
	playerID uuid.UUID
	player   *entity.Entity
	trace    *reactive.Bag
	recent   []entity.Transition

	watcher *prefabs.Watcher
}

func NewGame(cfg config.Config, log *slog.Logger) (*Game, error) {
	spec, err := prefabs.LoadActorSpec(cfg.Settings)
	if err != nil {
		return nil, err
	}
	level, err := prefabs.LoadLevelSpec(cfg.Level)
	if err != nil {
		return nil, err
	}
	normal, combat, err := spec.LoadGraphs()
	if err != nil {
		return nil, err
	}
	equipment, err := prefabs.LoadEquipmentSpec(spec.Equipment)
	if err != nil {
		return nil, err
	}
	slots, err := equipment.EquipmentSlots()
	if err != nil {
		return nil, err
	}

	g := &Game{
		log:        log,
		cfg:        cfg,
		spec:       spec,
		level:      level,
		background: level.Background.Color,
		camera:     &actor.FixedCamera{},
		props:      NewPropSet(equipment),
		registry:   entity.NewRegistry(log),
	}
	if g.background == nil {
		g.background = colornames.Black
	}
	g.source = input.NewEbitenSource(g.loadBindings(), g.camera)

	g.world = physics.NewWorld(level.Gravity, level.PhysicsSegments()...)
	g.character = g.world.NewCharacter(spec.SpawnPosition(), spec.CharacterConfig())
	g.character.SetYaw(spec.Character.Yaw)

	settings := spec.Settings.Settings()
	g.playerID, g.player, err = g.registry.Spawn(entity.Deps{
		Kind:     entity.LocalPlayer,
		Settings: &settings,
		View:     g.character,
		Camera:   g.camera,
		Source:   g.source,
		Normal:   normal,
		Combat:   combat,
		Props:    g.props,
		Slots:    slots,
		Physics:  g.world,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	if err := g.player.Err(); err != nil {
		log.Warn("player started degraded", "err", err)
	}
	g.trace = g.player.Trace(g.onTransition)

	if w, err := prefabs.Watch(prefabs.Dir); err != nil {
		log.Info("prefab hot reload disabled", "dir", prefabs.Dir, "err", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

func (g *Game) loadBindings() input.Bindings {
	data, err := prefabs.Load(g.spec.Bindings)
	if err != nil {
		g.log.Warn("using default bindings", "err", err)
		return input.DefaultBindings()
	}
	b, err := input.LoadBindings(data)
	if err != nil {
		g.log.Warn("bad bindings file", "err", err)
	}
	return b
}

func (g *Game) onTransition(t entity.Transition) {
	g.log.Debug("transition", "at", t.At, "cell", t.Cell, "value", t.Value)
	g.recent = append(g.recent, t)
	if len(g.recent) > maxTrace {
		g.recent = g.recent[len(g.recent)-maxTrace:]
	}
}

// reload applies edited prefab files between ticks.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadFile(c)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reloadFile(c prefabs.Change) {
	path := c.Path
	switch {
	case c.Kind == prefabs.FileSpec && prefabs.SameFile(path, g.cfg.Settings):
		spec, err := prefabs.LoadActorSpec(g.cfg.Settings)
		if err != nil {
			g.log.Warn("reload actor", "err", err)
			return
		}
		if err := g.player.ApplySettings(spec.Settings.Settings()); err != nil {
			g.log.Warn("reload actor", "err", err)
			return
		}
		g.spec.Settings = spec.Settings
		g.log.Info("settings reloaded", "path", path)
	case c.Kind == prefabs.FileBindings && prefabs.SameFile(path, g.spec.Bindings):
		g.source.Bindings = g.loadBindings()
		g.log.Info("bindings reloaded", "path", path)
	default:
		g.log.Debug("prefab changed, restart to apply", "path", path, "kind", c.Kind)
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	g.player.SetInputEnabled(ebiten.IsFocused())

	dt := g.cfg.TickDuration()
	g.registry.FixedUpdate(dt)
	g.registry.Update(dt)
	return nil
}

// Close releases the actors and stops the watcher.
func (g *Game) Close() {
	g.trace.Dispose()
	g.registry.ReleaseAll()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) toScreen(p mgl64.Vec2) (float32, float32) {
	focus := g.character.Position()
	x := (p.X()-focus.X())*pixelsPerUnit + baseWidth/2
	y := groundLine - p.Y()*pixelsPerUnit
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	for _, seg := range g.world.Segments() {
		x0, y0 := g.toScreen(seg.A)
		x1, y1 := g.toScreen(seg.B)
		width := float32(math.Max(2, seg.Radius*2*pixelsPerUnit))
		vector.StrokeLine(screen, x0, y0, x1, y1, width, colornames.Lightgrey, true)
	}

	g.drawPlayer(screen)
	g.drawHUD(screen)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	cfg := g.spec.CharacterConfig()
	pos := g.character.Position()
	center := mgl64.Vec2{pos.X(), pos.Y() + cfg.Radius}

	body := colornames.Crimson
	if g.player.Store().CombatMode.Value() {
		body = colornames.Orangered
	}
	cx, cy := g.toScreen(center)
	size := float32(cfg.Radius * 2 * pixelsPerUnit)
	vector.FillRect(screen, cx-size/2, cy-size/2, size, size, body, false)
	vector.StrokeRect(screen, cx-size/2, cy-size/2, size, size, 1, colornames.White, false)

	// facing, projected onto the side view
	yaw := mgl64.DegToRad(g.character.Yaw())
	fx, fy := g.toScreen(center.Add(mgl64.Vec2{math.Sin(yaw) * cfg.Radius * 1.5, 0}))
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.Yellow, true)

	for _, id := range g.props.Visible() {
		point, _ := g.props.Point(id)
		off, ok := pointOffsets[point]
		if !ok {
			continue
		}
		px, py := g.toScreen(center.Add(off.Mul(cfg.Radius * 2)))
		vector.FillRect(screen, px-4, py-4, 8, 8, g.props.props[id].color, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	store := g.player.Store()
	status := g.player.Status()
	pos := store.Position.Value()
	lines := []string{
		fmt.Sprintf("Frames: %d    FPS: %.2f    TPS: %.2f    Actor: %s", g.frames, ebiten.ActualFPS(), ebiten.ActualTPS(), g.playerID),
		fmt.Sprintf("Movement: %s    Combat: %s    Combo: %s    Mode: %v",
			store.MovementState.Value(), store.CombatState.Value(), store.ComboState.Value(), store.CombatMode.Value()),
		fmt.Sprintf("Pos: %.2f %.2f %.2f    Grounded: %v    Yaw: %.0f    Camera: %.0f",
			pos.X(), pos.Y(), pos.Z(), store.Grounded.Value(), g.character.Yaw(), g.camera.Yaw()),
		fmt.Sprintf("Graph: %s/%s    Swaps: %d    Props: %s",
			g.player.Animator().GraphID(), g.player.Animator().Current(), g.player.Bridge().Swaps(), strings.Join(g.props.Visible(), ",")),
		fmt.Sprintf("Health: %.0f    Stamina: %.0f", status.Health.Value(), status.Stamina.Value()),
	}
	if err := g.player.Err(); err != nil {
		lines = append(lines, "Error: "+err.Error())
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
	for i, t := range g.recent {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%6.2f %s=%s", t.At, t.Cell, t.Value), baseWidth-220, 8+i*16)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
