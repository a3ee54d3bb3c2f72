package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ironkeep/circuit"
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/session"
	"github.com/milk9111/ironkeep/wave"
	"golang.org/x/image/font/basicfont"
)

var (
	colorFloor      = color.RGBA{0x2a, 0x27, 0x24, 0xff}
	colorWall       = color.RGBA{0x6b, 0x65, 0x5e, 0xff}
	colorGate       = color.RGBA{0x8a, 0x5a, 0x2b, 0xff}
	colorExit       = color.RGBA{0x3c, 0xc8, 0x64, 0xff}
	colorHazard     = color.RGBA{0xd2, 0x46, 0x1e, 0xff}
	colorPlayer     = color.RGBA{0x4a, 0x9e, 0xff, 0xff}
	colorEnemy      = color.RGBA{0xc8, 0x3c, 0x3c, 0xff}
	colorTough      = color.RGBA{0xe0, 0x8c, 0x1e, 0xff}
	colorWindup     = color.RGBA{0xff, 0xf0, 0x50, 0xff}
	colorBoss       = color.RGBA{0x8c, 0x32, 0xc8, 0xff}
	colorBarrier    = color.RGBA{0x78, 0xdc, 0xff, 0xff}
	colorKeeper     = color.RGBA{0x50, 0xb4, 0xb4, 0xff}
	colorPowered    = color.RGBA{0xff, 0xd7, 0x32, 0xff}
	colorUnpowered  = color.RGBA{0x5a, 0x5a, 0x64, 0xff}
	colorRune       = color.RGBA{0x96, 0x78, 0xff, 0xff}
	colorHPBack     = color.RGBA{0x20, 0x20, 0x20, 0xff}
	colorHP         = color.RGBA{0x3c, 0xdc, 0x50, 0xff}
	colorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorDim        = color.RGBA{0x96, 0x96, 0x96, 0xff}
	colorDialogueBG = color.RGBA{0x00, 0x00, 0x00, 0xc8}
)

var pickupColors = map[component.PickupKind]color.RGBA{
	component.PickupHealth: {0xe6, 0x32, 0x5a, 0xff},
	component.PickupWeapon: {0xdc, 0xdc, 0xdc, 0xff},
	component.PickupBuff:   {0x32, 0xe6, 0xc8, 0xff},
}

var projectileColors = map[component.ProjectileKind]color.RGBA{
	component.ProjectileArrow:     {0xc8, 0xb4, 0x8c, 0xff},
	component.ProjectileBolt:      {0xa0, 0xa0, 0xb4, 0xff},
	component.ProjectileNecroBolt: {0x78, 0xff, 0x78, 0xff},
	component.ProjectileFireball:  {0xff, 0x82, 0x28, 0xff},
	component.ProjectileDebris:    {0x8c, 0x78, 0x64, 0xff},
	component.ProjectileOrb:       {0xdc, 0x50, 0xff, 0xff},
	component.ProjectilePlayer:    {0x96, 0xd2, 0xff, 0xff},
}

// Renderer draws the world with flat shapes and the basic bitmap font.
type Renderer struct {
	face       text.Face
	camX, camY float64
}

func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *Renderer) rect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x-r.camX), float32(y-r.camY), float32(w), float32(h), clr, false)
}

func (r *Renderer) outline(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.StrokeRect(dst, float32(x-r.camX), float32(y-r.camY), float32(w), float32(h), 2, clr, false)
}

func (r *Renderer) circle(dst *ebiten.Image, x, y, radius float64, clr color.Color) {
	vector.DrawFilledCircle(dst, float32(x-r.camX), float32(y-r.camY), float32(radius), clr, true)
}

func (r *Renderer) line(dst *ebiten.Image, x0, y0, x1, y1 float64, width float32, clr color.Color) {
	vector.StrokeLine(dst, float32(x0-r.camX), float32(y0-r.camY), float32(x1-r.camX), float32(y1-r.camY), width, clr, true)
}

// label draws screen-space text.
func (r *Renderer) label(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, r.face, op)
}

func (r *Renderer) worldLabel(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	w, _ := text.Measure(s, r.face, 0)
	r.label(dst, s, x-r.camX-w/2, y-r.camY, clr)
}

// follow centers the camera on the player, clamped to the level.
func (r *Renderer) follow(w *ecs.World, player ecs.Entity, screenW, screenH float64) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	px, py := tr.Center()
	b := pw.Bounds()
	r.camX = centerAxis(px, screenW, b.Width)
	r.camY = centerAxis(py, screenH, b.Height)
}

func centerAxis(p, screen, level float64) float64 {
	if level <= screen {
		return -(screen - level) / 2
	}
	return common.Clamp(p-screen/2, 0, level-screen)
}

func (r *Renderer) Draw(dst *ebiten.Image, s *session.Session) {
	w := s.World()
	if w == nil {
		return
	}
	bounds := dst.Bounds()
	r.follow(w, s.Player(), float64(bounds.Dx()), float64(bounds.Dy()))

	if pw := w.PhysicsWorld(); pw != nil {
		b := pw.Bounds()
		r.rect(dst, b.X, b.Y, b.Width, b.Height, colorFloor)
		for _, wall := range pw.Walls() {
			r.rect(dst, wall.X, wall.Y, wall.Width, wall.Height, colorWall)
		}
	}

	r.drawStatics(dst, w)
	r.drawCircuits(dst, w)
	r.drawPickups(dst, w)
	r.drawEnemies(dst, w)
	r.drawBoss(dst, w)
	r.drawPlayer(dst, w, s.Player())
	r.drawProjectiles(dst, w)
	r.drawFloatingText(dst, w)
	r.drawHUD(dst, s)
}

func (r *Renderer) drawStatics(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.GateComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.Gate, tr *component.Transform) {
		if g.Open {
			r.outline(dst, tr.X, tr.Y, tr.Width, tr.Height, colorGate)
			return
		}
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, colorGate)
	})
	ecs.ForEach2(w, component.ExitZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.ExitZone, tr *component.Transform) {
		r.outline(dst, tr.X, tr.Y, tr.Width, tr.Height, colorExit)
	})
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, h *component.Hazard, tr *component.Transform) {
		clr := colorHazard
		if h.Timer > 0 {
			clr.A = 0x80
		}
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, clr)
	})
	ecs.ForEach2(w, component.KeeperComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, k *component.Keeper, tr *component.Transform) {
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, colorKeeper)
		cx, _ := tr.Center()
		r.worldLabel(dst, k.Name, cx, tr.Y-16, colorDim)
	})
	ecs.ForEach2(w, component.RuneStoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, rs *component.RuneStone, tr *component.Transform) {
		cx, cy := tr.Center()
		clr := colorRune
		if rs.Flash > 0 {
			clr = colorPowered
		}
		r.circle(dst, cx, cy, tr.Width/2, clr)
		r.worldLabel(dst, fmt.Sprint(rs.Index+1), cx, cy-6, colorText)
	})
}

// nodeArms returns the sides a node's pipe reaches for drawing.
func nodeArms(n *circuit.Node) []common.Dir {
	switch n.Type {
	case circuit.Straight:
		return []common.Dir{common.Up.Rotate(n.Rotation % 2), common.Down.Rotate(n.Rotation % 2)}
	case circuit.Corner, circuit.Split:
		return []common.Dir{common.Up.Rotate(n.Rotation), common.Right.Rotate(n.Rotation)}
	}
	return nil
}

func (r *Renderer) drawCircuits(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.CircuitBoardComponent.Kind(), func(_ ecs.Entity, cb *component.CircuitBoard) {
		if cb.Board == nil {
			return
		}
		half := cb.Spacing * 0.4
		for i := range cb.Board.Nodes {
			n := &cb.Board.Nodes[i]
			cx, cy := cb.CellCenter(n.Col, n.Row)
			r.outline(dst, cx-half, cy-half, half*2, half*2, colorUnpowered)
			clr := colorUnpowered
			if n.Powered {
				clr = colorPowered
			}
			for _, d := range nodeArms(n) {
				dx, dy := d.Vector()
				r.line(dst, cx, cy, cx+dx*half, cy+dy*half, 6, clr)
			}
			if n.Type == circuit.Split {
				r.circle(dst, cx, cy, 6, clr)
			}
		}
		if cb.Solved {
			x, y := cb.CellCenter(0, 0)
			r.worldLabel(dst, "POWERED", x+cb.Spacing, y-cb.Spacing*0.8, colorPowered)
		}
	})
}

func (r *Renderer) drawPickups(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, tr *component.Transform) {
		if p.Collected {
			return
		}
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, pickupColors[p.Kind])
		cx, _ := tr.Center()
		switch p.Kind {
		case component.PickupWeapon:
			r.worldLabel(dst, string(p.Weapon), cx, tr.Y-14, colorDim)
		case component.PickupBuff:
			r.worldLabel(dst, string(p.Buff), cx, tr.Y-14, colorDim)
		}
	})
}

func (r *Renderer) healthBar(dst *ebiten.Image, tr *component.Transform, hp *component.Health) {
	r.rect(dst, tr.X, tr.Y-6, tr.Width, 3, colorHPBack)
	r.rect(dst, tr.X, tr.Y-6, tr.Width*hp.Ratio(), 3, colorHP)
}

func (r *Renderer) drawEnemies(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
		if hp.Dead || enemy.State == component.EnemyVanished {
			return
		}
		clr := colorEnemy
		if enemy.Tough {
			clr = colorTough
		}
		if enemy.State == component.EnemyWindup || enemy.State == component.EnemyCharging {
			clr = colorWindup
		}
		if hp.HitFlash > 0 {
			clr = color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, clr)
		if enemy.Archetype == component.ArchetypeShieldGuard {
			cx, cy := tr.Center()
			dx, dy := enemy.ShieldDir.Vector()
			r.line(dst, cx+dx*tr.Width/2-dy*tr.Height/2, cy+dy*tr.Height/2-dx*tr.Width/2,
				cx+dx*tr.Width/2+dy*tr.Height/2, cy+dy*tr.Height/2+dx*tr.Width/2, 4, colorDim)
		}
		if hp.Current < hp.Max {
			r.healthBar(dst, tr, hp)
		}
	})
}

func (r *Renderer) drawBoss(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach3(w, component.BossComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Boss, hp *component.Health, tr *component.Transform) {
		if b.State == component.BossDefeated {
			return
		}
		clr := colorBoss
		if b.Action != component.BossActionNone {
			clr = colorWindup
		}
		if b.State == component.BossDying && (b.StageTimer/4)%2 == 0 {
			clr = colorText
		}
		r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, clr)
		if b.Barrier > 0 {
			r.outline(dst, tr.X-4, tr.Y-4, tr.Width+8, tr.Height+8, colorBarrier)
		}
		if b.OnThrone {
			cx, _ := tr.Center()
			r.worldLabel(dst, "IMMUNE", cx, tr.Y-18, colorDim)
		}
	})
}

func (r *Renderer) drawPlayer(dst *ebiten.Image, w *ecs.World, e ecs.Entity) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if hp != nil && hp.Dead {
		r.outline(dst, tr.X, tr.Y, tr.Width, tr.Height, colorPlayer)
		return
	}
	if hp != nil && hp.IFrames > 0 && (hp.IFrames/4)%2 == 1 {
		return
	}
	r.rect(dst, tr.X, tr.Y, tr.Width, tr.Height, colorPlayer)
	if p == nil {
		return
	}
	cx, cy := tr.Center()
	dx, dy := p.Facing.Vector()
	reach := tr.Width
	if p.Swing > 0 {
		if stats, ok := p.Arsenal[p.Weapon]; ok && stats.Reach > 0 {
			reach = stats.Reach
		}
	}
	r.line(dst, cx, cy, cx+dx*reach, cy+dy*reach, 3, colorText)
}

func (r *Renderer) drawProjectiles(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, tr *component.Transform) {
		cx, cy := tr.Center()
		r.circle(dst, cx, cy, tr.Width/2+1, projectileColors[p.Kind])
	})
}

func (r *Renderer) drawFloatingText(dst *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.FloatingTextComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ft *component.FloatingText, tr *component.Transform) {
		r.worldLabel(dst, ft.Text, tr.X, tr.Y, colorText)
	})
}

func (r *Renderer) drawHUD(dst *ebiten.Image, s *session.Session) {
	w := s.World()
	if lvl := s.LevelData(); lvl != nil {
		r.label(dst, lvl.Name, 16, 12, colorDim)
	}

	e := s.Player()
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if ok {
		vector.DrawFilledRect(dst, 16, 32, 200, 12, colorHPBack, false)
		vector.DrawFilledRect(dst, 16, 32, float32(200*hp.Ratio()), 12, colorHP, false)
		r.label(dst, fmt.Sprintf("%d/%d", hp.Current, hp.Max), 224, 31, colorText)
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		x := 16.0
		for i, wpn := range component.WeaponOrder {
			if !p.Owned[wpn] {
				continue
			}
			clr := colorDim
			name := fmt.Sprintf("%d %s", i+1, wpn)
			if wpn == p.Weapon {
				clr = colorText
				name = "[" + name + "]"
			}
			r.label(dst, name, x, 52, clr)
			x += float64(len(name)*7 + 12)
		}
		var buffs []string
		for _, b := range component.AllBuffs {
			if p.Buffs.Active(b) {
				buffs = append(buffs, fmt.Sprintf("%s %ds", b, p.Buffs[b]/60))
			}
		}
		if len(buffs) > 0 {
			r.label(dst, strings.Join(buffs, "  "), 16, 70, colorBarrier)
		}
		if hp != nil && hp.Dead {
			r.label(dst, "You have fallen...", float64(dst.Bounds().Dx())/2-60, float64(dst.Bounds().Dy())/2, colorText)
		}
	}

	r.drawWaveStatus(dst, w)
	r.drawBossBar(dst, w)
}

func (r *Renderer) drawWaveStatus(dst *ebiten.Image, w *ecs.World) {
	de, ok := ecs.First(w, component.WaveDirectorComponent.Kind())
	if !ok {
		return
	}
	d, _ := ecs.Get(w, de, component.WaveDirectorComponent.Kind())
	if d == nil || d.Orchestrator == nil {
		return
	}
	o := d.Orchestrator
	var status string
	switch o.State() {
	case wave.Idle:
		status = "The ward is quiet."
	case wave.Pause:
		status = fmt.Sprintf("Wave %d/%d in %ds", o.CurrentWave(), o.TotalWaves(), o.PauseRemaining()/60+1)
	case wave.Active:
		status = fmt.Sprintf("Wave %d/%d", o.CurrentWave(), o.TotalWaves())
	case wave.Puzzle:
		status = fmt.Sprintf("Runes %d/%d", d.Runes.Progress(), d.Runes.Len())
	case wave.Complete:
		status = "The ward is held."
	}
	r.label(dst, status, float64(dst.Bounds().Dx())-220, 12, colorText)
}

func (r *Renderer) drawBossBar(dst *ebiten.Image, w *ecs.World) {
	e, ok := ecs.First(w, component.BossComponent.Kind())
	if !ok {
		return
	}
	b, _ := ecs.Get(w, e, component.BossComponent.Kind())
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if b == nil || !ok || b.State == component.BossOnThrone || b.State == component.BossDefeated {
		return
	}
	width := float64(dst.Bounds().Dx()) * 0.6
	x := (float64(dst.Bounds().Dx()) - width) / 2
	y := float64(dst.Bounds().Dy()) - 40
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(width), 14, colorHPBack, false)
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(width*hp.Ratio()), 14, colorBoss, false)
	if b.BarrierMax > 0 && b.Barrier > 0 {
		ratio := float64(b.Barrier) / float64(b.BarrierMax)
		vector.DrawFilledRect(dst, float32(x), float32(y-6), float32(width*ratio), 4, colorBarrier, false)
	}
	r.label(dst, fmt.Sprintf("The Usurper  phase %.1f", b.Phase), x, y-24, colorText)
}

// drawDialogue draws the latest spoken line along the bottom of the screen.
func (r *Renderer) drawDialogue(dst *ebiten.Image, d ecs.Dialogue) {
	bw, bh := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	y := bh - 110
	vector.DrawFilledRect(dst, 40, float32(y), float32(bw-80), 56, colorDialogueBG, false)
	r.label(dst, d.Speaker, 56, y+8, colorBarrier)
	r.label(dst, d.Line, 56, y+28, colorText)
}
