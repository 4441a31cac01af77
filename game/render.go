package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// toScreen maps a centered world position to screen coordinates, scaling
// the whole map to fit the window.
func (g *Game) toScreen(p components.Position) (float32, float32, float32) {
	scaleX := g.screenWidth / g.bounds.Width()
	scaleY := g.screenHeight / g.bounds.Height()
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	x := g.screenWidth/2 + p.X*scale
	y := g.screenHeight/2 + p.Y*scale
	return x, y, scale
}

// colorToRl converts a normalized color to a raylib color.
func colorToRl(c components.Color, alpha float32) rl.Color {
	a := c.A * alpha
	return rl.Color{
		R: uint8(clampByte(c.R * 255)),
		G: uint8(clampByte(c.G * 255)),
		B: uint8(clampByte(c.B * 255)),
		A: uint8(clampByte(a * 255)),
	}
}

func clampByte(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

	g.drawSegments()
	g.drawFlying()
	g.drawPlayers()
	g.drawEffects()
	g.drawHUD()

	rl.EndDrawing()
}

// drawSegments renders all chain segments with their tier color and
// current animation scale.
func (g *Game) drawSegments() {
	query := g.segFilter.Query()
	for query.Next() {
		pos, body, scale, seg := query.Get()

		x, y, s := g.toScreen(*pos)
		radius := body.Radius * scale.Factor * s
		if radius < 0.5 {
			continue
		}

		color := systems.EnhanceForLevel(seg.BaseColor, seg.Level)
		rl.DrawCircle(int32(x), int32(y), radius, colorToRl(color, 1))
		rl.DrawCircleLines(int32(x), int32(y), radius, rl.Color{R: 255, G: 255, B: 255, A: 70})

		if seg.OptionText != "" {
			fontSize := int32(10)
			width := rl.MeasureText(seg.OptionText, fontSize)
			rl.DrawText(seg.OptionText, int32(x)-width/2, int32(y)-fontSize/2, fontSize, rl.White)
		}
	}
}

// drawFlying renders fly-to-chain transients.
func (g *Game) drawFlying() {
	query := g.flyFilter.Query()
	for query.Next() {
		pos, body, scale, fly := query.Get()

		x, y, s := g.toScreen(*pos)
		radius := body.Radius * scale.Factor * s
		rl.DrawCircle(int32(x), int32(y), radius, colorToRl(fly.Color, 0.9))
	}
}

// drawPlayers renders players as oriented triangles.
func (g *Game) drawPlayers() {
	query := g.playerFilter.Query()
	for query.Next() {
		pos, _, body, player := query.Get()

		x, y, s := g.toScreen(*pos)
		color := rl.SkyBlue
		if g.manualControl && player.ID == 0 {
			color = rl.Gold
		}
		drawOrientedTriangle(x, y, player.Heading, body.Radius*s, color)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	frontX := x + systems.Cos(heading)*radius*1.5
	frontY := y + systems.Sin(heading)*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + systems.Cos(backAngle)*radius
	backLeftY := y + systems.Sin(backAngle)*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + systems.Cos(backAngle)*radius
	backRightY := y + systems.Sin(backAngle)*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

// drawEffects renders burst particles with a life-based fade.
func (g *Game) drawEffects() {
	for _, pt := range g.effects.Particles() {
		lifeRatio := pt.Life / pt.MaxLif
		x, y, s := g.toScreen(components.Position{X: pt.X, Y: pt.Y})
		size := pt.Size * lifeRatio * s
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(x), int32(y), size, colorToRl(pt.Color, lifeRatio))
	}
}

// drawHUD renders the status overlay.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)

	y := int32(35)
	for id := uint8(0); int(id) < len(g.players); id++ {
		chain, ok := g.chains[id]
		if !ok {
			continue
		}
		reacting := ""
		if _, active := g.reactions.active[id]; active {
			reacting = "  REACTING"
		}
		rl.DrawText(fmt.Sprintf("P%d chain: %d%s", id, len(chain.Segments), reacting), 10, y, 20, rl.RayWhite)
		y += 25
	}

	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]  Tab: steer P0", g.stepsPerUpdate), 10, y, 20, rl.Gray)
	if g.paused {
		rl.DrawText("PAUSED", 10, y+25, 20, rl.Yellow)
	}
}
