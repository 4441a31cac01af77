package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input in interactive mode.
func (g *Game) handleInput() {
	if g.headless {
		return
	}

	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Tab toggles keyboard steering of player 0
	if rl.IsKeyPressed(rl.KeyTab) {
		g.manualControl = !g.manualControl
	}

	g.manualTurn = 0
	if g.manualControl {
		if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
			g.manualTurn = -1
		}
		if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
			g.manualTurn = 1
		}
	}
}

// handleResize propagates window resizes to the screen dimensions used by
// the renderer. Map bounds are independent of the window.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
}
