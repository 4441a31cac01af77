// Trail following preview tool - interactive visualization with sliders.
//
// The head chases the mouse on a wrapping plane while a chain of segments
// follows its movement trail. Useful for tuning spacing, smoothing and
// trail sampling without running the full game.
//
// Usage: go run ./cmd/trailpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// TrailParams holds the chain following parameters.
type TrailParams struct {
	Spacing        float32
	Smoothing      float32
	SampleInterval float32
	MinSampleDist  float32
	Segments       int
	Speed          float32
}

func defaultParams() TrailParams {
	return TrailParams{
		Spacing:        25,
		Smoothing:      0.15,
		SampleInterval: 0.1,
		MinSampleDist:  5,
		Segments:       10,
		Speed:          220,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Trail Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	bounds := systems.NewBounds(previewSize, previewSize)

	trail := systems.NewMovementTrail(params.SampleInterval, params.MinSampleDist, 1000)
	head := components.Position{}
	segments := make([]components.Position, params.Segments)

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		if dt > 0.05 {
			dt = 0.05
		}

		// Head chases the mouse using the wrapped direction
		mouse := rl.GetMousePosition()
		if mouse.X >= 10 && mouse.X <= 10+previewSize && mouse.Y >= 10 && mouse.Y <= 10+previewSize {
			target := components.Position{
				X: mouse.X - 10 - previewSize/2,
				Y: mouse.Y - 10 - previewSize/2,
			}
			dist := systems.WrappedDistance(head, target, bounds)
			if dist > 2 {
				step := params.Speed * dt / dist
				if step > 1 {
					step = 1
				}
				head = systems.WrappedLerp(head, target, step, bounds)
			}
		}

		trail.Sample(head, dt, bounds)

		// Resize segment slice without losing existing positions
		for len(segments) < params.Segments {
			segments = append(segments, head)
		}
		segments = segments[:params.Segments]

		for i := range segments {
			target, ok := trail.PositionAtDistance(float32(i+1)*params.Spacing, bounds)
			if ok {
				segments[i] = systems.ShortestMove(segments[i], target, bounds, params.Smoothing)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPreview(head, segments, trail, bounds)
		drawPanel(&params, trail, &head, &segments)

		rl.EndDrawing()
	}
}

// toPreview maps a centered world position into the preview rectangle.
func toPreview(p components.Position) (int32, int32) {
	return int32(p.X + previewSize/2 + 10), int32(p.Y + previewSize/2 + 10)
}

func drawPreview(head components.Position, segments []components.Position, trail *systems.MovementTrail, bounds systems.Bounds) {
	rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 12, G: 14, B: 24, A: 255})
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	for i, seg := range segments {
		x, y := toPreview(seg)
		rl.DrawCircle(x, y, 10, rl.Color{R: 80, G: 170, B: 220, A: 255})
		rl.DrawCircleLines(x, y, 10, rl.White)
		label := fmt.Sprintf("%d", i)
		w := rl.MeasureText(label, 10)
		rl.DrawText(label, x-w/2, y-5, 10, rl.White)
	}

	hx, hy := toPreview(head)
	rl.DrawCircle(hx, hy, 8, rl.Gold)

	rl.DrawText(fmt.Sprintf("trail points: %d  path len: %.0f", trail.Len(), trail.PathLength(bounds)),
		15, previewSize+25, 16, rl.DarkGray)
	rl.DrawText("Move the mouse inside the box; the plane wraps at the edges",
		15, previewSize+45, 14, rl.Gray)
}

func drawPanel(params *TrailParams, trail *systems.MovementTrail, head *components.Position, segments *[]components.Position) {
	panelX := float32(previewSize + 20)
	panelY := float32(10)

	rl.DrawText("Chain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	sampleDirty := false

	params.Spacing = paramSlider(panelX, &panelY, "Spacing (distance between segments)",
		"10", "60", params.Spacing, 10, 60, nil)
	params.Smoothing = paramSlider(panelX, &panelY, "Smoothing (step fraction per frame)",
		"0.01", "1.0", params.Smoothing, 0.01, 1.0, nil)
	params.SampleInterval = paramSlider(panelX, &panelY, "Sample interval (seconds)",
		"0.02", "0.3", params.SampleInterval, 0.02, 0.3, &sampleDirty)
	params.MinSampleDist = paramSlider(panelX, &panelY, "Min sample distance",
		"1", "20", params.MinSampleDist, 1, 20, &sampleDirty)

	segf := paramSlider(panelX, &panelY, "Segments",
		"1", "30", float32(params.Segments), 1, 30, nil)
	params.Segments = int(segf)

	params.Speed = paramSlider(panelX, &panelY, "Head speed",
		"50", "500", params.Speed, 50, 500, nil)

	if sampleDirty {
		*trail = *systems.NewMovementTrail(params.SampleInterval, params.MinSampleDist, 1000)
	}

	panelY += 10
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
		*params = defaultParams()
		*trail = *systems.NewMovementTrail(params.SampleInterval, params.MinSampleDist, 1000)
		*head = components.Position{}
		*segments = (*segments)[:0]
	}
	panelY += 55

	// Output YAML
	rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
	panelY += 25
	yamlLines := []string{
		"chain:",
		fmt.Sprintf("  segment_spacing: %.0f", params.Spacing),
		fmt.Sprintf("  smoothing_factor: %.2f", params.Smoothing),
		"trail:",
		fmt.Sprintf("  sample_interval: %.2f", params.SampleInterval),
		fmt.Sprintf("  min_sample_distance: %.0f", params.MinSampleDist),
	}
	for _, line := range yamlLines {
		rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 16
	}

	rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

	if rl.IsKeyPressed(rl.KeyC) {
		yaml := fmt.Sprintf(`chain:
  segment_spacing: %.0f
  smoothing_factor: %.2f
trail:
  sample_interval: %.2f
  min_sample_distance: %.0f`,
			params.Spacing, params.Smoothing, params.SampleInterval, params.MinSampleDist)
		rl.SetClipboardText(yaml)
	}
}

// paramSlider draws a labelled slider and returns the new value. If dirty is
// non-nil it is set when the value changed.
func paramSlider(panelX float32, panelY *float32, label, minText, maxText string, value, min, max float32, dirty *bool) float32 {
	rl.DrawText(label, int32(panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	newValue := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", newValue), int32(panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.DarkGray)
	*panelY += 35
	if dirty != nil && newValue != value {
		*dirty = true
	}
	return newValue
}
