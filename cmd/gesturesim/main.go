// Command gesturesim replays a scripted pointer gesture against a deck
// layer and prints the preview stream and the committed patch. Useful for
// checking snapping and clamping behavior without a display.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"worship-presenter/internal/deck"
	"worship-presenter/internal/interaction"
	"worship-presenter/internal/snap"
	"worship-presenter/internal/theme"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

func main() {
	deckPath := flag.String("deck", "", "Path to a deck file (sample deck when empty)")
	slideIdx := flag.Int("slide", 0, "Slide index")
	layerName := flag.String("layer", "", "Layer name (first interactive layer when empty)")
	op := flag.String("op", "drag", "Gesture: drag, resize, or rotate")
	handleName := flag.String("handle", "se", "Resize handle: nw n ne e se s sw w")
	dx := flag.Float64("dx", 0, "Pointer delta X in slide units")
	dy := flag.Float64("dy", 0, "Pointer delta Y in slide units")
	steps := flag.Int("steps", 4, "Number of intermediate pointer moves")
	shift := flag.Bool("shift", false, "Hold Shift")
	alt := flag.Bool("alt", false, "Hold Alt")
	grid := flag.Float64("grid", 0, "Grid size (0 disables grid snapping)")
	flag.Parse()

	d := deck.Sample()
	if *deckPath != "" {
		loaded, err := deck.Load(*deckPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load deck: %v\n", err)
			os.Exit(1)
		}
		d = loaded
	}

	slide := d.Slide(*slideIdx)
	if slide == nil {
		fmt.Fprintf(os.Stderr, "No slide at index %d\n", *slideIdx)
		os.Exit(1)
	}

	layer := pickLayer(slide, *layerName)
	if layer == nil {
		fmt.Fprintf(os.Stderr, "No interactive layer found\n")
		os.Exit(1)
	}

	canvas := theme.GetOrDefault(d.Theme).CanvasSize()

	fmt.Printf("=== Gesture: %s on %q ===\n", *op, layer.Name)
	fmt.Printf("Canvas: %gx%g\n", canvas.Width, canvas.Height)
	fmt.Printf("Start:  %s\n", formatTransform(layer.Transform))

	// Identity viewport: screen coordinates are slide coordinates.
	env := interaction.Env{
		Canvas: canvas,
		Viewport: func() (interaction.Viewport, bool) {
			return interaction.Viewport{ScaleX: 1, ScaleY: 1}, true
		},
		Config: func() interaction.Config {
			return interaction.Config{SnapToGrid: *grid > 0, GridSize: *grid}
		},
		Siblings: func() []*deck.Layer { return slide.Siblings(layer.ID) },
		OnPreview: func(t deck.Transform) {
			fmt.Printf("  preview %s\n", formatTransform(t))
		},
		OnGuides: func(guides []snap.GuideLine) {
			for _, g := range guides {
				fmt.Printf("  guide   %s @ %g\n", g.Orientation, g.Position)
			}
		},
		OnCommit: func(p deck.Patch) {
			data, _ := json.Marshal(p)
			fmt.Printf("\n=== Commit ===\n%s\n", data)
			layer.Transform = p.ApplyTo(layer.Transform)
		},
	}

	router := interaction.NewRouter()
	down := startPoint(layer, *op, *handleName)

	var session *interaction.Session
	switch *op {
	case "drag":
		session = router.StartDrag(layer, down, env)
	case "resize":
		h, ok := transform.ParseHandle(*handleName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown handle %q\n", *handleName)
			os.Exit(1)
		}
		session = router.StartResize(layer, h, down, env)
	case "rotate":
		session = router.StartRotate(layer, down, env)
	default:
		fmt.Fprintf(os.Stderr, "Unknown op %q\n", *op)
		os.Exit(1)
	}
	if session == nil {
		fmt.Fprintf(os.Stderr, "Gesture refused (layer locked or hidden?)\n")
		os.Exit(1)
	}

	mods := interaction.Modifiers{Shift: *shift, Alt: *alt}
	n := *steps
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		f := float64(i) / float64(n)
		router.Move(geometry.Point2D{X: down.X + *dx*f, Y: down.Y + *dy*f}, mods)
	}
	router.Finish()

	fmt.Printf("\nFinal:  %s\n", formatTransform(layer.Transform))
}

// pickLayer finds the named layer, or the topmost interactive one.
func pickLayer(slide *deck.Slide, name string) *deck.Layer {
	if name != "" {
		for _, l := range slide.Layers {
			if l.Name == name {
				return l
			}
		}
		return nil
	}
	for i := len(slide.Layers) - 1; i >= 0; i-- {
		if slide.Layers[i].Interactive() {
			return slide.Layers[i]
		}
	}
	return nil
}

// startPoint picks the pointer-down position: the grabbed handle's corner
// for resizes, above the top edge for rotates, the center for drags.
func startPoint(l *deck.Layer, op, handleName string) geometry.Point2D {
	t := l.Transform
	switch op {
	case "resize":
		h, _ := transform.ParseHandle(handleName)
		p := t.Center()
		switch {
		case h == transform.HandleNW:
			p = geometry.Point2D{X: t.X, Y: t.Y}
		case h == transform.HandleNE:
			p = geometry.Point2D{X: t.X + t.Width, Y: t.Y}
		case h == transform.HandleSE:
			p = geometry.Point2D{X: t.X + t.Width, Y: t.Y + t.Height}
		case h == transform.HandleSW:
			p = geometry.Point2D{X: t.X, Y: t.Y + t.Height}
		case h == transform.HandleN:
			p = geometry.Point2D{X: t.X + t.Width/2, Y: t.Y}
		case h == transform.HandleS:
			p = geometry.Point2D{X: t.X + t.Width/2, Y: t.Y + t.Height}
		case h == transform.HandleE:
			p = geometry.Point2D{X: t.X + t.Width, Y: t.Y + t.Height/2}
		case h == transform.HandleW:
			p = geometry.Point2D{X: t.X, Y: t.Y + t.Height/2}
		}
		return p
	case "rotate":
		return geometry.Point2D{X: t.X + t.Width/2, Y: t.Y - 30}
	default:
		return t.Center()
	}
}

func formatTransform(t deck.Transform) string {
	return fmt.Sprintf("x=%.2f y=%.2f w=%.2f h=%.2f rot=%.2f",
		t.X, t.Y, t.Width, t.Height, t.Rotation)
}
