package deck

// Sample builds the starter deck shown on first run: a title slide and a
// lyrics slide with a few layers laid out for a 1920x1080 canvas.
func Sample() *Deck {
	d := New("Sunday Service", "Default Dark")

	title := NewSlide("Welcome")
	title.AddLayer(NewShapeLayer("Backdrop", "#1d2440", Transform{
		X: 160, Y: 120, Width: 1600, Height: 840, Opacity: 1,
	}))
	title.AddLayer(NewTextLayer("Title", "Welcome Home", Transform{
		X: 360, Y: 360, Width: 1200, Height: 200, Opacity: 1,
	}))
	title.AddLayer(NewTextLayer("Subtitle", "Sunday · 10:00", Transform{
		X: 560, Y: 600, Width: 800, Height: 100, Opacity: 0.85,
	}))
	d.AddSlide(title)

	lyrics := NewSlide("Verse 1")
	lyrics.AddLayer(NewTextLayer("Lyrics", "Amazing grace, how sweet the sound", Transform{
		X: 240, Y: 420, Width: 1440, Height: 240, Opacity: 1,
	}))
	footer := NewTextLayer("Reference", "J. Newton, 1779", Transform{
		X: 1420, Y: 960, Width: 420, Height: 60, Opacity: 0.6,
	})
	footer.Locked = true
	lyrics.AddLayer(footer)
	d.AddSlide(lyrics)

	return d
}
