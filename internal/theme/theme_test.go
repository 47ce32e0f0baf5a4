package theme

import "testing"

func TestAspectRatioCanvasSize(t *testing.T) {
	tests := map[string]struct {
		aspect        AspectRatio
		width, height float64
	}{
		"16:9":    {Aspect16x9, 1920, 1080},
		"4:3":     {Aspect4x3, 1440, 1080},
		"16:10":   {Aspect16x10, 1920, 1200},
		"unknown": {AspectRatio("21:9"), 1920, 1080},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			size := tt.aspect.CanvasSize()
			if size.Width != tt.width || size.Height != tt.height {
				t.Errorf("CanvasSize() = %gx%g, want %gx%g",
					size.Width, size.Height, tt.width, tt.height)
			}
		})
	}
}

func TestGetOrDefault(t *testing.T) {
	if got := GetOrDefault("no such theme"); got == nil || got.Name() != DefaultName {
		t.Fatalf("unknown name must fall back to %q, got %v", DefaultName, got)
	}
	if got := GetOrDefault("Classic"); got == nil || got.Aspect != Aspect4x3 {
		t.Fatalf("Classic lookup failed: %v", got)
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	names := List()
	want := map[string]bool{DefaultName: false, "Classic": false, "Widescreen Stage": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("builtin theme %q not registered", n)
		}
	}
}

func TestValidate(t *testing.T) {
	good := &Theme{ThemeName: "t", Aspect: Aspect16x9}
	if err := good.Validate(); err != nil {
		t.Errorf("valid theme rejected: %v", err)
	}

	if err := (&Theme{Aspect: Aspect16x9}).Validate(); err == nil {
		t.Error("missing name must fail validation")
	}
	if err := (&Theme{ThemeName: "t", Aspect: "3:2"}).Validate(); err == nil {
		t.Error("unknown aspect must fail validation")
	}
}
