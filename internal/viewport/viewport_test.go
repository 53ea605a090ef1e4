package viewport

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		width      float64
		breakpoint float64
		want       Policy
	}{
		{375, 0, Mobile},
		{639, 0, Mobile},
		{639.9, DefaultBreakpoint, Mobile},
		{640, 0, Desktop},
		{1024, 0, Desktop},
		{800, 900, Mobile},
		{0, 0, Mobile},
	}
	for _, tt := range tests {
		if got := Classify(tt.width, tt.breakpoint); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.width, tt.breakpoint, got, tt.want)
		}
	}
}

func TestMeasure_ExposesRawDimensionsAndDockHeight(t *testing.T) {
	vp := Measure(1024, 768, 48, 0)
	if vp.Width != 1024 || vp.Height != 768 {
		t.Fatalf("expected 1024x768, got %vx%v", vp.Width, vp.Height)
	}
	if vp.IsMobile() {
		t.Fatalf("expected desktop policy")
	}
	if vp.DockHeight() != 63 {
		t.Fatalf("expected desktop dock height 63, got %v", vp.DockHeight())
	}

	mobile := Measure(375, 812, 48, 0)
	if !mobile.IsMobile() {
		t.Fatalf("expected mobile policy")
	}
	if mobile.DockHeight() != 60 {
		t.Fatalf("expected mobile dock height 60, got %v", mobile.DockHeight())
	}
}

func TestMeasure_NegativeSizesClampToZero(t *testing.T) {
	vp := Measure(-5, -10, 48, 0)
	if vp.Width != 0 || vp.Height != 0 {
		t.Fatalf("expected 0x0, got %vx%v", vp.Width, vp.Height)
	}
}

func TestPolicyString(t *testing.T) {
	if Desktop.String() != "desktop" || Mobile.String() != "mobile" || Policy(9).String() != "unknown" {
		t.Fatalf("unexpected policy strings")
	}
}
