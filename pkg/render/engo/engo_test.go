package engo

import (
	"math"
	"testing"

	"github.com/opd-ai/go-starflight/pkg/camera"
	"github.com/opd-ai/go-starflight/pkg/input"
)

func TestButtonNamesCoverAllCommands(t *testing.T) {
	commands := []input.Command{
		input.PitchForward, input.PitchBack,
		input.RollLeft, input.RollRight,
		input.YawLeft, input.YawRight,
		input.Boost, input.Brake, input.Fire, input.ToggleView,
	}
	for _, cmd := range commands {
		if _, ok := buttonNames[cmd]; !ok {
			t.Errorf("command %v has no button binding", cmd)
		}
	}
}

func TestCameraZoomFromFOV(t *testing.T) {
	cs := NewCameraSystem(60)

	tests := []struct {
		name string
		fov  float64
		want float32
	}{
		{name: "base FOV is unit zoom", fov: 60, want: 1.0},
		{name: "wider FOV zooms out", fov: 90, want: 60.0 / 90.0},
		{name: "extreme FOV clamps", fov: 100000, want: cs.minZoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs.SetPose(camera.Pose{FOV: tt.fov})
			if got := cs.Zoom(); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("zoom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeadingDegrees(t *testing.T) {
	tests := []struct {
		name string
		x, z float64
		want float64
	}{
		{name: "ahead", x: 0, z: 1, want: 0},
		{name: "right", x: 1, z: 0, want: 90},
		{name: "behind", x: 0, z: -1, want: 180},
		{name: "left", x: -1, z: 0, want: -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headingDegrees(tt.x, tt.z); math.Abs(float64(got)-tt.want) > 1e-4 {
				t.Errorf("headingDegrees(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestHUDEffectState(t *testing.T) {
	hud := NewHUDSystem()

	hud.ShowMessage("Welcome to Verda")
	if got := hud.Message(); got != "Welcome to Verda" {
		t.Errorf("message = %q", got)
	}
	hud.HideMessage()
	if got := hud.Message(); got != "" {
		t.Errorf("message = %q after hide, want empty", got)
	}

	// Out-of-range values clamp rather than wrap.
	hud.ShowOverlay(1.7)
	if hud.overlay != 1 {
		t.Errorf("overlay = %v, want clamped to 1", hud.overlay)
	}
	hud.ShowProgress(-0.2)
	if hud.progress != 0 {
		t.Errorf("progress = %v, want clamped to 0", hud.progress)
	}

	// Update without engine entities must not panic.
	hud.Update(0.016)
}
