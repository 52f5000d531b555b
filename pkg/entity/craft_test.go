package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewCraftDefaults(t *testing.T) {
	craft := NewCraft("arrow", mgl64.Vec3{0, 0, 100}, nil)

	if craft.ID == 0 {
		t.Error("craft should get a generated ID")
	}
	if craft.Pose.Position != (mgl64.Vec3{0, 0, 100}) {
		t.Errorf("position = %v", craft.Pose.Position)
	}
	forward := craft.Pose.Forward()
	if forward != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("resting craft should face +Z, got %v", forward)
	}
}

func TestCraft_ToggleViewIsInvolution(t *testing.T) {
	craft := NewCraft("arrow", mgl64.Vec3{}, nil)

	craft.ToggleView()
	if !craft.Cockpit {
		t.Error("first toggle should enter cockpit view")
	}
	craft.ToggleView()
	if craft.Cockpit {
		t.Error("second toggle should return to chase view")
	}
}

func TestCraft_UpdateCockpit(t *testing.T) {
	craft := NewCraft("arrow", mgl64.Vec3{}, nil)

	// Chase view: overlay does not advance.
	craft.UpdateCockpit(CockpitInput{Boost: true})
	if craft.ThrottleIndicator() != 0 {
		t.Error("cockpit overlay advanced while in chase view")
	}

	craft.ToggleView()
	for i := 0; i < 200; i++ {
		craft.UpdateCockpit(CockpitInput{Boost: true})
	}
	if got := craft.ThrottleIndicator(); got < 0.99 {
		t.Errorf("throttle indicator should converge to 1 under boost, got %f", got)
	}
}

func TestBody_Enterable(t *testing.T) {
	tests := []struct {
		kind BodyKind
		want bool
	}{
		{Planet, true},
		{Moon, true},
		{Sun, false},
		{Ship, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b := &Body{Kind: tt.kind, Radius: 100}
			if got := b.Enterable(); got != tt.want {
				t.Errorf("Enterable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBodyKindRoundTrip(t *testing.T) {
	for _, kind := range []BodyKind{Planet, Moon, Sun, Ship} {
		if got := BodyKindFromString(kind.String()); got != kind {
			t.Errorf("round trip %v -> %q -> %v", kind, kind.String(), got)
		}
	}
	if BodyKindFromString("asteroid") != Planet {
		t.Error("unknown kind should fall back to planet")
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}
