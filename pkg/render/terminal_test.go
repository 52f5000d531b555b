package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/entity"
)

func TestTerminalRendererProjection(t *testing.T) {
	r := NewTerminalRenderer(21, 11, 100)
	r.Clear()

	craft := entity.NewCraft("test", mgl64.Vec3{}, nil)
	r.SetCenter(craft.Pose.Position)
	r.RenderCraft(craft)

	if got := r.buffer[5][10]; got != '^' {
		t.Errorf("center cell = %q, want craft marker", got)
	}
}

func TestTerminalRendererBodySymbols(t *testing.T) {
	tests := []struct {
		name string
		kind entity.BodyKind
		want rune
	}{
		{name: "planet", kind: entity.Planet, want: 'O'},
		{name: "moon", kind: entity.Moon, want: 'o'},
		{name: "sun", kind: entity.Sun, want: '*'},
		{name: "ship", kind: entity.Ship, want: 's'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(11, 11, 10)
			r.Clear()
			r.RenderBody(&entity.Body{Kind: tt.kind})
			if got := r.buffer[5][5]; got != tt.want {
				t.Errorf("symbol = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalRendererCulling(t *testing.T) {
	r := NewTerminalRenderer(11, 11, 10)
	r.Clear()

	// Off-screen objects must not write out of bounds.
	r.RenderBody(&entity.Body{Position: mgl64.Vec3{10000, 0, 10000}})
	r.RenderCraft(nil)
	r.RenderBody(nil)

	for y := range r.buffer {
		for x := range r.buffer[y] {
			if r.buffer[y][x] != ' ' {
				t.Fatalf("cell (%d,%d) written for off-screen object", x, y)
			}
		}
	}
}
