package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/camera"
)

// CameraSystem receives the rig's final pose each frame and projects world
// positions onto the screen. The 2D engine cannot express the full 3D view,
// so the projection is a top-down chart centered on the camera position with
// the FOV mapped to zoom.
type CameraSystem struct {
	pose    camera.Pose
	poseSet bool

	baseFOV float64
	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCameraSystem creates a camera system.
func NewCameraSystem(baseFOV float64) *CameraSystem {
	return &CameraSystem{
		baseFOV: baseFOV,
		zoom:    1.0,
		minZoom: 0.1,
		maxZoom: 3.0,
	}
}

// SetPose implements the flight controller's camera handle.
func (cs *CameraSystem) SetPose(pose camera.Pose) {
	cs.pose = pose
	cs.poseSet = true

	// A wider FOV reads as zooming out on the chart.
	if pose.FOV > 0 && cs.baseFOV > 0 {
		cs.SetZoom(float32(cs.baseFOV / pose.FOV))
	}
}

// Pose returns the last pose the rig delivered.
func (cs *CameraSystem) Pose() camera.Pose {
	return cs.pose
}

// Add satisfies the ecs.System interface.
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface.
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update applies the camera transform to the engine.
func (cs *CameraSystem) Update(dt float32) {
	if !cs.poseSet {
		return
	}
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:  common.XAxis,
		Value: float32(cs.pose.Position.X()),
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:  common.YAxis,
		Value: float32(cs.pose.Position.Z()),
	})
}

// SetZoom sets the chart zoom level.
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// Zoom returns the current zoom level.
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// WorldToScreen projects a world position onto the screen chart. The world
// XZ plane maps to screen XY.
func (cs *CameraSystem) WorldToScreen(worldPos mgl64.Vec3) engo.Point {
	relativeX := worldPos.X() - cs.pose.Position.X()
	relativeY := worldPos.Z() - cs.pose.Position.Z()

	return engo.Point{
		X: float32(relativeX)*cs.zoom + engo.GameWidth()/2,
		Y: float32(relativeY)*cs.zoom + engo.GameHeight()/2,
	}
}
