// Package config defines the tuning records for the flight controller and
// loads them from a config file with environment overrides via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the simulator.
type Config struct {
	Space      SceneConfig       `json:"space" mapstructure:"space"`
	Surface    SceneConfig       `json:"surface" mapstructure:"surface"`
	Hyperspace HyperspaceConfig  `json:"hyperspace" mapstructure:"hyperspace"`
	Wings      WingConfig        `json:"wings" mapstructure:"wings"`
	Transition TransitionConfig  `json:"transition" mapstructure:"transition"`
	Bindings   map[string]string `json:"bindings" mapstructure:"bindings"`
}

// SceneConfig parameterizes the kinematics integrator and camera rig for one
// scene kind. Space and each planetary surface share the same integrator and
// rig; only this record differs between them.
type SceneConfig struct {
	Name string `json:"name" mapstructure:"name"`

	// Base speed in world units per frame, and the per-mode multipliers
	// applied on top of it. Mode priority is hyperspace > boost > brake > normal.
	BaseSpeed            float64 `json:"baseSpeed" mapstructure:"baseSpeed"`
	BoostMultiplier      float64 `json:"boostMultiplier" mapstructure:"boostMultiplier"`
	BrakeMultiplier      float64 `json:"brakeMultiplier" mapstructure:"brakeMultiplier"`
	HyperspaceMultiplier float64 `json:"hyperspaceMultiplier" mapstructure:"hyperspaceMultiplier"`

	// Shared turn rate and per-axis sensitivities, radians per frame.
	TurnSpeed        float64 `json:"turnSpeed" mapstructure:"turnSpeed"`
	PitchSensitivity float64 `json:"pitchSensitivity" mapstructure:"pitchSensitivity"`
	RollSensitivity  float64 `json:"rollSensitivity" mapstructure:"rollSensitivity"`
	YawSensitivity   float64 `json:"yawSensitivity" mapstructure:"yawSensitivity"`

	Collision CollisionConfig `json:"collision" mapstructure:"collision"`
	Camera    CameraConfig    `json:"camera" mapstructure:"camera"`
}

// CollisionConfig tunes both the sphere bounce and the terrain probes.
type CollisionConfig struct {
	Threshold      float64 `json:"threshold" mapstructure:"threshold"`
	Pushback       float64 `json:"pushback" mapstructure:"pushback"`
	BounceDamping  float64 `json:"bounceDamping" mapstructure:"bounceDamping"`
	BoundingRadius float64 `json:"boundingRadius" mapstructure:"boundingRadius"`
	Overshoot      float64 `json:"overshoot" mapstructure:"overshoot"`
}

// Offset is a craft-local camera offset. Plain arrays keep the record
// marshal-friendly; the camera rig converts to vectors.
type Offset [3]float64

// OffsetTable maps each speed mode to a camera offset for one view mode.
type OffsetTable struct {
	Base       Offset `json:"base" mapstructure:"base"`
	Boost      Offset `json:"boost" mapstructure:"boost"`
	Brake      Offset `json:"brake" mapstructure:"brake"`
	Hyperspace Offset `json:"hyperspace" mapstructure:"hyperspace"`
}

// CameraConfig tunes the camera rig's smoothing filters and offset tables.
type CameraConfig struct {
	TransitionSpeed    float64 `json:"transitionSpeed" mapstructure:"transitionSpeed"`
	LagFactor          float64 `json:"lagFactor" mapstructure:"lagFactor"`
	LocalRotationSpeed float64 `json:"localRotationSpeed" mapstructure:"localRotationSpeed"`
	MaxLookOffset      float64 `json:"maxLookOffset" mapstructure:"maxLookOffset"`
	MaxLocalRotation   float64 `json:"maxLocalRotation" mapstructure:"maxLocalRotation"`

	FOVSpeed      float64 `json:"fovSpeed" mapstructure:"fovSpeed"`
	BaseFOV       float64 `json:"baseFOV" mapstructure:"baseFOV"`
	BoostFOV      float64 `json:"boostFOV" mapstructure:"boostFOV"`
	HyperspaceFOV float64 `json:"hyperspaceFOV" mapstructure:"hyperspaceFOV"`

	Chase   OffsetTable `json:"chase" mapstructure:"chase"`
	Cockpit OffsetTable `json:"cockpit" mapstructure:"cockpit"`
}

// HyperspaceConfig tunes the overdrive mode and its visual timeline.
type HyperspaceConfig struct {
	Duration    time.Duration `json:"duration" mapstructure:"duration"`
	StreakCount int           `json:"streakCount" mapstructure:"streakCount"`
	StreakSpeed float64       `json:"streakSpeed" mapstructure:"streakSpeed"`
	StreakSpan  float64       `json:"streakSpan" mapstructure:"streakSpan"`
}

// WingConfig tunes the appendage animator. Angles are radians, one per
// appendage, in the order upper-left, upper-right, lower-left, lower-right.
type WingConfig struct {
	TransitionFrames int        `json:"transitionFrames" mapstructure:"transitionFrames"`
	OpenAngles       [4]float64 `json:"openAngles" mapstructure:"openAngles"`
	ClosedAngles     [4]float64 `json:"closedAngles" mapstructure:"closedAngles"`
}

// TransitionConfig tunes surface entry/exit and its hysteresis.
type TransitionConfig struct {
	// OuterMargin and InnerMargin are added to the body radius to form the
	// paired hysteresis thresholds.
	OuterMargin float64 `json:"outerMargin" mapstructure:"outerMargin"`
	InnerMargin float64 `json:"innerMargin" mapstructure:"innerMargin"`

	// Haze overlay accumulator, per-frame build and decay plus the minimum
	// opacity required before a transition may commit.
	HazeBuildRate float64 `json:"hazeBuildRate" mapstructure:"hazeBuildRate"`
	HazeDecayRate float64 `json:"hazeDecayRate" mapstructure:"hazeDecayRate"`
	HazeMinimum   float64 `json:"hazeMinimum" mapstructure:"hazeMinimum"`

	Duration time.Duration `json:"duration" mapstructure:"duration"`

	// Exit placement: distance from the body center is radius times
	// ExitRadiusMultiple plus ExitMargin. The multiple must stay >= 3 so the
	// next frame's proximity check cannot re-trigger entry.
	ExitRadiusMultiple float64 `json:"exitRadiusMultiple" mapstructure:"exitRadiusMultiple"`
	ExitMargin         float64 `json:"exitMargin" mapstructure:"exitMargin"`
}

// DefaultConfig returns the tuning the shipped game uses.
func DefaultConfig() *Config {
	space := SceneConfig{
		Name:                 "space",
		BaseSpeed:            5,
		BoostMultiplier:      5,
		BrakeMultiplier:      0.5,
		HyperspaceMultiplier: 50,
		TurnSpeed:            0.02,
		PitchSensitivity:     1.0,
		RollSensitivity:      1.5,
		YawSensitivity:       0.8,
		Collision: CollisionConfig{
			Threshold:      20,
			Pushback:       30,
			BounceDamping:  0.5,
			BoundingRadius: 12,
			Overshoot:      1.1,
		},
		Camera: CameraConfig{
			TransitionSpeed:    0.05,
			LagFactor:          0.08,
			LocalRotationSpeed: 0.1,
			MaxLookOffset:      0.25,
			MaxLocalRotation:   0.15,
			FOVSpeed:           0.04,
			BaseFOV:            60,
			BoostFOV:           72,
			HyperspaceFOV:      90,
			Chase: OffsetTable{
				Base:       Offset{0, 4, -14},
				Boost:      Offset{0, 5, -20},
				Brake:      Offset{0, 3.5, -10},
				Hyperspace: Offset{0, 6, -26},
			},
			Cockpit: OffsetTable{
				Base:       Offset{0, 1.2, 2.5},
				Boost:      Offset{0, 1.2, 2.2},
				Brake:      Offset{0, 1.2, 2.7},
				Hyperspace: Offset{0, 1.2, 2.0},
			},
		},
	}

	surface := space
	surface.Name = "surface"
	surface.BaseSpeed = 2
	surface.HyperspaceMultiplier = 1 // no hyperspace inside a surface scene
	surface.Collision.Threshold = 5
	surface.Collision.Pushback = 8
	surface.Camera.Chase = OffsetTable{
		Base:       Offset{0, 3, -10},
		Boost:      Offset{0, 4, -14},
		Brake:      Offset{0, 2.5, -8},
		Hyperspace: Offset{0, 3, -10},
	}

	return &Config{
		Space:   space,
		Surface: surface,
		Hyperspace: HyperspaceConfig{
			Duration:    2 * time.Second,
			StreakCount: 120,
			StreakSpeed: 40,
			StreakSpan:  400,
		},
		Wings: WingConfig{
			TransitionFrames: 30,
			OpenAngles:       [4]float64{0.35, -0.35, -0.35, 0.35},
			ClosedAngles:     [4]float64{0, 0, 0, 0},
		},
		Transition: TransitionConfig{
			OuterMargin:        800,
			InnerMargin:        500,
			HazeBuildRate:      0.02,
			HazeDecayRate:      0.04,
			HazeMinimum:        0.6,
			Duration:           4 * time.Second,
			ExitRadiusMultiple: 3,
			ExitMargin:         200,
		},
		Bindings: map[string]string{},
	}
}

// LoadConfig reads a configuration file, applying defaults for any field the
// file omits and STARFLIGHT_* environment overrides on top.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("STARFLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults registers the default tuning so partial config files work.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("hyperspace.duration", d.Hyperspace.Duration)
	v.SetDefault("hyperspace.streakCount", d.Hyperspace.StreakCount)
	v.SetDefault("hyperspace.streakSpeed", d.Hyperspace.StreakSpeed)
	v.SetDefault("hyperspace.streakSpan", d.Hyperspace.StreakSpan)
	v.SetDefault("wings.transitionFrames", d.Wings.TransitionFrames)
	v.SetDefault("transition.outerMargin", d.Transition.OuterMargin)
	v.SetDefault("transition.innerMargin", d.Transition.InnerMargin)
	v.SetDefault("transition.hazeMinimum", d.Transition.HazeMinimum)
	v.SetDefault("transition.duration", d.Transition.Duration)
	v.SetDefault("transition.exitRadiusMultiple", d.Transition.ExitRadiusMultiple)
	v.SetDefault("space.baseSpeed", d.Space.BaseSpeed)
	v.SetDefault("surface.baseSpeed", d.Surface.BaseSpeed)
}

// Validate checks the invariants the controller depends on.
func (c *Config) Validate() error {
	for _, scene := range []*SceneConfig{&c.Space, &c.Surface} {
		if scene.BaseSpeed <= 0 {
			return fmt.Errorf("scene %q: baseSpeed must be positive", scene.Name)
		}
		if scene.Collision.BounceDamping <= 0 || scene.Collision.BounceDamping >= 1 {
			return fmt.Errorf("scene %q: bounceDamping must be in (0, 1)", scene.Name)
		}
	}
	if c.Hyperspace.Duration <= 0 {
		return fmt.Errorf("hyperspace duration must be positive")
	}
	if c.Wings.TransitionFrames <= 0 {
		return fmt.Errorf("wing transitionFrames must be positive")
	}
	if c.Transition.OuterMargin <= c.Transition.InnerMargin {
		return fmt.Errorf("transition outerMargin must exceed innerMargin")
	}
	if c.Transition.ExitRadiusMultiple < 3 {
		return fmt.Errorf("transition exitRadiusMultiple must be at least 3")
	}
	return nil
}
