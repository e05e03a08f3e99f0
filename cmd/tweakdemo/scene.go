package main

import (
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/go-theft-auto/tweakbar"
)

// Quality is the demo's enum variable.
type Quality int32

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

// scene holds everything the bar tweaks.
type scene struct {
	wireframe bool
	vsync     int32 // BOOL32 storage
	particles int32
	speed     float32
	gravity   float64
	light     tweakbar.Dir3
	ambient   tweakbar.Color3
	tint      tweakbar.Color4
	rotation  tweakbar.Quat4
	quality   Quality
	exposure  float32 // reached through callbacks only
	paused    bool    // not recorded

	fps    float32
	frames int
	acc    float32
}

func newScene() *scene {
	s := &scene{}
	s.reset()
	return s
}

// reset restores the startup values. paused is left alone.
func (s *scene) reset() {
	s.wireframe = false
	s.vsync = 1
	s.particles = 250
	s.speed = 1
	s.gravity = -9.81
	s.light = tweakbar.Dir3{-0.5, -1, -0.25}
	s.ambient = tweakbar.Color3{0.12, 0.12, 0.14}
	s.tint = tweakbar.Color4{1, 1, 1, 1}
	s.rotation = tweakbar.Quat4{0, 0, 0, 1}
	s.quality = QualityMedium
	s.exposure = 1
}

func (s *scene) setExposure(v float32) { s.exposure = max(v, 0) }
func (s *scene) getExposure() float32  { return s.exposure }

// step advances the scene by dt seconds and reports whether the rotation
// changed.
func (s *scene) step(dt float32) bool {
	s.frames++
	s.acc += dt
	if s.acc >= 0.5 {
		s.fps = float32(s.frames) / s.acc
		s.frames, s.acc = 0, 0
	}
	if s.paused || s.speed == 0 || dt <= 0 {
		return false
	}
	half := float64(s.speed*dt) / 2
	q := tweakbar.Quat4{0, float32(math.Sin(half)), 0, float32(math.Cos(half))}
	s.rotation = normalize(mul(s.rotation, q))
	return true
}

func mul(a, b tweakbar.Quat4) tweakbar.Quat4 {
	return tweakbar.Quat4{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func normalize(q tweakbar.Quat4) tweakbar.Quat4 {
	n := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if n == 0 {
		return tweakbar.Quat4{0, 0, 0, 1}
	}
	return tweakbar.Quat4{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// demo wires a scene to a bar and owns the settings file.
type demo struct {
	bar      *tweakbar.Bar
	scene    *scene
	settings string
	log      *slog.Logger
}

// build registers every scene variable and the Save, Load and Reset buttons.
// withFPS adds the read-only frame counter for front ends that have frames.
func (d *demo) build(withFPS bool) error {
	b, s := d.bar, d.scene
	quality, err := b.DefineEnum("Quality", []tweakbar.EnumVal{
		{Value: int32(QualityLow), Label: "Low"},
		{Value: int32(QualityMedium), Label: "Medium"},
		{Value: int32(QualityHigh), Label: "High"},
	})
	if err != nil {
		return err
	}
	setExposure, getExposure := tweakbar.TypedCallbacks(s.setExposure, s.getExposure)

	var errs []error
	add := func(_ tweakbar.ID, err error) { errs = append(errs, err) }

	add(b.AddVarRW("wireframe", tweakbar.TypeBoolCPP, &s.wireframe, "key=F2 help='Draw edges only'"))
	add(b.AddVarRW("vsync", tweakbar.TypeBool32, &s.vsync, ""))
	add(b.AddVarRW("quality", quality, &s.quality, ""))
	add(b.AddVarRW("paused", tweakbar.TypeBoolCPP, &s.paused, "key=F3", tweakbar.NoRecord()))
	add(b.AddSeparator("", ""))

	add(b.AddVarRW("particles", tweakbar.TypeInt32, &s.particles, "group=Simulation min=0 max=1000 step=10"))
	add(b.AddVarRW("speed", tweakbar.TypeFloat, &s.speed, "group=Simulation min=0 max=10 step=0.1 help='Spin in radians per second'"))
	add(b.AddVarRW("gravity", tweakbar.TypeDouble, &s.gravity, "group=Simulation step=0.01 precision=2"))
	add(b.AddVarRW("rotation", tweakbar.TypeQuat4F, &s.rotation, "group=Simulation"))

	add(b.AddVarRW("light", tweakbar.TypeDir3F, &s.light, "group=Lighting label='Light dir'"))
	add(b.AddVarRW("ambient", tweakbar.TypeColor3F, &s.ambient, "group=Lighting"))
	add(b.AddVarRW("tint", tweakbar.TypeColor4F, &s.tint, "group=Lighting"))
	add(b.AddVarCB("exposure", tweakbar.TypeFloat, setExposure, getExposure, nil, "group=Lighting min=0 max=8 step=0.05"))
	add(b.AddSeparator("", ""))

	add(b.AddButton("Save", func(any) { d.save() }, nil, "key=F5"))
	add(b.AddButton("Load", func(any) { d.load() }, nil, "key=F9"))
	add(b.AddButton("Reset", func(any) { d.reset() }, nil, ""))
	if withFPS {
		add(b.AddVarRO("fps", tweakbar.TypeFloat, &s.fps, "precision=1"))
	}
	return errors.Join(errs...)
}

// applyBarDefinition sets bar-level parameters such as position or refresh.
// Parameters the backend does not support are logged and skipped.
func (d *demo) applyBarDefinition(def string) error {
	params, err := tweakbar.ParseDefinition(def)
	if err != nil {
		return err
	}
	for _, p := range params {
		if err := d.bar.SetParam("", p.Key, strings.Fields(p.Value)...); err != nil {
			d.log.Warn("bar parameter skipped", "param", p.Key, "error", err)
		}
	}
	return nil
}

func (d *demo) save() {
	if err := d.bar.Save(d.settings); err != nil {
		d.log.Error("save failed", "file", d.settings, "error", err)
		return
	}
	d.log.Info("settings saved", "file", d.settings)
}

func (d *demo) load() {
	rep, err := d.bar.Load(d.settings)
	if err != nil {
		d.log.Error("load failed", "file", d.settings, "error", err)
		return
	}
	for _, e := range rep.Errors {
		d.log.Warn("settings line skipped", "error", e)
	}
	d.log.Info("settings loaded", "file", d.settings, "applied", rep.Applied, "missing", len(rep.Missing))
}

func (d *demo) reset() {
	d.scene.reset()
	if err := d.bar.Refresh(); err != nil {
		d.log.Error("refresh failed", "error", err)
	}
}
