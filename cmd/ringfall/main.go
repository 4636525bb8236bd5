// Command ringfall runs the ring simulation in a terminal: a rotating
// ring with a moving gap, balls bouncing inside, escaping, splitting
// and fading. Keys: space pauses, r reseeds, 1/2/3 switch presets,
// m toggles sound, q or ESC quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/engine"
	"github.com/lixenwraith/ringfall/parameter"
	"github.com/lixenwraith/ringfall/vmath"
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameDelta = 50 * time.Millisecond
	glowDecay     = 0.85
	ringRune      = '▒'
	ballRune      = '●'
	trailRune     = '·'
)

var (
	colorRing  = tcell.NewRGBColor(120, 130, 160)
	colorBall  = tcell.NewRGBColor(240, 200, 80)
	colorTrail = tcell.NewRGBColor(120, 100, 40)
	colorGlow  = tcell.NewRGBColor(255, 255, 220)
	colorFade  = tcell.NewRGBColor(110, 90, 100)
)

type app struct {
	screen tcell.Screen
	sim    *engine.Sim
	clock  *engine.PausableClock
	preset parameter.Preset
	seed   uint64

	width, height int
	gravity       vmath.Vec2
	glow          map[uint64]float64
	trailBuf      []core.TrailPoint

	audioReady bool
	muted      bool
}

func main() {
	presetName := flag.String("preset", "classic", "built-in preset: classic, lively, dense")
	presetFile := flag.String("preset-file", "", "YAML preset overlay, overrides -preset")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "simulation seed")
	mute := flag.Bool("mute", false, "disable impact sounds")
	flag.Parse()

	preset, err := loadPreset(*presetName, *presetFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}

	a := &app{
		screen: screen,
		preset: preset,
		seed:   *seed,
		muted:  *mute,
		glow:   make(map[uint64]float64),
	}
	a.initAudio()

	defer screen.Fini()
	if err := a.run(); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}

func loadPreset(name, file string) (parameter.Preset, error) {
	if file != "" {
		return parameter.LoadFile(file)
	}
	return parameter.ByName(name)
}

func (a *app) initAudio() {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err == nil {
		// Sound is optional, the sim runs silent when the device is absent
		a.audioReady = true
	}
}

// tone plays a short synthesized sine burst
func (a *app) tone(freq float64, d time.Duration) {
	if !a.audioReady || a.muted {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// geometry derives ring center and radius from the terminal size.
// Terminal cells are roughly twice as tall as wide, so world space is
// columns by doubled rows and rows are halved at draw time.
func (a *app) geometry() (vmath.Vec2, float64) {
	w := float64(a.width)
	h := float64(a.height * 2)
	r := 0.45 * w
	if h < w {
		r = 0.45 * h
	}
	return vmath.Vec2{X: w / 2, Y: h / 2}, r
}

func (a *app) rebuild() error {
	center, radius := a.geometry()
	// Presets are tuned for a 100-unit ring; scale lengths and gravity
	// down to whatever ring the terminal fits
	p := a.preset
	scale := radius / 100
	p.InitialRadius *= scale
	p.MinRadius *= scale
	p.Gravity *= scale
	p.EscapeTolerance *= scale
	sim, err := engine.New(p, center, radius, a.seed)
	if err != nil {
		return err
	}
	a.sim = sim
	a.clock = engine.NewPausableClock()
	a.gravity = vmath.Vec2{Y: p.Gravity}
	clear(a.glow)
	return nil
}

func (a *app) run() error {
	a.width, a.height = a.screen.Size()
	if err := a.rebuild(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- a.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			dt := a.clock.Delta(maxFrameDelta)
			if dt > 0 {
				a.sim.Step(dt, a.gravity)
			}
			a.consumeImpacts()
			a.render()
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		center, radius := a.geometry()
		if err := a.sim.SetRingGeometry(center, radius); err != nil {
			return false, err
		}
		a.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			return true, nil
		case ev.Rune() == ' ':
			a.clock.Toggle()
		case ev.Rune() == 'r':
			a.sim.Reset(0)
		case ev.Rune() == 'm':
			a.muted = !a.muted
		case ev.Rune() == '1' || ev.Rune() == '2' || ev.Rune() == '3':
			names := map[rune]string{'1': "classic", '2': "lively", '3': "dense"}
			a.preset, _ = parameter.ByName(names[ev.Rune()])
			return false, a.rebuild()
		}
	}
	return false, nil
}

func (a *app) consumeImpacts() {
	for _, imp := range a.sim.DrainImpacts() {
		switch imp.Kind {
		case core.ImpactWall:
			a.glow[imp.ParticleID] += vmath.Clamp(imp.Intensity/200, 0.2, 1)
			a.tone(880, 40*time.Millisecond)
		case core.ImpactEscape:
			a.tone(440, 90*time.Millisecond)
		}
	}
}

// plot draws one world-space point, halving y into terminal rows
func (a *app) plot(x, y float64, r rune, style tcell.Style) {
	col, row := int(x), int(y/2)
	if col < 0 || col >= a.width || row < 0 || row >= a.height {
		return
	}
	a.screen.SetContent(col, row, r, nil, style)
}

func (a *app) render() {
	a.screen.Clear()
	snap := a.sim.Snapshot()

	a.drawRing(snap.Ring)
	for i := range snap.Particles {
		a.drawParticle(&snap.Particles[i])
	}
	a.drawStatus(snap)

	a.screen.Show()
	a.decayGlow(snap)
}

func (a *app) drawRing(ring core.Ring) {
	style := tcell.StyleDefault.Foreground(colorRing)
	// Dense enough angular sampling that the wall has no holes at
	// terminal resolution
	step := 1 / (ring.Radius + 1)
	for angle := 0.0; angle < vmath.Tau; angle += step {
		if vmath.AngleInArc(angle, ring.GapStart, ring.GapLength) {
			continue
		}
		p := ring.Center.Add(vmath.FromPolar(angle, ring.Radius))
		a.plot(p.X, p.Y, ringRune, style)
	}
}

func (a *app) drawParticle(p *core.Particle) {
	ball, trail := colorBall, colorTrail
	if p.Escaped {
		ball, trail = colorFade, colorFade
	}
	if a.glow[p.ID] > 0.3 {
		ball = colorGlow
	}

	a.trailBuf = p.Trail.Points(a.trailBuf[:0])
	for _, tp := range a.trailBuf {
		a.plot(tp.X, tp.Y, trailRune, tcell.StyleDefault.Foreground(dim(trail, 0.6)))
	}

	style := tcell.StyleDefault.Foreground(dim(ball, opacityOf(p)))
	// Filled disc, scanning the bounding box in world space
	for dy := -p.Radius; dy <= p.Radius; dy += 2 {
		for dx := -p.Radius; dx <= p.Radius; dx++ {
			if dx*dx+dy*dy <= p.Radius*p.Radius {
				a.plot(p.Pos.X+dx, p.Pos.Y+dy, ballRune, style)
			}
		}
	}
}

func (a *app) drawStatus(snap core.Snapshot) {
	state := "running"
	if a.clock.IsPaused() {
		state = "paused"
	}
	msg := fmt.Sprintf(" %s | %s | balls %d | t %.1fs | space pause · r reset · 1/2/3 preset · q quit ",
		a.preset.Name, state, len(snap.Particles), snap.Time.Seconds())
	style := tcell.StyleDefault.Foreground(colorRing)
	for i, r := range msg {
		if i >= a.width {
			break
		}
		a.screen.SetContent(i, a.height-1, r, nil, style)
	}
}

// decayGlow fades impact glow and drops entries for removed particles
func (a *app) decayGlow(snap core.Snapshot) {
	alive := make(map[uint64]bool, len(snap.Particles))
	for i := range snap.Particles {
		alive[snap.Particles[i].ID] = true
	}
	for id, g := range a.glow {
		g *= glowDecay
		if g < 0.05 || !alive[id] {
			delete(a.glow, id)
			continue
		}
		a.glow[id] = g
	}
}

func opacityOf(p *core.Particle) float64 {
	if !p.Escaped {
		return 1
	}
	return p.Opacity
}

func dim(c tcell.Color, f float64) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
