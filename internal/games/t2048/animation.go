package t2048

// Default animation lengths in ticks.
const (
	DefaultSlideTicks = 8 // ~133ms at 60fps
	DefaultPopTicks   = 6 // ~100ms at 60fps
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	AnimNone AnimationPhase = iota
	AnimSlide
	AnimPop
)

// Sprite is a tile at its drawn position for the current tick.
type Sprite struct {
	Value int
	X, Y  float64 // Cell coordinates, fractional while sliding
	Pop   float64 // 0.0 → 1.0 while popping in, 1 otherwise
	Fresh bool    // New or merged on the last move
}

// Animator is a Renderer that keeps the latest frame and animates it on its
// own clock. Each Render replaces whatever animation was running.
type Animator struct {
	slideTicks int
	popTicks   int

	frame    Frame
	hasFrame bool
	phase    AnimationPhase
	ticks    int
}

// NewAnimator creates an animator. Zero durations skip the matching phase.
func NewAnimator(slideTicks, popTicks int) *Animator {
	return &Animator{
		slideTicks: max(slideTicks, 0),
		popTicks:   max(popTicks, 0),
	}
}

// Render implements Renderer.
func (a *Animator) Render(f Frame) error {
	a.frame = f
	a.hasFrame = true
	a.ticks = 0

	switch {
	case a.slideTicks > 0 && f.HasMotion():
		a.phase = AnimSlide
	case a.popTicks > 0 && hasFreshTiles(f):
		a.phase = AnimPop
	default:
		a.phase = AnimNone
	}
	return nil
}

func hasFreshTiles(f Frame) bool {
	for _, t := range f.Tiles {
		if t.IsNew || t.IsMergeResult {
			return true
		}
	}
	return false
}

// Frame returns the last rendered frame.
func (a *Animator) Frame() (Frame, bool) {
	return a.frame, a.hasFrame
}

// Phase returns the running animation phase.
func (a *Animator) Phase() AnimationPhase {
	return a.phase
}

// Animating reports whether an animation is in progress.
func (a *Animator) Animating() bool {
	return a.phase != AnimNone
}

// Advance moves the animation forward by one tick.
// Returns true if animation is still in progress.
func (a *Animator) Advance() bool {
	if a.phase == AnimNone {
		return false
	}

	a.ticks++
	if a.ticks < a.duration() {
		return true
	}

	a.ticks = 0
	if a.phase == AnimSlide && a.popTicks > 0 && hasFreshTiles(a.frame) {
		a.phase = AnimPop
		return true
	}
	a.phase = AnimNone
	return false
}

// Skip finishes the running animation.
func (a *Animator) Skip() {
	a.phase = AnimNone
	a.ticks = 0
}

func (a *Animator) duration() int {
	switch a.phase {
	case AnimSlide:
		return a.slideTicks
	case AnimPop:
		return a.popTicks
	default:
		return 0
	}
}

// Progress returns the eased progress of the current phase, 1 when idle.
func (a *Animator) Progress() float64 {
	d := a.duration()
	if d == 0 {
		return 1
	}
	return easeOutQuad(float64(a.ticks) / float64(d))
}

// Sprites returns the tiles to draw this tick. While sliding, moved tiles and
// ghosts are interpolated and fresh tiles are hidden; while popping, fresh
// tiles grow in place.
func (a *Animator) Sprites() []Sprite {
	if !a.hasFrame {
		return nil
	}

	t := a.Progress()
	var sprites []Sprite

	if a.phase == AnimSlide {
		for _, g := range a.frame.Ghosts {
			sprites = append(sprites, slideSprite(g, t))
		}
		for _, tf := range a.frame.Tiles {
			if tf.IsNew || tf.IsMergeResult {
				continue
			}
			sprites = append(sprites, slideSprite(tf, t))
		}
		return sprites
	}

	for _, tf := range a.frame.Tiles {
		s := Sprite{
			Value: tf.Value,
			X:     float64(tf.To.X),
			Y:     float64(tf.To.Y),
			Pop:   1,
			Fresh: tf.IsNew || tf.IsMergeResult,
		}
		if a.phase == AnimPop && s.Fresh {
			s.Pop = t
		}
		sprites = append(sprites, s)
	}
	return sprites
}

func slideSprite(tf TileFrame, t float64) Sprite {
	return Sprite{
		Value: tf.Value,
		X:     lerp(float64(tf.From.X), float64(tf.To.X), t),
		Y:     lerp(float64(tf.From.Y), float64(tf.To.Y), t),
		Pop:   1,
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
