package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// EffectParticle is a short-lived burst particle.
type EffectParticle struct {
	X, Y   float32
	VX, VY float32
	Size   float32
	Life   float32
	MaxLif float32
	Color  components.Color
}

// EffectPool holds all live effect particles. Pure simulation state; the
// renderer reads it but never mutates it.
type EffectPool struct {
	particles []EffectParticle
}

// NewEffectPool creates an empty pool.
func NewEffectPool() *EffectPool {
	return &EffectPool{particles: make([]EffectParticle, 0, 256)}
}

// SpawnBurst emits a radial particle burst at the given position.
func (p *EffectPool) SpawnBurst(pos components.Position, color components.Color, kind EffectKind, rng *rand.Rand) {
	count := 14
	speed := float32(90)
	life := float32(0.6)
	if kind == EffectMerge {
		count = 20
		speed = 60
		life = 0.8
	}

	for i := 0; i < count; i++ {
		angle := float32(i)/float32(count)*2*math.Pi + rng.Float32()*0.4
		v := speed * (0.6 + rng.Float32()*0.8)
		p.particles = append(p.particles, EffectParticle{
			X:      pos.X,
			Y:      pos.Y,
			VX:     systems.Cos(angle) * v,
			VY:     systems.Sin(angle) * v,
			Size:   2 + rng.Float32()*3,
			Life:   life,
			MaxLif: life,
			Color:  color,
		})
	}
}

// Update integrates and expires particles, compacting in place.
func (p *EffectPool) Update(dt float32) {
	alive := p.particles[:0]
	for i := range p.particles {
		pt := p.particles[i]
		pt.Life -= dt
		if pt.Life <= 0 {
			continue
		}
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VX *= 0.96
		pt.VY *= 0.96
		alive = append(alive, pt)
	}
	p.particles = alive
}

// Particles returns the live particles for rendering.
func (p *EffectPool) Particles() []EffectParticle {
	return p.particles
}
