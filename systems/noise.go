package systems

import (
	"math"
	"math/rand"
)

// WanderNoise generates coherent 1D noise used to steer autopilot players.
// It is a gradient-noise lattice sampled along one axis per player channel.
type WanderNoise struct {
	perm [512]int
}

// NewWanderNoise creates a noise generator from a seed.
func NewWanderNoise(seed int64) *WanderNoise {
	n := &WanderNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	for i := 0; i < 512; i++ {
		n.perm[i] = perm[i&255]
	}
	return n
}

// fade is the smoothstep curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// grad maps a lattice hash to a gradient in [-1, 1].
func (n *WanderNoise) grad(hash int, x float64) float64 {
	if hash&1 == 0 {
		return x
	}
	return -x
}

// Sample returns smooth noise in roughly [-1, 1] for coordinate x on the
// given channel. Different channels are decorrelated lattice rows.
func (n *WanderNoise) Sample(x float64, channel int) float64 {
	// Offset each channel far apart on the lattice
	x += float64(n.perm[channel&255]) * 37.0

	xi := int(math.Floor(x)) & 255
	xf := x - math.Floor(x)

	u := fade(xf)

	a := n.grad(n.perm[xi], xf)
	b := n.grad(n.perm[xi+1], xf-1)

	// Scale up: 1D gradient noise has a small natural amplitude
	return (a + u*(b-a)) * 2
}
