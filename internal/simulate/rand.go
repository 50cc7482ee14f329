package simulate

import "math"

// Rand maps a seed to a deterministic pseudo-random value in [0,1):
// the fractional part of sin(seed)*10000. Not cryptographic; it exists
// only to make the synthetic data look noisy while staying bit-for-bit
// reproducible across IEEE-754 runtimes.
func Rand(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// SeedAt derives an offset seed. The generator never reseeds a PRNG
// object; independent draws come from evaluating Rand at distinct
// integer offsets. Changing any offset changes all downstream output
// for that field, so offsets are part of the compatibility surface.
func SeedAt(base int, offset int) float64 {
	return float64(base + offset)
}
