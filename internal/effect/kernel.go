package effect

import (
	"math"

	"github.com/gogpu/compose/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for the given
// radius, using the radius as sigma. The kernel spans 3 standard
// deviations each side (2*ceil(3*radius)+1 taps), covering 99.7% of the
// distribution. radius <= 0 yields the identity kernel [1].
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}

	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	kernel := make([]float32, size)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	if sum > 0 {
		inv := float32(1 / sum)
		for i := range kernel {
			kernel[i] *= inv
		}
	}
	return kernel
}

// kernels caches Gaussian kernels keyed by radius quantized to 0.01px.
// Effect stacks reuse the same few blur radii across frames.
var kernels = cache.NewSharded[int, []float32](64, cache.IntHasher)

// cachedKernel returns a shared kernel for the radius. Callers must not
// mutate the returned slice.
func cachedKernel(radius float64) []float32 {
	key := int(radius * 100)
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(radius)
	})
}
