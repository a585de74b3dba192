package effect

// blurAlpha applies a separable Gaussian blur to a single-channel
// coverage buffer in place. Two 1D passes (rows then columns) keep the
// cost at O(w*h*taps) instead of O(w*h*taps^2). Edges are clamped
// (edge extension), so coverage never leaks in from outside the buffer.
func blurAlpha(a []float32, width, height int, radius float64) {
	if radius <= 0 || width <= 0 || height <= 0 {
		return
	}

	kernel := cachedKernel(radius)
	half := len(kernel) / 2
	temp := make([]float32, len(a))

	// Horizontal pass: a -> temp.
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float32
			for k := range kernel {
				kx := x + k - half
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}
				sum += a[row+kx] * kernel[k]
			}
			temp[row+x] = sum
		}
	}

	// Vertical pass: temp -> a.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}
				sum += temp[ky*width+x] * kernel[k]
			}
			a[y*width+x] = sum
		}
	}
}
