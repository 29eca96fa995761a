package avatar

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

// MaxSide bounds both sides of a stored avatar, in pixels.
const MaxSide = 100

// Normalize shrinks the image at path so that it fits a side x side box,
// keeping the aspect ratio, and overwrites the file in its own format.
// Images already inside the box are left untouched and false is returned.
func Normalize(path string, side int) (bool, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return false, fmt.Errorf("decode avatar: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= side && b.Dy() <= side {
		return false, nil
	}

	w, h := FitSize(b.Dx(), b.Dy(), side)
	thumb := imaging.Resize(img, w, h, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		return false, fmt.Errorf("write avatar: %w", err)
	}
	return true, nil
}

// FitSize returns the largest size with the aspect ratio of w x h that
// fits inside a box x box square. It never enlarges and never returns a
// side below 1.
func FitSize(w, h, box int) (int, int) {
	x, y := min(box, w), min(box, h)
	aspect := float64(w) / float64(h)

	if float64(x)/float64(y) >= aspect {
		fy := float64(y)
		x = roundAspect(fy*aspect, func(n float64) float64 {
			return math.Abs(aspect - n/fy)
		})
	} else {
		fx := float64(x)
		y = roundAspect(fx/aspect, func(n float64) float64 {
			if n == 0 {
				return 0
			}
			return math.Abs(aspect - fx/n)
		})
	}
	return x, y
}

// roundAspect picks floor or ceil of v, whichever keeps the ratio closer.
func roundAspect(v float64, dist func(float64) float64) int {
	lo, hi := math.Floor(v), math.Ceil(v)
	n := lo
	if dist(hi) < dist(lo) {
		n = hi
	}
	return max(int(n), 1)
}
