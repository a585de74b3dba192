package render

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/pool"
)

// Surface is a pooled working pixmap. Group isolation, clipping runs and
// effect staging all draw into surfaces acquired from the backend's
// pool, so steady-state rendering allocates nothing.
type Surface struct {
	pix *compose.Pixmap
}

func (s *Surface) Width() int  { return s.pix.Width() }
func (s *Surface) Height() int { return s.pix.Height() }
func (s *Surface) Clear()      { s.pix.Clear() }
func (s *Surface) Dispose()    { s.pix = nil }

func newSurfacePool() *pool.Pool[*Surface] {
	return pool.New(func(w, h int) *Surface {
		return &Surface{pix: compose.NewPixmap(w, h)}
	})
}

// acquire returns a cleared surface of exactly (w, h) and its handle.
//
// Pooled slots may hold a larger buffer than requested; the returned
// pixmap is a trimmed view over it so every downstream draw, clip and
// effect silhouette sees the frame's own geometry. Without the trim the
// output would depend on what sizes the pool served before.
func (b *Backend) acquire(w, h int) (*compose.Pixmap, pool.Handle, error) {
	s, handle, err := b.surfaces.Acquire(w, h)
	if err != nil {
		return nil, pool.Handle{}, err
	}
	pix := s.pix
	if pix.Width() != w || pix.Height() != h {
		pix = compose.NewPixmapFromData(w, h, pix.Data())
	}
	return pix, handle, nil
}

func (b *Backend) release(h pool.Handle) {
	if err := b.surfaces.Release(h); err != nil {
		compose.Logger().Warn("surface release failed", "error", err)
	}
}
