package core

// TrailPoint is one historical position sample, kept for rendering only.
type TrailPoint struct {
	X, Y, R float64
}

// Trail is a bounded ring buffer of position samples. Oldest samples are
// overwritten once capacity is reached. The zero value is unusable; call
// NewTrail.
type Trail struct {
	points []TrailPoint
	head   int
	count  int
}

func NewTrail(capacity int) Trail {
	if capacity < 0 {
		capacity = 0
	}
	return Trail{points: make([]TrailPoint, capacity)}
}

func (t *Trail) Push(pt TrailPoint) {
	if len(t.points) == 0 {
		return
	}
	t.points[t.head] = pt
	t.head = (t.head + 1) % len(t.points)
	if t.count < len(t.points) {
		t.count++
	}
}

func (t *Trail) Len() int {
	return t.count
}

// Points appends the samples oldest-first to dst and returns it.
// Pass a reused slice to avoid per-frame allocation.
func (t *Trail) Points(dst []TrailPoint) []TrailPoint {
	if t.count == 0 {
		return dst
	}
	start := (t.head - t.count + len(t.points)) % len(t.points)
	for i := 0; i < t.count; i++ {
		dst = append(dst, t.points[(start+i)%len(t.points)])
	}
	return dst
}

// Clone returns an independent copy sharing no storage.
func (t *Trail) Clone() Trail {
	cp := Trail{points: make([]TrailPoint, len(t.points)), head: t.head, count: t.count}
	copy(cp.points, t.points)
	return cp
}
