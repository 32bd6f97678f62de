package components

import "gonum.org/v1/gonum/spatial/r2"

// TrailSlots is the fixed backing size of every trail.
const TrailSlots = 8

// Trail is a fixed-capacity FIFO of recent positions.
// Points live in a ring so a push never allocates or shifts.
type Trail struct {
	points   [TrailSlots]r2.Vec
	head     uint8 // index of the oldest point
	length   uint8
	capacity uint8
}

// NewTrail returns an empty trail holding at most capacity points.
// Capacity is clamped to [1, TrailSlots].
func NewTrail(capacity int) Trail {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > TrailSlots {
		capacity = TrailSlots
	}
	return Trail{capacity: uint8(capacity)}
}

// Push appends p as the newest point, evicting the oldest when full.
func (t *Trail) Push(p r2.Vec) {
	if t.capacity == 0 {
		t.capacity = 1
	}
	if t.length < t.capacity {
		t.points[(t.head+t.length)%t.capacity] = p
		t.length++
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % t.capacity
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return int(t.length)
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int {
	return int(t.capacity)
}

// At returns the i-th point, 0 being the oldest.
// An empty trail returns the zero vector.
func (t *Trail) At(i int) r2.Vec {
	if t.length == 0 {
		return r2.Vec{}
	}
	return t.points[(int(t.head)+i)%int(t.capacity)]
}

// Newest returns the most recent point and false when the trail is empty.
func (t *Trail) Newest() (r2.Vec, bool) {
	if t.length == 0 {
		return r2.Vec{}, false
	}
	return t.At(int(t.length) - 1), true
}

// Reset empties the trail, keeping its capacity.
func (t *Trail) Reset() {
	t.head = 0
	t.length = 0
}

// Translate shifts every stored point by d.
func (t *Trail) Translate(d r2.Vec) {
	for i := 0; i < int(t.length); i++ {
		idx := (int(t.head) + i) % int(t.capacity)
		t.points[idx] = r2.Add(t.points[idx], d)
	}
}
