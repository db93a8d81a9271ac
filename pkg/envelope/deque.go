package envelope

// frameDeque is a ring buffer of frames with O(1) amortised insertion and
// removal at both ends. Index 0 is the front.
type frameDeque struct {
	ring []*Frame
	head int
	n    int
}

func (d *frameDeque) len() int {
	return d.n
}

func (d *frameDeque) at(i int) *Frame {
	return d.ring[(d.head+i)%len(d.ring)]
}

func (d *frameDeque) set(i int, f *Frame) {
	d.ring[(d.head+i)%len(d.ring)] = f
}

// grow doubles the ring when full, compacting the live window to the start.
func (d *frameDeque) grow() {
	if d.n < len(d.ring) {
		return
	}
	c := 2 * len(d.ring)
	if c == 0 {
		c = 8
	}
	ring := make([]*Frame, c)
	for i := 0; i < d.n; i++ {
		ring[i] = d.at(i)
	}
	d.ring = ring
	d.head = 0
}

func (d *frameDeque) pushBack(f *Frame) {
	d.grow()
	d.ring[(d.head+d.n)%len(d.ring)] = f
	d.n++
}

func (d *frameDeque) pushFront(f *Frame) {
	d.grow()
	d.head = (d.head - 1 + len(d.ring)) % len(d.ring)
	d.ring[d.head] = f
	d.n++
}

func (d *frameDeque) popFront() *Frame {
	f := d.ring[d.head]
	d.ring[d.head] = nil
	d.head = (d.head + 1) % len(d.ring)
	d.n--
	return f
}

func (d *frameDeque) popBack() *Frame {
	i := (d.head + d.n - 1) % len(d.ring)
	f := d.ring[i]
	d.ring[i] = nil
	d.n--
	return f
}

// remove deletes the frame at index i, shifting later frames down one
// position. O(n) in the frames after i.
func (d *frameDeque) remove(i int) *Frame {
	f := d.at(i)
	for j := i; j < d.n-1; j++ {
		d.set(j, d.at(j+1))
	}
	d.set(d.n-1, nil)
	d.n--
	return f
}
