package host

import "sort"

// Point is a logical-pixel position with Y measured from the top of the surface.
type Point struct {
	X, Y float64
}

// InputState tracks pressed pointers between frames.
//
// Releasing or leaving with any pointer drops every tracked pointer, not
// just the one that was released.
type InputState struct {
	touching bool
	pointers map[int]Point
}

// NewInputState returns an empty pointer set.
func NewInputState() *InputState {
	return &InputState{pointers: make(map[int]Point)}
}

// Down starts tracking pointer id and marks the surface as touched.
func (s *InputState) Down(id int, x, y float64) {
	s.touching = true
	s.pointers[id] = Point{X: x, Y: y}
}

// Move updates pointer id while the surface is touched. Hover movement is ignored.
func (s *InputState) Move(id int, x, y float64) {
	if !s.touching {
		return
	}
	s.pointers[id] = Point{X: x, Y: y}
}

// Up ends the touch and forgets all pointers.
func (s *InputState) Up(id int) {
	s.clear()
}

// Leave ends the touch when a pointer leaves the surface.
func (s *InputState) Leave() {
	s.clear()
}

func (s *InputState) clear() {
	s.touching = false
	clear(s.pointers)
}

// Count returns the number of tracked pointers.
func (s *InputState) Count() int {
	return len(s.pointers)
}

// Active returns the pointer used for the frame: the one with the lowest id.
func (s *InputState) Active() (Point, bool) {
	if len(s.pointers) == 0 {
		return Point{}, false
	}
	ids := make([]int, 0, len(s.pointers))
	for id := range s.pointers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return s.pointers[ids[0]], true
}
