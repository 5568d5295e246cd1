package tracker

import "github.com/nkoval/beamsim/internal/elements"

// Beamline is the ordered sequence of field elements a particle
// traverses. Order encodes physical position along the accelerator and
// fixes the application order within one step. Elements are appended
// during setup and never reordered once a run has started.
type Beamline struct {
	elems []elements.Element
}

func NewBeamline(elems ...elements.Element) *Beamline {
	return &Beamline{elems: elems}
}

func (b *Beamline) Append(el elements.Element) {
	b.elems = append(b.elems, el)
}

func (b *Beamline) Len() int { return len(b.elems) }

// Elements returns the elements in beamline order. Callers must not
// mutate the returned slice.
func (b *Beamline) Elements() []elements.Element {
	return b.elems
}

// TotalLength is the physical length of the beamline in meters.
func (b *Beamline) TotalLength() float64 {
	total := 0.0
	for _, el := range b.elems {
		total += el.Length()
	}
	return total
}
