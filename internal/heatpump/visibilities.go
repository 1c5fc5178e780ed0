package heatpump

// Visibilities is the sink for the visibility vector (command 3005), which
// flags per index whether the controller's front panel exposes the
// corresponding setting. Elements are signed bytes rather than int32s.
type Visibilities struct {
	values []int8
}

// NewVisibilities creates an empty visibility sink.
func NewVisibilities() *Visibilities {
	return &Visibilities{}
}

// Parse stores the raw visibility vector from one read phase.
func (v *Visibilities) Parse(raw []int8) {
	v.values = append(v.values[:0], raw...)
}

// Len returns the number of visibility flags received in the last read phase.
func (v *Visibilities) Len() int {
	return len(v.values)
}

// Visible reports whether the setting at index is shown on the controller
// panel. Indices beyond the received vector report false.
func (v *Visibilities) Visible(index int) bool {
	return index >= 0 && index < len(v.values) && v.values[index] != 0
}
