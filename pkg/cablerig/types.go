package cablerig

// Rig is the JSON description of a set of cables and their anchor layout.
// Per-cable fields left null inherit from Defaults.
type Rig struct {
	Defaults Defaults   `json:"defaults"`
	Cables   []CableDef `json:"cables"`
}

// Defaults supplies the values used for cable fields omitted in the file.
type Defaults struct {
	Segments       int     `json:"segments"`
	RadialSegments int     `json:"radialSegments"`
	Radius         float32 `json:"radius"`
	Slack          float32 `json:"slack"`
}

// CableDef describes one cable. Resolution and shape fields are pointers so
// a null field can fall back to the rig defaults.
type CableDef struct {
	Name           string     `json:"name"`
	AnchorA        [3]float32 `json:"anchorA"`
	AnchorB        [3]float32 `json:"anchorB"`
	Segments       *int       `json:"segments"`
	RadialSegments *int       `json:"radialSegments"`
	Radius         *float32   `json:"radius"`
	Slack          *float32   `json:"slack"`
	// Swing is the demo animation amplitude for anchor B; zero keeps the
	// anchor static.
	Swing float32 `json:"swing"`
	// Phase offsets the animation so cables don't move in lockstep.
	Phase float32 `json:"phase"`
}

// Cable is a fully resolved cable definition with defaults applied.
type Cable struct {
	Name           string
	AnchorA        [3]float32
	AnchorB        [3]float32
	Segments       int
	RadialSegments int
	Radius         float32
	Slack          float32
	Swing          float32
	Phase          float32
}

// Resolve applies the rig defaults to every cable definition.
func (r *Rig) Resolve() []Cable {
	out := make([]Cable, 0, len(r.Cables))
	for i := range r.Cables {
		c := &r.Cables[i]
		resolved := Cable{
			Name:           c.Name,
			AnchorA:        c.AnchorA,
			AnchorB:        c.AnchorB,
			Segments:       r.Defaults.Segments,
			RadialSegments: r.Defaults.RadialSegments,
			Radius:         r.Defaults.Radius,
			Slack:          r.Defaults.Slack,
			Swing:          c.Swing,
			Phase:          c.Phase,
		}
		if c.Segments != nil {
			resolved.Segments = *c.Segments
		}
		if c.RadialSegments != nil {
			resolved.RadialSegments = *c.RadialSegments
		}
		if c.Radius != nil {
			resolved.Radius = *c.Radius
		}
		if c.Slack != nil {
			resolved.Slack = *c.Slack
		}
		out = append(out, resolved)
	}
	return out
}
