package synth

// EdgePolicy controls what happens when a kernel placement window runs past
// the buffer bounds.
type EdgePolicy int

const (
	// EdgeSkip drops the kernel entirely when any part of its window falls
	// outside the buffer.
	EdgeSkip EdgePolicy = iota
	// EdgeClip renders the in-bounds portion of the kernel and discards the
	// rest.
	EdgeClip
)

// PlaceMode selects how a kernel combines with existing buffer content.
type PlaceMode int

const (
	// PlaceAdd sums the kernel into the buffer.
	PlaceAdd PlaceMode = iota
	// PlaceReplace overwrites the buffer samples with the kernel.
	PlaceReplace
)

// Place writes kernel into buf starting at sample index start, scaled by
// amplitude, under the given edge policy and mode. It reports whether any
// samples were written. All synthesizers route kernel placement through this
// single primitive so bounds handling stays uniform.
func Place(buf Signal, kernel Signal, start int, amplitude float64, policy EdgePolicy, mode PlaceMode) bool {
	if len(kernel) == 0 {
		return false
	}
	if policy == EdgeSkip {
		if start < 0 || start+len(kernel) > len(buf) {
			return false
		}
	}

	from := 0
	if start < 0 {
		from = -start
	}
	wrote := false
	for k := from; k < len(kernel); k++ {
		idx := start + k
		if idx >= len(buf) {
			break
		}
		switch mode {
		case PlaceReplace:
			buf[idx] = amplitude * kernel[k]
		default:
			buf[idx] += amplitude * kernel[k]
		}
		wrote = true
	}
	return wrote
}

// PlaceAt is Place with additive mode, the common case.
func PlaceAt(buf Signal, kernel Signal, start int, amplitude float64, policy EdgePolicy) bool {
	return Place(buf, kernel, start, amplitude, policy, PlaceAdd)
}
