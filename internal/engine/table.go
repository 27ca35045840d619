package engine

// maxCells bounds how large a trace table this implementation will attempt
// to allocate. It is not a hard platform limit; it exists so a pathological
// input fails fast with an AllocationError instead of thrashing.
const maxCells = 1 << 30

func checkDims(nA, nB int) error {
	if nA < 0 || nB < 0 {
		return newAllocationError("negative dimension: %d x %d", nA, nB)
	}
	rows, cols := nA+1, nB+1
	if rows > 0 && cols > maxCells/rows {
		return newAllocationError("trace table of %d x %d cells exceeds the allocation budget", rows, cols)
	}
	return nil
}

// tableNWSW is the Needleman-Wunsch/Smith-Waterman trace table: one dense
// (nA+1) x (nB+1) grid of cells, indexed [i][j].
type tableNWSW struct {
	mode   Mode
	nA, nB int
	cells  [][]cell

	// endpoints caches, in row-major order, every local-mode ENDPOINT
	// cell. Unused in global mode.
	endpoints []node
}

func newTableNWSW(mode Mode, nA, nB int) (*tableNWSW, error) {
	if err := checkDims(nA, nB); err != nil {
		return nil, err
	}
	cells := make([][]cell, nA+1)
	for i := range cells {
		cells[i] = make([]cell, nB+1)
	}
	return &tableNWSW{mode: mode, nA: nA, nB: nB, cells: cells}, nil
}

func (t *tableNWSW) at(i, j int) *cell { return &t.cells[i][j] }

func (t *tableNWSW) roots() []node {
	if t.mode == Global {
		return []node{{t.nA, t.nB, srcM}}
	}
	return t.endpoints
}

func (t *tableNWSW) isLeaf(n node) bool {
	if t.mode == Global {
		return n.i == 0 && n.j == 0
	}
	return t.cells[n.i][n.j].trace&bitStartpoint != 0
}

func (t *tableNWSW) predecessors(n node) []step {
	mask := t.cells[n.i][n.j].trace & bitSourceMask
	steps := make([]step, 0, 3)
	for _, b := range setBits(mask) {
		switch b {
		case bitHorizontal:
			steps = append(steps, step{node{n.i, n.j - 1, srcM}, dirHorizontal})
		case bitVertical:
			steps = append(steps, step{node{n.i - 1, n.j, srcM}, dirVertical})
		case bitDiagonal:
			steps = append(steps, step{node{n.i - 1, n.j - 1, srcM}, dirDiagonal})
		}
	}
	return steps
}

// tableGotoh is the Gotoh trace table: a main-matrix cell grid (M-state
// sources plus STARTPOINT/ENDPOINT) and a parallel grid of gap-source
// nibbles for the Ix and Iy states.
type tableGotoh struct {
	mode   Mode
	nA, nB int
	main   [][]cell
	gaps   [][]gotohGaps

	// finalStates records, for global mode only, which of M/Ix/Iy tie
	// for the overall optimum at (nA, nB).
	finalStates byte
	endpoints   []node
}

func newTableGotoh(mode Mode, nA, nB int) (*tableGotoh, error) {
	if err := checkDims(nA, nB); err != nil {
		return nil, err
	}
	main := make([][]cell, nA+1)
	gaps := make([][]gotohGaps, nA+1)
	for i := range main {
		main[i] = make([]cell, nB+1)
		gaps[i] = make([]gotohGaps, nB+1)
	}
	return &tableGotoh{mode: mode, nA: nA, nB: nB, main: main, gaps: gaps}, nil
}

func (t *tableGotoh) roots() []node {
	if t.mode == Global {
		var out []node
		for _, b := range setBits(t.finalStates) {
			out = append(out, node{t.nA, t.nB, b})
		}
		return out
	}
	return t.endpoints
}

func (t *tableGotoh) isLeaf(n node) bool {
	if t.mode == Global {
		return n.i == 0 && n.j == 0
	}
	return n.state == srcM && t.main[n.i][n.j].trace&bitStartpoint != 0
}

func (t *tableGotoh) predecessors(n node) []step {
	switch n.state {
	case srcM:
		mask := t.main[n.i][n.j].trace & bitSourceMask
		steps := make([]step, 0, 3)
		for _, b := range setBits(mask) {
			steps = append(steps, step{node{n.i - 1, n.j - 1, b}, dirDiagonal})
		}
		return steps
	case srcIx:
		mask := t.gaps[n.i][n.j].ix
		steps := make([]step, 0, 3)
		for _, b := range setBits(mask) {
			steps = append(steps, step{node{n.i - 1, n.j, b}, dirVertical})
		}
		return steps
	case srcIy:
		mask := t.gaps[n.i][n.j].iy
		steps := make([]step, 0, 3)
		for _, b := range setBits(mask) {
			steps = append(steps, step{node{n.i, n.j - 1, b}, dirHorizontal})
		}
		return steps
	default:
		return nil
	}
}

// tableWSB is the Waterman-Smith-Beyer trace table: the same main-matrix
// cell grid as Gotoh, but with variable-length gap runs recorded as
// explicit length lists instead of a fixed 4-bit nibble.
type tableWSB struct {
	mode   Mode
	nA, nB int
	main   [][]cell
	gaps   [][]wsbGaps

	finalStates byte
	endpoints   []node
}

func newTableWSB(mode Mode, nA, nB int) (*tableWSB, error) {
	if err := checkDims(nA, nB); err != nil {
		return nil, err
	}
	main := make([][]cell, nA+1)
	gaps := make([][]wsbGaps, nA+1)
	for i := range main {
		main[i] = make([]cell, nB+1)
		gaps[i] = make([]wsbGaps, nB+1)
	}
	return &tableWSB{mode: mode, nA: nA, nB: nB, main: main, gaps: gaps}, nil
}

func (t *tableWSB) roots() []node {
	if t.mode == Global {
		var out []node
		for _, b := range setBits(t.finalStates) {
			out = append(out, node{t.nA, t.nB, b})
		}
		return out
	}
	return t.endpoints
}

func (t *tableWSB) isLeaf(n node) bool {
	if t.mode == Global {
		return n.i == 0 && n.j == 0
	}
	return n.state == srcM && t.main[n.i][n.j].trace&bitStartpoint != 0
}

func (t *tableWSB) predecessors(n node) []step {
	switch n.state {
	case srcM:
		mask := t.main[n.i][n.j].trace & bitSourceMask
		steps := make([]step, 0, 3)
		for _, b := range setBits(mask) {
			steps = append(steps, step{node{n.i - 1, n.j - 1, b}, dirDiagonal})
		}
		return steps
	case srcIx:
		g := t.gaps[n.i][n.j]
		steps := make([]step, 0, len(g.mIx)+len(g.iyIx))
		for _, length := range g.mIx {
			steps = append(steps, step{node{n.i - length, n.j, srcM}, dirVertical})
		}
		for _, length := range g.iyIx {
			steps = append(steps, step{node{n.i - length, n.j, srcIy}, dirVertical})
		}
		return steps
	case srcIy:
		g := t.gaps[n.i][n.j]
		steps := make([]step, 0, len(g.mIy)+len(g.ixIy))
		for _, length := range g.mIy {
			steps = append(steps, step{node{n.i, n.j - length, srcM}, dirHorizontal})
		}
		for _, length := range g.ixIy {
			steps = append(steps, step{node{n.i, n.j - length, srcIx}, dirHorizontal})
		}
		return steps
	default:
		return nil
	}
}
