package engine

// Mode selects whether Score/Align search for a global or local optimum.
type Mode int

const (
	Global Mode = iota
	Local
)

func (m Mode) String() string {
	if m == Local {
		return "local"
	}
	return "global"
}

// Algorithm identifies which dynamic-programming recurrence a ScoringConfig
// requires.
type Algorithm int

const (
	NeedlemanWunschSmithWaterman Algorithm = iota
	Gotoh
	WatermanSmithBeyer
)

func (a Algorithm) String() string {
	switch a {
	case Gotoh:
		return "gotoh"
	case WatermanSmithBeyer:
		return "waterman-smith-beyer"
	default:
		return "needleman-wunsch-smith-waterman"
	}
}

// AlphabetSize is the number of letters the substitution matrix is indexed
// over, matching internal/letters.
const AlphabetSize = 26

// DefaultWildcard is the index of the wildcard letter 'X'. Its self-match
// score is 0 unless ScoringConfig.Wildcard is set to a different index.
const DefaultWildcard = 23

// UnsetWildcard is the Wildcard value NewMatchMismatch and
// NewSubstitutionMatrix install, meaning "use DefaultWildcard". It is
// negative so that index 0 ('A') is a distinguishable, valid Wildcard
// value rather than colliding with Go's int zero value.
const UnsetWildcard = -1

// DefaultEpsilon is the tie tolerance used when a ScoringConfig does not
// set one explicitly.
const DefaultEpsilon = 1e-6

// GapFunc computes the cost of a gap of the given length opening
// immediately after position i (0-based, in that sequence's own
// coordinates). Installing a GapFunc on either side of a ScoringConfig
// forces algorithm selection to WatermanSmithBeyer.
type GapFunc func(i, length int) float64

// GapScheme holds the six affine gap-cost parameters for one side (target
// or query): an open/extend pair for each of the three regions a gap can
// occupy, plus an optional length-dependent override.
type GapScheme struct {
	OpenInternal, ExtendInternal float64
	OpenLeft, ExtendLeft         float64
	OpenRight, ExtendRight       float64

	// Func, when set, replaces the affine model above for this side and
	// forces WatermanSmithBeyer selection.
	Func GapFunc
}

// Uniform returns a GapScheme charging the same open/extend cost in the
// interior and at both boundaries — the common case for a flat gap penalty.
func Uniform(open, extend float64) GapScheme {
	return GapScheme{
		OpenInternal: open, ExtendInternal: extend,
		OpenLeft: open, ExtendLeft: extend,
		OpenRight: open, ExtendRight: extend,
	}
}

func (g GapScheme) affine() bool {
	return g.OpenInternal == g.ExtendInternal &&
		g.OpenLeft == g.ExtendLeft &&
		g.OpenRight == g.ExtendRight
}

type region int

const (
	regionInternal region = iota
	regionLeft
	regionRight
)

func regionOf(pos, n int) region {
	switch {
	case pos == 0:
		return regionLeft
	case pos == n:
		return regionRight
	default:
		return regionInternal
	}
}

func (g GapScheme) open(r region) float64 {
	switch r {
	case regionLeft:
		return g.OpenLeft
	case regionRight:
		return g.OpenRight
	default:
		return g.OpenInternal
	}
}

func (g GapScheme) extend(r region) float64 {
	switch r {
	case regionLeft:
		return g.ExtendLeft
	case regionRight:
		return g.ExtendRight
	default:
		return g.ExtendInternal
	}
}

// cost returns the total cost of a gap of the given length ending at
// position pos (0..n, in that side's own coordinates), using Func if
// installed or the affine open/extend model for pos's region otherwise.
func (g GapScheme) cost(pos, n, length int) float64 {
	if g.Func != nil {
		return g.Func(pos-length, length)
	}
	r := regionOf(pos, n)
	return g.open(r) + float64(length-1)*g.extend(r)
}

// ScoringConfig is a frozen snapshot of the substitution and gap-cost model
// used to score and align one pair of sequences. It must not be mutated
// concurrently with a call to Score or Align; mutate it, then call
// Invalidate, between calls instead.
type ScoringConfig struct {
	useMatrix       bool
	matrix          [AlphabetSize][AlphabetSize]float64
	match, mismatch float64

	// Target and Query hold the gap-cost model for each side. By
	// convention Target governs gaps opened by a vertical step in the
	// Needleman-Wunsch/Smith-Waterman recurrence and by the Iy state in
	// Gotoh/Waterman-Smith-Beyer; Query governs horizontal steps and the
	// Ix state, matching the formulas in spec section 4.2 verbatim (the
	// two families name the same physical step differently; see
	// DESIGN.md).
	Target, Query GapScheme

	// Epsilon is the numeric tolerance used when deciding whether two
	// predecessor scores are tied during traceback. Zero means
	// DefaultEpsilon.
	Epsilon float64

	// Wildcard is the index whose self-match score is always 0,
	// overriding the installed substitution matrix or match score.
	// UnsetWildcard means DefaultWildcard. NewMatchMismatch and
	// NewSubstitutionMatrix initialize this to UnsetWildcard, so index 0
	// ('A') is distinguishable from "not set" for configs built through
	// either constructor; a ScoringConfig assembled by hand defaults to
	// index 0 instead unless Wildcard is set explicitly.
	Wildcard int

	algoKnown bool
	algo      Algorithm
}

// NewMatchMismatch builds a ScoringConfig from a flat match/mismatch score.
func NewMatchMismatch(match, mismatch float64) *ScoringConfig {
	return &ScoringConfig{match: match, mismatch: mismatch, Wildcard: UnsetWildcard}
}

// NewSubstitutionMatrix builds a ScoringConfig from an explicit 26x26
// substitution matrix. The caller is responsible for symmetrizing it
// case-insensitively if that invariant matters to them.
func NewSubstitutionMatrix(matrix [AlphabetSize][AlphabetSize]float64) *ScoringConfig {
	return &ScoringConfig{useMatrix: true, matrix: matrix, Wildcard: UnsetWildcard}
}

func (c *ScoringConfig) epsilon() float64 {
	if c.Epsilon == 0 {
		return DefaultEpsilon
	}
	return c.Epsilon
}

func (c *ScoringConfig) wildcard() int {
	if c.Wildcard < 0 {
		return DefaultWildcard
	}
	return c.Wildcard
}

// Match returns the configured match score, or a ConfigError if a
// substitution matrix is installed instead.
func (c *ScoringConfig) Match() (float64, error) {
	if c.useMatrix {
		return 0, newConfigError("match score is unavailable: a substitution matrix is installed")
	}
	return c.match, nil
}

// Mismatch returns the configured mismatch penalty, or a ConfigError if a
// substitution matrix is installed instead.
func (c *ScoringConfig) Mismatch() (float64, error) {
	if c.useMatrix {
		return 0, newConfigError("mismatch penalty is unavailable: a substitution matrix is installed")
	}
	return c.mismatch, nil
}

// SubstitutionMatrix returns the installed 26x26 matrix, or a ConfigError
// if this configuration uses a scalar match/mismatch scheme instead.
func (c *ScoringConfig) SubstitutionMatrix() ([AlphabetSize][AlphabetSize]float64, error) {
	if !c.useMatrix {
		return [AlphabetSize][AlphabetSize]float64{}, newConfigError("substitution matrix is unavailable: a scalar match/mismatch scheme is installed")
	}
	return c.matrix, nil
}

// Score returns the substitution score for aligning letter indices a and b.
// The configured wildcard letter always self-matches at 0, overriding
// whatever the installed scheme says.
func (c *ScoringConfig) Score(a, b byte) float64 {
	w := c.wildcard()
	if int(a) == w && int(b) == w {
		return 0
	}
	if c.useMatrix {
		return c.matrix[a][b]
	}
	if a == b {
		return c.match
	}
	return c.mismatch
}

// Algorithm selects, and memoizes, which DP recurrence this configuration
// requires: WatermanSmithBeyer if either side installs a GapFunc,
// NeedlemanWunschSmithWaterman if every side's open equals its extend in
// all three regions, Gotoh otherwise.
func (c *ScoringConfig) Algorithm() Algorithm {
	if c.algoKnown {
		return c.algo
	}
	c.algo = c.selectAlgorithm()
	c.algoKnown = true
	return c.algo
}

func (c *ScoringConfig) selectAlgorithm() Algorithm {
	if c.Target.Func != nil || c.Query.Func != nil {
		return WatermanSmithBeyer
	}
	if c.Target.affine() && c.Query.affine() {
		return NeedlemanWunschSmithWaterman
	}
	return Gotoh
}

// Invalidate clears the memoized algorithm choice. Call it after mutating
// Target or Query on a ScoringConfig that has already been used.
func (c *ScoringConfig) Invalidate() {
	c.algoKnown = false
}
