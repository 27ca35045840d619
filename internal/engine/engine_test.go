package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enc(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' {
			out[i] = c - 'a'
		} else {
			out[i] = c - 'A'
		}
	}
	return out
}

func linearConfig(match, mismatch, gap float64) *ScoringConfig {
	cfg := NewMatchMismatch(match, mismatch)
	cfg.Target = Uniform(gap, gap)
	cfg.Query = Uniform(gap, gap)
	return cfg
}

func affineConfig(match, mismatch, open, extend float64) *ScoringConfig {
	cfg := NewMatchMismatch(match, mismatch)
	cfg.Target = Uniform(open, extend)
	cfg.Query = Uniform(open, extend)
	return cfg
}

// rescorePath recomputes a path's score from its corners, independently of
// the table that produced it, using the same Target/Query side convention
// each algorithm family uses (see DESIGN.md for why the convention differs
// between NW/SW and Gotoh/WSB). It only handles affine gap schemes; callers
// with a GapFunc installed should compare Score's return value directly
// instead.
func rescorePath(sA, sB []byte, cfg *ScoringConfig, algo Algorithm, p *Path) float64 {
	nA, nB := len(sA), len(sB)
	var total float64
	for k := 0; k+1 < len(p.Corners); k++ {
		from, to := p.Corners[k], p.Corners[k+1]
		di, dj := to.I-from.I, to.J-from.J
		switch {
		case di > 0 && dj > 0:
			for s := 0; s < di; s++ {
				total += cfg.Score(sA[from.I+s], sB[from.J+s])
			}
		case di > 0:
			// vertical run: NW/SW charges Target keyed by column; Gotoh/WSB
			// charges Query keyed by column via the Ix state.
			var g GapScheme
			if algo == NeedlemanWunschSmithWaterman {
				g = cfg.Target
			} else {
				g = cfg.Query
			}
			r := regionOf(from.J, nB)
			total += g.open(r) + float64(di-1)*g.extend(r)
		case dj > 0:
			var g GapScheme
			if algo == NeedlemanWunschSmithWaterman {
				g = cfg.Query
			} else {
				g = cfg.Target
			}
			r := regionOf(from.I, nA)
			total += g.open(r) + float64(dj-1)*g.extend(r)
		}
	}
	return total
}

func TestAlgorithmSelection(t *testing.T) {
	t.Run("flat affine selects NWSW", func(t *testing.T) {
		cfg := affineConfig(1, -1, -1, -1)
		assert.Equal(t, NeedlemanWunschSmithWaterman, cfg.Algorithm())
	})

	t.Run("open != extend selects Gotoh", func(t *testing.T) {
		cfg := affineConfig(1, 0, -2, -1)
		assert.Equal(t, Gotoh, cfg.Algorithm())
	})

	t.Run("installed GapFunc selects WSB regardless of the other side", func(t *testing.T) {
		cfg := affineConfig(1, 0, -1, -1)
		cfg.Query.Func = func(i, length int) float64 { return -float64(length) }
		assert.Equal(t, WatermanSmithBeyer, cfg.Algorithm())
	})

	t.Run("memoized until Invalidate", func(t *testing.T) {
		cfg := affineConfig(1, -1, -1, -1)
		assert.Equal(t, NeedlemanWunschSmithWaterman, cfg.Algorithm())
		cfg.Target.OpenInternal = -5
		assert.Equal(t, NeedlemanWunschSmithWaterman, cfg.Algorithm(), "stale until Invalidate")
		cfg.Invalidate()
		assert.Equal(t, Gotoh, cfg.Algorithm())
	})
}

func TestScoreAgreement(t *testing.T) {
	cases := []struct {
		name string
		cfg  *ScoringConfig
		mode Mode
		sA   string
		sB   string
	}{
		{"nwsw global", linearConfig(1, 0, -1), Global, "GAATTC", "GATTA"},
		{"nwsw local", linearConfig(1, -1, -1), Local, "ACACACTA", "AGCACACA"},
		{"gotoh global", affineConfig(1, 0, -2, -1), Global, "AAAA", "AA"},
		{"gotoh local", affineConfig(1, -1, -2, -1), Local, "ACACACTA", "AGCACACA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sA, sB := enc(tc.sA), enc(tc.sB)
			wantScore, err := Score(sA, sB, tc.cfg, tc.mode)
			require.NoError(t, err)

			score, gen, err := Align(sA, sB, tc.cfg, tc.mode)
			require.NoError(t, err)
			assert.InDelta(t, wantScore, score, 1e-9)

			p, err := gen.Next()
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.InDelta(t, score, rescorePath(sA, sB, tc.cfg, tc.cfg.Algorithm(), p), 1e-9)
		})
	}
}

func TestPathCountMatchesEnumerationAndNoDuplicates(t *testing.T) {
	cfg := linearConfig(1, 0, -1)
	sA, sB := enc("GAATTC"), enc("GATTA")

	_, gen, err := Align(sA, sB, cfg, Global)
	require.NoError(t, err)

	seen := make(map[string]bool)
	var paths []*Path
	for {
		p, err := gen.Next()
		require.NoError(t, err)
		if p == nil {
			break
		}
		paths = append(paths, p)
		key := pathKey(p)
		assert.False(t, seen[key], "duplicate path %v", p.Corners)
		seen[key] = true
	}

	assert.Equal(t, PathCount(len(paths)), gen.Count())
}

func pathKey(p *Path) string {
	s := ""
	for _, c := range p.Corners {
		s += fmt.Sprintf("%d,%d;", c.I, c.J)
	}
	return s
}

func TestDeterministicOrderAndResetIdempotence(t *testing.T) {
	cfg := affineConfig(1, -1, -2, -1)
	sA, sB := enc("ACACACTA"), enc("AGCACACA")

	_, gen, err := Align(sA, sB, cfg, Local)
	require.NoError(t, err)

	var first []string
	for {
		p, err := gen.Next()
		require.NoError(t, err)
		if p == nil {
			break
		}
		first = append(first, pathKey(p))
	}
	require.NotEmpty(t, first)

	gen.Reset()
	var second []string
	for {
		p, err := gen.Next()
		require.NoError(t, err)
		if p == nil {
			break
		}
		second = append(second, pathKey(p))
	}

	assert.Equal(t, first, second)
}

func TestLocalModeConstraints(t *testing.T) {
	cfg := affineConfig(1, -1, -2, -1)
	sA, sB := enc("ACACACTA"), enc("AGCACACA")

	_, gen, err := Align(sA, sB, cfg, Local)
	require.NoError(t, err)

	t1, ok := gen.t.(*tableGotoh)
	require.True(t, ok)

	count := 0
	for {
		p, err := gen.Next()
		require.NoError(t, err)
		if p == nil {
			break
		}
		count++
		leaf := p.Corners[0]
		root := p.Corners[len(p.Corners)-1]
		assert.NotZero(t, t1.main[leaf.I][leaf.J].trace&bitStartpoint)
		assert.NotZero(t, t1.main[root.I][root.J].trace&bitEndpoint)
	}
	assert.Greater(t, count, 0)
}

func TestBoundaryRegionScoring(t *testing.T) {
	cfg := NewMatchMismatch(1, 0)
	cfg.Target = GapScheme{
		OpenInternal: -1, ExtendInternal: -1,
		OpenLeft: -5, ExtendLeft: -5,
		OpenRight: -9, ExtendRight: -9,
	}
	cfg.Query = cfg.Target

	// A single insertion exactly at the left boundary (i=0) of the target
	// side must be charged the left-region rate, not the interior rate.
	assert.Equal(t, -5.0, cfg.Target.open(regionOf(0, 10)))
	assert.Equal(t, -9.0, cfg.Target.open(regionOf(10, 10)))
	assert.Equal(t, -1.0, cfg.Target.open(regionOf(5, 10)))
}

func TestEpsilonTiesProduceAllCoOptimalPaths(t *testing.T) {
	cfg := linearConfig(1, -1, -1)
	sA, sB := enc("AC"), enc("AG")

	_, gen, err := Align(sA, sB, cfg, Global)
	require.NoError(t, err)
	tight := gen.Count()

	cfgLoose := linearConfig(1, -1, -1)
	cfgLoose.Epsilon = 10.0
	_, genLoose, err := Align(sA, sB, cfgLoose, Global)
	require.NoError(t, err)
	loose := genLoose.Count()

	assert.GreaterOrEqual(t, int64(loose), int64(tight))
}

// Concrete scenarios covering the score-agreement and boundary-condition
// properties above, with literal expected scores worked out by hand from
// the classic Needleman-Wunsch/Smith-Waterman recurrence (GAATTC/GATTA
// globally aligns as GAATTC/GA-TTA with one gap and one mismatch, for a
// net of four matches minus one gap minus zero for the mismatch: 3;
// ACACACTA/AGCACACA's best local alignment is CACACTA/CACAC-A for six
// matches minus one gap: 5).
func TestScenarioA_GlobalLinear(t *testing.T) {
	cfg := linearConfig(1, 0, -1)
	score, _, err := Align(enc("GAATTC"), enc("GATTA"), cfg, Global)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, score, 1e-9)
}

func TestScenarioB_LocalLinear(t *testing.T) {
	cfg := linearConfig(1, -1, -1)
	score, _, err := Align(enc("ACACACTA"), enc("AGCACACA"), cfg, Local)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, score, 1e-9)
}

func TestScenarioC_GotohDominatesLinear(t *testing.T) {
	nw := linearConfig(1, 0, -2)
	gotoh := affineConfig(1, 0, -2, -1)

	nwScore, err := Score(enc("AAAA"), enc("AA"), nw, Global)
	require.NoError(t, err)
	gotohScore, err := Score(enc("AAAA"), enc("AA"), gotoh, Global)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, gotohScore, nwScore)
}

func TestScenarioD_WSBLinearGapFuncMatchesLinearNW(t *testing.T) {
	nw := linearConfig(1, 0, -1)
	nwScore, err := Score(enc("AAA"), enc("AAAA"), nw, Global)
	require.NoError(t, err)

	wsb := NewMatchMismatch(1, 0)
	wsb.Target.Func = func(i, length int) float64 { return -float64(length) }
	wsb.Query.Func = func(i, length int) float64 { return -float64(length) }
	require.Equal(t, WatermanSmithBeyer, wsb.Algorithm())

	wsbScore, err := Score(enc("AAA"), enc("AAAA"), wsb, Global)
	require.NoError(t, err)

	assert.InDelta(t, nwScore, wsbScore, 1e-9)
}

func TestScenarioE_IdenticalSequencesSinglePath(t *testing.T) {
	cfg := linearConfig(1, -1, -10)
	s := enc("AAAAA")

	score, gen, err := Align(s, s, cfg, Global)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, score, 1e-9)
	assert.Equal(t, PathCount(1), gen.Count())
}

func TestScenarioF_HighEpsilonKeepsPredecessorsWithinBound(t *testing.T) {
	cfg := affineConfig(1, -1, -2, -1)
	cfg.Epsilon = 10.0
	sA, sB := enc("ACACACTA"), enc("AGCACACA")

	_, gen, err := Align(sA, sB, cfg, Local)
	require.NoError(t, err)

	p, err := gen.Next()
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestCorruptTraceErrorType(t *testing.T) {
	err := newCorruptTraceError("cell (%d,%d) state %d is reachable but has no outgoing trace", 1, 2, srcM)
	var ct *CorruptTraceError
	require.ErrorAs(t, err, &ct)
}

func TestWildcardZeroIndexIsNotConfusedWithUnset(t *testing.T) {
	cfg := NewMatchMismatch(1, -1)
	cfg.Wildcard = 0 // 'A'

	assert.Equal(t, float64(0), cfg.Score(enc("A")[0], enc("A")[0]))
	assert.Equal(t, float64(-1), cfg.Score(enc("G")[0], enc("T")[0]))
}

func TestWildcardDefaultsToXWhenUnset(t *testing.T) {
	cfg := NewMatchMismatch(1, -1)

	assert.Equal(t, float64(-1), cfg.Score(enc("A")[0], enc("T")[0]))
	assert.Equal(t, float64(0), cfg.Score(enc("X")[0], enc("X")[0]))
}

func TestAllocationErrorOnNegativeDims(t *testing.T) {
	_, err := Score([]byte{}, []byte{}, linearConfig(1, -1, -1), Global)
	require.NoError(t, err)

	err = checkDims(-1, 3)
	var ae *AllocationError
	require.ErrorAs(t, err, &ae)
}

func TestScorePanickingGapFuncReturnsCallbackError(t *testing.T) {
	cfg := NewMatchMismatch(1, -1)
	cfg.Target = Uniform(-2, -1)
	cfg.Query = Uniform(-2, -1)
	cfg.Target.Func = func(i, length int) float64 { panic("boom") }
	cfg.Query.Func = func(i, length int) float64 { panic("boom") }

	_, err := Score(enc("AAAA"), enc("AA"), cfg, Global)
	require.Error(t, err)
	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Contains(t, cbErr.Error(), "boom")
}

func TestAlignPanickingGapFuncReturnsCallbackError(t *testing.T) {
	cfg := NewMatchMismatch(1, -1)
	cfg.Target = Uniform(-2, -1)
	cfg.Query = Uniform(-2, -1)
	cfg.Target.Func = func(i, length int) float64 { panic(fmt.Errorf("gap cost unavailable")) }
	cfg.Query.Func = func(i, length int) float64 { panic(fmt.Errorf("gap cost unavailable")) }

	score, gen, err := Align(enc("AAAA"), enc("AA"), cfg, Local)
	require.Error(t, err)
	assert.Zero(t, score)
	assert.Nil(t, gen)
	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.EqualError(t, cbErr.Err, "gap cost unavailable")
}
