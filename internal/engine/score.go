package engine

import "math"

// negInf stands in for an unreachable DP state. It is finite so that one
// additive step (a finite gap penalty) cannot turn it into NaN or wrap
// around into the positive range; it can only underflow toward -Inf, which
// still compares correctly against every real score.
const negInf = -math.MaxFloat64 / 2

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func max3(a, b, c float64) float64 {
	return max2(a, max2(b, c))
}

// Score computes the optimal alignment score for sA against sB under cfg
// and mode, without retaining a trace table. sA and sB hold letter indices
// in 0..25 (see internal/letters). If cfg installs a GapFunc that panics,
// Score recovers and returns a *CallbackError instead of crashing.
func Score(sA, sB []byte, cfg *ScoringConfig, mode Mode) (score float64, err error) {
	defer recoverCallbackPanic(&err)
	switch cfg.Algorithm() {
	case WatermanSmithBeyer:
		return scoreWSB(sA, sB, cfg, mode)
	case Gotoh:
		return scoreGotoh(sA, sB, cfg, mode)
	default:
		return scoreNWSW(sA, sB, cfg, mode)
	}
}

// scoreNWSW implements the unified Needleman-Wunsch/Smith-Waterman
// recurrence in O(nB) memory, streaming one row of the alignment grid at a
// time.
func scoreNWSW(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, error) {
	nA, nB := len(sA), len(sB)
	if err := checkDims(nA, nB); err != nil {
		return 0, err
	}

	prev := make([]float64, nB+1)
	curr := make([]float64, nB+1)

	if mode == Global {
		gH0 := cfg.Query.extend(regionOf(0, nA))
		for j := 1; j <= nB; j++ {
			prev[j] = prev[j-1] + gH0
		}
	}

	best := 0.0
	for i := 1; i <= nA; i++ {
		if mode == Global {
			curr[0] = prev[0] + cfg.Target.extend(regionOf(0, nB))
		} else {
			curr[0] = 0
		}
		gH := cfg.Query.extend(regionOf(i, nA))
		for j := 1; j <= nB; j++ {
			gV := cfg.Target.extend(regionOf(j, nB))
			v := max3(
				prev[j-1]+cfg.Score(sA[i-1], sB[j-1]),
				prev[j]+gV,
				curr[j-1]+gH,
			)
			if mode == Local && v < 0 {
				v = 0
			}
			curr[j] = v
			if mode == Local && v > best {
				best = v
			}
		}
		prev, curr = curr, prev
	}

	if mode == Local {
		return best, nil
	}
	return prev[nB], nil
}

// scoreGotoh implements the three-state Gotoh recurrence in O(nB) memory,
// streaming the M, Ix, and Iy rows one grid row at a time.
func scoreGotoh(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, error) {
	nA, nB := len(sA), len(sB)
	if err := checkDims(nA, nB); err != nil {
		return 0, err
	}

	mPrev := make([]float64, nB+1)
	ixPrev := make([]float64, nB+1)
	iyPrev := make([]float64, nB+1)
	mCurr := make([]float64, nB+1)
	ixCurr := make([]float64, nB+1)
	iyCurr := make([]float64, nB+1)
	for j := 0; j <= nB; j++ {
		mPrev[j], ixPrev[j], iyPrev[j] = negInf, negInf, negInf
	}

	best := 0.0
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if i == 0 && j == 0 {
				mCurr[0], ixCurr[0], iyCurr[0] = 0, negInf, negInf
				continue
			}

			if i >= 1 && j >= 1 {
				v := max3(mPrev[j-1], ixPrev[j-1], iyPrev[j-1]) + cfg.Score(sA[i-1], sB[j-1])
				if mode == Local && v < 0 {
					v = 0
				}
				mCurr[j] = v
			} else {
				mCurr[j] = negInf
			}

			if i >= 1 {
				r := regionOf(j, nB)
				open, extend := cfg.Query.open(r), cfg.Query.extend(r)
				v := max3(mPrev[j]+open, ixPrev[j]+extend, iyPrev[j]+open)
				if mode == Local {
					if v < 0 {
						v = 0
					}
					if i == nA {
						v = 0
					}
				}
				ixCurr[j] = v
			} else {
				ixCurr[j] = negInf
			}

			if j >= 1 {
				r := regionOf(i, nA)
				open, extend := cfg.Target.open(r), cfg.Target.extend(r)
				v := max3(mCurr[j-1]+open, ixCurr[j-1]+open, iyCurr[j-1]+extend)
				if mode == Local {
					if v < 0 {
						v = 0
					}
					if j == nB {
						v = 0
					}
				}
				iyCurr[j] = v
			} else {
				iyCurr[j] = negInf
			}

			if mode == Local {
				best = max3(best, mCurr[j], max2(ixCurr[j], iyCurr[j]))
			}
		}
		mPrev, mCurr = mCurr, mPrev
		ixPrev, ixCurr = ixCurr, ixPrev
		iyPrev, iyCurr = iyCurr, iyPrev
	}

	if mode == Local {
		return best, nil
	}
	return max3(mPrev[nB], ixPrev[nB], iyPrev[nB]), nil
}

// scoreWSB implements the Waterman-Smith-Beyer recurrence. Arbitrary
// length-dependent gap costs require looking back to any earlier row or
// column, not just the immediately preceding one, so unlike scoreNWSW and
// scoreGotoh this routine retains the full M/Ix/Iy history rather than a
// constant number of rows (see DESIGN.md).
func scoreWSB(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, error) {
	nA, nB := len(sA), len(sB)
	if err := checkDims(nA, nB); err != nil {
		return 0, err
	}

	m := make([][]float64, nA+1)
	ix := make([][]float64, nA+1)
	iy := make([][]float64, nA+1)
	for i := range m {
		m[i] = make([]float64, nB+1)
		ix[i] = make([]float64, nB+1)
		iy[i] = make([]float64, nB+1)
		for j := range m[i] {
			m[i][j], ix[i][j], iy[i][j] = negInf, negInf, negInf
		}
	}
	m[0][0] = 0

	best := 0.0
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if i >= 1 && j >= 1 {
				v := max3(m[i-1][j-1], ix[i-1][j-1], iy[i-1][j-1]) + cfg.Score(sA[i-1], sB[j-1])
				if mode == Local && v < 0 {
					v = 0
				}
				m[i][j] = v
			}
			if i >= 1 {
				v := negInf
				for l := 1; l <= i; l++ {
					v = max2(v, max2(m[i-l][j], iy[i-l][j])+cfg.Query.cost(i, nA, l))
				}
				if mode == Local {
					if v < 0 {
						v = 0
					}
					if i == nA {
						v = 0
					}
				}
				ix[i][j] = v
			}
			if j >= 1 {
				v := negInf
				for l := 1; l <= j; l++ {
					v = max2(v, max2(m[i][j-l], ix[i][j-l])+cfg.Target.cost(j, nB, l))
				}
				if mode == Local {
					if v < 0 {
						v = 0
					}
					if j == nB {
						v = 0
					}
				}
				iy[i][j] = v
			}
			if mode == Local {
				best = max3(best, m[i][j], max2(ix[i][j], iy[i][j]))
			}
		}
	}

	if mode == Local {
		return best, nil
	}
	return max3(m[nA][nB], ix[nA][nB], iy[nA][nB]), nil
}
