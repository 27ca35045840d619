package engine

// buildWSB fills a tableWSB with the optimal score and every co-optimal
// gap length at each of the three matrices, and returns the table together
// with the overall optimal score.
func buildWSB(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, *tableWSB, error) {
	nA, nB := len(sA), len(sB)
	t, err := newTableWSB(mode, nA, nB)
	if err != nil {
		return 0, nil, err
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

	eps := cfg.epsilon()

	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if i == 0 && j == 0 {
				if mode == Local {
					t.main[0][0].trace = bitStartpoint
				}
				continue
			}

			if i >= 1 && j >= 1 {
				raw := max3(m[i-1][j-1], ix[i-1][j-1], iy[i-1][j-1])
				var trace byte
				if m[i-1][j-1] >= raw-eps {
					trace |= srcM
				}
				g := t.gaps[i-1][j-1]
				if ix[i-1][j-1] >= raw-eps && len(g.mIx)+len(g.iyIx) > 0 {
					trace |= srcIx
				}
				if iy[i-1][j-1] >= raw-eps && len(g.mIy)+len(g.ixIy) > 0 {
					trace |= srcIy
				}
				v := raw + cfg.Score(sA[i-1], sB[j-1])
				if mode == Local && v < 0 {
					v = 0
					trace = 0
				}
				m[i][j] = v
				t.main[i][j].trace = trace
			} else if mode == Local {
				m[i][j] = 0
			}

			if i >= 1 {
				raw := negInf
				for l := 1; l <= i; l++ {
					cost := cfg.Query.cost(i, nA, l)
					raw = max2(raw, max2(m[i-l][j], iy[i-l][j])+cost)
				}
				var mIx, iyIx []int
				for l := 1; l <= i; l++ {
					cost := cfg.Query.cost(i, nA, l)
					if m[i-l][j]+cost >= raw-eps {
						mIx = append(mIx, l)
					}
					if iy[i-l][j]+cost >= raw-eps && len(t.gaps[i-l][j].mIy)+len(t.gaps[i-l][j].ixIy) > 0 {
						iyIx = append(iyIx, l)
					}
				}
				v := raw
				if mode == Local {
					if v < 0 {
						v, mIx, iyIx = 0, nil, nil
					}
					if i == nA {
						v, mIx, iyIx = 0, nil, nil
					}
				}
				ix[i][j] = v
				t.gaps[i][j].mIx = mIx
				t.gaps[i][j].iyIx = iyIx
			}

			if j >= 1 {
				raw := negInf
				for l := 1; l <= j; l++ {
					cost := cfg.Target.cost(j, nB, l)
					raw = max2(raw, max2(m[i][j-l], ix[i][j-l])+cost)
				}
				var mIy, ixIy []int
				for l := 1; l <= j; l++ {
					cost := cfg.Target.cost(j, nB, l)
					if m[i][j-l]+cost >= raw-eps {
						mIy = append(mIy, l)
					}
					if ix[i][j-l]+cost >= raw-eps && len(t.gaps[i][j-l].mIx)+len(t.gaps[i][j-l].iyIx) > 0 {
						ixIy = append(ixIy, l)
					}
				}
				v := raw
				if mode == Local {
					if v < 0 {
						v, mIy, ixIy = 0, nil, nil
					}
					if j == nB {
						v, mIy, ixIy = 0, nil, nil
					}
				}
				iy[i][j] = v
				t.gaps[i][j].mIy = mIy
				t.gaps[i][j].ixIy = ixIy
			}

			if mode == Local && m[i][j] == 0 && i+j > 0 {
				t.main[i][j].trace |= bitStartpoint
			}
		}
	}

	if mode == Global {
		best := max3(m[nA][nB], ix[nA][nB], iy[nA][nB])
		var final byte
		if m[nA][nB] >= best-eps {
			final |= srcM
		}
		if ix[nA][nB] >= best-eps {
			final |= srcIx
		}
		if iy[nA][nB] >= best-eps {
			final |= srcIy
		}
		t.finalStates = final
		if err := pruneTable(t); err != nil {
			return 0, nil, err
		}
		return best, t, nil
	}

	globalBest := negInf
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if m[i][j] > globalBest {
				globalBest = m[i][j]
			}
		}
	}
	var endpoints []node
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if m[i][j] >= globalBest-eps {
				t.main[i][j].trace |= bitEndpoint
				endpoints = append(endpoints, node{i, j, srcM})
			}
		}
	}
	t.endpoints = endpoints
	if err := pruneTable(t); err != nil {
		return 0, nil, err
	}
	return globalBest, t, nil
}
