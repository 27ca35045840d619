package engine

// buildGotoh fills a tableGotoh with the optimal score and every co-optimal
// predecessor state at each of the three matrices (M, Ix, Iy), and returns
// the table together with the overall optimal score.
func buildGotoh(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, *tableGotoh, error) {
	nA, nB := len(sA), len(sB)
	t, err := newTableGotoh(mode, nA, nB)
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
				if ix[i-1][j-1] >= raw-eps && t.gaps[i-1][j-1].ix != 0 {
					trace |= srcIx
				}
				if iy[i-1][j-1] >= raw-eps && t.gaps[i-1][j-1].iy != 0 {
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
				r := regionOf(j, nB)
				open, extend := cfg.Query.open(r), cfg.Query.extend(r)
				cM := m[i-1][j] + open
				cIx := ix[i-1][j] + extend
				cIy := iy[i-1][j] + open
				raw := max3(cM, cIx, cIy)
				var mask byte
				if cM >= raw-eps {
					mask |= srcM
				}
				if cIx >= raw-eps && t.gaps[i-1][j].ix != 0 {
					mask |= srcIx
				}
				if cIy >= raw-eps && t.gaps[i-1][j].iy != 0 {
					mask |= srcIy
				}
				v := raw
				if mode == Local {
					if v < 0 {
						v, mask = 0, 0
					}
					if i == nA {
						v, mask = 0, 0
					}
				}
				ix[i][j] = v
				t.gaps[i][j].ix = mask
			}

			if j >= 1 {
				r := regionOf(i, nA)
				open, extend := cfg.Target.open(r), cfg.Target.extend(r)
				cM := m[i][j-1] + open
				cIx := ix[i][j-1] + open
				cIy := iy[i][j-1] + extend
				raw := max3(cM, cIx, cIy)
				var mask byte
				if cM >= raw-eps {
					mask |= srcM
				}
				if cIx >= raw-eps && t.gaps[i][j-1].ix != 0 {
					mask |= srcIx
				}
				if cIy >= raw-eps && t.gaps[i][j-1].iy != 0 {
					mask |= srcIy
				}
				v := raw
				if mode == Local {
					if v < 0 {
						v, mask = 0, 0
					}
					if j == nB {
						v, mask = 0, 0
					}
				}
				iy[i][j] = v
				t.gaps[i][j].iy = mask
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
