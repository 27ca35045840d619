package engine

// buildNWSW fills a tableNWSW with the optimal score and every co-optimal
// predecessor direction at each cell, and returns the table together with
// the overall optimal score.
func buildNWSW(sA, sB []byte, cfg *ScoringConfig, mode Mode) (float64, *tableNWSW, error) {
	nA, nB := len(sA), len(sB)
	t, err := newTableNWSW(mode, nA, nB)
	if err != nil {
		return 0, nil, err
	}
	scores := make([][]float64, nA+1)
	for i := range scores {
		scores[i] = make([]float64, nB+1)
	}

	eps := cfg.epsilon()

	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if i == 0 && j == 0 {
				if mode == Local {
					t.cells[0][0].trace = bitStartpoint
				}
				continue
			}
			type cand struct {
				value float64
				bit   byte
			}
			var cands []cand
			if i >= 1 && j >= 1 {
				cands = append(cands, cand{scores[i-1][j-1] + cfg.Score(sA[i-1], sB[j-1]), bitDiagonal})
			}
			if i >= 1 {
				cands = append(cands, cand{scores[i-1][j] + cfg.Target.extend(regionOf(j, nB)), bitVertical})
			}
			if j >= 1 {
				cands = append(cands, cand{scores[i][j-1] + cfg.Query.extend(regionOf(i, nA)), bitHorizontal})
			}

			raw := negInf
			for _, c := range cands {
				if c.value > raw {
					raw = c.value
				}
			}
			best := raw
			if mode == Local && best < 0 {
				best = 0
			}
			var trace byte
			for _, c := range cands {
				if c.value >= best-eps && c.value <= best+eps {
					trace |= c.bit
				}
			}
			if mode == Local && trace == 0 {
				trace |= bitStartpoint
			}
			scores[i][j] = best
			t.cells[i][j].trace = trace
		}
	}

	if mode == Global {
		if err := pruneTable(t); err != nil {
			return 0, nil, err
		}
		return scores[nA][nB], t, nil
	}

	globalBest := negInf
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if scores[i][j] > globalBest {
				globalBest = scores[i][j]
			}
		}
	}
	var endpoints []node
	for i := 0; i <= nA; i++ {
		for j := 0; j <= nB; j++ {
			if scores[i][j] >= globalBest-eps {
				t.cells[i][j].trace |= bitEndpoint
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
