package engine

// Align computes the optimal score for sA against sB under cfg and mode,
// and returns a PathGenerator that lazily enumerates every co-optimal
// alignment path. sA and sB hold letter indices in 0..25 (see
// internal/letters). If cfg installs a GapFunc that panics, Align recovers
// and returns a *CallbackError instead of crashing.
func Align(sA, sB []byte, cfg *ScoringConfig, mode Mode) (score float64, gen *PathGenerator, err error) {
	defer recoverCallbackPanic(&err)
	var tr trace
	switch cfg.Algorithm() {
	case WatermanSmithBeyer:
		var t *tableWSB
		score, t, err = buildWSB(sA, sB, cfg, mode)
		tr = t
	case Gotoh:
		var t *tableGotoh
		score, t, err = buildGotoh(sA, sB, cfg, mode)
		tr = t
	default:
		var t *tableNWSW
		score, t, err = buildNWSW(sA, sB, cfg, mode)
		tr = t
	}
	if err != nil {
		return 0, nil, err
	}
	return score, newPathGenerator(tr), nil
}
