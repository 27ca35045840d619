package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/bioflow/internal/engine"
	"github.com/aria-lang/bioflow/internal/letters"
	"github.com/aria-lang/bioflow/internal/sequence"
)

// The types and functions in this file expose internal/engine's general
// Needleman-Wunsch/Smith-Waterman/Gotoh/Waterman-Smith-Beyer machinery
// through the same sequence.Sequence-based API the rest of this package
// uses, alongside the simpler affine DNA scoring above. Where scoring.go's
// ScoringMatrix only supports a flat match/mismatch/gap-linear model over
// DNA, ScoringConfig supports a full substitution matrix, three-region
// affine gaps, arbitrary gap-length functions, and exact co-optimal path
// enumeration.
type (
	ScoringConfig = engine.ScoringConfig
	GapScheme     = engine.GapScheme
	Algorithm     = engine.Algorithm
	Mode          = engine.Mode
	PathGenerator = engine.PathGenerator
	Path          = engine.Path
	Point         = engine.Point
	PathCount     = engine.PathCount
)

const (
	NeedlemanWunschSmithWaterman = engine.NeedlemanWunschSmithWaterman
	GotohAlgorithm               = engine.Gotoh
	WatermanSmithBeyer           = engine.WatermanSmithBeyer

	ModeGlobal = engine.Global
	ModeLocal  = engine.Local

	CountOverflow = engine.CountOverflow
)

// NewMatchMismatchConfig builds a ScoringConfig from a flat match/mismatch
// score, the engine equivalent of ScoringMatrix's MatchScore/MismatchPenalty.
func NewMatchMismatchConfig(match, mismatch float64) *ScoringConfig {
	return engine.NewMatchMismatch(match, mismatch)
}

// NewSubstitutionMatrixConfig builds a ScoringConfig from an explicit 26x26
// substitution matrix indexed by internal/letters.Encode.
func NewSubstitutionMatrixConfig(matrix [engine.AlphabetSize][engine.AlphabetSize]float64) *ScoringConfig {
	return engine.NewSubstitutionMatrix(matrix)
}

// UniformGaps builds a GapScheme charging the same affine open/extend cost
// everywhere.
func UniformGaps(open, extend float64) GapScheme {
	return engine.Uniform(open, extend)
}

func encodeOrError(seq *sequence.Sequence) ([]byte, error) {
	if !letters.Valid(seq.Bases) {
		return nil, fmt.Errorf("sequence %q contains a letter outside A-Z", seq.ID)
	}
	return letters.Encode(seq.Bases), nil
}

// ScoreWithConfig computes the optimal alignment score for seq1 against
// seq2 under cfg and mode, without retaining a trace table.
func ScoreWithConfig(seq1, seq2 *sequence.Sequence, cfg *ScoringConfig, mode Mode) (float64, error) {
	a, err := encodeOrError(seq1)
	if err != nil {
		return 0, err
	}
	b, err := encodeOrError(seq2)
	if err != nil {
		return 0, err
	}
	return engine.Score(a, b, cfg, mode)
}

// AlignWithConfig computes the optimal score for seq1 against seq2 under
// cfg and mode, and returns a PathGenerator that lazily enumerates every
// co-optimal alignment path.
func AlignWithConfig(seq1, seq2 *sequence.Sequence, cfg *ScoringConfig, mode Mode) (float64, *PathGenerator, error) {
	a, err := encodeOrError(seq1)
	if err != nil {
		return 0, nil, err
	}
	b, err := encodeOrError(seq2)
	if err != nil {
		return 0, nil, err
	}
	score, gen, err := engine.Align(a, b, cfg, mode)
	if err != nil {
		return 0, nil, err
	}
	return score, gen, nil
}

// RenderPath reconstructs the gapped sequence pair a Path describes. seq1
// and seq2 must be the same sequences the Path's owning PathGenerator was
// built from.
func RenderPath(seq1, seq2 *sequence.Sequence, p *Path) (aligned1, aligned2 string) {
	var b1, b2 strings.Builder
	corners := p.Corners
	for k := 0; k+1 < len(corners); k++ {
		from, to := corners[k], corners[k+1]
		di, dj := to.I-from.I, to.J-from.J
		switch {
		case di > 0 && dj > 0:
			b1.WriteString(seq1.Bases[from.I:to.I])
			b2.WriteString(seq2.Bases[from.J:to.J])
		case di > 0:
			b1.WriteString(seq1.Bases[from.I:to.I])
			b2.WriteString(strings.Repeat("-", di))
		case dj > 0:
			b1.WriteString(strings.Repeat("-", dj))
			b2.WriteString(seq2.Bases[from.J:to.J])
		}
	}
	return b1.String(), b2.String()
}
