// Package bioflow provides a high-level API for genomic sequence analysis.
//
// This package exposes the core BioFlow functionality through a simple,
// easy-to-use API for common bioinformatics operations.
//
// Example usage:
//
//	seq, err := bioflow.NewSequence("ATGCATGC")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gc := seq.GCContent()
//	fmt.Printf("GC Content: %.2f%%\n", gc*100)
//
//	alignment, err := bioflow.Align(seq1, seq2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(alignment.Format())
package bioflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/bioflow/internal/alignment"
	"github.com/aria-lang/bioflow/internal/sequence"
)

// Re-export types for convenience
type (
	Sequence      = sequence.Sequence
	SequenceType  = sequence.SequenceType
	Alignment     = alignment.Alignment
	ScoringMatrix = alignment.ScoringMatrix

	// ScoringConfig, GapScheme, and AlignMode cover the general
	// Needleman-Wunsch/Smith-Waterman/Gotoh/Waterman-Smith-Beyer engine,
	// alongside the flat ScoringMatrix model above.
	ScoringConfig = alignment.ScoringConfig
	GapScheme     = alignment.GapScheme
	AlignMode     = alignment.Mode
	PathGenerator = alignment.PathGenerator
	AlignmentPath = alignment.Path
)

// Alignment modes for AlignConfigured and ScoreConfigured.
const (
	ModeGlobal = alignment.ModeGlobal
	ModeLocal  = alignment.ModeLocal
)

// PathCountOverflow is returned by (*PathGenerator).Count when the true
// number of co-optimal paths cannot be represented exactly.
const PathCountOverflow = alignment.CountOverflow

// Constants
const (
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Unknown = sequence.Unknown
)

// NewSequence creates a new DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// NewRNASequence creates a new RNA sequence.
func NewRNASequence(bases string) (*Sequence, error) {
	return sequence.WithMetadata(bases, "", "", sequence.RNA)
}

// Align performs local alignment between two sequences.
func Align(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.SmithWaterman(seq1, seq2, nil)
}

// AlignGlobal performs global alignment between two sequences.
func AlignGlobal(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.NeedlemanWunsch(seq1, seq2, nil)
}

// AlignWithScoring performs local alignment with custom scoring.
func AlignWithScoring(seq1, seq2 *Sequence, scoring *ScoringMatrix) (*Alignment, error) {
	return alignment.SmithWaterman(seq1, seq2, scoring)
}

// DefaultScoring returns the default DNA scoring matrix.
func DefaultScoring() *ScoringMatrix {
	return alignment.DefaultDNA()
}

// NewMatchMismatchScoring builds a ScoringConfig for the general alignment
// engine from a flat match/mismatch score, for use with AlignConfigured
// and ScoreConfigured.
func NewMatchMismatchScoring(match, mismatch float64) *ScoringConfig {
	return alignment.NewMatchMismatchConfig(match, mismatch)
}

// UniformGaps builds a GapScheme charging the same affine open/extend cost
// in the interior and at both boundaries.
func UniformGaps(open, extend float64) GapScheme {
	return alignment.UniformGaps(open, extend)
}

// ScoreConfigured computes the optimal alignment score for seq1 against
// seq2 under cfg and mode, without retaining a trace table. It selects
// Needleman-Wunsch/Smith-Waterman, Gotoh, or Waterman-Smith-Beyer
// automatically based on cfg's gap schemes.
func ScoreConfigured(seq1, seq2 *Sequence, cfg *ScoringConfig, mode AlignMode) (float64, error) {
	return alignment.ScoreWithConfig(seq1, seq2, cfg, mode)
}

// AlignConfigured computes the optimal score for seq1 against seq2 under
// cfg and mode, and returns a PathGenerator that lazily enumerates every
// co-optimal alignment path. Call RenderPath with each path returned by
// the generator's Next method to recover the aligned sequence pair.
func AlignConfigured(seq1, seq2 *Sequence, cfg *ScoringConfig, mode AlignMode) (float64, *PathGenerator, error) {
	return alignment.AlignWithConfig(seq1, seq2, cfg, mode)
}

// RenderPath reconstructs the gapped sequence pair an AlignmentPath
// describes. seq1 and seq2 must be the same sequences the path's owning
// PathGenerator was built from.
func RenderPath(seq1, seq2 *Sequence, p *AlignmentPath) (aligned1, aligned2 string) {
	return alignment.RenderPath(seq1, seq2, p)
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)

	var currentID, currentDesc string
	var currentBases strings.Builder

	flushSequence := func() error {
		if currentBases.Len() > 0 {
			seq, err := sequence.WithMetadata(
				currentBases.String(),
				currentID,
				currentDesc,
				sequence.DNA,
			)
			if err != nil {
				return err
			}
			sequences = append(sequences, seq)
			currentBases.Reset()
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			// Flush previous sequence
			if err := flushSequence(); err != nil {
				return nil, err
			}

			// Parse header
			header := line[1:]
			parts := strings.SplitN(header, " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}

	// Flush last sequence
	if err := flushSequence(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sequences, nil
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	for _, seq := range sequences {
		_, err := file.WriteString(seq.ToFASTA())
		if err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}

	return nil
}

// Version returns the BioFlow version.
func Version() string {
	return "1.0.0"
}

// Info returns information about BioFlow.
func Info() string {
	return fmt.Sprintf(`BioFlow v%s - Genomic Sequence Analysis Library

A production-quality Go implementation of the BioFlow genomic pipeline.

Features:
  - DNA/RNA sequence handling with validation
  - GC/AT content calculation
  - Sequence complement and reverse complement
  - Smith-Waterman local alignment
  - Needleman-Wunsch global alignment
  - Gotoh affine-gap and Waterman-Smith-Beyer general-gap alignment
  - Exact co-optimal alignment path enumeration and counting
  - FASTA file parsing

For more information, see: https://github.com/aria-lang/bioflow
`, Version())
}
