package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aria-lang/bioflow/internal/alignment"
	"github.com/aria-lang/bioflow/pkg/bioflow"
)

// AlignmentRequest represents an alignment request.
type AlignmentRequest struct {
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
}

// LocalAlignHandler handles local alignment requests.
func LocalAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seq1, err := bioflow.NewSequence(req.Sequence1)
	if err != nil {
		http.Error(w, `{"error": "sequence1: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	seq2, err := bioflow.NewSequence(req.Sequence2)
	if err != nil {
		http.Error(w, `{"error": "sequence2: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	result, err := bioflow.Align(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlignmentResponse{
		AlignedSeq1: result.AlignedSeq1,
		AlignedSeq2: result.AlignedSeq2,
		Score:       result.Score,
		Identity:    result.Identity,
		CIGAR:       result.ToCIGAR(),
		Matches:     result.MatchCount(),
		Mismatches:  result.MismatchCount(),
		Gaps:        result.TotalGaps(),
	})
}

// GlobalAlignHandler handles global alignment requests.
func GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seq1, err := bioflow.NewSequence(req.Sequence1)
	if err != nil {
		http.Error(w, `{"error": "sequence1: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	seq2, err := bioflow.NewSequence(req.Sequence2)
	if err != nil {
		http.Error(w, `{"error": "sequence2: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	result, err := bioflow.AlignGlobal(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlignmentResponse{
		AlignedSeq1: result.AlignedSeq1,
		AlignedSeq2: result.AlignedSeq2,
		Score:       result.Score,
		Identity:    result.Identity,
		CIGAR:       result.ToCIGAR(),
		Matches:     result.MatchCount(),
		Mismatches:  result.MismatchCount(),
		Gaps:        result.TotalGaps(),
	})
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// AlignmentScoreHandler handles alignment score requests.
func AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seq1, err := bioflow.NewSequence(req.Sequence1)
	if err != nil {
		http.Error(w, `{"error": "sequence1: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	seq2, err := bioflow.NewSequence(req.Sequence2)
	if err != nil {
		http.Error(w, `{"error": "sequence2: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	result, err := bioflow.Align(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScoreResponse{Score: result.Score})
}

// PathsRequest represents a co-optimal path enumeration request.
type PathsRequest struct {
	Sequence1 string  `json:"sequence1"`
	Sequence2 string  `json:"sequence2"`
	Mode      string  `json:"mode"`       // "global" (default) or "local"
	Algorithm string  `json:"algorithm"`  // "nwsw", "gotoh", or "wsb"; empty picks from the gaps (gotoh for the defaults)
	Match     float64 `json:"match"`      // default 1
	Mismatch  float64 `json:"mismatch"`   // default -1
	GapOpen   float64 `json:"gap_open"`   // default -2
	GapExtend float64 `json:"gap_extend"` // default -1
	MaxPaths  int     `json:"max_paths"`  // caps how many paths are rendered; default 100
}

// PathResponse is one rendered co-optimal alignment path.
type PathResponse struct {
	AlignedSeq1 string `json:"aligned_seq1"`
	AlignedSeq2 string `json:"aligned_seq2"`
}

// PathsResponse represents the response for co-optimal path enumeration.
type PathsResponse struct {
	Score     float64        `json:"score"`
	PathCount int64          `json:"path_count"`
	Overflow  bool           `json:"path_count_overflow"`
	Truncated bool           `json:"truncated"`
	Paths     []PathResponse `json:"paths"`
}

// PathsHandler handles requests to enumerate every co-optimal alignment
// path between two sequences.
func PathsHandler(w http.ResponseWriter, r *http.Request) {
	var req PathsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seq1, err := bioflow.NewSequence(req.Sequence1)
	if err != nil {
		http.Error(w, `{"error": "sequence1: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	seq2, err := bioflow.NewSequence(req.Sequence2)
	if err != nil {
		http.Error(w, `{"error": "sequence2: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	mode := alignment.ModeGlobal
	if req.Mode == "local" {
		mode = alignment.ModeLocal
	}

	match, mismatch := req.Match, req.Mismatch
	if match == 0 && mismatch == 0 {
		match, mismatch = 1, -1
	}
	gapOpen, gapExtend := req.GapOpen, req.GapExtend
	if gapOpen == 0 && gapExtend == 0 {
		gapOpen, gapExtend = -2, -1
	}

	// selectAlgorithm (see internal/engine/config.go) picks WSB whenever
	// either side installs a GapFunc, Gotoh whenever open != extend on
	// either side, and NWSW only when gaps are purely linear. nwsw/gotoh
	// requests are honored by shaping gapOpen/gapExtend accordingly; an
	// explicit request for an algorithm the shape wouldn't otherwise pick
	// is approximated as closely as the shape allows.
	if req.Algorithm == "nwsw" {
		gapOpen = gapExtend
	}
	cfg := alignment.NewMatchMismatchConfig(match, mismatch)
	cfg.Target = alignment.UniformGaps(gapOpen, gapExtend)
	cfg.Query = alignment.UniformGaps(gapOpen, gapExtend)
	if req.Algorithm == "wsb" {
		cfg.Target.Func = func(i, length int) float64 { return gapOpen + float64(length-1)*gapExtend }
		cfg.Query.Func = func(i, length int) float64 { return gapOpen + float64(length-1)*gapExtend }
	}

	score, gen, err := alignment.AlignWithConfig(seq1, seq2, cfg, mode)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	maxPaths := req.MaxPaths
	if maxPaths <= 0 {
		maxPaths = 100
	}

	var paths []PathResponse
	truncated := false
	for len(paths) < maxPaths {
		p, err := gen.Next()
		if err != nil {
			http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if p == nil {
			break
		}
		a1, a2 := alignment.RenderPath(seq1, seq2, p)
		paths = append(paths, PathResponse{AlignedSeq1: a1, AlignedSeq2: a2})
	}
	if more, _ := gen.Next(); more != nil {
		truncated = true
	}

	count := gen.Count()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PathsResponse{
		Score:     score,
		PathCount: int64(count),
		Overflow:  count == alignment.CountOverflow,
		Truncated: truncated,
		Paths:     paths,
	})
}
