// Command bioflow provides a CLI for pairwise sequence alignment.
//
// Usage:
//
//	bioflow [command] [options]
//
// Commands:
//
//	info        Show sequence information
//	gc          Calculate GC content
//	align       Align two sequences
//	version     Show version information
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aria-lang/bioflow/internal/alignment"
	"github.com/aria-lang/bioflow/pkg/bioflow"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "info":
		infoCmd(os.Args[2:])
	case "gc":
		gcCmd(os.Args[2:])
	case "align":
		alignCmd(os.Args[2:])
	case "version":
		fmt.Println(bioflow.Info())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`BioFlow - Pairwise Sequence Alignment Tool

Usage:
  bioflow <command> [options]

Commands:
  info      Show sequence information
  gc        Calculate GC content
  align     Align two sequences
  version   Show version information
  help      Show this help message

Use "bioflow <command> -h" for more information about a command.`)
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seq := fs.String("seq", "", "Sequence string to analyze")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var sequences []*bioflow.Sequence
	var err error

	if *file != "" {
		sequences, err = bioflow.ReadFASTA(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
	} else {
		s, err := bioflow.NewSequence(*seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sequence: %v\n", err)
			os.Exit(1)
		}
		sequences = []*bioflow.Sequence{s}
	}

	for i, s := range sequences {
		at, err := s.ATContent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing AT content: %v\n", err)
			os.Exit(1)
		}
		counts := s.BaseCounts()
		fmt.Printf("Sequence %d:\n", i+1)
		if s.ID != "" {
			fmt.Printf("  ID: %s\n", s.ID)
		}
		fmt.Printf("  Length: %d bp\n", s.Len())
		fmt.Printf("  GC Content: %.2f%%\n", s.GCContent()*100)
		fmt.Printf("  AT Content: %.2f%%\n", at*100)
		fmt.Printf("  Base Counts: A=%d, C=%d, G=%d, T=%d, N=%d\n",
			counts.A, counts.C, counts.G, counts.T, counts.N)
		fmt.Println()
	}
}

func gcCmd(args []string) {
	fs := flag.NewFlagSet("gc", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seq := fs.String("seq", "", "Sequence string to analyze")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var sequences []*bioflow.Sequence
	var err error

	if *file != "" {
		sequences, err = bioflow.ReadFASTA(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
	} else {
		s, err := bioflow.NewSequence(*seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sequence: %v\n", err)
			os.Exit(1)
		}
		sequences = []*bioflow.Sequence{s}
	}

	for _, s := range sequences {
		id := s.ID
		if id == "" {
			id = "sequence"
		}
		fmt.Printf("%s: %.4f (%.2f%%)\n", id, s.GCContent(), s.GCContent()*100)
	}
}

func alignCmd(args []string) {
	fs := flag.NewFlagSet("align", flag.ExitOnError)
	seq1 := fs.String("seq1", "", "First sequence")
	seq2 := fs.String("seq2", "", "Second sequence")
	global := fs.Bool("global", false, "Use global alignment (Needleman-Wunsch)")
	algo := fs.String("algorithm", "", "DP algorithm: nwsw, gotoh, or wsb (empty: flat aligner, or with -count-paths picked from the gap values)")
	match := fs.Float64("match", 1, "Match score")
	mismatch := fs.Float64("mismatch", -1, "Mismatch penalty")
	gapOpen := fs.Float64("gap-open", -2, "Gap open penalty")
	gapExtend := fs.Float64("gap-extend", -1, "Gap extend penalty")
	countPaths := fs.Bool("count-paths", false, "Report the number of co-optimal alignment paths instead of rendering one")
	fs.Parse(args)

	if *seq1 == "" || *seq2 == "" {
		fmt.Fprintln(os.Stderr, "Error: Both -seq1 and -seq2 are required")
		fs.Usage()
		os.Exit(1)
	}

	s1, err := bioflow.NewSequence(*seq1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sequence 1: %v\n", err)
		os.Exit(1)
	}

	s2, err := bioflow.NewSequence(*seq2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sequence 2: %v\n", err)
		os.Exit(1)
	}

	if *algo == "" && !*countPaths {
		var result *bioflow.Alignment
		if *global {
			result, err = bioflow.AlignGlobal(s1, s2)
		} else {
			result, err = bioflow.Align(s1, s2)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error aligning sequences: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(result.Format())
		return
	}

	mode := alignment.ModeGlobal
	if !*global {
		mode = alignment.ModeLocal
	}
	open, extend := *gapOpen, *gapExtend
	if *algo == "nwsw" {
		open = extend
	}
	cfg := alignment.NewMatchMismatchConfig(*match, *mismatch)
	cfg.Target = alignment.UniformGaps(open, extend)
	cfg.Query = alignment.UniformGaps(open, extend)
	if *algo == "wsb" {
		cfg.Target.Func = func(i, length int) float64 { return open + float64(length-1)*extend }
		cfg.Query.Func = func(i, length int) float64 { return open + float64(length-1)*extend }
	}

	score, gen, err := alignment.AlignWithConfig(s1, s2, cfg, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aligning sequences: %v\n", err)
		os.Exit(1)
	}

	if *countPaths {
		count := gen.Count()
		fmt.Printf("Score: %.2f\n", score)
		if count == alignment.CountOverflow {
			fmt.Println("Co-optimal paths: more than can be counted exactly (overflow)")
		} else {
			fmt.Printf("Co-optimal paths: %d\n", count)
		}
		return
	}

	p, err := gen.Next()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error enumerating alignment paths: %v\n", err)
		os.Exit(1)
	}
	if p == nil {
		fmt.Println("No alignment path found")
		return
	}
	a1, a2 := alignment.RenderPath(s1, s2, p)
	fmt.Printf("Score: %.2f\n", score)
	fmt.Println(a1)
	fmt.Println(a2)
}

