package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdeprey/slate-grammar-demo/internal/engine"
)

var (
	checkCursor int
	checkJSON   bool
)

// checkCmd analyzes input and prints the suggestions without applying them.
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Analyze text and list suggestions",
	Long: `Analyze the input (a file, or stdin when omitted) and print every
suggestion the engine produced: visible correctness fixes plus gated
point-of-view alignments when a target resolved near the cursor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := buildEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		text, err := readInput(args)
		if err != nil {
			return err
		}

		type blockReport struct {
			Block       string              `json:"block"`
			Target      string              `json:"target,omitempty"`
			Visible     []engine.Suggestion `json:"visible"`
			Gated       []engine.Suggestion `json:"gated,omitempty"`
			Diagnostics engine.Diagnostics  `json:"diagnostics"`
		}
		var reports []blockReport

		for _, mb := range splitBlocks(text) {
			block := mb.Snapshot()
			res, err := eng.Analyze(cmd.Context(), block, checkCursor)
			if err != nil {
				return fmt.Errorf("analyze block %s: %w", block.ID, err)
			}
			reports = append(reports, blockReport{
				Block:       block.ID,
				Target:      string(res.Target),
				Visible:     res.Visible(),
				Gated:       res.Gated(),
				Diagnostics: res.Diagnostics,
			})
		}

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		total := 0
		for _, r := range reports {
			for _, s := range r.Visible {
				printSuggestion(r.Block, s)
				total++
			}
			if len(r.Gated) > 0 {
				fmt.Printf("%s: %d point-of-view alignment(s) pending (target %q)\n",
					r.Block, len(r.Gated), r.Target)
				for _, s := range r.Gated {
					printSuggestion(r.Block, s)
				}
				total += len(r.Gated)
			}
			if r.Diagnostics.FailedSources > 0 {
				fmt.Printf("%s: %d source(s) unavailable, results may be incomplete\n",
					r.Block, r.Diagnostics.FailedSources)
			}
		}
		fmt.Printf("%d suggestion(s)\n", total)
		return nil
	},
}

func printSuggestion(block string, s engine.Suggestion) {
	msg := s.Message
	if msg == "" {
		msg = string(s.Kind)
	}
	fmt.Printf("%s %s/%d-%d [%s] %s -> %q\n",
		block, s.Span.Start.Segment, s.LinearStart, s.LinearEnd, s.Source, msg, s.Replacement)
}

func init() {
	checkCmd.Flags().IntVar(&checkCursor, "cursor", 0, "linear cursor offset within each block")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit JSON")
}
