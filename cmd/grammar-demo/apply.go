package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdeprey/slate-grammar-demo/internal/engine"
)

var (
	applyCursor int
	applyPOV    bool
	applyWrite  bool
)

// applyCmd analyzes input, applies the suggestions as a batch per block and
// shows the resulting change as a diff.
var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Apply suggestions and show the diff",
	Long: `Analyze the input and apply every visible correctness fix as one batch
per block. With --pov the gated point-of-view alignments are confirmed and
applied in the same batch. The change is printed as a diff; --write rewrites
the input file in place.`,
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

		var outParts []string
		applied := 0
		for _, mb := range splitBlocks(text) {
			block := mb.Snapshot()
			res, err := eng.Analyze(cmd.Context(), block, applyCursor)
			if err != nil {
				return fmt.Errorf("analyze block %s: %w", block.ID, err)
			}

			batch := res.Visible()
			if applyPOV {
				batch = append(batch, res.Gated()...)
			}
			if err := engine.ApplyBatch(mb, batch); err != nil {
				return fmt.Errorf("apply block %s: %w", block.ID, err)
			}
			applied += len(batch)
			logger.Debug("applied batch",
				zap.String("block", block.ID),
				zap.Int("suggestions", len(batch)))
			outParts = append(outParts, mb.Text())
		}
		out := strings.Join(outParts, "\n\n")
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(text, out, false)
		dmp.DiffCleanupSemantic(diffs)
		fmt.Print(dmp.DiffPrettyText(diffs))
		fmt.Printf("\n%d suggestion(s) applied\n", applied)

		if applyWrite {
			if len(args) == 0 || args[0] == "-" {
				return fmt.Errorf("--write requires a file argument")
			}
			if err := os.WriteFile(args[0], []byte(out), 0644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().IntVar(&applyCursor, "cursor", 0, "linear cursor offset within each block")
	applyCmd.Flags().BoolVar(&applyPOV, "pov", false, "also apply gated point-of-view alignments")
	applyCmd.Flags().BoolVar(&applyWrite, "write", false, "rewrite the input file in place")
}
