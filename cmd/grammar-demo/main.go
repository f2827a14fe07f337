package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rdeprey/slate-grammar-demo/internal/ai"
	"github.com/rdeprey/slate-grammar-demo/internal/config"
	"github.com/rdeprey/slate-grammar-demo/internal/document"
	"github.com/rdeprey/slate-grammar-demo/internal/engine"
	"github.com/rdeprey/slate-grammar-demo/internal/grammar"
	"github.com/rdeprey/slate-grammar-demo/internal/rulestore"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grammar-demo",
	Short: "grammar-demo - suggestion engine for structured text",
	Long: `grammar-demo analyzes structured text and produces ranked, coordinate-
accurate suggestions: correctness fixes from built-in rules, user rules and an
optional remote grammar service, plus point-of-view alignment driven by an
optional AI collaborator.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "grammar-demo.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(rulesCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildEngine wires an engine from config: a remote grammar client when
// enabled, an AI collaborator when a key is configured, and whatever user
// rules the store holds.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	opts := engine.Options{
		Logger:        logger,
		POVEnabled:    cfg.POV.Enabled,
		CacheCapacity: cfg.Cache.Capacity,
	}

	if cfg.Grammar.Enabled {
		gcfg := grammar.DefaultConfig(cfg.Grammar.BaseURL)
		if cfg.Grammar.Language != "" {
			gcfg.Language = cfg.Grammar.Language
		}
		gcfg.DisabledCategories = cfg.Grammar.DisabledCategories
		gcfg.Timeout = cfg.GetGrammarTimeout()
		opts.Grammar = grammar.NewClient(gcfg, logger)
	}

	if cfg.AI.APIKey != "" {
		switch cfg.AI.Provider {
		case "openai":
			occfg := ai.DefaultOpenAICompatConfig(cfg.AI.APIKey)
			if cfg.AI.BaseURL != "" {
				occfg.BaseURL = cfg.AI.BaseURL
			}
			if cfg.AI.Model != "" {
				occfg.Model = cfg.AI.Model
			}
			occfg.Timeout = cfg.GetAITimeout()
			opts.AI = ai.NewOpenAICompatClient(occfg)
		default:
			client, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
			if err != nil {
				return nil, fmt.Errorf("create AI client: %w", err)
			}
			opts.AI = client
		}
	}

	store, err := rulestore.Open(cfg.Rules.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open rule store: %w", err)
	}
	defer store.Close()
	defs, err := store.Definitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user rules: %w", err)
	}
	opts.UserRules = defs

	return engine.New(opts), nil
}

// readInput reads the document text from the first argument or stdin.
func readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// splitBlocks maps the input onto the structured document model: blank-line
// separated paragraphs become blocks, lines within a paragraph become
// segments (newlines stay attached so offsets match the raw text).
func splitBlocks(text string) []*document.MemoryBlock {
	paras := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	var blocks []*document.MemoryBlock
	for i, p := range paras {
		if strings.TrimSpace(p) == "" {
			continue
		}
		lines := strings.SplitAfter(p, "\n")
		blocks = append(blocks, document.NewMemoryBlock(fmt.Sprintf("b%d", i), lines...))
	}
	return blocks
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
