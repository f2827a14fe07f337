package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdeprey/slate-grammar-demo/internal/rules"
	"github.com/rdeprey/slate-grammar-demo/internal/rulestore"
)

var (
	ruleMessage     string
	ruleReplacement string
)

// rulesCmd manages the persisted user rule set.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage user-defined correction rules",
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Add a rule",
	Long: `Add a user rule. The pattern is a regular expression matched against the
flattened block text. A rule without --replacement surfaces as a message-only
suggestion. Malformed patterns are stored but skipped at analysis time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		r, err := store.Add(cmd.Context(), rules.Definition{
			Pattern:     args[0],
			Message:     ruleMessage,
			Replacement: ruleReplacement,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added rule %s\n", r.ID)
		return nil
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stored, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			fmt.Println("no rules")
			return nil
		}
		for _, r := range stored {
			repl := r.Replacement
			if repl == "" {
				repl = "(message only)"
			}
			fmt.Printf("%s  %s -> %s  %s\n", r.ID, r.Pattern, repl, r.Message)
		}
		return nil
	},
}

var rulesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("removed")
		return nil
	},
}

func openStore() (*rulestore.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return rulestore.Open(cfg.Rules.DatabasePath)
}

func init() {
	rulesAddCmd.Flags().StringVarP(&ruleMessage, "message", "m", "", "message shown with each hit")
	rulesAddCmd.Flags().StringVarP(&ruleReplacement, "replacement", "r", "", "literal replacement text")

	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesRmCmd)
}
