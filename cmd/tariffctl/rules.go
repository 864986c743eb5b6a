package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	extractDues  []string
	extractPrint bool
)

var extractRulesCmd = &cobra.Command{
	Use:   "extract-rules",
	Short: "Extract tariff rules from the tariff PDF into the rules store",
	Long: `Sends the tariff PDF to the generator, asks for the rules behind each due
and saves the result to the configured rules store. Running servers pick up
the new rules on restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Fprintln(cmd.ErrOrStderr(), "🤖 Extracting rules from PDF...")
		rules, err := app.Rules.Extract(cmd.Context(), extractDues)
		if err != nil {
			return err
		}

		if extractPrint {
			fmt.Fprintln(cmd.OutOrStdout(), rules)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Rules extracted (%d bytes)\n", len(rules))
		return nil
	},
}

func init() {
	extractRulesCmd.Flags().StringSliceVarP(&extractDues, "dues", "d", nil, "dues to extract rules for (default all)")
	extractRulesCmd.Flags().BoolVar(&extractPrint, "print", false, "print the extracted rules")
}
