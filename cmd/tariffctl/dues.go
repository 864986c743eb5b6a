package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"porttariff/internal/domain"
	"porttariff/internal/dues"
)

var duesCmd = &cobra.Command{
	Use:   "dues [request]",
	Short: "List supported dues, or show which dues a request matches",
	Long: `Without arguments, lists every due tariffctl can calculate.
With a request such as "vessel traffic and pilotage", shows the dues it resolves to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := domain.Catalog()
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), dues.Describe(catalog))
			return nil
		}

		request := dues.ParseCommand(strings.Join(args, " "))
		matched := catalog
		if !request.All {
			matched = dues.Resolve(request.Text, catalog)
		}
		if len(matched) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ No matching dues found for '%s'. %s\n", request.Text, dues.Describe(catalog))
			return nil
		}
		for _, d := range matched {
			fmt.Fprintf(cmd.OutOrStdout(), "• %s\n", d)
		}
		return nil
	},
}
