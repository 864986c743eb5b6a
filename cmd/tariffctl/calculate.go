package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"porttariff/internal/domain"
	"porttariff/internal/export"
	"porttariff/internal/service"
)

var (
	calcVesselFile string
	calcDues       []string
	calcQuery      string
	calcDebug      bool
	calcJSON       bool
	calcXLSX       string
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate dues for one vessel call",
	Long: `Calculates dues for the vessel described in --vessel-file ("-" reads stdin).

Dues are selected with --dues (exact names, comma separated), with a free-text
--query such as "pilotage and towage", or default to every supported due.

Example:
  tariffctl calculate --vessel-file sudestada.txt --query "port and light dues"`,
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&calcVesselFile, "vessel-file", "f", "-", "file with the vessel particulars, - for stdin")
	calculateCmd.Flags().StringSliceVarP(&calcDues, "dues", "d", nil, "dues to calculate (default all)")
	calculateCmd.Flags().StringVarP(&calcQuery, "query", "q", "", "free-text due request, e.g. \"pilotage\"")
	calculateCmd.Flags().BoolVar(&calcDebug, "debug", false, "include generated code and execution results")
	calculateCmd.Flags().BoolVar(&calcJSON, "json", false, "print results as a JSON object")
	calculateCmd.Flags().StringVar(&calcXLSX, "xlsx", "", "also write results to this XLSX file")
	calculateCmd.MarkFlagsMutuallyExclusive("dues", "query")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	vessel, err := readVesselInfo(cmd.InOrStdin(), calcVesselFile)
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	requested := calcDues
	if calcQuery != "" {
		resolution := app.Calculator.ResolveRequest("calculate " + calcQuery)
		if !resolution.Matched {
			fmt.Fprintln(cmd.OutOrStdout(), resolution.Message)
			return fmt.Errorf("%w: %q", domain.ErrNoMatchingDues, calcQuery)
		}
		requested = domain.DueNames(resolution.Dues)
	}

	results, err := app.Calculator.Calculate(cmd.Context(), &service.CalculateInput{
		VesselInfo:    vessel,
		RequestedDues: requested,
		Debug:         calcDebug,
	})
	if err != nil {
		return err
	}

	if err := printResults(cmd.OutOrStdout(), results, calcJSON); err != nil {
		return err
	}

	if calcXLSX != "" {
		f, err := os.Create(calcXLSX)
		if err != nil {
			return fmt.Errorf("creating %s: %w", calcXLSX, err)
		}
		defer f.Close()
		if err := export.WriteResults(f, vessel, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", calcXLSX)
	}
	return nil
}

func readVesselInfo(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" || path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading vessel info: %w", err)
	}

	vessel := strings.TrimSpace(string(data))
	if vessel == "" {
		return "", errors.New("no vessel info provided")
	}
	return vessel, nil
}

func printResults(w io.Writer, results *domain.ResultSet, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]*domain.ResultSet{"results": results})
	}
	for _, line := range results.Lines() {
		fmt.Fprintf(w, "• %s: %s\n", line.Name, line.Amount)
	}
	return nil
}
