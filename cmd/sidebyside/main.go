package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/KrUtHi96/sidebyside/internal/compare"
	"github.com/KrUtHi96/sidebyside/internal/extract"
	"github.com/KrUtHi96/sidebyside/internal/pdfsource"
	"github.com/KrUtHi96/sidebyside/internal/report"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sidebyside",
		Short: "Compare numbered regulatory clauses across two PDF documents",
		Long: `sidebyside extracts the clause tree from two IFRS/AASB-style PDF
documents, aligns clauses by identifier and reports word, sentence and
paragraph level differences.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func compareCmd() *cobra.Command {
	var (
		granularity string
		outPath     string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "compare <base.pdf> <compared.pdf>",
		Short: "Compare two regulation PDFs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := compare.ParseGranularity(granularity)
			if !ok {
				return fmt.Errorf("granularity must be word, sentence or paragraph")
			}

			logLevel := slog.LevelWarn
			if quiet {
				logLevel = slog.LevelError
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

			result, err := runCompare(cmd.Context(), args[0], args[1], log)
			if err != nil {
				return err
			}

			if outPath != "" {
				return writeReport(result, g, outPath)
			}
			printSummary(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "word", "diff granularity: word, sentence or paragraph")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write a report instead of a summary (.pdf, .html or .md)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress extraction warnings")
	return cmd
}

func runCompare(ctx context.Context, basePath, comparedPath string, log *slog.Logger) (*compare.Result, error) {
	baseData, err := os.ReadFile(basePath)
	if err != nil {
		return nil, err
	}
	comparedData, err := os.ReadFile(comparedPath)
	if err != nil {
		return nil, err
	}

	opts := extract.DefaultOptions()

	var (
		wg               sync.WaitGroup
		baseDoc, compDoc *extract.Document
		baseErr, compErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		baseDoc, baseErr = pdfsource.Extract(ctx, baseData, extract.SideBase, opts, log)
	}()
	go func() {
		defer wg.Done()
		compDoc, compErr = pdfsource.Extract(ctx, comparedData, extract.SideCompared, opts, log)
	}()
	wg.Wait()

	if baseErr != nil {
		return nil, fmt.Errorf("extract %s: %w", basePath, baseErr)
	}
	if compErr != nil {
		return nil, fmt.Errorf("extract %s: %w", comparedPath, compErr)
	}
	return compare.Compare(baseDoc, compDoc), nil
}

func writeReport(result *compare.Result, g compare.Granularity, outPath string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".pdf":
		data, err = report.PDF(result, g)
	case ".html", ".htm":
		data, err = report.HTML(result, g)
	case ".md", ".markdown":
		data = report.Markdown(result, g)
	default:
		return fmt.Errorf("unsupported report extension %q (use .pdf, .html or .md)", filepath.Ext(outPath))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func printSummary(cmd *cobra.Command, result *compare.Result) {
	counts := map[compare.RowStatus]int{}
	for _, row := range result.Rows {
		counts[row.Status]++
	}
	cmd.Printf("Sections: %d\n", len(result.Sections))
	cmd.Printf("Rows: %d (unchanged %d, changed %d, added %d, removed %d, ambiguous %d)\n",
		len(result.Rows),
		counts[compare.StatusUnchanged],
		counts[compare.StatusChanged],
		counts[compare.StatusAdded],
		counts[compare.StatusRemoved],
		counts[compare.StatusAmbiguous],
	)

	for _, row := range result.Rows {
		if row.Status == compare.StatusUnchanged {
			continue
		}
		cmd.Printf("  %-10s %s\n", row.Status, row.Key)
	}
}
