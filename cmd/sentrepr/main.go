package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"sentrepr/internal/config"
	"sentrepr/internal/logger"
	"sentrepr/internal/service"
	"sentrepr/internal/summarizer"
	"sentrepr/internal/tui"
	"sentrepr/internal/vectorstore/memory"
)

var (
	cfgPath  string
	verbose  bool
	strategy string
	cfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "sentrepr",
	Short:         "Represent sentences as fixed-width vectors",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath == "" {
			cfg, _, err = config.LoadDefault()
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if strategy != "" {
			cfg.Strategy = strategy
		}
		if verbose {
			cfg.Verbose = true
		}
		logger.SetVerbose(cfg.Verbose)
		return cfg.Validate()
	},
}

var runCmd = &cobra.Command{
	Use:   "run file1.txt [file2.txt ...]",
	Short: "Represent the sentences (one per line) and report which were kept",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, report, err := ingest(args)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), svc, report)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse file1.txt [file2.txt ...]",
	Short: "Browse sentences and their nearest neighbours",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, report, err := ingest(args)
		if err != nil {
			return err
		}
		header := fmt.Sprintf("sentrepr  %s  %d/%d kept  dim %d", report.Strategy, report.Kept, report.Total, report.Dimension)
		m := tui.New(svc, header, summaryText(svc, report), cfg.Search.TopK)
		_, err = tea.NewProgram(m).Run()
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pp.Fprintln(cmd.OutOrStdout(), cfg)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (.yaml or .toml); defaults to $SENTREPR_CONFIG, ./sentrepr.yaml, ~/.config/sentrepr/config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", "", "override the configured strategy (tfidf, bigram, sum, mean, weighted, sif)")
	rootCmd.AddCommand(runCmd, browseCmd, configCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func ingest(paths []string) (*service.Pipeline, service.Report, error) {
	res, err := loadResources(cfg)
	if err != nil {
		return nil, service.Report{}, err
	}
	svc := service.NewPipeline(cfg.Strategy, res, memory.NewStorage(), summarizer.NewCentroidSummarizer(), cfg.Summarizer.MaxSentences)
	report, err := svc.IngestDocuments(paths)
	if err != nil {
		return nil, service.Report{}, fmt.Errorf("ingest failed: %w", err)
	}
	return svc, report, nil
}

func printReport(w io.Writer, svc *service.Pipeline, report service.Report) {
	fmt.Fprintf(w, "run:       %s\n", report.RunID)
	fmt.Fprintf(w, "strategy:  %s\n", report.Strategy)
	fmt.Fprintf(w, "kept:      %d of %d\n", report.Kept, report.Total)
	fmt.Fprintf(w, "dimension: %d\n", report.Dimension)
	fmt.Fprintf(w, "dropped:   %s\n", joinInts(report.Dropped))
	fmt.Fprintln(w, "summary:")
	fmt.Fprintln(w, summaryText(svc, report))
}

func summaryText(svc *service.Pipeline, report service.Report) string {
	sentences := svc.Sentences()
	lines := make([]string, len(report.Summary))
	for i, idx := range report.Summary {
		lines[i] = fmt.Sprintf("  [%d] %s", idx, sentences[idx].Text)
	}
	return strings.Join(lines, "\n")
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
