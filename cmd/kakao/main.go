// Package main provides the kakao CLI entry point.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kakao/internal/analysis"
	"kakao/internal/chart"
	"kakao/internal/config"
	"kakao/internal/dashboard"
	"kakao/internal/dataset"
	"kakao/internal/logging"
	"kakao/internal/report"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kakao",
		Short: "Analisis produksi dan pasar kakao Pulau Morotai",
		Long: `kakao summarises a regional cocoa production dataset.

Commands:
  • analyze  writes an Excel workbook, PNG charts and a Markdown strategy report
  • serve    runs the read-only dashboard`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kakao v%s (%s)\n", version, commit)
		},
	})

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write workbook, charts and report for a dataset",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().String("data", "", "CSV dataset path")
	analyzeCmd.Flags().String("out", "", "Output directory")
	analyzeCmd.Flags().Int("top", 0, "Regions shown in ranked charts and tables")
	rootCmd.AddCommand(analyzeCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().String("data", "", "CSV dataset path")
	serveCmd.Flags().String("addr", "", "Listen address (host:port)")
	serveCmd.Flags().Int("top", 0, "Regions shown in ranked charts")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

// loadConfig resolves config file, .env and environment, then applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath, _ = flags.GetString("data")
	}
	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("top") {
		cfg.TopN, _ = flags.GetInt("top")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "🍫 ANALISIS PRODUKSI DAN PASAR KAKAO PULAU MOROTAI")
	logger.Debug("configuration", slog.String("config", cfg.String()))

	table, err := dataset.LoadFile(cfg.DataPath, cfg.LoadOptions())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "📊 Data berhasil dibaca: %d records\n", table.Len())

	sum, err := analysis.Summarize(table)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", cfg.DataPath, err)
	}
	fmt.Fprintf(out, "🏛️  Ringkasan dibangun: %d wilayah (%d-%d)\n", sum.Regions, sum.FirstYear, sum.LastYear)
	if sum.Projection == nil {
		logger.Warn("projection skipped", slog.Int("years", len(sum.Yearly)))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := report.SaveWorkbook(filepath.Join(cfg.OutputDir, report.WorkbookFile), sum); err != nil {
		return err
	}
	fmt.Fprintf(out, "📈 File Excel berhasil dibuat: %s (%d wilayah)\n", report.WorkbookFile, sum.Regions)

	opts := chart.DefaultOptions()
	opts.TopN = cfg.TopN
	charts, err := chart.SaveAll(cfg.OutputDir, chart.Data{Table: table, Summary: sum}, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "🖼️  Grafik berhasil dibuat: %d file PNG\n", len(charts))

	if err := report.SaveMarkdown(filepath.Join(cfg.OutputDir, report.ReportFile), sum, cfg.TopN, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(out, "📋 Laporan strategis berhasil dibuat: %s\n", report.ReportFile)

	fmt.Fprintln(out, "\n✅ ANALISIS KAKAO SELESAI!")
	fmt.Fprintf(out, "📁 File Output (%s):\n", cfg.OutputDir)
	printFile(out, report.WorkbookFile)
	for _, path := range charts {
		printFile(out, filepath.Base(path))
	}
	printFile(out, report.ReportFile)
	return nil
}

func printFile(w io.Writer, name string) {
	fmt.Fprintf(w, "   - %s\n", name)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := dataset.LoadFile(cfg.DataPath, cfg.LoadOptions())
	if err != nil {
		return err
	}

	srv, err := dashboard.New(table, &dashboard.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		TopN:            cfg.TopN,
		CacheSize:       cfg.Cache.Size,
	}, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🚀 Starting kakao dashboard v%s\n", version)
	fmt.Fprintf(out, "   Data:     %s (%d records)\n", cfg.DataPath, table.Len())
	fmt.Fprintf(out, "   Address:  http://%s\n", cfg.Server.Addr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "👋 Dashboard stopped")
	return nil
}

