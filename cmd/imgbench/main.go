package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/perf-lab/imgbench/benchmark"
	"github.com/perf-lab/imgbench/decompress"
	"github.com/perf-lab/imgbench/ondemand"
	"github.com/perf-lab/imgbench/plot"
)

// decompressLogName is the CSV log consumed by the plot mode.
const decompressLogName = "decompresslog.csv"

func main() {
	var (
		configFile = flag.String("config", "", "Path to a JSON benchmark configuration file")
		imageDir   = flag.String("images", "", "Path to the image directory (overrides config)")
		outputDir  = flag.String("output", "", "Output directory for logs and reports (overrides config)")
		mode       = flag.String("mode", "all", "What to run: decompress, load, plot, or all")
		timeout    = flag.Duration("timeout", 30*time.Minute, "Benchmark timeout duration")
	)
	flag.Parse()

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05",
		}),
	)

	cfg := benchmark.DefaultConfig()
	if *configFile != "" {
		loaded, err := benchmark.LoadConfig(*configFile)
		if err != nil {
			logger.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *imageDir != "" {
		cfg.ImageDir = *imageDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	var err error
	switch *mode {
	case "decompress":
		err = runDecompress(ctx, cfg, logger)
	case "load":
		err = runLoad(ctx, cfg, logger)
	case "plot":
		err = runPlot(cfg, logger)
	case "all":
		if err = runDecompress(ctx, cfg, logger); err == nil {
			if err = runLoad(ctx, cfg, logger); err == nil {
				err = runPlot(cfg, logger)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n\n", *mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
	logger.Info("benchmark completed", "duration", time.Since(start))
}

func runDecompress(ctx context.Context, cfg benchmark.Config, logger *slog.Logger) error {
	logPath := filepath.Join(cfg.OutputDir, decompressLogName)
	log, err := benchmark.CreateResultLog(logPath)
	if err != nil {
		return err
	}
	defer log.Close()

	runner := &decompress.Runner{Config: cfg, Log: log, Logger: logger}
	if err := runner.Run(ctx); err != nil {
		return err
	}

	summary := benchmark.NewSummary(cfg, runner.Rows(), runner.Memory())
	summaryPath, err := summary.Save(cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("decompression results saved", "log", logPath, "summary", summaryPath)
	return nil
}

func runLoad(ctx context.Context, cfg benchmark.Config, logger *slog.Logger) error {
	runner := &ondemand.Runner{Config: cfg, Logger: logger}
	if err := runner.Run(ctx); err != nil {
		return err
	}

	reportPath := filepath.Join(cfg.OutputDir, "speedup_report.txt")
	f, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := runner.WriteReport(f); err != nil {
		return err
	}
	logger.Info("load report saved", "path", reportPath)
	return nil
}

func runPlot(cfg benchmark.Config, logger *slog.Logger) error {
	logPath := filepath.Join(cfg.OutputDir, decompressLogName)
	if err := plot.Render(logPath, cfg.OutputDir); err != nil {
		return err
	}
	logger.Info("charts rendered",
		"speedup", filepath.Join(cfg.OutputDir, plot.SpeedupChartFile),
		"efficiency", filepath.Join(cfg.OutputDir, plot.EfficiencyChartFile))
	return nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Benchmark tool comparing sequential and concurrent image I/O.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(
			os.Stderr,
			"  %s -images ./images -output ./benchmark_results -mode decompress\n",
			filepath.Base(os.Args[0]),
		)
		fmt.Fprintf(
			os.Stderr,
			"  %s -config ./benchmark_config.json -mode all\n",
			filepath.Base(os.Args[0]),
		)
		fmt.Fprintf(
			os.Stderr,
			"  %s -output ./benchmark_results -mode plot\n",
			filepath.Base(os.Args[0]),
		)
	}
}
