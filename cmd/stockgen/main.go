package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mahmudulbisd/stockgen-ai-pro/config"
	"github.com/mahmudulbisd/stockgen-ai-pro/export"
	"github.com/mahmudulbisd/stockgen-ai-pro/history"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/app"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/logging"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
	"github.com/spf13/pflag"
)

// autoCSV asks for a generated stock_metadata_<ms>.csv name.
const autoCSV = "auto"

type generator interface {
	GenerateStockAssets(ctx context.Context, cfg models.GeneratorConfig) ([]models.StockAssetVariation, error)
}

type options struct {
	niche         string
	quantity      int
	temperature   float64
	noTitle       bool
	noDescription bool
	noKeywords    bool
	noPrompt      bool
	csv           string
	last          bool
	configPath    string
	logLevel      string
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	defaults := models.DefaultGeneratorConfig()
	var opts options

	fs := pflag.NewFlagSet("stockgen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.niche, "niche", "n", "", "topic to generate stock metadata for")
	fs.IntVarP(&opts.quantity, "quantity", "q", defaults.Quantity, "number of variations (1-10)")
	fs.Float64VarP(&opts.temperature, "temperature", "t", defaults.Temperature, "creativity (0.0-1.5)")
	fs.BoolVar(&opts.noTitle, "no-title", false, "omit titles")
	fs.BoolVar(&opts.noDescription, "no-description", false, "omit descriptions")
	fs.BoolVar(&opts.noKeywords, "no-keywords", false, "omit keywords")
	fs.BoolVar(&opts.noPrompt, "no-prompt", false, "omit image prompts")
	fs.StringVar(&opts.csv, "csv", "", `write results as CSV to this path ("auto" picks a name)`)
	fs.BoolVar(&opts.last, "last", false, "show the most recently saved results instead of generating")
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (o options) generatorConfig() models.GeneratorConfig {
	return models.GeneratorConfig{
		Niche:       o.niche,
		Temperature: o.temperature,
		Quantity:    o.quantity,
		Assets: models.AssetToggles{
			Title:       !o.noTitle,
			Description: !o.noDescription,
			Keywords:    !o.noKeywords,
			Prompt:      !o.noPrompt,
		},
	}
}

func run(opts options) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := app.NewLogger(cfg, os.Stderr, true)
	if err != nil {
		return err
	}
	store := history.NewStore(cfg.History.Path)

	if opts.last {
		return showLast(store, opts, os.Stdout, time.Now)
	}

	c, err := app.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	return generate(ctx, c, store, logger, opts, os.Stdout, time.Now)
}

// generate runs one batch, prints it and saves it. A failed batch leaves the
// saved results untouched.
func generate(ctx context.Context, gen generator, store *history.Store, logger logging.Logger, opts options, stdout io.Writer, now func() time.Time) error {
	cfg := opts.generatorConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	variations, err := gen.GenerateStockAssets(ctx, cfg)
	if err != nil {
		return err
	}

	printVariations(stdout, variations)

	if err := store.Save(variations); err != nil {
		logger.Warnf("Could not save results: %v", err)
	}

	if opts.csv != "" {
		return writeCSV(opts.csv, variations, stdout, now)
	}
	return nil
}

func showLast(store *history.Store, opts options, stdout io.Writer, now func() time.Time) error {
	variations, err := store.Load()
	if err != nil {
		return err
	}
	if len(variations) == 0 {
		fmt.Fprintln(stdout, "No saved results.")
		return nil
	}

	printVariations(stdout, variations)

	if opts.csv != "" {
		return writeCSV(opts.csv, variations, stdout, now)
	}
	return nil
}

func writeCSV(path string, variations []models.StockAssetVariation, stdout io.Writer, now func() time.Time) error {
	if path == autoCSV {
		path = export.FileName(now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV: %w", err)
	}
	if err := export.Write(f, variations); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	fmt.Fprintf(stdout, "CSV saved to %s\n", path)
	return nil
}

// printVariations writes one block per variation. Empty fields are not shown.
func printVariations(w io.Writer, variations []models.StockAssetVariation) {
	for i, v := range variations {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "=== Set %d ===\n", v.VariationIndex)
		printField(w, "SEO Title", v.Title)
		printField(w, "AI Image Prompt", v.ImagePrompt)
		printField(w, "Keywords (40 tags)", v.Keywords)
		printField(w, "Description", v.Description)
	}
}

func printField(w io.Writer, label string, value *string) {
	if models.Deref(value) == "" {
		return
	}
	fmt.Fprintf(w, "%s:\n  %s\n", label, *value)
}
