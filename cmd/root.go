package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/actionboard-cli/internal/config"
	"github.com/KaramelBytes/actionboard-cli/internal/loader"
	"github.com/KaramelBytes/actionboard-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	flagSource string
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "actionboard",
	Short: "ActionBoard CLI: disciplinary action dashboard for college monitoring sheets",
	Long: `ActionBoard loads the monthly disciplinary-action sheet of the Higher Education
Department (a published Google Sheet link, a local CSV/TSV/XLSX file, or the
built-in sample data) and reports KPIs, action breakdowns and top reasons, as
text, JSON, or a local web dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Reload configuration before every command run
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.actionboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "published sheet URL or local CSV/TSV/XLSX path (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("source") {
		cfg.Source = flagSource
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
	debugf("config: source=%q cache_ttl=%s http_timeout=%s retries=%d", cfg.Source, cfg.CacheTTL(), cfg.HTTPTimeout(), cfg.RetryMaxAttempts)
}

// settings returns the loaded configuration, or zero values (which every
// consumer maps to its defaults) when loading failed.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return &cfgpkg.Global{}
	}
	return cfg
}

// resolveSource picks the locator: positional argument, then --source/config.
func resolveSource(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return settings().Source
}

func newLoader() *loader.Loader {
	c := settings()
	return loader.New(loader.Options{
		TTL:     c.CacheTTL(),
		Fetcher: loader.NewHTTPFetcher(c.HTTPTimeout(), c.RetryMaxAttempts, c.RetryBaseDelay(), c.RetryMaxDelay()),
		Parse:   parser.Options{Sheet: c.XLSXSheet},
		Logf:    debugf,
	})
}

func debugf(format string, args ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}
