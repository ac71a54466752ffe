package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/actionboard-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ActionBoard configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		if cfg.Source != "" {
			fmt.Fprintf(w, "source: %s\n", cfg.Source)
		} else {
			fmt.Fprintln(w, "source: (sample data)")
		}
		fmt.Fprintf(w, "cache_ttl_sec: %d\n", cfg.CacheTTLSec)
		if cfg.XLSXSheet != "" {
			fmt.Fprintf(w, "xlsx_sheet: %s\n", cfg.XLSXSheet)
		}
		fmt.Fprintf(w, "top_reasons: %d\n", cfg.TopReasons)
		fmt.Fprintf(w, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(w, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(w, "retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		fmt.Fprintf(w, "retry_base_delay_ms: %d\n", cfg.RetryBaseDelayMs)
		fmt.Fprintf(w, "retry_max_delay_ms: %d\n", cfg.RetryMaxDelayMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the file as stored, without flag overrides.
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "source":
			c.Source = val
		case "xlsx_sheet":
			c.XLSXSheet = val
		case "listen_addr":
			c.ListenAddr = val
		case "cache_ttl_sec":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.CacheTTLSec = i
		case "top_reasons":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.TopReasons = i
		case "http_timeout_sec":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.RetryBaseDelayMs = i
		case "retry_max_delay_ms":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.RetryMaxDelayMs = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}
