package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/charpick/internal/app"
	"github.com/llehouerou/charpick/internal/config"
	"github.com/llehouerou/charpick/internal/errmsg"
	"github.com/llehouerou/charpick/internal/logger"
	"github.com/llehouerou/charpick/internal/rickmorty"
	"github.com/llehouerou/charpick/internal/ui/autocomplete"
	"github.com/llehouerou/charpick/internal/ui/portrait"
)

var version = "0.1.0"

// flags holds command-line overrides; zero values leave the config alone.
var flags struct {
	configPath string
	apiURL     string
	debounce   time.Duration
	logLevel   string
	portraits  string
}

var rootCmd = &cobra.Command{
	Use:   "charpick",
	Short: "Pick Rick and Morty characters from the terminal",
	Long: "charpick searches the Rick and Morty character API as you type and lets you " +
		"select any number of characters. The selection is printed to stdout on exit, one per line.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPicker,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "charpick %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (TOML)")
	pf.StringVar(&flags.apiURL, "api-url", "", "character search endpoint")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "quiet period before searching (e.g. 300ms)")
	rootCmd.Flags().StringVar(&flags.portraits, "portraits", "", "character portraits: auto, kitty or none")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpConfigLoad, err)
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.debounce > 0 {
		cfg.Search.DebounceMS = int(flags.debounce / time.Millisecond)
	}
	if flags.portraits != "" {
		cfg.UI.Portraits = flags.portraits
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpConfigLoad, err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *rickmorty.Client {
	return rickmorty.New(
		rickmorty.WithBaseURL(cfg.API.BaseURL),
		rickmorty.WithTimeout(cfg.Timeout()),
	)
}

func runPicker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Dir:        cfg.LogDir(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpLogOpen, err)
	}
	defer log.Close()

	client := newClient(cfg)
	widgetCfg := autocomplete.Config{
		Searcher:   client,
		Debounce:   cfg.Debounce(),
		MaxVisible: cfg.Search.MaxVisible,
		Logger:     log.WithComponent("autocomplete").Logger,
	}
	if portrait.Enabled(cfg.PortraitMode()) {
		widgetCfg.Images = client
	}

	log.Info().
		Str("api", client.BaseURL()).
		Dur("debounce", cfg.Debounce()).
		Bool("portraits", widgetCfg.Images != nil).
		Msg("starting")

	root := app.New(autocomplete.New(widgetCfg), log.WithComponent("app").Logger)
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}

	m, ok := final.(app.Model)
	if !ok {
		return nil
	}
	m.Widget.Teardown()

	out := cmd.OutOrStdout()
	for _, label := range m.Selected() {
		fmt.Fprintln(out, label)
	}
	log.Info().Int("selected", len(m.Selected())).Msg("exiting")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
