package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mfreeman/picbind/internal/config"
	"github.com/mfreeman/picbind/internal/domain"
	"github.com/mfreeman/picbind/internal/log"
	"github.com/mfreeman/picbind/internal/service"
	"github.com/mfreeman/picbind/internal/source/picsum"
	"github.com/mfreeman/picbind/internal/source/unsplash"
	"github.com/mfreeman/picbind/internal/store"
	"github.com/mfreeman/picbind/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("picbind %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting picbind", "version", Version, "source", cfg.Source.Type)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	kv, err := store.NewBoltStore(config.DataDir())
	if err != nil {
		return fmt.Errorf("failed to open assignment store: %w", err)
	}
	defer kv.Close()

	source, err := newImageSource(cfg, logger)
	if err != nil {
		return err
	}

	prefetcher := service.NewPrefetcher(source, cfg.Source.Query,
		cfg.Prefetch.PageSize, cfg.Prefetch.LowWater, logger)
	assignments := service.NewAssignmentService(kv, logger)

	model := tui.NewModel(prefetcher, assignments, cfg.UI, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newImageSource constructs the configured source adapter
func newImageSource(cfg *config.Config, logger *slog.Logger) (domain.ImageSource, error) {
	switch cfg.Source.Type {
	case config.SourceTypeUnsplash:
		return unsplash.NewClient(unsplash.DefaultBaseURL, cfg.Source.AccessKey, logger), nil
	case config.SourceTypePicsum, "":
		return picsum.NewSource(), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}

// runSetupFlow prompts for the Unsplash access key the first time the
// unsplash source is selected without credentials.
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to picbind!")
	fmt.Println()
	fmt.Println("The unsplash source needs an API access key (https://unsplash.com/developers).")
	fmt.Println("Leave it empty to use the offline picsum source instead.")
	fmt.Println()
	fmt.Print("Access key: ")

	// Echo off; the key is a credential
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read access key: %w", err)
	}

	accessKey := strings.TrimSpace(string(keyBytes))
	if accessKey == "" {
		cfg.Source.Type = config.SourceTypePicsum
	} else {
		cfg.Source.AccessKey = accessKey
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run picbind again to start the application.")

	return nil
}
