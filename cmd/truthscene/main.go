// truthscene - animated KPI landing scene in your terminal.
//
// Controls:
//
//	Scroll / j,k - Scroll the landing page
//	PgUp/PgDn    - Scroll a full viewport
//	Enter, D     - Enter the dashboard
//	Esc, L       - Return to the landing page
//	?            - Toggle HUD overlay
//	Q, Ctrl+C    - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/truthscene/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
	targetFPS  int
	sound      bool
	coreModel  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "truthscene",
	Short: "Animated KPI landing scene for the terminal",
	Long: `truthscene renders the landing page scene of a KPI dashboard: a layered
core that sinks as you scroll, drifting particles, section accents that
reveal with progress, and the fly-through into the dashboard.

Run without a subcommand to open the interactive view.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if logger, err = newLogger(cfg, true); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		return runInteractive(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&targetFPS, "fps", 0, "Target FPS (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&sound, "sound", false, "Play intro chimes")
	rootCmd.PersistentFlags().StringVar(&coreModel, "core-model", "", "GLB model replacing a core layer")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Render.FPS = targetFPS
	}
	if flags.Changed("sound") {
		cfg.Sound.Enabled = sound
	}
	if flags.Changed("core-model") {
		cfg.Render.CoreModel = coreModel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s:\n%w", configPath, err)
	}
	return cfg, nil
}

// newLogger builds the session logger. The interactive view owns the
// terminal, so it logs to a file only.
func newLogger(cfg *config.Config, toFile bool) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if toFile {
		zc.OutputPaths = []string{cfg.Logging.File}
		zc.ErrorOutputPaths = []string{cfg.Logging.File}
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log.With(zap.String("session", uuid.NewString())), nil
}
