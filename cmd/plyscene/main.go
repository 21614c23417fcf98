package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/leengari/ply-scene/internal/config"
	"github.com/leengari/ply-scene/internal/engine"
	"github.com/leengari/ply-scene/internal/logging"
	"github.com/leengari/ply-scene/internal/parser"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	baseDir    string
	logLevel   string

	cfg     *config.Config
	logger  *slog.Logger
	tp      *sdktrace.TracerProvider
	closeFn func()
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "plyscene",
		Short:         "Load ASCII PLY meshes and prepare them for rendering",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "scene config file (TOML)")
	root.PersistentFlags().StringVarP(&a.baseDir, "dir", "d", ".", "directory relative paths resolve against")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level")

	root.AddCommand(
		newInspectCmd(a),
		newMeshCmd(a),
		newConvertCmd(a),
		newFrameCmd(a),
		newReplCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		if _, err := logging.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	a.logger, a.closeFn = logging.SetupLogger(cfg.Log)
	slog.SetDefault(a.logger)
	a.tp = logging.NewTracerProvider(a.logger)
	return nil
}

func (a *app) shutdown() {
	if a.tp != nil {
		if err := a.tp.Shutdown(context.Background()); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}
	if a.closeFn != nil {
		a.closeFn()
	}
}

// newEngine wires the logging and tracing observers into a fresh engine
func (a *app) newEngine() *engine.Engine {
	eng := engine.New(a.baseDir, parser.Options{Strict: a.cfg.Parser.Strict, Logger: a.logger})
	eng.AddObserver(engine.NewLoggingObserver())
	eng.AddObserver(engine.NewTracingObserver(a.tp))
	return eng
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}
