package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leengari/ply-scene/internal/engine"
	"github.com/leengari/ply-scene/internal/mesh"
	"github.com/leengari/ply-scene/internal/network"
	"github.com/leengari/ply-scene/internal/parser"
	"github.com/leengari/ply-scene/internal/repl"
	"github.com/leengari/ply-scene/internal/scene"
	"github.com/leengari/ply-scene/internal/storage"
	"github.com/leengari/ply-scene/internal/storage/watch"
	"github.com/leengari/ply-scene/internal/storage/writer"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|dir>",
		Short: "Print the header and element summary of a PLY file, or of every file in a directory",
		Args:  exactArgs(1, "<file|dir>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.newEngine()
			path := eng.Registry().Path(args[0])
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				tables, err := storage.LoadDirectory(path, parser.Options{Strict: a.cfg.Parser.Strict}, a.logger)
				if err != nil {
					return err
				}
				summary := make(map[string]storage.TableMeta, len(tables))
				for name, t := range tables {
					summary[name] = storage.DescribeTable(t)
				}
				return printJSON(cmd.OutOrStdout(), summary)
			}

			doc, err := eng.Open(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), storage.DescribeTable(doc.Table))
		},
	}
}

func newMeshCmd(a *app) *cobra.Command {
	var out, normals string

	cmd := &cobra.Command{
		Use:   "mesh <file>",
		Short: "Assemble a mesh and write its buffers as JSON",
		Args:  exactArgs(1, "<file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.newEngine()
			doc, err := eng.Open(args[0])
			if err != nil {
				return err
			}
			m, err := eng.Assemble(doc)
			if err != nil {
				return err
			}

			cp := *m
			if !cp.HasNormals() && normals != "none" {
				smooth := normals == "smooth"
				if !smooth && normals != "flat" {
					return fmt.Errorf("--normals must be none, flat or smooth, got %q", normals)
				}
				n, degenerate, err := mesh.SynthesizeNormals(&cp, smooth)
				if err != nil {
					return err
				}
				cp.Normals = n
				slog.Info("normals synthesized", slog.String("mode", normals), slog.Int("degenerate", degenerate))
			}

			if out == "" {
				return printJSON(cmd.OutOrStdout(), storage.DescribeMesh(doc.Name, &cp))
			}
			if err := writer.SaveMeshJSON(out, doc.Name, &cp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", cp.String(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().StringVar(&normals, "normals", "none", "synthesize missing normals: none, flat or smooth")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a PLY file in canonical ASCII form",
		Args:  exactArgs(2, "<in> <out>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.newEngine().Open(args[0])
			if err != nil {
				return err
			}
			if err := writer.SavePLY(args[1], doc.Table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d warnings in source)\n", args[1], len(doc.Table.Warnings))
			return nil
		},
	}
}

// meshLoader resolves model paths through the engine cache
func meshLoader(eng *engine.Engine) scene.MeshLoader {
	return func(path string) (*mesh.Mesh, error) {
		doc, err := eng.Open(path)
		if err != nil {
			return nil, err
		}
		return eng.Assemble(doc)
	}
}

func newFrameCmd(a *app) *cobra.Command {
	var dt float32

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Build the configured scene and print one frame of uniforms",
		Args:  exactArgs(0, ""),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.FromConfig(a.cfg, meshLoader(a.newEngine()))
			if err != nil {
				return err
			}
			if dt != 0 {
				s.Update(dt)
			}
			f, err := s.Frame()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().Float32Var(&dt, "update", 0, "advance the scene by this time step before the frame")
	return cmd
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive inspection shell",
		Args:  exactArgs(0, ""),
		Run: func(cmd *cobra.Command, args []string) {
			repl.Run(a.newEngine(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve inspection commands as newline-delimited JSON over TCP",
		Args:  exactArgs(0, ""),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return network.Start(a.cfg.Server.Port, a.newEngine())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file|dir>",
		Short: "Re-parse PLY files whenever they change",
		Args:  exactArgs(1, "<file|dir>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.newEngine()
			target, err := filepath.Abs(eng.Registry().Path(args[0]))
			if err != nil {
				return err
			}

			w, err := watch.New(time.Duration(a.cfg.Watch.DebounceMS)*time.Millisecond, func(path string, op fsnotify.Op) {
				refresh(eng, path, op)
			})
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Add(target); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = w.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
}

// refresh drops removed files from the cache and re-assembles changed ones
func refresh(eng *engine.Engine, path string, op fsnotify.Op) {
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if eng.Registry().Invalidate(path) {
			slog.Info("document dropped", slog.String("path", path))
		}
		return
	}

	doc, err := eng.Reload(path)
	if err != nil {
		slog.Error("reload failed", slog.String("path", path), slog.Any("error", err))
		return
	}
	m, err := eng.Assemble(doc)
	if err != nil {
		slog.Warn("document is not a mesh", slog.String("path", path), slog.Any("error", err))
		return
	}
	slog.Info("mesh updated", slog.String("path", path), slog.String("mesh", m.String()))
}
