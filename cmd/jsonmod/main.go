// Command jsonmod is a standalone host for the JSON document engine: a
// line-oriented command shell that reads JSON.* commands from stdin (or
// a script file) and dispatches them to a [command.Engine], the way an
// embedding host's command table would.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.jsondoc.dev/jsondoc/command"
	"go.jsondoc.dev/jsondoc/config"
	"go.jsondoc.dev/jsondoc/hostcmd"
	"go.jsondoc.dev/jsondoc/log"
	"go.jsondoc.dev/jsondoc/profile"
	"go.jsondoc.dev/jsondoc/version"
)

func main() {
	cfg := config.NewConfig()
	profileCfg := profile.NewConfig()
	logCfg := log.NewConfig()

	var snapshotPath string

	rootCmd := &cobra.Command{
		Use:   "jsonmod [flags] [script ...]",
		Short: "Run JSON document commands against an in-process engine",
		Long: `jsonmod hosts the JSON document engine outside of any particular server.
It reads JSON.* commands one per line from the given script files, or from
stdin if none are given, and prints each command's reply.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       fmt.Sprintf("%s (%s, built %s)", version.Version, version.Revision, version.BuildDate),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, profileCfg, logCfg, snapshotPath, args)
		},
	}

	flags := rootCmd.Flags()
	cfg.RegisterFlags(flags)
	profileCfg.RegisterFlags(flags)
	logCfg.RegisterFlags(flags)
	flags.StringVar(&snapshotPath, "snapshot", "", "path to load a snapshot from at startup and save to on exit")

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, profileCfg *profile.Config, logCfg *log.Config, snapshotPath string, scripts []string) error {
	if err := cfg.Resolve(); err != nil {
		return err
	}

	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	prof := profileCfg.NewProfiler()
	if err := prof.Start(); err != nil {
		return err
	}

	defer func() {
		if err := prof.Stop(); err != nil {
			logger.Error("stopping profiler", "error", err)
		}
	}()

	eng := command.New(cfg.Limits)

	if snapshotPath != "" {
		if data, err := os.ReadFile(snapshotPath); err == nil {
			if err := eng.Load(data); err != nil {
				return fmt.Errorf("loading snapshot %q: %w", snapshotPath, err)
			}

			logger.Info("loaded snapshot", "path", snapshotPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("reading snapshot %q: %w", snapshotPath, err)
		}
	}

	if len(scripts) == 0 {
		if err := runStream(eng, logger, snapshotPath, os.Stdin, os.Stdout); err != nil {
			return err
		}
	} else {
		for _, path := range scripts {
			f, err := os.Open(path) //nolint:gosec // script path is a CLI argument.
			if err != nil {
				return fmt.Errorf("opening script %q: %w", path, err)
			}

			err = runStream(eng, logger, snapshotPath, f, os.Stdout)
			closeErr := f.Close()

			if err != nil {
				return fmt.Errorf("running script %q: %w", path, err)
			}

			if closeErr != nil {
				return fmt.Errorf("closing script %q: %w", path, closeErr)
			}
		}
	}

	if snapshotPath != "" {
		f, err := os.Create(snapshotPath) //nolint:gosec // snapshot path is a CLI argument.
		if err != nil {
			return fmt.Errorf("creating snapshot %q: %w", snapshotPath, err)
		}

		saveErr := eng.Save(f)
		closeErr := f.Close()

		if saveErr != nil {
			return fmt.Errorf("saving snapshot %q: %w", snapshotPath, saveErr)
		}

		if closeErr != nil {
			return fmt.Errorf("closing snapshot %q: %w", snapshotPath, closeErr)
		}

		logger.Info("saved snapshot", "path", snapshotPath)
	}

	return nil
}

// runStream reads one command per line from r, dispatching each to eng
// and writing its reply to w. SAVE and DEBUG RELOAD are host-level
// commands (not JSON.* commands) handled here directly, since they need
// access to the snapshot file path rather than a single document.
func runStream(eng *command.Engine, logger *slog.Logger, snapshotPath string, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		tokens, err := hostcmd.Tokenize(line)
		if err != nil {
			fmt.Fprintf(w, "SYNTAXERR %v\n", err)

			continue
		}

		if len(tokens) == 0 {
			continue
		}

		if reply, handled, err := dispatchHostCommand(eng, snapshotPath, tokens); handled {
			if err != nil {
				fmt.Fprintf(w, "%v\n", err)
			} else {
				fmt.Fprintln(w, reply)
			}

			continue
		}

		reply, err := hostcmd.Dispatch(eng, tokens)
		if err != nil {
			logger.Debug("command failed", "line", line, "error", err)
			fmt.Fprintf(w, "%v\n", err)

			continue
		}

		fmt.Fprintln(w, reply)
	}

	return scanner.Err()
}

// dispatchHostCommand handles SAVE and DEBUG RELOAD, returning handled
// == false for anything else so the caller falls through to the
// ordinary JSON.* dispatch table.
func dispatchHostCommand(eng *command.Engine, snapshotPath string, tokens []string) (string, bool, error) {
	switch strings.ToUpper(tokens[0]) {
	case "SAVE":
		if snapshotPath == "" {
			return "", true, fmt.Errorf("ERROR no --snapshot path configured")
		}

		f, err := os.Create(snapshotPath) //nolint:gosec // snapshot path is a CLI argument.
		if err != nil {
			return "", true, fmt.Errorf("ERROR creating snapshot: %v", err)
		}

		saveErr := eng.Save(f)
		closeErr := f.Close()

		if saveErr != nil {
			return "", true, fmt.Errorf("ERROR saving snapshot: %v", saveErr)
		}

		if closeErr != nil {
			return "", true, fmt.Errorf("ERROR saving snapshot: %v", closeErr)
		}

		return "OK", true, nil

	case "DEBUG":
		if len(tokens) >= 2 && strings.EqualFold(tokens[1], "RELOAD") {
			if snapshotPath == "" {
				return "", true, fmt.Errorf("ERROR no --snapshot path configured")
			}

			data, err := os.ReadFile(snapshotPath) //nolint:gosec // snapshot path is a CLI argument.
			if err != nil {
				return "", true, fmt.Errorf("ERROR reading snapshot: %v", err)
			}

			if err := eng.Load(data); err != nil {
				return "", true, fmt.Errorf("ERROR reloading snapshot: %v", err)
			}

			return "OK", true, nil
		}
	}

	return "", false, nil
}
