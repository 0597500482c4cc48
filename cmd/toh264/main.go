// Command toh264 transcodes one media file to H.264/AAC in MP4 with ffmpeg,
// either in a single constant-quality pass or in two passes aimed at a
// target file size.
//
// It parses flags, loads settings, validates the configuration, and either
// runs system diagnostics (--check) or the transcode pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/check"
	"github.com/backmassage/toh264/internal/config"
	"github.com/backmassage/toh264/internal/display"
	"github.com/backmassage/toh264/internal/ffmpeg"
	"github.com/backmassage/toh264/internal/logging"
	"github.com/backmassage/toh264/internal/pipeline"
	"github.com/backmassage/toh264/internal/probe"
	"github.com/backmassage/toh264/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

var errCheckFailed = errors.New("system check failed")

// loggedError marks an error the logger has already reported.
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.DefaultConfig()
	cmd := newRootCommand(&cfg)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var le loggedError
	if !errors.As(err, &le) {
		reportBootstrapError(os.Stderr, term.Resolve(cfg.ColorMode, os.Stderr), err)
	}
	return apperr.ExitCode(err)
}

// reportBootstrapError logs a failure raised before execute opened the
// configured logger, through a console-only logger on w.
func reportBootstrapError(w io.Writer, p term.Palette, err error) {
	log := logging.New(w, w, p, false)
	log.Error("%v", err)
	if !apperr.IsValidation(err) {
		log.Error("Run 'toh264 --help' for usage.")
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toh264 --in PATH --out PATH (--constant-rate-factor CRF | --target-size MB) --audio-bitrate KBPS",
		Short: "Transcode a video to H.264/AAC MP4 with ffmpeg",
		Long: "toh264 derives the ffmpeg invocations for an H.264 (libx264) and AAC encode\n" +
			"and runs them: one constant-quality pass, or two passes aimed at a target size.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.DefineFlags(cmd, cfg)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		settings, err := config.LoadSettings(cfg.SettingsFile)
		if err != nil {
			return err
		}
		settings.Apply(cfg, flags.Changed)
		flags.ApplyNegated()

		if err := cfg.Validate(); err != nil {
			return err
		}
		return execute(cmd.Context(), cfg)
	}
	return cmd
}

// execute runs once the configuration is valid; every error it returns has
// been logged.
func execute(ctx context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	// Logger available: all output goes through log from here on.
	display.PrintBanner(os.Stdout, term.Resolve(cfg.ColorMode, os.Stdout))

	if cfg.CheckOnly {
		if !check.RunCheck(cfg, log) {
			return loggedError{errCheckFailed}
		}
		return nil
	}

	log.Info("=== toh264 v%s (%s) ===", version, commit)
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be encoded")
	}

	// Fail fast if ffmpeg/ffprobe or the encoders are unavailable.
	if err := check.CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return loggedError{err}
	}

	r := &pipeline.Runner{
		Config:  cfg,
		Prober:  probe.Prober{Bin: cfg.FfprobePath},
		Encoder: ffmpeg.Executor{Bin: cfg.FfmpegPath, Stderr: os.Stderr},
		Log:     log,
	}
	if _, err := r.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
		}
		pipeline.LogFailure(log, err)
		return loggedError{err}
	}
	return nil
}
