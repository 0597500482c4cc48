// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, ffprobe, libx264, and AAC.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/toh264/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found")
	ErrFfprobeNotFound = errors.New("ffprobe not found")
	ErrX264Failed      = errors.New("libx264 test encode failed")
	ErrAACFailed       = errors.New("AAC test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// Process hooks, replaced in tests.
var (
	lookPath  = exec.LookPath
	runOutput = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
	runSilent = func(name string, args ...string) bool {
		return exec.Command(name, args...).Run() == nil
	}
)

// RunCheck runs the --check flow: prints availability and version of ffmpeg
// and ffprobe, then test-encodes with libx264 and AAC. It keeps going after
// a failure and reports whether everything passed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, cfg.FfmpegPath)
	ok = checkTool(log, cfg.FfprobePath) && ok
	if !ok {
		return false
	}

	log.Info("Testing libx264 encoder...")
	if runSilent(cfg.FfmpegPath, x264TestArgs()...) {
		log.Success("libx264 works")
	} else {
		log.Error("libx264 test encode failed")
		ok = false
	}

	log.Info("Testing AAC encoder...")
	if runSilent(cfg.FfmpegPath, aacTestArgs()...) {
		log.Success("AAC encoder works")
	} else {
		log.Error("AAC encoder test failed")
		ok = false
	}
	return ok
}

// checkTool verifies bin resolves and logs the first line of its -version.
func checkTool(log Logger, bin string) bool {
	if _, err := lookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return false
	}
	out, err := runOutput(bin, "-version")
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
	return true
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg and ffprobe
// resolve and that ffmpeg can encode with libx264 and AAC. Returns a
// sentinel error (wrapped with the binary) on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := lookPath(cfg.FfmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FfmpegPath)
	}
	if _, err := lookPath(cfg.FfprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfprobeNotFound, cfg.FfprobePath)
	}
	if !runSilent(cfg.FfmpegPath, x264TestArgs()...) {
		return fmt.Errorf("%w (%s)", ErrX264Failed, cfg.FfmpegPath)
	}
	if !runSilent(cfg.FfmpegPath, aacTestArgs()...) {
		return fmt.Errorf("%w (%s)", ErrAACFailed, cfg.FfmpegPath)
	}
	return nil
}

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test encode.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-f", "null", "-",
	}
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC test encode.
func aacTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	}
}
