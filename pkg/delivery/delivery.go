// Package delivery places an assembled payload on the clipboard, verifying
// the write, and falls back to saving it to a file.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"fetchit/pkg/assemble"
	"fetchit/pkg/config"
	"fetchit/pkg/logging"
)

// ErrSave is returned when the fallback file could not be written.
var ErrSave = errors.New("failed to save payload")

// PathChooser asks where a payload that did not fit the clipboard should be
// saved. ok is false when the user declines.
type PathChooser interface {
	ChooseSavePath(suggested string, reason FailureReason) (path string, ok bool, err error)
}

// Manager delivers payloads.
type Manager struct {
	Clipboard Clipboard
	Chooser   PathChooser
	// Threshold is the minimum fraction of the written text that must be
	// read back. It is a heuristic against host truncation and is tunable.
	Threshold float64
	Now       func() time.Time
	Logger    *zap.Logger
}

// NewManager returns a Manager using cfg's threshold.
func NewManager(cb Clipboard, chooser PathChooser, cfg config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		Clipboard: cb,
		Chooser:   chooser,
		Threshold: cfg.ClipboardThreshold,
		Now:       time.Now,
		Logger:    logging.OrNop(logger),
	}
}

// SuggestedName returns the default fallback file name for t.
func SuggestedName(t time.Time) string {
	return fmt.Sprintf("fetchit-%s.md", t.Format("20060102-150405"))
}

// Deliver copies payload to the clipboard. On a failed or truncated copy it
// asks Chooser for a path under saveDir and writes the payload there. Only
// a failed save is returned as an error.
func (m *Manager) Deliver(ctx context.Context, payload assemble.Payload, saveDir string) (Outcome, error) {
	logger := logging.OrNop(m.Logger)
	outcome := Outcome{
		Files: len(payload.Files),
		Lines: payload.TotalLines,
		Bytes: payload.Bytes,
		Paths: payload.Paths(),
	}

	if payload.Empty() {
		outcome.Kind = NothingToCopy
		return outcome, nil
	}
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	reason, cause := m.copy(payload.Text)
	if reason == NoFailure {
		outcome.Kind = ClipboardSuccess
		logger.Debug("Copied payload to clipboard", zap.Int("bytes", payload.Bytes), zap.Int("files", outcome.Files))
		return outcome, nil
	}

	outcome.Reason = reason
	outcome.Cause = cause
	logger.Warn("Clipboard copy failed, offering file fallback",
		zap.Stringer("reason", reason),
		zap.Int("bytes", payload.Bytes),
		zap.Error(cause))

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	suggested := filepath.Join(saveDir, SuggestedName(now()))

	if m.Chooser == nil {
		outcome.Kind = ClipboardFailedCancelled
		return outcome, nil
	}
	target, ok, err := m.Chooser.ChooseSavePath(suggested, reason)
	if err != nil {
		logger.Warn("Failed to read save location", zap.Error(err))
		ok = false
	}
	if !ok || target == "" {
		outcome.Kind = ClipboardFailedCancelled
		logger.Info("User declined to save payload")
		return outcome, nil
	}

	saved, err := save(target, payload.Text, logger)
	if err != nil {
		return outcome, err
	}
	outcome.Kind = ClipboardFailedSaved
	outcome.SavedPath = saved
	return outcome, nil
}

// copy writes text and verifies it by reading the clipboard back.
func (m *Manager) copy(text string) (FailureReason, error) {
	if m.Clipboard == nil {
		return ClipboardWriteFailure, ErrClipboardUnsupported
	}
	if err := m.Clipboard.WriteAll(text); err != nil {
		return ClipboardWriteFailure, err
	}

	readBack, err := m.Clipboard.ReadAll()
	if err != nil {
		return ClipboardWriteFailure, fmt.Errorf("failed to read clipboard back: %w", err)
	}

	threshold := m.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = config.DefaultClipboardThreshold
	}
	if float64(len(readBack)) < threshold*float64(len(text)) {
		return ClipboardTruncated, fmt.Errorf("read back %d of %d bytes", len(readBack), len(text))
	}
	return NoFailure, nil
}

// save writes text to path, creating parent directories.
func save(path, text string, logger *zap.Logger) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s: %w", ErrSave, path, err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", filepath.Dir(abs)), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		logger.Error("Failed to write file", zap.String("path", abs), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}

	logger.Debug("Successfully wrote file", zap.String("path", abs))
	return abs, nil
}
