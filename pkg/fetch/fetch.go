// Package fetch wires selection, assembly and delivery into the two user
// operations: copy a file and copy a folder.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fetchit/pkg/assemble"
	"fetchit/pkg/config"
	"fetchit/pkg/delivery"
	"fetchit/pkg/ignore"
	"fetchit/pkg/logging"
	"fetchit/pkg/selection"
)

// Reporter shows results to the user.
type Reporter interface {
	Info(format string, a ...interface{})
	Success(format string, a ...interface{})
	Warning(format string, a ...interface{})
	Error(format string, a ...interface{})
	ShowList(title string, items []string)
}

// Service runs copy operations for a workspace.
type Service struct {
	Workspace *selection.Workspace
	Cache     *ignore.Cache
	Collector *selection.Collector
	Assembler *assemble.Assembler
	Delivery  *delivery.Manager
	Reporter  Reporter
	SaveDir   string // Directory for fallback saves; the root when empty.
	Logger    *zap.Logger
}

// NewService builds a Service from its collaborators. The ignore cache is
// shared by every invocation on this Service.
func NewService(ws *selection.Workspace, cfg config.Config, cb delivery.Clipboard, chooser delivery.PathChooser, reporter Reporter, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)
	cache := ignore.NewCache()
	return &Service{
		Workspace: ws,
		Cache:     cache,
		Collector: selection.NewCollector(cache, cfg, logger),
		Assembler: assemble.New(cfg, logger),
		Delivery:  delivery.NewManager(cb, chooser, cfg, logger),
		Reporter:  reporter,
		SaveDir:   cfg.SaveDir,
		Logger:    logger,
	}
}

type targetKind int

const (
	fileTarget targetKind = iota
	folderTarget
)

func (k targetKind) String() string {
	if k == folderTarget {
		return "folder"
	}
	return "file"
}

// CopyFile copies a single file.
func (s *Service) CopyFile(ctx context.Context, path string) (delivery.Outcome, error) {
	return s.run(ctx, path, fileTarget)
}

// CopyFolder copies every selectable file beneath a folder.
func (s *Service) CopyFolder(ctx context.Context, path string) (delivery.Outcome, error) {
	return s.run(ctx, path, folderTarget)
}

func (s *Service) run(ctx context.Context, path string, kind targetKind) (delivery.Outcome, error) {
	logger := logging.OrNop(s.Logger).With(zap.String("target", path), zap.Stringer("kind", kind))

	root, err := s.Workspace.RootFor(path)
	if err != nil {
		s.Reporter.Error("fetchit: unable to determine workspace root for this %s", kind)
		logger.Debug("No workspace root", zap.Error(err))
		return delivery.Outcome{}, err
	}

	if err := checkKind(path, kind); err != nil {
		s.Reporter.Error("fetchit: %v", err)
		return delivery.Outcome{}, err
	}

	// Pick up ignore file edits made since the last invocation.
	s.Cache.Invalidate(root)

	files, err := s.Collector.Collect(root, path)
	if err != nil {
		if errors.Is(err, selection.ErrEmptySelection) {
			s.Reporter.Info("fetchit: %s has no copyable files", kind)
		} else {
			s.Reporter.Error("fetchit: %v", err)
		}
		return delivery.Outcome{}, err
	}

	payload, err := s.Assembler.Assemble(ctx, files)
	if err != nil {
		if errors.Is(err, assemble.ErrNothingReadable) {
			s.Reporter.Info("fetchit: nothing copied")
		} else {
			s.Reporter.Error("fetchit: %v", err)
		}
		return delivery.Outcome{}, err
	}

	saveDir := s.SaveDir
	if saveDir == "" {
		saveDir = root
	}
	outcome, err := s.Delivery.Deliver(ctx, payload, saveDir)
	if err != nil {
		s.Reporter.Error("fetchit: %v", err)
		logger.Error("Failed to deliver payload", zap.Error(err))
		return outcome, err
	}

	s.report(outcome)
	logger.Debug("Copy finished",
		zap.Stringer("outcome", outcome.Kind),
		zap.Int("files", outcome.Files),
		zap.Int("lines", outcome.Lines),
		zap.Int("bytes", outcome.Bytes))
	return outcome, nil
}

func (s *Service) report(o delivery.Outcome) {
	switch o.Kind {
	case delivery.ClipboardSuccess:
		if o.Files == 1 {
			s.Reporter.Success("fetchit: copied %s (%d lines)", o.Paths[0], o.Lines)
			return
		}
		s.Reporter.Success("fetchit: copied %d files (%d lines)", o.Files, o.Lines)
		s.Reporter.ShowList("Copied files:", o.Paths)
	case delivery.ClipboardFailedSaved:
		s.Reporter.Success("fetchit: %s; saved %d files (%d lines) to %s", o.Reason, o.Files, o.Lines, o.SavedPath)
	case delivery.ClipboardFailedCancelled:
		s.Reporter.Warning("fetchit: %s; nothing was copied", o.Reason)
	case delivery.NothingToCopy:
		s.Reporter.Info("fetchit: nothing copied")
	}
}

func checkKind(path string, kind targetKind) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	switch {
	case kind == fileTarget && info.IsDir():
		return fmt.Errorf("%s is a folder, not a file", path)
	case kind == folderTarget && !info.IsDir():
		return fmt.Errorf("%s is a file, not a folder", path)
	}
	return nil
}
