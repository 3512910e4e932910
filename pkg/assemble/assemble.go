// Package assemble reads selected files and joins them into a single
// payload.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"fetchit/pkg/config"
	"fetchit/pkg/logging"
	"fetchit/pkg/selection"
)

// ErrNothingReadable is returned when files were selected but none of them
// could be read as text.
var ErrNothingReadable = errors.New("nothing readable in selection")

// FileReader reads raw file contents.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

// ReadFile implements FileReader.
func (OSReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileStat describes one file that made it into a payload.
type FileStat struct {
	Path  string // Root-relative display path.
	Lines int
}

// Payload is the assembled text plus its metrics.
type Payload struct {
	Text       string
	Files      []FileStat
	TotalLines int
	Bytes      int
}

// Paths returns the display paths of the included files.
func (p Payload) Paths() []string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.Path
	}
	return paths
}

// Empty reports whether the payload holds no text.
func (p Payload) Empty() bool {
	return p.Text == ""
}

// Assembler formats and joins selected files.
type Assembler struct {
	Reader          FileReader
	WrapAsCodeBlock bool
	Separator       string
	Logger          *zap.Logger
}

// New returns an Assembler configured from cfg that reads from disk.
func New(cfg config.Config, logger *zap.Logger) *Assembler {
	return &Assembler{
		Reader:          OSReader{},
		WrapAsCodeBlock: cfg.WrapAsCodeBlock,
		Separator:       cfg.EffectiveSeparator(),
		Logger:          logging.OrNop(logger),
	}
}

// Assemble reads every selected file in order and joins the chunks. A
// file that cannot be read or is not valid UTF-8 is skipped.
func (a *Assembler) Assemble(ctx context.Context, files selection.Result) (Payload, error) {
	logger := logging.OrNop(a.Logger)
	reader := a.Reader
	if reader == nil {
		reader = OSReader{}
	}
	separator := a.Separator
	if separator == "" {
		separator = config.DefaultSeparator
	}

	var payload Payload
	chunks := make([]string, 0, len(files.Files))
	for _, f := range files.Files {
		if err := ctx.Err(); err != nil {
			return Payload{}, err
		}

		data, err := reader.ReadFile(f.Abs)
		if err != nil {
			logger.Warn("Skipping unreadable file", zap.String("file", f.Rel), zap.Error(err))
			continue
		}
		if !utf8.Valid(data) {
			logger.Warn("Skipping file that is not valid UTF-8", zap.String("file", f.Rel))
			continue
		}

		content := string(data)
		lines := LineCount(content)
		chunks = append(chunks, a.chunk(f.Rel, content))
		payload.Files = append(payload.Files, FileStat{Path: f.Rel, Lines: lines})
		payload.TotalLines += lines

		logger.Debug("Added file to payload",
			zap.String("file", f.Rel),
			zap.Int("lines", lines),
			zap.Int("contentSizeBytes", len(data)))
	}

	if len(chunks) == 0 {
		return Payload{}, fmt.Errorf("%w: %d file(s) selected", ErrNothingReadable, len(files.Files))
	}

	payload.Text = strings.Join(chunks, separator)
	payload.Bytes = len(payload.Text)
	return payload, nil
}

func (a *Assembler) chunk(rel, content string) string {
	if !a.WrapAsCodeBlock {
		return content
	}
	return fmt.Sprintf("# %s\n\n```%s\n%s\n```\n", rel, Language(rel), content)
}

// LineCount returns one more than the number of newlines in s, so text
// without a trailing newline still counts its last line.
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
