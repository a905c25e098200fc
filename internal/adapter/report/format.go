// Package report renders batch outcomes for people (text tables, HTML) and
// for machines (JSON).
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/bnema/audiobatch/internal/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or html)", s)
	}
}

// Render writes o to w in the given format. colorize only affects text.
func Render(ctx context.Context, w io.Writer, o *domain.BatchOutcome, format Format, colorize bool) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, o)
	case FormatHTML:
		return RenderHTML(ctx, w, o)
	default:
		return RenderText(w, o, colorize)
	}
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
