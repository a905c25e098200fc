package port

import (
	"context"

	"github.com/bnema/audiobatch/internal/domain"
)

// MediaConverter is the external toolchain: a metadata inspector and a
// transcoder. Errors wrap the domain sentinels so callers can classify them.
type MediaConverter interface {
	CheckToolchain() error
	Probe(ctx context.Context, inputPath string) (*domain.ProbeResult, error)
	Convert(ctx context.Context, inputPath, outputPath string, params domain.TranscodeParams) error
}
