// Package tags reads embedded ID3, Vorbis comment and MP4 metadata.
package tags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

type Reader struct{}

func NewReader() port.TagReader {
	return Reader{}
}

// ReadTags returns nil when the file has no recognizable tags or all of
// them are blank.
func (Reader) ReadTags(path string) (*domain.AudioTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	track, _ := m.Track()
	t := domain.AudioTags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Genre:  strings.TrimSpace(m.Genre()),
		Year:   m.Year(),
		Track:  track,
	}
	if t.Empty() {
		return nil, nil
	}
	return &t, nil
}

var _ port.TagReader = Reader{}
