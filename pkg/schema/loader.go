package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader reads schema documents from disk or from an fs.FS.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader. fsys may be nil when only file sources are
// used.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load fetches a document from the provided source.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l == nil || l.fs == nil {
			return Document{}, errors.New("schema loader: fs source requires a file system")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("schema loader: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}
