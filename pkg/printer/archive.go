package printer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

// NewArchive keeps a local copy of every printed composite under dir,
// named by job id. An empty dir disables archiving.
func NewArchive(dir string) (*Archive, error) {
	a := &Archive{}

	if dir == "" {
		return a, nil
	}

	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.New("archive dir not exists")
	}

	a.fs = afero.NewBasePathFs(fs, dir)
	return a, nil
}

type Archive struct {
	fs afero.Fs
}

func (a *Archive) Enabled() bool {
	return a.fs != nil
}

func (a *Archive) Save(id xid.ID, img image.Image) error {
	if a.fs == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return afero.WriteFile(a.fs, fmt.Sprintf("%s.png", id), buf.Bytes(), 0644)
}
