package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Option func(l *Loader)

// WithFs swaps the filesystem, so tests can load from a MemMapFs.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// NewLoader reads the composited booth image from a local path or an
// http(s) URL and decodes it. Compositing itself happens upstream; this
// is only the boundary adapter in front of the rasterizer.
func NewLoader(logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:  afero.NewOsFs(),
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type Loader struct {
	fs  afero.Fs
	cli *resty.Client
	log *zap.Logger
}

func (l *Loader) Load(src string) (image.Image, error) {
	bs, err := lo.Ternary(isURL(src), l.fetch, l.read)(src)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrap(err, "image decode failed")
	}

	return img, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (l *Loader) read(path string) ([]byte, error) {
	bs, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "read source failed")
	}
	return bs, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	resp, err := l.cli.R().Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "fetch source failed")
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Fetching %s", url))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	l.log.With(zap.String("url", url), zap.Int("bytes", buf.Len())).Debug("fetched")
	return buf.Bytes(), nil
}
