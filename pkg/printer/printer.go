package printer

import (
	"image"
	"sync"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"boothprint/pkg/dither"
	"boothprint/pkg/escpos"
	"boothprint/pkg/raster"
)

const (
	DefaultCopyDelay = 4 * time.Second
	DefaultMaxCopies = 5
)

// ErrPaused rejects jobs while an operator holds the printer.
var ErrPaused = errors.New("printer paused")

// Sender delivers whole encoded frames over an owned channel. Both a
// local transport.Session and a relay client satisfy it; either way a
// second job while one is in flight fails fast.
type Sender interface {
	Connected() bool
	Send(frame *escpos.Frame) error
}

type Config struct {
	// Width is the head dot width; zero selects raster.HeadWidth.
	Width int

	// FeedLines is the post-image feed before the cut.
	FeedLines byte

	// CopyDelay lets the mechanism finish and settle between copies;
	// copies are never pipelined.
	CopyDelay time.Duration

	// MaxCopies bounds a single job; zero selects DefaultMaxCopies.
	MaxCopies int
}

type Option func(p *Printer)

func WithArchive(a *Archive) Option {
	return func(p *Printer) {
		p.archive = a
	}
}

func New(sender Sender, cfg Config, logger *zap.Logger, opts ...Option) *Printer {
	if cfg.Width <= 0 {
		cfg.Width = raster.HeadWidth
	}
	if cfg.MaxCopies <= 0 {
		cfg.MaxCopies = DefaultMaxCopies
	}

	p := &Printer{
		sender:  sender,
		cfg:     cfg,
		log:     logger,
		history: NewHistory(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type Printer struct {
	sender  Sender
	cfg     Config
	log     *zap.Logger
	history *History
	archive *Archive

	mu     sync.Mutex
	paused bool
}

func (p *Printer) Config() Config {
	return p.cfg
}

func (p *Printer) History() *History {
	return p.history
}

func (p *Printer) Connected() bool {
	return p.sender.Connected()
}

// Pause holds new jobs without touching one already in flight.
func (p *Printer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

func (p *Printer) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
}

func (p *Printer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Job is one logical print operation: a single composite sent as one or
// more physical copies over one channel.
type Job struct {
	ID       xid.ID
	Copies   int
	Width    int
	Height   int
	FrameLen int
	Started  time.Time
	Finished time.Time
	Err      error
}

// Print runs the full pipeline: resample to head width, dither, encode
// once, then transmit the same immutable frame per requested copy. On any
// transport failure the job stops; a partial frame is not retried.
func (p *Printer) Print(src image.Image, copies int) (*Job, error) {
	if copies < 1 || copies > p.cfg.MaxCopies {
		return nil, errors.Errorf("copies must be 1..%d, got %d", p.cfg.MaxCopies, copies)
	}
	if p.Paused() {
		return nil, ErrPaused
	}

	img, err := raster.Resample(src, p.cfg.Width)
	if err != nil {
		return nil, err
	}

	mono := dither.FloydSteinberg(img)

	frame, err := escpos.Encode(mono, p.cfg.FeedLines)
	if err != nil {
		return nil, err
	}

	job := &Job{
		ID:       xid.New(),
		Copies:   copies,
		Width:    mono.Width,
		Height:   mono.Height,
		FrameLen: frame.Len(),
		Started:  time.Now(),
	}

	p.log.With(
		zap.Stringer("job", job.ID),
		zap.Int("copies", copies),
		zap.Int("width", job.Width),
		zap.Int("height", job.Height),
		zap.String("frame", bytesize.New(float64(frame.Len())).String()),
	).Info("printing")

	for c := 1; c <= copies; c++ {
		if err := p.sender.Send(frame); err != nil {
			job.Err = errors.Wrapf(err, "copy %d/%d", c, copies)
			job.Finished = time.Now()
			p.history.Add(job)
			return job, job.Err
		}

		if c < copies && p.cfg.CopyDelay > 0 {
			time.Sleep(p.cfg.CopyDelay)
		}
	}

	job.Finished = time.Now()
	p.history.Add(job)

	if p.archive != nil && p.archive.Enabled() {
		if err := p.archive.Save(job.ID, src); err != nil {
			p.log.With(zap.Stringer("job", job.ID), zap.Error(err)).Info("archive failed")
		}
	}

	return job, nil
}
