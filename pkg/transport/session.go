package transport

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"boothprint/pkg/escpos"
	"boothprint/pkg/proto"
)

var (
	ErrNotConnected = errors.New("printer channel not connected")
	ErrDisconnected = errors.New("printer channel lost mid-transfer")
	ErrBusy         = errors.New("a send is already in progress")
)

// Hardware tuning for the reference printer; other ESC/POS devices may
// need different values, so both live in Config.
const (
	DefaultChunkSize  = 256
	DefaultChunkDelay = 20 * time.Millisecond
)

type Config struct {
	// ChunkSize bounds each write below the link payload and the
	// printer's input buffer. Zero selects DefaultChunkSize.
	ChunkSize int

	// ChunkDelay paces writes so the printer buffer can drain; the
	// device has no flow control back to the host. Zero disables pacing.
	ChunkDelay time.Duration
}

type State int

const (
	Idle State = iota
	Sending
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Progress reports cumulative bytes delivered out of the frame total.
type Progress func(sent, total int)

// Session owns a channel for the duration of a print job and enforces the
// single-writer rule: chunk writes are strictly sequential and a second
// Send while one is in flight fails with ErrBusy.
type Session struct {
	mu       sync.Mutex
	ch       proto.Channel
	cfg      Config
	log      *zap.Logger
	state    State
	progress Progress
}

func NewSession(ch proto.Channel, cfg Config, logger *zap.Logger) *Session {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return &Session{ch: ch, cfg: cfg, log: logger, state: Idle}
}

func (s *Session) OnProgress(fn Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = fn
}

// Connected reports the link state of the owned channel.
func (s *Session) Connected() bool {
	return s.ch.IsConnected()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Send transmits the whole frame or fails the job. A partially sent frame
// is never retried here: printer head state after a truncated raster
// command is undefined, so recovery means a fresh job from the top.
func (s *Session) Send(frame *escpos.Frame) error {
	s.mu.Lock()
	if s.state == Sending {
		s.mu.Unlock()
		return ErrBusy
	}
	if !s.ch.IsConnected() {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.state = Sending
	progress := s.progress
	s.mu.Unlock()

	err := s.transfer(frame, progress)

	s.mu.Lock()
	if err != nil {
		s.state = Failed
	} else {
		s.state = Complete
	}
	s.mu.Unlock()

	return err
}

func (s *Session) transfer(frame *escpos.Frame, progress Progress) error {
	total := frame.Len()
	chunks := Chunks(total, s.cfg.ChunkSize)
	sent := 0

	for i, c := range chunks {
		if !s.ch.IsConnected() {
			return errors.Wrapf(ErrDisconnected, "after %d of %d chunks", i, len(chunks))
		}

		start := time.Now()
		n, err := s.ch.Write(frame.Bytes()[c.Off : c.Off+c.Len])
		if err != nil {
			return errors.Wrapf(err, "chunk %d/%d", i+1, len(chunks))
		}
		if n != c.Len {
			return errors.Errorf("chunk %d/%d: short write %d of %d bytes", i+1, len(chunks), n, c.Len)
		}

		sent += n
		if progress != nil {
			progress(sent, total)
		}

		s.log.With(
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("sent", sent),
			zap.String("cost", time.Since(start).String()),
		).Debug("transfer")

		if s.cfg.ChunkDelay > 0 && i < len(chunks)-1 {
			time.Sleep(s.cfg.ChunkDelay)
		}
	}

	return nil
}
