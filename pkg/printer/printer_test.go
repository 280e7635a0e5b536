package printer

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"

	"boothprint/pkg/device/virtual"
	"boothprint/pkg/transport"
)

func testPrinter(t *testing.T, mock *virtual.Mocker) *Printer {
	t.Helper()
	session := transport.NewSession(mock, transport.Config{ChunkSize: 4096}, zap.NewNop())
	return New(session, Config{Width: 64}, zap.NewNop())
}

func TestPrint_SendsFramePerCopy(t *testing.T) {
	mock := virtual.Mock(zap.NewNop())
	p := testPrinter(t, mock)

	job, err := p.Print(TestPattern(64, 32), 2)
	if err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	if job.Width != 64 || job.Height != 32 {
		t.Fatalf("job dims %dx%d, want 64x32", job.Width, job.Height)
	}

	sent := mock.Bytes()
	if len(sent) != 2*job.FrameLen {
		t.Fatalf("delivered %d bytes, want %d for two copies", len(sent), 2*job.FrameLen)
	}
	if !bytes.Equal(sent[:job.FrameLen], sent[job.FrameLen:]) {
		t.Fatal("copies are not byte-identical")
	}

	if got := p.History().Curr(); got != job {
		t.Fatal("job not recorded in history")
	}
}

func TestPrint_CopiesOutOfRange(t *testing.T) {
	p := testPrinter(t, virtual.Mock(zap.NewNop()))

	for _, copies := range []int{0, -1, 6} {
		if _, err := p.Print(TestPattern(64, 16), copies); err == nil {
			t.Fatalf("copies=%d: expected error", copies)
		}
	}
}

func TestPrint_NotConnected(t *testing.T) {
	mock := virtual.Mock(zap.NewNop())
	mock.SetConnected(false)
	p := testPrinter(t, mock)

	job, err := p.Print(TestPattern(64, 16), 1)
	if !errors.Is(err, transport.ErrNotConnected) {
		t.Fatalf("got %v, want ErrNotConnected", err)
	}
	if job == nil || job.Err == nil {
		t.Fatal("failed job must be returned with its error recorded")
	}
	if got := p.History().Curr(); got != job {
		t.Fatal("failed job not recorded in history")
	}
}

func TestPrint_StopsWhenChannelDropsBetweenCopies(t *testing.T) {
	mock := virtual.Mock(zap.NewNop())
	mock.DropAfter(1)
	p := testPrinter(t, mock)

	// first copy fits one chunk and succeeds, then the channel drops
	_, err := p.Print(TestPattern(64, 16), 2)
	if !errors.Is(err, transport.ErrNotConnected) && !errors.Is(err, transport.ErrDisconnected) {
		t.Fatalf("got %v, want a disconnect error", err)
	}
	if got := len(mock.Writes()); got != 1 {
		t.Fatalf("wrote %d chunks after drop, want 1", got)
	}
}

func TestPrint_PausedRejectsJobs(t *testing.T) {
	mock := virtual.Mock(zap.NewNop())
	p := testPrinter(t, mock)

	p.Pause()
	if !p.Paused() {
		t.Fatal("printer should report paused")
	}
	if _, err := p.Print(TestPattern(64, 16), 1); !errors.Is(err, ErrPaused) {
		t.Fatalf("got %v, want ErrPaused", err)
	}
	if got := len(mock.Writes()); got != 0 {
		t.Fatalf("wrote %d chunks while paused, want 0", got)
	}

	p.Resume()
	if _, err := p.Print(TestPattern(64, 16), 1); err != nil {
		t.Fatalf("Print() after resume error: %v", err)
	}
}

func TestTestPattern_Extremes(t *testing.T) {
	img := TestPattern(64, 8)

	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 8 {
		t.Fatalf("pattern is %dx%d, want 64x8", b.Dx(), b.Dy())
	}

	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Fatalf("left edge = %d, want white", r>>8)
	}
	r, _, _, _ = img.At(63, 0).RGBA()
	if r>>8 != 0 {
		t.Fatalf("right edge = %d, want black", r>>8)
	}
}
