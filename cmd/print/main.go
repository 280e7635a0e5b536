package main

import (
	"log"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"boothprint/pkg/device/remote"
	"boothprint/pkg/device/virtual"
	"boothprint/pkg/printer"
	"boothprint/pkg/proto"
	"boothprint/pkg/raster"
	"boothprint/pkg/source"
	"boothprint/pkg/transport"
)

var src = flag.String("source", "", "composite image path or url")
var serialName = flag.String("serial", "ttyACM0", "serial name or relay addr")
var baud = flag.Int("baud", 19200, "serial baud rate")
var copies = flag.Int("copies", 1, "physical copies")
var width = flag.Int("width", raster.HeadWidth, "head dot width")
var chunkSize = flag.Int("chunk-size", transport.DefaultChunkSize, "transfer chunk bytes")
var chunkDelay = flag.Duration("chunk-delay", transport.DefaultChunkDelay, "pacing between chunks")
var copyDelay = flag.Duration("copy-delay", printer.DefaultCopyDelay, "settle between copies")
var feed = flag.Uint8("feed", 3, "post-image feed lines")
var archiveDir = flag.String("archive", "", "keep printed composites in dir")
var dryRun = flag.Bool("dry-run", false, "print to a virtual channel")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	if *src == "" {
		log.Fatal("-source is required")
	}

	var logger *zap.Logger
	var logErr error
	if *debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatal(logErr)
	}

	var sender printer.Sender
	var chErr error

	switch {
	case *dryRun:
		sender = localSession(virtual.Mock(logger), logger)
	case strings.Contains(*serialName, ":"):
		// a relay addr: the frame travels whole, the relay paces it
		sender, chErr = remote.New(*serialName)
	default:
		s := proto.NewSerial(*serialName)
		chErr = s.Open(&proto.Options{
			DTR:         true,
			RTS:         true,
			BaudRate:    *baud,
			ReadTimeout: 10 * time.Millisecond,
		})
		sender = localSession(s, logger)
	}

	if chErr != nil {
		log.Fatal(chErr)
	}

	loader := source.NewLoader(logger)
	img, err := loader.Load(*src)
	if err != nil {
		log.Fatal(err)
	}

	archive, err := printer.NewArchive(*archiveDir)
	if err != nil {
		log.Fatal(err)
	}

	p := printer.New(sender, printer.Config{
		Width:     *width,
		FeedLines: *feed,
		CopyDelay: *copyDelay,
	}, logger, printer.WithArchive(archive))

	job, err := p.Print(img, *copies)
	if err != nil {
		log.Fatal(err)
	}

	logger.With(
		zap.Stringer("job", job.ID),
		zap.Int("copies", job.Copies),
		zap.String("cost", job.Finished.Sub(job.Started).String()),
	).Info("printed")
}

func localSession(ch proto.Channel, logger *zap.Logger) *transport.Session {
	session := transport.NewSession(ch, transport.Config{
		ChunkSize:  *chunkSize,
		ChunkDelay: *chunkDelay,
	}, logger)

	var bar *progressbar.ProgressBar
	session.OnProgress(func(sent, total int) {
		if bar == nil {
			bar = progressbar.DefaultBytes(int64(total), "Printing")
		}
		_ = bar.Set(sent)
	})

	return session
}
