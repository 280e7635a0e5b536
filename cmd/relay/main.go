package main

import (
	"context"
	"net/http"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"boothprint/pkg/device/remote"
	"boothprint/pkg/printer"
	"boothprint/pkg/proto"
	"boothprint/pkg/transport"
)

var serialName = flag.String("serial", "ttyACM0", "serial name")
var baud = flag.Int("baud", 19200, "serial baud rate")
var listen = flag.String("listen", ":9123", "listen addr")
var chunkSize = flag.Int("chunk-size", transport.DefaultChunkSize, "transfer chunk bytes")
var chunkDelay = flag.Duration("chunk-delay", transport.DefaultChunkDelay, "pacing between chunks")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				return zap.NewDevelopment()
			},
			// One session fronts the serial channel; the rpc proxy and
			// the operator bot both print through it, so jobs from the
			// two never interleave on the wire.
			func(logger *zap.Logger) (*transport.Session, *http.Server, error) {
				s := proto.NewSerial(*serialName)
				if err := s.Open(&proto.Options{
					DTR:         true,
					RTS:         true,
					BaudRate:    *baud,
					ReadTimeout: 10 * time.Millisecond,
				}); err != nil {
					return nil, nil, err
				}

				session := transport.NewSession(s, transport.Config{
					ChunkSize:  *chunkSize,
					ChunkDelay: *chunkDelay,
				}, logger)
				return session, &http.Server{Addr: *listen}, nil
			},
			func(session *transport.Session, logger *zap.Logger) *printer.Printer {
				return printer.New(session, printer.Config{}, logger)
			},
		),
		fx.Invoke(
			remote.Proxy,
			runBot,
		),
	).Run()
}

func runBot(p *printer.Printer, lifecycle fx.Lifecycle) error {
	if *tgToken == "" {
		return nil
	}

	bot, err := printer.NewBot(*tgToken, p)
	if err != nil {
		return err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bot.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			bot.Stop()
			return nil
		},
	})

	return nil
}
