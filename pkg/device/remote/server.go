package remote

import (
	"context"
	"log"
	"net/http"
	"net/rpc"

	"go.uber.org/fx"

	"boothprint/pkg/escpos"
	"boothprint/pkg/transport"
)

// Proxy exposes a locally attached printer over net/rpc so a kiosk on
// another host can print through this machine. Remote sends go through
// the same session the relay's own jobs use, so the channel keeps a
// single writer: a frame arriving while another is in flight fails
// with the session's busy error instead of interleaving on the wire.
func Proxy(session *transport.Session, srv *http.Server, lifecycle fx.Lifecycle) error {
	svc := &Service{session: session}
	if err := rpc.Register(svc); err != nil {
		return err
	}

	rpc.HandleHTTP()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	session *transport.Session
}

func (s *Service) Connected(_ EmptyRequest, up *bool) error {
	*up = s.session.Connected()
	return nil
}

func (s *Service) Send(req *SendRequest, _ *EmptyResponse) error {
	frame, err := escpos.FromBytes(req.Data)
	if err != nil {
		return err
	}
	return s.session.Send(frame)
}
