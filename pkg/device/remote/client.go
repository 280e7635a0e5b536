package remote

import (
	"net/rpc"

	"boothprint/pkg/escpos"
)

// New dials a relay (cmd/relay) that fronts the physically attached
// printer. Frames travel whole: chunking and pacing happen relay-side,
// next to the device, and the relay's single session serializes kiosk
// and operator jobs on the one channel.
func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Connected() bool {
	var up bool
	if err := c.rpc.Call("Service.Connected", EmptyRequest{}, &up); err != nil {
		return false
	}
	return up
}

func (c *Client) Send(frame *escpos.Frame) error {
	return c.rpc.Call("Service.Send", &SendRequest{Data: frame.Bytes()}, &EmptyResponse{})
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
