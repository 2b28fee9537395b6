package rpc

import (
	"fmt"
	"net/rpc"
	"strconv"
	"time"
)

type Client struct {
	client *rpc.Client
}

// NewClient connects to the server listening on localhost:port. The dial is
// retried a few times, giving the server time to start.
func NewClient(port int) (*Client, error) {
	const maxretries = 5

	var err error
	for i := range maxretries {
		var client *rpc.Client
		if client, err = rpc.DialHTTP("tcp", "localhost:"+strconv.Itoa(port)); err == nil {
			return &Client{client: client}, nil
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}
	return nil, fmt.Errorf("dial failed after %d retries: %w", maxretries, err)
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Reset() error   { return call(c.client, "emu.Reset") }
func (c *Client) Restart() error { return call(c.client, "emu.Restart") }
func (c *Client) Stop() error    { return call(c.client, "emu.Stop") }

func (c *Client) Frames() (int, error) {
	return request[int](c.client, "emu.Frames")
}

func call(client *rpc.Client, funcname string) error {
	_, err := request[struct{}](client, funcname)
	return err
}

func request[T any](client *rpc.Client, funcname string) (T, error) {
	var reply T
	if err := client.Call(funcname, &struct{}{}, &reply); err != nil {
		return reply, fmt.Errorf("rpc %s: %w", funcname, err)
	}
	return reply, nil
}
