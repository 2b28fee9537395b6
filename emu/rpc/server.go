package rpc

import (
	"net"
	"net/http"
	"net/rpc"
	"strconv"
)

type emuProxy struct {
	emu Emu
}

func (ep *emuProxy) Reset(_, _ *struct{}) error   { ep.emu.Reset(); return nil }
func (ep *emuProxy) Restart(_, _ *struct{}) error { ep.emu.Restart(); return nil }
func (ep *emuProxy) Stop(_, _ *struct{}) error    { ep.emu.Stop(); return nil }

func (ep *emuProxy) Frames(_ *struct{}, reply *int) error {
	*reply = ep.emu.Frames()
	return nil
}

// Server serves the emu RPC service over HTTP until closed.
type Server struct {
	l net.Listener
}

// NewServer starts serving emu on localhost:port.
func NewServer(port int, emu Emu) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("emu", &emuProxy{emu: emu}); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)

	l, err := net.Listen("tcp", "localhost:"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").Int("port", port).End()
	go http.Serve(l, mux)
	return &Server{l: l}, nil
}

func (s *Server) Close() error {
	modRPC.DebugZ("closing rpc server").End()
	return s.l.Close()
}
