// Package server runs the FastAGI listener the Asterisk dialplan connects to.
package server

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	goagi "github.com/zaf/agi"

	agichannel "call-verification/backend/internal/agi"
)

// sessionTimeout bounds one AGI session end to end. A dialplan step is a few
// variable reads and writes; anything longer means a wedged channel.
const sessionTimeout = 30 * time.Second

// Server accepts FastAGI connections and hands each session to the router.
type Server struct {
	addr   string
	router *agichannel.Router

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New returns an unstarted Server listening on addr (e.g. ":4573").
func New(addr string, router *agichannel.Router) *Server {
	return &Server{addr: addr, router: router}
}

// ListenAndServe accepts connections until ctx is canceled, one goroutine per
// connection. It returns after the listener is closed and all in-flight
// sessions have finished.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	log.Printf("server: fastagi listening on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Addr returns the bound listener address, or nil before ListenAndServe.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(sessionTimeout))

	ctx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
	session := goagi.New()
	if err := session.Init(rw); err != nil {
		log.Printf("server: agi handshake from %s: %v", conn.RemoteAddr(), err)
		return
	}

	script := session.Env["network_script"]
	if script == "" {
		script = session.Env["request"]
	}
	if err := s.router.Handle(ctx, script, &sessionChannel{session: session}); err != nil {
		log.Printf("server: session %s from %s: %v", script, conn.RemoteAddr(), err)
	}
}

// sessionChannel adapts a FastAGI session to the router's Channel.
type sessionChannel struct {
	session *goagi.Session
}

func (c *sessionChannel) GetVariable(name string) (string, error) {
	reply, err := c.session.GetVariable(name)
	if err != nil {
		return "", err
	}
	return reply.Dat, nil
}

func (c *sessionChannel) SetVariable(name, value string) error {
	_, err := c.session.SetVariable(name, value)
	return err
}

func (c *sessionChannel) Verbose(msg string, level int) error {
	_, err := c.session.Verbose(msg, level)
	return err
}
