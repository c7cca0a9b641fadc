package net

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv, err := NewServer("127.0.0.1:0", opts, zap.NewNop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	go srv.AcceptLoop()
	t.Cleanup(srv.Shutdown)
	return srv
}

func dial(t *testing.T, srv *Server) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func nextEvent(t *testing.T, srv *Server) Event {
	t.Helper()
	select {
	case ev := <-srv.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestSessionEventOrder(t *testing.T) {
	srv := newTestServer(t, Options{})
	conn := dial(t, srv)

	if _, err := io.WriteString(conn, "w\r\nattack melee 1\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.Close()

	want := []struct {
		kind EventKind
		line string
	}{
		{EventAccepted, ""},
		{EventLine, "w"},
		{EventLine, "attack melee 1"},
		{EventClosed, ""},
	}
	var sess *Session
	for i, w := range want {
		ev := nextEvent(t, srv)
		if ev.Kind != w.kind || ev.Line != w.line {
			t.Fatalf("event %d = %v %q, want %v %q", i, ev.Kind, ev.Line, w.kind, w.line)
		}
		if sess == nil {
			sess = ev.Session
		} else if ev.Session != sess {
			t.Fatalf("event %d from a different session", i)
		}
		if ev.Err != nil {
			t.Fatalf("event %d err = %v", i, ev.Err)
		}
	}
}

func TestSessionWrite(t *testing.T) {
	srv := newTestServer(t, Options{})
	conn := dial(t, srv)

	ev := nextEvent(t, srv)
	if err := ev.Session.Write([]byte("frame\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || line != "frame\n" {
		t.Fatalf("read %q, %v", line, err)
	}

	ev.Session.Close()
	if err := ev.Session.Write([]byte("x")); !IsDisconnect(err) {
		t.Fatalf("write after close err = %v, want disconnect", err)
	}
	if ev := nextEvent(t, srv); ev.Kind != EventClosed || ev.Err != nil {
		t.Fatalf("got %v err %v, want clean close", ev.Kind, ev.Err)
	}
}

func TestLongLineClosesSession(t *testing.T) {
	srv := newTestServer(t, Options{MaxLineLength: 16})
	conn := dial(t, srv)
	nextEvent(t, srv)

	io.WriteString(conn, strings.Repeat("x", 64)+"\n")
	ev := nextEvent(t, srv)
	if ev.Kind != EventClosed {
		t.Fatalf("kind = %v, want Closed", ev.Kind)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	srv := newTestServer(t, Options{})
	conn := dial(t, srv)
	nextEvent(t, srv)

	srv.Shutdown()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); err == nil {
		t.Fatalf("read succeeded after shutdown")
	}
	if _, err := net.Dial("tcp", srv.Addr().String()); err == nil {
		t.Fatalf("dial succeeded after shutdown")
	}
}

func TestNewLineScanner(t *testing.T) {
	sc := NewLineScanner(strings.NewReader("respawn\r\n\nequip 0"), 0)
	var got []string
	for sc.Scan() {
		got = append(got, sc.Text())
	}
	want := []string{"respawn", "", "equip 0"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestIsDisconnect(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"nil":       {nil, false},
		"eof":       {io.EOF, true},
		"closed":    {net.ErrClosed, true},
		"wrapped":   {WriteFrame(errWriter{net.ErrClosed}, []byte("x")), true},
		"too long":  {bufio.ErrTooLong, true},
		"transport": {errors.New("boom"), false},
	}
	for name, tc := range tests {
		if got := IsDisconnect(tc.err); got != tc.want {
			t.Errorf("%s: IsDisconnect = %v, want %v", name, got, tc.want)
		}
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

type deadlineConn struct {
	net.Conn
	deadlineErr error
	writes      int
}

func (c *deadlineConn) SetWriteDeadline(time.Time) error { return c.deadlineErr }

func (c *deadlineConn) Write(b []byte) (int, error) {
	c.writes++
	return len(b), nil
}

func TestSessionWriteRequiresDeadline(t *testing.T) {
	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	tests := map[string]struct {
		deadlineErr error
		wantWrites  int
		wantErr     bool
	}{
		"deadline set":    {wantWrites: 1},
		"deadline failed": {deadlineErr: errors.New("setsockopt: invalid argument"), wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			conn := &deadlineConn{Conn: local, deadlineErr: tc.deadlineErr}
			sess := newSession(conn, 1, make(chan Event, 1), make(chan struct{}), Options{WriteTimeout: time.Second}, zap.NewNop())

			err := sess.Write([]byte("frame"))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Write err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, tc.deadlineErr) {
				t.Fatalf("Write err = %v, want it to wrap %v", err, tc.deadlineErr)
			}
			if conn.writes != tc.wantWrites {
				t.Fatalf("writes = %d, want %d", conn.writes, tc.wantWrites)
			}
		})
	}
}
