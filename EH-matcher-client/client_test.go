package main

import (
	"EH-Matcher/config"
	"EH-Matcher/pkg/matcher"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMatcher(t *testing.T) string {
	t.Helper()
	c := config.DefaultConfig()
	c.ManagerAddr = "127.0.0.1:0"
	mm := matcher.NewMatcherManager(c)
	require.NoError(t, mm.Listen())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, mm.Serve())
	}()
	t.Cleanup(func() {
		mm.Shutdown()
		<-done
	})
	return mm.Addr()
}

func TestSessionSend(t *testing.T) {
	s := newSession(startMatcher(t), defaultReadBufferSize)
	require.NoError(t, s.connect())
	defer s.close()

	resp, err := s.send("rk " + strings.Repeat("x", 2000) + "abcaby abcaby")
	require.NoError(t, err)
	assert.Equal(t, "2000", resp)

	resp, err = s.send("info")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp, "[INFO]\n"), resp)

	// the next reply is not mixed with the multi-line one
	resp, err = s.send("kmp abcxabcabcaby abcaby")
	require.NoError(t, err)
	assert.Equal(t, "[7]", resp)
}

func TestSessionReconnectClosesOldConn(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	accepted := make(chan net.Conn, 2)
	go func() {
		for i := 0; i < 2; i++ {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			accepted <- conn
		}
	}()

	s := newSession(listener.Addr().String(), defaultReadBufferSize)
	require.NoError(t, s.connect())
	first := <-accepted
	defer first.Close()

	require.NoError(t, s.connect())
	second := <-accepted
	defer second.Close()
	defer s.close()

	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = first.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
	assert.True(t, s.connected())
}

func TestSessionSendFailureDisconnects(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	s := newSession(listener.Addr().String(), defaultReadBufferSize)
	require.NoError(t, s.connect())
	_, err = s.send("info")
	assert.Error(t, err)
	assert.False(t, s.connected())
}
