package sql

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startupListener accepts postgres connections and reports the parameters of each startup
// message before hanging up.
func startupListener(t *testing.T) (host, port string, params <-chan map[string]string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() { ln.Close() })

	ch := make(chan map[string]string, 8)

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}

			select {
			case ch <- readStartupParams(conn):
			default:
			}

			conn.Close()
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	return host, port, ch
}

func readStartupParams(r io.Reader) map[string]string {
	var length int32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil || length < 8 {
		return nil
	}

	body := make([]byte, length-4)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil
	}

	// body starts with the protocol version, followed by name/value pairs
	fields := strings.Split(string(body[4:]), "\x00")
	params := make(map[string]string)

	for i := 0; i+1 < len(fields) && fields[i] != ""; i += 2 {
		params[fields[i]] = fields[i+1]
	}

	return params
}

func TestDBCredentials_PostgresStartupParameters(t *testing.T) {
	testCases := []struct {
		desc     string
		password string
	}{
		{"empty password", ""},
		{"password with space", "my secret"},
		{"password with quote", `it's\here`},
	}

	for i, tc := range testCases {
		host, port, params := startupListener(t)

		creds := NewCredentials(&DBConfig{Dialect: "postgres", HostName: host, Port: port, User: "app",
			Password: tc.password, Database: "shop", SSLMode: "disable"})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		_, err := creds.Connection(ctx)
		require.Error(t, err, "TEST[%d]: %s failed", i, tc.desc)

		cancel()
		require.NoError(t, creds.Close())

		select {
		case got := <-params:
			assert.Equal(t, "shop", got["database"], "TEST[%d]: %s failed", i, tc.desc)
			assert.Equal(t, "app", got["user"], "TEST[%d]: %s failed", i, tc.desc)
		case <-time.After(5 * time.Second):
			t.Fatalf("TEST[%d]: %s failed: no startup message received", i, tc.desc)
		}
	}
}
