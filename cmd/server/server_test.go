//go:build !integration

package main

import (
	"bytes"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	return address
}

func TestServerApp(t *testing.T) {
	t.Run("should exit cleanly when stopped", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)
		address := freeAddress(t)

		httpServer := &http.Server{
			Addr: address,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}),
		}

		stop := make(chan os.Signal, 1)
		code := make(chan int, 1)
		go func() {
			code <- serverApp(httpServer, &log, stop)
		}()

		require.Eventually(t, func() bool {
			response, err := http.Get("http://" + address)
			if err != nil {
				return false
			}
			_ = response.Body.Close()
			return response.StatusCode == http.StatusOK
		}, 2*time.Second, 10*time.Millisecond)

		stop <- syscall.SIGTERM

		select {
		case result := <-code:
			assert.Equal(t, 0, result)
		case <-time.After(shutdownTimeout):
			t.Fatal("server did not stop")
		}
	})

	t.Run("should fail when the address is taken", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		httpServer := &http.Server{Addr: listener.Addr().String()}

		result := serverApp(httpServer, &log, make(chan os.Signal))

		assert.Equal(t, 1, result)
		assert.Contains(t, out.String(), "Server failed")
	})
}
