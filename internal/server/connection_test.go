package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialTestConn(t *testing.T) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Keep the server side open for the duration of the test.
		t.Cleanup(func() { ws.Close() })
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return ws
}

func TestConnectionCloseTwice(t *testing.T) {
	conn := NewConnection(dialTestConn(t), &Server{})

	// The read pump and server shutdown can both reach Close; the second
	// call must be a no-op rather than a double channel close.
	conn.Close()
	conn.Close()

	select {
	case _, open := <-conn.send:
		if open {
			t.Fatalf("send channel should be closed")
		}
	default:
		t.Fatalf("send channel should be closed, not empty and open")
	}
}
