package ws

import (
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHubTracksClients(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Close()

	a, b := &websocket.Conn{}, &websocket.Conn{}
	h.Add(a)
	h.Add(b)
	assert.Eventually(t, func() bool { return h.Count() == 2 }, time.Second, 5*time.Millisecond)

	h.Remove(a)
	h.Remove(a)
	assert.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHubClose(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	h.Add(&websocket.Conn{})

	h.Close()
	h.Close()

	select {
	case <-h.Done():
	default:
		t.Fatal("done not closed")
	}

	returned := make(chan struct{})
	go func() {
		conn := &websocket.Conn{}
		h.Add(conn)
		h.Remove(conn)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("hub blocked after close")
	}
	assert.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 5*time.Millisecond)
}
