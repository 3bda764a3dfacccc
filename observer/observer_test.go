package observer

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/highlighter"
)

func TestHub_BroadcastReachesConnectedClient(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	server := httptest.NewServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server goroutine a moment to register the connection
	// before broadcasting, since ServeHTTP registers asynchronously
	// relative to the dial completing.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.conns)
		hub.mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast(Snapshot{Queries: 1, Total: 2, Highlight: 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"queries":1,"total":2,"highlight":3}`, string(payload))
}

func TestFromStats(t *testing.T) {
	snap := FromStats(highlighter.Stats{Queries: 4, Total: 9, Highlight: 2})
	require.Equal(t, Snapshot{Queries: 4, Total: 9, Highlight: 2}, snap)
}

func TestWatch_BroadcastsAfterApply(t *testing.T) {
	doc, err := dom.ParseHTML(`<html><body><p>the cat sat</p></body></html>`)
	require.NoError(t, err)
	root := doc.DocumentElement()
	var container *dom.Node
	for n := root.AsNode(); n != nil; n = n.NextInDocumentOrder(root.AsNode()) {
		if n.NodeType() == dom.ElementNode && (*dom.Element)(n).TagName() == "body" {
			container = n
			break
		}
	}
	require.NotNil(t, container)

	reg, err := highlighter.New(highlighter.Options{Container: container, MaxHighlight: 5})
	require.NoError(t, err)

	hub := NewHub(log.New(io.Discard, "", 0))
	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.conns)
		hub.mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	apply := Watch(reg, hub)

	reg.Add("the", []interface{}{"the"}, true, nil)
	apply()

	require.Equal(t, 1, reg.Stats().Total)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"queries":1,"total":1,"highlight":1}`, string(payload))
}
