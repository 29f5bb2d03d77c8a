package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startServer(t *testing.T) (*httptest.Server, string) {
	ts := httptest.NewServer(newServer(&Config{MaxMessage: 256}).routes())
	t.Cleanup(ts.Close)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed with error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req request) reply {
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
	return readReply(t, conn)
}

func readReply(t *testing.T, conn *websocket.Conn) reply {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var res reply
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("ReadJSON failed with error: %v", err)
	}
	return res
}

func TestServeStatic(t *testing.T) {
	ts, _ := startServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/ws") {
		t.Fatalf("unexpected index page: %d %q", resp.StatusCode, body)
	}
}

func TestWsEncodeDecode(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	res := roundTrip(t, conn, request{Op: "encode", Data: "hello"})
	if res.Error != "" || res.Op != "encode" || res.Board != helloBoard || res.Text != "hello" {
		t.Fatalf("unexpected encode reply %+v", res)
	}
	if res.FEN != "kNKQQpQp/Qk6/8/8/8/8/8/8" || !strings.HasPrefix(res.Grid, "k N K Q Q p Q p\n") || len(res.CRC16) != 4 {
		t.Fatalf("unexpected encode reply %+v", res)
	}

	for _, data := range []string{res.Board, res.FEN, res.Grid} {
		dec := roundTrip(t, conn, request{Op: "decode", Data: data})
		if dec.Error != "" || dec.Text != "hello" || dec.Board != helloBoard || dec.CRC16 != res.CRC16 {
			t.Fatalf("unexpected decode reply %+v", dec)
		}
	}

	for _, req := range []request{
		{Op: "encode", Data: "héllo"},
		{Op: "encode", Data: strings.Repeat("0", 32)},
		{Op: "decode", Data: "..."},
		{Op: "decode", Data: strings.Repeat(".", 63) + "x"},
		{Op: "flip", Data: "hello"},
	} {
		if res := roundTrip(t, conn, req); res.Error == "" || res.Board != "" {
			t.Fatalf("%+v: expected an error, got %+v", req, res)
		}
	}
}

func TestWsBroadcast(t *testing.T) {
	_, url := startServer(t)
	a := dial(t, url)
	roundTrip(t, a, request{Op: "encode", Data: "hello"})

	// new clients get the last board first
	b := dial(t, url)
	if res := readReply(t, b); res.Op != "board" || res.Board != helloBoard {
		t.Fatalf("unexpected first message %+v", res)
	}

	res := roundTrip(t, a, request{Op: "encode", Data: "AAA"})
	if got := readReply(t, b); got.Op != "board" || got.Board != res.Board || got.Text != "AAA" {
		t.Fatalf("unexpected broadcast %+v", got)
	}

	// decoding is not broadcast, b sees its own reply next
	roundTrip(t, a, request{Op: "decode", Data: res.Board})
	if got := roundTrip(t, b, request{Op: "decode", Data: helloBoard}); got.Op != "decode" || got.Text != "hello" {
		t.Fatalf("unexpected reply %+v", got)
	}
}

func TestWsIdleClient(t *testing.T) {
	ts, url := startServer(t)
	_ = dial(t, url) // never reads
	a := dial(t, url)

	var last reply
	for i := 0; i < 20; i++ {
		last = roundTrip(t, a, request{Op: "encode", Data: fmt.Sprintf("message %d", i)})
		if last.Error != "" {
			t.Fatalf("encode %d failed: %s", i, last.Error)
		}
	}

	// the live board is stored before the reply, so it is there as soon as the reply is
	c := dial(t, url)
	if got := readReply(t, c); got.Op != "board" || got.Board != last.Board || got.Text != "message 19" {
		t.Fatalf("unexpected first message %+v", got)
	}

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
}

func TestWsReadLimit(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)
	if err := conn.WriteJSON(request{Op: "encode", Data: strings.Repeat("A", 1024)}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var res reply
	if err := conn.ReadJSON(&res); err == nil {
		t.Fatalf("oversized request got a reply %+v", res)
	}
}
