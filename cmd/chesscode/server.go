package main

/*
Serves a small web page that shows boards as they are encoded, the page talks to /ws.
Every board encoded by any client is pushed to all the others, new clients get the last one.
*/

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/8ff/chesscode/pkg/board"
	chess_codec "github.com/8ff/chesscode/pkg/codecs/chess"
	"github.com/8ff/chesscode/pkg/crc"
	"github.com/8ff/chesscode/pkg/misc"
	"github.com/gorilla/websocket"
)

// Embed all files from static folder to serve over HTTP
//
//go:embed static
var staticWeb embed.FS

type request struct {
	Op   string `json:"op"` // encode or decode
	Data string `json:"data"`
}

type reply struct {
	Op    string `json:"op"`
	Board string `json:"board,omitempty"`
	Text  string `json:"text"`
	Grid  string `json:"grid,omitempty"`
	FEN   string `json:"fen,omitempty"`
	CRC16 string `json:"crc16,omitempty"`
	Error string `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // one writer at a time
}

// Time allowed to write a message to a client
const writeWait = 10 * time.Second

func (c *client) send(r reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(r)
}

type server struct {
	conf     *Config
	upgrader websocket.Upgrader

	mu        sync.Mutex
	clients   map[*client]bool
	lastBoard *reply
}

func newServer(conf *Config) *server {
	return &server{
		conf:     conf,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*client]bool),
	}
}

func (s *server) routes() http.Handler {
	html, _ := fs.Sub(staticWeb, "static")
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(html)))
	mux.HandleFunc("/ws", s.handleWs)
	return mux
}

// Function that handles /ws websocket connections, every text message is a JSON request
func (s *server) handleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		misc.Log("error", fmt.Sprintf("Error upgrading connection: %s", err))
		return
	}
	conn.SetReadLimit(s.conf.MaxMessage)
	c := &client{conn: conn}
	s.register(c)
	defer s.unregister(c)

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				misc.Log("warning", fmt.Sprintf("Closing client: %s", err))
			}
			return
		}

		res := handleRequest(req)
		var others []*client
		live := res
		live.Op = "board"
		if req.Op == "encode" && res.Error == "" {
			// Store it before replying so anyone who connects after the reply sees it
			others = s.setLastBoard(c, live)
		}
		if err := c.send(res); err != nil {
			misc.Log("error", fmt.Sprintf("Error sending reply to client: %s", err))
			return
		}
		broadcast(others, live)
	}
}

func handleRequest(req request) reply {
	res := reply{Op: req.Op}
	var err error
	switch req.Op {
	case "encode":
		res.Text = req.Data
		res.Board, err = chess_codec.Encode(req.Data)
	case "decode":
		res.Board, err = board.Parse(req.Data)
		if err == nil {
			res.Text, err = chess_codec.Decode(res.Board)
		}
	default:
		err = fmt.Errorf("unknown op %q", req.Op)
	}
	if err != nil {
		misc.Log("debug", fmt.Sprintf("Request %s failed: %s", req.Op, err))
		return reply{Op: req.Op, Error: err.Error()}
	}

	// Board is valid here, neither can fail
	grid, _ := board.Grid(res.Board)
	res.Grid = strings.TrimSuffix(grid, "\n")
	res.FEN, _ = board.FEN(res.Board)
	res.CRC16 = fmt.Sprintf("%04x", crc.Board16(res.Board))
	return res
}

func (s *server) register(c *client) {
	s.mu.Lock()
	s.clients[c] = true
	n := len(s.clients)
	last := s.lastBoard
	s.mu.Unlock()
	misc.Log("info", fmt.Sprintf("Clients: %d", n))

	// Send last board to client
	if last != nil {
		if err := c.send(*last); err != nil {
			misc.Log("error", fmt.Sprintf("Error sending last board to client: %s", err))
		}
	}
}

func (s *server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	n := len(s.clients)
	s.mu.Unlock()
	c.conn.Close()
	misc.Log("info", fmt.Sprintf("Clients: %d", n))
}

// setLastBoard stores r as the live board and returns every client except from
func (s *server) setLastBoard(from *client, r reply) []*client {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBoard = &r
	others := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		if c != from {
			others = append(others, c)
		}
	}
	return others
}

// Function that broadcasts a board to clients, call it without holding s.mu
func broadcast(clients []*client, r reply) {
	for _, c := range clients {
		if err := c.send(r); err != nil {
			misc.Log("error", fmt.Sprintf("%s", err))
			c.conn.Close() // its read loop ends and unregisters it
		}
	}
}

// Function that serves http
func (conf *Config) serveHTTP() error {
	s := newServer(conf)
	misc.Log("info", fmt.Sprintf("Starting http server on %s", conf.HTTP_Listen_Addr))
	return http.ListenAndServe(conf.HTTP_Listen_Addr, s.routes())
}
