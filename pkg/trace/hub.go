// Package trace broadcasts the register file of a running machine to
// websocket clients.
package trace

import (
	"encoding/binary"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	defaultCacheSize = 64
	queueSize        = 1024
	clientQueueSize  = 256
)

type event struct {
	step     uint64
	mnemonic string
	regs     cpu.Registers
}

// Hub fans out trace events to every connected client. Events are
// published with Trace and delivered by Run.
type Hub struct {
	log.Logger

	clients              map[*client]bool
	register, unregister chan *client
	events               chan event
	done                 chan struct{}
	closeOnce            sync.Once

	cache        *cache
	cacheSize    int
	compress     bool
	quality      int
	infoInterval time.Duration

	currentID uint8
	lastStep  uint64
	dropped   atomic.Uint64
}

// HubOpt configures a Hub.
type HubOpt func(h *Hub)

// WithCompression compresses payloads with brotli at the given
// quality (0-11).
func WithCompression(quality int) HubOpt {
	return func(h *Hub) {
		h.compress = true
		h.quality = quality
	}
}

// WithCacheSize sets the number of payloads clients are expected to
// remember. Sizes outside 1-65536 are ignored.
func WithCacheSize(n int) HubOpt {
	return func(h *Hub) {
		if n > 0 && n <= 1<<16 {
			h.cacheSize = n
		}
	}
}

// NewHub returns a Hub. Run must be called for events to be delivered.
func NewHub(logger log.Logger, opts ...HubOpt) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	h := &Hub{
		Logger:       logger,
		clients:      make(map[*client]bool),
		register:     make(chan *client),
		unregister:   make(chan *client),
		events:       make(chan event, queueSize),
		done:         make(chan struct{}),
		cacheSize:    defaultCacheSize,
		infoInterval: time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.cache = newCache(h.cacheSize)

	return h
}

// Trace queues a step for delivery. It never blocks; when the queue
// is full the step is dropped.
func (h *Hub) Trace(step uint64, instr cpu.Instruction, regs cpu.Registers) {
	select {
	case h.events <- event{step: step, mnemonic: instr.String(), regs: regs}:
	default:
		h.dropped.Add(1)
	}
}

// Dropped returns the number of steps that could not be queued.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Run delivers events until Close is called.
func (h *Hub) Run() {
	t := time.NewTicker(h.infoInterval)
	defer t.Stop()

	for {
		select {
		case c := <-h.register:
			h.currentID++
			c.id = h.currentID
			h.clients[c] = true
			h.sync(c)
			h.Debugf("trace: client %d connected from %s", c.id, c.remoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.Debugf("trace: client %d disconnected", c.id)
			}
		case e := <-h.events:
			if msg, ok := h.encode(e); ok {
				h.broadcast(msg)
			}
		case <-t.C:
			if len(h.clients) > 0 {
				h.broadcast(h.info())
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			if n := h.Dropped(); n > 0 {
				h.Warnf("trace: %d steps dropped", n)
			}
			return
		}
	}
}

// encode turns an event into a step message, or a cached reference if
// an identical payload has been sent recently.
func (h *Hub) encode(e event) ([]byte, bool) {
	payload := EncodePayload(e.regs, e.mnemonic)
	if h.compress {
		var err error
		payload, err = cbrotli.Encode(payload, cbrotli.WriterOptions{
			Quality: h.quality,
		})
		if err != nil {
			h.Errorf("trace: compress step %d: %v", e.step, err)
			return nil, false
		}
	}
	h.lastStep = e.step

	hash := xxhash.Sum64(payload)
	if idx := h.cache.index(hash); idx != -1 {
		return createMessage(EventCached, idx, e.step, nil), true
	}
	idx := h.cache.add(hash, payload)
	return createMessage(EventStep, idx, e.step, payload), true
}

// broadcast sends msg to every client, dropping those that cannot
// keep up.
func (h *Hub) broadcast(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.Warnf("trace: client %d too slow, dropping", c.id)
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// sync replays the cache to a new client, finishing with the latest
// snapshot. Only as many of the newest entries as fit in the client's
// queue are replayed, so sync never blocks the hub.
func (h *Hub) sync(c *client) {
	latest := h.cache.latest()
	if latest == -1 {
		return
	}

	var replay []int
	h.cache.each(func(idx int, _ []byte) {
		if idx != latest {
			replay = append(replay, idx)
		}
	})
	if n := max(cap(c.send)-len(c.send)-1, 0); len(replay) > n {
		h.Debugf("trace: client %d skipping %d cached entries", c.id, len(replay)-n)
		replay = replay[len(replay)-n:]
	}

	for _, idx := range replay {
		if !trySend(c, createMessage(EventSync, idx, 0, h.cache.entries[idx].data)) {
			return
		}
	}
	trySend(c, createMessage(EventSync, latest, h.lastStep, h.cache.entries[latest].data))
}

func trySend(c *client, msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// info builds an EventInfo message.
func (h *Hub) info() []byte {
	data := []byte{EventInfo}
	for c := range h.clients {
		data = append(data, c.id)
		data = binary.LittleEndian.AppendUint16(data, uint16(min(c.latency.Load(), math.MaxUint16)))
	}
	return data
}

// ServeHTTP upgrades the request to a websocket and attaches it to
// the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Errorf("trace: upgrade %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, clientQueueSize),
		remoteAddr: r.RemoteAddr,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
