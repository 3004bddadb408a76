package logstream

import (
	"sync"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/sirupsen/logrus"
)

const defaultBufferSize = 64

type HubOption func(h *Hub)

func HubWithBufferSize(size int) HubOption {
	return func(h *Hub) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// Hub fans delivery log rows out to the live subscribers of the same company.
// A subscriber that does not keep up loses rows instead of blocking the publisher.
type Hub struct {
	bufferSize int

	mux         sync.Mutex
	nextID      uint64
	subscribers map[string]map[uint64]chan model.WebhookLog
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		bufferSize:  defaultBufferSize,
		subscribers: make(map[string]map[uint64]chan model.WebhookLog),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a subscriber of the company. The returned cancel function closes the channel.
func (h *Hub) Subscribe(companyID string) (<-chan model.WebhookLog, func()) {
	h.mux.Lock()
	defer h.mux.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan model.WebhookLog, h.bufferSize)
	if h.subscribers[companyID] == nil {
		h.subscribers[companyID] = make(map[uint64]chan model.WebhookLog)
	}
	h.subscribers[companyID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mux.Lock()
			defer h.mux.Unlock()
			delete(h.subscribers[companyID], id)
			if len(h.subscribers[companyID]) == 0 {
				delete(h.subscribers, companyID)
			}
			close(ch)
		})
	}
}

func (h *Hub) Publish(log model.WebhookLog) {
	h.mux.Lock()
	defer h.mux.Unlock()

	for id, ch := range h.subscribers[log.CompanyID] {
		select {
		case ch <- log:
		default:
			logrus.Warnf("log stream subscriber %d of company %s is full, dropping log %s", id, log.CompanyID, log.ID)
		}
	}
}

// Subscribers returns the number of live subscribers of the company.
func (h *Hub) Subscribers(companyID string) int {
	h.mux.Lock()
	defer h.mux.Unlock()
	return len(h.subscribers[companyID])
}
