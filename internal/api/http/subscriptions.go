package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"eats-backend/internal/domain"
)

// Subscription endpoints stream order events over SSE. Publishing is
// unconditional; each subscriber's filter runs here, against its own identity,
// so the bus itself needs no routing beyond the channel name.

func (h *Handler) pendingOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	h.streamEvents(w, r, domain.NewPendingOrder, func(event domain.OrderEvent) bool {
		return event.OwnerID == user.ID
	})
}

func (h *Handler) cookedOrders(w http.ResponseWriter, r *http.Request) {
	// Any driver may see any newly cooked order; the pool has not claimed it
	// yet.
	h.streamEvents(w, r, domain.NewCookedOrder, func(domain.OrderEvent) bool {
		return true
	})
}

func (h *Handler) orderUpdates(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	orderID, err := strconv.Atoi(r.URL.Query().Get("orderId"))
	if err != nil || orderID <= 0 {
		http.Error(w, "orderId query parameter is required", http.StatusBadRequest)
		return
	}

	h.streamEvents(w, r, domain.NewOrderUpdate, func(event domain.OrderEvent) bool {
		if event.OrderID != orderID {
			return false
		}
		return user.ID == event.CustomerID || user.ID == event.DriverID || user.ID == event.OwnerID
	})
}

func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request, channel string, keep func(domain.OrderEvent) bool) {
	flusher, okFlush := w.(http.Flusher)
	if !okFlush {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel, err := h.Bus.Subscribe(r.Context(), channel)
	if err != nil {
		http.Error(w, "Could not subscribe.", http.StatusInternalServerError)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			if !keep(event) {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", channel, payload)
			flusher.Flush()
		}
	}
}
