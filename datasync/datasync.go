// Package datasync is an in-process publish/subscribe layer keyed by
// collection name. Controllers publish after successful mutations and the
// WebSocket feed forwards events to connected clients, so every open view
// of a collection converges without polling. Delivery is best effort and
// carries no ordering guarantee between near-simultaneous writers.
package datasync

import (
	"encoding/json"
	"log"
	"sync"
)

const (
	ActionSet     = "set"     // full collection replaced
	ActionAppend  = "append"  // one item added
	ActionReplace = "replace" // one item replaced by id
	ActionRemove  = "remove"  // one item removed by id
)

// Event describes one change to a collection. Data is nil for removes and
// holds the full collection for sets.
type Event struct {
	Collection string          `json:"collection"`
	Action     string          `json:"action"`
	ID         string          `json:"id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type subscriber struct {
	collection string // empty means all collections
	fn         func(Event)
}

// Bus keeps a JSON mirror of each collection's items (keyed by item id) and
// fans change events out to subscribers.
type Bus struct {
	mu      sync.RWMutex
	mirror  map[string]map[string]json.RawMessage
	order   map[string][]string // insertion order of ids per collection
	subs    map[int]subscriber
	nextSub int
}

func New() *Bus {
	return &Bus{
		mirror: make(map[string]map[string]json.RawMessage),
		order:  make(map[string][]string),
		subs:   make(map[int]subscriber),
	}
}

// Default is the process-wide bus the controllers and the WebSocket feed share.
var Default = New()

// Subscribe registers fn for events on one collection. It returns an
// unsubscribe function.
func (b *Bus) Subscribe(collection string, fn func(Event)) func() {
	return b.subscribe(collection, fn)
}

// SubscribeAll registers fn for events on every collection.
func (b *Bus) SubscribeAll(fn func(Event)) func() {
	return b.subscribe("", fn)
}

func (b *Bus) subscribe(collection string, fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = subscriber{collection: collection, fn: fn}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Snapshot returns the mirrored items of a collection in insertion order.
func (b *Bus) Snapshot(collection string) []json.RawMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := b.order[collection]
	items := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		items = append(items, b.mirror[collection][id])
	}
	return items
}

// Set replaces the whole collection. ids and items run in parallel.
func (b *Bus) Set(collection string, ids []string, items []any) {
	raws := make(map[string]json.RawMessage, len(items))
	order := make([]string, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			log.Printf("datasync: marshal %s item failed: %v", collection, err)
			continue
		}
		raws[ids[i]] = raw
		order = append(order, ids[i])
	}

	all, _ := json.Marshal(items)
	b.mu.Lock()
	b.mirror[collection] = raws
	b.order[collection] = order
	b.mu.Unlock()

	b.publish(Event{Collection: collection, Action: ActionSet, Data: all})
}

// Append adds one item to the collection mirror and publishes it.
func (b *Bus) Append(collection, id string, item any) {
	raw, err := json.Marshal(item)
	if err != nil {
		log.Printf("datasync: marshal %s item failed: %v", collection, err)
		return
	}

	b.mu.Lock()
	if b.mirror[collection] == nil {
		b.mirror[collection] = make(map[string]json.RawMessage)
	}
	if _, exists := b.mirror[collection][id]; !exists {
		b.order[collection] = append(b.order[collection], id)
	}
	b.mirror[collection][id] = raw
	b.mu.Unlock()

	b.publish(Event{Collection: collection, Action: ActionAppend, ID: id, Data: raw})
}

// Replace swaps the item with the given id. Unknown ids fall back to Append
// so a mirror that missed the create still converges.
func (b *Bus) Replace(collection, id string, item any) {
	raw, err := json.Marshal(item)
	if err != nil {
		log.Printf("datasync: marshal %s item failed: %v", collection, err)
		return
	}

	b.mu.Lock()
	if b.mirror[collection] == nil {
		b.mirror[collection] = make(map[string]json.RawMessage)
	}
	if _, exists := b.mirror[collection][id]; !exists {
		b.order[collection] = append(b.order[collection], id)
	}
	b.mirror[collection][id] = raw
	b.mu.Unlock()

	b.publish(Event{Collection: collection, Action: ActionReplace, ID: id, Data: raw})
}

// Remove drops the item with the given id. Removing an unknown id still
// publishes, so stale mirrors converge.
func (b *Bus) Remove(collection, id string) {
	b.mu.Lock()
	if items, ok := b.mirror[collection]; ok {
		if _, exists := items[id]; exists {
			delete(items, id)
			order := b.order[collection]
			for i, v := range order {
				if v == id {
					b.order[collection] = append(order[:i], order[i+1:]...)
					break
				}
			}
		}
	}
	b.mu.Unlock()

	b.publish(Event{Collection: collection, Action: ActionRemove, ID: id})
}

func (b *Bus) publish(ev Event) {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.collection == "" || sub.collection == ev.Collection {
			fns = append(fns, sub.fn)
		}
	}
	b.mu.RUnlock()

	// Callbacks run outside the lock so a subscriber may re-enter the bus.
	for _, fn := range fns {
		fn(ev)
	}
}
