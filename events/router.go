package events

// Handler processes specific event types
// Subscribers implement this interface to receive published events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Publish
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for the listed types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

// HandleEvent implements Handler
func (h HandlerFunc) HandleEvent(event GameEvent) { h.Fn(event) }

// EventTypes implements Handler
func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches lifecycle events to registered handlers
//
// Architecture:
//   - Single-threaded, synchronous dispatch: Publish returns after every handler ran
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - A handler registered while publishing receives only later events
type Router struct {
	handlers map[EventType][]Handler
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// On registers fn for a single event type
func (r *Router) On(t EventType, fn func(GameEvent)) {
	r.Register(HandlerFunc{Types: []EventType{t}, Fn: fn})
}

// Publish delivers ev to every handler of its type
func (r *Router) Publish(ev GameEvent) {
	handlers := r.handlers[ev.Type]
	// Snapshot length so registrations during dispatch are not visited
	for i, n := 0, len(handlers); i < n; i++ {
		handlers[i].HandleEvent(ev)
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
