package messagerouter

import (
	"fmt"
	"sync"

	"github.com/JebManMan/MeBot/common/message"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-messagerouter")
)

// Router delivers messages to every queue subscribed to their type. Each
// subscriber has its own queue, so a slow consumer only sees its own
// backlog collapse to the latest message.
type Router struct {
	mu     sync.RWMutex
	routes map[string]map[string]*message.Queue // message type -> queue id -> queue
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]map[string]*message.Queue),
	}
}

// AddSubscriber routes messages of msgType to q. Queues are keyed by ID.
func (r *Router) AddSubscriber(msgType string, q *message.Queue) error {
	if q == nil {
		return fmt.Errorf("AddSubscriber: nil queue for message type %s", msgType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.routes[msgType]
	if set == nil {
		set = make(map[string]*message.Queue)
		r.routes[msgType] = set
	}
	if _, present := set[q.ID()]; present {
		return fmt.Errorf("AddSubscriber: queue %s already subscribed to %s", q.ID(), msgType)
	}
	set[q.ID()] = q
	logger.Debugf("queue %s subscribed to %s", q.ID(), msgType)
	return nil
}

// Publish adds msg to every subscribed queue and returns how many queues
// received it.
func (r *Router) Publish(msg message.Message) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, q := range r.routes[msg.ID.Type] {
		q.Add(msg)
		n++
	}
	return n
}

// Stop drops all routes and discards the messages still queued on the
// subscribers. Queues can be subscribed again afterwards.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, set := range r.routes {
		for _, q := range set {
			q.Clear()
		}
	}
	r.routes = make(map[string]map[string]*message.Queue)
}
