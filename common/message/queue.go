// Queue provides a simple queue that supports the following
// features:
//  * Fair: items processed in the order in which they are added.
//  * Latest wins: if an item is added again before it can be processed, the
//      queued copy is replaced with the new one and processed only once.
//  * Multiple producers. In particular, it is allowed for an item to be
//      reenqueued while it is being processed.
//  * Non-blocking reads for consumers running inside the control loop.
package message

import "sync"

type set map[MessageID]struct{}

type Queue struct {
	QId        string
	mu         sync.Mutex
	queue      []Message
	dirty      map[MessageID]Message // latest copy of every queued or re-added item
	processing set
}

func NewQueue(id string) *Queue {
	return &Queue{
		QId:        id,
		dirty:      map[MessageID]Message{},
		processing: set{},
	}
}

func (q *Queue) ID() string {
	return q.QId
}

func (q *Queue) Add(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, exists := q.dirty[msg.ID]; exists {
		q.dirty[msg.ID] = msg
		if _, inFlight := q.processing[msg.ID]; !inFlight {
			for i := range q.queue {
				if q.queue[i].ID == msg.ID {
					q.queue[i] = msg
					break
				}
			}
		}
		return
	}
	q.dirty[msg.ID] = msg
	if _, exists := q.processing[msg.ID]; exists {
		// we'll add it from dirty when Done() is called
		return
	}
	q.queue = append(q.queue, msg)
}

// TryGet returns the next message without waiting. ok is false when the
// queue is empty.
func (q *Queue) TryGet() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return Message{}, false
	}
	msg := q.queue[0]
	q.queue = q.queue[1:]
	q.processing[msg.ID] = struct{}{}
	delete(q.dirty, msg.ID)
	return msg, true
}

func (q *Queue) Done(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.processing, msg.ID)
	pending, exists := q.dirty[msg.ID]
	if !exists {
		return
	}
	q.queue = append(q.queue, pending)
}

// Clear drops every queued message.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = nil
	q.dirty = map[MessageID]Message{}
	q.processing = set{}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}
