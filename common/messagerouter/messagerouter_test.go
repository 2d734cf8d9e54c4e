package messagerouter

import (
	"testing"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/message"
)

// TestRouter_TwoSubscribers: two queues subscribe to drive commands, a third
// to something else. A drive command shows up on the first two only.
func TestRouter_TwoSubscribers(t *testing.T) {
	router := NewRouter()
	q1 := message.NewQueue("mode-1")
	q2 := message.NewQueue("mode-2")
	other := message.NewQueue("other")

	if err := router.AddSubscriber(common.MessageType_CmdDrive, q1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := router.AddSubscriber(common.MessageType_CmdDrive, q2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := router.AddSubscriber("unit-test", other); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	msg := message.NewDriveMessage("forward", 10, 20)
	if n := router.Publish(msg); n != 2 {
		t.Fatalf("expected 2 deliveries, got %d", n)
	}
	for _, q := range []*message.Queue{q1, q2} {
		got, ok := q.TryGet()
		if !ok {
			t.Fatalf("queue %s: expected a message", q.ID())
		}
		if got.Data.(message.DriveData).Right != 20 {
			t.Errorf("queue %s: unexpected message %+v", q.ID(), got)
		}
		q.Done(got)
	}
	if other.Len() != 0 {
		t.Errorf("unsubscribed queue received %d messages", other.Len())
	}
}

func TestRouter_Subscriptions(t *testing.T) {
	router := NewRouter()
	q := message.NewQueue("mode-1")

	if err := router.AddSubscriber(common.MessageType_CmdDrive, nil); err == nil {
		t.Errorf("expected an error for nil queue")
	}
	if err := router.AddSubscriber(common.MessageType_CmdDrive, q); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := router.AddSubscriber(common.MessageType_CmdDrive, q); err == nil {
		t.Errorf("expected an error subscribing twice")
	}
	if n := router.Publish(message.NewDriveMessage("stop", 0, 0)); n != 1 {
		t.Errorf("expected 1 delivery, got %d", n)
	}
}

func TestRouter_Stop(t *testing.T) {
	router := NewRouter()
	q := message.NewQueue("mode-1")
	if err := router.AddSubscriber(common.MessageType_CmdDrive, q); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	router.Publish(message.NewDriveMessage("forward", 1, 1))
	router.Stop()
	if q.Len() != 0 {
		t.Errorf("expected queued messages to be dropped, got %d", q.Len())
	}
	if n := router.Publish(message.NewDriveMessage("stop", 0, 0)); n != 0 {
		t.Errorf("expected no deliveries after stop, got %d", n)
	}

	// resubscribing after stop restores delivery
	if err := router.AddSubscriber(common.MessageType_CmdDrive, q); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n := router.Publish(message.NewDriveMessage("stop", 0, 0)); n != 1 {
		t.Errorf("expected 1 delivery after resubscribing, got %d", n)
	}
}
