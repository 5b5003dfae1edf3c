package notify

import (
	"context"
	"testing"

	"github.com/example/community-platform/internal/store"
)

func TestStoreSink_WritesInbox(t *testing.T) {
	inbox := store.NewInMemoryNotificationStore()
	sink := StoreSink{Store: inbox}
	ctx := context.Background()

	if err := sink.Notify(ctx, "user-a", "New comment on your post: Hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	items, err := inbox.ListByRecipient(ctx, "user-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	if items[0].Message != "New comment on your post: Hello" {
		t.Fatalf("unexpected message %q", items[0].Message)
	}
	if items[0].IsRead {
		t.Fatal("expected unread on arrival")
	}
}

func TestPublisher_NilSafe(t *testing.T) {
	var p *Publisher
	if err := p.Notify(context.Background(), "user-a", "msg"); err != nil {
		t.Fatalf("nil publisher must be a no-op, got %v", err)
	}

	stub, err := NewPublisher(nil, nil)
	if err != nil {
		t.Fatalf("stub publisher: %v", err)
	}
	if err := stub.Notify(context.Background(), "user-a", "msg"); err != nil {
		t.Fatalf("stub publish: %v", err)
	}
}
