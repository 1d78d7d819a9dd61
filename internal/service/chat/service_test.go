package chat_test

import (
	"context"
	"testing"

	model "github.com/neo-arclight/roundtable/internal/model/chat"
	chat "github.com/neo-arclight/roundtable/internal/service/chat"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	saved, err := svc.Append(ctx, model.Message{Role: model.RoleUser, Content: "你好"})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated message ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	svc := chat.NewService()

	if _, err := svc.Append(context.Background(), model.Message{Role: model.RoleUser}); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestMessagesPreserveOrder(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	contents := []string{"第一句", "第二句", "第三句"}
	for _, c := range contents {
		if _, err := svc.Append(ctx, model.Message{Role: model.RoleAssistant, Content: c}); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	got := svc.Messages(ctx)
	if len(got) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(got))
	}
	for i, c := range contents {
		if got[i].Content != c {
			t.Fatalf("message %d out of order: got %q want %q", i, got[i].Content, c)
		}
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	if _, err := svc.Append(ctx, model.Message{Role: model.RoleUser, Content: "原文"}); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	snapshot := svc.Messages(ctx)
	snapshot[0].Content = "改写"

	if svc.Messages(ctx)[0].Content != "原文" {
		t.Fatal("transcript must not observe caller mutations")
	}
}

func TestHistoryWindow(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := svc.Append(ctx, model.Message{Role: model.RoleUser, Content: string(rune('a' + i))}); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	window := model.History(svc.Messages(ctx), 6)
	if len(window) != 6 {
		t.Fatalf("expected window of 6, got %d", len(window))
	}
	if window[0].Content != "e" || window[5].Content != "j" {
		t.Fatalf("unexpected window bounds: %+v", window)
	}
}
