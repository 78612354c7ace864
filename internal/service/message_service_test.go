package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

func newMessageFixture() (MessageService, *fakeUserRepo, *fakeMessageRepo, *fakeNotifier) {
	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	notifier := &fakeNotifier{}
	svc := NewMessageService(messages, users, &fakeActivityRepo{}, notifier, zerolog.Nop())
	return svc, users, messages, notifier
}

func TestUnreadCountIncludesReadAnnouncements(t *testing.T) {
	svc, _, messages, _ := newMessageFixture()
	ctx := context.Background()

	tenant := int64(1)
	messages.Create(ctx, &model.Message{UserID: &tenant, Sender: model.SenderAdmin, Subject: "Direct", Content: "hi"})
	read := &model.Message{Sender: model.SenderAdmin, Subject: "Old news", Content: "x", IsAnnouncement: true, IsRead: true}
	messages.Create(ctx, read)
	messages.Create(ctx, &model.Message{Sender: model.SenderAdmin, Subject: "Fresh news", Content: "y", IsAnnouncement: true})

	direct, announcements, err := svc.UnreadCount(ctx, tenant)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if direct != 1 {
		t.Errorf("direct = %d, want 1", direct)
	}
	// The badge counts every announcement, read or not.
	if announcements != 2 {
		t.Errorf("announcements = %d, want 2", announcements)
	}
}

func TestMarkReadEnforcesOwnershipForDirectMessages(t *testing.T) {
	svc, _, messages, _ := newMessageFixture()
	ctx := context.Background()

	owner := int64(1)
	msg := &model.Message{UserID: &owner, Sender: model.SenderAdmin, Subject: "Hello", Content: "hi"}
	messages.Create(ctx, msg)

	if err := svc.MarkRead(ctx, msg.ID, 2); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("foreign tenant err = %v, want ErrMessageNotFound", err)
	}
	if msg.IsRead {
		t.Fatal("foreign tenant must not flip the read flag")
	}

	if err := svc.MarkRead(ctx, msg.ID, owner); err != nil {
		t.Fatalf("owner MarkRead: %v", err)
	}
	if !msg.IsRead {
		t.Fatal("owner MarkRead did not flip the flag")
	}

	// Idempotent re-apply.
	if err := svc.MarkRead(ctx, msg.ID, owner); err != nil {
		t.Fatalf("repeated MarkRead: %v", err)
	}
}

func TestAnnouncementReadFlagIsShared(t *testing.T) {
	svc, _, messages, _ := newMessageFixture()
	ctx := context.Background()

	ann := &model.Message{Sender: model.SenderAdmin, Subject: "Maintenance", Content: "tonight", IsAnnouncement: true}
	messages.Create(ctx, ann)

	// Any tenant may mark an announcement read, and the single flag is
	// shared by every viewer.
	if err := svc.MarkRead(ctx, ann.ID, 42); err != nil {
		t.Fatalf("MarkRead on announcement: %v", err)
	}

	_, announcements, err := svc.Notifications(ctx, 7)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(announcements) != 1 || !announcements[0].IsRead {
		t.Errorf("announcement not visible as read to other tenants: %+v", announcements)
	}
}

func TestSubmitSupportPrefixesCategory(t *testing.T) {
	svc, _, _, _ := newMessageFixture()

	msg, err := svc.SubmitSupport(context.Background(), 1, "billing", "Refund", "please")
	if err != nil {
		t.Fatalf("SubmitSupport: %v", err)
	}
	if !strings.HasPrefix(msg.Subject, "[BILLING] ") {
		t.Errorf("subject = %q, want [BILLING] prefix", msg.Subject)
	}

	msg, err = svc.SubmitSupport(context.Background(), 1, "", "Question", "hi")
	if err != nil {
		t.Fatalf("SubmitSupport: %v", err)
	}
	if !strings.HasPrefix(msg.Subject, "[GENERAL] ") {
		t.Errorf("subject = %q, want [GENERAL] default", msg.Subject)
	}
}

func TestAnnounceFansOutSMSOnlyToTenantsWithPhones(t *testing.T) {
	svc, users, _, notifier := newMessageFixture()
	ctx := context.Background()

	users.Create(ctx, &model.User{Email: "a@example.com", Phone: "+255700000001"})
	users.Create(ctx, &model.User{Email: "b@example.com"})
	users.Create(ctx, &model.User{Email: "c@example.com", Phone: "+255700000003"})

	if _, err := svc.Announce(ctx, "News", "content", true); err != nil {
		t.Fatalf("Announce: %v", err)
	}
	if len(notifier.calls) != 2 {
		t.Errorf("notified %d tenants, want 2 (phone holders only)", len(notifier.calls))
	}

	notifier.calls = nil
	if _, err := svc.Announce(ctx, "Quiet", "content", false); err != nil {
		t.Fatalf("Announce: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("sendSMS=false still notified %d tenants", len(notifier.calls))
	}
}

func TestSendToUserNotifiesAndRequiresUser(t *testing.T) {
	svc, users, _, notifier := newMessageFixture()
	ctx := context.Background()

	if _, err := svc.SendToUser(ctx, 9, "Hi", "content"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	user := &model.User{Email: "shop@example.com", Phone: "+255700000001"}
	users.Create(ctx, user)
	msg, err := svc.SendToUser(ctx, user.ID, "", "content")
	if err != nil {
		t.Fatalf("SendToUser: %v", err)
	}
	if msg.Subject != "Message from Admin" {
		t.Errorf("subject = %q, want default", msg.Subject)
	}
	if len(notifier.calls) != 1 {
		t.Errorf("expected one SMS notification, got %d", len(notifier.calls))
	}
}
