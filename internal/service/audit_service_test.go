package service

import (
	"context"
	"errors"
	"testing"

	"hotel-ortus/internal/domain/entity"

	"github.com/google/uuid"
)

func TestLogBookingChange(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(newTestLogger(), repo)
	actor := uuid.New()
	bookingID := uuid.New()

	err := svc.LogBookingChange(context.Background(), newTestDB(t), &actor, entity.AuditActionBookingStatus, bookingID, "pending", "confirmed")
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	entry := repo.logs[0]
	if entry.UserID == nil || *entry.UserID != actor {
		t.Fatal("expected the actor on the entry")
	}
	if entry.Metadata["entity"] != "booking" || entry.Metadata["entity_id"] != bookingID.String() {
		t.Fatalf("unexpected metadata %+v", entry.Metadata)
	}
	if entry.Metadata["old_value"] != "pending" || entry.Metadata["new_value"] != "confirmed" {
		t.Fatalf("unexpected values %+v", entry.Metadata)
	}
	if _, ok := entry.Metadata["actor"]; ok {
		t.Fatal("human actions carry no system marker")
	}
}

func TestLogUserActionError(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("insert failed")}
	svc := NewAuditService(newTestLogger(), repo)

	err := svc.LogUserAction(context.Background(), newTestDB(t), uuid.New(), entity.AuditActionUserLogin, entity.JSON{"email": "a@b.c"})
	if err == nil {
		t.Fatal("expected the repository error")
	}
}
