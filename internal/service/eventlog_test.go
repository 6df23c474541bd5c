package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadscout"
)

func TestEventLog_List_PassesNormalizedFilter(t *testing.T) {
	repo := &fakeEventRepo{
		listResp: []loadscout.PipelineEvent{{EventID: "e1", Type: EventJobCreated}},
	}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("UTC+5", 5*3600)
	from := time.Date(2026, 8, 1, 10, 0, 0, 0, loc)
	to := time.Date(2026, 8, 2, 10, 0, 0, 0, loc)

	events, err := svc.List(context.Background(), LogFilter{
		From: from,
		To:   to,
		Type: "  job_created ",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if repo.calls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.calls)
	}
	if repo.gotFrom.Location() != time.UTC || repo.gotTo.Location() != time.UTC {
		t.Fatalf("expected UTC-normalized bounds, got %v / %v", repo.gotFrom, repo.gotTo)
	}
	if repo.gotType != "JOB_CREATED" {
		t.Fatalf("expected normalized type JOB_CREATED, got %q", repo.gotType)
	}
}

func TestEventLog_List_ZeroTimesPreserved(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !repo.gotFrom.IsZero() || !repo.gotTo.IsZero() {
		t.Fatalf("zero bounds must stay zero, got %v / %v", repo.gotFrom, repo.gotTo)
	}
}

func TestEventLog_List_InvalidRange(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatalf("expected error for From > To")
	}
	if repo.calls != 0 {
		t.Fatalf("repo must not be hit on invalid range")
	}
}

func TestEventLog_List_RepoError(t *testing.T) {
	repo := &fakeEventRepo{listErr: errors.New("db down")}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected repo error to propagate")
	}
}
