package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"homework-tracker-api/models"
)

// memStore is an in-memory Store used by the service tests. writeErr makes
// every Write fail, for exercising the silent-failure policy.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *memStore) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newDeadlineFixture() (*DeadlineService, *memStore, *fakeClock, *Notifier) {
	store := newMemStore()
	notifier := NewNotifier()
	clk := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	svc := NewDeadlineService(store, notifier)
	svc.now = clk.Now
	return svc, store, clk, notifier
}

func TestSetDeadlineUpsertsByKey(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	first := clk.now.Add(48 * time.Hour)
	second := clk.now.Add(72 * time.Hour)

	if rec := svc.SetDeadline("hw-1", "grp-1", first); rec == nil {
		t.Fatal("first SetDeadline returned nil")
	}
	if rec := svc.SetDeadline("hw-1", "grp-1", second); rec == nil {
		t.Fatal("second SetDeadline returned nil")
	}

	records := svc.GetAllDeadlines()
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if !records[0].Deadline.Equal(second) {
		t.Fatalf("expected deadline %v, got %v", second, records[0].Deadline)
	}
	if records[0].CreatedBy != models.DefaultCreatedBy {
		t.Fatalf("expected created_by %q, got %q", models.DefaultCreatedBy, records[0].CreatedBy)
	}
}

func TestSetDeadlineKeepsDistinctPairsApart(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	due := clk.now.Add(48 * time.Hour)
	svc.SetDeadline("hw-1", "grp-1", due)
	svc.SetDeadline("hw-1", "grp-2", due)
	svc.SetDeadline("hw-2", "grp-1", due)

	if got := len(svc.GetAllDeadlines()); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}

	rec := svc.GetDeadline("hw-1", "grp-2")
	if rec == nil {
		t.Fatal("expected record for hw-1/grp-2")
	}
	if rec.HomeworkID != "hw-1" || rec.GroupID != "grp-2" {
		t.Fatalf("lookup returned wrong record: %+v", rec)
	}
}

func TestIsPastDeadlineWithoutRecord(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	if svc.IsPastDeadline("hw-1", "grp-1") {
		t.Fatal("no deadline must mean always open")
	}

	// Still open arbitrarily far in the future.
	clk.now = clk.now.AddDate(10, 0, 0)
	if svc.IsPastDeadline("hw-1", "grp-1") {
		t.Fatal("no deadline must stay open regardless of current time")
	}
}

func TestRemainingTimeUrgencyBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		urgency   string
	}{
		{"59 minutes", 59 * time.Minute, models.UrgencyCritical},
		{"exactly 1 hour", time.Hour, models.UrgencyUrgent},
		{"just under a day", 24*time.Hour - time.Second, models.UrgencyUrgent},
		{"exactly 1 day", 24 * time.Hour, models.UrgencySoon},
		{"35 hours rounds to 1 day", 35 * time.Hour, models.UrgencySoon},
		{"36 hours rounds to 2 days", 36 * time.Hour, models.UrgencyNormal},
		{"one week", 7 * 24 * time.Hour, models.UrgencyNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, clk, _ := newDeadlineFixture()
			svc.SetDeadline("hw-1", "grp-1", clk.now.Add(tc.remaining))

			status := svc.GetRemainingTime("hw-1", "grp-1")
			if !status.HasDeadline || !status.CanSubmit {
				t.Fatalf("expected open deadline, got %+v", status)
			}
			if status.Urgency != tc.urgency {
				t.Fatalf("expected urgency %q, got %q", tc.urgency, status.Urgency)
			}
			if status.RemainingMs != tc.remaining.Milliseconds() {
				t.Fatalf("expected %d ms remaining, got %d", tc.remaining.Milliseconds(), status.RemainingMs)
			}
		})
	}
}

func TestRemainingTimePastDeadlineIsTerminal(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	due := clk.now.Add(time.Hour)
	svc.SetDeadline("hw-1", "grp-1", due)

	clk.now = due.Add(time.Second)
	for i := 0; i < 3; i++ {
		status := svc.GetRemainingTime("hw-1", "grp-1")
		if !status.HasDeadline || !status.IsPastDeadline {
			t.Fatalf("expected past deadline at %v, got %+v", clk.now, status)
		}
		if status.CanSubmit {
			t.Fatalf("past deadline must not allow submission: %+v", status)
		}
		if status.Urgency != "" {
			t.Fatalf("past deadline must carry no urgency, got %q", status.Urgency)
		}
		clk.now = clk.now.AddDate(0, 1, 0)
	}
}

func TestRemainingTimeWithoutDeadline(t *testing.T) {
	svc, _, _, _ := newDeadlineFixture()

	status := svc.GetRemainingTime("hw-1", "grp-1")
	if status.HasDeadline {
		t.Fatalf("expected has_deadline=false, got %+v", status)
	}
	if status.IsPastDeadline || status.CanSubmit || status.Urgency != "" || status.RemainingMs != 0 {
		t.Fatalf("no-deadline status must be empty, got %+v", status)
	}
}

func TestGetBulkStatusPreservesOrder(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	svc.SetDeadline("hw-2", "grp-1", clk.now.Add(30*time.Minute))
	svc.SetDeadline("hw-3", "grp-1", clk.now.Add(10*24*time.Hour))

	ids := []string{"hw-1", "hw-2", "hw-3"}
	statuses := svc.GetBulkStatus(ids, "grp-1")
	if len(statuses) != len(ids) {
		t.Fatalf("expected %d statuses, got %d", len(ids), len(statuses))
	}
	for i, id := range ids {
		if statuses[i].HomeworkID != id {
			t.Fatalf("expected %q at position %d, got %q", id, i, statuses[i].HomeworkID)
		}
	}
	if statuses[0].DeadlineInfo.HasDeadline {
		t.Fatal("hw-1 has no deadline")
	}
	if statuses[1].DeadlineInfo.Urgency != models.UrgencyCritical {
		t.Fatalf("expected hw-2 critical, got %q", statuses[1].DeadlineInfo.Urgency)
	}
	if statuses[2].DeadlineInfo.Urgency != models.UrgencyNormal {
		t.Fatalf("expected hw-3 normal, got %q", statuses[2].DeadlineInfo.Urgency)
	}
}

func TestGetUpcomingDeadlinesFiltersByUrgencyAndGroup(t *testing.T) {
	svc, _, clk, _ := newDeadlineFixture()

	svc.SetDeadline("hw-critical", "grp-1", clk.now.Add(30*time.Minute))
	svc.SetDeadline("hw-urgent", "grp-1", clk.now.Add(10*time.Hour))
	svc.SetDeadline("hw-normal", "grp-1", clk.now.Add(5*24*time.Hour))
	svc.SetDeadline("hw-other-group", "grp-2", clk.now.Add(30*time.Minute))

	upcoming := svc.GetUpcomingDeadlines("grp-1")
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming deadlines, got %d", len(upcoming))
	}
	for _, entry := range upcoming {
		if entry.GroupID != "grp-1" {
			t.Fatalf("wrong group in upcoming list: %+v", entry)
		}
		if entry.Status.Urgency != models.UrgencyCritical && entry.Status.Urgency != models.UrgencyUrgent {
			t.Fatalf("unexpected urgency %q in upcoming list", entry.Status.Urgency)
		}
	}
}

func TestSetDeadlineStorageWriteFailure(t *testing.T) {
	svc, store, clk, notifier := newDeadlineFixture()

	fired := 0
	notifier.Subscribe(EventDeadlinesUpdated, func() { fired++ })

	store.writeErr = errors.New("storage unavailable")
	if rec := svc.SetDeadline("hw-1", "grp-1", clk.now.Add(time.Hour)); rec != nil {
		t.Fatalf("expected nil record on write failure, got %+v", rec)
	}
	if fired != 0 {
		t.Fatalf("failed mutation must not notify, fired %d times", fired)
	}
	if got := len(svc.GetAllDeadlines()); got != 0 {
		t.Fatalf("failed mutation must not persist, found %d records", got)
	}
}

func TestCorruptDeadlineStorageReadsAsEmpty(t *testing.T) {
	svc, store, clk, _ := newDeadlineFixture()

	store.data[StorageKeyDeadlines] = []byte("{not json")

	if got := svc.GetAllDeadlines(); len(got) != 0 {
		t.Fatalf("corrupt storage must read as empty, got %d records", len(got))
	}
	if svc.IsPastDeadline("hw-1", "grp-1") {
		t.Fatal("corrupt storage must behave as no deadline set")
	}

	// A write replaces the corrupt blob and recovers the collection.
	if rec := svc.SetDeadline("hw-1", "grp-1", clk.now.Add(time.Hour)); rec == nil {
		t.Fatal("SetDeadline must recover from corrupt storage")
	}
	if got := len(svc.GetAllDeadlines()); got != 1 {
		t.Fatalf("expected 1 record after recovery, got %d", got)
	}
}

func TestSetDeadlineFiresOneNotificationPerCall(t *testing.T) {
	svc, _, clk, notifier := newDeadlineFixture()

	fired := 0
	notifier.Subscribe(EventDeadlinesUpdated, func() { fired++ })

	svc.SetDeadline("hw-1", "grp-1", clk.now.Add(time.Hour))
	svc.SetDeadline("hw-1", "grp-1", clk.now.Add(2*time.Hour))

	if fired != 2 {
		t.Fatalf("expected 2 notifications, got %d", fired)
	}
}
