package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, key []byte, ttl time.Duration) (*miniredis.Miniredis, *Store) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, NewStore(rdb, "ps", key, ttl)
}

func studentRecord() *Record {
	return &Record{
		ID:          "GE2021001",
		Name:        "Aarav Sharma",
		Role:        "student",
		Email:       "aarav@example.edu",
		StudentData: json.RawMessage(`{"studentAdmissionNumber":"GE2021001","cgpa":"8.4"}`),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	_, store := newTestStore(t, []byte("round-trip-key"), 0)
	ctx := context.Background()

	rec := studentRecord()
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned absent after Save")
	}
	if got.ID != rec.ID || got.Name != rec.Name || got.Role != rec.Role || got.Email != rec.Email {
		t.Fatalf("loaded record = %+v, want %+v", got, rec)
	}
	if string(got.StudentData) != string(rec.StudentData) {
		t.Fatalf("role data = %s, want %s", got.StudentData, rec.StudentData)
	}
}

func TestStoreLoadAbsent(t *testing.T) {
	_, store := newTestStore(t, []byte("k"), 0)

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("empty store returned %+v", rec)
	}
}

func TestStoreClear(t *testing.T) {
	_, store := newTestStore(t, []byte("k"), 0)
	ctx := context.Background()

	if err := store.Save(ctx, studentRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if rec, err := store.Load(ctx); err != nil || rec != nil {
		t.Fatalf("after Clear: rec=%v err=%v, want absent", rec, err)
	}

	// Clearing an absent session is not an error.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	_, store := newTestStore(t, []byte("k"), 0)
	ctx := context.Background()

	if err := store.Save(ctx, studentRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	admin := &Record{
		ID:        "ADM001",
		Name:      "Priya",
		Role:      "admin",
		AdminData: json.RawMessage(`{"adminId":"ADM001"}`),
	}
	if err := store.Save(ctx, admin); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil || got == nil {
		t.Fatalf("Load failed: rec=%v err=%v", got, err)
	}
	if got.ID != "ADM001" || got.Role != "admin" {
		t.Fatalf("loaded record = %+v, want the overwriting admin record", got)
	}
}

func TestStoreDiscardsMalformedBlob(t *testing.T) {
	mr, store := newTestStore(t, []byte("k"), 0)
	ctx := context.Background()

	mr.Set("ps:current", "not-a-signed-envelope")

	rec, err := store.Load(ctx)
	if err != nil || rec != nil {
		t.Fatalf("malformed blob: rec=%v err=%v, want absent", rec, err)
	}
	if mr.Exists("ps:current") {
		t.Fatal("malformed blob left in place")
	}
}

func TestStoreRejectsBlobFromOtherKey(t *testing.T) {
	mr, store := newTestStore(t, []byte("key-one"), 0)
	ctx := context.Background()

	blob, err := Encode(studentRecord(), []byte("key-two"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	mr.Set("ps:current", blob)

	rec, err := store.Load(ctx)
	if err != nil || rec != nil {
		t.Fatalf("foreign blob: rec=%v err=%v, want absent", rec, err)
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	mr, store := newTestStore(t, []byte("k"), time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, studentRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if rec, err := store.Load(ctx); err != nil || rec != nil {
		t.Fatalf("after TTL: rec=%v err=%v, want absent", rec, err)
	}
}

func TestRecordValidateTaggedUnion(t *testing.T) {
	student := json.RawMessage(`{"studentAdmissionNumber":"x"}`)
	admin := json.RawMessage(`{"adminId":"x"}`)

	cases := []struct {
		name string
		rec  *Record
		ok   bool
	}{
		{"student with student data", &Record{ID: "a", Role: "student", StudentData: student}, true},
		{"admin with admin data", &Record{ID: "a", Role: "admin", AdminData: admin}, true},
		{"company with company data", &Record{ID: "a", Role: "company", CompanyData: json.RawMessage(`{}`)}, true},
		{"missing id", &Record{Role: "student", StudentData: student}, false},
		{"unknown role", &Record{ID: "a", Role: "root", StudentData: student}, false},
		{"role without matching data", &Record{ID: "a", Role: "student", AdminData: admin}, false},
		{"two variants set", &Record{ID: "a", Role: "student", StudentData: student, AdminData: admin}, false},
		{"no data at all", &Record{ID: "a", Role: "student"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.validate()
			if tc.ok && err != nil {
				t.Fatalf("validate failed: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("invalid record accepted")
			}
		})
	}
}

func TestEncodeRejectsInvalidRecord(t *testing.T) {
	if _, err := Encode(&Record{ID: "a", Role: "student"}, []byte("k")); err == nil {
		t.Fatal("Encode accepted a record with no role data")
	}
	if _, err := Encode(studentRecord(), nil); err == nil {
		t.Fatal("Encode accepted an empty signing key")
	}
}

func TestDecodeCollapsesFailures(t *testing.T) {
	key := []byte("k")

	cases := []string{
		"",
		"garbage",
		"a.b.c",
	}
	for _, blob := range cases {
		if _, err := Decode(blob, key); err == nil {
			t.Fatalf("Decode(%q) succeeded", blob)
		}
	}
}

func TestStorePing(t *testing.T) {
	mr, store := newTestStore(t, []byte("k"), 0)

	if _, err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	mr.Close()
	if _, err := store.Ping(context.Background()); err == nil {
		t.Fatal("Ping succeeded against a closed server")
	}
}
