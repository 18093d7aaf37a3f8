package portalauth

import (
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

type renderedMessage struct {
	kind MessageKind
	text string
}

// fakeRenderer records every collaborator call so tests can assert the exact
// render surface the core drives.
type fakeRenderer struct {
	mu        sync.Mutex
	texts     map[Slot]string
	required  map[string]bool
	formClear int
	messages  []renderedMessage
	visible   bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		texts:    map[Slot]string{},
		required: map[string]bool{},
	}
}

func (r *fakeRenderer) RenderText(slot Slot, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[slot] = text
}

func (r *fakeRenderer) SetFieldRequired(field string, required bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if required {
		r.required[field] = true
	} else {
		delete(r.required, field)
	}
}

func (r *fakeRenderer) ClearForm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formClear++
}

func (r *fakeRenderer) ShowMessage(kind MessageKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, renderedMessage{kind: kind, text: text})
	r.visible = true
}

func (r *fakeRenderer) HideMessage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

func (r *fakeRenderer) requiredFields() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.required))
	for f := range r.required {
		out = append(out, f)
	}
	return out
}

func (r *fakeRenderer) lastMessage() (renderedMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return renderedMessage{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *fakeRenderer) messageVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

func newTestEngine(t *testing.T, baseURL string) (*Engine, *fakeRenderer) {
	t.Helper()

	_, rdb := newTestRedis(t)
	return newTestEngineWithRedis(t, baseURL, rdb, nil)
}

func newTestEngineWithRedis(t *testing.T, baseURL string, rdb *redis.Client, signingKey []byte) (*Engine, *fakeRenderer) {
	t.Helper()

	renderer := newFakeRenderer()
	cfg := defaultConfig()
	cfg.Backend.BaseURL = baseURL
	cfg.Session.SigningKey = signingKey

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithRenderer(renderer).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, renderer
}

func testStudentIdentity() Identity {
	data := StudentData{
		AdmissionNumber: "GE2021001",
		FirstName:       "Aarav",
		LastName:        "Sharma",
		EmailID:         "aarav@example.edu",
		Department:      "CSE",
		CGPA:            "8.4",
	}
	return Identity{
		ID:    "GE2021001",
		Name:  "Aarav Sharma",
		Role:  RoleStudent,
		Email: "aarav@example.edu",
		Data:  data,
	}
}
