package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/usecase"
)

type recordingCloser struct {
	*strings.Reader
	closed bool
}

func (r *recordingCloser) Close() error {
	r.closed = true
	return nil
}

func TestCloseAttachment(t *testing.T) {
	body := &recordingCloser{Reader: strings.NewReader("png bytes")}
	closeAttachment(&usecase.Attachment{FileName: "avatar.png", Body: body})
	if !body.closed {
		t.Fatal("attachment body was not closed")
	}

	// Neither a nil attachment nor a body without Close should panic.
	closeAttachment(nil)
	closeAttachment(&usecase.Attachment{Body: bytes.NewReader(nil)})
}

func TestProfileResponseExposesAttachmentKeyAsFile(t *testing.T) {
	key := "profiles/prof-1/abc.png"
	now := time.Now().UTC()

	raw, err := json.Marshal(newProfileResponse(&domain.Profile{
		ID:        "prof-1",
		AccountID: "acc-1",
		Name:      "Alice",
		Age:       30,
		FileKey:   &key,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	if err != nil {
		t.Fatalf("marshal profile response: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal profile response: %v", err)
	}

	if got, ok := payload["file"]; !ok || got != key {
		t.Fatalf("expected file field %q, got %v", key, payload["file"])
	}
	if _, ok := payload["file_key"]; ok {
		t.Fatal("unexpected file_key field in response")
	}

	// The field is omitted entirely for profiles without an attachment.
	raw, err = json.Marshal(newProfileResponse(&domain.Profile{ID: "prof-2"}))
	if err != nil {
		t.Fatalf("marshal profile response: %v", err)
	}
	if bytes.Contains(raw, []byte(`"file"`)) {
		t.Fatalf("expected no file field, got %s", raw)
	}
}
