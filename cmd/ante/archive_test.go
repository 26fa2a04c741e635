package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

type fakeRetriever struct {
	records []memory.TranslationRecord
	err     error
	asked   int
}

func (f *fakeRetriever) Retrieve(_ context.Context, n int) ([]memory.TranslationRecord, error) {
	f.asked = n
	return f.records, f.err
}

func TestWriteRecent(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &fakeRetriever{
		records: []memory.TranslationRecord{
			{
				ID:             7,
				OriginalText:   "Tom & Jerry",
				TranslatedText: "Tom et Jerry",
				InputLanguage:  "English",
				OutputLanguage: "French",
				Timestamp:      stamp,
			},
		},
	}

	var out bytes.Buffer
	if err := writeRecent(context.Background(), r, 3, &out); err != nil {
		t.Fatalf("writeRecent() error = %v", err)
	}

	if r.asked != 3 {
		t.Errorf("asked for %d records, want 3", r.asked)
	}

	want := `{"id":7,"original_text":"Tom & Jerry","translated_text":"Tom et Jerry",` +
		`"input_language":"English","output_language":"French","timestamp":"2024-05-01T12:00:00Z"}` + "\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestWriteRecent_Error(t *testing.T) {
	r := &fakeRetriever{err: errors.New("connection refused")}

	var out bytes.Buffer
	if err := writeRecent(context.Background(), r, 1, &out); err == nil {
		t.Error("writeRecent() should report a failed query")
	}

	if out.Len() != 0 {
		t.Errorf("nothing should be written, got %q", out.String())
	}
}

func TestShowRecent_NoDatabase(t *testing.T) {
	var out bytes.Buffer
	if err := showRecent(context.Background(), defaultUserConfig(), 5, &out); err == nil {
		t.Error("showRecent() without a database URL should fail")
	}
}
