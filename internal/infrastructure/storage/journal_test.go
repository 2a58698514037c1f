package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestJournalEncodeDecode(t *testing.T) {
	j := NewJournal(42, 1000, 16)
	j.Record(Entry{At: 1016, Action: "MOVE", Token: "captain", Payload: json.RawMessage(`{"x":3,"y":4}`)})
	j.Record(Entry{At: 1032, Action: "INIT", Token: "captain"})
	j.Record(Entry{At: 1048, Admin: true, Action: "GRANT", Token: "admin", Payload: json.RawMessage(`{"currency":5}`)})

	var buf bytes.Buffer
	if err := j.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Seed != 42 || got.Start != 1000 || got.TickMs != 16 {
		t.Errorf("header = %d %d %d", got.Seed, got.Start, got.TickMs)
	}
	entries := got.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	if e := entries[0]; e.At != 1016 || e.Action != "MOVE" || e.Token != "captain" || string(e.Payload) != `{"x":3,"y":4}` {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := entries[1]; e.Payload != nil || e.Admin {
		t.Errorf("entry 1 = %+v", e)
	}
	if e := entries[2]; !e.Admin || e.Action != "GRANT" {
		t.Errorf("entry 2 = %+v", e)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", append([]byte("CDRP"), make([]byte, 28)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(tt.data)); !errors.Is(err, ErrBadJournal) {
				t.Errorf("err = %v", err)
			}
		})
	}

	// Обрезанная запись
	j := NewJournal(1, 0, 16)
	j.Record(Entry{At: 16, Action: "INIT", Token: "x"})
	var buf bytes.Buffer
	j.Encode(&buf)
	cut := buf.Bytes()[:buf.Len()-2]
	if _, err := Decode(bytes.NewReader(cut)); !errors.Is(err, ErrBadJournal) {
		t.Errorf("truncated: err = %v", err)
	}
}
