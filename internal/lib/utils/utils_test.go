package utils

import (
	"bytes"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[int64]int{2: 1}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "{\n  \"2\": 1\n}\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteJSONUnsupported(t *testing.T) {
	if err := WriteJSON(&bytes.Buffer{}, make(chan int)); err == nil {
		t.Fatalf("expected error for channel value")
	}
}
