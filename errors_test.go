package crmdocs

import (
	"errors"
	"fmt"
	"testing"
)

func TestDocErrorUnwrap(t *testing.T) {
	err := Wrap("DecodeParameters", fmt.Errorf("line 3: %w", ErrInvalidParameters))
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters in chain, got %v", err)
	}
	var de *DocError
	if !errors.As(err, &de) {
		t.Fatal("expected *DocError")
	}
	if de.Op != "DecodeParameters" {
		t.Fatalf("unexpected op %q", de.Op)
	}
	want := "crmdocs.DecodeParameters: line 3: crmdocs: invalid parameters"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap("Op", nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
	if got := (&DocError{Op: "X"}).Error(); got != "crmdocs.X: unknown error" {
		t.Fatalf("unexpected %q", got)
	}
}
