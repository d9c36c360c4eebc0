package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

type requestErr struct{}

func (requestErr) Error() string    { return "boom" }
func (requestErr) ErrorKind() Kind { return RequestFailed }

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: stderrors.New("x"), want: ""},
		{name: "direct", err: New(Validation, "title is required"), want: Validation},
		{name: "wrapped", err: fmt.Errorf("saving: %w", Wrap(Storage, "keychain", stderrors.New("locked"))), want: Storage},
		{name: "foreign kinded", err: fmt.Errorf("listing: %w", requestErr{}), want: RequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("locked")
	err := Wrap(Storage, "keychain", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if got := err.Error(); got != "storage: keychain: locked" {
		t.Errorf("Error() = %q", got)
	}
}
