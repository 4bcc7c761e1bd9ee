package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestKindOf_WrappedChain(t *testing.T) {
	base := NotFound("no light curve for %s", "TIC 1")
	wrapped := fmt.Errorf("lightcurve: fetching: %w", base)

	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("expected %s, got %s", KindNotFound, got)
	}
	if !Is(wrapped, KindNotFound) {
		t.Error("expected Is to match KindNotFound through wrapping")
	}
	if Is(nil, KindNotFound) {
		t.Error("expected Is(nil) to be false")
	}
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	if got := KindOf(io.EOF); got != KindInternal {
		t.Errorf("expected %s, got %s", KindInternal, got)
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("no finite flux values")
	err := Computation("computing statistics", cause)

	if err.Error() != "computing statistics: no finite flux values" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInput, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUpstream, http.StatusBadGateway},
		{KindComputation, http.StatusInternalServerError},
		{KindConfiguration, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
		{Kind("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := HTTPStatus(tt.kind); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
