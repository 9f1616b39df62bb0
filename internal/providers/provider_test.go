package providers

import (
	"errors"
	"net"
	"testing"
)

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		w, h int
		want string
	}{
		{1080, 1080, "1:1"},
		{1280, 720, "16:9"},
		{720, 1280, "9:16"},
		{1200, 630, "40:21"},
		{0, 100, "1:1"},
	}
	for _, tc := range cases {
		got := GenerateRequest{Width: tc.w, Height: tc.h}.AspectRatio()
		if got != tc.want {
			t.Fatalf("AspectRatio(%dx%d) = %q, want %q", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestIsNetworkError(t *testing.T) {
	if !IsNetworkError(&net.OpError{Op: "dial", Err: errors.New("connection refused")}) {
		t.Fatalf("expected OpError to be a network error")
	}
	if IsNetworkError(errors.New("bad request")) {
		t.Fatalf("plain error classified as network error")
	}
}
