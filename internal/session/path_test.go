package session

import (
	"strings"
	"testing"
)

func TestSessionIDFromPath(t *testing.T) {
	t.Parallel()

	const id = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	cases := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{name: "valid", path: "/ws/" + id, want: id, ok: true},
		{name: "missing", path: "/ws/", want: "", ok: false},
		{name: "missing_no_trailing_slash", path: "/ws", want: "", ok: false},
		{name: "wrong_prefix", path: "/wss/" + id, want: "", ok: false},
		{name: "extra_segment", path: "/ws/" + id + "/x", want: "", ok: false},
		{name: "not_uuid", path: "/ws/abc123", want: "", ok: false},
		{name: "upper_case", path: "/ws/" + strings.ToUpper(id), want: "", ok: false},
		{name: "braces", path: "/ws/{" + id + "}", want: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := sessionIDFromPath("/ws/", tc.path)
			if ok != tc.ok {
				t.Fatalf("ok=%v, want %v (got=%q)", ok, tc.ok, got)
			}
			if got != tc.want {
				t.Fatalf("got=%q, want %q", got, tc.want)
			}
		})
	}
}
