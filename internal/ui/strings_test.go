package ui

import (
	"errors"
	"testing"
)

func TestTruncateAndFit(t *testing.T) {
	if got := truncate("Pump_Speed_Setpoint", 10); got != "Pump_Sp..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 2); got != "ab" {
		t.Fatalf("truncate tiny limit = %q", got)
	}
	if got := fit("ab", 4); got != "ab  " {
		t.Fatalf("fit pad = %q", got)
	}
	if got := fit("abcdef", 5); got != "ab..." {
		t.Fatalf("fit cut = %q", got)
	}
	if got := fit("abc", 0); got != "" {
		t.Fatalf("fit zero = %q", got)
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("execute request: dial tcp 127.0.0.1:5000: connect: connection refused"), "OFFLINE"},
		{errors.New("execute request: dial tcp: lookup plc: no such host"), "HOST NOT FOUND"},
		{errors.New("execute request: context deadline exceeded"), "TIMEOUT"},
		{errors.New("fetch snapshot: returned status 503"), "HTTP ERROR"},
		{errors.New("fetch snapshot: decode response: unexpected EOF"), "BAD PAYLOAD"},
		{errors.New("something else"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyConnectionError(tc.err); got != tc.want {
			t.Fatalf("classifyConnectionError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
