package room

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"test", "TEST", true},
		{"  abc123  ", "ABC123", true},
		{"A", "A", true},
		{"ABCDEFGHIJKL", "ABCDEFGHIJKL", true},
		{"", "", false},
		{"   ", "", false},
		{"ABCDEFGHIJKLM", "", false},
		{" abcdefghijklm ", "", false},
	}
	for _, c := range cases {
		got, err := NormalizeCode(c.in)
		if c.ok {
			if err != nil {
				t.Fatalf("NormalizeCode(%q) err = %v, want nil", c.in, err)
			}
			if got != c.want {
				t.Fatalf("NormalizeCode(%q) = %q, want %q", c.in, got, c.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("NormalizeCode(%q) err = %v, want ErrInvalidCode", c.in, err)
		}
	}
}

func TestGetOrCreateRoomReusesInstance(t *testing.T) {
	m := NewManager(testConfig(), nil)

	r1 := m.GetOrCreateRoom("TEST")
	r2 := m.GetOrCreateRoom("TEST")
	if r1 == nil || r1 != r2 {
		t.Fatalf("expected the same room instance for the same code")
	}
	if r1.Code != "TEST" {
		t.Fatalf("room code = %q, want %q", r1.Code, "TEST")
	}
	if m.GetOrCreateRoom("") != nil {
		t.Fatalf("empty code must not create a room")
	}
}

func TestRoomRemovedWhenEmptied(t *testing.T) {
	m := NewManager(testConfig(), nil)
	r := m.GetOrCreateRoom("TEST")

	fc := newFakeConn()
	res := join(t, r, fc)
	if n := len(m.ListRooms()); n != 1 {
		t.Fatalf("room count = %d, want 1", n)
	}

	r.Inbox <- Leave{PlayerID: res.PlayerID}

	deadline := time.After(time.Second)
	for len(m.ListRooms()) != 0 {
		select {
		case <-deadline:
			t.Fatalf("room never removed after last leave")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestCreateRoomGeneratesValidCode(t *testing.T) {
	m := NewManager(testConfig(), nil)

	code := m.CreateRoom()
	if len(code) != 6 {
		t.Fatalf("generated code %q length = %d, want 6", code, len(code))
	}
	for _, ch := range code {
		if !strings.ContainsRune(codeChars, ch) {
			t.Fatalf("generated code %q contains %q outside the alphabet", code, ch)
		}
	}
	if norm, err := NormalizeCode(code); err != nil || norm != code {
		t.Fatalf("generated code %q must already be normalized", code)
	}
	if m.GetOrCreateRoom(code) == nil {
		t.Fatalf("generated room not registered")
	}
}
