package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAddrs(t *testing.T) {
	got, err := parseAddrs([]string{"C000", "$8010", "fffa"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint16{0xC000, 0x8010, 0xFFFA}, got); diff != "" {
		t.Errorf("parseAddrs mismatch (-want +got):\n%s", diff)
	}

	for _, s := range []string{"", "10000", "C0Z0"} {
		if _, err := parseAddrs([]string{s}); err == nil {
			t.Errorf("parseAddrs(%q) should fail", s)
		}
	}
}
