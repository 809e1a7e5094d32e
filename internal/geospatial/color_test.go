package geospatial

import (
	"regexp"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColorFor_Format(t *testing.T) {
	for _, prefix := range []string{"2", "23", "237", "2371", "23711", "0"} {
		c := ColorFor(prefix)
		if !hexColor.MatchString(c) {
			t.Errorf("prefix %q: bad color %q", prefix, c)
		}
	}
}

func TestColorFor_Deterministic(t *testing.T) {
	if ColorFor("237") != ColorFor("237") {
		t.Error("same prefix produced different colors")
	}
}

func TestColorFor_VariesByPrefix(t *testing.T) {
	// Not a collision-freedom guarantee, just a sanity check that the hash
	// actually depends on its input.
	colors := map[string]bool{}
	for _, prefix := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		colors[ColorFor(prefix)] = true
	}
	if len(colors) < 8 {
		t.Errorf("expected near-unique colors for 9 prefixes, got %d distinct", len(colors))
	}
}
