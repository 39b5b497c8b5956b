package source

import "testing"

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("got %q", out)
	}
	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Fatal("no CR must mean no change")
	}
}
