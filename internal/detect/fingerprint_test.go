package detect

import "testing"

func TestFingerprintStableAcrossCosmeticChanges(t *testing.T) {
	base := Fingerprint("def f():\n    return 1\n")

	variants := []string{
		"def f():\r\n    return 1\r\n",
		"def f():  \n    return 1\t\n",
		"def f():\n    return 1\n\n\n",
		"def f():\n    return 1",
	}
	for _, v := range variants {
		if got := Fingerprint(v); got != base {
			t.Errorf("Fingerprint(%q) = %s, want %s", v, got, base)
		}
	}
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a := Fingerprint("x = 1\n")
	b := Fingerprint("x = 2\n")
	if a == b {
		t.Error("different content must not collide")
	}
}

func TestFingerprintFormat(t *testing.T) {
	fp := Fingerprint("hello")
	if len(fp) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(fp))
	}
	for _, c := range fp {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("non-hex character %q in fingerprint", c)
		}
	}
}

func TestFingerprintLeadingWhitespaceSignificant(t *testing.T) {
	a := Fingerprint("    indented\n")
	b := Fingerprint("indented\n")
	if a == b {
		t.Error("leading indentation is content, not cosmetics")
	}
}
