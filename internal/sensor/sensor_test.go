package sensor

import "testing"

func TestFingerprintDeterministicForSameInputs(t *testing.T) {
	f := Finding{CheckID: "todo-scan", Code: "T001", Location: &Location{Path: "src/lib.go"}}

	a := NewFinding("tokmd", f)
	b := NewFinding("tokmd", f)

	if a.Fingerprint != b.Fingerprint {
		t.Fatal("expected identical fingerprints for identical inputs")
	}
	if len(a.Fingerprint) != 32 {
		t.Fatalf("expected 32-hex-char fingerprint, got %d chars", len(a.Fingerprint))
	}
}

func TestFingerprintChangesWithToolName(t *testing.T) {
	f := Finding{CheckID: "todo-scan", Code: "T001", Location: &Location{Path: "src/lib.go"}}

	a := NewFinding("tokmd", f)
	b := NewFinding("other-tool", f)

	if a.Fingerprint == b.Fingerprint {
		t.Fatal("expected different tool names to produce different fingerprints")
	}
}

func TestFingerprintDistinctWithAndWithoutLocation(t *testing.T) {
	withLoc := NewFinding("tokmd", Finding{CheckID: "x", Code: "C1", Location: &Location{Path: "a.go"}})
	withoutLoc := NewFinding("tokmd", Finding{CheckID: "x", Code: "C1"})

	if withLoc.Fingerprint == withoutLoc.Fingerprint {
		t.Fatal("expected omitting location to still produce a fingerprint distinct from the located version")
	}
	if len(withoutLoc.Fingerprint) != 32 {
		t.Fatalf("expected a 32-char fingerprint even with no location, got %d", len(withoutLoc.Fingerprint))
	}
}
