package core

import "testing"

func TestSerializeTriGParseRoundTrip(t *testing.T) {
	ds, info := newTestDataset()
	text := SerializeTriG(ds, info.URI, info.NS)

	reparsed, err := ParseDataset([]byte(text))
	if err != nil {
		t.Fatalf("re-parsing serialized TriG failed: %v\n--- text ---\n%s", err, text)
	}
	if len(reparsed.Quads) != len(ds.Quads) {
		t.Fatalf("expected %d quads after round trip, got %d", len(ds.Quads), len(reparsed.Quads))
	}

	reinfo, err := ExtractInfo(reparsed)
	if err != nil {
		t.Fatalf("ExtractInfo on round-tripped dataset failed: %v", err)
	}
	if reinfo.URI != info.URI || reinfo.Assertion != info.Assertion {
		t.Fatalf("expected structural identity after round trip, got %+v vs %+v", reinfo, info)
	}
}

func TestSerializeTriGUsesFixedGraphOrder(t *testing.T) {
	ds, info := newTestDataset()
	text := SerializeTriG(ds, info.URI, info.NS)

	// Head/assertion/provenance/pubinfo all fall under the "sub" prefix
	// (anchored on the nanopub's own namespace), so they serialize as
	// compacted sub:Head / sub:assertion / ... graph blocks.
	headIdx := indexOfSubstr(text, "sub:Head {")
	assertionIdx := indexOfSubstr(text, "sub:assertion {")
	provIdx := indexOfSubstr(text, "sub:provenance {")
	pubinfoIdx := indexOfSubstr(text, "sub:pubinfo {")

	if headIdx < 0 || assertionIdx < 0 || provIdx < 0 || pubinfoIdx < 0 {
		t.Fatalf("expected all four graph blocks present in output:\n%s", text)
	}
	if !(headIdx < assertionIdx && assertionIdx < provIdx && provIdx < pubinfoIdx) {
		t.Fatalf("expected head < assertion < provenance < pubinfo ordering, got offsets %d %d %d %d", headIdx, assertionIdx, provIdx, pubinfoIdx)
	}
}

func TestSerializeNQuadsFlatForm(t *testing.T) {
	ds, _ := newTestDataset()
	text := SerializeNQuads(ds)
	reparsed, err := ParseDataset([]byte(text))
	if err != nil {
		t.Fatalf("re-parsing N-Quads failed: %v", err)
	}
	if len(reparsed.Quads) != len(ds.Quads) {
		t.Fatalf("expected %d quads, got %d", len(ds.Quads), len(reparsed.Quads))
	}
}

func indexOfSubstr(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
