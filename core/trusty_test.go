package core

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestTrustyHashOfFormat(t *testing.T) {
	hash := TrustyHashOf("some canonical string\n")
	if !strings.HasPrefix(hash, "RA") {
		t.Fatalf("expected Trusty hash to start with RA, got %s", hash)
	}
	if len(hash) != 45 {
		t.Fatalf("expected a 45-character Trusty hash, got %d: %s", len(hash), hash)
	}
	if _, err := base64.RawURLEncoding.DecodeString(hash[2:]); err != nil {
		t.Fatalf("expected the suffix to be valid base64url with no padding: %v", err)
	}
}

func TestTrustyHashOfDeterministic(t *testing.T) {
	a := TrustyHashOf("identical input")
	b := TrustyHashOf("identical input")
	if a != b {
		t.Fatalf("expected the same canonical input to hash identically, got %s vs %s", a, b)
	}
}

func TestApplyTrustyRewriteUpdatesURIAndNamespace(t *testing.T) {
	ds, info := newTestDataset()
	trustyURI, newNS := ApplyTrustyRewrite(ds, info)
	if !strings.HasPrefix(trustyURI, info.NormalizedNS+"RA") {
		t.Fatalf("expected Trusty URI to start with the normalized namespace + RA, got %s", trustyURI)
	}
	if newNS != trustyURI+"#" {
		t.Fatalf("expected new namespace to be trustyURI + '#', got %s", newNS)
	}
	for _, q := range ds.Quads {
		if strings.Contains(q.Subject.Value, TempNPNS) || strings.Contains(q.Object.Value, TempNPNS) || strings.Contains(q.Graph.Value, TempNPNS) {
			t.Fatalf("expected no remaining references to the temp namespace after rewrite: %+v", q)
		}
	}
}
