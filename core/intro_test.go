package core

import (
	"testing"
	"time"
)

func TestBuildIntroductionSignAndCheckRoundTrip(t *testing.T) {
	priv := testKey()
	pubKeyB64, err := PublicKeyString(priv)
	if err != nil {
		t.Fatalf("PublicKeyString failed: %v", err)
	}
	orcid := "https://orcid.org/0000-0000-0000-0003"

	ds, info := BuildIntroduction(orcid, "Ada Lovelace", pubKeyB64)
	signed, err := SignDataset(ds, info, priv, orcid, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("signing the introduction nanopub failed: %v", err)
	}
	if err := VerifyDataset(ds, signed); err != nil {
		t.Fatalf("expected the signed introduction to verify, got %v", err)
	}

	assertionGraph := IRI(signed.Assertion)
	declaredBy := IRI(NPXNS + "declaredBy")
	matches := ds.Match(nil, &declaredBy, &Term{Kind: KindIRI, Value: orcid}, &assertionGraph)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one declaredBy triple binding the key declaration to the ORCID, got %d", len(matches))
	}
}

func TestBuildIntroductionProvenanceIsSelfReferential(t *testing.T) {
	ds, info := BuildIntroduction("https://orcid.org/0000-0000-0000-0004", "", "dummy-key")

	assertionIRI := IRI(info.Assertion)
	provGraph := IRI(info.Prov)
	matches := ds.Match(&assertionIRI, nil, &assertionIRI, &provGraph)
	if len(matches) != 1 {
		t.Fatalf("expected the provenance graph to attribute the assertion to itself, got %d matches", len(matches))
	}
}
