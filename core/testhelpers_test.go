package core

import (
	"crypto/rand"
	"crypto/rsa"
)

var testRSAKey = generateTestKey()

func generateTestKey() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
}

// newTestDataset builds a minimal, structurally valid unsigned nanopub
// under the temporary namespace: one assertion triple, a provenance
// statement about the assertion, and a pubinfo triple about the
// nanopub itself, satisfying every invariant in §3 well enough for
// ExtractInfo to succeed.
func newTestDataset() (*Dataset, *NanopubInfo) {
	ns := TempNPNS
	uri := TempNPURI
	head := ns + "Head"
	assertion := ns + "assertion"
	prov := ns + "provenance"
	pubinfo := ns + "pubinfo"

	ds := NewDataset()
	headGraph := IRI(head)
	ds.Add(Quad{Subject: IRI(uri), Predicate: IRI(RDFNS + "type"), Object: IRI(NPNS + "Nanopublication"), Graph: headGraph})
	ds.Add(Quad{Subject: IRI(uri), Predicate: IRI(NPNS + "hasAssertion"), Object: IRI(assertion), Graph: headGraph})
	ds.Add(Quad{Subject: IRI(uri), Predicate: IRI(NPNS + "hasProvenance"), Object: IRI(prov), Graph: headGraph})
	ds.Add(Quad{Subject: IRI(uri), Predicate: IRI(NPNS + "hasPublicationInfo"), Object: IRI(pubinfo), Graph: headGraph})

	assertionGraph := IRI(assertion)
	ds.Add(Quad{Subject: IRI("http://example.org/thing"), Predicate: IRI("http://example.org/says"), Object: PlainLiteral("hello"), Graph: assertionGraph})

	provGraph := IRI(prov)
	ds.Add(Quad{Subject: assertionGraph, Predicate: IRI(ProvNS + "wasAttributedTo"), Object: IRI(OrcidNS + "0000-0000-0000-0000"), Graph: provGraph})

	pubinfoGraph := IRI(pubinfo)
	ds.Add(Quad{Subject: IRI(uri), Predicate: IRI(DCTermsNS + "label"), Object: PlainLiteral("a test nanopub"), Graph: pubinfoGraph})

	baseURI, sepBefore, trustyHash, sepAfter, _ := parseNamespaceComponents(ns)
	info := &NanopubInfo{
		URI: uri, NS: ns, NormalizedNS: normalizeNamespace(ns, baseURI, sepBefore, trustyHash),
		Head: head, Assertion: assertion, Prov: prov, PubInfo: pubinfo,
		BaseURI: baseURI, SeparatorBeforeTrusty: sepBefore, TrustyHash: trustyHash, SeparatorAfterTrusty: sepAfter,
	}
	return ds, info
}

func testKey() *rsa.PrivateKey {
	return testRSAKey
}
