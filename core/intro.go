package core

// BuildIntroduction assembles the unsigned skeleton of a profile
// introduction nanopublication: a four-graph dataset under the
// temporary namespace binding an ORCID identity to a public key. The
// caller signs the result normally (SignDataset) to mint the final
// Trusty-addressed introduction.
func BuildIntroduction(orcid, name, pubKeyB64 string) (*Dataset, *NanopubInfo) {
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
	keyDecl := IRI(ns + "keyDeclaration")
	ds.Add(Quad{Subject: keyDecl, Predicate: IRI(NPXNS + "declaredBy"), Object: IRI(orcid), Graph: assertionGraph})
	ds.Add(Quad{Subject: keyDecl, Predicate: IRI(NPXNS + "hasAlgorithm"), Object: PlainLiteral("RSA"), Graph: assertionGraph})
	ds.Add(Quad{Subject: keyDecl, Predicate: IRI(NPXNS + "hasPublicKey"), Object: PlainLiteral(pubKeyB64), Graph: assertionGraph})
	if name != "" {
		ds.Add(Quad{Subject: IRI(orcid), Predicate: IRI(FoafNS + "name"), Object: PlainLiteral(name), Graph: assertionGraph})
	}

	provGraph := IRI(prov)
	ds.Add(Quad{Subject: assertionGraph, Predicate: IRI(ProvNS + "wasAttributedTo"), Object: assertionGraph, Graph: provGraph})

	baseURI, sepBefore, trustyHash, sepAfter, _ := parseNamespaceComponents(ns)
	info := &NanopubInfo{
		URI:                   uri,
		NS:                    ns,
		NormalizedNS:          normalizeNamespace(ns, baseURI, sepBefore, trustyHash),
		Head:                  head,
		Assertion:             assertion,
		Prov:                  prov,
		PubInfo:               pubinfo,
		BaseURI:               baseURI,
		SeparatorBeforeTrusty: sepBefore,
		TrustyHash:            trustyHash,
		SeparatorAfterTrusty:  sepAfter,
	}
	return ds, info
}
