package core

import (
	"regexp"
	"strings"
)

// NanopubInfo is the computed, non-persisted summary of a dataset's
// nanopublication structure: the four graph IRIs, the parsed namespace
// components, and whatever signature/attribution triples are present.
type NanopubInfo struct {
	URI          string
	NS           string
	NormalizedNS string

	Head      string
	Assertion string
	Prov      string
	PubInfo   string

	BaseURI               string
	SeparatorBeforeTrusty string
	TrustyHash            string
	SeparatorAfterTrusty  string

	SignatureIRI string
	Signature    string
	Algo         string
	PublicKey    string
	Orcid        string

	Published string
}

const tempNPPrefix = "http://purl.org/nanopub/temp/"

var nsRegexp = regexp.MustCompile(`^(.*?)(/|#|\.)?(RA[A-Za-z0-9_-]*)?([/#\.])?$`)

// parseNamespaceComponents matches a candidate namespace string against
// the Trusty-URI shape regex, applying the documented defaults: "."
// for the separator before a (possibly absent) trusty hash, and "#"
// for the separator after it when no hash is present.
func parseNamespaceComponents(candidateNS string) (baseURI, sepBefore, trustyHash, sepAfter string, ok bool) {
	m := nsRegexp.FindStringSubmatch(candidateNS)
	if m == nil {
		return "", "", "", "", false
	}
	baseURI, sepBefore, trustyHash, sepAfter = m[1], m[2], m[3], m[4]
	if sepBefore == "" {
		sepBefore = "."
	}
	if trustyHash == "" && sepAfter == "" {
		sepAfter = "#"
	}
	return baseURI, sepBefore, trustyHash, sepAfter, true
}

// normalizeNamespace derives normalized_ns from the parsed components.
func normalizeNamespace(candidateNS, baseURI, sepBefore, trustyHash string) string {
	switch {
	case trustyHash != "":
		return baseURI + sepBefore
	case strings.HasPrefix(candidateNS, tempNPPrefix):
		return NPPrefixNS
	case !strings.HasSuffix(candidateNS, "#") && !strings.HasSuffix(candidateNS, "/") && !strings.HasSuffix(candidateNS, "."):
		return candidateNS + "."
	default:
		return candidateNS
	}
}

// ExtractInfo scans a dataset for the unique np:Nanopublication subject,
// resolves its four graphs, parses the namespace into Trusty-URI
// components, and pulls any existing signature/attribution triples.
func ExtractInfo(ds *Dataset) (*NanopubInfo, error) {
	typeIRI := IRI(RDFNS + "type")
	npType := IRI(NPNS + "Nanopublication")
	typeQuads := ds.Match(nil, &typeIRI, &npType, nil)
	if len(typeQuads) == 0 {
		return nil, newStructErr(SubNone, "no np:Nanopublication subject found", "")
	}
	subjects := map[string]bool{}
	for _, q := range typeQuads {
		subjects[q.Subject.Value] = true
	}
	if len(subjects) > 1 {
		return nil, newStructErr(MultipleNanopubs, "more than one np:Nanopublication subject", "")
	}

	head := typeQuads[0].Graph
	rawURI := typeQuads[0].Subject.Value

	if len(ds.GraphNames()) > 4 {
		return nil, newStructErr(TooManyGraphs, "dataset has more than four distinct graphs", "")
	}

	candidateLen := len(rawURI) + 1
	candidateNS := head.Value
	if len(candidateNS) > candidateLen {
		candidateNS = candidateNS[:candidateLen]
	}

	uri := rawURI
	if n := len(uri); n > 0 {
		switch uri[n-1] {
		case '#', '/', '.':
			uri = uri[:n-1]
		}
	}

	baseURI, sepBefore, trustyHash, sepAfter, ok := parseNamespaceComponents(candidateNS)
	if !ok {
		return nil, newStructErr(SubNone, "namespace does not match the expected shape", candidateNS)
	}
	normalizedNS := normalizeNamespace(candidateNS, baseURI, sepBefore, trustyHash)

	info := &NanopubInfo{
		URI:                   uri,
		NS:                    candidateNS,
		NormalizedNS:          normalizedNS,
		Head:                  head.Value,
		BaseURI:               baseURI,
		SeparatorBeforeTrusty: sepBefore,
		TrustyHash:            trustyHash,
		SeparatorAfterTrusty:  sepAfter,
	}

	xSubj := IRI(rawURI)
	hasAssertion := IRI(NPNS + "hasAssertion")
	hasProvenance := IRI(NPNS + "hasProvenance")
	hasPubInfo := IRI(NPNS + "hasPublicationInfo")

	aQuads := ds.Match(&xSubj, &hasAssertion, nil, &head)
	pQuads := ds.Match(&xSubj, &hasProvenance, nil, &head)
	iQuads := ds.Match(&xSubj, &hasPubInfo, nil, &head)
	if len(aQuads) != 1 {
		return nil, newStructErr(MissingGraph, "missing or duplicate np:hasAssertion in head", rawURI)
	}
	if len(pQuads) != 1 {
		return nil, newStructErr(MissingGraph, "missing or duplicate np:hasProvenance in head", rawURI)
	}
	if len(iQuads) != 1 {
		return nil, newStructErr(MissingGraph, "missing or duplicate np:hasPublicationInfo in head", rawURI)
	}
	info.Assertion = aQuads[0].Object.Value
	info.Prov = pQuads[0].Object.Value
	info.PubInfo = iQuads[0].Object.Value

	if info.Assertion == info.Prov || info.Assertion == info.PubInfo || info.Prov == info.PubInfo ||
		info.Assertion == info.Head || info.Prov == info.Head || info.PubInfo == info.Head {
		return nil, newStructErr(SubNone, "assertion/provenance/pubinfo graphs must be distinct from each other and from head", rawURI)
	}

	assertionGraph := IRI(info.Assertion)
	if len(ds.Match(nil, nil, nil, &assertionGraph)) == 0 {
		return nil, newStructErr(EmptyGraph, "assertion graph is empty", info.Assertion)
	}

	assertionIRI := IRI(info.Assertion)
	provGraph := IRI(info.Prov)
	if len(ds.Match(&assertionIRI, nil, nil, &provGraph)) == 0 {
		return nil, newStructErr(EmptyGraph, "provenance graph has no statement about the assertion", info.Prov)
	}

	pubInfoGraph := IRI(info.PubInfo)
	xTerm := IRI(rawURI)
	nsTerm := IRI(info.NS)
	hasXSubj := len(ds.Match(&xTerm, nil, nil, &pubInfoGraph)) > 0
	hasNSSubj := len(ds.Match(&nsTerm, nil, nil, &pubInfoGraph)) > 0
	if !hasXSubj && !hasNSSubj {
		return nil, newStructErr(EmptyGraph, "publication-info graph has no statement about the nanopub or its namespace", info.PubInfo)
	}

	hasSignature := IRI(NPXNS + "hasSignature")
	sigQuads := ds.Match(nil, &hasSignature, nil, nil)
	if len(sigQuads) > 1 {
		return nil, newStructErr(SubNone, "more than one npx:hasSignature triple", info.PubInfo)
	}
	if len(sigQuads) == 1 {
		sig := sigQuads[0]
		if sig.Graph.Value != info.PubInfo {
			return nil, newStructErr(SubNone, "npx:hasSignature triple lies outside the publication-info graph", sig.Graph.Value)
		}
		info.SignatureIRI = sig.Subject.Value
		info.Signature = sig.Object.Value

		sigSubj := sig.Subject
		hasPublicKey := IRI(NPXNS + "hasPublicKey")
		hasAlgorithm := IRI(NPXNS + "hasAlgorithm")
		if pk := ds.Match(&sigSubj, &hasPublicKey, nil, &pubInfoGraph); len(pk) == 1 {
			info.PublicKey = pk[0].Object.Value
		}
		if alg := ds.Match(&sigSubj, &hasAlgorithm, nil, &pubInfoGraph); len(alg) == 1 {
			info.Algo = alg[0].Object.Value
		}
		if info.PublicKey == "" || info.Algo != "RSA" {
			return nil, newStructErr(SubNone, "signature lacks its npx:hasPublicKey or npx:hasAlgorithm \"RSA\" triple", info.PubInfo)
		}
	}

	for _, predIRI := range []string{DCTermsNS + "creator", ProvNS + "wasAttributedTo", PavNS + "createdBy"} {
		pred := IRI(predIRI)
		if q := ds.Match(&xTerm, &pred, nil, &pubInfoGraph); len(q) > 0 {
			info.Orcid = q[0].Object.Value
			break
		}
		if q := ds.Match(&nsTerm, &pred, nil, &pubInfoGraph); len(q) > 0 {
			info.Orcid = q[0].Object.Value
			break
		}
	}

	return info, nil
}
