package core

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// TrustyHashOf computes the "RA..." Trusty hash of a canonical string:
// SHA-256, URL-safe base-64 with no padding, prefixed with "RA".
func TrustyHashOf(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return "RA" + base64.RawURLEncoding.EncodeToString(sum[:])
}

// ApplyTrustyRewrite computes the Trusty hash of ds's current canonical
// form (under info, before rewriting) and rewrites every quad's IRI
// positions so the old nanopub URI becomes the Trusty URI and the old
// namespace becomes "<trusty-uri>#". It returns the new URI and
// namespace; callers must re-run ExtractInfo afterward to obtain a
// NanopubInfo consistent with the rewritten dataset.
func ApplyTrustyRewrite(ds *Dataset, info *NanopubInfo) (trustyURI, newNS string) {
	hash := TrustyHashOf(NormalizeDataset(ds, info))
	trustyURI = info.NormalizedNS + hash
	newNS = trustyURI + "#"

	rewrite := func(u string) string {
		if u == info.URI {
			return trustyURI
		}
		if strings.HasPrefix(u, info.NS) {
			return newNS + strings.TrimPrefix(u, info.NS)
		}
		return u
	}

	for i := range ds.Quads {
		q := &ds.Quads[i]
		if q.Subject.IsIRI() {
			q.Subject.Value = rewrite(q.Subject.Value)
		}
		if q.Predicate.IsIRI() {
			q.Predicate.Value = rewrite(q.Predicate.Value)
		}
		if q.Graph.IsIRI() {
			q.Graph.Value = rewrite(q.Graph.Value)
		}
		if q.Object.IsIRI() {
			q.Object.Value = rewrite(q.Object.Value)
		} else if q.Object.IsLiteral() && q.Object.Datatype != "" {
			q.Object.Datatype = rewrite(q.Object.Datatype)
		}
	}
	return trustyURI, newNS
}
