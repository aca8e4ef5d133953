package core

import (
	"fmt"
	"regexp"
)

// escapeRegexpFor builds the "tail already looks minted" matcher for a
// given namespace: <ns> optionally followed by one '.' then a run of one
// or more underscores and alphanumerics/underscores to end of string.
func escapeRegexpFor(ns string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(ns) + `\.?(_+[A-Za-z0-9_]+)$`)
}

func escapeIRI(re *regexp.Regexp, iri string) string {
	loc := re.FindStringSubmatchIndex(iri)
	if loc == nil {
		return iri
	}
	tailStart := loc[2]
	return iri[:tailStart] + "_" + iri[tailStart:]
}

// CanonicalizeBlankNodes eliminates blank nodes from ds in place: every
// pre-existing IRI whose tail already looks like a minted "_n" form is
// escaped first (leading underscore doubled) so it cannot collide with
// a freshly minted replacement, then every blank subject/object is
// replaced by a deterministic "<ns>_<n>" IRI, assigned left to right,
// subject before object within each quad, and reused on repeat.
func CanonicalizeBlankNodes(ds *Dataset, ns string) {
	re := escapeRegexpFor(ns)
	for i, q := range ds.Quads {
		if q.Subject.IsIRI() {
			ds.Quads[i].Subject.Value = escapeIRI(re, q.Subject.Value)
		}
		if q.Object.IsIRI() {
			ds.Quads[i].Object.Value = escapeIRI(re, q.Object.Value)
		}
		if q.Graph.IsIRI() {
			ds.Quads[i].Graph.Value = escapeIRI(re, q.Graph.Value)
		}
	}

	counter := 0
	ids := map[string]int{}
	assign := func(id string) int {
		if n, ok := ids[id]; ok {
			return n
		}
		counter++
		ids[id] = counter
		return counter
	}

	for i, q := range ds.Quads {
		if q.Subject.IsBlank() {
			n := assign(q.Subject.Value)
			ds.Quads[i].Subject = IRI(fmt.Sprintf("%s_%d", ns, n))
		}
		if q.Object.IsBlank() {
			n := assign(q.Object.Value)
			ds.Quads[i].Object = IRI(fmt.Sprintf("%s_%d", ns, n))
		}
	}
}
