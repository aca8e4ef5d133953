package core

import (
	"fmt"
	"sort"
	"strings"
)

// SerializeTriG renders a dataset as TriG text, compacting terms against
// the fixed prefix table anchored on npURI/npNS. Graphs are emitted in
// the fixed head/assertion/provenance/pubinfo order when those IRIs are
// present, followed by any others in lexical order.
func SerializeTriG(ds *Dataset, npURI, npNS string) string {
	prefixes := prefixTable(npURI, npNS)

	var sb strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", p.Name, p.IRI)
	}
	sb.WriteString("\n")

	byGraph := map[string][]Quad{}
	for _, q := range ds.Quads {
		byGraph[q.Graph.Value] = append(byGraph[q.Graph.Value], q)
	}

	graphs := orderedGraphNames(ds, npNS)
	for _, g := range graphs {
		fmt.Fprintf(&sb, "%s {\n", compactTerm(IRI(g), prefixes))
		for _, q := range byGraph[g] {
			fmt.Fprintf(&sb, "  %s %s %s .\n",
				compactTerm(q.Subject, prefixes),
				compactTerm(q.Predicate, prefixes),
				compactTerm(q.Object, prefixes))
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

func orderedGraphNames(ds *Dataset, npNS string) []string {
	fixed := []string{npNS + "Head", npNS + "assertion", npNS + "provenance", npNS + "pubinfo"}
	seen := map[string]bool{}
	var out []string
	for _, g := range fixed {
		for _, q := range ds.Quads {
			if q.Graph.Value == g {
				out = append(out, g)
				seen[g] = true
				break
			}
		}
	}
	rest := ds.GraphNames()
	sort.Strings(rest)
	for _, g := range rest {
		if !seen[g] {
			out = append(out, g)
		}
	}
	return out
}

func compactTerm(t Term, prefixes []prefix) string {
	switch t.Kind {
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		lit := fmt.Sprintf("%q", t.Value)
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != XSDNS+"string" {
			return lit + "^^" + compactTerm(IRI(t.Datatype), prefixes)
		}
		return lit
	default:
		if t.Value == RDFNS+"type" {
			return "a"
		}
		for _, p := range prefixes {
			if p.IRI != "" && strings.HasPrefix(t.Value, p.IRI) {
				local := strings.TrimPrefix(t.Value, p.IRI)
				if local != "" && !strings.ContainsAny(local, "/#") {
					return p.Name + ":" + local
				}
			}
		}
		return "<" + t.Value + ">"
	}
}

// SerializeNQuads renders a dataset as flat N-Quads lines, each term in
// full form with no prefix compaction. Publish does not use it; it
// sends TriG from SerializeTriG.
func SerializeNQuads(ds *Dataset) string {
	var sb strings.Builder
	for _, q := range ds.Quads {
		fmt.Fprintf(&sb, "%s %s %s %s .\n",
			fullTerm(q.Subject), fullTerm(q.Predicate), fullTerm(q.Object), fullTerm(q.Graph))
	}
	return sb.String()
}

func fullTerm(t Term) string {
	switch t.Kind {
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		lit := fmt.Sprintf("%q", t.Value)
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" {
			return lit + "^^<" + t.Datatype + ">"
		}
		return lit
	default:
		return "<" + t.Value + ">"
	}
}
