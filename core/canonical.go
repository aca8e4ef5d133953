package core

import (
	"sort"
	"strings"
)

// NormalizeDataset produces the canonical byte sequence fed to SHA-256:
// every IRI is rewritten from the nanopub's namespace to its normalized
// placeholder, every quad is emitted as four newline-terminated lines,
// and the result is sorted by (graph, subject, predicate, lang,
// datatype, object) — the 6-tuple, not the naive 4-tuple. An absent
// language tag or datatype compares as the empty string, so for the
// same predicate a plain literal sorts before a typed one, and a typed
// one before a language-tagged one.
func NormalizeDataset(ds *Dataset, info *NanopubInfo) string {
	baseURI := strings.TrimRight(info.NS, "/#.")
	normalizedBase := strings.TrimRight(info.NormalizedNS, "/#.")
	sepAfter := info.SeparatorAfterTrusty
	if sepAfter == "" {
		sepAfter = "#"
	}

	rewriteIRI := func(u string) string {
		if !strings.HasPrefix(u, baseURI) {
			return u
		}
		suffix := u[len(baseURI):]
		if suffix != "" && !strings.HasPrefix(suffix, sepAfter) {
			if strings.HasPrefix(suffix, "/") || strings.HasPrefix(suffix, ".") {
				suffix = suffix[1:]
			}
			suffix = sepAfter + suffix
		}
		return normalizedBase + " " + suffix
	}

	type line struct {
		graph, subject, predicate string
		lang, datatype            string
		objectSortKey             string
		objectField               string
	}

	lines := make([]line, 0, len(ds.Quads))
	for _, q := range ds.Quads {
		l := line{
			graph:     rewriteIRI(q.Graph.Value),
			subject:   rewriteIRI(q.Subject.Value),
			predicate: rewriteIRI(q.Predicate.Value),
		}
		switch q.Object.Kind {
		case KindLiteral:
			lexical := escapeLexical(q.Object.Value)
			l.lang = q.Object.Lang
			l.datatype = q.Object.Datatype
			l.objectSortKey = q.Object.Value
			switch {
			case q.Object.Lang != "":
				l.objectField = "@" + q.Object.Lang + " " + lexical
			case q.Object.Datatype != "":
				l.objectField = "^" + rewriteIRI(q.Object.Datatype) + " " + lexical
			default:
				l.objectField = lexical
			}
		default:
			rewritten := rewriteIRI(q.Object.Value)
			l.objectSortKey = rewritten
			l.objectField = rewritten
		}
		lines = append(lines, l)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.graph != b.graph {
			return a.graph < b.graph
		}
		if a.subject != b.subject {
			return a.subject < b.subject
		}
		if a.predicate != b.predicate {
			return a.predicate < b.predicate
		}
		if a.lang != b.lang {
			return a.lang < b.lang
		}
		if a.datatype != b.datatype {
			return a.datatype < b.datatype
		}
		return a.objectSortKey < b.objectSortKey
	})

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.graph)
		sb.WriteByte('\n')
		sb.WriteString(l.subject)
		sb.WriteByte('\n')
		sb.WriteString(l.predicate)
		sb.WriteByte('\n')
		sb.WriteString(l.objectField)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func escapeLexical(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
