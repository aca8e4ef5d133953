package core

import (
	"encoding/json"
	"fmt"
)

// parseJSONLD reads the restricted shape of JSON-LD actually produced by
// nanopub tooling: a top-level document carrying an "@graph" array whose
// entries are themselves named graphs ("@id" + nested "@graph" of node
// objects). This is not a general JSON-LD 1.1 processor — there is no
// remote @context fetching or full term expansion — but it is enough to
// round-trip the nanopub dataset shape byte-for-byte semantically.
func parseJSONLD(data []byte) (*Dataset, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapErr(ParseError, "decoding JSON-LD document", err)
	}

	ctx, _ := doc["@context"].(map[string]any)
	ds := NewDataset()

	topGraphs, ok := doc["@graph"].([]any)
	if !ok {
		return nil, newErr(ParseError, "JSON-LD document has no top-level @graph array of named graphs")
	}
	for _, g := range topGraphs {
		gm, ok := g.(map[string]any)
		if !ok {
			return nil, newErr(ParseError, "named graph entry is not an object")
		}
		graphID, _ := gm["@id"].(string)
		if graphID == "" {
			return nil, newErr(ParseError, "named graph entry missing @id")
		}
		graph := IRI(expandJSONLDTerm(graphID, ctx))

		nodes, _ := gm["@graph"].([]any)
		for _, n := range nodes {
			nm, ok := n.(map[string]any)
			if !ok {
				continue
			}
			if err := jsonldNodeToQuads(nm, ctx, graph, ds); err != nil {
				return nil, err
			}
		}
	}
	return ds, nil
}

func jsonldNodeToQuads(node map[string]any, ctx map[string]any, graph Term, ds *Dataset) error {
	id, _ := node["@id"].(string)
	if id == "" {
		return newErr(ParseError, "node object missing @id")
	}
	subj := jsonldSubjectTerm(id, ctx)

	for key, val := range node {
		if key == "@id" {
			continue
		}
		pred := IRI(expandJSONLDTerm(key, ctx))
		values, ok := val.([]any)
		if !ok {
			values = []any{val}
		}
		for _, v := range values {
			obj, err := jsonldValueToTerm(v, ctx)
			if err != nil {
				return err
			}
			ds.Add(Quad{Subject: subj, Predicate: pred, Object: obj, Graph: graph})
		}
	}
	return nil
}

func jsonldSubjectTerm(id string, ctx map[string]any) Term {
	if len(id) > 2 && id[:2] == "_:" {
		return Blank(id[2:])
	}
	return IRI(expandJSONLDTerm(id, ctx))
}

func jsonldValueToTerm(v any, ctx map[string]any) (Term, error) {
	switch val := v.(type) {
	case map[string]any:
		if id, ok := val["@id"].(string); ok {
			return jsonldSubjectTerm(id, ctx), nil
		}
		if lit, ok := val["@value"]; ok {
			lexical := fmt.Sprintf("%v", lit)
			if lang, ok := val["@language"].(string); ok && lang != "" {
				return LangLiteral(lexical, lang), nil
			}
			if dt, ok := val["@type"].(string); ok && dt != "" {
				return TypedLiteral(lexical, expandJSONLDTerm(dt, ctx)), nil
			}
			return PlainLiteral(lexical), nil
		}
		return Term{}, newErr(ParseError, "unrecognized JSON-LD value object")
	case string:
		return PlainLiteral(val), nil
	case bool:
		return TypedLiteral(fmt.Sprintf("%v", val), XSDNS+"boolean"), nil
	case float64:
		return TypedLiteral(fmt.Sprintf("%v", val), XSDNS+"decimal"), nil
	default:
		return Term{}, newErr(ParseError, "unsupported JSON-LD value type")
	}
}

// expandJSONLDTerm resolves a compact IRI or context-mapped term to a full
// IRI. Terms that are already absolute (contain "://") pass through.
func expandJSONLDTerm(term string, ctx map[string]any) string {
	if term == "" {
		return term
	}
	for i := 0; i < len(term); i++ {
		if term[i] == ':' && i+2 < len(term) && term[i+1] == '/' && term[i+2] == '/' {
			return term
		}
		if term[i] == ':' {
			prefix, local := term[:i], term[i+1:]
			if ctx != nil {
				if ns, ok := ctx[prefix].(string); ok {
					return ns + local
				}
			}
			break
		}
	}
	if ctx != nil {
		if ns, ok := ctx[term].(string); ok {
			return ns
		}
	}
	return term
}
