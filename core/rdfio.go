package core

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ParseDataset parses a TriG, N-Quads, or JSON-LD byte string into an
// in-memory dataset. The surface syntax is chosen by inspecting the
// first non-whitespace byte: '{' or '[' dispatches to JSON-LD,
// otherwise to TriG (a superset that also accepts plain N-Quads).
func ParseDataset(data []byte) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, newErr(ParseError, "empty input")
	}
	switch trimmed[0] {
	case '{', '[':
		return parseJSONLD(trimmed)
	default:
		return parseTrig(trimmed)
	}
}

// --- TriG / N-Quads lexer -------------------------------------------------

type tokKind int

const (
	tokIRI tokKind = iota
	tokPName
	tokBlank
	tokLiteral
	tokLBrace
	tokRBrace
	tokDot
	tokPrefixKW
	tokEOF
)

type token struct {
	kind tokKind
	text string // IRI value, pname text (prefix:local), blank id, or literal lexical form
	lang string
	dt   string
}

type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte) *lexer { return &lexer{data: data} }

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '#' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.pos++
			continue
		}
		break
	}
}

func isNameChar(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF}, nil
	}
	c := l.data[l.pos]
	switch {
	case c == '{':
		l.pos++
		return token{kind: tokLBrace}, nil
	case c == '}':
		l.pos++
		return token{kind: tokRBrace}, nil
	case c == '.':
		// Dots inside a prefixed name are consumed by lexNameOrKeyword
		// (isNameChar accepts '.'); a dot that starts a token is always
		// returned as a statement terminator.
		l.pos++
		return token{kind: tokDot}, nil
	case c == '<':
		end := bytes.IndexByte(l.data[l.pos:], '>')
		if end < 0 {
			return token{}, newErr(ParseError, "unterminated IRI")
		}
		iri := string(l.data[l.pos+1 : l.pos+end])
		l.pos += end + 1
		return token{kind: tokIRI, text: unescapeIRI(iri)}, nil
	case c == '_' && l.pos+1 < len(l.data) && l.data[l.pos+1] == ':':
		start := l.pos + 2
		i := start
		for i < len(l.data) && isNameChar(l.data[i]) {
			i++
		}
		id := string(l.data[start:i])
		l.pos = i
		return token{kind: tokBlank, text: id}, nil
	case c == '"':
		return l.lexLiteral()
	case isLetter(c):
		return l.lexNameOrKeyword()
	case c == '@':
		// the @prefix keyword; any other @-word is rejected
		start := l.pos
		i := l.pos + 1
		for i < len(l.data) && isNameChar(l.data[i]) {
			i++
		}
		word := string(l.data[start:i])
		l.pos = i
		if strings.EqualFold(word, "@prefix") {
			return token{kind: tokPrefixKW}, nil
		}
		return token{}, newErr(ParseError, "unexpected token "+word)
	default:
		return token{}, newErr(ParseError, fmt.Sprintf("unexpected byte %q at offset %d", c, l.pos))
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (l *lexer) lexNameOrKeyword() (token, error) {
	start := l.pos
	i := l.pos
	for i < len(l.data) && (isNameChar(l.data[i]) || l.data[i] == ':') {
		i++
	}
	word := string(l.data[start:i])
	l.pos = i
	if strings.EqualFold(word, "PREFIX") {
		return token{kind: tokPrefixKW}, nil
	}
	if word == "a" {
		return token{kind: tokIRI, text: RDFNS + "type"}, nil
	}
	if !strings.Contains(word, ":") {
		return token{}, newErr(ParseError, "unexpected bare name "+word)
	}
	return token{kind: tokPName, text: word}, nil
}

func (l *lexer) lexLiteral() (token, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' && l.pos+1 < len(l.data) {
			switch l.data[l.pos+1] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(l.data[l.pos+1])
			}
			l.pos += 2
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
	tk := token{kind: tokLiteral, text: sb.String()}
	// optional @lang or ^^datatype
	if l.pos < len(l.data) && l.data[l.pos] == '@' {
		start := l.pos + 1
		i := start
		for i < len(l.data) && (isNameChar(l.data[i])) {
			i++
		}
		tk.lang = string(l.data[start:i])
		l.pos = i
	} else if l.pos+1 < len(l.data) && l.data[l.pos] == '^' && l.data[l.pos+1] == '^' {
		l.pos += 2
		dtTok, err := l.next()
		if err != nil {
			return token{}, err
		}
		if dtTok.kind == tokIRI {
			tk.dt = dtTok.text
		} else if dtTok.kind == tokPName {
			tk.dt = dtTok.text // resolved later against prefixes
		}
	}
	return tk, nil
}

func unescapeIRI(s string) string {
	if !strings.Contains(s, "\\u") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+5 < len(s) && s[i+1] == 'u' {
			if n, err := strconv.ParseInt(s[i+2:i+6], 16, 32); err == nil {
				sb.WriteRune(rune(n))
				i += 5
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// --- TriG / N-Quads parser -------------------------------------------------

func parseTrig(data []byte) (*Dataset, error) {
	l := newLexer(data)
	prefixes := map[string]string{}
	ds := NewDataset()

	resolve := func(tk token) (Term, error) {
		switch tk.kind {
		case tokIRI:
			return IRI(tk.text), nil
		case tokPName:
			iri, err := resolvePName(tk.text, prefixes)
			if err != nil {
				return Term{}, err
			}
			return IRI(iri), nil
		case tokBlank:
			return Blank(tk.text), nil
		case tokLiteral:
			dt := tk.dt
			if dt != "" {
				if resolved, err := resolvePName(dt, prefixes); err == nil {
					dt = resolved
				}
				return TypedLiteral(tk.text, dt), nil
			}
			if tk.lang != "" {
				return LangLiteral(tk.text, tk.lang), nil
			}
			return PlainLiteral(tk.text), nil
		default:
			return Term{}, newErr(ParseError, "unexpected token in term position")
		}
	}

	for {
		tk, err := l.next()
		if err != nil {
			return nil, err
		}
		if tk.kind == tokEOF {
			break
		}
		if tk.kind == tokPrefixKW {
			nameTok, err := l.next()
			if err != nil {
				return nil, err
			}
			iriTok, err := l.next()
			if err != nil {
				return nil, err
			}
			if iriTok.kind != tokIRI {
				return nil, newErr(ParseError, "expected IRI in prefix declaration")
			}
			prefixName := strings.TrimSuffix(nameTok.text, ":")
			prefixes[prefixName] = iriTok.text
			// optional trailing dot (TriG @prefix requires it, SPARQL PREFIX doesn't)
			save := l.pos
			dotTok, _ := l.next()
			if dotTok.kind != tokDot {
				l.pos = save
			}
			continue
		}

		first, err := resolve(tk)
		if err != nil {
			return nil, err
		}

		peekSave := l.pos
		next, err := l.next()
		if err != nil {
			return nil, err
		}
		if next.kind == tokLBrace {
			// GRAPH block: first is the graph name.
			if err := parseGraphBlock(l, first, resolve, ds); err != nil {
				return nil, err
			}
			continue
		}
		l.pos = peekSave

		// Flat triple/quad statement: subject predicate object [graph] '.'
		predTok, err := l.next()
		if err != nil {
			return nil, err
		}
		pred, err := resolve(predTok)
		if err != nil {
			return nil, err
		}
		objTok, err := l.next()
		if err != nil {
			return nil, err
		}
		obj, err := resolve(objTok)
		if err != nil {
			return nil, err
		}

		maybeGraph, err := l.next()
		if err != nil {
			return nil, err
		}
		var graph Term
		if maybeGraph.kind == tokDot {
			graph = IRI("")
		} else {
			graph, err = resolve(maybeGraph)
			if err != nil {
				return nil, err
			}
			dotTok, err := l.next()
			if err != nil {
				return nil, err
			}
			if dotTok.kind != tokDot {
				return nil, newErr(ParseError, "expected '.' to terminate statement")
			}
		}
		ds.Add(Quad{Subject: first, Predicate: pred, Object: obj, Graph: graph})
	}
	return ds, nil
}

func parseGraphBlock(l *lexer, graph Term, resolve func(token) (Term, error), ds *Dataset) error {
	for {
		tk, err := l.next()
		if err != nil {
			return err
		}
		if tk.kind == tokRBrace {
			return nil
		}
		subj, err := resolve(tk)
		if err != nil {
			return err
		}
		predTok, err := l.next()
		if err != nil {
			return err
		}
		pred, err := resolve(predTok)
		if err != nil {
			return err
		}
		objTok, err := l.next()
		if err != nil {
			return err
		}
		obj, err := resolve(objTok)
		if err != nil {
			return err
		}
		dotTok, err := l.next()
		if err != nil {
			return err
		}
		if dotTok.kind != tokDot {
			return newErr(ParseError, "expected '.' to terminate statement in graph block")
		}
		ds.Add(Quad{Subject: subj, Predicate: pred, Object: obj, Graph: graph})
	}
}

func resolvePName(pname string, prefixes map[string]string) (string, error) {
	idx := strings.IndexByte(pname, ':')
	if idx < 0 {
		return "", newErr(ParseError, "malformed prefixed name "+pname)
	}
	prefix, local := pname[:idx], pname[idx+1:]
	ns, ok := prefixes[prefix]
	if !ok {
		return "", newErr(ParseError, "undefined prefix "+prefix)
	}
	return ns + local, nil
}
