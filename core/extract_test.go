package core

import (
	"errors"
	"testing"
)

func TestExtractInfoValidSkeleton(t *testing.T) {
	ds, _ := newTestDataset()
	info, err := ExtractInfo(ds)
	if err != nil {
		t.Fatalf("ExtractInfo failed on a valid skeleton: %v", err)
	}
	if info.Assertion == "" || info.Prov == "" || info.PubInfo == "" || info.Head == "" {
		t.Fatalf("expected all four graphs resolved, got %+v", info)
	}
}

func TestExtractInfoMultipleNanopubs(t *testing.T) {
	ds, _ := newTestDataset()
	typeIRI := IRI(RDFNS + "type")
	npType := IRI(NPNS + "Nanopublication")
	otherHead := IRI(TempNPNS + "OtherHead")
	ds.Add(Quad{Subject: IRI(TempNPNS + "other"), Predicate: typeIRI, Object: npType, Graph: otherHead})

	_, err := ExtractInfo(ds)
	assertStructErr(t, err, MultipleNanopubs)
}

func TestExtractInfoTooManyGraphs(t *testing.T) {
	ds, _ := newTestDataset()
	extraGraph := IRI(TempNPNS + "extra")
	ds.Add(Quad{Subject: IRI("http://example.org/x"), Predicate: IRI("http://example.org/y"), Object: IRI("http://example.org/z"), Graph: extraGraph})

	_, err := ExtractInfo(ds)
	assertStructErr(t, err, TooManyGraphs)
}

func TestExtractInfoEmptyAssertionGraph(t *testing.T) {
	ds, info := newTestDataset()
	assertionGraph := IRI(info.Assertion)
	kept := NewDataset()
	for _, q := range ds.Quads {
		if q.Graph == assertionGraph {
			continue
		}
		kept.Add(q)
	}

	_, err := ExtractInfo(kept)
	assertStructErr(t, err, EmptyGraph)
}

func TestExtractInfoMissingGraphDeclaration(t *testing.T) {
	ds, info := newTestDataset()
	head := IRI(info.Head)
	xSubj := IRI(info.URI)
	hasProvenance := IRI(NPNS + "hasProvenance")

	kept := NewDataset()
	for _, q := range ds.Quads {
		if q.Graph == head && q.Subject == xSubj && q.Predicate == hasProvenance {
			continue
		}
		kept.Add(q)
	}

	_, err := ExtractInfo(kept)
	assertStructErr(t, err, MissingGraph)
}

func assertStructErr(t *testing.T, err error, want Sub) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with sub-kind %s, got nil", want)
	}
	var nerr *Error
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *core.Error, got %T: %v", err, err)
	}
	if nerr.Kind != StructureInvalid {
		t.Fatalf("expected StructureInvalid, got %s", nerr.Kind)
	}
	if nerr.Sub != want {
		t.Fatalf("expected sub-kind %s, got %s", want, nerr.Sub)
	}
}
