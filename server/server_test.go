package main

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"nanopub-go/core"
	"nanopub-go/server/controllers"
	"nanopub-go/server/routes"
	"nanopub-go/server/services"
)

func signedTestBody(t *testing.T) (string, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	ds := core.NewDataset()
	ns := core.TempNPNS
	uri := core.TempNPURI
	head := ns + "Head"
	assertion := ns + "assertion"
	prov := ns + "provenance"
	pubinfo := ns + "pubinfo"

	headGraph := core.IRI(head)
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.RDFNS + "type"), Object: core.IRI(core.NPNS + "Nanopublication"), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasAssertion"), Object: core.IRI(assertion), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasProvenance"), Object: core.IRI(prov), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasPublicationInfo"), Object: core.IRI(pubinfo), Graph: headGraph})

	assertionGraph := core.IRI(assertion)
	ds.Add(core.Quad{Subject: core.IRI("http://example.org/thing"), Predicate: core.IRI("http://example.org/says"), Object: core.PlainLiteral("hello"), Graph: assertionGraph})

	provGraph := core.IRI(prov)
	ds.Add(core.Quad{Subject: assertionGraph, Predicate: core.IRI(core.ProvNS + "wasAttributedTo"), Object: core.IRI(core.OrcidNS + "0000-0000-0000-0000"), Graph: provGraph})

	pubinfoGraph := core.IRI(pubinfo)
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.DCTermsNS + "label"), Object: core.PlainLiteral("a test nanopub"), Graph: pubinfoGraph})

	info, err := core.ExtractInfo(ds)
	if err != nil {
		t.Fatalf("ExtractInfo failed: %v", err)
	}
	np := &core.Nanopub{DS: ds, Info: info}
	if err := np.Sign(priv, ""); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	body := core.SerializeTriG(np.DS, np.Info.URI, np.Info.NS)
	return body, np.Info.TrustyHash
}

func newTestRouter() *mux.Router {
	store := services.NewStore()
	nc := controllers.NewNanopubController(store)
	r := mux.NewRouter()
	routes.Register(r, nc)
	return r
}

func TestPublishThenFetch(t *testing.T) {
	body, trustyHash := signedTestBody(t)
	r := newTestRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Post(srv.URL+"/", "application/trig", strings.NewReader(body))
	if err != nil {
		t.Fatalf("publish request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.Contains(loc, trustyHash) {
		t.Fatalf("expected Location header to contain the Trusty hash %s, got %s", trustyHash, loc)
	}

	getResp, err := client.Get(srv.URL + "/" + trustyHash)
	if err != nil {
		t.Fatalf("fetch request failed: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", getResp.StatusCode)
	}
}

func TestPublishRejectsUnsignedNanopub(t *testing.T) {
	ds, info := unsignedSkeleton()
	body := core.SerializeTriG(ds, info.URI, info.NS)

	r := newTestRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(srv.URL+"/", "application/trig", strings.NewReader(body))
	if err != nil {
		t.Fatalf("publish request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request for an unsigned nanopub, got %d", resp.StatusCode)
	}
}

func TestFetchUnknownHashReturns404(t *testing.T) {
	r := newTestRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(srv.URL + "/RAdoesnotexistdoesnotexistdoesnotexistdoesno")
	if err != nil {
		t.Fatalf("fetch request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", resp.StatusCode)
	}
}

func unsignedSkeleton() (*core.Dataset, *core.NanopubInfo) {
	ns := core.TempNPNS
	uri := core.TempNPURI
	head := ns + "Head"
	assertion := ns + "assertion"
	prov := ns + "provenance"
	pubinfo := ns + "pubinfo"

	ds := core.NewDataset()
	headGraph := core.IRI(head)
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.RDFNS + "type"), Object: core.IRI(core.NPNS + "Nanopublication"), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasAssertion"), Object: core.IRI(assertion), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasProvenance"), Object: core.IRI(prov), Graph: headGraph})
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.NPNS + "hasPublicationInfo"), Object: core.IRI(pubinfo), Graph: headGraph})

	assertionGraph := core.IRI(assertion)
	ds.Add(core.Quad{Subject: core.IRI("http://example.org/thing"), Predicate: core.IRI("http://example.org/says"), Object: core.PlainLiteral("hello"), Graph: assertionGraph})

	provGraph := core.IRI(prov)
	ds.Add(core.Quad{Subject: assertionGraph, Predicate: core.IRI(core.ProvNS + "wasAttributedTo"), Object: core.IRI(core.OrcidNS + "0000-0000-0000-0000"), Graph: provGraph})

	pubinfoGraph := core.IRI(pubinfo)
	ds.Add(core.Quad{Subject: core.IRI(uri), Predicate: core.IRI(core.DCTermsNS + "label"), Object: core.PlainLiteral("a test nanopub"), Graph: pubinfoGraph})

	info, err := core.ExtractInfo(ds)
	if err != nil {
		panic(err)
	}
	return ds, info
}
