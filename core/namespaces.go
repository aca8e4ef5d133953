package core

// Well-known namespaces used across the nanopub ontology.
const (
	NPNS       = "http://www.nanopub.org/nschema#"
	NPXNS      = "http://purl.org/nanopub/x/"
	RDFNS      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS     = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNS      = "http://www.w3.org/2001/XMLSchema#"
	OWLNS      = "http://www.w3.org/2002/07/owl#"
	SKOSNS     = "http://www.w3.org/2004/02/skos/core#"
	DCNS       = "http://purl.org/dc/elements/1.1/"
	DCTermsNS  = "http://purl.org/dc/terms/"
	ProvNS     = "http://www.w3.org/ns/prov#"
	PavNS      = "http://purl.org/pav/"
	SchemaNS   = "http://schema.org/"
	FoafNS     = "http://xmlns.com/foaf/0.1/"
	OrcidNS    = "https://orcid.org/"
	TempNPURI  = "http://purl.org/nanopub/temp/mynanopub"
	TempNPNS   = "http://purl.org/nanopub/temp/mynanopub#"
	NPPrefixNS = "https://w3id.org/np/"
	TestServer = "http://test-server.nanopubs.lod.labs.vu.nl/"
)

// Servers is the static list of known nanopub publication servers, plus
// the test server. GetServer picks the first or, when random is true, a
// uniformly random entry using a cryptographic RNG.
var Servers = []string{
	"http://server.nanopubs.lod.labs.vu.nl/",
	"http://server.np.dumontierlab.com/",
	"http://app.tkuhn.eculture.labs.vu.nl/nanopub-server-1",
	"http://app.tkuhn.eculture.labs.vu.nl/nanopub-server-2",
	"http://app.tkuhn.eculture.labs.vu.nl/nanopub-server-3",
	"http://app.tkuhn.eculture.labs.vu.nl/nanopub-server-4",
}

// prefix holds a single TriG @prefix declaration.
type prefix struct {
	Name string
	IRI  string
}

// prefixTable returns the fixed prefix map used when serializing a
// dataset to TriG, anchored on the nanopub's own URI and namespace.
func prefixTable(npURI, npNS string) []prefix {
	return []prefix{
		{"this", npURI},
		{"sub", npNS},
		{"rdf", RDFNS},
		{"rdfs", RDFSNS},
		{"xsd", XSDNS},
		{"owl", OWLNS},
		{"skos", SKOSNS},
		{"np", NPNS},
		{"npx", NPXNS},
		{"dc", DCNS},
		{"dcterms", DCTermsNS},
		{"prov", ProvNS},
		{"pav", PavNS},
		{"schema", SchemaNS},
		{"foaf", FoafNS},
		{"orcid", OrcidNS},
	}
}
