package core

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

// SignDataset signs ds per the pipeline in the introspection/canonical
// serialization/Trusty-URI components: blank-node elimination, signature
// declaration insertion, RSA-SHA-256 signing, and finally Trusty-URI
// derivation and rewrite. If ds is already signed it is unsigned first
// so the publication-info graph never accumulates stale signature
// triples. Returns the re-extracted info of the now-signed, Trusty-URI'd
// dataset.
func SignDataset(ds *Dataset, info *NanopubInfo, priv *rsa.PrivateKey, orcid string, now time.Time) (*NanopubInfo, error) {
	CanonicalizeBlankNodes(ds, info.NS)

	if info.Signature != "" {
		var err error
		info, err = UnsignDataset(ds, info)
		if err != nil {
			return nil, err
		}
	}

	pubKeyB64, err := PublicKeyString(priv)
	if err != nil {
		return nil, err
	}

	pubInfoGraph := IRI(info.PubInfo)
	sigIRI := IRI(info.NS + "sig")
	nsIRI := IRI(info.NS)

	ds.Add(Quad{Subject: sigIRI, Predicate: IRI(NPXNS + "hasPublicKey"), Object: PlainLiteral(pubKeyB64), Graph: pubInfoGraph})
	ds.Add(Quad{Subject: sigIRI, Predicate: IRI(NPXNS + "hasAlgorithm"), Object: PlainLiteral("RSA"), Graph: pubInfoGraph})
	ds.Add(Quad{Subject: sigIRI, Predicate: IRI(NPXNS + "hasSignatureTarget"), Object: nsIRI, Graph: pubInfoGraph})

	created := IRI(DCTermsNS + "created")
	xTerm := IRI(info.URI)
	if len(ds.Match(&xTerm, &created, nil, &pubInfoGraph)) == 0 && len(ds.Match(&nsIRI, &created, nil, &pubInfoGraph)) == 0 {
		stamp := now.UTC().Format("2006-01-02T15:04:05.000Z")
		ds.Add(Quad{Subject: nsIRI, Predicate: created, Object: TypedLiteral(stamp, XSDNS+"dateTime"), Graph: pubInfoGraph})
	}

	if orcid != "" && !hasAttribution(ds, pubInfoGraph, info.URI, info.NS) {
		ds.Add(Quad{Subject: nsIRI, Predicate: IRI(DCTermsNS + "creator"), Object: IRI(orcid), Graph: pubInfoGraph})
	}

	canonical := NormalizeDataset(ds, info)
	digest := sha256.Sum256([]byte(canonical))
	sigBytes, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, wrapErr(SignatureInvalid, "signing canonical digest", err)
	}
	sigB64 := base64.StdEncoding.EncodeToString(sigBytes)
	ds.Add(Quad{Subject: sigIRI, Predicate: IRI(NPXNS + "hasSignature"), Object: PlainLiteral(sigB64), Graph: pubInfoGraph})

	ApplyTrustyRewrite(ds, info)
	newInfo, err := ExtractInfo(ds)
	if err != nil {
		return nil, err
	}
	return newInfo, nil
}

// UnsignDataset removes the signature declaration triples from
// pub-info and rewrites the URI/namespace back to the temporary
// placeholder, ready to be re-signed with a (possibly different) key.
func UnsignDataset(ds *Dataset, info *NanopubInfo) (*NanopubInfo, error) {
	if info.SignatureIRI == "" {
		return info, nil
	}
	sigSubj := IRI(info.SignatureIRI)

	remove := func(pred string, obj Term) {
		kept := ds.Quads[:0]
		predIRI := IRI(pred)
		for _, q := range ds.Quads {
			if q.Graph.Value == info.PubInfo && termEqual(q.Subject, sigSubj) && termEqual(q.Predicate, predIRI) && termEqual(q.Object, obj) {
				continue
			}
			kept = append(kept, q)
		}
		ds.Quads = kept
	}
	remove(NPXNS+"hasPublicKey", PlainLiteral(info.PublicKey))
	remove(NPXNS+"hasAlgorithm", PlainLiteral(info.Algo))
	remove(NPXNS+"hasSignatureTarget", IRI(info.NS))
	remove(NPXNS+"hasSignature", PlainLiteral(info.Signature))

	rewrite := func(u string) string {
		if u == info.URI {
			return TempNPURI
		}
		if len(u) >= len(info.NS) && u[:len(info.NS)] == info.NS {
			return TempNPNS + u[len(info.NS):]
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
		}
	}
	return ExtractInfo(ds)
}

// VerifyDataset implements "check": it recomputes the Trusty hash (if
// present) and the RSA signature (if present) and reports any mismatch.
// A dataset with neither is accepted as valid-but-not-trusty.
func VerifyDataset(ds *Dataset, info *NanopubInfo) error {
	if info.TrustyHash != "" {
		recomputed := TrustyHashOf(NormalizeDataset(ds, info))
		if recomputed != info.TrustyHash {
			return newErrURI(TrustyMismatch, "recomputed Trusty hash does not match the embedded one", info.URI)
		}
	}
	if info.Signature != "" {
		verifyDS := copyDataset(ds)
		sigSubj := IRI(info.SignatureIRI)
		sigPred := IRI(NPXNS + "hasSignature")
		kept := verifyDS.Quads[:0]
		for _, q := range verifyDS.Quads {
			if q.Graph.Value == info.PubInfo && termEqual(q.Subject, sigSubj) && termEqual(q.Predicate, sigPred) {
				continue
			}
			kept = append(kept, q)
		}
		verifyDS.Quads = kept

		canonical := NormalizeDataset(verifyDS, info)
		digest := sha256.Sum256([]byte(canonical))

		sigBytes, err := base64.StdEncoding.DecodeString(info.Signature)
		if err != nil {
			return wrapErr(SignatureInvalid, "decoding base64 signature", err)
		}
		pub, err := ParsePublicKey(info.PublicKey)
		if err != nil {
			return wrapErr(SignatureInvalid, "parsing embedded public key", err)
		}
		if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sigBytes); err != nil {
			return newErrURI(SignatureInvalid, "RSA signature verification failed", info.URI)
		}
	}
	return nil
}

func hasAttribution(ds *Dataset, graph Term, uri, ns string) bool {
	xTerm := IRI(uri)
	nsTerm := IRI(ns)
	for _, predIRI := range []string{DCTermsNS + "creator", ProvNS + "wasAttributedTo", PavNS + "createdBy"} {
		pred := IRI(predIRI)
		if len(ds.Match(&xTerm, &pred, nil, &graph)) > 0 || len(ds.Match(&nsTerm, &pred, nil, &graph)) > 0 {
			return true
		}
	}
	return false
}

func copyDataset(ds *Dataset) *Dataset {
	cp := &Dataset{Quads: make([]Quad, len(ds.Quads))}
	copy(cp.Quads, ds.Quads)
	return cp
}
