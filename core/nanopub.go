package core

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// Nanopub is the public façade over a single dataset: parse, check,
// sign, unsign, publish, and fetch. A value owns its dataset outright;
// it must not be mutated from more than one goroutine at a time.
type Nanopub struct {
	DS   *Dataset
	Info *NanopubInfo
}

// New parses input bytes (TriG, N-Quads, or JSON-LD) and extracts the
// nanopub structure, failing on any of the §3 invariant violations.
func New(data []byte) (*Nanopub, error) {
	ds, err := ParseDataset(data)
	if err != nil {
		return nil, err
	}
	info, err := ExtractInfo(ds)
	if err != nil {
		return nil, err
	}
	return &Nanopub{DS: ds, Info: info}, nil
}

// Check recomputes the Trusty hash and/or RSA signature and reports any
// mismatch. A nanopub with neither is valid but not trusty.
func (np *Nanopub) Check() error {
	return VerifyDataset(np.DS, np.Info)
}

// Sign signs np with priv, optionally attributing it to orcid, unsigning
// first if np already carries a signature.
func (np *Nanopub) Sign(priv *rsa.PrivateKey, orcid string) error {
	info, err := SignDataset(np.DS, np.Info, priv, orcid, time.Now())
	if err != nil {
		return err
	}
	np.Info = info
	return nil
}

// Unsign strips the signature declaration and reverts np's URI/namespace
// to the temporary placeholder.
func (np *Nanopub) Unsign() error {
	info, err := UnsignDataset(np.DS, np.Info)
	if err != nil {
		return err
	}
	np.Info = info
	return nil
}

// NewIntro builds and signs a profile-introduction nanopub binding orcid
// and name to priv's public key.
func NewIntro(orcid, name string, priv *rsa.PrivateKey) (*Nanopub, error) {
	pubKeyB64, err := PublicKeyString(priv)
	if err != nil {
		return nil, err
	}
	ds, info := BuildIntroduction(orcid, name, pubKeyB64)
	np := &Nanopub{DS: ds, Info: info}
	if err := np.Sign(priv, orcid); err != nil {
		return nil, err
	}
	return np, nil
}

// Publish signs np (when unsigned and priv is supplied) or checks it
// (when already signed), then POSTs the serialized TriG body to server.
// Any response other than 200 or 201 is surfaced as a NetworkError
// carrying the status and body verbatim; the core does not retry.
func (np *Nanopub) Publish(ctx context.Context, client *http.Client, priv *rsa.PrivateKey, orcid, server string) error {
	if np.Info.Signature == "" {
		if priv == nil {
			return newErr(StructureInvalid, "nanopub has no signature and no key was supplied to sign it")
		}
		if err := np.Sign(priv, orcid); err != nil {
			return err
		}
	} else if err := np.Check(); err != nil {
		return err
	}

	body := SerializeTriG(np.DS, np.Info.URI, np.Info.NS)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server, strings.NewReader(body))
	if err != nil {
		return wrapErr(NetworkError, "building publish request", err)
	}
	req.Header.Set("Content-Type", "application/trig")

	resp, err := client.Do(req)
	if err != nil {
		return wrapErr(NetworkError, "publishing nanopub", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return newErrURI(NetworkError, fmt.Sprintf("server rejected publish: status %d: %s", resp.StatusCode, string(respBody)), server)
	}

	published := server
	if loc := resp.Header.Get("Location"); loc != "" {
		published = loc
	} else if np.Info.TrustyHash != "" {
		published = np.Info.NormalizedNS + np.Info.TrustyHash
	}
	np.Info.Published = published
	return nil
}

// Fetch GETs url, parses the TriG response body, and marks the result's
// Published field as url.
func Fetch(ctx context.Context, client *http.Client, url string) (*Nanopub, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, wrapErr(NetworkError, "building fetch request", err)
	}
	req.Header.Set("Accept", "application/trig")

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapErr(NetworkError, "fetching nanopub", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErr(NetworkError, "reading fetch response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newErrURI(NetworkError, fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(data)), url)
	}

	np, err := New(data)
	if err != nil {
		return nil, err
	}
	np.Info.Published = url
	return np, nil
}

// GetServer returns the known nanopub server to publish to: the test
// server when useTest is set, the first known server when random is
// false, or a uniformly random one (via a cryptographic RNG) otherwise.
func GetServer(random, useTest bool) string {
	if useTest {
		return TestServer
	}
	if !random {
		return Servers[0]
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Servers))))
	if err != nil {
		return Servers[0]
	}
	return Servers[n.Int64()]
}
