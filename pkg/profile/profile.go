// Package profile loads the YAML bundle that identifies a signer: a
// private key file plus optional ORCID, name, and introduction-nanopub
// URI. It is the boundary concern spec.md calls out as "YAML profile
// file I/O" — parsed here, handed to core as a plain private key.
package profile

import (
	"crypto/rsa"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"nanopub-go/core"
	"nanopub-go/pkg/utils"
)

// Profile is the YAML document shape consumed at the boundary. The
// public key is never read from it — it is always regenerated from the
// private key.
type Profile struct {
	PrivateKeyPath         string `yaml:"private_key"`
	OrcidID                string `yaml:"orcid_id"`
	Name                   string `yaml:"name"`
	IntroductionNanopubURI string `yaml:"introduction_nanopub_uri"`
}

// DefaultPath returns "~/.nanopub/profile.yml", resolved against the
// current user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", utils.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, ".nanopub", "profile.yml"), nil
}

// Load reads and parses a profile YAML file. An empty path resolves to
// DefaultPath.
func Load(path string) (*Profile, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.Wrap(err, "reading profile file "+path)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, utils.Wrap(err, "parsing profile YAML")
	}
	return &p, nil
}

// PrivateKey reads and normalizes the key material at p.PrivateKeyPath
// into an RSA private key ready for signing.
func (p *Profile) PrivateKey() (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(p.PrivateKeyPath)
	if err != nil {
		return nil, utils.Wrap(err, "reading private key file "+p.PrivateKeyPath)
	}
	normalized, err := core.NormalizeKey(string(raw))
	if err != nil {
		return nil, err
	}
	return core.ParsePrivateKey(normalized)
}
