package core

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
)

// NormalizeKey converts a raw key input into a single-line base-64 DER
// string. A PEM private key (PKCS#8 or PKCS#1) is re-encoded as PKCS#8
// DER and a PEM public key as PKIX DER; bare base-64 DER with no headers
// only has its whitespace stripped and is not re-encoded. OpenSSH-format
// keys are rejected.
func NormalizeKey(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, "OPENSSH PRIVATE KEY") || strings.HasPrefix(trimmed, "ssh-rsa") {
		return "", newErr(KeyFormatError, "OpenSSH-format keys are not supported")
	}
	if strings.HasPrefix(trimmed, "-----BEGIN") {
		return normalizePEM(trimmed)
	}
	return stripWhitespace(trimmed), nil
}

func normalizePEM(pemText string) (string, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return "", newErr(KeyFormatError, "could not decode PEM block")
	}
	if strings.Contains(block.Type, "OPENSSH") {
		return "", newErr(KeyFormatError, "OpenSSH-format keys are not supported")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return "", wrapErr(KeyFormatError, "re-encoding PKCS#8 private key", err)
		}
		return base64.StdEncoding.EncodeToString(der), nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return "", wrapErr(KeyFormatError, "re-encoding PKCS#1 private key", err)
		}
		return base64.StdEncoding.EncodeToString(der), nil
	}
	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		der, err := x509.MarshalPKIXPublicKey(key)
		if err != nil {
			return "", wrapErr(KeyFormatError, "re-encoding public key", err)
		}
		return base64.StdEncoding.EncodeToString(der), nil
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		der, err := x509.MarshalPKIXPublicKey(key)
		if err != nil {
			return "", wrapErr(KeyFormatError, "re-encoding public key", err)
		}
		return base64.StdEncoding.EncodeToString(der), nil
	}
	return "", newErr(KeyFormatError, "unrecognized PEM key block type: "+block.Type)
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParsePrivateKey decodes a normalized (base-64 PKCS#8 DER) private key
// string into an RSA private key.
func ParsePrivateKey(normalized string) (*rsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, wrapErr(KeyFormatError, "decoding base64 private key", err)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		if key1, err1 := x509.ParsePKCS1PrivateKey(der); err1 == nil {
			return key1, nil
		}
		return nil, wrapErr(KeyFormatError, "parsing PKCS#8 private key", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, newErr(KeyFormatError, "private key is not an RSA key")
	}
	return rsaKey, nil
}

// ParsePublicKey decodes a normalized (base-64 PKCS#8/PKIX DER) public
// key string into an RSA public key.
func ParsePublicKey(normalized string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, wrapErr(KeyFormatError, "decoding base64 public key", err)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, wrapErr(KeyFormatError, "parsing public key", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, newErr(KeyFormatError, "public key is not an RSA key")
	}
	return rsaKey, nil
}

// PublicKeyString derives the public key from a private key and encodes
// it as a single-line base-64 PKIX DER string — the form carried in RDF.
// Profiles never trust a stored public key; it is always regenerated.
func PublicKeyString(priv *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return "", wrapErr(KeyFormatError, "encoding public key", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
