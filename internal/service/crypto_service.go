package service

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"

	"offline-voucher-sync/internal/core/domain"
)

const rsaKeyBits = 2048

var pssOpts = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA256,
}

// RSACryptoService implements ports.CryptoService with RSA-2048 PSS over
// SHA-256. Canonical serialization is compact JSON with keys sorted
// lexicographically, so signer and verifier produce identical bytes
// regardless of field insertion order.
type RSACryptoService struct{}

// NewRSACryptoService creates a new RSA crypto service.
func NewRSACryptoService() *RSACryptoService {
	return &RSACryptoService{}
}

// GenerateKeyPair returns a fresh RSA-2048 key pair as PEM strings
// (PKIX public, PKCS#8 private).
func (s *RSACryptoService) GenerateKeyPair() (string, string, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return "", "", fmt.Errorf("generate rsa key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("marshal private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("marshal public key: %w", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return string(pubPEM), string(privPEM), nil
}

// Canonicalize serializes a field map to compact JSON with sorted keys.
func (s *RSACryptoService) Canonicalize(fields map[string]any) ([]byte, error) {
	// encoding/json sorts map keys, which is the canonical-form contract.
	return json.Marshal(fields)
}

// SignDraft signs the draft's canonical bytes with RSA-PSS/SHA-256 and
// returns the signature base64-encoded.
func (s *RSACryptoService) SignDraft(draft domain.VoucherDraft, privatePEM string) (string, error) {
	key, err := parsePrivateKey(privatePEM)
	if err != nil {
		return "", err
	}

	canonical, err := s.Canonicalize(draft.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("canonicalize draft: %w", err)
	}

	digest := sha256.Sum256(canonical)
	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], pssOpts)
	if err != nil {
		return "", fmt.Errorf("sign draft: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// VerifyDraft checks the signature against the draft's canonical bytes.
// It is total: malformed keys, malformed signatures, and internal errors
// all resolve to false.
func (s *RSACryptoService) VerifyDraft(draft domain.VoucherDraft, signatureB64 string, publicPEM string) (valid bool) {
	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	key, err := parsePublicKey(publicPEM)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}
	canonical, err := s.Canonicalize(draft.CanonicalMap())
	if err != nil {
		return false
	}

	digest := sha256.Sum256(canonical)
	return rsa.VerifyPSS(key, crypto.SHA256, digest[:], sig, pssOpts) == nil
}

// Nonce returns 32 bytes of cryptographic randomness as 64 hex chars.
func (s *RSACryptoService) Nonce() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashObject returns the SHA-256 hex digest of the canonical form.
func (s *RSACryptoService) HashObject(fields map[string]any) (string, error) {
	canonical, err := s.Canonicalize(fields)
	if err != nil {
		return "", fmt.Errorf("canonicalize object: %w", err)
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

func parsePrivateKey(pemStr string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("invalid private key PEM")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return key, nil
}

func parsePublicKey(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("invalid public key PEM")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return key, nil
}
