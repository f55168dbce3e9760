package event

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
)

// signaturePrefix tags the signature scheme on the wire.
const signaturePrefix = "esdb:signature:v1:"

// timeHashLayout is RFC 3339 with fixed nine-digit nanoseconds, the exact
// rendering the server hashes.
const timeHashLayout = "2006-01-02T15:04:05.000000000Z07:00"

// VerifyHash recomputes the event hash and compares it against the hash the
// server assigned. The hash covers a metadata digest and a digest of the raw
// data bytes, chained through SHA-256.
func (e Event) VerifyHash() error {
	metadata := strings.Join([]string{
		e.SpecVersion,
		e.ID,
		e.PredecessorHash,
		e.Time.UTC().Format(timeHashLayout),
		e.Source,
		e.Subject,
		e.Type,
		e.DataContentType,
	}, "|")

	metadataHash := sha256.Sum256([]byte(metadata))
	dataHash := sha256.Sum256(e.Data)

	finalInput := hex.EncodeToString(metadataHash[:]) + hex.EncodeToString(dataHash[:])
	finalHash := sha256.Sum256([]byte(finalInput))
	computed := hex.EncodeToString(finalHash[:])

	if computed != e.Hash {
		return fmt.Errorf("%w: hash mismatch, expected %s, computed %s", errspkg.ErrProtocol, e.Hash, computed)
	}
	return nil
}

// VerifySignature checks the event's Ed25519 signature against publicKey.
// The signature signs the hash string, so the hash is verified first; a
// forged hash would otherwise carry a valid signature over wrong content.
func (e Event) VerifySignature(publicKey ed25519.PublicKey) error {
	if e.Signature == "" {
		return errspkg.NewProtocolError("event carries no signature")
	}
	if err := e.VerifyHash(); err != nil {
		return err
	}

	encoded, ok := strings.CutPrefix(e.Signature, signaturePrefix)
	if !ok {
		return errspkg.NewProtocolError("malformed signature: missing " + signaturePrefix + " prefix")
	}
	signature, err := hex.DecodeString(encoded)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return errspkg.NewProtocolError("malformed signature encoding")
	}

	if !ed25519.Verify(publicKey, []byte(e.Hash), signature) {
		return errspkg.NewProtocolError("signature verification failed")
	}
	return nil
}
