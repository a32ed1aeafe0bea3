// Package gpg imports the OpenPGP secret key used to sign release commits.
// Keys live only in memory for the duration of one command run; nothing is
// written to a keyring on disk.
package gpg

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// SigningKey is an imported, decrypted OpenPGP key able to sign commits.
type SigningKey struct {
	entity *openpgp.Entity
}

// ImportKey parses ASCII-armored secret key material.
// The first entity in the armored block is used. It must carry an
// unencrypted private key with a signing-capable (sub)key, otherwise a
// SigningKeyInvalid error is returned.
func ImportKey(armored string) (SigningKey, error) {
	if strings.TrimSpace(armored) == "" {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("key material is empty"))
	}

	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armored))
	if err != nil {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("reading armored key: %w", err))
	}
	if len(entities) == 0 {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("no key found in armored block"))
	}

	entity := entities[0]
	if entity.PrivateKey == nil {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("key %s has no private part", keyID(entity)))
	}
	if entity.PrivateKey.Encrypted {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("key %s is passphrase protected", keyID(entity)))
	}
	if _, ok := entity.SigningKey(time.Now()); !ok {
		return SigningKey{}, relerrors.InvalidSigningKey(fmt.Errorf("key %s cannot sign", keyID(entity)))
	}

	logDebug("[gpg] imported key %s", keyID(entity))
	return SigningKey{entity: entity}, nil
}

// Entity returns the underlying OpenPGP entity, or nil for the zero key.
func (k SigningKey) Entity() *openpgp.Entity {
	return k.entity
}

// IsZero reports whether k was never imported.
func (k SigningKey) IsZero() bool {
	return k.entity == nil
}

// KeyID returns the long key id in upper-case hex.
func (k SigningKey) KeyID() string {
	if k.entity == nil {
		return ""
	}
	return keyID(k.entity)
}

// Fingerprint returns the primary key fingerprint in upper-case hex.
func (k SigningKey) Fingerprint() string {
	if k.entity == nil {
		return ""
	}
	return fmt.Sprintf("%X", k.entity.PrimaryKey.Fingerprint)
}

// ArmoredPublicKey exports the public half, suitable for commit verification.
func (k SigningKey) ArmoredPublicKey() (string, error) {
	if k.entity == nil {
		return "", fmt.Errorf("no key imported")
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return "", fmt.Errorf("opening armor encoder: %w", err)
	}
	if err := k.entity.Serialize(w); err != nil {
		return "", fmt.Errorf("serializing public key: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing armor encoder: %w", err)
	}
	return buf.String(), nil
}

func keyID(e *openpgp.Entity) string {
	return fmt.Sprintf("%016X", e.PrimaryKey.KeyId)
}

// debugLogger is a no-op until SetDebugLogger installs one.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for key handling.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
