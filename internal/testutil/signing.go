package testutil

import (
	"bytes"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/require"
)

// SigningKeyPair holds a generated key in armored form.
type SigningKeyPair struct {
	ArmoredPrivate string
	ArmoredPublic  string
	Entity         *openpgp.Entity
}

// NewSigningKey generates an unencrypted Ed25519 OpenPGP key.
func NewSigningKey(t testing.TB) SigningKeyPair {
	t.Helper()

	entity := newEntity(t)
	return SigningKeyPair{
		ArmoredPrivate: ArmorPrivate(t, entity),
		ArmoredPublic:  ArmorPublic(t, entity),
		Entity:         entity,
	}
}

// NewEncryptedSigningKey generates a key protected by passphrase and
// returns its armored private form.
func NewEncryptedSigningKey(t testing.TB, passphrase string) string {
	t.Helper()

	entity := newEntity(t)
	require.NoError(t, entity.EncryptPrivateKeys([]byte(passphrase), nil))
	return ArmorPrivate(t, entity)
}

func newEntity(t testing.TB) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("Release Bot", "test", "release-bot@example.com", &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	require.NoError(t, err)
	return entity
}

// ArmorPrivate serializes the private key of entity as an armored block.
func ArmorPrivate(t testing.TB, entity *openpgp.Entity) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.SerializePrivateWithoutSigning(w, nil))
	require.NoError(t, w.Close())
	return buf.String()
}

// ArmorPublic serializes the public key of entity as an armored block.
func ArmorPublic(t testing.TB, entity *openpgp.Entity) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())
	return buf.String()
}
