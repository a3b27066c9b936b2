// Package cryptox derives the password material exchanged at registration
// and login. The password itself never leaves the client: the server only
// stores the salt and a verifier computed from the argon2id master key.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 32
	KeySize  = 32
)

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
	return x
}

// VerifierFor runs the whole client-side derivation for one login attempt.
func VerifierFor(password, salt []byte) []byte {
	return MakeVerifier(DeriveMasterKey(password, salt))
}
