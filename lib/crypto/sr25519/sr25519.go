// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"errors"
	"fmt"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	"github.com/gtank/merlin"
)

const (
	// PublicKeyLength is the expected public key length for sr25519.
	PublicKeyLength = 32
	// SeedLength is the expected seed length for sr25519.
	SeedLength = 32
	// SignatureLength is the length of a sr25519 signature
	SignatureLength = 64
)

// SigningContext is the context for signatures used or created with substrate
var SigningContext = []byte("substrate")

var (
	ErrBadSignatureLength = errors.New("invalid signature length")
	ErrBadPublicKeyLength = errors.New("invalid public key length")
	ErrBadSeedLength      = errors.New("cannot generate key from seed: seed is not 32 bytes long")
	ErrSignatureMismatch  = errors.New("signature verification failed")
)

// Keypair is a sr25519 public-private keypair
type Keypair struct {
	public  *PublicKey
	private *sr25519.SecretKey
}

// PublicKey holds reference to a sr25519.PublicKey
type PublicKey struct {
	key *sr25519.PublicKey
}

// GenerateKeypair returns a new sr25519 keypair
func GenerateKeypair() (*Keypair, error) {
	priv, pub, err := sr25519.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	return &Keypair{
		public:  &PublicKey{key: pub},
		private: priv,
	}, nil
}

// NewKeypairFromSeed returns a new sr25519 Keypair given a 32 byte seed
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedLength {
		return nil, ErrBadSeedLength
	}

	buf := [SeedLength]byte{}
	copy(buf[:], seed)
	msc, err := sr25519.NewMiniSecretKeyFromRaw(buf)
	if err != nil {
		return nil, fmt.Errorf("creating mini secret key: %w", err)
	}

	return &Keypair{
		public:  &PublicKey{key: msc.Public()},
		private: msc.ExpandEd25519(),
	}, nil
}

// Sign uses the keypair to sign the message using the sr25519 signature algorithm
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	t := sr25519.NewSigningContext(SigningContext, msg)
	sig, err := kp.private.Sign(t)
	if err != nil {
		return nil, err
	}
	enc := sig.Encode()
	return enc[:], nil
}

// Public returns the public key corresponding to this keypair
func (kp *Keypair) Public() *PublicKey {
	return kp.public
}

// NewPublicKey returns a sr25519 public key from 32 bytes
func NewPublicKey(in []byte) (*PublicKey, error) {
	if len(in) != PublicKeyLength {
		return nil, fmt.Errorf("%w: %d", ErrBadPublicKeyLength, len(in))
	}

	buf := [PublicKeyLength]byte{}
	copy(buf[:], in)
	key := &sr25519.PublicKey{}
	if err := key.Decode(buf); err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	return &PublicKey{key: key}, nil
}

// Verify verifies that the public key signed the given message.
func (k *PublicKey) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != SignatureLength {
		return false, fmt.Errorf("%w: %d", ErrBadSignatureLength, len(sig))
	}

	b := [SignatureLength]byte{}
	copy(b[:], sig)

	s := &sr25519.Signature{}
	if err := s.Decode(b); err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}

	var t *merlin.Transcript = sr25519.NewSigningContext(SigningContext, msg)
	return k.key.Verify(s, t)
}

// Encode returns the SCALE encoding of the public key, which is its 32 raw bytes.
func (k *PublicKey) Encode() [PublicKeyLength]byte {
	return k.key.Encode()
}

// AsBytes returns the public key as a 32 byte array.
func (k *PublicKey) AsBytes() [PublicKeyLength]byte {
	return k.Encode()
}

// VerifySignature verifies that the 32 byte public key signed the message.
func VerifySignature(publicKey, signature, message []byte) error {
	pubKey, err := NewPublicKey(publicKey)
	if err != nil {
		return fmt.Errorf("sr25519: %w", err)
	}

	ok, err := pubKey.Verify(message, signature)
	if err != nil {
		return fmt.Errorf("sr25519: %w", err)
	}
	if !ok {
		return ErrSignatureMismatch
	}
	return nil
}
