// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keystore

import (
	"errors"
	"sync"

	"github.com/ChainSafe/candidate-validation/lib/crypto/sr25519"
)

var (
	ErrInvalidKeystoreName = errors.New("invalid keystore name")
	ErrNilKeypair          = errors.New("cannot insert nil keypair")
)

// Name represents a defined keystore name
type Name string

var (
	ParaName Name = "para"
	AudiName Name = "audi"
)

// Keystore provides key management functionality
type Keystore interface {
	Name() Name
	Insert(kp *sr25519.Keypair) error
	GetKeypair(pub [sr25519.PublicKeyLength]byte) *sr25519.Keypair
	HasKey(pub [sr25519.PublicKeyLength]byte) bool
	PublicKeys() [][sr25519.PublicKeyLength]byte
	Size() int
}

// GlobalKeystore defines the keystores used by candidate validation
type GlobalKeystore struct {
	Para Keystore
	Audi Keystore
}

// NewGlobalKeystore returns a new GlobalKeystore
func NewGlobalKeystore() *GlobalKeystore {
	return &GlobalKeystore{
		Para: NewBasicKeystore(ParaName),
		Audi: NewBasicKeystore(AudiName),
	}
}

// GetKeystore returns a keystore given its name
func (k *GlobalKeystore) GetKeystore(name []byte) (Keystore, error) {
	switch Name(name) {
	case ParaName:
		return k.Para, nil
	case AudiName:
		return k.Audi, nil
	default:
		return nil, ErrInvalidKeystoreName
	}
}

// BasicKeystore holds sr25519 keys in memory, indexed by their public key
type BasicKeystore struct {
	name Name
	keys map[[sr25519.PublicKeyLength]byte]*sr25519.Keypair
	lock sync.RWMutex
}

// NewBasicKeystore creates a new BasicKeystore with the given name
func NewBasicKeystore(name Name) *BasicKeystore {
	return &BasicKeystore{
		name: name,
		keys: make(map[[sr25519.PublicKeyLength]byte]*sr25519.Keypair),
	}
}

// Name returns the keystore's name
func (ks *BasicKeystore) Name() Name {
	return ks.name
}

// Size returns the number of keys in the keystore
func (ks *BasicKeystore) Size() int {
	ks.lock.RLock()
	defer ks.lock.RUnlock()
	return len(ks.keys)
}

// Insert adds a keypair to the keystore
func (ks *BasicKeystore) Insert(kp *sr25519.Keypair) error {
	if kp == nil {
		return ErrNilKeypair
	}

	ks.lock.Lock()
	defer ks.lock.Unlock()
	ks.keys[kp.Public().Encode()] = kp
	return nil
}

// GetKeypair returns the keypair for the given public key, or nil if it is not stored
func (ks *BasicKeystore) GetKeypair(pub [sr25519.PublicKeyLength]byte) *sr25519.Keypair {
	ks.lock.RLock()
	defer ks.lock.RUnlock()
	return ks.keys[pub]
}

// HasKey returns true if the keystore holds the private key for the given public key
func (ks *BasicKeystore) HasKey(pub [sr25519.PublicKeyLength]byte) bool {
	return ks.GetKeypair(pub) != nil
}

// PublicKeys returns all public keys in the keystore
func (ks *BasicKeystore) PublicKeys() [][sr25519.PublicKeyLength]byte {
	ks.lock.RLock()
	defer ks.lock.RUnlock()

	srkeys := make([][sr25519.PublicKeyLength]byte, 0, len(ks.keys))
	for key := range ks.keys {
		srkeys = append(srkeys, key)
	}
	return srkeys
}
