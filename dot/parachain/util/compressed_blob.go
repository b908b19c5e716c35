// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	maxCodeSize = 3 * 1024 * 1024
	maxPoVSize  = 5 * 1024 * 1024

	// ValidationCodeBombLimit is the maximum size of decompressed validation code.
	ValidationCodeBombLimit = maxCodeSize * 4
	// PoVBombLimit is the maximum size of a decompressed PoV block.
	PoVBombLimit = maxPoVSize * 4
)

var (
	ErrBombLimitExceeded = errors.New("possible compression bomb encountered")
	ErrInvalidBlob       = errors.New("could not decompress blob")
)

// ZstdPrefix is an arbitrary prefix that indicates a blob beginning with it should be
// decompressed with Zstd compression.
//
// This differs from the WASM magic bytes, so real WASM blobs will not have this prefix.
var ZstdPrefix = []byte{82, 188, 83, 118, 70, 219, 142, 5}

// MaybeCompressedBlobDecompress decompresses the blob if it carries the zstd prefix and returns it
// untouched otherwise. The decompressed size may not exceed bombLimit.
func MaybeCompressedBlobDecompress(blob []byte, bombLimit uint64) ([]byte, error) {
	if !bytes.HasPrefix(blob, ZstdPrefix) {
		return blob, nil
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(bombLimit),
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	decompressed, err := decoder.DecodeAll(blob[len(ZstdPrefix):], nil)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrBombLimitExceeded, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidBlob, err)
	}

	if uint64(len(decompressed)) > bombLimit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes",
			ErrBombLimitExceeded, len(decompressed), bombLimit)
	}
	return decompressed, nil
}

// MaybeCompressedBlobCompress compresses the blob with zstd and prepends the zstd prefix.
// Blobs larger than bombLimit are refused.
func MaybeCompressedBlobCompress(blob []byte, bombLimit uint64) ([]byte, error) {
	if uint64(len(blob)) > bombLimit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes",
			ErrBombLimitExceeded, len(blob), bombLimit)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer encoder.Close()

	compressed := append([]byte{}, ZstdPrefix...)
	return encoder.EncodeAll(blob, compressed), nil
}
