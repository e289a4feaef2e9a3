// Package hash computes the checksums stored in archive segment headers and the
// fingerprints of encoded lines.
package hash

import "github.com/cespare/xxhash/v2"

// Sum returns the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
