// Package hash provides the CRC32-Castagnoli checksum used to detect corrupt
// context snapshots.
//
//	sum := hash.CRC32C(payload)
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension for this polynomial
// when the CPU supports it.
package hash
