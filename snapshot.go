package fcago

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/fcago/internal/hash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm used for snapshots.
type CompressionType uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// Snapshot layout:
//
//	magic "FCTX" | version u8 | compression u8 | rawSize u32 | storedSize u32 | crc32c u32 | payload
//
// The payload, after decompression, holds the name, the object labels, the
// attribute labels (uvarint length-prefixed strings) and one row per object
// as ceil(attributes/64) little-endian words. storedSize == 0 means the
// payload was stored uncompressed. The checksum covers the uncompressed
// payload.
var snapshotMagic = [4]byte{'F', 'C', 'T', 'X'}

const (
	snapshotVersion    = 1
	snapshotHeaderSize = 18
)

// Upper bounds of rawSize/storedSize. An LZ4 sequence expands to at most
// ~255 bytes per input byte; a zstd block holds at most 128KiB behind a
// 3-byte header.
const (
	maxLZ4Ratio  = 256
	maxZSTDRatio = 1 << 16
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(math.MaxUint32))
	return dec
}

// WriteTo writes a ZSTD-compressed snapshot of c. It implements io.WriterTo.
func (c *Context) WriteTo(w io.Writer) (int64, error) {
	return WriteSnapshot(w, c, CompressionZSTD)
}

// WriteSnapshot writes a snapshot of c using the given compression.
func WriteSnapshot(w io.Writer, c *Context, compression CompressionType) (int64, error) {
	var payload bytes.Buffer
	writeString(&payload, c.name)
	writeLabels(&payload, c.objects.labels)
	writeLabels(&payload, c.attributes.labels)
	var word [8]byte
	for _, row := range c.rows {
		for _, w := range row.bits.Words() {
			binary.LittleEndian.PutUint64(word[:], w)
			payload.Write(word[:])
		}
	}
	if payload.Len() > math.MaxUint32 {
		return 0, fmt.Errorf("snapshot payload of %d bytes exceeds 4GiB", payload.Len())
	}

	stored, err := compress(payload.Bytes(), compression)
	if err != nil {
		return 0, err
	}

	// Keep the raw payload when compression does not help.
	storedSize := uint32(len(stored))
	if stored == nil || len(stored) >= payload.Len() {
		compression = CompressionNone
		stored = payload.Bytes()
		storedSize = 0
	}

	var hdr [snapshotHeaderSize]byte
	copy(hdr[:4], snapshotMagic[:])
	hdr[4] = snapshotVersion
	hdr[5] = byte(compression)
	binary.LittleEndian.PutUint32(hdr[6:], uint32(payload.Len()))
	binary.LittleEndian.PutUint32(hdr[10:], storedSize)
	binary.LittleEndian.PutUint32(hdr[14:], hash.CRC32C(payload.Bytes()))

	n, err := w.Write(hdr[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(stored)
	return int64(n + m), err
}

// ReadContext decodes a snapshot written by WriteTo or WriteSnapshot.
// Options apply as for New; WithName overrides the stored name.
// The metrics collector records the read as a context construction.
//
// Every malformed input yields an error matching ErrInvalidSnapshot.
// Allocations are bounded by the bytes r actually delivers.
func ReadContext(r io.Reader, optFns ...Option) (*Context, error) {
	opts := applyOptions(optFns)
	start := time.Now()

	c, n, err := readSnapshot(r, opts.name)

	objects, attributes := 0, 0
	if c != nil {
		objects, attributes = c.Shape()
	}
	opts.metricsCollector.RecordContext(objects, attributes, time.Since(start), err)
	opts.logger.LogSnapshot("read", n, err)
	return c, err
}

func readSnapshot(r io.Reader, nameOverride string) (*Context, int64, error) {
	var hdr [snapshotHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, 0, fmt.Errorf("%w: header: %w", ErrInvalidSnapshot, err)
	}
	if !bytes.Equal(hdr[:4], snapshotMagic[:]) {
		return nil, snapshotHeaderSize, fmt.Errorf("%w: bad magic %q", ErrInvalidSnapshot, hdr[:4])
	}
	if hdr[4] != snapshotVersion {
		return nil, snapshotHeaderSize, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, hdr[4])
	}
	compression := CompressionType(hdr[5])
	rawSize := binary.LittleEndian.Uint32(hdr[6:])
	storedSize := binary.LittleEndian.Uint32(hdr[10:])
	checksum := binary.LittleEndian.Uint32(hdr[14:])

	toRead := storedSize
	if storedSize == 0 {
		toRead = rawSize
	} else if err := checkRatio(compression, rawSize, storedSize); err != nil {
		return nil, snapshotHeaderSize, err
	}

	// The buffer grows with the bytes actually read, not with the header's claim.
	var buf bytes.Buffer
	read, err := buf.ReadFrom(io.LimitReader(r, int64(toRead)))
	n := int64(snapshotHeaderSize) + read
	if err != nil {
		return nil, n, fmt.Errorf("%w: payload: %w", ErrInvalidSnapshot, err)
	}
	if read != int64(toRead) {
		return nil, n, fmt.Errorf("%w: payload: %w (%d of %d bytes)", ErrInvalidSnapshot, io.ErrUnexpectedEOF, read, toRead)
	}

	payload := buf.Bytes()
	if storedSize != 0 {
		if payload, err = decompress(payload, rawSize, compression); err != nil {
			return nil, n, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
	}
	if got := hash.CRC32C(payload); got != checksum {
		return nil, n, fmt.Errorf("%w: checksum mismatch: %08x != %08x", ErrInvalidSnapshot, got, checksum)
	}

	c, err := decodePayload(bytes.NewReader(payload), nameOverride)
	if err != nil {
		return nil, n, err
	}
	return c, n, nil
}

func checkRatio(compression CompressionType, rawSize, storedSize uint32) error {
	var limit uint64
	switch compression {
	case CompressionLZ4:
		limit = uint64(storedSize) * maxLZ4Ratio
	case CompressionZSTD:
		limit = uint64(storedSize) * maxZSTDRatio
	default:
		return fmt.Errorf("%w: unknown compression type %d", ErrInvalidSnapshot, compression)
	}
	if uint64(rawSize) > limit {
		return fmt.Errorf("%w: raw size %d is implausible for %d stored bytes", ErrInvalidSnapshot, rawSize, storedSize)
	}
	return nil
}

func decodePayload(r *bytes.Reader, nameOverride string) (*Context, error) {
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	if nameOverride != "" {
		name = nameOverride
	}
	objectLabels, err := readLabels(r)
	if err != nil {
		return nil, err
	}
	attributeLabels, err := readLabels(r)
	if err != nil {
		return nil, err
	}

	width := len(attributeLabels)
	words := (width + 63) / 64
	if want := int64(len(objectLabels)) * int64(words) * 8; want != int64(r.Len()) {
		return nil, fmt.Errorf("%w: %d row bytes for %dx%d, want %d", ErrInvalidSnapshot, r.Len(), len(objectLabels), width, want)
	}

	matrix := make([][]bool, len(objectLabels))
	var word [8]byte
	for i := range matrix {
		row := make([]uint64, words)
		for k := range row {
			if _, err := io.ReadFull(r, word[:]); err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidSnapshot, i, err)
			}
			row[k] = binary.LittleEndian.Uint64(word[:])
		}
		if tail := width % 64; tail != 0 && row[words-1]>>tail != 0 {
			return nil, fmt.Errorf("%w: row %d has bits beyond %d attributes", ErrInvalidSnapshot, i, width)
		}
		matrix[i] = bitsToBools(bitset.FromWithLength(uint(width), row))
	}

	c, err := build(matrix, objectLabels, attributeLabels, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return c, nil
}

func compress(data []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil // Incompressible
		}
		return buf[:n], nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	case CompressionNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
}

// decompress expands data to exactly rawSize bytes. The caller has checked
// rawSize against checkRatio.
func decompress(data []byte, rawSize uint32, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionLZ4:
		result := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != rawSize {
			return nil, fmt.Errorf("decompressed size mismatch: %d != %d", n, rawSize)
		}
		return result, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		if err := dec.Reset(bytes.NewReader(data)); err != nil {
			return nil, err
		}
		result := make([]byte, rawSize)
		if _, err := io.ReadFull(dec, result); err != nil {
			return nil, fmt.Errorf("decompressed size below %d: %w", rawSize, err)
		}
		var extra [1]byte
		if n, _ := dec.Read(extra[:]); n != 0 {
			return nil, fmt.Errorf("decompressed size exceeds %d", rawSize)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], uint64(len(s)))])
	buf.WriteString(s)
}

func writeLabels(buf *bytes.Buffer, labels []string) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], uint64(len(labels)))])
	for _, l := range labels {
		writeString(buf, l)
	}
}

// readString reads a uvarint length-prefixed string. The length may not
// exceed what is left in r.
func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", fmt.Errorf("%w: string length: %w", ErrInvalidSnapshot, err)
	}
	if n > uint64(r.Len()) {
		return "", fmt.Errorf("%w: string length %d exceeds %d remaining bytes", ErrInvalidSnapshot, n, r.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: string: %w", ErrInvalidSnapshot, err)
	}
	return string(b), nil
}

// readLabels reads a uvarint count followed by that many strings. Each string
// takes at least one byte, which bounds the count by the bytes left in r.
func readLabels(r *bytes.Reader) ([]string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: label count: %w", ErrInvalidSnapshot, err)
	}
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: label count %d exceeds %d remaining bytes", ErrInvalidSnapshot, n, r.Len())
	}
	labels := make([]string, 0, n)
	for range n {
		l, err := readString(r)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}
