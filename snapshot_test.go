package fcago

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/hupe1980/fcago/internal/hash"

	"github.com/hupe1980/fcago/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)
	matrix := rng.Matrix(40, 130, 0.2)
	c, err := New(matrix, testutil.Labels("obj-", 40), testutil.Labels("attr-", 130), WithName("random"))
	require.NoError(t, err)

	for _, compression := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compressionName(compression), func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteSnapshot(&buf, c, compression)
			require.NoError(t, err)
			assert.Equal(t, int64(buf.Len()), n)

			got, err := ReadContext(&buf)
			require.NoError(t, err)

			assert.Equal(t, "random", got.Name())
			assert.Equal(t, c.Objects().Labels(), got.Objects().Labels())
			assert.Equal(t, c.Attributes().Labels(), got.Attributes().Labels())
			assert.Equal(t, matrix, got.Bools())
		})
	}
}

func compressionName(c CompressionType) string {
	switch c {
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return "None"
	}
}

func TestWriteTo(t *testing.T) {
	c := exampleContext(t)

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadContext(&buf, WithName("renamed"))
	require.NoError(t, err)
	assert.Equal(t, "Context(renamed, 3x2)", got.String())
	assert.Equal(t, c.Bools(), got.Bools())
}

func TestReadContextErrors(t *testing.T) {
	c := exampleContext(t)
	var buf bytes.Buffer
	_, err := WriteSnapshot(&buf, c, CompressionNone)
	require.NoError(t, err)
	valid := buf.Bytes()

	t.Run("Short", func(t *testing.T) {
		_, err := ReadContext(bytes.NewReader(valid[:5]))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Magic", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[0] = 'X'
		_, err := ReadContext(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Version", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[4] = 99
		_, err := ReadContext(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("TruncatedPayload", func(t *testing.T) {
		_, err := ReadContext(bytes.NewReader(valid[:len(valid)-3]))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Checksum", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[len(bad)-1] ^= 0x01
		_, err := ReadContext(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.Contains(t, err.Error(), "checksum")
	})

	t.Run("DuplicateLabel", func(t *testing.T) {
		payload := encodePayload("dup", []string{"o", "o"}, []string{"a"}, make([]byte, 16))
		_, err := ReadContext(bytes.NewReader(frame(CompressionNone, payload)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.ErrorIs(t, err, ErrDuplicateLabel)
	})

	t.Run("RowBytes", func(t *testing.T) {
		payload := encodePayload("short", []string{"o1", "o2"}, []string{"a"}, make([]byte, 8))
		_, err := ReadContext(bytes.NewReader(frame(CompressionNone, payload)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("BitsBeyondWidth", func(t *testing.T) {
		rows := make([]byte, 8)
		rows[0] = 0b100 // attribute 2 of a 2-attribute context
		payload := encodePayload("wide", []string{"o"}, []string{"a1", "a2"}, rows)
		_, err := ReadContext(bytes.NewReader(frame(CompressionNone, payload)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("StringLength", func(t *testing.T) {
		payload := binary.AppendUvarint(nil, 1<<40)
		_, err := ReadContext(bytes.NewReader(frame(CompressionNone, payload)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("LabelCount", func(t *testing.T) {
		payload := binary.AppendUvarint([]byte{0}, 1<<40)
		_, err := ReadContext(bytes.NewReader(frame(CompressionNone, payload)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("ImplausibleRatio", func(t *testing.T) {
		hdr := header(CompressionLZ4, 0xFFFFFFF0, 4, 0)
		_, err := ReadContext(bytes.NewReader(append(hdr, 1, 2, 3, 4)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.Contains(t, err.Error(), "implausible")
	})

	t.Run("DecompressedSizeMismatch", func(t *testing.T) {
		payload := encodePayload("x", []string{"o1"}, []string{"a1"}, []byte{1, 0, 0, 0, 0, 0, 0, 0})
		stored, err := compress(bytes.Repeat(payload, 64), CompressionZSTD)
		require.NoError(t, err)
		hdr := header(CompressionZSTD, uint32(len(payload)), uint32(len(stored)), hash.CRC32C(payload))
		_, err = ReadContext(bytes.NewReader(append(hdr, stored...)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		hdr := header(CompressionType(9), 8, 4, 0)
		_, err := ReadContext(bytes.NewReader(append(hdr, 1, 2, 3, 4)))
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}

func TestReadContextBoundedAllocation(t *testing.T) {
	// A header claiming a ~4GiB payload that is not there.
	for _, hdr := range [][]byte{
		header(CompressionNone, 0xFFFFFFF0, 0, 0),
		header(CompressionZSTD, 0xFFFFFFF0, 0xFFFFFFF0, 0),
	} {
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)

		_, err := ReadContext(bytes.NewReader(hdr))

		runtime.ReadMemStats(&after)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20), "allocated %d bytes", after.TotalAlloc-before.TotalAlloc)
	}
}

func header(compression CompressionType, rawSize, storedSize, checksum uint32) []byte {
	hdr := make([]byte, snapshotHeaderSize)
	copy(hdr, snapshotMagic[:])
	hdr[4] = snapshotVersion
	hdr[5] = byte(compression)
	binary.LittleEndian.PutUint32(hdr[6:], rawSize)
	binary.LittleEndian.PutUint32(hdr[10:], storedSize)
	binary.LittleEndian.PutUint32(hdr[14:], checksum)
	return hdr
}

// frame wraps an uncompressed payload with a valid header and checksum.
func frame(compression CompressionType, payload []byte) []byte {
	hdr := header(compression, uint32(len(payload)), 0, hash.CRC32C(payload))
	return append(hdr, payload...)
}

func encodePayload(name string, objects, attributes []string, rows []byte) []byte {
	var buf bytes.Buffer
	writeString(&buf, name)
	writeLabels(&buf, objects)
	writeLabels(&buf, attributes)
	buf.Write(rows)
	return buf.Bytes()
}

func TestReadContextMetrics(t *testing.T) {
	c := exampleContext(t)
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	valid := bytes.Clone(buf.Bytes())

	mc := &BasicMetricsCollector{}
	_, err = ReadContext(&buf, WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = ReadContext(bytes.NewReader(valid[:3]), WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.ContextCount)
	assert.Equal(t, int64(1), stats.ContextErrors)
}
