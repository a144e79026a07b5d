package persistence

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymode/codec"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion:     SchemaVersion,
		K:                 3,
		MaxFeatures:       500,
		Metric:            "cosine",
		FallbackThreshold: 0.1,
		Vocabulary:        map[string]int{"login": 0, "crash": 1},
		IDF:               []float32{1.2, 1.4},
		Vectors:           [][]float32{{0.6, 0.8}, {1, 0}},
		Inputs:            []string{"login crash", "login"},
		Outputs:           []string{"## A", "## B"},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, testSnapshot(), codec.Default, comp))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, testSnapshot(), got)
		})
	}
}

func TestRoundTrip_CodecByName(t *testing.T) {
	// A file written with the stdlib codec must load even though the
	// default codec differs; the header records the codec name.
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot(), codec.JSON{}, CompressionNone))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)
}

func TestRead_TamperedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot(), codec.Default, CompressionZstd))

	data := buf.Bytes()
	data[len(data)/2] ^= 0xFF

	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestRead_Truncated(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x4C, 0x5A}))
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

// reseal recomputes the trailing checksum after a header patch.
func reseal(data []byte) []byte {
	body := data[:len(data)-4]
	binary.LittleEndian.PutUint32(data[len(data)-4:], crc32.ChecksumIEEE(body))
	return data
}

func TestRead_InvalidMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot(), codec.Default, CompressionNone))

	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[0:4], 0xDEADBEEF)

	_, err := Read(bytes.NewReader(reseal(data)))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestRead_UnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot(), codec.Default, CompressionNone))

	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[4:8], 99)

	_, err := Read(bytes.NewReader(reseal(data)))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestWrite_UnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, testSnapshot(), codec.Default, Compression(42))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestValidate(t *testing.T) {
	t.Run("FutureSchema", func(t *testing.T) {
		snap := testSnapshot()
		snap.SchemaVersion = SchemaVersion + 1
		assert.ErrorIs(t, snap.Validate(), ErrInvalidSchema)
	})

	t.Run("ParallelArrayMismatch", func(t *testing.T) {
		snap := testSnapshot()
		snap.Outputs = snap.Outputs[:1]
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("RowDimensionMismatch", func(t *testing.T) {
		snap := testSnapshot()
		snap.Vectors[1] = []float32{1}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("NoRows", func(t *testing.T) {
		snap := testSnapshot()
		snap.Vectors = nil
		snap.Inputs = nil
		snap.Outputs = nil
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("InvalidK", func(t *testing.T) {
		snap := testSnapshot()
		snap.K = 0
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})
}
