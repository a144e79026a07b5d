// Package persistence implements the on-disk model snapshot format.
//
// A snapshot is a schema-validated payload inside a checked binary envelope:
//
//	magic u32 | format version u32 | codec name (u16 len + bytes) |
//	compression u8 | payload length u64 | payload | CRC32 u32
//
// all little-endian, with the CRC32 (IEEE) covering every byte before the
// checksum itself. The payload is a codec-encoded Snapshot record carrying
// its own schema version. Loads reject unknown magic, format or schema
// versions, unknown codecs or compression schemes, and checksum mismatches.
// No generic object-graph decoding is involved, so untrusted files can at
// worst fail to load.
package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/lazymode/codec"
)

const (
	// Magic identifies lazymode snapshot files (ASCII "LZMD").
	Magic = 0x4C5A4D44
	// FormatVersion is the current envelope version.
	FormatVersion uint32 = 1
	// SchemaVersion is the current Snapshot record version.
	SchemaVersion uint32 = 1

	// maxCodecNameLen bounds the header's codec name field.
	maxCodecNameLen = 64
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported format version")
	ErrInvalidSchema      = errors.New("unsupported schema version")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
)

// Compression identifies the payload compression scheme.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Snapshot is the complete serializable model state. Vectors, Inputs and
// Outputs are parallel arrays: row i of Vectors was derived from Inputs[i]
// and predicts with Outputs[i].
type Snapshot struct {
	SchemaVersion     uint32         `json:"schema_version"`
	K                 int            `json:"k"`
	MaxFeatures       int            `json:"max_features"`
	Metric            string         `json:"metric"`
	FallbackThreshold float32        `json:"fallback_threshold"`
	Vocabulary        map[string]int `json:"vocabulary"`
	IDF               []float32      `json:"idf"`
	Vectors           [][]float32    `json:"vectors"`
	Inputs            []string       `json:"inputs"`
	Outputs           []string       `json:"outputs"`
}

// Validate checks the structural invariants of a decoded snapshot.
func (s *Snapshot) Validate() error {
	if s.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: %d", ErrInvalidSchema, s.SchemaVersion)
	}
	if len(s.Vectors) != len(s.Outputs) || len(s.Vectors) != len(s.Inputs) {
		return fmt.Errorf("%w: %d vectors, %d inputs, %d outputs",
			ErrCorruptSnapshot, len(s.Vectors), len(s.Inputs), len(s.Outputs))
	}
	if len(s.Vectors) == 0 {
		return fmt.Errorf("%w: no training rows", ErrCorruptSnapshot)
	}
	if len(s.IDF) != len(s.Vocabulary) {
		return fmt.Errorf("%w: %d idf weights for %d vocabulary entries",
			ErrCorruptSnapshot, len(s.IDF), len(s.Vocabulary))
	}
	dim := len(s.Vocabulary)
	for i, row := range s.Vectors {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has dimension %d, want %d",
				ErrCorruptSnapshot, i, len(row), dim)
		}
	}
	if s.K < 1 {
		return fmt.Errorf("%w: k=%d", ErrCorruptSnapshot, s.K)
	}
	return nil
}

// Write encodes snap with c, compresses the payload with comp, and writes
// the full envelope to w.
func Write(w io.Writer, snap *Snapshot, c codec.Codec, comp Compression) error {
	if c == nil {
		c = codec.Default
	}
	name := c.Name()
	if len(name) > maxCodecNameLen {
		return fmt.Errorf("codec name too long: %q", name)
	}

	payload, err := c.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	payload, err = compress(payload, comp)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(Magic))
	binary.Write(&buf, binary.LittleEndian, FormatVersion)
	binary.Write(&buf, binary.LittleEndian, uint16(len(name)))
	buf.WriteString(name)
	buf.WriteByte(byte(comp))
	binary.Write(&buf, binary.LittleEndian, uint64(len(payload)))
	buf.Write(payload)
	binary.Write(&buf, binary.LittleEndian, crc32.ChecksumIEEE(buf.Bytes()))

	_, err = w.Write(buf.Bytes())
	return err
}

// Read parses and validates a snapshot envelope from r.
func Read(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// magic + version + name len + compression + payload len + checksum
	if len(data) < 4+4+2+1+8+4 {
		return nil, fmt.Errorf("%w: truncated file (%d bytes)", ErrCorruptSnapshot, len(data))
	}

	body, sum := data[:len(data)-4], binary.LittleEndian.Uint32(data[len(data)-4:])
	if crc32.ChecksumIEEE(body) != sum {
		return nil, ErrChecksumMismatch
	}

	br := bytes.NewReader(body)
	var magic, version uint32
	binary.Read(br, binary.LittleEndian, &magic)
	if magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}
	binary.Read(br, binary.LittleEndian, &version)
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	var nameLen uint16
	binary.Read(br, binary.LittleEndian, &nameLen)
	if int(nameLen) > maxCodecNameLen || int(nameLen) > br.Len() {
		return nil, fmt.Errorf("%w: codec name length %d", ErrCorruptSnapshot, nameLen)
	}
	name := make([]byte, nameLen)
	io.ReadFull(br, name)
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(name))
	}

	compByte, _ := br.ReadByte()
	comp := Compression(compByte)

	var payloadLen uint64
	binary.Read(br, binary.LittleEndian, &payloadLen)
	if payloadLen != uint64(br.Len()) {
		return nil, fmt.Errorf("%w: payload length %d, have %d", ErrCorruptSnapshot, payloadLen, br.Len())
	}
	payload := make([]byte, payloadLen)
	io.ReadFull(br, payload)

	payload, err = decompress(payload, comp)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func compress(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, comp)
	}
}

func decompress(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, comp)
	}
}
