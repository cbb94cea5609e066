// Package snapshot serializes inventories to a self-describing binary format.
//
// Layout:
//
//	[header: magic, version, compression, body length, checksum]
//	[body: compressed JSON document]
//
// The header records the compression algorithm by value, so a reader never
// needs out-of-band knowledge to decode a snapshot. The checksum is CRC-32
// (IEEE) over the uncompressed body: fast, standard, good at catching storage
// corruption. Not tamper detection.
//
// A snapshot stores one inventory's own segments. The loaded inventory is a
// root (its own feature system); derivation relationships and chart callbacks
// (functions) do not serialize. Chart order lists do.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/phono"
)

// Compression selects the body compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 frame compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD Compression = 2
)

const (
	// magicNumber identifies phono snapshot files (ASCII: "PHN1").
	magicNumber = 0x50484E31
	// formatVersion is the current snapshot format version (v1.0.0).
	formatVersion = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// header is the fixed-size prefix of every snapshot.
type header struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Padding     [3]byte
	BodyLen     uint32
	Checksum    uint32 // CRC-32 (IEEE) of the uncompressed body
}

// document is the JSON body. Symbols carries the insertion order; Features
// and Names are keyed by symbol.
type document struct {
	Symbols  []string                     `json:"symbols"`
	Features map[string]map[string]string `json:"features"`
	Names    map[string]string            `json:"names,omitempty"`
	Places   []string                     `json:"places,omitempty"`
	Manners  []string                     `json:"manners,omitempty"`
}

// Save writes inv to w using the given compression.
func Save(w io.Writer, inv *phono.Inventory, c Compression) error {
	doc := document{
		Symbols:  inv.Symbols(),
		Features: make(map[string]map[string]string, inv.Len()),
	}
	for seg := range inv.All() {
		doc.Features[seg.Symbol()] = seg.Features()
		if name := seg.Name(); name != "" {
			if doc.Names == nil {
				doc.Names = make(map[string]string)
			}
			doc.Names[seg.Symbol()] = name
		}
	}
	if chart := inv.Chart(); chart != nil {
		doc.Places = chart.PlaceOrder
		doc.Manners = chart.MannerOrder
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot body: %w", err)
	}
	checksum := crc32.ChecksumIEEE(body)

	compressed, err := compress(body, c)
	if err != nil {
		return err
	}

	hdr := header{
		Magic:       magicNumber,
		Version:     formatVersion,
		Compression: uint8(c),
		BodyLen:     uint32(len(compressed)),
		Checksum:    checksum,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("write snapshot body: %w", err)
	}
	return nil
}

// Load reads a snapshot and rebuilds a sealed root inventory. Options apply
// to the new inventory; a chart built from the stored order lists is attached
// unless the caller supplies one.
func Load(r io.Reader, optFns ...phono.Option) (*phono.Inventory, error) {
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if hdr.Magic != magicNumber {
		return nil, ErrInvalidMagic
	}
	if hdr.Version != formatVersion {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, hdr.Version)
	}

	compressed := make([]byte, hdr.BodyLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	body, err := decompress(compressed, Compression(hdr.Compression))
	if err != nil {
		return nil, err
	}
	if crc32.ChecksumIEEE(body) != hdr.Checksum {
		return nil, ErrChecksumMismatch
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot body: %w", err)
	}

	if len(doc.Places) > 0 || len(doc.Manners) > 0 {
		optFns = append([]phono.Option{phono.WithChart(&phono.ChartMeta{
			PlaceOrder:  doc.Places,
			MannerOrder: doc.Manners,
		})}, optFns...)
	}
	inv := phono.NewInventory(optFns...)

	for _, symbol := range doc.Symbols {
		spec, ok := doc.Features[symbol]
		if !ok {
			return nil, &phono.ErrMalformedTable{Symbol: symbol}
		}
		seg := phono.NewNamedSegment(symbol, doc.Names[symbol], phono.Features(spec))
		if err := inv.AddSegment(seg); err != nil {
			return nil, err
		}
	}

	inv.Seal()
	return inv, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil

	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out, nil

	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
