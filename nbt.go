package mcpng

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// TagType identifies the kind of an NBT tag. Every tag kind from End
// through IntArray is parsed structurally (so later siblings remain
// reachable), but only Short and ByteArray payloads are kept; any other
// tag type byte makes parsing fail.
type TagType byte

const (
	tagEnd TagType = iota
	tagByte
	tagShort
	tagInt
	tagLong
	tagFloat
	tagDouble
	tagByteArray
	tagString
	tagList
	tagCompound
	tagIntArray
)

// Token is an opaque reference to a decoded tag, valid only for the
// Decoder that produced it. Token 0 is the root compound; noToken (-1) is
// the "not found" sentinel.
type Token int

const noToken Token = -1

type nbtTag struct {
	typ     TagType
	name    string
	parent  Token
	short   int16
	data    []byte // for ByteArray
	listTyp TagType
	childOf Token // not set by the parser; FindChild matches on parent
}

// Decoder owns a read-only, parsed view over an inflated NBT byte buffer.
// Each ByteArray payload is copied out of that buffer into its own slice.
type Decoder struct {
	valid bool
	tags  []nbtTag
}

// IsValid reports whether the buffer was successfully parsed as NBT.
func (d *Decoder) IsValid() bool {
	return d != nil && d.valid
}

// DecodeNBT gzip-inflates r and parses the result as an NBT tree, returning
// a Decoder whose root compound is token 0. On any truncation, unknown tag,
// or structural error, the returned Decoder has IsValid() == false.
func DecodeNBT(r io.Reader) (*Decoder, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return &Decoder{}, fmt.Errorf("mcpng: gzip: %w", err)
	}
	defer gz.Close()
	raw, err := io.ReadAll(gz)
	if err != nil {
		return &Decoder{}, fmt.Errorf("mcpng: gzip: %w", err)
	}
	return ParseNBT(raw)
}

// ParseNBT parses an already-inflated NBT byte buffer.
func ParseNBT(raw []byte) (*Decoder, error) {
	d := &Decoder{}
	br := bytes.NewReader(raw)

	// Root tag: a single unnamed TAG_Compound.
	typ, err := readByte(br)
	if err != nil {
		return d, fmt.Errorf("mcpng: nbt: truncated root tag: %w", err)
	}
	if TagType(typ) != tagCompound {
		return d, fmt.Errorf("mcpng: nbt: root tag is not a compound (got %d)", typ)
	}
	if _, err := readNBTString(br); err != nil {
		return d, fmt.Errorf("mcpng: nbt: truncated root name: %w", err)
	}

	root := d.addTag(nbtTag{typ: tagCompound, name: "", parent: noToken})
	if err := d.parseCompoundBody(br, root); err != nil {
		return d, err
	}
	d.valid = true
	return d, nil
}

func (d *Decoder) addTag(t nbtTag) Token {
	d.tags = append(d.tags, t)
	return Token(len(d.tags) - 1)
}

// parseCompoundBody reads named tags until TAG_End, registering each as a
// child of parent.
func (d *Decoder) parseCompoundBody(br *bytes.Reader, parent Token) error {
	for {
		typByte, err := readByte(br)
		if err != nil {
			return fmt.Errorf("mcpng: nbt: truncated compound: %w", err)
		}
		typ := TagType(typByte)
		if typ == tagEnd {
			return nil
		}
		name, err := readNBTString(br)
		if err != nil {
			return fmt.Errorf("mcpng: nbt: truncated tag name: %w", err)
		}
		tok := d.addTag(nbtTag{typ: typ, name: name, parent: parent})
		if err := d.parseTagPayload(br, typ, tok); err != nil {
			return err
		}
	}
}

func (d *Decoder) parseTagPayload(br *bytes.Reader, typ TagType, tok Token) error {
	switch typ {
	case tagByte:
		if _, err := readByte(br); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated byte: %w", err)
		}
	case tagShort:
		v, err := readInt16(br)
		if err != nil {
			return fmt.Errorf("mcpng: nbt: truncated short: %w", err)
		}
		d.tags[tok].short = v
	case tagInt:
		if _, err := readInt32(br); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated int: %w", err)
		}
	case tagLong:
		if err := skipN(br, 8); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated long: %w", err)
		}
	case tagFloat:
		if err := skipN(br, 4); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated float: %w", err)
		}
	case tagDouble:
		if err := skipN(br, 8); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated double: %w", err)
		}
	case tagByteArray:
		n, err := readInt32(br)
		if err != nil || n < 0 {
			return fmt.Errorf("mcpng: nbt: truncated byte array length: %w", err)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(br, buf); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated byte array payload: %w", err)
		}
		d.tags[tok].data = buf
	case tagString:
		if _, err := readNBTString(br); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated string: %w", err)
		}
	case tagList:
		elemTypByte, err := readByte(br)
		if err != nil {
			return fmt.Errorf("mcpng: nbt: truncated list element type: %w", err)
		}
		elemTyp := TagType(elemTypByte)
		d.tags[tok].listTyp = elemTyp
		count, err := readInt32(br)
		if err != nil || count < 0 {
			return fmt.Errorf("mcpng: nbt: truncated list length: %w", err)
		}
		for i := int32(0); i < count; i++ {
			elemTok := d.addTag(nbtTag{typ: elemTyp, parent: tok})
			if err := d.parseTagPayload(br, elemTyp, elemTok); err != nil {
				return err
			}
		}
	case tagCompound:
		if err := d.parseCompoundBody(br, tok); err != nil {
			return err
		}
	case tagIntArray:
		n, err := readInt32(br)
		if err != nil || n < 0 {
			return fmt.Errorf("mcpng: nbt: truncated int array length: %w", err)
		}
		if err := skipN(br, int64(n)*4); err != nil {
			return fmt.Errorf("mcpng: nbt: truncated int array payload: %w", err)
		}
	default:
		return fmt.Errorf("mcpng: nbt: unknown tag type %d", typ)
	}
	return nil
}

// FindChild returns the token of the direct child of parent named name, or
// the not-found sentinel if no such child exists.
func (d *Decoder) FindChild(parent Token, name string) Token {
	for i, t := range d.tags {
		if t.parent == parent && t.name == name {
			return Token(i)
		}
	}
	return noToken
}

// Root returns the token for the NBT tree's root compound.
func (d *Decoder) Root() Token {
	if len(d.tags) == 0 {
		return noToken
	}
	return 0
}

// Valid reports whether tok refers to an existing tag (i.e. is not the
// not-found sentinel).
func (d *Decoder) Valid(tok Token) bool {
	return tok >= 0 && int(tok) < len(d.tags)
}

// TagType reports the kind of the tag referenced by tok.
func (d *Decoder) TagType(tok Token) TagType {
	if !d.Valid(tok) {
		return tagEnd
	}
	return d.tags[tok].typ
}

// GetShort returns the int16 payload of a TAG_Short.
func (d *Decoder) GetShort(tok Token) int16 {
	if !d.Valid(tok) {
		return 0
	}
	return d.tags[tok].short
}

// GetData returns the raw payload of a TAG_Byte_Array. The returned slice
// aliases the Decoder's internal buffer and must not be retained past the
// Decoder's lifetime.
func (d *Decoder) GetData(tok Token) []byte {
	if !d.Valid(tok) {
		return nil
	}
	return d.tags[tok].data
}

func readByte(r *bytes.Reader) (byte, error) {
	return r.ReadByte()
}

func readInt16(r *bytes.Reader) (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func readInt32(r *bytes.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func readNBTString(r *bytes.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func skipN(r *bytes.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

// blockImageFromNBT builds a BlockImage from a decoded schematic's Height,
// Length, Width, Blocks and Data tags. All five tags are required;
// Blocks and Data must each carry exactly sx*sy*sz bytes.
func blockImageFromNBT(dec *Decoder) (*BlockImage, error) {
	root := dec.Root()

	heightTok := dec.FindChild(root, "Height")
	lengthTok := dec.FindChild(root, "Length")
	widthTok := dec.FindChild(root, "Width")
	blocksTok := dec.FindChild(root, "Blocks")
	dataTok := dec.FindChild(root, "Data")

	if !dec.Valid(heightTok) || !dec.Valid(lengthTok) || !dec.Valid(widthTok) ||
		!dec.Valid(blocksTok) || !dec.Valid(dataTok) {
		return nil, fmt.Errorf("mcpng: nbt: schematic is missing a required tag")
	}

	sy := int(dec.GetShort(heightTok))
	sz := int(dec.GetShort(lengthTok))
	sx := int(dec.GetShort(widthTok))
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, fmt.Errorf("mcpng: nbt: schematic has non-positive extent (%d,%d,%d)", sx, sy, sz)
	}

	blocks := dec.GetData(blocksTok)
	data := dec.GetData(dataTok)
	want := sx * sy * sz
	if len(blocks) != want || len(data) != want {
		return nil, fmt.Errorf("mcpng: nbt: Blocks/Data length mismatch: want %d, got %d/%d", want, len(blocks), len(data))
	}

	img := NewBlockImage(sx, sy, sz)
	for y := 0; y < sy; y++ {
		for z := 0; z < sz; z++ {
			for x := 0; x < sx; x++ {
				i := x + z*sx + y*(sx*sz)
				img.Set(x, y, z, blocks[i], data[i])
			}
		}
	}
	return img, nil
}
