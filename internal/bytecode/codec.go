package bytecode

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Magic starts every artifact.
const Magic = "WSKC"

// FormatVersion is bumped whenever the encoded Program layout changes.
const FormatVersion byte = 1

const headerLen = len(Magic) + 2

// Codec selects the body encoding of an artifact.
type Codec byte

const (
	CodecMsgpack Codec = 1
	CodecCBOR    Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecMsgpack:
		return "msgpack"
	case CodecCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("codec(%d)", byte(c))
	}
}

// ParseCodec maps a configuration name to a Codec. The empty string selects
// msgpack.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "msgpack":
		return CodecMsgpack, nil
	case "cbor":
		return CodecCBOR, nil
	default:
		return 0, fmt.Errorf("unknown codec %q (expected msgpack or cbor)", name)
	}
}

var (
	ErrBadMagic    = errors.New("bytecode: not a whisk artifact")
	ErrVersion     = errors.New("bytecode: unsupported format version")
	ErrUnknownCode = errors.New("bytecode: unknown codec")
)

var cborEncMode cbor.EncMode

// wireProgram is Program without its Binary(Un)Marshaler methods, so the
// codecs walk the fields instead of calling back into Encode.
type wireProgram Program

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalBinary encodes p with the default codec.
func (p *Program) MarshalBinary() ([]byte, error) {
	return Encode(p, CodecMsgpack)
}

// UnmarshalBinary decodes an artifact produced by MarshalBinary or Encode.
func (p *Program) UnmarshalBinary(data []byte) error {
	out, err := Decode(data)
	if err != nil {
		return err
	}
	*p = *out
	return nil
}

// Encode writes the artifact header followed by p encoded with codec.
func Encode(p *Program, codec Codec) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(FormatVersion)
	buf.WriteByte(byte(codec))

	switch codec {
	case CodecMsgpack:
		enc := msgpack.NewEncoder(&buf)
		if err := enc.Encode((*wireProgram)(p)); err != nil {
			return nil, fmt.Errorf("bytecode: msgpack encode: %w", err)
		}
	case CodecCBOR:
		body, err := cborEncMode.Marshal((*wireProgram)(p))
		if err != nil {
			return nil, fmt.Errorf("bytecode: cbor encode: %w", err)
		}
		buf.Write(body)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownCode, byte(codec))
	}
	return buf.Bytes(), nil
}

// Decode parses an artifact and validates the program it contains.
func Decode(data []byte) (*Program, error) {
	if len(data) < headerLen || string(data[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}
	if v := data[len(Magic)]; v != FormatVersion {
		return nil, fmt.Errorf("%w %d (want %d)", ErrVersion, v, FormatVersion)
	}
	body := data[headerLen:]

	var p Program
	switch codec := Codec(data[len(Magic)+1]); codec {
	case CodecMsgpack:
		if err := msgpack.Unmarshal(body, (*wireProgram)(&p)); err != nil {
			return nil, fmt.Errorf("bytecode: msgpack decode: %w", err)
		}
	case CodecCBOR:
		if err := cbor.Unmarshal(body, (*wireProgram)(&p)); err != nil {
			return nil, fmt.Errorf("bytecode: cbor decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownCode, byte(codec))
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("bytecode: invalid program: %w", err)
	}
	return &p, nil
}

// CodecOf reports the codec byte of an artifact header.
func CodecOf(data []byte) (Codec, bool) {
	if len(data) < headerLen || string(data[:len(Magic)]) != Magic {
		return 0, false
	}
	return Codec(data[len(Magic)+1]), true
}
