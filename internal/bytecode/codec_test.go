package bytecode

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

func sampleProgram() *Program {
	return &Program{
		Funcs: []Function{
			{Name: "main", NumLocals: 1, ReturnsValue: true, Code: []Inst{
				Push(2),
				IA(OpStore, 0),
				IA(OpLoad, 0),
				Push(-9223372036854775808),
				I(OpLt),
				Jump(OpJmpFalse, 2),
				PushBool(true),
				I(OpRet),
				IA(OpCallExtern, 0),
				IA(OpLoad, 0),
				I(OpRet),
			}},
			{Name: StartFunc, Code: []Inst{IA(OpCall, 0), I(OpHlt)}},
		},
		Externs: []Extern{{Name: "print", NumParams: 1}},
		Entry:   1,
	}
}

func TestRoundTrip(t *testing.T) {
	for _, codec := range []Codec{CodecMsgpack, CodecCBOR} {
		t.Run(codec.String(), func(t *testing.T) {
			want := sampleProgram()
			data, err := Encode(want, codec)
			if err != nil {
				t.Fatal(err)
			}
			if c, ok := CodecOf(data); !ok || c != codec {
				t.Errorf("CodecOf = %v, %v", c, ok)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Funcs) != len(want.Funcs) || got.Entry != want.Entry {
				t.Fatalf("funcs=%d entry=%d", len(got.Funcs), got.Entry)
			}
			for i := range want.Funcs {
				w, g := want.Funcs[i], got.Funcs[i]
				if g.Name != w.Name || g.NumLocals != w.NumLocals || g.ReturnsValue != w.ReturnsValue {
					t.Errorf("func %d header differs: %+v", i, g)
				}
				if !slices.Equal(g.Code, w.Code) {
					t.Errorf("func %d code differs:\n got %v\nwant %v", i, g.Code, w.Code)
				}
			}
			if !slices.Equal(got.Externs, want.Externs) {
				t.Errorf("externs differ: %v", got.Externs)
			}
		})
	}
}

func TestMarshalBinaryUsesMsgpack(t *testing.T) {
	data, err := sampleProgram().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte(Magic)) {
		t.Fatalf("missing magic")
	}
	if c, _ := CodecOf(data); c != CodecMsgpack {
		t.Errorf("codec = %v", c)
	}
	var p Program
	if err := p.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if len(p.Funcs) != 2 {
		t.Errorf("funcs = %d", len(p.Funcs))
	}
}

// A Program embedded in another value is encoded through its
// BinaryMarshaler by both libraries and must not loop back into itself.
func TestProgramAsLibraryValue(t *testing.T) {
	type envelope struct {
		Name string
		Prog *Program
	}
	in := envelope{Name: "unit", Prog: sampleProgram()}

	t.Run("msgpack", func(t *testing.T) {
		data, err := msgpack.Marshal(&in)
		if err != nil {
			t.Fatal(err)
		}
		var out envelope
		if err := msgpack.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out.Prog == nil || len(out.Prog.Funcs) != 2 || out.Prog.Entry != 1 {
			t.Fatalf("decoded program = %+v", out.Prog)
		}
	})
	t.Run("cbor", func(t *testing.T) {
		data, err := cbor.Marshal(&in)
		if err != nil {
			t.Fatal(err)
		}
		var out envelope
		if err := cbor.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out.Prog == nil || !slices.Equal(out.Prog.Funcs[0].Code, in.Prog.Funcs[0].Code) {
			t.Fatalf("decoded program = %+v", out.Prog)
		}
	})
}

func TestCBORIsDeterministic(t *testing.T) {
	a, err := Encode(sampleProgram(), CodecCBOR)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(sampleProgram(), CodecCBOR)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("canonical encoding differs between runs")
	}
}

func TestDecodeRejects(t *testing.T) {
	good, err := sampleProgram().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	badVersion := slices.Clone(good)
	badVersion[len(Magic)] = 99
	badCodec := slices.Clone(good)
	badCodec[len(Magic)+1] = 7

	badJump := sampleProgram()
	badJump.Funcs[0].Code[5] = Jump(OpJmpFalse, 40)
	badJumpData, err := badJump.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte("WS"), ErrBadMagic},
		{"magic", []byte("ELF\x7f\x01\x01"), ErrBadMagic},
		{"version", badVersion, ErrVersion},
		{"codec", badCodec, ErrUnknownCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Decode(badJumpData); err == nil || !strings.Contains(err.Error(), "jump target") {
		t.Errorf("invalid jump accepted: %v", err)
	}
}

func TestParseCodec(t *testing.T) {
	for in, want := range map[string]Codec{"": CodecMsgpack, "msgpack": CodecMsgpack, "CBOR": CodecCBOR} {
		got, err := ParseCodec(in)
		if err != nil || got != want {
			t.Errorf("ParseCodec(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCodec("json"); err == nil {
		t.Errorf("json accepted")
	}
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	if err := Disassemble(&buf, sampleProgram()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"extern #0 print (params=1)",
		"func #0 main (params=0 locals=1 returns)",
		"0005  JmpFalse +2  ; -> 0008",
		"0006  PushBool true",
		"0008  CallExtern 0  ; print",
		"func #1 __start (params=0 locals=0) entry",
		"0000  Call 0  ; main",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing lacks %q:\n%s", want, out)
		}
	}
}
