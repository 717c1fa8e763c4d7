package server

import (
	"testing"

	"github.com/weft-ui/weft/pkg/engine"
)

func TestFrameDecode(t *testing.T) {
	f, err := DecodeFrame([]byte(`{"type":"input","name":"birthday.value","value":"2020-06-15"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Type != FrameInput {
		t.Errorf("type = %q, want %q", f.Type, FrameInput)
	}
	if string(f.Name) != "birthday.value" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Value != "2020-06-15" {
		t.Errorf("value = %q", f.Value)
	}
}

func TestFrameDecodeMissingType(t *testing.T) {
	if _, err := DecodeFrame([]byte(`{"name":"a.b"}`)); err == nil {
		t.Fatal("expected error for frame without type")
	}
}

func TestFrameDecodeBadJSON(t *testing.T) {
	if _, err := DecodeFrame([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	in := &Frame{Type: FrameInput, Name: "form.field", Value: "x"}
	data, err := EncodeFrame(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Type != in.Type || out.Name != in.Name || out.Value != in.Value {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestPatchFrame(t *testing.T) {
	f := patchFrame([]engine.Patch{
		{Name: "a.out", Value: "1"},
		{Name: "b.out", Value: "2"},
	})
	if f.Type != FramePatch {
		t.Errorf("type = %q, want %q", f.Type, FramePatch)
	}
	if len(f.Patches) != 2 {
		t.Fatalf("patches = %d, want 2", len(f.Patches))
	}
	if f.Patches[0].Name != "a.out" || f.Patches[0].Value != "1" {
		t.Errorf("patch[0] = %+v", f.Patches[0])
	}
}
