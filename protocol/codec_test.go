package protocol

import "testing"

func TestEncodeDecodeRoundtrip(t *testing.T) {
	b, err := Encode(MsgChat, Chat{Msg: "hello"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgChat {
		t.Fatalf("envelope type = %q, want %q", env.T, MsgChat)
	}
	chat, err := DecodePayload[Chat](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if chat.Msg != "hello" {
		t.Fatalf("msg = %q, want hello", chat.Msg)
	}
}

func TestEncodeRejectsEmptyType(t *testing.T) {
	if _, err := Encode("", Chat{}); err == nil {
		t.Fatalf("expected error for empty envelope type")
	}
}

func TestEncodeRejectsNilPayload(t *testing.T) {
	if _, err := Encode(MsgChat, nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
}

func TestDecodeEnvelopeEmpty(t *testing.T) {
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	env := Envelope{T: MsgCapture}
	if _, err := DecodePayload[Capture](env); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestDecodePayloadTypedFields(t *testing.T) {
	b, err := Encode(MsgPlace, PlaceUnit{TileIndex: 42, UnitType: "orbital_wall"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	p, err := DecodePayload[PlaceUnit](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.TileIndex != 42 || p.UnitType != "orbital_wall" {
		t.Fatalf("payload = %+v", p)
	}
}
