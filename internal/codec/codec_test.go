// internal/codec/codec_test.go
package codec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/tamzrod/ascaso-link/internal/memmap"
)

// capturedPayload is the 215-byte window read from a Baby T Plus 230V,
// starting at board address 5.
const capturedPayload = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF010102020001010001" +
	"1E1E1E1E002600282D000000A2031E000F0028000A00E30450000F006400050078000002" +
	"D101000102F2032D00010101000068006A008E00680170176E00DC0096002C0170176E00" +
	"DC0096002C017017080C1001010164646464000600010000000000000000000000000000" +
	"000200000000000000000000000000000000000000000000000000000000000000000000" +
	"000000000000000000000000000000000000000000030000009E1E00009E1E00000000"

func capturedImage(t *testing.T) Image {
	t.Helper()
	data, err := hex.DecodeString(capturedPayload)
	if err != nil {
		t.Fatalf("fixture payload: %v", err)
	}
	if len(data) != memmap.WindowLength {
		t.Fatalf("fixture payload is %d bytes, want %d", len(data), memmap.WindowLength)
	}
	return Image{Base: memmap.WindowOffset, Data: data}
}

func testRegistry(t *testing.T) *memmap.Registry {
	t.Helper()
	r, err := memmap.New(memmap.Table())
	if err != nil {
		t.Fatalf("memmap.New: %v", err)
	}
	return r
}

func capturedView(t *testing.T) (*memmap.View, Image) {
	t.Helper()
	img := capturedImage(t)
	view, err := ResolveView(img, testRegistry(t))
	if err != nil {
		t.Fatalf("ResolveView: %v", err)
	}
	return view, img
}

// ---- decode ----

func TestDecode_CapturedImage(t *testing.T) {
	view, img := capturedView(t)

	want := map[string]string{
		"model":               "2",
		"coffee_temperature":  "93.0",
		"steam_temperature":   "125.1",
		"offset_temperature":  "46.5",
		"dose_S1":             "52.0",
		"dose_L2":             "180.0",
		"pre_infusion_S1":     "3.8",
		"power_state":         "on",
		"steam_state":         "on",
		"water_connection":    "tank",
		"temperature_unit":    "celsius",
		"counter_total":       "7838",
		"standby_temperature": "101.0",
	}
	for name, expect := range want {
		f, err := view.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		v, err := Decode(img, f)
		if err != nil {
			t.Fatalf("Decode(%q): %v", name, err)
		}
		if got := v.String(); got != expect {
			t.Errorf("%s = %q, want %q", name, got, expect)
		}
	}
}

func TestDecode_EnumFallback(t *testing.T) {
	view, img := capturedView(t)

	// The captured board reports language 0, which no label covers.
	f, err := view.Lookup("language")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	v, err := Decode(img, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind != KindEnum || !v.Unknown || v.Raw != 0 {
		t.Fatalf("expected unknown enum raw 0, got %+v", v)
	}
	if v.String() != "unknown(0)" {
		t.Fatalf("String() = %q, want unknown(0)", v.String())
	}
}

func TestDecodeAll_Truncation(t *testing.T) {
	view, img := capturedView(t)

	// Keep addresses [5, 105): everything from coffee_group_state (124)
	// on falls off the end.
	short := Image{Base: img.Base, Data: img.Data[:100]}
	snap := DecodeAll(short, view)

	if _, ok := snap.Values["coffee_temperature"]; !ok {
		t.Fatalf("coffee_temperature must survive the short read")
	}
	if _, ok := snap.Values["power_state"]; ok {
		t.Fatalf("power_state lies past the short read")
	}
	if len(snap.Truncated) == 0 {
		t.Fatalf("expected truncated fields")
	}
	if snap.Truncated[0] != "coffee_group_state" {
		t.Fatalf("Truncated[0] = %q, want coffee_group_state", snap.Truncated[0])
	}
	seen := map[string]bool{}
	for _, n := range snap.Truncated {
		seen[n] = true
	}
	for _, n := range []string{"power_state", "autotimer_enabled", "counter_total"} {
		if !seen[n] {
			t.Errorf("%s missing from Truncated", n)
		}
	}
}

// ---- encode ----

func TestEncode_RoundTripWritable(t *testing.T) {
	view, img := capturedView(t)

	for _, f := range view.Fields() {
		if f.Access == memmap.ReadOnly {
			continue
		}
		before, err := Decode(img, f)
		if err != nil {
			t.Fatalf("Decode(%q): %v", f.Name, err)
		}
		patch, err := Encode(f, before)
		if err != nil {
			t.Fatalf("Encode(%q): %v", f.Name, err)
		}
		if patch.Offset != f.Offset || len(patch.Bytes) != f.Length {
			t.Fatalf("%s: patch %d+%d, want %d+%d",
				f.Name, patch.Offset, len(patch.Bytes), f.Offset, f.Length)
		}

		scratch := Image{Base: img.Base, Data: bytes.Clone(img.Data)}
		if err := Apply(scratch, patch); err != nil {
			t.Fatalf("Apply(%q): %v", f.Name, err)
		}
		after, err := Decode(scratch, f)
		if err != nil {
			t.Fatalf("re-Decode(%q): %v", f.Name, err)
		}
		if after.Raw != before.Raw || after.String() != before.String() {
			t.Errorf("%s: round trip %q -> %q", f.Name, before.String(), after.String())
		}
	}
}

func TestEncode_ReadOnlyRejected(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("counter_total")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	_, err = Encode(f, Int(0, 1))
	var ro *ReadOnlyError
	if !errors.As(err, &ro) {
		t.Fatalf("expected *ReadOnlyError, got %T: %v", err, err)
	}
}

func TestEncode_LimitEnforced(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("coffee_temperature")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	// 115.0 C is past the published 110.0 ceiling.
	_, err = Encode(f, Int(1150, 10))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RangeError, got %T: %v", err, err)
	}
	if re.Min != 800 || re.Max != 1100 {
		t.Fatalf("range = [%d,%d], want [800,1100]", re.Min, re.Max)
	}

	if _, err := Encode(f, Int(1100, 10)); err != nil {
		t.Fatalf("110.0 sits on the ceiling and must pass: %v", err)
	}
}

func TestEncode_WidthEnforced(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("autotimer_h_on")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	_, err = Encode(f, Int(300, 1))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RangeError for u8 overflow, got %T: %v", err, err)
	}
	if re.Max != 255 {
		t.Fatalf("u8 max = %d, want 255", re.Max)
	}
}

func TestEncode_EnumLabelAndFallback(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("power_state")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	patch, err := Encode(f, EnumLabel("off"))
	if err != nil {
		t.Fatalf("Encode(off): %v", err)
	}
	if patch.Bytes[0] != 4 {
		t.Fatalf("off encodes as %d, want 4", patch.Bytes[0])
	}

	// A previously decoded unknown state writes back verbatim.
	patch, err = Encode(f, Value{Kind: KindEnum, Raw: 5, Unknown: true})
	if err != nil {
		t.Fatalf("Encode(raw 5): %v", err)
	}
	if patch.Bytes[0] != 5 {
		t.Fatalf("raw fallback encodes as %d, want 5", patch.Bytes[0])
	}

	_, err = Encode(f, EnumLabel("warming"))
	var ul *UnknownLabelError
	if !errors.As(err, &ul) {
		t.Fatalf("expected *UnknownLabelError, got %T: %v", err, err)
	}
}

func TestEncode_KindMismatch(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("coffee_temperature")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	_, err = Encode(f, Bool(true))
	var ke *KindError
	if !errors.As(err, &ke) {
		t.Fatalf("expected *KindError, got %T: %v", err, err)
	}
}

// ---- input parsing ----

func TestParseInput(t *testing.T) {
	view, _ := capturedView(t)

	steam, _ := view.Lookup("steam_state")
	for _, s := range []string{"on", "true", "1", "enabled", "yes"} {
		v, err := ParseInput(steam, s)
		if err != nil || !v.Bool {
			t.Errorf("ParseInput(steam_state, %q) = %+v, %v", s, v, err)
		}
	}
	if _, err := ParseInput(steam, "maybe"); err == nil {
		t.Fatalf("bogus flag input must be rejected")
	}

	power, _ := view.Lookup("power_state")
	v, err := ParseInput(power, "on")
	if err != nil || v.Kind != KindEnum || v.Label != "on" {
		t.Fatalf("ParseInput(power_state, on) = %+v, %v", v, err)
	}
	if _, err := ParseInput(power, "6"); err == nil {
		t.Fatalf("enum input must be a label, not a raw number")
	}

	coffee, _ := view.Lookup("coffee_temperature")
	v, err = ParseInput(coffee, "94.5")
	if err != nil || v.Raw != 945 {
		t.Fatalf("ParseInput(coffee_temperature, 94.5) = %+v, %v", v, err)
	}
}

func TestParseInput_HugeDecimalRejected(t *testing.T) {
	view, _ := capturedView(t)
	f, err := view.Lookup("pre_infusion_S1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	// Scaling this input overflows 64 bits; it must never reach Encode
	// as a wrapped-around small value.
	if _, err := ParseInput(f, "1844674407370955162"); err == nil {
		t.Fatalf("oversized input must be rejected")
	}
}

func TestParseLimit(t *testing.T) {
	view, _ := capturedView(t)
	f, _ := view.Lookup("coffee_temperature")

	lim, err := ParseLimit(f, "85.0", "105.0")
	if err != nil {
		t.Fatalf("ParseLimit: %v", err)
	}
	if lim.Min != 850 || lim.Max != 1050 {
		t.Fatalf("limit = [%d,%d], want [850,1050]", lim.Min, lim.Max)
	}

	if _, err := ParseLimit(f, "105.0", "85.0"); err == nil {
		t.Fatalf("inverted limit must be rejected")
	}
}

// ---- raw access ----

func TestReadRaw(t *testing.T) {
	_, img := capturedView(t)

	raw, err := ReadRaw(img, 53, 2)
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if raw != 930 {
		t.Fatalf("ReadRaw(53,2) = %d, want 930", raw)
	}

	_, err = ReadRaw(img, 3, 1)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError below base, got %T: %v", err, err)
	}
	if _, err := ReadRaw(img, img.End()-1, 2); !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError past end, got %v", err)
	}
}

func TestEncodeRaw(t *testing.T) {
	p, err := EncodeRaw(86, 1, 1)
	if err != nil {
		t.Fatalf("EncodeRaw: %v", err)
	}
	if p.Offset != 86 || !bytes.Equal(p.Bytes, []byte{1}) {
		t.Fatalf("patch = %+v", p)
	}

	if _, err := EncodeRaw(86, 1, 3); err == nil {
		t.Fatalf("length 3 must be rejected")
	}
	if _, err := EncodeRaw(86, 300, 1); err == nil {
		t.Fatalf("300 does not fit one byte")
	}
}

func TestApply_OutOfBounds(t *testing.T) {
	_, img := capturedView(t)
	err := Apply(img, Patch{Offset: img.End() - 1, Bytes: []byte{1, 2}})
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError, got %T: %v", err, err)
	}
}

// ---- model resolution ----

func TestResolveView_CapturedImage(t *testing.T) {
	view, _ := capturedView(t)
	if view.Model() != 2 {
		t.Fatalf("model = %d, want 2", view.Model())
	}
	if _, err := view.Lookup("standby_time"); err != nil {
		t.Fatalf("standby_time belongs to model 2: %v", err)
	}
	if _, err := view.Lookup("dose_S1_gr2"); err == nil {
		t.Fatalf("group-2 fields do not belong to model 2")
	}
}

func TestResolveView_GroupCountFromImage(t *testing.T) {
	img := capturedImage(t)

	// Rebuild the window as a two-group Barista T: extended length,
	// model id 5, board-reported group count 2.
	data := make([]byte, memmap.ExtendedWindowLength)
	copy(data, img.Data)
	ext := Image{Base: img.Base, Data: data}
	if err := Apply(ext, Patch{Offset: 76, Bytes: []byte{5}}); err != nil {
		t.Fatalf("Apply model: %v", err)
	}
	if err := Apply(ext, Patch{Offset: 88, Bytes: []byte{2}}); err != nil {
		t.Fatalf("Apply groups: %v", err)
	}
	if err := Apply(ext, Patch{Offset: 237, Bytes: putLE(935, 2)}); err != nil {
		t.Fatalf("Apply relocated temperature: %v", err)
	}

	view, err := ResolveView(ext, testRegistry(t))
	if err != nil {
		t.Fatalf("ResolveView: %v", err)
	}
	if view.Model() != 5 {
		t.Fatalf("model = %d, want 5", view.Model())
	}

	f, err := view.Lookup("coffee_temperature")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if f.Offset != 237 {
		t.Fatalf("relocated offset = %d, want 237", f.Offset)
	}
	v, err := Decode(ext, f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.String() != "93.5" {
		t.Fatalf("relocated temperature = %q, want 93.5", v.String())
	}

	if _, err := view.Lookup("dose_S1_gr2"); err != nil {
		t.Fatalf("two groups reported, dose_S1_gr2 must resolve: %v", err)
	}
	if _, err := view.Lookup("dose_S1_gr3"); err == nil {
		t.Fatalf("third group not present on this board")
	}
}

func TestResolveView_ModelOutOfRange(t *testing.T) {
	img := capturedImage(t)
	if err := Apply(img, Patch{Offset: 76, Bytes: []byte{9}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := ResolveView(img, testRegistry(t)); err == nil {
		t.Fatalf("model 9 must be rejected")
	}
}
