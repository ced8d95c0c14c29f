package binlog

import "testing"

func TestArgKindTagStability(t *testing.T) {
	cases := []struct {
		kind ArgKind
		tag  uint8
	}{
		{KindBool, 0}, {KindChar, 1}, {KindU8, 2}, {KindU16, 3},
		{KindU32, 4}, {KindU64, 5}, {KindI8, 6}, {KindI16, 7},
		{KindI32, 8}, {KindI64, 9}, {KindF32, 10}, {KindF64, 11},
		{KindString, 12},
	}
	for _, c := range cases {
		if got := c.kind.Tag(); got != c.tag {
			t.Errorf("%s.Tag() = %d, want %d", c.kind, got, c.tag)
		}
	}
}

func TestKindFromTagRoundTrip(t *testing.T) {
	for tag := uint8(0); tag < uint8(numKinds); tag++ {
		kind, err := KindFromTag(tag)
		if err != nil {
			t.Fatalf("KindFromTag(%d): %v", tag, err)
		}
		if kind.Tag() != tag {
			t.Errorf("round trip broke at tag %d", tag)
		}
	}
}

func TestKindFromTagUnknown(t *testing.T) {
	_, err := KindFromTag(uint8(numKinds))
	if err == nil {
		t.Fatal("expected error for out-of-range tag")
	}
	if !IsFormatError(err, ErrCodeUnknownTag) {
		t.Fatalf("expected ErrCodeUnknownTag, got %v", err)
	}
}

func TestFixedWidth(t *testing.T) {
	cases := []struct {
		kind  ArgKind
		width uint16
		ok    bool
	}{
		{KindBool, 1, true}, {KindChar, 1, true}, {KindU8, 1, true}, {KindI8, 1, true},
		{KindU16, 2, true}, {KindI16, 2, true},
		{KindU32, 4, true}, {KindI32, 4, true}, {KindF32, 4, true},
		{KindU64, 8, true}, {KindI64, 8, true}, {KindF64, 8, true},
		{KindString, 0, false},
	}
	for _, c := range cases {
		w, ok := c.kind.FixedWidth()
		if w != c.width || ok != c.ok {
			t.Errorf("%s.FixedWidth() = (%d, %v), want (%d, %v)", c.kind, w, ok, c.width, c.ok)
		}
	}
}

func TestIsStringIsNumeric(t *testing.T) {
	if !KindString.IsString() {
		t.Error("KindString.IsString() should be true")
	}
	if KindString.IsNumeric() {
		t.Error("KindString.IsNumeric() should be false")
	}
	if !KindU32.IsNumeric() {
		t.Error("KindU32.IsNumeric() should be true")
	}
	if KindU32.IsString() {
		t.Error("KindU32.IsString() should be false")
	}
}
