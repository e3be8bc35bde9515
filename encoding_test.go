package lyric

import "testing"

func TestDecodeToUTF8PlainASCII(t *testing.T) {
	got, err := decodeToUTF8([]byte("<tt><body/></tt>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<tt><body/></tt>" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeToUTF8StripsUTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<tt/>")...)
	got, err := decodeToUTF8(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<tt/>" {
		t.Errorf("got %q, want BOM stripped", got)
	}
}

func TestDecodeToUTF8TranscodesUTF16LE(t *testing.T) {
	// "<a/>" encoded as UTF-16LE with a leading BOM.
	raw := []byte{0xFF, 0xFE, '<', 0, 'a', 0, '/', 0, '>', 0}
	got, err := decodeToUTF8(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<a/>" {
		t.Errorf("got %q, want <a/>", got)
	}
}

func TestDecodeToUTF8DeclaredLatin1(t *testing.T) {
	// 0xE9 is "é" in both ISO-8859-1 and the declared prolog below.
	raw := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><p>caf`)
	raw = append(raw, 0xE9)
	raw = append(raw, []byte(`</p>`)...)

	got, err := decodeToUTF8(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<?xml version="1.0" encoding="ISO-8859-1"?><p>café</p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecodeToUTF8RejectsInvalidBytes(t *testing.T) {
	_, err := decodeToUTF8([]byte{0x80, 0x81, 0x82})
	if err == nil {
		t.Fatal("expected an encoding error")
	}
}
