package ldif

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustEntry(t *testing.T, pairs ...Attribute) *Entry {
	t.Helper()
	e := &Entry{}
	for _, a := range pairs {
		if err := e.AppendAttribute(a); err != nil {
			t.Fatalf("append %q: %v", a.Key, err)
		}
	}
	return e
}

func TestEncodeBasic(t *testing.T) {
	entry := mustEntry(t,
		Attribute{Key: "dn", Value: Text("cn=a")},
		Attribute{Key: "mail", Value: Text("x@example.com")},
	)
	var buf bytes.Buffer
	n, err := Encode(&buf, []*Entry{entry})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("count %d", n)
	}
	want := "version: 1\n\ndn: cn=a\nmail: x@example.com\n\n"
	if buf.String() != want {
		t.Fatalf("output\nwant: %q\ngot:  %q", want, buf.String())
	}
}

func TestEncodeVersionHeader(t *testing.T) {
	entry := mustEntry(t, Attribute{Key: "dn", Value: Text("cn=a")})

	var buf bytes.Buffer
	if _, err := Encode(&buf, []*Entry{entry}, WithVersion(0)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "version: 0\n\n") {
		t.Fatalf("output %q", buf.String())
	}

	buf.Reset()
	if _, err := Encode(&buf, []*Entry{entry}, WithoutVersionHeader()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "version") {
		t.Fatalf("version header not suppressed: %q", buf.String())
	}
}

func TestEncodeConfigErrors(t *testing.T) {
	entry := mustEntry(t, Attribute{Key: "dn", Value: Text("cn=a")})
	cases := []struct {
		name string
		opt  WriteOption
		want error
	}{
		{"width 1", WithLineWidth(1), ErrLineWidth},
		{"negative width", WithLineWidth(-3), ErrLineWidth},
		{"negative version", WithVersion(-1), ErrVersion},
		{"unknown compression", WithCompression(Compression(9)), ErrCompression},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := Encode(&buf, []*Entry{entry}, tc.opt)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if n != 0 || buf.Len() != 0 {
				t.Fatal("configuration errors must precede any output")
			}
		})
	}
}

func TestEncodeMarkers(t *testing.T) {
	entry := mustEntry(t,
		Attribute{Key: "dn", Value: Text("cn=a")},
		Attribute{Key: "jpegPhoto", Value: Binary("hello")},
		Attribute{Key: "ref", Value: ParseURL("http://example.com/x")},
		Attribute{Key: "cn", Options: []string{"lang-en"}, Value: Text("Babs")},
	)
	var buf bytes.Buffer
	if _, err := Encode(&buf, []*Entry{entry}, WithoutVersionHeader(), WithLineWidth(0)); err != nil {
		t.Fatal(err)
	}
	want := "dn: cn=a\njpegPhoto:: aGVsbG8=\nref:< http://example.com/x\ncn;lang-en: Babs\n\n"
	if buf.String() != want {
		t.Fatalf("output\nwant: %q\ngot:  %q", want, buf.String())
	}
}

func TestEncodeUnsafeTextFallsBackToBase64(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"leading space", " x"},
		{"leading colon", ":x"},
		{"leading angle", "<x"},
		{"embedded newline", "a\nb"},
		{"embedded cr", "a\rb"},
		{"nul", "a\x00b"},
		{"non-ascii", "héllo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := mustEntry(t,
				Attribute{Key: "dn", Value: Text("cn=a")},
				Attribute{Key: "description", Value: Text(tc.text)},
			)
			var warnings []Warning
			var buf bytes.Buffer
			_, err := Encode(&buf, []*Entry{entry}, WithoutVersionHeader(),
				WithWarningHandlerOnWrite(func(w Warning) { warnings = append(warnings, w) }))
			if err != nil {
				t.Fatal(err)
			}
			if len(warnings) != 1 || warnings[0].Code != WarnUnsafeText {
				t.Fatalf("warnings %#v", warnings)
			}
			if !strings.Contains(buf.String(), "description:: ") {
				t.Fatalf("expected base64 fallback, got %q", buf.String())
			}
			// The fallback decodes back to the identical original bytes.
			back, err := Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			v, _ := back[0].GetFirst("description", false)
			if !reflect.DeepEqual(v, Binary(tc.text)) {
				t.Fatalf("round trip %#v", v)
			}
		})
	}
}

func TestEncodeSafeTextStaysPlain(t *testing.T) {
	cases := []string{
		"",
		"plain",
		"inner: colon",
		"inner < angle",
		"trailing space ",
		"tab\tinside",
	}
	for _, text := range cases {
		entry := mustEntry(t,
			Attribute{Key: "dn", Value: Text("cn=a")},
			Attribute{Key: "description", Value: Text(text)},
		)
		var warnings []Warning
		var buf bytes.Buffer
		_, err := Encode(&buf, []*Entry{entry}, WithoutVersionHeader(), WithLineWidth(0),
			WithWarningHandlerOnWrite(func(w Warning) { warnings = append(warnings, w) }))
		if err != nil {
			t.Fatal(err)
		}
		if len(warnings) != 0 {
			t.Fatalf("%q: unexpected warnings %#v", text, warnings)
		}
		if !strings.Contains(buf.String(), "description: "+text+"\n") {
			t.Fatalf("%q: output %q", text, buf.String())
		}
	}
}

func TestEncodeFoldedBlock(t *testing.T) {
	entry := mustEntry(t, Attribute{Key: "a", Value: Text("hello world")})
	var buf bytes.Buffer
	if _, err := Encode(&buf, []*Entry{entry}, WithoutVersionHeader(), WithLineWidth(5)); err != nil {
		t.Fatal(err)
	}
	phys := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// Last physical line is the blank entry separator.
	if phys[len(phys)-1] != "" {
		t.Fatalf("missing blank separator: %q", phys)
	}
	for i, p := range phys[1 : len(phys)-1] {
		if !strings.HasPrefix(p, " ") || strings.HasPrefix(p, "  ") {
			t.Fatalf("continuation %d %q must start with exactly one space", i, p)
		}
		if len(p) > 5 {
			t.Fatalf("continuation %q exceeds width", p)
		}
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := back[0].GetFirst("a", false)
	if v != Text("hello world") {
		t.Fatalf("round trip %#v", v)
	}
}

func TestEncodeRejectsEmptyEntry(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, []*Entry{{}}, WithoutVersionHeader())
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestEncoderCount(t *testing.T) {
	a := mustEntry(t, Attribute{Key: "dn", Value: Text("cn=a")})
	b := mustEntry(t, Attribute{Key: "dn", Value: Text("cn=b")})
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []*Entry{a, b} {
		if err := enc.WriteEntry(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if enc.Count() != 2 {
		t.Fatalf("count %d", enc.Count())
	}
}
