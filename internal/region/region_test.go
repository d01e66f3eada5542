package region

import (
	"errors"
	"strings"
	"testing"
)

func TestLocate_Simple(t *testing.T) {
	text := "prefix\n### Region: greet\nhello\n### EndRegion\nsuffix\n"

	r, ok, err := Locate(text, 0)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if !ok {
		t.Fatal("Expected a region, got none")
	}

	if r.Name != "greet" {
		t.Errorf("Expected name 'greet', got %q", r.Name)
	}
	if r.Start != strings.Index(text, StartMarker) {
		t.Errorf("Start = %d, want %d", r.Start, strings.Index(text, StartMarker))
	}
	if got := r.Body(text); got != "hello\n" {
		t.Errorf("Body = %q, want %q", got, "hello\n")
	}
	if text[r.End:r.Next] != EndMarker {
		t.Errorf("span [End,Next) = %q, want the end marker", text[r.End:r.Next])
	}
}

func TestLocate_NotFound(t *testing.T) {
	for _, text := range []string{"", "no markers here\n", "### EndRegion\n"} {
		_, ok, err := Locate(text, 0)
		if err != nil {
			t.Errorf("Locate(%q) returned error: %v", text, err)
		}
		if ok {
			t.Errorf("Locate(%q) found a region, expected none", text)
		}
	}
}

func TestLocate_FromOffset(t *testing.T) {
	text := "### Region: a\n1\n### EndRegion\n### Region: b\n2\n### EndRegion\n"

	first, ok, err := Locate(text, 0)
	if err != nil || !ok {
		t.Fatalf("first Locate: ok=%v err=%v", ok, err)
	}
	second, ok, err := Locate(text, first.Next)
	if err != nil || !ok {
		t.Fatalf("second Locate: ok=%v err=%v", ok, err)
	}
	if second.Name != "b" {
		t.Errorf("Expected second region 'b', got %q", second.Name)
	}
	if _, ok, _ := Locate(text, second.Next); ok {
		t.Error("Expected no region past the second end marker")
	}
}

func TestLocate_NameTrimming(t *testing.T) {
	text := "### Region:   spacedName   \nbody\n### EndRegion\n"

	r, ok, err := Locate(text, 0)
	if err != nil || !ok {
		t.Fatalf("Locate: ok=%v err=%v", ok, err)
	}
	if r.Name != "spacedName" {
		t.Errorf("Expected trimmed name 'spacedName', got %q", r.Name)
	}
}

func TestLocate_Unterminated(t *testing.T) {
	text := "intro\n### Region: broken\nnever closed\n"

	_, _, err := Locate(text, 0)
	if err == nil {
		t.Fatal("Expected MalformedError for unterminated region")
	}

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected *MalformedError, got %T", err)
	}
	if malformed.Name != "broken" {
		t.Errorf("Error names region %q, want 'broken'", malformed.Name)
	}
	if malformed.Offset != strings.Index(text, StartMarker) {
		t.Errorf("Error offset = %d, want %d", malformed.Offset, strings.Index(text, StartMarker))
	}
}

func TestLocate_EmbeddedEndMarker(t *testing.T) {
	// The end-marker scan only requires the literal substring; it does not
	// need to stand alone on its own line.
	text := "### Region: x\nbody text ### EndRegion trailing\n"

	r, ok, err := Locate(text, 0)
	if err != nil || !ok {
		t.Fatalf("Locate: ok=%v err=%v", ok, err)
	}
	if got := r.Body(text); got != "body text " {
		t.Errorf("Body = %q, want %q", got, "body text ")
	}
}

func TestList(t *testing.T) {
	text := "### Region: a\n1\n### EndRegion\nmiddle\n### Region: b\n2\n### EndRegion\n"

	regions, err := List(text)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}
	if regions[0].Name != "a" || regions[1].Name != "b" {
		t.Errorf("Expected regions a, b in document order, got %q, %q", regions[0].Name, regions[1].Name)
	}
	if regions[0].Next > regions[1].Start {
		t.Error("Regions overlap")
	}
}

func TestList_UnterminatedAborts(t *testing.T) {
	text := "### Region: a\n1\n### EndRegion\n### Region: dangling\nno end\n"

	regions, err := List(text)
	if err == nil {
		t.Fatal("Expected error for unterminated trailing region")
	}
	if regions != nil {
		t.Errorf("Expected no partial result, got %d regions", len(regions))
	}
}
