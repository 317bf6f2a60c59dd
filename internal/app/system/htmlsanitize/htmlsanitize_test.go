package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/conduit/internal/app/system/htmlsanitize"
)

func TestStripTags_Empty(t *testing.T) {
	result := htmlsanitize.StripTags("")
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestStripTags_PlainText(t *testing.T) {
	result := htmlsanitize.StripTags("Not Found")
	if result != "Not Found" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestStripTags_KeepsAmpersands(t *testing.T) {
	result := htmlsanitize.StripTags("fish & chips")
	if result != "fish & chips" {
		t.Errorf("expected ampersand kept as text, got %q", result)
	}
}

func TestStripTags_RemovesMarkup(t *testing.T) {
	result := htmlsanitize.StripTags("<b>bad</b> request")
	if result != "bad request" {
		t.Errorf("expected tags removed, got %q", result)
	}
}

func TestStripTags_RemovesScript(t *testing.T) {
	result := htmlsanitize.StripTags("<script>alert('xss')</script>Oops")
	if result != "Oops" {
		t.Errorf("expected script removed, got %q", result)
	}
}
