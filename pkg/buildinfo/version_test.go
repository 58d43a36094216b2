package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()

	for _, want := range []string{Version, Commit, Date} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()

	// Cobra fills in {{.Name}}; everything else is baked in already
	if !strings.Contains(tmpl, "{{.Name}}") {
		t.Errorf("Template() = %q, missing name placeholder", tmpl)
	}
	for _, want := range []string{Version, Commit, Date} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if !strings.HasSuffix(tmpl, "\n") {
		t.Error("Template() should end with a newline")
	}
}
