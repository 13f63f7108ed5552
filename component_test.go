package psc

import (
	"errors"
	"testing"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"simple", "Title", "psc-Title"},
		{"multi word", "CardHeader", "psc-CardHeader"},
		{"with digits", "H1Block", "psc-H1Block"},
		{"with underscore", "Nav_Item", "psc-Nav_Item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassName(tt.input); got != tt.expect {
				t.Errorf("ClassName(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestClassNameInjective(t *testing.T) {
	names := []string{"Title", "Card", "CardHeader", "Card_Header", "Title2"}

	seen := make(map[string]string)
	for _, name := range names {
		class := ClassName(name)
		if prev, ok := seen[class]; ok {
			t.Errorf("ClassName collision: %q and %q both map to %q", prev, name, class)
		}
		seen[class] = name
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"capitalized", "Title", true},
		{"single letter", "T", true},
		{"digits and underscore", "Card_2", true},
		{"lowercase", "title", false},
		{"empty", "", false},
		{"leading digit", "1Title", false},
		{"hyphen", "Card-Header", false},
		{"space", "Card Header", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.input); got != tt.expect {
				t.Errorf("ValidName(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestNewDescriptor(t *testing.T) {
	desc, err := NewDescriptor("Title", "h1", "color: red;", "components/Title.yaml")
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}
	if desc.ClassName != "psc-Title" {
		t.Errorf("ClassName = %q, want %q", desc.ClassName, "psc-Title")
	}
	if desc.Tag != "h1" {
		t.Errorf("Tag = %q, want %q", desc.Tag, "h1")
	}
	if desc.RawStyle != "color: red;" {
		t.Errorf("RawStyle = %q, want %q", desc.RawStyle, "color: red;")
	}
}

func TestNewDescriptorErrors(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		tag     string
		wantErr error
	}{
		{"missing tag", "Title", "", ErrMissingTag},
		{"lowercase name", "title", "h1", ErrInvalidName},
		{"empty name", "", "h1", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor(tt.cname, tt.tag, "", "")
			if err == nil {
				t.Fatal("NewDescriptor() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDescriptor() error = %v, want %v", err, tt.wantErr)
			}
			if !IsDefinitionError(err) {
				t.Errorf("IsDefinitionError(%v) = false, want true", err)
			}
		})
	}
}

func TestNewDescriptorMalformedTag(t *testing.T) {
	_, err := NewDescriptor("Title", `h1"><script`, "", "")
	if err == nil {
		t.Fatal("NewDescriptor() expected error for malformed tag, got nil")
	}
}
