package scan

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Kind
	}{
		{"impl Binary {", StructImpl},
		{"    impl<T> Stack<T> {", StructImpl},
		{"unsafe impl Send for Binary {}", TraitImpl},
		{"impl FromBytes for u16 {", TraitImpl},
		{"impl<A> Convert<A> for A {", TraitImpl},
		{"impl fmt::Display for Binary {", TraitImpl},
		{"    fn from_bytes(b: &[u8], _: Layout) -> Result<Self> {", Function},
		{"pub(crate) async fn run() {", Function},
		{"fn make() -> impl Iterator<Item = u8> {", Function},
		{"pub struct Binary {", Struct},
		{"struct Unit;", Struct},
		{"pub trait IntoBytes {", Trait},
		{"macro_rules! square {", Macro},
		{"let implement = 3;", Unknown},
		{"    self.size", Unknown},
		{"", Unknown},
		{"impl", Unknown},
		{"let f: fn(u8) -> u8 = id;", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// An impl line holding a one-line method is still an impl block.
	if got := Classify("impl Binary { fn len(&self) -> usize { self.size } }"); got != StructImpl {
		t.Errorf("Classify = %v, want StructImpl", got)
	}
	// A struct impl never classifies as a struct or trait.
	if got := Classify("impl Binary {"); got == Struct || got == Trait {
		t.Errorf("impl line classified as %v", got)
	}
	if got := Classify("impl FromBytes for u16 {"); got == Trait {
		t.Error("trait impl classified as Trait")
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
		want string
	}{
		{"struct impl", "impl Binary {", StructImpl, "Binary"},
		{"generic struct impl", "impl<T: Clone> Stack<T> {", StructImpl, "Stack"},
		{"nested generics", "impl<T: Into<Vec<u8>>> Wrapper<T> {", StructImpl, "Wrapper"},
		{"trait impl", "impl FromBytes for u16 {", TraitImpl, "FromBytes"},
		{"blanket impl", "impl<A> Convert<A> for A {", TraitImpl, "Convert"},
		{"path trait impl", "impl fmt::Display for Binary {", TraitImpl, "Display"},
		{"absolute path", "impl<T> ::std::fmt::Debug for Wrapper<T> {", TraitImpl, "Debug"},
		{"negative impl", "impl !Send for Handle {}", TraitImpl, "Send"},
		{"closure bound in generics", "impl<F: Fn() -> u8> Runner for F {", TraitImpl, "Runner"},
		{"function", "    fn from_bytes(b: &[u8], _: Layout) -> Result<Self> {", Function, "from_bytes"},
		{"pub function", "pub fn new(size: usize) -> Self {", Function, "new"},
		{"struct", "pub struct Binary {", Struct, "Binary"},
		{"trait", "pub trait FromBytes {", Trait, "FromBytes"},
		{"macro", "macro_rules! square {", Macro, "square"},
		{"unknown", "impl Binary {", Unknown, ""},
		{"no identifier", "fn ", Function, ""},
		{"impl of reference", "impl<'a> &'a str {", StructImpl, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractName(tt.line, tt.kind); got != tt.want {
				t.Errorf("ExtractName(%q, %v) = %q, want %q", tt.line, tt.kind, got, tt.want)
			}
		})
	}
}

func TestExtractName_ImplKindsAreExclusive(t *testing.T) {
	structImpl := "impl Binary {"
	traitImpl := "impl<A> Convert<A> for A {"

	if got := ExtractName(structImpl, TraitImpl); got != "" {
		t.Errorf("TraitImpl name from struct impl = %q, want empty", got)
	}
	if got := ExtractName(traitImpl, StructImpl); got != "" {
		t.Errorf("StructImpl name from trait impl = %q, want empty", got)
	}
}

func TestExtractName_MalformedInput(t *testing.T) {
	lines := []string{
		"impl<",
		"impl<<<>",
		"impl for",
		"impl :: for X",
		"impl<T> for",
		"fn",
		"struct {",
		"\x00\xff impl \xfe",
	}
	kinds := []Kind{Unknown, Macro, Trait, Struct, Function, TraitImpl, StructImpl}

	for _, line := range lines {
		for _, kind := range kinds {
			_ = ExtractName(line, kind)
		}
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"    TEST TEST TEST", "    "},
		{"\tTEST TEST TEST", "\t"},
		{" \t fn x() {", " \t "},
		{"fn x() {", ""},
		{"   ", "   "},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Indent(tt.line); got != tt.want {
			t.Errorf("Indent(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"function", Function, false},
		{"fn", Function, false},
		{"Struct", Struct, false},
		{"TRAIT", Trait, false},
		{"traitimpl", TraitImpl, false},
		{"impl", StructImpl, false},
		{"macro", Macro, false},
		{"enum", Unknown, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, kind := range []Kind{Unknown, Macro, Trait, Struct, Function, TraitImpl, StructImpl} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", kind, err)
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != kind {
			t.Errorf("round trip of %v = %v", kind, got)
		}
	}
}
