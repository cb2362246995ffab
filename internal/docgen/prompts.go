// Package docgen turns a located Rust construct into a doc comment: it builds
// a prompt from the construct's source, asks a text generator for a comment
// and reformats the answer as /// lines.
package docgen

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"rustai/internal/scan"
)

// Templates holds one prompt template per documentable construct. Templates
// use text/template syntax over PromptData.
type Templates struct {
	System   string `toml:"system"`
	Function string `toml:"function"`
	Method   string `toml:"method"`
	Struct   string `toml:"struct"`
	Trait    string `toml:"trait"`
}

// PromptData is the data a template is rendered with.
type PromptData struct {
	// Body is the construct's source text, declaration through closing brace.
	Body string
	// Owner is the name of the impl block a method belongs to.
	Owner string
	// Crate and Edition come from the nearest Cargo.toml, when there is one.
	Crate   string
	Edition string
}

const commentFormat = `The doc comment should be written in markdown using three slashes on each line (like '///'), `

// DefaultTemplates returns the built-in prompts.
func DefaultTemplates() Templates {
	return Templates{
		System: "You write concise, accurate Rust documentation comments.",
		Function: `Write a doc comment for the following function{{if .Crate}} from the {{.Crate}} crate{{end}}:
"{{.Body}}"

` + commentFormat + `contain a brief description of what the function does, list the arguments to the function,
the return value, and a minimal example of how to use the function without any 'using' statements or
namespaces. Do not include any explanation or other non-commented code.`,
		Method: `Write a doc comment for the following method on the {{.Owner}} object{{if .Crate}} from the {{.Crate}} crate{{end}}:
"{{.Body}}"

` + commentFormat + `contain a brief description of what the function does, list the arguments to the function,
the return value, and a minimal example of how to use the function without any 'using' statements or
namespaces. Do not include any explanation or other non-commented code.`,
		Struct: `Write a Rust doc comment for the following struct{{if .Crate}} from the {{.Crate}} crate{{end}}:
"{{.Body}}"

The Rust doc comment should be written in markdown using three slashes on each line (like '///'),
contain a brief description of what the struct does based on the properties in the struct body,
and a minimal example to demonstrate how to create an instance of the struct. The example should
assume that there is a 'new' function that can be used to create the object.`,
		Trait: `Write a Rust doc comment for the following trait{{if .Crate}} from the {{.Crate}} crate{{end}}:
"{{.Body}}"

The Rust doc comment should be written in markdown using three slashes on each line (like '///'),
contain a brief description of what the trait does based on the properties in the trait body,
and a minimal example to demonstrate how to use the trait. The example should assume that there
is an object called "MyStruct" that implements the trait and has a 'new' function used to create
the "MyStruct" object.`,
	}
}

// LoadTemplates reads prompt overrides from a TOML file. Keys missing from the
// file keep their built-in value; unknown keys are an error.
func LoadTemplates(path string) (Templates, error) {
	templates := DefaultTemplates()
	if path == "" {
		return templates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return templates, fmt.Errorf("read prompts file: %w", err)
	}

	meta, err := toml.Decode(string(data), &templates)
	if err != nil {
		return templates, fmt.Errorf("parse prompts file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return templates, fmt.Errorf("prompts file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := templates.Validate(); err != nil {
		return templates, err
	}
	return templates, nil
}

// Validate checks that every template parses.
func (t Templates) Validate() error {
	for name, text := range t.byName() {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("prompt %q is empty", name)
		}
		if _, err := template.New(name).Option("missingkey=error").Parse(text); err != nil {
			return fmt.Errorf("prompt %q: %w", name, err)
		}
	}
	return nil
}

func (t Templates) byName() map[string]string {
	return map[string]string{
		"function": t.Function,
		"method":   t.Method,
		"struct":   t.Struct,
		"trait":    t.Trait,
	}
}

// Render builds the prompt for a construct of the given kind. A function with
// an owner uses the method template.
func (t Templates) Render(kind scan.Kind, data PromptData) (string, error) {
	var name, text string
	switch {
	case kind == scan.Function && data.Owner != "":
		name, text = "method", t.Method
	case kind == scan.Function:
		name, text = "function", t.Function
	case kind == scan.Struct:
		name, text = "struct", t.Struct
	case kind == scan.Trait:
		name, text = "trait", t.Trait
	default:
		return "", fmt.Errorf("no prompt for %s", kind)
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return sb.String(), nil
}
