//go:build cgo

package symbols

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"rustai/internal/scan"
)

// Extractor extracts Rust items using tree-sitter. An Extractor is not safe
// for concurrent use.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a new Rust item extractor.
func NewExtractor() *Extractor {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return &Extractor{parser: parser}
}

// ExtractFile extracts all items from a Rust file.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]Item, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractSource(ctx, source)
}

// ExtractSource extracts items from Rust source bytes, in source order.
func (e *Extractor) ExtractSource(ctx context.Context, source []byte) ([]Item, error) {
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	var items []Item
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if item, ok := toItem(node, source); ok {
			items = append(items, item)
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(tree.RootNode())
	return items, nil
}

func toItem(node *sitter.Node, source []byte) (Item, bool) {
	item := Item{
		Line:    int(node.StartPoint().Row),
		EndLine: int(node.EndPoint().Row),
		HasBody: true,
	}

	switch node.Type() {
	case "function_item":
		item.Kind = scan.Function
		item.Name = fieldText(node, "name", source)
		item.Container, item.ContainerKind = container(node, source)
	case "function_signature_item":
		item.Kind = scan.Function
		item.Name = fieldText(node, "name", source)
		item.HasBody = false
		item.Container, item.ContainerKind = container(node, source)
	case "struct_item":
		item.Kind = scan.Struct
		item.Name = fieldText(node, "name", source)
	case "trait_item":
		item.Kind = scan.Trait
		item.Name = fieldText(node, "name", source)
	case "macro_definition":
		item.Kind = scan.Macro
		item.Name = fieldText(node, "name", source)
	case "impl_item":
		item.Name, item.Kind = implName(node, source)
	default:
		return Item{}, false
	}
	return item, item.Name != ""
}

// container finds the item that directly encloses a function. Functions in an
// impl or trait sit in its declaration_list; nested functions sit in a block.
func container(node *sitter.Node, source []byte) (string, scan.Kind) {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "impl_item":
			return implName(p, source)
		case "trait_item":
			return fieldText(p, "name", source), scan.Trait
		case "function_item":
			return fieldText(p, "name", source), scan.Function
		case "source_file", "mod_item":
			return "", scan.Unknown
		}
	}
	return "", scan.Unknown
}

// implName names an impl block after its trait, or its type for an inherent impl.
func implName(node *sitter.Node, source []byte) (string, scan.Kind) {
	if trait := node.ChildByFieldName("trait"); trait != nil {
		return typeName(trait, source), scan.TraitImpl
	}
	if typ := node.ChildByFieldName("type"); typ != nil {
		return typeName(typ, source), scan.StructImpl
	}
	return "", scan.StructImpl
}

// typeName reduces a type node to its final identifier: `fmt::Display` is
// Display and `Convert<A>` is Convert. Reference and tuple types have no name.
func typeName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "type_identifier", "primitive_type", "identifier":
		return node.Content(source)
	case "generic_type":
		if inner := node.ChildByFieldName("type"); inner != nil {
			return typeName(inner, source)
		}
	case "scoped_type_identifier", "scoped_identifier":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(source)
		}
	}
	return ""
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(source)
}

// IsAvailable returns whether symbol extraction is available.
func IsAvailable() bool {
	return true
}
