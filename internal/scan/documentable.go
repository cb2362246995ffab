package scan

import "fmt"

// Documentable is the shape shared by every construct that can receive a doc comment.
type Documentable struct {
	Name   string `json:"name" yaml:"name"`
	Extent Range  `json:"extent" yaml:"extent"`
	// Indent is the leading whitespace of the declaration line.
	Indent string `json:"indent" yaml:"indent"`
}

// FunctionDecl is a function declaration and the impl block it belongs to, if any.
type FunctionDecl struct {
	Documentable `yaml:",inline"`
	Owner        *Owner `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// StructDecl is a struct declaration.
type StructDecl struct {
	Documentable `yaml:",inline"`
}

// TraitDecl is a trait declaration.
type TraitDecl struct {
	Documentable `yaml:",inline"`
}

// Target is the construct selected for documentation at a cursor.
type Target struct {
	Kind         Kind `json:"kind" yaml:"kind"`
	Documentable `yaml:",inline"`
	Owner        *Owner `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// documentable finds the construct of kind around the cursor and reads its name and indent.
func (s *Scanner) documentable(cursor Position, kind Kind) (Documentable, error) {
	extent, err := s.FindExtent(cursor, kind)
	if err != nil {
		return Documentable{}, err
	}
	raw := s.src.LineText(extent.Anchor.Line)
	name := ExtractName(StripComments(raw), kind)
	if name == "" {
		return Documentable{}, fmt.Errorf("%s at line %d: %w", kind, extent.Anchor.Line, ErrUnresolvable)
	}
	return Documentable{Name: name, Extent: extent, Indent: Indent(raw)}, nil
}

// CurrentFunction returns the function around the cursor with its owner.
func (s *Scanner) CurrentFunction(cursor Position) (*FunctionDecl, error) {
	doc, err := s.documentable(cursor, Function)
	if err != nil {
		return nil, err
	}
	owner, err := s.FindOwner(doc.Extent)
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{Documentable: doc, Owner: owner}, nil
}

// CurrentStruct returns the struct around the cursor.
func (s *Scanner) CurrentStruct(cursor Position) (*StructDecl, error) {
	doc, err := s.documentable(cursor, Struct)
	if err != nil {
		return nil, err
	}
	return &StructDecl{Documentable: doc}, nil
}

// CurrentTrait returns the trait around the cursor.
func (s *Scanner) CurrentTrait(cursor Position) (*TraitDecl, error) {
	doc, err := s.documentable(cursor, Trait)
	if err != nil {
		return nil, err
	}
	return &TraitDecl{Documentable: doc}, nil
}

// Current picks the construct to document from the nearest declaration at or
// above the cursor. Only functions, structs and traits are documentable; any
// other nearest declaration yields ErrNotFound.
func (s *Scanner) Current(cursor Position) (*Target, error) {
	switch scope := s.CurrentScope(cursor); scope {
	case Function:
		fn, err := s.CurrentFunction(cursor)
		if err != nil {
			return nil, err
		}
		return &Target{Kind: Function, Documentable: fn.Documentable, Owner: fn.Owner}, nil
	case Struct:
		st, err := s.CurrentStruct(cursor)
		if err != nil {
			return nil, err
		}
		return &Target{Kind: Struct, Documentable: st.Documentable}, nil
	case Trait:
		tr, err := s.CurrentTrait(cursor)
		if err != nil {
			return nil, err
		}
		return &Target{Kind: Trait, Documentable: tr.Documentable}, nil
	default:
		s.logger.Debug("nothing to document", "cursor", cursor.Line, "scope", scope)
		return nil, ErrNotFound
	}
}
