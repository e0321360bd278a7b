// Package ast defines positioned tokens and the abstract syntax tree for
// Thrift IDL documents.
//
// Every node kind is a small struct carrying only the fields relevant to that
// kind plus its own source span; query engines dispatch over the node kinds
// with exhaustive type switches. Nodes are built once by the parser and never
// mutated afterwards.
package ast

import "strings"

// Node is implemented by every element of the tree.
type Node interface {
	Range() Range
	Children() []Node
}

// Header is a declaration allowed before the first definition: include,
// cpp_include or namespace.
type Header interface {
	Node
	header()
}

// Definition is a named top-level declaration.
type Definition interface {
	Node
	Name() Ident
	// Kind returns the declaration keyword: "const", "typedef", "enum",
	// "struct", "union", "exception" or "service".
	Kind() string
}

// TypeRef is a reference to a type: a base type, a (possibly qualified)
// named type, a container, or a recovery placeholder.
type TypeRef interface {
	Node
	typeRef()
}

// Ident is a positioned name. For type references the name may be qualified
// with an include alias ("shared.Foo").
type Ident struct {
	Text string
	Span Range
}

func (i Ident) Range() Range     { return i.Span }
func (i Ident) Children() []Node { return nil }

// Qualifier splits a qualified identifier into its alias and remainder.
// ok is false when the identifier contains no dot.
func (i Ident) Qualifier() (alias Ident, name Ident, ok bool) {
	dot := strings.IndexByte(i.Text, '.')
	if dot < 0 {
		return Ident{}, i, false
	}
	alias = Ident{
		Text: i.Text[:dot],
		Span: Range{
			Start: i.Span.Start,
			End:   Position{Line: i.Span.Start.Line, Column: i.Span.Start.Column + dot},
		},
	}
	name = Ident{
		Text: i.Text[dot+1:],
		Span: Range{
			Start: Position{Line: i.Span.Start.Line, Column: i.Span.Start.Column + dot + 1},
			End:   i.Span.End,
		},
	}
	return alias, name, true
}

// Document is the root node for one file.
type Document struct {
	Headers     []Header
	Definitions []Definition
	Span        Range
}

func (d *Document) Range() Range { return d.Span }

func (d *Document) Children() []Node {
	out := make([]Node, 0, len(d.Headers)+len(d.Definitions))
	for _, h := range d.Headers {
		out = append(out, h)
	}
	for _, def := range d.Definitions {
		out = append(out, def)
	}
	return out
}

// Includes returns the document's include headers in declaration order,
// cpp_include included: both make external declarations visible.
func (d *Document) Includes() []*Include {
	var out []*Include
	for _, h := range d.Headers {
		switch h := h.(type) {
		case *Include:
			out = append(out, h)
		case *CppInclude:
			out = append(out, &Include{Path: h.Path, PathSpan: h.PathSpan, Span: h.Span})
		}
	}
	return out
}

// Include is `include "path.thrift"`.
type Include struct {
	Path     string // unquoted path literal
	PathSpan Range  // span of the quoted literal
	Span     Range
}

func (n *Include) Range() Range     { return n.Span }
func (n *Include) Children() []Node { return nil }
func (n *Include) header()          {}

// CppInclude is `cpp_include "header.h"`. It participates in include
// resolution identically to Include.
type CppInclude struct {
	Path     string
	PathSpan Range
	Span     Range
}

func (n *CppInclude) Range() Range     { return n.Span }
func (n *CppInclude) Children() []Node { return nil }
func (n *CppInclude) header()          {}

// Namespace is `namespace <scope> <name>`.
type Namespace struct {
	Scope Ident
	Ident Ident
	Span  Range
}

func (n *Namespace) Range() Range     { return n.Span }
func (n *Namespace) Children() []Node { return []Node{n.Scope, n.Ident} }
func (n *Namespace) header()          {}

// ConstValue is a constant expression. Composite values (lists, maps) keep
// their rendered text plus the nested identifier references for resolution.
type ConstValue struct {
	Text   string
	Idents []Ident // identifier references inside the value
	Span   Range
}

func (n *ConstValue) Range() Range { return n.Span }

func (n *ConstValue) Children() []Node {
	out := make([]Node, len(n.Idents))
	for i, id := range n.Idents {
		out[i] = id
	}
	return out
}

// Const is `const <type> <name> = <value>`.
type Const struct {
	Type  TypeRef
	Ident Ident
	Value *ConstValue
	Span  Range
}

func (n *Const) Range() Range { return n.Span }
func (n *Const) Name() Ident  { return n.Ident }
func (n *Const) Kind() string { return "const" }

func (n *Const) Children() []Node {
	out := []Node{n.Type, n.Ident}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// Typedef is `typedef <type> <name>`.
type Typedef struct {
	Type        TypeRef
	Ident       Ident
	Annotations []Annotation
	Span        Range
}

func (n *Typedef) Range() Range { return n.Span }
func (n *Typedef) Name() Ident  { return n.Ident }
func (n *Typedef) Kind() string { return "typedef" }

func (n *Typedef) Children() []Node { return []Node{n.Type, n.Ident} }

// EnumValue is one member of an enum, optionally with an explicit value.
type EnumValue struct {
	Ident       Ident
	Value       *int32 // nil when no `= N` was written
	Annotations []Annotation
	Span        Range
}

func (n *EnumValue) Range() Range     { return n.Span }
func (n *EnumValue) Children() []Node { return []Node{n.Ident} }

// Enum is `enum <name> { ... }`.
type Enum struct {
	Ident       Ident
	Values      []*EnumValue
	Annotations []Annotation
	Span        Range
}

func (n *Enum) Range() Range { return n.Span }
func (n *Enum) Name() Ident  { return n.Ident }
func (n *Enum) Kind() string { return "enum" }

func (n *Enum) Children() []Node {
	out := []Node{n.Ident}
	for _, v := range n.Values {
		out = append(out, v)
	}
	return out
}

// Requiredness is a field's requiredness modifier.
type Requiredness int

const (
	DefaultReq Requiredness = iota
	Required
	Optional
)

func (r Requiredness) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "default"
	}
}

// Field is a struct/union/exception member, a function parameter, or a
// throws clause entry.
type Field struct {
	ID          *int32 // nil when no `N:` prefix was written
	Req         Requiredness
	Type        TypeRef
	Ident       Ident
	Default     *ConstValue
	Annotations []Annotation
	Span        Range
}

func (n *Field) Range() Range { return n.Span }

func (n *Field) Children() []Node {
	out := []Node{n.Type, n.Ident}
	if n.Default != nil {
		out = append(out, n.Default)
	}
	return out
}

// Struct is `struct <name> { fields }`.
type Struct struct {
	Ident       Ident
	Fields      []*Field
	Annotations []Annotation
	Span        Range
}

func (n *Struct) Range() Range { return n.Span }
func (n *Struct) Name() Ident  { return n.Ident }
func (n *Struct) Kind() string { return "struct" }

func (n *Struct) Children() []Node { return fieldsChildren(n.Ident, n.Fields) }

// Union is `union <name> { fields }`.
type Union struct {
	Ident       Ident
	Fields      []*Field
	Annotations []Annotation
	Span        Range
}

func (n *Union) Range() Range { return n.Span }
func (n *Union) Name() Ident  { return n.Ident }
func (n *Union) Kind() string { return "union" }

func (n *Union) Children() []Node { return fieldsChildren(n.Ident, n.Fields) }

// Exception is `exception <name> { fields }`.
type Exception struct {
	Ident       Ident
	Fields      []*Field
	Annotations []Annotation
	Span        Range
}

func (n *Exception) Range() Range { return n.Span }
func (n *Exception) Name() Ident  { return n.Ident }
func (n *Exception) Kind() string { return "exception" }

func (n *Exception) Children() []Node { return fieldsChildren(n.Ident, n.Fields) }

func fieldsChildren(name Ident, fields []*Field) []Node {
	out := []Node{name}
	for _, f := range fields {
		out = append(out, f)
	}
	return out
}

// Function is one service method.
type Function struct {
	Oneway      bool
	ReturnType  TypeRef
	Ident       Ident
	Params      []*Field
	Throws      []*Field // nil when no throws clause was written
	Annotations []Annotation
	Span        Range
}

func (n *Function) Range() Range { return n.Span }

func (n *Function) Children() []Node {
	out := []Node{n.ReturnType, n.Ident}
	for _, p := range n.Params {
		out = append(out, p)
	}
	for _, t := range n.Throws {
		out = append(out, t)
	}
	return out
}

// Service is `service <name> (extends <base>)? { functions }`.
type Service struct {
	Ident       Ident
	Extends     *Ident // nil when the service extends nothing
	Functions   []*Function
	Annotations []Annotation
	Span        Range
}

func (n *Service) Range() Range { return n.Span }
func (n *Service) Name() Ident  { return n.Ident }
func (n *Service) Kind() string { return "service" }

func (n *Service) Children() []Node {
	out := []Node{n.Ident}
	if n.Extends != nil {
		out = append(out, *n.Extends)
	}
	for _, f := range n.Functions {
		out = append(out, f)
	}
	return out
}

// Annotation is one `name = "value"` entry of a trailing annotation list.
type Annotation struct {
	Ident Ident
	Value string
	Span  Range
}

func (n Annotation) Range() Range     { return n.Span }
func (n Annotation) Children() []Node { return []Node{n.Ident} }

// BaseType references a built-in type: bool, i32, string, ...
type BaseType struct {
	Text string
	Span Range
}

func (n *BaseType) Range() Range     { return n.Span }
func (n *BaseType) Children() []Node { return nil }
func (n *BaseType) typeRef()         {}

// TypeName references a declared type, possibly qualified by an include
// alias. It is bound to a declaration by the linker.
type TypeName struct {
	Ident Ident
	Span  Range
}

func (n *TypeName) Range() Range     { return n.Span }
func (n *TypeName) Children() []Node { return []Node{n.Ident} }
func (n *TypeName) typeRef()         {}

// ListType is `list<Elem>`.
type ListType struct {
	Elem    TypeRef
	CppType string // optional cpp_type adornment, no semantic effect
	Span    Range
}

func (n *ListType) Range() Range     { return n.Span }
func (n *ListType) Children() []Node { return []Node{n.Elem} }
func (n *ListType) typeRef()         {}

// SetType is `set<Elem>`.
type SetType struct {
	Elem    TypeRef
	CppType string
	Span    Range
}

func (n *SetType) Range() Range     { return n.Span }
func (n *SetType) Children() []Node { return []Node{n.Elem} }
func (n *SetType) typeRef()         {}

// MapType is `map<Key, Value>`.
type MapType struct {
	Key     TypeRef
	Value   TypeRef
	CppType string
	Span    Range
}

func (n *MapType) Range() Range     { return n.Span }
func (n *MapType) Children() []Node { return []Node{n.Key, n.Value} }
func (n *MapType) typeRef()         {}

// BadType is the placeholder the parser leaves behind when a type could not
// be parsed, so the enclosing declaration stays queryable.
type BadType struct {
	Span Range
}

func (n *BadType) Range() Range     { return n.Span }
func (n *BadType) Children() []Node { return nil }
func (n *BadType) typeRef()         {}
