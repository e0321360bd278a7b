package linker

import (
	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/reporter"
)

// Dep is one include edge available during resolution, carrying the target
// document's own symbol table. Symbols is nil for a dangling include (target
// unreadable or removed); lookups against it always miss.
type Dep struct {
	// Alias is the name the include is referenced by: the last path segment
	// of the include literal, without the .thrift extension.
	Alias string
	// Path is the resolved target path.
	Path    string
	Symbols *Symbols
}

// Reference binds one identifier in the source to the declaration it
// resolves to.
type Reference struct {
	Ident  ast.Ident
	Target *Symbol
	// External is true when the declaration lives in another document.
	External bool
}

// Resolve binds every type reference of doc, in source order. Each document's
// dependency tables are consulted directly, never recursively, so include
// cycles cost one table lookup instead of unbounded recursion. Unresolved
// references are reported to handler and omitted from the result; they never
// stop resolution of the rest of the document.
func Resolve(doc *ast.Document, local *Symbols, deps []Dep, handler *reporter.Handler) []Reference {
	r := &resolution{local: local, deps: deps, handler: handler}

	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.Const:
			r.typeRef(def.Type)
			if def.Value != nil {
				r.valueIdents(def.Value)
			}
		case *ast.Typedef:
			r.typeRef(def.Type)
		case *ast.Struct:
			r.fields(def.Fields)
		case *ast.Union:
			r.fields(def.Fields)
		case *ast.Exception:
			r.fields(def.Fields)
		case *ast.Service:
			if def.Extends != nil {
				r.reference(*def.Extends, true)
			}
			for _, fn := range def.Functions {
				r.typeRef(fn.ReturnType)
				r.fields(fn.Params)
				r.fields(fn.Throws)
			}
		}
	}
	return r.refs
}

type resolution struct {
	local   *Symbols
	deps    []Dep
	handler *reporter.Handler
	refs    []Reference
}

func (r *resolution) fields(fields []*ast.Field) {
	for _, f := range fields {
		r.typeRef(f.Type)
		if f.Default != nil {
			r.valueIdents(f.Default)
		}
	}
}

// typeRef descends into container types and binds every named type.
func (r *resolution) typeRef(t ast.TypeRef) {
	switch t := t.(type) {
	case *ast.TypeName:
		r.reference(t.Ident, true)
	case *ast.ListType:
		r.typeRef(t.Elem)
	case *ast.SetType:
		r.typeRef(t.Elem)
	case *ast.MapType:
		r.typeRef(t.Key)
		r.typeRef(t.Value)
	case *ast.BaseType, *ast.BadType, nil:
		// nothing to bind
	}
}

// valueIdents binds identifier references inside constant values. These are
// best-effort: enum member references and cross-file constants resolve when
// possible but an unresolved value identifier is not a diagnostic.
func (r *resolution) valueIdents(v *ast.ConstValue) {
	for _, id := range v.Idents {
		r.reference(id, false)
	}
}

// reference resolves one identifier. Unqualified names are looked up in the
// local table first, then in every included document's own top-level set in
// include-declaration order. A qualified name resolves its alias among the
// includes and then looks up the remainder in that target's local set only;
// qualified lookup does not recurse through the target's own includes.
func (r *resolution) reference(id ast.Ident, report bool) {
	if alias, name, ok := id.Qualifier(); ok {
		r.qualified(id, alias, name, report)
		return
	}

	if sym, ok := r.local.ByName[id.Text]; ok {
		r.refs = append(r.refs, Reference{Ident: id, Target: sym})
		return
	}
	for _, dep := range r.deps {
		if dep.Symbols == nil {
			continue
		}
		if sym, ok := dep.Symbols.ByName[id.Text]; ok {
			r.refs = append(r.refs, Reference{Ident: id, Target: sym, External: true})
			return
		}
	}
	if report {
		r.handler.Errorf(id.Span, "undefined type: %s", id.Text)
	}
}

func (r *resolution) qualified(full, alias, name ast.Ident, report bool) {
	for _, dep := range r.deps {
		if dep.Alias != alias.Text {
			continue
		}
		if dep.Symbols != nil {
			if sym, ok := dep.Symbols.ByName[name.Text]; ok {
				r.refs = append(r.refs, Reference{Ident: full, Target: sym, External: true})
				return
			}
		}
		if report {
			r.handler.Errorf(full.Span, "undefined type: %s", full.Text)
		}
		return
	}

	// Not an include alias. Constant values use the same syntax for enum
	// member access (Status.OK); bind to the enum declaration when it
	// resolves, otherwise stay silent for values.
	if sym, ok := r.local.ByName[alias.Text]; ok && !report {
		r.refs = append(r.refs, Reference{Ident: full, Target: sym})
		return
	}
	if report {
		r.handler.Errorf(full.Span, "undefined type: %s", full.Text)
	}
}
