package ast

import "svlower/internal/source"

// Ident is a name with the span it was written at.
type Ident struct {
	Name string      `json:"name"`
	Span source.Span `json:"span"`
}

// Root is one compilation unit: the top-level items of a source file.
type Root struct {
	Span  source.Span `json:"span"`
	Items []*Item     `json:"items"`
}

// Modules returns the module declarations of the unit in source order.
func (r *Root) Modules() []*ModuleDecl {
	var out []*ModuleDecl
	for _, it := range r.Items {
		if it.Kind == ItemModule && it.Module != nil {
			out = append(out, it.Module)
		}
	}
	return out
}

// Packages returns the package declarations of the unit in source order.
func (r *Root) Packages() []*PackageDecl {
	var out []*PackageDecl
	for _, it := range r.Items {
		if it.Kind == ItemPackage && it.Package != nil {
			out = append(out, it.Package)
		}
	}
	return out
}
