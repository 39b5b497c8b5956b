package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"svlower/internal/ast"
	"svlower/internal/hir"
	"svlower/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a decoded unit:
// 1) root.Span is non-empty and within file content bounds
// 2) every item span is non-empty and fully contained in root.Span
// 3) root.Span covers the union of item spans (if any items exist)
func CheckSpanInvariants(root *ast.Root, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}

	// 1) unit span sanity
	if root.Span.End <= root.Span.Start {
		return fmt.Errorf("unit span is empty: %v", root.Span)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("unit span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("unit span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	// 2) item spans within unit span; 3) unit covers union
	var union source.Span
	var haveItem bool
	for i, item := range root.Items {
		if item == nil {
			return fmt.Errorf("nil item at %d", i)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < root.Span.Start || sp.End > root.Span.End {
			return fmt.Errorf("item span %v is outside unit span %v", sp, root.Span)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}
	if haveItem && (union.Start < root.Span.Start || union.End > root.Span.End) {
		return fmt.Errorf("unit span %v does not cover union of items %v", root.Span, union)
	}
	return nil
}

// CheckRibInvariants verifies the identity table of a lowered context:
// 1) every identity maps back to a syntax node and is found again by Lookup
// 2) a parent rib is strictly smaller than its child, roots are modules or packages
// 3) a lowered node reports the identity it is stored under
func CheckRibInvariants(cx *hir.Context) error {
	if cx == nil {
		return fmt.Errorf("nil context")
	}
	for i := 1; i <= cx.Len(); i++ {
		id := hir.NodeID(i)
		node, ok := cx.AstOf(id)
		if !ok {
			return fmt.Errorf("id %d has no syntax node", id)
		}
		if back, ok := cx.Lookup(node); !ok || back != id {
			return fmt.Errorf("id %d (%s) looks up as %d", id, node.Kind, back)
		}
		parent := cx.Parent(id)
		switch {
		case parent == hir.NoNodeID:
			if node.Kind != hir.AstModule && node.Kind != hir.AstPackage {
				return fmt.Errorf("id %d (%s) has no rib", id, node.Kind)
			}
		case parent >= id:
			return fmt.Errorf("id %d (%s) has rib %d not before it", id, node.Kind, parent)
		}
		if n := cx.Node(id); n != nil && n.NodeID() != id {
			return fmt.Errorf("node stored at %d reports id %d", id, n.NodeID())
		}
	}
	return nil
}
