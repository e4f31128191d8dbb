// Package guard validates that attaching a component under a parent cannot
// create a structural cycle, either within one tree or across the
// product-BOM reference graph.
//
// # Checks
//
// [CanAttach] runs two checks:
//
//  1. Local: the component must not already be an ancestor of the target
//     parent within the current tree.
//  2. Global: starting from the component's product, a breadth-first search
//     over the product graph ("product P's BOM contains product Q") must not
//     reach the owning product. A sub-assembly's own BOM transitively
//     containing the owner would close a cycle the moment it is attached.
//
// A visited set keeps the search linear even when the external graph already
// contains cycles, and the traversal budget turns pathological graphs into a
// fail-safe denial rather than a hang. CanAttach is pure: it never mutates
// the tree or the graph, so callers may re-run it freely under optimistic
// concurrency.
package guard

import (
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// Edge is one product-BOM reference: the BOM of ProductID contains
// ComponentProductID as a sub-assembly.
type Edge struct {
	ProductID          string `json:"product_id"`
	ComponentProductID string `json:"component_product_id"`
}

// Graph is the product-to-product reference graph, indexed for traversal.
type Graph struct {
	adj map[string][]string
}

// NewGraph indexes product reference edges. Duplicate edges are kept; they
// do not affect reachability.
func NewGraph(edges []Edge) *Graph {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.ProductID] = append(adj[e.ProductID], e.ComponentProductID)
	}
	return &Graph{adj: adj}
}

// Components returns the product IDs referenced by the given product's BOM.
// The slice is live; treat it as read-only.
func (g *Graph) Components(productID string) []string { return g.adj[productID] }

// Request describes a proposed attach operation.
type Request struct {
	// OwnerProductID is the product whose BOM gains the component.
	OwnerProductID string `json:"owner_product_id"`

	// ParentNodeID is the node the component attaches under.
	// Empty attaches at the root.
	ParentNodeID string `json:"parent_node_id,omitempty"`

	// ComponentProductID is the product being attached.
	ComponentProductID string `json:"component_product_id"`
}

// Decision is the outcome of a cycle check. When OK is false, Err carries
// the typed reason and Path the offending product chain for diagnostics.
type Decision struct {
	OK   bool     `json:"ok"`
	Path []string `json:"path,omitempty"`
	Err  error    `json:"-"`
}

// deny builds a denial with the offending path.
func deny(path []string, err error) Decision {
	return Decision{Path: path, Err: err}
}

// CanAttach reports whether attaching req.ComponentProductID under
// req.ParentNodeID in the owner's tree is structurally safe.
//
// The check never mutates its inputs. Denials carry one of the codes
// STRUCTURAL_CYCLE, TRAVERSAL_BUDGET_EXCEEDED, NODE_NOT_FOUND, or
// INVALID_INPUT (attaching under a leaf-only component). Complexity is
// O(V+E) over the reachable product sub-graph per call.
func CanAttach(t *tree.Tree, g *Graph, req Request, limits bom.Limits) Decision {
	limits = limits.WithDefaults()

	if req.OwnerProductID == "" || req.ComponentProductID == "" {
		return deny(nil, errors.New(errors.ErrCodeInvalidInput,
			"owner and component product IDs are required"))
	}

	if req.ComponentProductID == req.OwnerProductID {
		return deny([]string{req.OwnerProductID, req.ComponentProductID},
			errors.New(errors.ErrCodeStructuralCycle,
				"product %s cannot contain itself", req.OwnerProductID))
	}

	if req.ParentNodeID != "" {
		if d := localCheck(t, req); !d.OK {
			return d
		}
	}

	return reachabilityCheck(g, req, limits)
}

// localCheck rejects the attach when the component is already on the
// ancestor chain of the target parent, parent included.
func localCheck(t *tree.Tree, req Request) Decision {
	pi, ok := t.Index(req.ParentNodeID)
	if !ok {
		return deny(nil, errors.New(errors.ErrCodeNodeNotFound,
			"parent node %s not found", req.ParentNodeID))
	}

	parent := t.Node(pi)
	if parent.ComponentType.IsLeafOnly() {
		return deny(nil, errors.New(errors.ErrCodeInvalidInput,
			"parent %s is a leaf-only %s component", parent.ID, parent.ComponentType))
	}

	// Chain from parent up to the root, parent first.
	chain := append([]int{pi}, t.Ancestors(pi)...)
	for k, idx := range chain {
		if t.Node(idx).ComponentID != req.ComponentProductID {
			continue
		}
		// Path from the offending ancestor down to the parent, closed by
		// the component being attached.
		path := make([]string, 0, k+2)
		for j := k; j >= 0; j-- {
			path = append(path, t.Node(chain[j]).ComponentID)
		}
		path = append(path, req.ComponentProductID)
		return deny(path, errors.New(errors.ErrCodeStructuralCycle,
			"component %s is already an ancestor of node %s",
			req.ComponentProductID, req.ParentNodeID))
	}

	return Decision{OK: true}
}

// reachabilityCheck rejects the attach when the owner product is reachable
// from the component over the product graph.
func reachabilityCheck(g *Graph, req Request, limits bom.Limits) Decision {
	if g == nil {
		return Decision{OK: true}
	}

	type hop struct {
		id   string
		prev int // index into hops, -1 for the origin
	}
	hops := []hop{{id: req.ComponentProductID, prev: -1}}
	visited := map[string]bool{req.ComponentProductID: true}

	for at := 0; at < len(hops); at++ {
		if len(hops) > limits.MaxNodes {
			return deny(nil, errors.New(errors.ErrCodeBudgetExceeded,
				"product graph traversal exceeded the %d node budget", limits.MaxNodes))
		}

		for _, next := range g.adj[hops[at].id] {
			if visited[next] {
				continue
			}
			visited[next] = true
			hops = append(hops, hop{id: next, prev: at})

			if next != req.OwnerProductID {
				continue
			}
			// Reconstruct component -> ... -> owner.
			var path []string
			for j := len(hops) - 1; j >= 0; j = hops[j].prev {
				path = append(path, hops[j].id)
			}
			reverse(path)
			return deny(path, errors.New(errors.ErrCodeStructuralCycle,
				"product %s is reachable from component %s",
				req.OwnerProductID, req.ComponentProductID))
		}
	}

	return Decision{OK: true}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
