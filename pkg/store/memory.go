package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// bomState is one BOM's records plus its optimistic-concurrency version.
type bomState struct {
	productID string
	version   int64
	nodes     []bom.ComponentNode
}

// Memory is an in-memory node store guarded by a mutex. It is the reference
// Store implementation and the backing for tests and the file store.
type Memory struct {
	mu     sync.RWMutex
	limits bom.Limits
	boms   map[string]*bomState
	edges  []guard.Edge
}

// NewMemory creates an empty in-memory store using the given engine limits
// for pre-commit validation.
func NewMemory(limits bom.Limits) *Memory {
	return &Memory{
		limits: limits.WithDefaults(),
		boms:   make(map[string]*bomState),
	}
}

// Seed loads a snapshot's records and product edges into the store.
// Records are validated at the boundary and must assemble into a valid tree.
func (m *Memory) Seed(s *snapshot.Snapshot) error {
	if err := bom.ValidateNodes(s.Nodes); err != nil {
		return err
	}
	if _, err := tree.Build(s.Nodes, m.limits); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.boms[s.BOMID] = &bomState{
		productID: s.ProductID,
		version:   s.Version,
		nodes:     slices.Clone(s.Nodes),
	}
	m.edges = append(m.edges, s.ProductEdges...)
	return nil
}

// ListItems implements Store.
func (m *Memory) ListItems(_ context.Context, bomID string) ([]bom.ComponentNode, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.boms[bomID]
	if !ok {
		return nil, 0, errors.New(errors.ErrCodeBOMNotFound, "bom %s not found", bomID)
	}
	return slices.Clone(st.nodes), st.version, nil
}

// ListProductEdges implements Store. It returns the edges of the sub-graph
// reachable from productID, which is exactly what the cycle guard traverses.
func (m *Memory) ListProductEdges(_ context.Context, productID string) ([]guard.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	adj := make(map[string][]guard.Edge)
	for _, e := range m.edges {
		adj[e.ProductID] = append(adj[e.ProductID], e)
	}

	var out []guard.Edge
	visited := map[string]bool{productID: true}
	queue := []string{productID}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, e := range adj[p] {
			out = append(out, e)
			if !visited[e.ComponentProductID] {
				visited[e.ComponentProductID] = true
				queue = append(queue, e.ComponentProductID)
			}
		}
	}
	return out, nil
}

// Attach implements Store.
func (m *Memory) Attach(_ context.Context, req AttachRequest) (bom.ComponentNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.boms[req.BOMID]
	if !ok {
		return bom.ComponentNode{}, errors.New(errors.ErrCodeBOMNotFound, "bom %s not found", req.BOMID)
	}
	if st.version != req.ExpectedVersion {
		return bom.ComponentNode{}, errors.New(errors.ErrCodeVersionConflict,
			"bom %s is at version %d, snapshot was read at %d", req.BOMID, st.version, req.ExpectedVersion)
	}

	n := req.Node
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.BOMID = req.BOMID
	n.ProductID = req.OwnerProductID
	if err := bom.ValidateNode(n); err != nil {
		return bom.ComponentNode{}, err
	}

	// Validate against the current records, then gate on the cycle guard
	// right before commit.
	t, err := tree.Build(st.nodes, m.limits)
	if err != nil {
		return bom.ComponentNode{}, err
	}
	dec := guard.CanAttach(t, guard.NewGraph(m.edges), guard.Request{
		OwnerProductID:     req.OwnerProductID,
		ParentNodeID:       n.ParentID,
		ComponentProductID: n.ComponentID,
	}, m.limits)
	if !dec.OK {
		return bom.ComponentNode{}, dec.Err
	}

	// The new record must still assemble: sibling sequence stays unique,
	// budgets hold.
	next := append(slices.Clone(st.nodes), n)
	if _, err := tree.Build(next, m.limits); err != nil {
		return bom.ComponentNode{}, err
	}

	st.nodes = next
	st.version++
	if n.ComponentType == bom.SubAssembly {
		m.edges = append(m.edges, guard.Edge{
			ProductID:          req.OwnerProductID,
			ComponentProductID: n.ComponentID,
		})
	}
	return n, nil
}

// Update implements Store.
func (m *Memory) Update(_ context.Context, req UpdateRequest) (bom.ComponentNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.boms[req.BOMID]
	if !ok {
		return bom.ComponentNode{}, errors.New(errors.ErrCodeBOMNotFound, "bom %s not found", req.BOMID)
	}
	if st.version != req.ExpectedVersion {
		return bom.ComponentNode{}, errors.New(errors.ErrCodeVersionConflict,
			"bom %s is at version %d, snapshot was read at %d", req.BOMID, st.version, req.ExpectedVersion)
	}

	at := slices.IndexFunc(st.nodes, func(n bom.ComponentNode) bool { return n.ID == req.Node.ID })
	if at < 0 {
		return bom.ComponentNode{}, errors.New(errors.ErrCodeNodeNotFound, "node %s not found in bom %s", req.Node.ID, req.BOMID)
	}
	if err := bom.ValidateNode(req.Node); err != nil {
		return bom.ComponentNode{}, err
	}

	// Reparenting or swapping the component is an attach in disguise:
	// re-validate through the guard.
	prev := st.nodes[at]
	if req.Node.ParentID != prev.ParentID || req.Node.ComponentID != prev.ComponentID {
		t, err := tree.Build(st.nodes, m.limits)
		if err != nil {
			return bom.ComponentNode{}, err
		}
		dec := guard.CanAttach(t, guard.NewGraph(m.edges), guard.Request{
			OwnerProductID:     req.OwnerProductID,
			ParentNodeID:       req.Node.ParentID,
			ComponentProductID: req.Node.ComponentID,
		}, m.limits)
		if !dec.OK {
			return bom.ComponentNode{}, dec.Err
		}
	}

	next := slices.Clone(st.nodes)
	next[at] = req.Node
	if _, err := tree.Build(next, m.limits); err != nil {
		return bom.ComponentNode{}, err
	}

	st.nodes = next
	st.version++
	m.reconcileEdges(req.OwnerProductID, prev, req.Node)
	return req.Node, nil
}

// reconcileEdges retires the product edge recorded for a sub-assembly when an
// update changes its component ID or type, and records the replacement. One
// edge instance is removed per retired occurrence, so duplicate attachments
// keep their remaining edges.
func (m *Memory) reconcileEdges(ownerProductID string, prev, updated bom.ComponentNode) {
	prevSub := prev.ComponentType == bom.SubAssembly
	updatedSub := updated.ComponentType == bom.SubAssembly
	if prevSub == updatedSub && prev.ComponentID == updated.ComponentID {
		return
	}

	if prevSub {
		at := slices.Index(m.edges, guard.Edge{
			ProductID:          ownerProductID,
			ComponentProductID: prev.ComponentID,
		})
		if at >= 0 {
			m.edges = slices.Delete(m.edges, at, at+1)
		}
	}
	if updatedSub {
		m.edges = append(m.edges, guard.Edge{
			ProductID:          ownerProductID,
			ComponentProductID: updated.ComponentID,
		})
	}
}

// Deactivate implements Store.
func (m *Memory) Deactivate(_ context.Context, bomID, nodeID string, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.boms[bomID]
	if !ok {
		return errors.New(errors.ErrCodeBOMNotFound, "bom %s not found", bomID)
	}
	if st.version != expectedVersion {
		return errors.New(errors.ErrCodeVersionConflict,
			"bom %s is at version %d, snapshot was read at %d", bomID, st.version, expectedVersion)
	}

	at := slices.IndexFunc(st.nodes, func(n bom.ComponentNode) bool { return n.ID == nodeID })
	if at < 0 {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s not found in bom %s", nodeID, bomID)
	}

	st.nodes = slices.Clone(st.nodes)
	st.nodes[at].IsActive = false
	st.version++
	return nil
}

// SnapshotBOM exports one BOM's current state, including the product edges
// reachable from its owning product.
func (m *Memory) SnapshotBOM(bomID string) (*snapshot.Snapshot, error) {
	m.mu.RLock()
	st, ok := m.boms[bomID]
	if !ok {
		m.mu.RUnlock()
		return nil, errors.New(errors.ErrCodeBOMNotFound, "bom %s not found", bomID)
	}
	s := &snapshot.Snapshot{
		BOMID:     bomID,
		ProductID: st.productID,
		Version:   st.version,
		Nodes:     slices.Clone(st.nodes),
	}
	m.mu.RUnlock()

	edges, err := m.ListProductEdges(context.Background(), s.ProductID)
	if err != nil {
		return nil, err
	}
	s.ProductEdges = edges
	return s, nil
}
