package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/internal/utils"
	"golang.org/x/exp/slices"
)

type ownershipNode struct {
	parent   api.HandleID
	children []api.HandleID
}

// ownershipGraph is the forest of parent-child ownership links between live objects, indexed by id.
// Destroying a node detaches its whole subtree.
type ownershipGraph struct {
	mutex utils.OptionalRWMutex
	nodes *swiss.Map[api.HandleID, *ownershipNode]
}

func newOwnershipGraph(useMutex bool) *ownershipGraph {
	return &ownershipGraph{
		mutex: utils.OptionalRWMutex{UseMutex: useMutex},
		nodes: swiss.NewMap[api.HandleID, *ownershipNode](42),
	}
}

// Add inserts a node for id, linked under parent unless parent is api.NullHandleID
func (g *ownershipGraph) Add(id, parent api.HandleID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.nodes.Has(id) {
		return errors.Wrapf(api.ErrDuplicateCreation, "id %d is already in the ownership graph", id)
	}

	node := &ownershipNode{}
	if parent != api.NullHandleID {
		parentNode, ok := g.nodes.Get(parent)
		if !ok {
			return errors.Wrapf(api.ErrNotFound, "owner id %d", parent)
		}
		parentNode.children = append(parentNode.children, id)
		node.parent = parent
	}

	g.nodes.Put(id, node)
	return nil
}

func (g *ownershipGraph) Parent(id api.HandleID) api.HandleID {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return api.NullHandleID
	}
	return node.parent
}

func (g *ownershipGraph) Children(id api.HandleID) []api.HandleID {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return nil
	}
	return slices.Clone(node.children)
}

// Remove unlinks id from its parent and removes it along with all of its descendants. The removed ids
// are returned with every descendant ahead of its parent, ending with id itself.
func (g *ownershipGraph) Remove(id api.HandleID) []api.HandleID {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return nil
	}

	if node.parent != api.NullHandleID {
		parentNode, ok := g.nodes.Get(node.parent)
		if ok {
			index := slices.Index(parentNode.children, id)
			if index >= 0 {
				parentNode.children = slices.Delete(parentNode.children, index, index+1)
			}
		}
	}

	return g.removeSubtree(id, nil)
}

// RemoveChildren removes every descendant of id while keeping id itself. The removed ids are returned
// with every descendant ahead of its parent.
func (g *ownershipGraph) RemoveChildren(id api.HandleID) []api.HandleID {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return nil
	}

	var removed []api.HandleID
	for _, child := range node.children {
		removed = g.removeSubtree(child, removed)
	}
	node.children = nil

	return removed
}

func (g *ownershipGraph) removeSubtree(id api.HandleID, removed []api.HandleID) []api.HandleID {
	node, ok := g.nodes.Get(id)
	if !ok {
		return removed
	}

	for _, child := range node.children {
		removed = g.removeSubtree(child, removed)
	}

	g.nodes.Delete(id)
	return append(removed, id)
}

func (g *ownershipGraph) Count() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.nodes.Count()
}

// Validate verifies that every parent and child link is mirrored on the other end, and that isLive
// holds for every node
func (g *ownershipGraph) Validate(isLive func(id api.HandleID) bool) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var err error
	g.nodes.Iter(func(id api.HandleID, node *ownershipNode) bool {
		if !isLive(id) {
			err = errors.Newf("ownership graph holds id %d, which is not live", id)
			return true
		}

		if node.parent != api.NullHandleID {
			parentNode, ok := g.nodes.Get(node.parent)
			if !ok {
				err = errors.Newf("id %d is owned by id %d, which is not in the ownership graph", id, node.parent)
				return true
			}
			if !slices.Contains(parentNode.children, id) {
				err = errors.Newf("id %d is owned by id %d, which does not list it as a child", id, node.parent)
				return true
			}
		}

		for _, child := range node.children {
			childNode, ok := g.nodes.Get(child)
			if !ok || childNode.parent != id {
				err = errors.Newf("id %d lists id %d as a child, which is not owned by it", id, child)
				return true
			}
		}
		return false
	})

	return err
}
