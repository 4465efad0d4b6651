// Package tenant reconstructs the organization tree and resolves
// authorization scopes from it. The tree is rebuilt from the store on every
// resolution; nothing is cached in-process.
package tenant

import (
	"context"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// Resolver turns a tenant root ID into its subtree or the flattened set of
// tenant IDs reachable from it. Nodes are held in an arena keyed by ID with
// children derived from parent back-references, so the recursive tree view
// never embeds live parent pointers.
type Resolver struct {
	orgs store.OrganizationStore
}

// NewResolver creates a resolver reading from the given organization store.
func NewResolver(orgs store.OrganizationStore) *Resolver {
	return &Resolver{orgs: orgs}
}

// Tree returns the subtree rooted at rootID, unbounded depth.
// Returns store.ErrOrganizationNotFound if the root doesn't exist.
func (r *Resolver) Tree(ctx context.Context, rootID string) (*models.OrganizationTree, error) {
	root, err := r.orgs.Get(ctx, rootID)
	if err != nil {
		return nil, err
	}

	byParent, err := r.childIndex(ctx)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{root.ID: true}
	return buildTree(root, byParent, visited), nil
}

// TreeIDs returns the IDs of the subtree rooted at rootID, depth-first with
// the root first. A leaf yields a singleton list. The traversal tracks
// visited IDs so it terminates even if the stored data contains a cycle.
// Returns store.ErrOrganizationNotFound if the root doesn't exist.
func (r *Resolver) TreeIDs(ctx context.Context, rootID string) ([]string, error) {
	tree, err := r.Tree(ctx, rootID)
	if err != nil {
		return nil, err
	}
	return flatten(nil, tree), nil
}

// IsDescendant reports whether candidateID appears strictly below rootID,
// the root itself excluded. Used for circular-reference checks when a parent
// link changes.
func (r *Resolver) IsDescendant(ctx context.Context, rootID, candidateID string) (bool, error) {
	ids, err := r.TreeIDs(ctx, rootID)
	if err != nil {
		return false, err
	}
	for i, id := range ids {
		if i > 0 && id == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Resolver) childIndex(ctx context.Context) (map[string][]*models.Organization, error) {
	all, err := r.orgs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]*models.Organization)
	for _, org := range all {
		if org.ParentID == nil {
			continue
		}
		byParent[*org.ParentID] = append(byParent[*org.ParentID], org)
	}
	return byParent, nil
}

func buildTree(node *models.Organization, byParent map[string][]*models.Organization, visited map[string]bool) *models.OrganizationTree {
	tree := &models.OrganizationTree{Organization: *node}
	for _, child := range byParent[node.ID] {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		tree.Children = append(tree.Children, buildTree(child, byParent, visited))
	}
	return tree
}

func flatten(ids []string, tree *models.OrganizationTree) []string {
	ids = append(ids, tree.ID)
	for _, child := range tree.Children {
		ids = flatten(ids, child)
	}
	return ids
}
