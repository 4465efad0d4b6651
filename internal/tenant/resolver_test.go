package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
	"github.com/tenantkit/tenantkit/internal/store/memory"
)

func seedOrg(t *testing.T, orgs store.OrganizationStore, id string, parentID string) {
	t.Helper()

	org := &models.Organization{
		ID:        id,
		Name:      "org " + id,
		Status:    models.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if parentID != "" {
		org.ParentID = &parentID
	}
	require.NoError(t, orgs.Create(context.Background(), org))
}

func TestResolver_Tree(t *testing.T) {
	t.Run("subtree with nested children", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")
		seedOrg(t, orgs, "TDE", "TEU")
		seedOrg(t, orgs, "TUS", "THQ")

		resolver := NewResolver(orgs)

		tree, err := resolver.Tree(context.Background(), "THQ")
		require.NoError(t, err)
		require.Equal(t, "THQ", tree.ID)
		require.Len(t, tree.Children, 2)

		var eu *models.OrganizationTree
		for _, c := range tree.Children {
			if c.ID == "TEU" {
				eu = c
			}
		}
		require.NotNil(t, eu)
		require.Len(t, eu.Children, 1)
		require.Equal(t, "TDE", eu.Children[0].ID)
	})

	t.Run("leaf yields node without children", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")

		resolver := NewResolver(orgs)

		tree, err := resolver.Tree(context.Background(), "TEU")
		require.NoError(t, err)
		require.Equal(t, "TEU", tree.ID)
		require.Empty(t, tree.Children)
	})

	t.Run("missing root returns not found", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()

		resolver := NewResolver(orgs)

		_, err := resolver.Tree(context.Background(), "nope")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})

	t.Run("nodes never embed a live parent pointer", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")

		resolver := NewResolver(orgs)

		tree, err := resolver.Tree(context.Background(), "THQ")
		require.NoError(t, err)
		require.Nil(t, tree.ParentID)
		require.NotNil(t, tree.Children[0].ParentID)
		require.Equal(t, "THQ", *tree.Children[0].ParentID)
	})
}

func TestResolver_TreeIDs(t *testing.T) {
	t.Run("flattens subtree root first", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")
		seedOrg(t, orgs, "TDE", "TEU")

		resolver := NewResolver(orgs)

		ids, err := resolver.TreeIDs(context.Background(), "THQ")
		require.NoError(t, err)
		require.Equal(t, []string{"THQ", "TEU", "TDE"}, ids)
	})

	t.Run("leaf yields singleton", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")

		resolver := NewResolver(orgs)

		ids, err := resolver.TreeIDs(context.Background(), "TEU")
		require.NoError(t, err)
		require.Equal(t, []string{"TEU"}, ids)
	})

	t.Run("sibling subtrees stay disjoint", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "THQ", "")
		seedOrg(t, orgs, "TEU", "THQ")
		seedOrg(t, orgs, "TUS", "THQ")
		seedOrg(t, orgs, "TDE", "TEU")

		resolver := NewResolver(orgs)

		ids, err := resolver.TreeIDs(context.Background(), "TUS")
		require.NoError(t, err)
		require.Equal(t, []string{"TUS"}, ids)
		require.NotContains(t, ids, "TDE")
	})

	t.Run("terminates on a stored cycle", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "A", "")
		seedOrg(t, orgs, "B", "A")

		// Corrupt the data directly so A and B point at each other.
		a, err := orgs.Get(context.Background(), "A")
		require.NoError(t, err)
		parent := "B"
		a.ParentID = &parent
		require.NoError(t, orgs.Update(context.Background(), a))

		resolver := NewResolver(orgs)

		ids, err := resolver.TreeIDs(context.Background(), "A")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"A", "B"}, ids)
	})
}

func TestResolver_IsDescendant(t *testing.T) {
	orgs := memory.NewOrganizationStore()
	seedOrg(t, orgs, "THQ", "")
	seedOrg(t, orgs, "TEU", "THQ")
	seedOrg(t, orgs, "TDE", "TEU")
	seedOrg(t, orgs, "TUS", "THQ")

	resolver := NewResolver(orgs)

	t.Run("direct child", func(t *testing.T) {
		ok, err := resolver.IsDescendant(context.Background(), "THQ", "TEU")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("transitive descendant", func(t *testing.T) {
		ok, err := resolver.IsDescendant(context.Background(), "THQ", "TDE")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("root is not its own descendant", func(t *testing.T) {
		ok, err := resolver.IsDescendant(context.Background(), "THQ", "THQ")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("sibling branch is not a descendant", func(t *testing.T) {
		ok, err := resolver.IsDescendant(context.Background(), "TUS", "TDE")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("missing root returns not found", func(t *testing.T) {
		_, err := resolver.IsDescendant(context.Background(), "nope", "TEU")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})
}
