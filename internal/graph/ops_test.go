package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// navFixture builds a small site: a server root whose sections link two
// nav subpages, one of which links further down.
func navFixture() *GraphOps {
	g := NewContentGraph("server", "base")
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "server", Layout: "server"},
		Title: "awake.fm",
		Content: []Block{
			&SectionBlock{Type: BlockSection, Blocks: []Block{
				&SubpageBlock{Type: BlockSubpage, Ref: "artists", Nav: true},
				&SubpageBlock{Type: BlockSubpage, Ref: "pages/about", Label: "About", Nav: true},
				&SubpageBlock{Type: BlockSubpage, Ref: "pages/hidden", Nav: false},
			}},
		},
	})
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "artists", DisplayName: "Artists"},
		Title: "All Artists",
		Content: []Block{
			&SubpageBlock{Type: BlockSubpage, Ref: "artists/zol", Nav: true},
		},
	})
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "artists/zol", ParentPath: "artists", Slug: "zol"},
		Title: "ZOL",
	})
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "pages/about"}, Title: "About Us"})
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "pages/hidden"}, Title: "Hidden"})

	nav := NavConfig{Items: []NavEntry{
		{Ref: ".", Label: "Home"},
		{Ref: "artists", AutoChildren: AutoChildrenFromSubpages},
		{Ref: "pages/missing"},
	}}
	return NewGraphOps(g, nav, nil)
}

func TestGetNav(t *testing.T) {
	payload := navFixture().GetNav()

	// The missing ref is dropped.
	require.Len(t, payload.Items, 2)

	home := payload.Items[0]
	assert.Equal(t, "Home", home.Label)
	assert.Equal(t, "/", home.Href)
	assert.Empty(t, home.Children)

	artists := payload.Items[1]
	assert.Equal(t, "Artists", artists.Label)
	assert.Equal(t, "/artists", artists.Href)
	require.Len(t, artists.Children, 1)
	assert.Equal(t, "ZOL", artists.Children[0].Label)
	assert.Equal(t, "/artists/zol", artists.Children[0].Href)
}

func TestGetNav_CycleTerminates(t *testing.T) {
	g := NewContentGraph("server", "")
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "server"},
		Title: "Root",
		Content: []Block{
			&SubpageBlock{Type: BlockSubpage, Ref: "pages/a", Nav: true},
		},
	})
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "pages/a"},
		Title: "A",
		Content: []Block{
			&SubpageBlock{Type: BlockSubpage, Ref: "pages/b", Nav: true},
		},
	})
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "pages/b"},
		Title: "B",
		Content: []Block{
			&SubpageBlock{Type: BlockSubpage, Ref: "pages/a", Nav: true},
		},
	})
	ops := NewGraphOps(g, NavConfig{Items: []NavEntry{
		{Ref: ".", AutoChildren: AutoChildrenFromSubpages},
	}}, nil)

	payload := ops.GetNav()
	require.Len(t, payload.Items, 1)
	a := payload.Items[0].Children
	require.Len(t, a, 1)
	b := a[0].Children
	require.Len(t, b, 1)
	// The revisit of pages/a ends the walk.
	assert.Empty(t, b[0].Children)
}

func TestResolveRef(t *testing.T) {
	ops := navFixture()

	p, ok := ops.ResolveRef(".")
	require.True(t, ok)
	assert.Equal(t, "server", p)

	p, ok = ops.ResolveRef("./")
	require.True(t, ok)
	assert.Equal(t, "server", p)

	p, ok = ops.ResolveRef("artists/zol")
	require.True(t, ok)
	assert.Equal(t, "artists/zol", p)

	_, ok = ops.ResolveRef("no/such/page")
	assert.False(t, ok)
}

func TestGetPage_EmptyPathServesRoot(t *testing.T) {
	payload, err := navFixture().GetPage("")
	require.NoError(t, err)
	assert.Equal(t, "server", payload.Path)
	assert.Equal(t, "awake.fm", payload.Title)
}

func TestGetPage_MissingPath(t *testing.T) {
	_, err := navFixture().GetPage("pages/nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetPage_EffectiveTheme(t *testing.T) {
	g := NewContentGraph("server", "base")
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists", Theme: "dark"}})
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists/zol", ParentPath: "artists"}})
	ops := NewGraphOps(g, NavConfig{}, nil)

	payload, err := ops.GetPage("artists/zol")
	require.NoError(t, err)
	assert.Equal(t, "dark", payload.Meta.EffectiveTheme)
	assert.Empty(t, payload.Meta.Theme)
	assert.NotNil(t, payload.Meta.Effects)
}

func TestGetPage_HydratesCollections(t *testing.T) {
	g := NewContentGraph("server", "")
	g.RegisterNode(&ContentNode{
		Meta: NodeMeta{Path: "server"},
		Content: []Block{
			&SectionBlock{Type: BlockSection, ID: "roster", Blocks: []Block{
				&CollectionBlock{Type: BlockCollection, Source: SourceFolder, Path: "artists"},
			}},
		},
	})
	g.RegisterNode(&ContentNode{
		Meta:    NodeMeta{Path: "artists/zol", ParentPath: "artists"},
		Preview: &NodePreview{Title: "ZOL"},
	})
	ops := NewGraphOps(g, NavConfig{}, nil)

	payload, err := ops.GetPage("server")
	require.NoError(t, err)
	require.Len(t, payload.Content, 1)

	section, ok := payload.Content[0].(*hydratedSection)
	require.True(t, ok)
	require.Len(t, section.Blocks, 1)

	col, ok := section.Blocks[0].(*HydratedCollection)
	require.True(t, ok)
	require.Len(t, col.Items, 1)
	assert.Equal(t, "artists/zol", col.Items[0].(*NodeItem).Path)
}

func TestGetPage_NonCollectionBlocksPassThrough(t *testing.T) {
	g := NewContentGraph("server", "")
	hero := &HeroBlock{Type: BlockHero, Heading: "hi"}
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "server"}, Content: []Block{hero}})
	ops := NewGraphOps(g, NavConfig{}, nil)

	payload, err := ops.GetPage("server")
	require.NoError(t, err)
	require.Len(t, payload.Content, 1)
	assert.Same(t, hero, payload.Content[0].(*HeroBlock))
}
