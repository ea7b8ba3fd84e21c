package ingest

import (
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awakefm/artist-node/internal/graph"
)

func writeFiles(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for p, body := range files {
		require.NoError(t, util.WriteFile(fs, p, []byte(body), 0o644))
	}
}

func contentFixture(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		"_meta.yaml": "root_content: server\ntheme: base\n",
		"server/index.yaml": `title: awake.fm
tagline: night signal
background: assets/starfield.jpg
content:
  - type: hero
    heading: Welcome
    background: assets/hero.jpg
  - type: collection
    source: folder
    path: artists
`,
		"artists/index.yaml": "title: All Artists\n",
		"artists/_meta.yaml": "display_name: Artists\ncollection_order:\n  - zol\n  - dissolvr\n",
		"artists/zol/index.yaml": `title: ZOL
preview:
  subtitle: drum & bass
`,
		"artists/zol/_meta.yaml":      "display_name: ZOL\ntheme: neon\n",
		"artists/dissolvr/index.yaml": "title: DISSOLVR\n",
		// No index.yaml here: the directory is skipped but its children
		// are still visited.
		"artists/dissolvr/music/tracks/whirl/index.yaml": "title: Whirl\n",
	})
	return fs
}

func TestBuilder_Build(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)

	assert.Equal(t, "server", g.RootContentPath())
	assert.Equal(t, "base", g.RootTheme())
	assert.Equal(t, 5, g.Len())

	root, err := g.GetNode("server")
	require.NoError(t, err)
	assert.Equal(t, "awake.fm", root.Title)
	assert.Equal(t, "server", root.Meta.Layout)
	assert.Empty(t, root.Meta.ParentPath)
	assert.Equal(t, "/assets/starfield.jpg", root.Background)

	zol, err := g.GetNode("artists/zol")
	require.NoError(t, err)
	assert.Equal(t, "artists", zol.Meta.ParentPath)
	assert.Equal(t, "artist", zol.Meta.Layout)
	assert.Equal(t, "neon", zol.Meta.Theme)
	assert.Equal(t, "ZOL", zol.Meta.DisplayName)
}

func TestBuilder_FolderMetaOrderAndLayoutInference(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)

	artists, err := g.GetNode("artists")
	require.NoError(t, err)
	assert.Equal(t, []string{"zol", "dissolvr"}, artists.Meta.CollectionOrder)
	assert.Equal(t, "page", artists.Meta.Layout)

	whirl, err := g.GetNode("artists/dissolvr/music/tracks/whirl")
	require.NoError(t, err)
	assert.Equal(t, "track", whirl.Meta.Layout)
	assert.Equal(t, "artists/dissolvr/music/tracks", whirl.Meta.ParentPath)
}

func TestBuilder_BlocksDecodedAndNormalized(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)

	root, err := g.GetNode("server")
	require.NoError(t, err)
	require.Len(t, root.Content, 2)

	hero, ok := root.Content[0].(*graph.HeroBlock)
	require.True(t, ok)
	assert.Equal(t, "/assets/hero.jpg", hero.Background)

	col, ok := root.Content[1].(*graph.CollectionBlock)
	require.True(t, ok)
	assert.Equal(t, "artists", col.Path)
}

func TestBuilder_PreviewTitleDefaultsToDisplayName(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)

	zol, err := g.GetNode("artists/zol")
	require.NoError(t, err)
	require.NotNil(t, zol.Preview)
	assert.Equal(t, "ZOL", zol.Preview.Title)
	assert.Equal(t, "drum & bass", zol.Preview.Subtitle)
}

func TestBuilder_ArtistClassification(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"artists/dissolvr", "artists/zol"}, g.Artists())
}

func TestBuilder_ChildIndex(t *testing.T) {
	g, err := NewBuilder(contentFixture(t)).Build()
	require.NoError(t, err)

	children, ok := g.Children("artists")
	require.True(t, ok)
	// Lexical walk order.
	assert.Equal(t, []string{"artists/dissolvr", "artists/zol"}, children)
}

func TestBuilder_MissingRootMetaUsesDefaults(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		"server/index.yaml": "title: bare\n",
	})
	g, err := NewBuilder(fs).Build()
	require.NoError(t, err)
	assert.Equal(t, "server", g.RootContentPath())
	assert.Empty(t, g.RootTheme())
}

func TestBuilder_BadYAMLFails(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		"server/index.yaml": "title: [unclosed\n",
	})
	_, err := NewBuilder(fs).Build()
	assert.Error(t, err)
}

func TestInferLayout(t *testing.T) {
	cases := map[string]string{
		"":                                  "server",
		"server":                            "server",
		"artists/zol":                       "artist",
		"artists/zol/music/albums/eon":      "album",
		"artists/zol/music/tracks/atmos-77": "track",
		"artists/zol/music/sets/bassdrive":  "set",
		"pages/about":                       "page",
	}
	for in, want := range cases {
		assert.Equal(t, want, inferLayout(in), "inferLayout(%q)", in)
	}
}

func TestNormalizeMediaPath(t *testing.T) {
	assert.Equal(t, "/assets/bg.jpg", NormalizeMediaPath("assets/bg.jpg"))
	assert.Equal(t, "/assets/bg.jpg", NormalizeMediaPath("/assets/bg.jpg"))
	assert.Equal(t, "/a/b.jpg", NormalizeMediaPath(`a\b.jpg`))
	assert.Equal(t, "https://cdn.example/bg.jpg", NormalizeMediaPath("https://cdn.example/bg.jpg"))
	assert.Equal(t, "", NormalizeMediaPath(""))
}

func TestLoadNavConfig(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		"server/nav.yaml": `items:
  - ref: "."
    label: Home
  - ref: artists
    auto_children: from_subpages
`,
	})
	cfg, err := LoadNavConfig(fs, "server/nav.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Items, 2)
	assert.Equal(t, ".", cfg.Items[0].Ref)
	assert.Equal(t, "Home", cfg.Items[0].Label)
	assert.Equal(t, "from_subpages", cfg.Items[1].AutoChildren)
}

func TestLoadNavConfig_MissingFile(t *testing.T) {
	cfg, err := LoadNavConfig(memfs.New(), "server/nav.yaml")
	require.NoError(t, err)
	assert.Empty(t, cfg.Items)
}
