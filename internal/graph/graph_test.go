package graph

import (
	"errors"
	"testing"
)

func TestContentGraph_RegisterAndGetNode(t *testing.T) {
	g := NewContentGraph("server", "")
	g.RegisterNode(&ContentNode{
		Meta:  NodeMeta{Path: "artists/zol", ParentPath: "artists", Layout: "artist"},
		Title: "ZOL",
	})

	node, err := g.GetNode("artists/zol")
	if err != nil {
		t.Fatalf("GetNode(artists/zol) returned error: %v", err)
	}
	if node.Title != "ZOL" {
		t.Errorf("Title = %q, want %q", node.Title, "ZOL")
	}
	if node.Meta.Layout != "artist" {
		t.Errorf("Layout = %q, want %q", node.Meta.Layout, "artist")
	}
}

func TestContentGraph_GetNodeMissing(t *testing.T) {
	g := NewContentGraph("server", "")
	_, err := g.GetNode("artists/nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetNode on missing path = %v, want ErrNotFound", err)
	}
}

func TestContentGraph_ChildrenKeepRegistrationOrder(t *testing.T) {
	g := NewContentGraph("server", "")
	for _, p := range []string{"artists/zol", "artists/dissolvr", "artists/ishimura"} {
		g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: p, ParentPath: "artists"}})
	}

	children, ok := g.Children("artists")
	if !ok {
		t.Fatal("Children(artists) reported no index entry")
	}
	want := []string{"artists/zol", "artists/dissolvr", "artists/ishimura"}
	if len(children) != len(want) {
		t.Fatalf("children = %v, want %v", children, want)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("children[%d] = %q, want %q", i, children[i], want[i])
		}
	}
}

func TestContentGraph_ChildrenMissingParent(t *testing.T) {
	g := NewContentGraph("server", "")
	if _, ok := g.Children("pages"); ok {
		t.Error("Children on unindexed parent should report false")
	}
}

func TestContentGraph_ResolveThemeOwnTheme(t *testing.T) {
	g := NewContentGraph("server", "base")
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists/zol", Theme: "neon"}})

	if got := g.ResolveTheme("artists/zol"); got != "neon" {
		t.Errorf("ResolveTheme = %q, want %q", got, "neon")
	}
}

func TestContentGraph_ResolveThemeInheritsFromParent(t *testing.T) {
	g := NewContentGraph("server", "base")
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists", Theme: "dark"}})
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists/zol", ParentPath: "artists"}})

	if got := g.ResolveTheme("artists/zol"); got != "dark" {
		t.Errorf("ResolveTheme = %q, want %q", got, "dark")
	}
}

// An unregistered intermediate node must not break inheritance: the walk
// truncates the path string to find the next ancestor.
func TestContentGraph_ResolveThemeTruncationFallback(t *testing.T) {
	g := NewContentGraph("server", "base")
	g.RegisterNode(&ContentNode{Meta: NodeMeta{Path: "artists", Theme: "dark"}})

	if got := g.ResolveTheme("artists/zol/music/tracks"); got != "dark" {
		t.Errorf("ResolveTheme = %q, want %q", got, "dark")
	}
}

func TestContentGraph_ResolveThemeRootFallback(t *testing.T) {
	g := NewContentGraph("server", "base")

	if got := g.ResolveTheme("pages/about"); got != "base" {
		t.Errorf("ResolveTheme = %q, want %q", got, "base")
	}
	if got := g.ResolveTheme(""); got != "base" {
		t.Errorf("ResolveTheme(empty) = %q, want %q", got, "base")
	}
}

func TestContentGraph_Artists(t *testing.T) {
	g := NewContentGraph("server", "")
	g.AddArtist("artists/zol")
	g.AddArtist("artists/dissolvr")

	artists := g.Artists()
	if len(artists) != 2 {
		t.Fatalf("Artists() = %v, want 2 entries", artists)
	}
	if artists[0] != "artists/zol" {
		t.Errorf("artists[0] = %q, want %q", artists[0], "artists/zol")
	}
}

func TestHandle_Swap(t *testing.T) {
	g1 := NewContentGraph("server", "")
	g2 := NewContentGraph("server", "v2")
	ops1 := NewGraphOps(g1, NavConfig{}, nil)
	ops2 := NewGraphOps(g2, NavConfig{}, nil)

	h := NewHandle(ops1)
	if h.Ops() != ops1 {
		t.Fatal("Ops() should return the initial value")
	}
	h.Swap(ops2)
	if h.Ops() != ops2 {
		t.Fatal("Ops() should return the swapped value")
	}
	if h.Ops().Graph().RootTheme() != "v2" {
		t.Errorf("swapped graph theme = %q, want %q", h.Ops().Graph().RootTheme(), "v2")
	}
}
