package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_AddRemove(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "header", "header"))
	require.NoError(t, p.Add("header", "name", "user-name"))
	require.NoError(t, p.Add("header", "avatar", "user-avatar"))

	assert.Error(t, p.Add("missing", "x"))
	assert.Error(t, p.Add("", "name"))
	assert.Error(t, p.Add("", ""))

	assert.Equal(t, []string{"name", "avatar"}, p.Children("header"))

	p.Remove("header")
	assert.False(t, p.Exists("header"))
	assert.False(t, p.Exists("name"), "subtree is removed")
	assert.Empty(t, p.Children(BodyID))

	p.Remove("header")
	p.Remove(BodyID)
	assert.True(t, p.Exists(BodyID))
}

func TestPage_TextStyleAttr(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "title"))

	assert.True(t, p.SetText("title", "Dashboard"))
	assert.Equal(t, "Dashboard", p.Text("title"))
	assert.False(t, p.SetText("missing", "x"))
	assert.Equal(t, "", p.Text("missing"))

	assert.True(t, p.SetStyle("title", "display", "none"))
	assert.Equal(t, "none", p.Style("title", "display"))
	assert.False(t, p.SetStyle("missing", "display", "none"))

	p.SetAttr("data-theme", "dark")
	assert.Equal(t, "dark", p.Attr("data-theme"))
}

func TestPage_ByClassIsDocumentOrder(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "a", "x"))
	require.NoError(t, p.Add("a", "a1", "x", "y"))
	require.NoError(t, p.Add("", "b", "y"))
	require.NoError(t, p.Add("", "c", "x"))

	assert.Equal(t, []string{"a", "a1", "c"}, p.ByClass("x"))
	assert.Equal(t, []string{"a1", "b"}, p.ByClass("y"))
	first, ok := p.FirstByClass("y")
	assert.True(t, ok)
	assert.Equal(t, "a1", first)
	_, ok = p.FirstByClass("z")
	assert.False(t, ok)
}

func TestPage_Closest(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "modal", "modal-overlay"))
	require.NoError(t, p.Add("modal", "content", "modal-content"))
	require.NoError(t, p.Add("content", "close", "modal-close"))

	got, ok := p.Closest("close", "modal-overlay")
	assert.True(t, ok)
	assert.Equal(t, "modal", got)

	got, ok = p.Closest("modal", "modal-overlay")
	assert.True(t, ok)
	assert.Equal(t, "modal", got)

	_, ok = p.Closest("close", "nope")
	assert.False(t, ok)
}

func TestPage_ClickDoesNotBubble(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "outer"))
	require.NoError(t, p.Add("outer", "inner"))

	var clicked []string
	p.OnClick("outer", func() { clicked = append(clicked, "outer") })
	p.OnClick("inner", func() { clicked = append(clicked, "inner") })
	assert.False(t, p.OnClick("missing", func() {}))

	require.NoError(t, p.Click("inner"))
	assert.Equal(t, []string{"inner"}, clicked)
	assert.Error(t, p.Click("missing"))
}

func TestPage_HandlersMayUsePage(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "btn"))
	p.OnClick("btn", func() { p.SetText("btn", "clicked") })

	require.NoError(t, p.Click("btn"))
	assert.Equal(t, "clicked", p.Text("btn"))
}

func TestPage_Navigate(t *testing.T) {
	p := NewPage("index.html")
	var seen []string
	p.OnNavigate(func(location string) {
		seen = append(seen, location+"@"+p.Location())
	})
	p.OnNavigate(func(location string) { seen = append(seen, "second") })

	p.Navigate("login.html")
	assert.Equal(t, "login.html", p.Location())
	assert.Equal(t, []string{"login.html@login.html", "second"}, seen)
}

func TestPage_Snapshot(t *testing.T) {
	p := NewPage("index.html")
	require.NoError(t, p.Add("", "toggle", "theme-toggle"))
	p.SetText("toggle", "🌙")
	p.SetStyle("toggle", "display", "flex")
	p.SetAttr("data-theme", "light")

	snap := p.Snapshot()
	assert.Equal(t, "index.html", snap.Location)
	assert.Equal(t, map[string]string{"data-theme": "light"}, snap.Attrs)
	assert.Equal(t, BodyID, snap.Body.ID)
	require.Len(t, snap.Body.Children, 1)
	assert.Equal(t, ElementSnapshot{
		ID:      "toggle",
		Classes: []string{"theme-toggle"},
		Text:    "🌙",
		Style:   map[string]string{"display": "flex"},
	}, snap.Body.Children[0])

	snap.Attrs["data-theme"] = "dark"
	assert.Equal(t, "light", p.Attr("data-theme"), "snapshot is a copy")
}
