package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopmost(t *testing.T) {
	leaf := Text("leaf")
	root := Column(Row(leaf))
	top, err := leaf.Topmost()
	require.NoError(t, err)
	assert.Equal(t, root, top)

	top, err = root.Topmost()
	require.NoError(t, err)
	assert.Equal(t, root, top)
}

func TestTopmostTooDeep(t *testing.T) {
	leaf := Text("leaf")
	node := leaf
	for i := 0; i < MaxDepth+1; i++ {
		node = Column(node)
	}
	_, err := leaf.Topmost()
	assert.ErrorIs(t, err, ErrTooDeep)

	a, b := Column(), Column()
	a.parent, b.parent = b, a
	_, err = a.Topmost()
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestFocusFollowsMovedSubtree(t *testing.T) {
	sub := Column(Texts("x", "y")...)
	oldRoot := Column(Text("a"), Column(sub))
	require.NoError(t, oldRoot.SetFocus(sub))
	assert.Equal(t, sub, oldRoot.Focused())

	newRoot := Column()
	require.NoError(t, newRoot.Insert(sub))
	assert.Equal(t, sub, newRoot.Focused())
	assert.Equal(t, oldRoot, oldRoot.Focused())
}

func TestFocusSurvivesRemoveThenInsert(t *testing.T) {
	sub := Column(Texts("x", "y")...)
	oldRoot := Column(Text("a"), sub)
	require.NoError(t, oldRoot.SetFocus(sub))

	require.True(t, oldRoot.Remove(sub))
	assert.Equal(t, oldRoot, oldRoot.Focused())
	assert.Equal(t, sub, sub.Focused())

	newRoot := Column(Text("b"))
	require.NoError(t, newRoot.Insert(sub))
	assert.Equal(t, sub, newRoot.Focused())
	assert.Equal(t, oldRoot, oldRoot.Focused())
}

func TestClearReleasesFocus(t *testing.T) {
	leaf := Text("x")
	sub := Column(leaf)
	root := Column(Text("a"), sub)
	require.NoError(t, root.SetFocus(leaf))

	root.Clear()
	assert.Equal(t, root, root.Focused())
	assert.Equal(t, leaf, sub.Focused())
}

func TestFocusStaysWhenOutsideMovedSubtree(t *testing.T) {
	focus := Column(Text("f"))
	moved := Text("m")
	oldRoot := Column(focus, moved)
	require.NoError(t, oldRoot.SetFocus(focus))

	newRoot := Column()
	require.NoError(t, newRoot.Insert(moved))
	assert.Equal(t, focus, oldRoot.Focused())
	assert.Equal(t, newRoot, newRoot.Focused())
}

func TestSetFocusForeign(t *testing.T) {
	root := Column(Text("a"))
	assert.ErrorIs(t, root.SetFocus(Text("b")), ErrForeign)
	require.NoError(t, root.SetFocus(nil))
	assert.Equal(t, root, root.Focused())
}

func TestScreenStack(t *testing.T) {
	base := Column(Text("base"))
	first := Column(Text("first"))
	second := Column(Text("second"))

	require.NoError(t, base.PushScreen(first))
	require.NoError(t, first.Items()[0].PushScreen(second))
	assert.Equal(t, second, base.ScreenTop())
	assert.Equal(t, first, second.Below())

	require.NoError(t, second.PopScreen())
	assert.Equal(t, first, base.ScreenTop())
	assert.Nil(t, first.Above())
	assert.ErrorIs(t, base.PushScreen(first), ErrActionArg)
}

func TestDeliverPrefersSelectedItem(t *testing.T) {
	var log []string
	note := func(name string) ActionFunc {
		return func(*Node, ...any) error {
			log = append(log, name)
			return nil
		}
	}
	item := Text("item").On(note("item"), Select)
	home := Column(item, Text("other")).BindNavigation().On(note("home"), Select, Left)

	handled, err := Deliver(Select, home)
	require.NoError(t, err)
	assert.True(t, handled)

	handled, err = Deliver(Left, home)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"item", "home"}, log)

	handled, err = Deliver(Down, home)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, home.SelectedIndex())

	handled, err = Deliver(Right, home)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestDeliverUsesFocus(t *testing.T) {
	inner := Row(Texts("a", "b")...).BindNavigation()
	outer := Column(Text("title"), inner).BindNavigation()
	require.NoError(t, outer.SetFocus(inner))

	_, err := Deliver(Right, outer)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.SelectedIndex())

	_, err = Deliver(Down, outer)
	require.NoError(t, err)
	assert.Equal(t, 1, outer.SelectedIndex())
}
