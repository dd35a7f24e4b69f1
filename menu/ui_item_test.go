package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AB   ", TextOf("AB").String())
	assert.Equal(t, "12345", TextOf("1234567").String())
	assert.True(t, TextOf("").IsBlank())
	assert.True(t, NewUIItem().DisplayText().IsBlank())

	text, err := ParseText("hello")
	require.NoError(t, err)
	assert.Equal(t, TextOf("hello"), text)
	_, err = ParseText("toolong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid")
}

func TestUIItemVariants(t *testing.T) {
	t.Parallel()

	fn := func() Text { return TextOf("new") }
	assert.False(t, NewUIItem().CanUpdate())
	assert.False(t, NewStaticItem(TextOf("s")).CanUpdate())
	assert.True(t, NewUpdatableItem(TextOf("u"), fn).CanUpdate())
	assert.Panics(t, func() { NewUpdatableItem(Blank, nil) })
}

func TestUIItemUpdate(t *testing.T) {
	t.Parallel()

	static := NewStaticItem(TextOf("keep"))
	static.SetUpdateFunc(func() Text { return TextOf("nope") })
	static.Update()
	assert.Equal(t, TextOf("keep"), static.DisplayText())
	assert.False(t, static.CanUpdate())

	n := 0
	counter := NewUpdatableItem(TextOf("init"), func() Text {
		n++
		return TextOf(string(rune('0' + n)))
	})
	assert.Equal(t, TextOf("init"), counter.DisplayText())
	for i := 1; i <= 3; i++ {
		counter.Update()
		assert.Equal(t, TextOf(string(rune('0'+i))), counter.DisplayText())
	}

	counter.SetUpdateFunc(func() Text { return TextOf("other") })
	assert.True(t, counter.CanUpdate())
	counter.Update()
	assert.Equal(t, TextOf("other"), counter.DisplayText())

	counter.SetDisplayText(TextOf("set"))
	assert.Equal(t, TextOf("set"), counter.DisplayText())

	counter.SetUpdateFunc(nil)
	assert.Panics(t, counter.Update)
}

func TestMenuItemVariants(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		build     func(click ClickFunc, upd UpdateFunc) *MenuItem
		update    bool
		clickable bool
		auto      bool
	}
	cases := []Case{
		{"default", func(ClickFunc, UpdateFunc) *MenuItem { return NewMenuItem() }, false, false, false},
		{"updatable", func(c ClickFunc, u UpdateFunc) *MenuItem { return NewUpdatableMenuItem(TextOf("u"), u) }, true, false, false},
		{"clickable", func(c ClickFunc, u UpdateFunc) *MenuItem { return NewClickableItem(TextOf("c"), c, true) }, false, true, false},
		{"clickable-off", func(c ClickFunc, u UpdateFunc) *MenuItem { return NewClickableItem(TextOf("c"), c, false) }, false, false, false},
		{"auto-only", func(c ClickFunc, u UpdateFunc) *MenuItem { return NewAutoClickableItem(TextOf("a"), c, false, true) }, false, false, true},
		{"clickable-auto", func(c ClickFunc, u UpdateFunc) *MenuItem { return NewAutoClickableItem(TextOf("a"), c, true, true) }, false, true, true},
		{"clickable-updatable", func(c ClickFunc, u UpdateFunc) *MenuItem {
			return NewClickableUpdatableItem(TextOf("cu"), c, u, true)
		}, true, true, false},
		{"all", func(c ClickFunc, u UpdateFunc) *MenuItem {
			return NewClickableUpdatableAutoItem(TextOf("cua"), c, u, true, true)
		}, true, true, true},
		{"updatable-auto-only", func(c ClickFunc, u UpdateFunc) *MenuItem {
			return NewClickableUpdatableAutoItem(TextOf("cua"), c, u, false, true)
		}, true, false, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			item := c.build(func() { calls++ }, func() Text { return TextOf("fresh") })
			assert.Equal(t, c.update, item.CanUpdate())
			assert.Equal(t, c.clickable, item.IsClickable())
			assert.Equal(t, c.auto, item.CanAutoclick())

			expect := 0
			item.Click()
			if c.clickable {
				expect++
			}
			assert.Equal(t, expect, calls, "after click")
			item.Autoclick()
			if c.auto {
				expect++
			}
			assert.Equal(t, expect, calls, "after autoclick")

			item.Update()
			if c.update {
				assert.Equal(t, TextOf("fresh"), item.DisplayText())
			} else {
				assert.NotEqual(t, TextOf("fresh"), item.DisplayText())
			}
		})
	}
}

func TestMenuItemNilClick(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewClickableItem(TextOf("x"), nil, true) })
	assert.Panics(t, func() { NewAutoClickableItem(TextOf("x"), nil, false, true) })
	assert.NotPanics(t, func() {
		item := NewClickableItem(TextOf("x"), nil, false)
		item.Click()
		item.Autoclick()
	})
}
