package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/lcdmenu/log2"
)

type printCall struct {
	col, row uint8
	text     string
}

type recordSurface struct {
	col, row uint8
	calls    []printCall
}

func (self *recordSurface) SetCursor(col, row uint8) { self.col, self.row = col, row }
func (self *recordSurface) Print(b []byte) {
	self.calls = append(self.calls, printCall{self.col, self.row, string(b)})
}

func (self *recordSurface) find(col, row uint8) []string {
	var result []string
	for _, c := range self.calls {
		if c.col == col && c.row == row {
			result = append(result, c.text)
		}
	}
	return result
}

func newTestMenu(t testing.TB, s Surface) (*Menu, [MenuSlots]*MenuItem, [StaticSlots]*UIItem) {
	items := [MenuSlots]*MenuItem{}
	for i := range items {
		items[i] = NewClickableItem(TextOf(fmt.Sprintf("m%d", i)), func() {}, true)
	}
	statics := [StaticSlots]*UIItem{NewStaticItem(TextOf("s0")), NewStaticItem(TextOf("s1"))}
	m := NewMenu(s, items, [StaticSlots]Item{statics[0], statics[1]})
	m.Log = log2.NewTest(t, log2.LDebug)
	return m, items, statics
}

func TestMenuLayout(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, _, _ := newTestMenu(t, s)
	m.Display()

	expect := []printCall{
		{0, 0, "m0   "},
		{11, 0, "m1   "},
		{0, 1, "m2   "},
		{11, 1, "m3   "},
		{6, 0, "s0   "},
		{6, 1, "s1   "},
	}
	assert.Equal(t, expect, s.calls)
	for _, c := range s.calls {
		assert.LessOrEqual(t, int(c.col)+len(c.text), DisplayWidth)
	}
}

func TestMenuDisplaySkipsBlank(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, items, statics := newTestMenu(t, s)
	items[1].SetDisplayText(Blank)
	statics[0].SetDisplayText(Blank)
	m.SetStaticItem(1, NewUIItem())
	m.Display()

	assert.Len(t, s.calls, 3)
	for _, c := range s.calls {
		assert.NotEqual(t, Blank.String(), c.text)
	}
	assert.Empty(t, s.find(11, 0))
	assert.Empty(t, s.find(6, 0))
	assert.Empty(t, s.find(6, 1))
}

func TestMenuDisplayBlankAfterUpdate(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, _, _ := newTestMenu(t, s)
	visible := true
	m.SetMenuItem(3, NewUpdatableMenuItem(TextOf("x"), func() Text {
		if visible {
			return TextOf("shown")
		}
		return Blank
	}))
	m.Display()
	visible = false
	m.Display()
	assert.Equal(t, []string{"shown"}, s.find(11, 1))
}

func TestMenuClickEndToEnd(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, _, _ := newTestMenu(t, s)
	flag := false
	m.SetMenuItem(0, NewClickableItem(TextOf("AB"), func() { flag = true }, true))

	m.Click(0)
	assert.True(t, flag)
	m.Display()
	assert.Equal(t, []string{"AB   "}, s.find(0, 0))
}

func TestMenuStaticToggle(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, _, _ := newTestMenu(t, s)
	values := []Text{TextOf("ON"), TextOf("OFF")}
	calls := 0
	m.SetStaticItem(1, NewUpdatableItem(Blank, func() Text {
		v := values[calls%2]
		calls++
		return v
	}))

	for i := 0; i < 4; i++ {
		s.calls = nil
		m.Display()
		assert.Equal(t, []string{values[i%2].String()}, s.find(6, 1), "pass=%d", i)
	}
	assert.Equal(t, 4, calls)
}

func TestMenuClickRouting(t *testing.T) {
	t.Parallel()

	m := NewEmptyMenu(&recordSurface{})
	var clicks [MenuSlots]int
	for i := 0; i < MenuSlots; i++ {
		i := i
		m.SetMenuItem(i, NewAutoClickableItem(TextOf("x"), func() { clicks[i]++ }, i%2 == 0, i >= 2))
	}
	for i := 0; i < MenuSlots; i++ {
		m.Click(i)
	}
	assert.Equal(t, [MenuSlots]int{1, 0, 1, 0}, clicks)
	for i := 0; i < MenuSlots; i++ {
		m.Autoclick(i)
	}
	// slot2 clickable+auto, slot3 auto only
	assert.Equal(t, [MenuSlots]int{1, 0, 2, 1}, clicks)
}

func TestMenuValidate(t *testing.T) {
	t.Parallel()

	m := NewEmptyMenu(&recordSurface{})
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu0,menu1,menu2,menu3,static0,static1")

	full, _, _ := newTestMenu(t, &recordSurface{})
	assert.NoError(t, full.Validate())
}

func TestMenuPreconditions(t *testing.T) {
	t.Parallel()

	type Case struct {
		name string
		f    func(m *Menu)
	}
	cases := []Case{
		{"display-empty", func(m *Menu) { m.Display() }},
		{"click-empty", func(m *Menu) { m.Click(0) }},
		{"click-range", func(m *Menu) { m.Click(MenuSlots) }},
		{"autoclick-negative", func(m *Menu) { m.Autoclick(-1) }},
		{"set-menu-range", func(m *Menu) { m.SetMenuItem(4, NewMenuItem()) }},
		{"set-menu-nil", func(m *Menu) { m.SetMenuItem(0, nil) }},
		{"set-static-range", func(m *Menu) { m.SetStaticItem(2, NewUIItem()) }},
		{"set-static-nil", func(m *Menu) { m.SetStaticItem(0, nil) }},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			m := NewEmptyMenu(&recordSurface{})
			assert.Panics(t, func() { c.f(m) })
		})
	}
	assert.Panics(t, func() { NewEmptyMenu(nil) })
}

func TestMenuStaticAcceptsMenuItem(t *testing.T) {
	t.Parallel()

	s := &recordSurface{}
	m, _, _ := newTestMenu(t, s)
	clicked := false
	mi := NewClickableItem(TextOf("MI"), func() { clicked = true }, true)
	m.SetStaticItem(0, mi)
	m.Display()
	assert.Equal(t, []string{"MI   "}, s.find(6, 0))
	assert.False(t, clicked)
	assert.Equal(t, mi, m.StaticItem(0))
}
