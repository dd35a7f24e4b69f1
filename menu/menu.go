// Package menu renders one flat screen of items on a character display:
// a 2x2 grid of clickable items and a column of two static items between them.
//
//	col  0         6         11
//	row0 [item0]   [static0] [item1]
//	row1 [item2]   [static1] [item3]
//
// Menu is not safe for concurrent use. Hosts must serialize all calls.
package menu

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/log2"
)

const (
	MenuSlots    = 4
	StaticSlots  = 2
	DisplayWidth = 16

	rightColumn  = DisplayWidth - Width
	staticColumn = (DisplayWidth-Width)/2 + 1
)

// Surface is the character display as seen by Menu, zero based.
type Surface interface {
	SetCursor(col, row uint8)
	Print(b []byte)
}

// Menu does not own items, callers keep them alive as long as Menu is used.
type Menu struct {
	Log     *log2.Log
	surface Surface
	items   [MenuSlots]*MenuItem
	statics [StaticSlots]Item
}

func NewMenu(surface Surface, items [MenuSlots]*MenuItem, statics [StaticSlots]Item) *Menu {
	self := NewEmptyMenu(surface)
	for i, item := range items {
		self.SetMenuItem(i, item)
	}
	for i, item := range statics {
		self.SetStaticItem(i, item)
	}
	return self
}

// NewEmptyMenu requires all slots filled with Set*Item() before Display() or Click().
func NewEmptyMenu(surface Surface) *Menu {
	if surface == nil {
		panic("code error menu surface is nil")
	}
	return &Menu{surface: surface}
}

func (self *Menu) SetMenuItem(slot int, item *MenuItem) {
	mustSlot("menu", slot, MenuSlots)
	if item == nil {
		panic(fmt.Sprintf("code error menu slot=%d item is nil", slot))
	}
	self.items[slot] = item
}

func (self *Menu) SetStaticItem(slot int, item Item) {
	mustSlot("static", slot, StaticSlots)
	if item == nil {
		panic(fmt.Sprintf("code error static slot=%d item is nil", slot))
	}
	self.statics[slot] = item
}

func (self *Menu) MenuItem(slot int) *MenuItem {
	mustSlot("menu", slot, MenuSlots)
	return self.items[slot]
}

func (self *Menu) StaticItem(slot int) Item {
	mustSlot("static", slot, StaticSlots)
	return self.statics[slot]
}

// Validate reports empty slots.
func (self *Menu) Validate() error {
	empty := make([]string, 0, MenuSlots+StaticSlots)
	for i, item := range self.items {
		if item == nil {
			empty = append(empty, fmt.Sprintf("menu%d", i))
		}
	}
	for i, item := range self.statics {
		if item == nil {
			empty = append(empty, fmt.Sprintf("static%d", i))
		}
	}
	if len(empty) != 0 {
		return errors.NotValidf("menu empty slots=%s", strings.Join(empty, ","))
	}
	return nil
}

// Display updates every updatable item, then prints each non-blank text.
// Blank slots are not printed, so whatever is on screen there stays.
func (self *Menu) Display() {
	for i, item := range self.items {
		if item == nil {
			panic(fmt.Sprintf("code error menu slot=%d empty on display", i))
		}
		if text, ok := refresh(item); ok {
			self.print(uint8((i%2)*rightColumn), uint8(i/2), text)
		}
	}
	for i, item := range self.statics {
		if item == nil {
			panic(fmt.Sprintf("code error static slot=%d empty on display", i))
		}
		if text, ok := refresh(item); ok {
			self.print(staticColumn, uint8(i), text)
		}
	}
}

func (self *Menu) Click(slot int) {
	item := self.mustItem(slot)
	self.Log.Debugf("menu click slot=%d %s", slot, item.String())
	item.Click()
}

func (self *Menu) Autoclick(slot int) {
	self.mustItem(slot).Autoclick()
}

func (self *Menu) String() string {
	var b strings.Builder
	for i, item := range self.items {
		fmt.Fprintf(&b, "menu%d=%v ", i, item)
	}
	for i, item := range self.statics {
		fmt.Fprintf(&b, "static%d=%v ", i, item)
	}
	return strings.TrimSpace(b.String())
}

func (self *Menu) print(col, row uint8, text Text) {
	self.surface.SetCursor(col, row)
	self.surface.Print(text[:])
}

func (self *Menu) mustItem(slot int) *MenuItem {
	mustSlot("menu", slot, MenuSlots)
	item := self.items[slot]
	if item == nil {
		panic(fmt.Sprintf("code error menu slot=%d empty", slot))
	}
	return item
}

func refresh(item Item) (Text, bool) {
	if item.CanUpdate() {
		item.Update()
	}
	text := item.DisplayText()
	return text, !text.IsBlank()
}

func mustSlot(kind string, slot, max int) {
	if slot < 0 || slot >= max {
		panic(fmt.Sprintf("code error %s slot=%d out of range [0,%d)", kind, slot, max))
	}
}
