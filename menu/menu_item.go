package menu

import "fmt"

// ClickFunc does the things. Side effects belong to the host.
type ClickFunc func()

// MenuItem is a UIItem that can be clicked.
// Clickable and autoclickable are independent switches guarding the same callback.
type MenuItem struct {
	UIItem
	onClick       ClickFunc
	clickable     bool
	autoclickable bool
}

var _ Item = new(MenuItem)

func NewMenuItem() *MenuItem {
	return &MenuItem{UIItem: UIItem{text: Blank}}
}

// updatable but not clickable
func NewUpdatableMenuItem(text Text, onUpdate UpdateFunc) *MenuItem {
	return &MenuItem{UIItem: *NewUpdatableItem(text, onUpdate)}
}

// clickable but not updatable
func NewClickableItem(text Text, onClick ClickFunc, clickable bool) *MenuItem {
	return newMenuItem(*NewStaticItem(text), onClick, clickable, false)
}

func NewAutoClickableItem(text Text, onClick ClickFunc, clickable, autoclickable bool) *MenuItem {
	return newMenuItem(*NewStaticItem(text), onClick, clickable, autoclickable)
}

// clickable, updatable
func NewClickableUpdatableItem(text Text, onClick ClickFunc, onUpdate UpdateFunc, clickable bool) *MenuItem {
	return newMenuItem(*NewUpdatableItem(text, onUpdate), onClick, clickable, false)
}

func NewClickableUpdatableAutoItem(text Text, onClick ClickFunc, onUpdate UpdateFunc, clickable, autoclickable bool) *MenuItem {
	return newMenuItem(*NewUpdatableItem(text, onUpdate), onClick, clickable, autoclickable)
}

func newMenuItem(ui UIItem, onClick ClickFunc, clickable, autoclickable bool) *MenuItem {
	if onClick == nil && (clickable || autoclickable) {
		panic(fmt.Sprintf("code error menu item text=%s click func is nil", ui.String()))
	}
	return &MenuItem{
		UIItem:        ui,
		onClick:       onClick,
		clickable:     clickable,
		autoclickable: autoclickable,
	}
}

func (self *MenuItem) IsClickable() bool  { return self.clickable }
func (self *MenuItem) CanAutoclick() bool { return self.autoclickable }

// Click runs the callback once, only if the item is clickable.
func (self *MenuItem) Click() {
	if self.clickable {
		self.onClick()
	}
}

// Autoclick runs the callback once, only if the item can be autoclicked.
// Plain clickability does not matter here.
func (self *MenuItem) Autoclick() {
	if self.autoclickable {
		self.onClick()
	}
}

func (self *MenuItem) String() string {
	return fmt.Sprintf("menu item text=%s click=%t auto=%t update=%t",
		self.UIItem.String(), self.clickable, self.autoclickable, self.canUpdate)
}
