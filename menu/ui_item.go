package menu

// UpdateFunc produces fresh text for an item, usually from host state.
type UpdateFunc func() Text

// Item is anything Menu can update and render.
type Item interface {
	CanUpdate() bool
	Update()
	DisplayText() Text
}

// UIItem is display-only text with an optional update callback.
type UIItem struct {
	text      Text
	onUpdate  UpdateFunc
	canUpdate bool
}

// compile-time interface compliance test
var _ Item = new(UIItem)

func NewUIItem() *UIItem {
	return &UIItem{text: Blank}
}

// NewStaticItem never changes its text on Update().
func NewStaticItem(text Text) *UIItem {
	return &UIItem{text: text}
}

// NewUpdatableItem shows text until the first Update() pulls from fn.
func NewUpdatableItem(text Text, fn UpdateFunc) *UIItem {
	if fn == nil {
		panic("code error updatable item requires update func")
	}
	return &UIItem{text: text, onUpdate: fn, canUpdate: true}
}

func (self *UIItem) CanUpdate() bool { return self.canUpdate }

func (self *UIItem) Update() {
	if !self.canUpdate {
		return
	}
	if self.onUpdate == nil {
		panic("code error item can update but update func is nil")
	}
	self.text = self.onUpdate()
}

func (self *UIItem) DisplayText() Text        { return self.text }
func (self *UIItem) SetDisplayText(text Text) { self.text = text }

// SetUpdateFunc replaces the callback, CanUpdate() stays as constructed.
func (self *UIItem) SetUpdateFunc(fn UpdateFunc) { self.onUpdate = fn }

func (self *UIItem) String() string {
	return "'" + self.text.String() + "'"
}
