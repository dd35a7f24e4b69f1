package menu

import (
	"github.com/juju/errors"
)

// Width is the number of visible characters in every item text.
const Width = 5

// Text is a fixed width display string. Unused cells are spaces.
type Text [Width]byte

// Blank marks a slot with nothing to print.
var Blank = Text{' ', ' ', ' ', ' ', ' '}

// TextOf pads s with spaces, longer input is truncated.
func TextOf(s string) Text {
	t := Blank
	copy(t[:], s)
	return t
}

// ParseText is TextOf that refuses to truncate.
func ParseText(s string) (Text, error) {
	if len(s) > Width {
		return Blank, errors.NotValidf("text='%s' len=%d max=%d", s, len(s), Width)
	}
	return TextOf(s), nil
}

func (t Text) IsBlank() bool  { return t == Blank }
func (t Text) String() string { return string(t[:]) }
