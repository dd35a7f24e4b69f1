package lcd

import (
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/lcdmenu/log2"
	"github.com/temoto/lcdmenu/menu"
)

// Surface adapts 1-based Devicer to zero based menu.Surface
// and translates text into display codepage.
type Surface struct {
	Log *log2.Log
	dev Devicer
	tr  atomic.Value
	// cursor refused by device, drop prints until next valid SetCursor
	lost bool
}

var _ menu.Surface = new(Surface)

func NewSurface(dev Devicer, codepage string, log *log2.Log) (*Surface, error) {
	if dev == nil {
		panic("code error lcd surface device is nil")
	}
	self := &Surface{Log: log, dev: dev}
	if codepage != "" {
		if err := self.SetCodepage(codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return self, nil
}

func (self *Surface) SetCodepage(cp string) error {
	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return errors.Annotatef(err, "lcd codepage=%s", cp)
	}
	self.tr.Store(tr)
	return nil
}

func (self *Surface) Clear() { self.dev.Clear() }

func (self *Surface) SetCursor(col, row uint8) {
	self.lost = !self.dev.CursorYX(row+1, col+1)
	if self.lost {
		self.Log.Errorf("lcd cursor refused col=%d row=%d", col, row)
	}
}

func (self *Surface) Print(b []byte) {
	if self.lost {
		return
	}
	self.dev.Write(self.Translate(b))
}

func (self *Surface) Translate(b []byte) []byte {
	tr, ok := self.tr.Load().(charset.Translator)
	if !ok || tr == nil {
		return b
	}
	_, tb, err := tr.Translate(b, true)
	if err != nil {
		self.Log.Errorf("lcd translate text='%s' err=%v", b, err)
		return b
	}
	// translator reuses single internal buffer, make a copy
	return append([]byte(nil), tb...)
}
