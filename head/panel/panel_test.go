package panel

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/lcdmenu/hardware/eeprom"
	"github.com/temoto/lcdmenu/hardware/lcd"
	"github.com/temoto/lcdmenu/log2"
	"github.com/temoto/lcdmenu/menu"
)

type failCells struct {
	eeprom.Cells
	failWrite bool
}

func (self *failCells) WriteCell(addr uint16, b byte) error {
	if self.failWrite {
		return errors.New("bus stuck")
	}
	return self.Cells.WriteCell(addr, b)
}

func newTestPanel(t testing.TB, cells eeprom.Cells) (*Panel, *menu.Menu, *lcd.MockDevicer) {
	log := log2.NewTest(t, log2.LDebug)
	p, err := New(cells, log)
	require.NoError(t, err)
	dev := lcd.NewMockDevicer(menu.DisplayWidth)
	s, err := lcd.NewSurface(dev, "", log)
	require.NoError(t, err)
	m := p.Menu(s)
	require.NoError(t, m.Validate())
	return p, m, dev
}

func TestPanelLoad(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		prep   func(eeprom.Cells) error
		expect int16
		dirty  bool
	}
	store := func(v int16) func(eeprom.Cells) error {
		return func(c eeprom.Cells) error { return eeprom.WriteInt16Checked(c, SetpointAddr, v) }
	}
	cases := []Case{
		{"blank-chip", func(eeprom.Cells) error { return nil }, 0, true},
		{"plain-int16", func(c eeprom.Cells) error { return eeprom.WriteInt16(c, SetpointAddr, 21) }, 0, true},
		{"normal", store(21), 21, false},
		{"negative", store(-1), -1, false},
		{"too-high", store(1200), SetpointMax, true},
		{"too-low", store(-300), SetpointMin, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			img := eeprom.NewImage(16)
			require.NoError(t, c.prep(img))
			p, err := New(img, log2.NewTest(t, log2.LDebug))
			require.NoError(t, err)
			assert.Equal(t, c.expect, p.Setpoint())
			assert.Equal(t, c.dirty, p.Dirty())
		})
	}
}

func TestPanelLoadError(t *testing.T) {
	t.Parallel()

	_, err := New(eeprom.NewImage(2), log2.NewTest(t, log2.LDebug))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panel load setpoint")
}

func TestPanelScreen(t *testing.T) {
	t.Parallel()

	img := eeprom.NewImage(16)
	require.NoError(t, eeprom.WriteInt16Checked(img, SetpointAddr, 21))
	p, m, dev := newTestPanel(t, img)

	m.Display()
	assert.Equal(t, " UP   SP 21DOWN ", dev.Line(1))
	assert.Equal(t, "SAVED  OFF START", dev.Line(2))

	m.Click(SlotUp)
	m.Click(SlotUp)
	m.Display()
	assert.Equal(t, int16(23), p.Setpoint())
	assert.Equal(t, " UP   SP 23DOWN ", dev.Line(1))
	assert.Equal(t, "SAVE   OFF START", dev.Line(2))

	m.Click(SlotRun)
	m.Display()
	assert.True(t, p.Running())
	assert.Equal(t, "SAVE    ON STOP ", dev.Line(2))

	m.Click(SlotSave)
	m.Display()
	assert.False(t, p.Dirty())
	assert.Equal(t, "SAVED   ON STOP ", dev.Line(2))
	v, err := eeprom.ReadInt16Checked(img, SetpointAddr)
	require.NoError(t, err)
	assert.Equal(t, int16(23), v)
}

func TestPanelBounds(t *testing.T) {
	t.Parallel()

	img := eeprom.NewImage(16)
	require.NoError(t, eeprom.WriteInt16Checked(img, SetpointAddr, SetpointMax))
	p, m, dev := newTestPanel(t, img)
	m.Click(SlotUp)
	assert.Equal(t, SetpointMax, p.Setpoint())

	require.NoError(t, eeprom.WriteInt16Checked(img, SetpointAddr, SetpointMin))
	p, m, dev = newTestPanel(t, img)
	m.Click(SlotDown)
	m.Display()
	assert.Equal(t, SetpointMin, p.Setpoint())
	assert.Equal(t, " UP   SP-99DOWN ", dev.Line(1))
}

func TestPanelAutosave(t *testing.T) {
	t.Parallel()

	img := eeprom.NewImage(16)
	require.NoError(t, eeprom.WriteInt16Checked(img, SetpointAddr, 5))
	p, m, _ := newTestPanel(t, img)

	// only save slot reacts to autoclick
	for slot := 0; slot < menu.MenuSlots; slot++ {
		m.Autoclick(slot)
	}
	assert.Equal(t, int16(5), p.Setpoint())
	assert.False(t, p.Running())

	p.Down()
	m.Autoclick(SlotSave)
	v, err := eeprom.ReadInt16Checked(img, SetpointAddr)
	require.NoError(t, err)
	assert.Equal(t, int16(4), v)
}

func TestPanelSaveError(t *testing.T) {
	t.Parallel()

	img := eeprom.NewImage(16)
	require.NoError(t, eeprom.WriteInt16Checked(img, SetpointAddr, 7))
	cells := &failCells{Cells: img}
	p, m, dev := newTestPanel(t, cells)

	cells.failWrite = true
	m.Click(SlotUp)
	m.Click(SlotSave)
	m.Display()
	require.Error(t, p.SaveErr())
	assert.True(t, p.Dirty())
	assert.Equal(t, "ERR    OFF START", dev.Line(2))

	cells.failWrite = false
	m.Click(SlotSave)
	m.Display()
	assert.NoError(t, p.SaveErr())
	assert.Equal(t, "SAVED  OFF START", dev.Line(2))
}
