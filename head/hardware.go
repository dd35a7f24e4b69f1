package head

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/config"
	"github.com/temoto/lcdmenu/hardware/eeprom"
	"github.com/temoto/lcdmenu/hardware/input"
	"github.com/temoto/lcdmenu/hardware/lcd"
	"github.com/temoto/lcdmenu/helpers"
	"github.com/temoto/lcdmenu/log2"
)

// Hardware is everything a Runner needs from the outside world, opened per config.
type Hardware struct {
	Log     *log2.Log
	Devicer lcd.Devicer
	Surface *lcd.Surface
	Cells   eeprom.Cells
	Input   *input.Dispatch
	sources []input.Source
	closers []io.Closer
}

// OpenHardware fails on display or eeprom errors.
// Broken input sources are logged and skipped, screen is still useful without them.
func OpenHardware(cfg *config.Config, stop <-chan struct{}, log *log2.Log) (*Hardware, error) {
	self := &Hardware{Log: log}
	if err := self.openDisplay(cfg); err != nil {
		_ = self.Close()
		return nil, errors.Annotate(err, "display")
	}
	if err := self.openEeprom(cfg); err != nil {
		_ = self.Close()
		return nil, errors.Annotate(err, "eeprom")
	}
	self.Input = input.NewDispatch(log, stop)
	self.sources = self.openInput(cfg)
	return self, nil
}

// RunInput blocks until stop channel is closed.
func (self *Hardware) RunInput() { self.Input.Run(self.sources) }

func (self *Hardware) Close() error {
	errs := make([]error, 0, len(self.closers))
	for i := len(self.closers) - 1; i >= 0; i-- {
		if err := self.closers[i].Close(); err != nil {
			errs = append(errs, errors.Annotatef(err, "close %v", self.closers[i]))
		}
	}
	self.closers = nil
	return helpers.FoldErrors(errs)
}

func (self *Hardware) openDisplay(cfg *config.Config) error {
	dc := &cfg.Display
	switch dc.Driver {
	case config.DisplayDriverGpio:
		dev, err := lcd.Open(dc.Gpio.Chip, dc.Gpio.Pinmap, dc.Gpio.Page1)
		if err != nil {
			return errors.Annotatef(err, "driver=%s chip=%s", dc.Driver, dc.Gpio.Chip)
		}
		self.Devicer = dev
		self.closers = append(self.closers, dev)
	case config.DisplayDriverI2C:
		dev, err := lcd.OpenBackpack(dc.I2C.Bus, uint8(dc.I2C.Addr), uint8(dc.Width))
		if err != nil {
			return errors.Annotatef(err, "driver=%s bus=%s addr=%#x", dc.Driver, dc.I2C.Bus, dc.I2C.Addr)
		}
		self.Devicer = dev
		self.closers = append(self.closers, dev)
	case config.DisplayDriverSerial:
		dev, err := lcd.OpenSerLCD(dc.Serial.Port, dc.Serial.Baud, self.Log)
		if err != nil {
			return errors.Annotatef(err, "driver=%s port=%s", dc.Driver, dc.Serial.Port)
		}
		self.Devicer = dev
		self.closers = append(self.closers, dev)
	case config.DisplayDriverMock:
		self.Devicer = lcd.NewMockDevicer(uint8(dc.Width))
	default:
		return errors.NotSupportedf("driver=%s", dc.Driver)
	}

	s, err := lcd.NewSurface(self.Devicer, dc.Codepage, self.Log)
	if err != nil {
		return errors.Annotatef(err, "codepage=%s", dc.Codepage)
	}
	s.Clear()
	self.Surface = s
	return nil
}

func (self *Hardware) openEeprom(cfg *config.Config) error {
	ec := &cfg.Eeprom
	switch ec.Driver {
	case config.EepromDriverFile:
		fs, err := eeprom.NewFileStore(ec.Root, ec.Size, self.Log)
		if err != nil {
			return errors.Annotatef(err, "driver=%s root=%s", ec.Driver, ec.Root)
		}
		self.Cells = fs
	case config.EepromDriverAT24C:
		addr := uint16(ec.I2CAddr)
		if addr == 0 {
			addr = eeprom.DefaultAT24CAddr
		}
		chip, err := eeprom.NewAT24C(ec.I2CBus, addr, ec.Size, self.Log)
		if err != nil {
			return errors.Annotatef(err, "driver=%s bus=%s addr=%#x", ec.Driver, ec.I2CBus, addr)
		}
		self.Cells = chip
		self.closers = append(self.closers, chip)
	case config.EepromDriverMemory:
		self.Log.Infof("eeprom driver=%s, values are lost on exit", ec.Driver)
		self.Cells = eeprom.NewImage(ec.Size)
	default:
		return errors.NotSupportedf("driver=%s", ec.Driver)
	}
	return nil
}

func (self *Hardware) openInput(cfg *config.Config) []input.Source {
	ic := &cfg.Input
	sources := make([]input.Source, 0, 2)

	if !ic.DevInputEvent.Enable {
		self.Log.Infof("input=%s disabled", input.DevInputEventTag)
	} else {
		src, err := input.NewDevInputEventSource(ic.DevInputEvent.Device)
		if err != nil {
			err = errors.Annotatef(err, "input=%s device=%s", input.DevInputEventTag, ic.DevInputEvent.Device)
			self.Log.Error(errors.ErrorStack(err))
		} else {
			sources = append(sources, src)
			self.closers = append(self.closers, src)
		}
	}

	if !ic.GpioButtons.Enable {
		self.Log.Infof("input=%s disabled", input.GpioButtonsTag)
	} else {
		debounce := helpers.IntMillisecondDefault(ic.GpioButtons.DebounceMs, 0)
		src, err := input.OpenGpioButtons(ic.GpioButtons.Chip, cfg.GpioButtonLines(), debounce, self.Log)
		if err != nil {
			err = errors.Annotatef(err, "input=%s chip=%s", input.GpioButtonsTag, ic.GpioButtons.Chip)
			self.Log.Error(errors.ErrorStack(err))
		} else {
			sources = append(sources, src)
			self.closers = append(self.closers, src)
		}
	}
	return sources
}

func (self *Hardware) String() string {
	return fmt.Sprintf("display=%T eeprom=%T size=%d input=%d",
		self.Devicer, self.Cells, eeprom.Size(self.Cells), len(self.sources))
}
