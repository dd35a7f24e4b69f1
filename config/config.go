package config

import (
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/hardware/lcd"
	"github.com/temoto/lcdmenu/helpers"
	"github.com/temoto/lcdmenu/log2"
	"github.com/temoto/lcdmenu/menu"
)

const (
	DisplayDriverGpio   = "gpio"
	DisplayDriverI2C    = "i2c"
	DisplayDriverSerial = "serial"
	DisplayDriverMock   = "mock"

	EepromDriverFile   = "file"
	EepromDriverAT24C  = "at24c"
	EepromDriverMemory = "memory"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []Source `hcl:"include"`

	Log struct {
		Level string `hcl:"level"`
	}

	Display struct { //nolint:maligned
		Driver   string `hcl:"driver"`
		Width    int    `hcl:"width"`
		Codepage string `hcl:"codepage"`
		Gpio     struct {
			Chip   string     `hcl:"chip"`
			Pinmap lcd.PinMap `hcl:"pinmap"`
			Page1  bool       `hcl:"page1"`
		}
		I2C struct {
			Bus  string `hcl:"bus"`
			Addr int    `hcl:"addr"`
		} `hcl:"i2c"`
		Serial struct {
			Port string `hcl:"port"`
			Baud int    `hcl:"baud"`
		}
	}

	Input struct {
		DevInputEvent struct {
			Enable bool   `hcl:"enable"`
			Device string `hcl:"device"`
		} `hcl:"dev_input_event"`
		GpioButtons struct {
			Enable     bool   `hcl:"enable"`
			Chip       string `hcl:"chip"`
			Lines      []int  `hcl:"lines"`
			DebounceMs int    `hcl:"debounce_ms"`
		} `hcl:"gpio_buttons"`
		Buttons []Button `hcl:"button"`
	}

	Menu struct {
		RefreshMs      int   `hcl:"refresh_ms"`
		AutoclickMs    int   `hcl:"autoclick_ms"`
		AutoclickSlots []int `hcl:"autoclick_slots"`
	}

	Eeprom struct {
		Driver  string `hcl:"driver"`
		Root    string `hcl:"root"`
		Size    int    `hcl:"size"`
		I2CBus  string `hcl:"i2c_bus"`
		I2CAddr int    `hcl:"i2c_addr"`
	}
}

type Source struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

type Button struct {
	Name string `hcl:"name,key"`
	Key  int    `hcl:"key"`
	Slot int    `hcl:"slot"`
}

func (c *Config) Defaults() {
	if c.Display.Driver == "" {
		c.Display.Driver = DisplayDriverMock
	}
	if c.Display.Width == 0 {
		c.Display.Width = menu.DisplayWidth
	}
	if c.Display.Gpio.Chip == "" {
		c.Display.Gpio.Chip = "/dev/gpiochip0"
	}
	if c.Display.Serial.Baud == 0 {
		c.Display.Serial.Baud = 9600
	}
	if c.Input.GpioButtons.Chip == "" {
		c.Input.GpioButtons.Chip = "/dev/gpiochip0"
	}
	if c.Menu.RefreshMs == 0 {
		c.Menu.RefreshMs = 500
	}
	if c.Eeprom.Driver == "" {
		c.Eeprom.Driver = EepromDriverMemory
	}
	if c.Eeprom.Size == 0 {
		c.Eeprom.Size = 1024
	}
}

func (c *Config) Validate() error {
	errs := make([]error, 0, 4)
	switch c.Display.Driver {
	case DisplayDriverGpio, DisplayDriverI2C, DisplayDriverSerial, DisplayDriverMock:
	default:
		errs = append(errs, errors.NotValidf("display driver=%s", c.Display.Driver))
	}
	if c.Display.Width < menu.DisplayWidth || c.Display.Width > lcd.MaxWidth {
		errs = append(errs, errors.NotValidf("display width=%d", c.Display.Width))
	}
	for _, b := range c.Input.Buttons {
		if b.Slot < 0 || b.Slot >= menu.MenuSlots {
			errs = append(errs, errors.NotValidf("button=%s slot=%d", b.Name, b.Slot))
		}
	}
	for _, line := range c.Input.GpioButtons.Lines {
		if line < 0 {
			errs = append(errs, errors.NotValidf("gpio button line=%d", line))
		}
	}
	for _, slot := range c.Menu.AutoclickSlots {
		if slot < 0 || slot >= menu.MenuSlots {
			errs = append(errs, errors.NotValidf("autoclick slot=%d", slot))
		}
	}
	switch c.Eeprom.Driver {
	case EepromDriverFile, EepromDriverAT24C, EepromDriverMemory:
	default:
		errs = append(errs, errors.NotValidf("eeprom driver=%s", c.Eeprom.Driver))
	}
	if c.Eeprom.Driver == EepromDriverFile && c.Eeprom.Root == "" {
		errs = append(errs, errors.NotValidf("eeprom file root=empty"))
	}
	if c.Eeprom.Size <= 0 || c.Eeprom.Size > 1<<16 {
		errs = append(errs, errors.NotValidf("eeprom size=%d", c.Eeprom.Size))
	}
	return helpers.FoldErrors(errs)
}

func (c *Config) RefreshInterval() time.Duration {
	return helpers.IntMillisecondDefault(c.Menu.RefreshMs, 0)
}
func (c *Config) AutoclickInterval() time.Duration {
	return helpers.IntMillisecondDefault(c.Menu.AutoclickMs, 0)
}

func (c *Config) GpioButtonLines() []uint32 {
	lines := make([]uint32, len(c.Input.GpioButtons.Lines))
	for i, l := range c.Input.GpioButtons.Lines {
		lines[i] = uint32(l)
	}
	return lines
}

func (c *Config) read(log *log2.Log, fs FullReader, source Source, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []Source
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		panic("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		if err := osfs.SetBase(dir); err != nil {
			return nil, err
		}
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, Source{Name: name}, &errs)
	}
	if len(errs) == 0 {
		c.Defaults()
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
