// Interactive menu simulator on a mock display.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/config"
	"github.com/temoto/lcdmenu/hardware/eeprom"
	"github.com/temoto/lcdmenu/hardware/input"
	"github.com/temoto/lcdmenu/hardware/lcd"
	"github.com/temoto/lcdmenu/head"
	"github.com/temoto/lcdmenu/head/panel"
	"github.com/temoto/lcdmenu/helpers/cli"
	"github.com/temoto/lcdmenu/log2"
)

const usage = `syntax: commands separated by whitespace
- click N      click menu slot N=0..3
- autoclick N  autoclick menu slot N=0..3
- display      refresh screen
- show         print screen
- key CODE     send key press, like input device would
- eeprom ADDR  read int16 at ADDR
- help
`

var log = log2.NewStderr(log2.LDebug)

var commands = []prompt.Suggest{
	{Text: "click", Description: "click menu slot"},
	{Text: "autoclick", Description: "autoclick menu slot"},
	{Text: "display", Description: "refresh screen"},
	{Text: "show", Description: "print screen"},
	{Text: "key", Description: "send key press"},
	{Text: "eeprom", Description: "read int16"},
	{Text: "help"},
}

type sim struct {
	dev    *lcd.MockDevicer
	cells  eeprom.Cells
	runner *head.Runner
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "", "optional, display section is ignored")
	flagRoot := cmdline.String("eeprom-root", "", "directory for persistent eeprom image, memory if empty")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	cfg := &config.Config{}
	if *flagConfig != "" {
		cfg = config.MustReadConfig(log, config.NewOsFullReader(), *flagConfig)
	} else {
		cfg.Input.Buttons = []config.Button{
			{Name: "up", Key: 103, Slot: panel.SlotUp},
			{Name: "down", Key: 108, Slot: panel.SlotDown},
			{Name: "enter", Key: 28, Slot: panel.SlotSave},
			{Name: "space", Key: 57, Slot: panel.SlotRun},
		}
		cfg.Defaults()
	}
	if level, err := log2.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	s, err := newSim(cfg, *flagRoot)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	s.runner.Display()
	fmt.Println(s.dev.String())
	cli.MainLoop("lcdmenu-cli", s.exec, cli.Suggester(commands))
}

func newSim(cfg *config.Config, root string) (*sim, error) {
	self := &sim{dev: lcd.NewMockDevicer(uint8(cfg.Display.Width))}
	if root != "" {
		fs, err := eeprom.NewFileStore(root, cfg.Eeprom.Size, log)
		if err != nil {
			return nil, errors.Annotatef(err, "eeprom root=%s", root)
		}
		self.cells = fs
	} else {
		self.cells = eeprom.NewImage(cfg.Eeprom.Size)
	}

	surface, err := lcd.NewSurface(self.dev, "", log)
	if err != nil {
		return nil, errors.Trace(err)
	}
	p, err := panel.New(self.cells, log)
	if err != nil {
		return nil, errors.Trace(err)
	}
	self.runner = head.NewRunnerFromConfig(cfg, p.Menu(surface), nil, log)
	return self, nil
}

func (self *sim) exec(line string) {
	for _, word := range splitCommands(line) {
		if err := self.run(word); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
	}
}

func (self *sim) run(cmd []string) error {
	m := self.runner.Menu()
	switch cmd[0] {
	case "help":
		fmt.Print(usage)
	case "display":
		self.runner.Display()
	case "show":
		fmt.Println(self.dev.String())
	case "click", "autoclick":
		slot, err := intArg(cmd, 0, 3)
		if err != nil {
			return err
		}
		if cmd[0] == "click" {
			m.Click(slot)
		} else {
			m.Autoclick(slot)
		}
		self.runner.Display()
		fmt.Println(self.dev.String())
	case "key":
		code, err := intArg(cmd, 1, 0xffff)
		if err != nil {
			return err
		}
		if !self.runner.HandleEvent(input.Event{Source: "cli", Key: input.Key(code)}) {
			fmt.Printf("key=%d not mapped\n", code)
		}
		fmt.Println(self.dev.String())
	case "eeprom":
		addr, err := intArg(cmd, 0, eeprom.Size(self.cells)-eeprom.CheckedSize)
		if err != nil {
			return err
		}
		v, err := eeprom.ReadInt16Checked(self.cells, uint16(addr))
		switch {
		case err == nil:
			fmt.Printf("eeprom[%d]=%d crc=ok\n", addr, v)
		case eeprom.IsChecksum(err):
			fmt.Printf("eeprom[%d]=%d crc=bad\n", addr, v)
		default:
			return err
		}
	default:
		return errors.NotFoundf("command=%s", cmd[0])
	}
	return nil
}

// splitCommands parses "click 0 show" into [[click 0] [show]].
func splitCommands(line string) [][]string {
	words := strings.Fields(line)
	result := make([][]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		cmd := []string{words[i]}
		switch words[i] {
		case "click", "autoclick", "key", "eeprom":
			if i+1 < len(words) {
				i++
				cmd = append(cmd, words[i])
			}
		}
		result = append(result, cmd)
	}
	return result
}

func intArg(cmd []string, min, max int) (int, error) {
	if len(cmd) < 2 {
		return 0, errors.Errorf("%s: argument required", cmd[0])
	}
	x, err := strconv.Atoi(cmd[1])
	if err != nil {
		return 0, errors.Annotatef(err, "%s", cmd[0])
	}
	if x < min || x > max {
		return 0, errors.NotValidf("%s argument=%d range [%d,%d]", cmd[0], x, min, max)
	}
	return x, nil
}
