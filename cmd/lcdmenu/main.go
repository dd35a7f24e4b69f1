// Character LCD menu service.
package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
	"github.com/temoto/lcdmenu/config"
	"github.com/temoto/lcdmenu/head"
	"github.com/temoto/lcdmenu/head/panel"
	"github.com/temoto/lcdmenu/log2"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "lcdmenu.hcl", "")
	_ = cmdline.Parse(os.Args[1:])

	if sdnotify("start") || !isatty.IsTerminal(os.Stderr.Fd()) {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
		log.SetErrorFunc(errorStatus(daemon.SdNotify))
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	cfg := config.MustReadConfig(log, config.NewOsFullReader(), *flagConfig)
	level, err := log2.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	log.SetLevel(level)
	log.Debugf("config=%+v", cfg)

	a := alive.NewAlive()
	hw, err := head.OpenHardware(cfg, a.StopChan(), log)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	log.Infof("hardware %s", hw.String())

	p, err := panel.New(hw.Cells, log)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	m := p.Menu(hw.Surface)
	if err := m.Validate(); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	events := hw.Input.SubscribeChan("runner", a.StopChan())
	runner := head.NewRunnerFromConfig(cfg, m, events, log)

	go hw.RunInput()
	a.Add(1)
	go runner.Run(a)

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigch
		log.Infof("signal=%v stopping", s)
		a.Stop()
	}()

	sdnotify(daemon.SdNotifyReady)
	log.Infof("running")
	a.Wait()
	sdnotify(daemon.SdNotifyStopping)
	log.Infof("stopping, last key press %v ago", runner.LastActivity().Round(time.Second))

	// last chance to keep user changes
	p.Save()
	if err := p.SaveErr(); err != nil {
		log.Error(errors.ErrorStack(err))
	}
	if err := hw.Close(); err != nil {
		log.Error(errors.ErrorStack(err))
	}
}

// errorStatus shows last error in `systemctl status`.
// Notify errors are dropped, reporting them would loop back here.
func errorStatus(notify func(bool, string) (bool, error)) log2.ErrorFunc {
	return func(e error) {
		_, _ = notify(false, "STATUS=error: "+firstLine(e.Error()))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
