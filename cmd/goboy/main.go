package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/dmg/internal/config"
	"github.com/thelolagemann/dmg/internal/gameboy"
	"github.com/thelolagemann/dmg/pkg/log"
	"github.com/thelolagemann/dmg/pkg/saves"
	"github.com/thelolagemann/dmg/pkg/utils"
)

func main() {
	configFile := flag.String("config", "", "The YAML config file to load")
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	colours := flag.String("palette", "", "The palette to use. Can be greyscale, green, red or yellow")
	logLevel := flag.String("log", "", "The log level")
	frames := flag.Int("frames", 0, "The number of frames to run")
	screenshot := flag.String("screenshot", "", "Write the last frame as a PNG to this file")
	scale := flag.Int("scale", 0, "The scale of the screenshot")
	state := flag.String("state", "", "The state file to resume from and save to")
	saveFolder := flag.String("saves", "", "The folder battery saves are kept in")
	serialOut := flag.Bool("serial", false, "Print the bytes sent over the serial port")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	// flags that were set override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "boot":
			cfg.Boot = *bootROM
		case "palette":
			cfg.Palette = *colours
		case "log":
			cfg.LogLevel = *logLevel
		case "frames":
			cfg.Frames = *frames
		case "screenshot":
			cfg.Screenshot = *screenshot
		case "scale":
			cfg.Scale = *scale
		case "state":
			cfg.State = *state
		case "saves":
			cfg.Saves = *saveFolder
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	logger, err := log.NewWithLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, logger, *serialOut); err != nil {
		logger.Fatal(err.Error())
	}
}

func run(cfg config.Config, logger log.Logger, serialOut bool) error {
	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithPalette(cfg.ColourPalette()),
	}
	if cfg.Boot != "" {
		boot, err := utils.LoadFile(cfg.Boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if serialOut {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	var store *saves.Store
	if _, battery := gb.BatteryRAM(); battery && cfg.Saves != "" {
		store = saves.NewStore(cfg.Saves)
		ram, err := store.Latest(gb.Header().Title)
		if err != nil {
			return err
		}
		if ram != nil {
			if err := gb.LoadBatteryRAM(ram); err != nil {
				return err
			}
			logger.Infof("loaded battery save for %s", gb.Header().Title)
		}
	}

	if cfg.State != "" {
		switch b, err := os.ReadFile(cfg.State); {
		case err == nil:
			if err := gb.LoadState(b); err != nil {
				return err
			}
			logger.Infof("resumed from %s", cfg.State)
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}

	for i := 0; i < cfg.Frames; i++ {
		if _, err := gb.RunFrame(); err != nil {
			logger.Errorf("frame %d: %v", i, err)
			logger.Errorf("%s", gb.Registers())
			return err
		}
	}
	logger.Infof("ran %d frames (%d cycles)", cfg.Frames, gb.Cycles())

	if cfg.Screenshot != "" {
		if err := writeScreenshot(gb, cfg.Screenshot, cfg.Scale); err != nil {
			return err
		}
	}

	if cfg.State != "" {
		b, err := gb.SaveState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.State, b, 0644); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	if store != nil {
		ram, _ := gb.BatteryRAM()
		path, err := store.Write(gb.Header().Title, ram)
		if err != nil {
			return err
		}
		logger.Infof("battery saved to %s", path)
	}

	fmt.Printf("%016x\n", gb.FrameHash())
	return nil
}

func writeScreenshot(gb *gameboy.GameBoy, filename string, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := utils.WritePNG(f, gb.Image(), scale); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: %w", err)
	}
	return f.Close()
}
