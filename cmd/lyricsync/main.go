package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/TimelordUK/lyricsync/internal/config"
	"github.com/TimelordUK/lyricsync/internal/engine"
	"github.com/TimelordUK/lyricsync/internal/logging"
	"github.com/TimelordUK/lyricsync/internal/player"
	"github.com/TimelordUK/lyricsync/internal/render"
	"github.com/TimelordUK/lyricsync/internal/source"
	"github.com/TimelordUK/lyricsync/internal/ui"
	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

func main() {
	titleFlag := flag.String("title", "", "Track title")
	artistFlag := flag.String("artist", "", "Track artist")
	albumFlag := flag.String("album", "", "Track album (narrows remote lookups)")
	timeFlag := flag.String("t", "", "Start position (e.g., 1:23, 01:23.45, 83)")
	dumpFlag := flag.Bool("dump", false, "Print the parsed timeline as LRC and exit")
	separateFlag := flag.Bool("separate-title", false, "Keep the title out of the timeline")
	writeConfigFlag := flag.Bool("write-config", false, "Write the effective config file and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lyricsync [-title t] [-artist a] [-album b] [-t time] [-dump] [file.lrc]\n")
		fmt.Fprintf(os.Stderr, "  With a file, lyrics are read from it; otherwise they are looked up by title and artist.\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfig: %s\n", config.GetConfigPath())
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfigFlag {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(config.GetConfigPath())
		return
	}

	track := source.Track{Title: *titleFlag, Artist: *artistFlag, Album: *albumFlag}
	if flag.NArg() < 1 && !track.Complete() {
		flag.Usage()
		os.Exit(1)
	}
	if *separateFlag {
		cfg.Sync.TitleMode = lrc.TitleSeparate.String()
	}

	if err := run(cfg, track, flag.Arg(0), *timeFlag, *dumpFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, track source.Track, path, startAt string, dump bool) error {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	mode, err := lrc.ParseTitleMode(cfg.Sync.TitleMode)
	if err != nil {
		return err
	}

	var start int64
	if startAt != "" {
		if start, err = lrc.ParseTimestamp(startAt); err != nil {
			return err
		}
	}

	e := engine.New(lrc.NewParser(mode), log)
	e.SetSyncEnabled(cfg.Sync.Enabled)

	files := source.NewFileProvider(cfg.Sources.CacheDir)
	providers := []source.Provider{files}
	switch cfg.Sources.Remote {
	case "lrclib":
		providers = append(providers, source.NewLrcLibProvider(cfg.Sources.LrcLibURL, cfg.Timeout()))
	case "lyricsovh":
		providers = append(providers, source.NewLyricsOVHProvider(cfg.Sources.LyricsOVHURL, cfg.Timeout()))
	case "", "none":
	default:
		log.Warn("unknown remote provider", zap.String("remote", cfg.Sources.Remote))
	}
	chain := source.NewChain(providers...)

	clock := player.NewClock()

	if path != "" {
		if !render.IsLyricsFile(path) {
			log.Warn("file is not .lrc, reading it as lyric text", zap.String("path", path))
		}
		lyrics, err := files.Open(path, track)
		if err != nil {
			return err
		}
		track = lyrics.Track
		tl := e.Load(*lyrics)
		clock.SetDuration(tl.Duration() + 5000)

		if dump {
			fmt.Print(lrc.FormatLRC(tl))
			return nil
		}
	} else if dump {
		return fmt.Errorf("-dump needs a file")
	}

	clock.SeekTo(start)
	clock.Play()

	var program *tea.Program
	poller := engine.NewPoller(e, clock.PositionMS, func(f engine.Frame) {
		program.Send(ui.FrameMsg(f))
	}, cfg.PollInterval())

	model := ui.NewModel(ui.Options{
		Config: cfg,
		Engine: e,
		Clock:  clock,
		Chain:  chain,
		Files:  files,
		Log:    log,
		Track:  track,
		Poll:   poller.Poll,
	})

	program = tea.NewProgram(model, tea.WithAltScreen())
	poller.Start()
	defer poller.Close()

	names := make([]string, 0, len(chain.Providers()))
	for _, p := range chain.Providers() {
		names = append(names, p.Name())
	}
	log.Info("starting",
		zap.String("track", track.String()),
		zap.Bool("sync", cfg.Sync.Enabled),
		zap.Strings("providers", names),
		zap.String("cache_dir", files.Dir()),
		zap.Duration("poll", poller.Interval()),
	)
	_, err = program.Run()
	return err
}
