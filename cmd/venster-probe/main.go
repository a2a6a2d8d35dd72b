package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	venster "github.com/venster-gl/venster"
	"github.com/venster-gl/venster/internal/profile"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "info":
		os.Exit(runInfo(os.Args[2:]))
	case "clipboard":
		os.Exit(runClipboard(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: venster-probe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  open                Open a window and log normalized events")
	fmt.Fprintln(w, "  info                Show monitors, content scale and EGL details")
	fmt.Fprintln(w, "  clipboard get|set   Read or write the clipboard selection")
}

// newLogger builds a text handler on terminals and JSON elsewhere, so
// piped probe output stays machine-readable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	profilePath := fs.String("profile", "", "window profile path (default ~/.config/venster/probe.yaml)")
	verbose := fs.Bool("v", false, "debug logging")
	timeout := fs.Duration("timeout", 0, "close the window after this duration")
	fs.Parse(args)

	log := newLogger(*verbose)

	path := *profilePath
	if path == "" {
		var err error
		path, err = profile.DefaultPath()
		if err != nil {
			log.Error("failed to resolve profile path", "error", err)
			return 1
		}
	}
	prof, err := profile.Load(path)
	if err != nil {
		log.Error("failed to load profile", "path", path, "error", err)
		return 1
	}
	hints, err := prof.Hints()
	if err != nil {
		log.Error("invalid profile", "path", path, "error", err)
		return 1
	}

	if err := venster.Init(
		venster.WithLogger(log),
		venster.WithErrorSink(func(e *venster.Error) {
			log.Warn("library error", "kind", e.Kind.String(), "message", e.Message)
		}),
	); err != nil {
		log.Error("init failed", "error", err)
		return 1
	}
	defer venster.Terminate()

	if prof.Fullscreen() {
		monitor, err := venster.PrimaryMonitor()
		if err != nil {
			log.Error("no primary monitor", "error", err)
			return 1
		}
		hints.Monitor = monitor
	}

	width, height := prof.Size()
	win, err := venster.CreateWindow(width, height, prof.Title(), hints)
	if err != nil {
		log.Error("window creation failed", "error", err)
		return 1
	}
	defer win.Destroy()

	win.SetCallbacks(eventLogger(log))

	if hints.Context.ClientAPI != venster.NoAPI {
		if err := venster.MakeContextCurrent(win); err != nil {
			log.Error("make current failed", "error", err)
			return 1
		}
		venster.SwapInterval(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		win.SetShouldClose(true)
		venster.PostEmptyEvent()
	}()
	if *timeout > 0 {
		go func() {
			time.Sleep(*timeout)
			win.SetShouldClose(true)
			venster.PostEmptyEvent()
		}()
	}

	for !win.ShouldClose() {
		venster.WaitEvents()
		if win.Context() != nil {
			if err := venster.SwapBuffers(win); err != nil {
				log.Warn("swap failed", "error", err)
			}
		}
	}
	return 0
}

// eventLogger logs every normalized event the window reports.
func eventLogger(log *slog.Logger) venster.Callbacks {
	return venster.Callbacks{
		Pos: func(w *venster.Window, x, y int) {
			log.Info("pos", "x", x, "y", y)
		},
		Size: func(w *venster.Window, width, height int) {
			log.Info("size", "width", width, "height", height)
		},
		Focus: func(w *venster.Window, focused bool) {
			log.Info("focus", "focused", focused)
		},
		Iconify: func(w *venster.Window, iconified bool) {
			log.Info("iconify", "iconified", iconified)
		},
		Maximize: func(w *venster.Window, maximized bool) {
			log.Info("maximize", "maximized", maximized)
		},
		CloseRequest: func(w *venster.Window) {
			log.Info("close requested")
		},
		Key: func(w *venster.Window, key venster.Key, scancode int, action venster.Action, mods venster.ModifierKey) {
			log.Info("key", "key", int(key), "scancode", scancode, "action", int(action), "mods", int(mods))
		},
		Char: func(w *venster.Window, r rune, mods venster.ModifierKey, plain bool) {
			log.Info("char", "rune", string(r), "mods", int(mods), "plain", plain)
		},
		MouseButton: func(w *venster.Window, button venster.MouseButton, action venster.Action, mods venster.ModifierKey) {
			log.Info("button", "button", int(button), "action", int(action), "mods", int(mods))
		},
		Scroll: func(w *venster.Window, xoff, yoff float64) {
			log.Info("scroll", "x", xoff, "y", yoff)
		},
		CursorEnter: func(w *venster.Window, entered bool) {
			log.Info("cursor enter", "entered", entered)
		},
		Drop: func(w *venster.Window, paths []string) {
			log.Info("drop", "paths", paths)
		},
	}
}

func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)

	log := newLogger(*verbose)
	if err := venster.Init(venster.WithLogger(log)); err != nil {
		log.Error("init failed", "error", err)
		return 1
	}
	defer venster.Terminate()

	name, _ := venster.XDisplayName()
	fmt.Printf("display: %s\n", name)

	x, y, err := venster.ContentScale()
	if err == nil {
		fmt.Printf("content scale: %.2f x %.2f\n", x, y)
	}

	monitors, err := venster.Monitors()
	if err != nil {
		log.Error("failed to list monitors", "error", err)
		return 1
	}
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " (primary)"
		}
		fmt.Printf("monitor %d: %s %dx%d+%d+%d%s\n",
			m.ID, m.Name, m.Width, m.Height, m.X, m.Y, primary)
	}

	fmt.Printf("raw mouse motion: %v\n", venster.RawMouseMotionSupported())
	return 0
}

func runClipboard(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: venster-probe clipboard get|set <text>")
		return 2
	}
	log := newLogger(false)
	if err := venster.Init(venster.WithLogger(log)); err != nil {
		log.Error("init failed", "error", err)
		return 1
	}
	defer venster.Terminate()

	switch args[0] {
	case "get":
		s, err := venster.GetClipboardString()
		if err != nil {
			log.Error("clipboard read failed", "error", err)
			return 1
		}
		fmt.Println(s)
		return 0
	case "set":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: venster-probe clipboard set <text>")
			return 2
		}
		if err := venster.SetClipboardString(args[1]); err != nil {
			log.Error("clipboard write failed", "error", err)
			return 1
		}
		// The selection lives on our helper window; serve requests until
		// interrupted so other clients can fetch it.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		fmt.Fprintln(os.Stderr, "serving clipboard, ctrl-c to stop")
		for {
			select {
			case <-sigCh:
				return 0
			default:
				venster.WaitEventsTimeout(time.Second)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown clipboard action: %s\n", args[0])
		return 2
	}
}
