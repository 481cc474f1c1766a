package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	appiCli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/vcprompt/internal/buildinfo"
	"github.com/chmouel/vcprompt/internal/config"
	"github.com/chmouel/vcprompt/internal/format"
	"github.com/chmouel/vcprompt/internal/log"
	"github.com/chmouel/vcprompt/internal/vcs"
	"github.com/chmouel/vcprompt/internal/watch"
)

// run renders the prompt line for the repository containing the
// current (or given) directory. Outside any repository it prints
// nothing and succeeds, a shell prompt must never show an error.
func run(ctx context.Context, cmd *appiCli.Command) error {
	if cmd.Bool("version") {
		fmt.Println("vcprompt " + buildinfo.String())
		return nil
	}

	log.SetVerbosity(cmd.Count("verbose"))

	cfg, err := config.Load(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vcprompt: error loading config: %v\n", err)
		cfg = config.Default()
	}
	if cmd.IsSet("debug-log") {
		cfg.DebugLog = cmd.String("debug-log")
	}
	setupDebugLog(cfg.DebugLog)
	defer func() {
		_ = log.Close()
	}()

	repo, ok, err := detectRepo(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	if !ok {
		log.Infof("no repository here")
		return nil
	}
	log.Debugf("detected %s repository at %s", repo.System, repo.Root)

	// Per-repository git config sits between the environment and the
	// flags, so a flag still has the last word over everything.
	if repo.System == vcs.Git && cfg.ApplyRepo(repo.Root) {
		log.Infof("prompt disabled for %s", repo.Root)
		return nil
	}
	if err := applyFlags(cfg, cmd); err != nil {
		return err
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))

	if cmd.Bool("watch") {
		return watchLoop(ctx, repo, cfg, tty)
	}

	line, err := statusLine(ctx, repo, cfg, tty)
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

// applyFlags overlays command-line flags, the last precedence layer
// above file, environment and per-repository values.
func applyFlags(cfg *config.Config, cmd *appiCli.Command) error {
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
		if cfg.Format == "" {
			cfg.Format = format.DefaultPattern
		}
	}
	if cmd.IsSet("minimal") {
		cfg.Minimal = cmd.Bool("minimal")
	}
	if cmd.IsSet("color") {
		mode := strings.ToLower(strings.TrimSpace(cmd.String("color")))
		switch mode {
		case config.ColorAlways, config.ColorNever, config.ColorAuto:
			cfg.Color = mode
		default:
			return fmt.Errorf("unknown color mode %q", cmd.String("color"))
		}
	}
	if cmd.IsSet("max-branch-len") {
		if n := cmd.Int("max-branch-len"); n >= 0 {
			cfg.MaxBranchLen = int(n)
		}
	}
	if cmd.IsSet("debug-log") {
		cfg.DebugLog = cmd.String("debug-log")
	}
	return nil
}

func setupDebugLog(path string) {
	if path == "" {
		return
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		expanded = path
	}
	if err := log.SetFile(expanded); err != nil {
		fmt.Fprintf(os.Stderr, "vcprompt: cannot open debug log %q: %v\n", expanded, err)
	}
}

// detectRepo finds the enclosing repository. A directory argument must
// exist, mirroring a chdir into it.
func detectRepo(dir string) (*vcs.Repo, bool, error) {
	if dir == "" {
		repo, ok := vcs.Detect()
		return repo, ok, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, false, err
	}
	repo, ok := vcs.DetectAt(dir)
	return repo, ok, nil
}

// renderMode picks the layout. Minimal wins over a format pattern when
// both are configured.
func renderMode(cfg *config.Config) format.Mode {
	switch {
	case cfg.Minimal:
		return format.Minimal
	case cfg.Format != "":
		return format.FormatString
	default:
		return format.Detailed
	}
}

func renderOptions(cfg *config.Config) format.Options {
	return format.Options{
		Mode:         renderMode(cfg),
		Pattern:      cfg.Format,
		MaxBranchLen: cfg.MaxBranchLen,
	}
}

// colorize resolves or strips the symbolic color tags depending on the
// color mode and whether stdout is a terminal.
func colorize(s, mode string, tty bool) string {
	if mode == config.ColorNever || (mode == config.ColorAuto && !tty) {
		return format.Strip(s)
	}
	return format.Resolve(s)
}

func statusLine(ctx context.Context, repo *vcs.Repo, cfg *config.Config, tty bool) (string, error) {
	st, err := repo.Status(ctx)
	if err != nil {
		return "", err
	}
	return colorize(format.Render(st, cfg.Templates, renderOptions(cfg)), cfg.Color, tty), nil
}

// watchLoop prints the prompt line, then reprints it whenever the
// repository metadata changes, one line per refresh. Bursts of events
// are coalesced so the line reflects the state after the burst.
func watchLoop(ctx context.Context, repo *vcs.Repo, cfg *config.Config, tty bool) error {
	w := watch.New()
	if err := w.Start(repo.MetaDir(), repo.WatchTrees()); err != nil {
		return err
	}
	defer w.Stop()

	line, err := statusLine(ctx, repo, cfg, tty)
	if err != nil {
		return err
	}
	fmt.Println(line)
	last := line

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Events():
			if !w.ShouldRefresh(time.Now()) {
				// Too soon after the last refresh, let the burst
				// settle and render its end state once.
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(watch.Debounce):
				}
				drainEvents(w)
			}
			line, err := statusLine(ctx, repo, cfg, tty)
			if err != nil {
				log.Warnf("refresh failed: %v", err)
				continue
			}
			if line != last {
				fmt.Println(line)
				last = line
			}
		}
	}
}

func drainEvents(w *watch.Watcher) {
	for {
		select {
		case <-w.Events():
		default:
			return
		}
	}
}
