package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thiagokokada/git-branches/internal/buildinfo"
	"github.com/thiagokokada/git-branches/internal/config"
	"github.com/thiagokokada/git-branches/internal/git"
	"github.com/thiagokokada/git-branches/internal/render"
)

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config

	stdout io.Writer
	stderr io.Writer

	format render.Format
	color  render.ColorMode
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "git-branches",
		Short: "List and manage the branches of a git repository",
		Long: `git-branches lists local and remote-tracking branches, most recently
committed first, together with their upstream and tip commit. It can also
create, rename and delete branches, and watch a repository for changes.`,
		Version:           buildinfo.Version(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.init() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/git-branches/config.toml)")
	pf.StringP("repo", "C", ".", "path to the repository")
	pf.String("git", "git", "git executable")
	pf.String("backend", string(git.BackendCLI), "repository backend: cli or native (read-only)")
	pf.String("format", string(render.FormatTable), "output format: table, json or yaml")
	pf.String("color", string(render.ColorAuto), "colorize output: auto, always or never")
	pf.String("theme", render.ThemeAuto.String(), "color theme: auto, light or dark")
	pf.Bool("reverse-order", false, "reverse the order returned by git")
	pf.BoolP("verbose", "v", false, "enable verbose logging")

	for key, flag := range map[string]string{
		config.KeyRepo:         "repo",
		config.KeyGit:          "git",
		config.KeyBackend:      "backend",
		config.KeyFormat:       "format",
		config.KeyColor:        "color",
		config.KeyTheme:        "theme",
		config.KeyReverseOrder: "reverse-order",
		config.KeyVerbose:      "verbose",
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newListCmd(a),
		newCurrentCmd(a),
		newCreateCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	setupLogging(a.stderr, cfg.Verbose)

	if a.format, err = render.ParseFormat(cfg.Format); err != nil {
		return err
	}
	if a.color, err = render.ParseColorMode(cfg.Color); err != nil {
		return err
	}
	if _, err := git.ParseBackendKind(cfg.Backend); err != nil {
		return err
	}
	slog.Debug("configuration loaded",
		slog.String("file", a.v.ConfigFileUsed()),
		slog.String("repo", cfg.Repo),
		slog.String("backend", cfg.Backend),
		slog.String("format", cfg.Format),
	)
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (a *app) openService(ctx context.Context) (*git.Service, error) {
	return git.Open(ctx, a.cfg.Repo, git.Options{
		Backend:      git.BackendKind(a.cfg.Backend),
		GitPath:      a.cfg.Git,
		ReverseOrder: a.cfg.ReverseOrder,
	})
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		Format: a.format,
		Color:  a.color.Enabled(a.stdout),
		Theme:  render.ThemeFromString(a.cfg.Theme),
	}
}

// completeLocalBranches offers local branch names for the first argument.
func (a *app) completeLocalBranches(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := a.init(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	svc, err := a.openService(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names, err := svc.LocalBranchNames(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
