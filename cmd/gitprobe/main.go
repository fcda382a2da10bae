package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/emilianohg/gitprobe/internal/api"
	"github.com/emilianohg/gitprobe/internal/config"
	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/logging"
	"github.com/emilianohg/gitprobe/internal/process"
	"github.com/emilianohg/gitprobe/internal/tui"
)

// newRunner is replaced in tests.
var newRunner = func(dir string) process.Runner {
	return process.NewExecRunner(dir)
}

var rootCmd = &cobra.Command{
	Use:           "gitprobe",
	Short:         "Read-only git repository metadata",
	Long:          `Gitprobe reports branch, commit, tag, contributor and identity information for a git checkout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		if !session.Repository().IsRepository(cmd.Context()) {
			return fmt.Errorf("not a git repository (or any parent directory)")
		}

		// Launch TUI
		return tui.Run(session, tui.Options{CommitLimit: git.DefaultCommitLimit})
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "C", "", "Run as if started in this directory (default: work_dir or cwd)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log failed git calls and fallbacks to stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $GITPROBE_CONFIG or ~/.gitprobe/config.toml)")
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return process.ExitCodeOf(err)
	}
	return 0
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// openSession builds a repository session from the config file and the
// global flags.
func openSession(cmd *cobra.Command) (*git.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.JSONFormat = cfg.LogJSON
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logCfg.Level = logging.LogLevelDebug
	}
	logging.Initialize(logCfg)

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.WorkDir
	}

	fetcher, err := api.NewClient(cfg.APIBaseURL, cfg.UserAgent, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid api_base_url: %w", err)
	}

	repo := git.New(git.Options{
		Runner:    newRunner(dir),
		Fetcher:   fetcher,
		GitBinary: cfg.GitBinary,
		Host: git.Host{
			Name:          cfg.Host,
			NoreplyDomain: cfg.NoreplyDomain,
			CLI:           cfg.GHBinary,
		},
		Remote:         cfg.Remote,
		APIBaseURL:     cfg.APIBaseURL,
		FallbackBranch: cfg.FallbackBranch,
		Logger:         logging.WithField("dir", dir),
	})
	return git.NewSession(repo), nil
}
