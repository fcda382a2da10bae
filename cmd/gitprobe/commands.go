package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/report"
)

// withRepository runs fn against a freshly opened repository.
func withRepository(fn func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), cmd, session.Repository())
	}
}

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Print the current branch",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		fmt.Fprintln(cmd.OutOrStdout(), repo.Branch(ctx))
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List uncommitted files",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		files := repo.ChangedFiles(ctx)
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Working tree clean")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	}),
}

var contributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "List commit authors",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		for _, u := range repo.Contributors(ctx) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
		}
		return nil
	}),
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags by creation date",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		latest, _ := cmd.Flags().GetBool("latest")
		if latest {
			tag, ok := repo.CurrentTag(ctx)
			if !ok {
				return fmt.Errorf("no tag reachable from HEAD")
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		}
		for _, t := range repo.Tags(ctx) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.Name, t.Date)
		}
		return nil
	}),
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent commits",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		limit, _ := cmd.Flags().GetInt("number")
		for _, c := range repo.LastCommits(ctx, limit) {
			fmt.Fprintln(cmd.OutOrStdout(), report.CommitLine(c))
		}
		return nil
	}),
}

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the HEAD commit",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		c, ok := repo.LastCommit(ctx)
		if !ok {
			return fmt.Errorf("no commits yet")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "commit %s\n", c.Hash)
		fmt.Fprintf(out, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
		fmt.Fprintf(out, "Date:   %s\n\n", c.Date)
		fmt.Fprintf(out, "    %s\n", c.Message)
		return nil
	}),
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Print the remote as owner/name",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		slug := repo.RemoteURL(ctx)
		if slug == "" {
			return fmt.Errorf("no remote configured")
		}
		fmt.Fprintln(cmd.OutOrStdout(), slug)
		return nil
	}),
}

var defaultBranchCmd = &cobra.Command{
	Use:   "default-branch",
	Short: "Ask the hosting API for the default branch",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		fmt.Fprintln(cmd.OutOrStdout(), repo.GuessDefaultBranch(ctx))
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the git identity and hosting username",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, repo *git.Repository) error {
		u, err := repo.CurrentUser(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:     %s\n", u.Name)
		fmt.Fprintf(out, "Email:    %s\n", u.Email)
		if u.Username != "" {
			fmt.Fprintf(out, "Username: %s\n", u.Username)
		} else {
			fmt.Fprintln(out, "Username: unknown")
		}
		fmt.Fprintf(out, "Commits:  %d\n", repo.CommitCount(ctx, u))
		return nil
	}),
}

var usernameCmd = &cobra.Command{
	Use:   "username <display name>",
	Short: "Guess the hosting username for a display name",
	Long: `Guess the hosting username for a display name.

Tries, in order: noreply commit emails by that author, the host CLI login,
and the owner of the configured remote.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		username, ok := session.Repository().GuessUsername(cmd.Context(), name)
		if !ok {
			return fmt.Errorf("no username found for %q", name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), username)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print everything gitprobe knows about the checkout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		session, err := openSession(cmd)
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("number")
		offline, _ := cmd.Flags().GetBool("offline")
		noUser, _ := cmd.Flags().GetBool("no-user")

		s, err := report.Collect(cmd.Context(), session, report.Options{
			Commits:       limit,
			DefaultBranch: !offline,
			User:          !noUser,
		})
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), s, format)
	},
}

func init() {
	tagsCmd.Flags().Bool("latest", false, "Print only the most recent tag reachable from HEAD")

	logCmd.Flags().IntP("number", "n", git.DefaultCommitLimit, "Number of commits to show")

	summaryCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	summaryCmd.Flags().IntP("number", "n", 5, "Number of recent commits to include")
	summaryCmd.Flags().Bool("offline", false, "Skip the default branch API lookup")
	summaryCmd.Flags().Bool("no-user", false, "Skip the git identity lookup")

	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(defaultBranchCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usernameCmd)
	rootCmd.AddCommand(summaryCmd)
}
