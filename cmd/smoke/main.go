package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &clientOptions{}
	root := &cobra.Command{
		Use:           "smoke",
		Short:         "Smoke tests against a running blueprint companion server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "base URL of the server")
	root.PersistentFlags().StringVar(&opts.secret, "secret", envOr("JWT_SECRET", "dev-secret"), "JWT signing secret shared with the server")
	root.PersistentFlags().StringVar(&opts.userID, "user", "smoke-user", "user id to authenticate as")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")

	checks := map[string]check{
		"health":    {"Health check", (*client).checkHealth},
		"card":      {"Agent card", (*client).checkAgentCard},
		"questions": {"Quiz questions", (*client).checkQuestions},
		"quiz":      {"Quiz submission", (*client).checkQuiz},
		"chat":      {"Companion chat", (*client).checkChat},
		"a2a":       {"A2A message", (*client).checkA2A},
	}
	order := []string{"health", "card", "questions", "quiz", "chat", "a2a"}

	for _, name := range order {
		ck := checks[name]
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: ck.title,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newClient(opts)
				if err != nil {
					return err
				}
				return runChecks(c, []check{ck})
			},
		})
	}
	root.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run every check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			all := make([]check, 0, len(order))
			for _, name := range order {
				all = append(all, checks[name])
			}
			return runChecks(c, all)
		},
	})
	return root
}

type check struct {
	title string
	fn    func(*client) error
}

func runChecks(c *client, checks []check) error {
	fmt.Printf("%s %s\n\n", bold("Blueprint companion smoke tests"), cyan(c.baseURL))
	failed := 0
	for _, ck := range checks {
		fmt.Printf("%s %s\n", blue("[TEST]"), ck.title)
		if err := ck.fn(c); err != nil {
			failed++
			fmt.Printf("%s %v\n\n", red("✗"), err)
			continue
		}
		fmt.Printf("%s passed\n\n", green("✓"))
	}
	fmt.Printf("%s passed %d, failed %d\n", bold("Summary:"), len(checks)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func note(format string, args ...interface{}) {
	fmt.Printf("  %s\n", yellow(fmt.Sprintf(format, args...)))
}
