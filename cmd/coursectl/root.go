package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"course-catalog-go/internal/courses"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL  string
	token   string
	timeout time.Duration
	verbose bool

	svc *courses.Service
}

func defaultAPIURL() string {
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "coursectl",
		Short:         "Browse and edit the course catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
			opts.svc = courses.New(
				opts.apiURL,
				courses.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
				courses.WithToken(opts.token),
			)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", defaultAPIURL(), "catalog API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("API_TOKEN"), "bearer token sent with course updates")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every request")

	cmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newSaveCmd(opts),
		newLessonsCmd(opts),
		newTokenCmd(),
	)

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("printing result: %w", err)
	}
	return nil
}
