package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	apiURL   string
	timeout  time.Duration
	logLevel string
	jsonOut  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "Talk to the portfolio contact backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return errors.Wrap(err, "parsing --log-level")
			}
			goli.InitLogrus(level)
			opts.apiURL, err = types.ParseAPIURL(opts.apiURL)
			return errors.Wrap(err, "parsing --api-url")
		},
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logrus.Error(errors.Wrap(err, "Failed to load .env"))
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", goli.DefaultEnv("PORTFOLIO_API_URL", types.DefaultAPIURL), "contact backend base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 waits for the backend)")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print the raw response as JSON")

	root.AddCommand(newSubmitCmd(opts), newHealthCmd(opts))
	return root
}

func (o *options) client() *contactclient.Client {
	return contactclient.New(contactclient.Config{BaseURL: o.apiURL, UserAgent: "contactctl"})
}

func (o *options) context(parent context.Context) (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(parent, o.timeout)
	}
	return context.WithCancel(parent)
}

func newSubmitCmd(opts *options) *cobra.Command {
	var data types.ContactFormData

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			resp, err := opts.client().SubmitContact(ctx, data)
			if err != nil {
				printError(cmd.ErrOrStderr(), err)
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			message := resp.Message
			if message == "" {
				message = "Message sent"
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			if resp.Data != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", resp.Data.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&data.Name, "name", "", "your name")
	cmd.Flags().StringVar(&data.Email, "email", "", "your email address")
	cmd.Flags().StringVarP(&data.Message, "message", "m", "", "the message")
	for _, f := range []string{"name", "email", "message"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the contact backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			resp, err := opts.client().Health(ctx)
			if err != nil {
				printError(cmd.ErrOrStderr(), err)
				return err
			}
			if opts.jsonOut {
				if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
					return err
				}
			} else {
				status := "ok"
				if resp.Data != nil {
					status = resp.Data.Status
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", opts.apiURL, status)
			}
			if !resp.Success {
				return fmt.Errorf("backend is unhealthy: %s", resp.Message)
			}
			return nil
		},
	}
}

func printError(w io.Writer, err error) {
	apiErr, ok := contactclient.AsApiError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if apiErr.Status == 0 {
		fmt.Fprintf(w, "%s error: %s\n", apiErr.Kind, apiErr.Message)
	} else {
		fmt.Fprintf(w, "%s error (%d): %s\n", apiErr.Kind, apiErr.Status, apiErr.Message)
	}
	for _, fe := range apiErr.Errors {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
