package contacts

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RDP08/agenda.capas/client"
)

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server, &http.Client{Timeout: o.timeout})
}

// NewCommand returns the "contacts" command and its subcommands,
// which talk to a running server.
func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List and add contacts on a running server",
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:8888/api", "API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout") //nolint: mnd // arbitrary

	cmd.AddCommand(newListCommand(opts), newAddCommand(opts))
	return cmd
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view client.View
			if err := view.Load(cmd.Context(), opts.client()); err != nil {
				return err
			}
			return printContacts(cmd.OutOrStdout(), view.Contacts())
		},
	}
}

func newAddCommand(opts *options) *cobra.Command {
	var in client.CreateInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := opts.client().Create(cmd.Context(), in)

			var verr *client.ValidationError
			if errors.As(err, &verr) {
				cmd.SilenceUsage = true
				red := color.New(color.FgRed)
				for _, e := range verr.Errors {
					red.Fprintln(cmd.ErrOrStderr(), e) //nolint: errcheck // best effort
				}
				return verr
			}
			if err != nil {
				cmd.SilenceUsage = true
				return err
			}

			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "contact created") //nolint: errcheck // best effort
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number, separators are allowed")
	return cmd
}

func printContacts(w io.Writer, cs []client.Contact) error {
	if len(cs) == 0 {
		_, err := fmt.Fprintln(w, "no contacts yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint: mnd // padding
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tPHONE")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.Phone)
	}
	return tw.Flush()
}
