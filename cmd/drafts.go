package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/assetview/internal/drafts"
)

func newDraftsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved refinement drafts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	withStore := func(fn func(cmd *cobra.Command, s drafts.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := openDraftStore(o.cfg.Drafts.Path, o)
			if err != nil {
				return err
			}
			defer s.Close()
			err = fn(cmd, s, args)
			if errors.Is(err, drafts.ErrNotFound) && len(args) > 0 {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			return err
		}
	}

	list := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List drafts, optionally by key prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, s drafts.Store, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			items, err := s.List(o.ctx, prefix)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, d := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Key, d.UpdatedAt.Format(time.RFC3339), firstLine(d.Body))
			}
			return nil
		}),
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a draft",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, s drafts.Store, args []string) error {
			d, err := s.Get(o.ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), d.Body)
			return err
		}),
	}

	set := &cobra.Command{
		Use:   "set <key> [body]",
		Short: "Store a draft; the body is read from stdin when omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withStore(func(cmd *cobra.Command, s drafts.Store, args []string) error {
			body := ""
			if len(args) == 2 {
				body = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read draft body: %w", err)
				}
				body = strings.TrimRight(string(data), "\n")
			}
			return s.Set(o.ctx, args[0], body)
		}),
	}

	del := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a draft",
		Args:    cobra.ExactArgs(1),
		RunE: withStore(func(_ *cobra.Command, s drafts.Store, args []string) error {
			return s.Delete(o.ctx, args[0])
		}),
	}

	cmd.AddCommand(list, get, set, del)
	return cmd
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
