package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect and retry submissions the storefront rejected",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := start(cmd, args); err != nil {
				return err
			}
			if a.Store == nil {
				return errors.New("store.dsn is empty; the draft journal is disabled")
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List journaled drafts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.Store.ListDrafts(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tKIND\tMODE\tENTITY\tATTEMPTS\tSAVED\tLAST ERROR")
			for _, d := range ds {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
					d.Id, d.Kind, d.Mode, orDash(d.EntityId), d.Attempts,
					d.CreatedAt.Local().Format("2006-01-02 15:04"), d.LastError)
			}
			return w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print the payload of a journaled draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := draftID(args[0])
			if err != nil {
				return err
			}
			d, err := a.Store.GetDraft(cmd.Context(), id)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, d.Payload, "", "  "); err != nil {
				return fmt.Errorf("draft %d has a malformed payload: %w", id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	retry := &cobra.Command{
		Use:   "retry ID",
		Short: "Submit a journaled draft again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := draftID(args[0])
			if err != nil {
				return err
			}
			_, err = a.Sync.Retry(cmd.Context(), id)
			return err
		},
	}

	drop := &cobra.Command{
		Use:   "drop ID",
		Short: "Discard a journaled draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := draftID(args[0])
			if err != nil {
				return err
			}
			if err := a.Store.DeleteDraft(cmd.Context(), id); err != nil {
				return err
			}
			a.Notifier.Success("Draft discarded", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, retry, drop)
	return cmd
}

func draftID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft id %q", s)
	}
	return id, nil
}
