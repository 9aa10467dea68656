package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mx-space/folio/pkg/client"
	"github.com/spf13/cobra"
)

func newLoginCmd(g *globals) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in as the site admin.

The password is read from ` + envPassword + ` when set, otherwise from the
first line of stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv(envPassword)
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			c, err := g.client()
			if err != nil {
				return err
			}
			user, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := g.writeToken(c.Token()); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			name := email
			if user != nil && user.Name != "" {
				name = user.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			if c.Token() != "" {
				if err := c.Logout(cmd.Context()); err != nil {
					return err
				}
			}
			if err := os.Remove(g.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newProjectsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "projects", Short: "List and remove projects"}

	var filter client.ProjectFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			items, err := c.Projects(cmd.Context(), filter)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tFEATURED\tPUBLISHED")
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", p.ID, p.Title, p.Category, p.Featured, p.Published)
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&filter.Featured, "featured", false, "only featured projects")
	list.Flags().BoolVar(&filter.Published, "published", false, "only published projects")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and its technologies, features and gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			if err := c.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func newMessagesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "messages", Short: "Read contact messages"}

	var unread bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			items, err := c.Messages(cmd.Context(), client.MessageFilter{Unread: unread})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFROM\tSUBJECT\tREAD\tRECEIVED")
			for _, m := range items {
				fmt.Fprintf(tw, "%s\t%s <%s>\t%s\t%t\t%s\n", m.ID, m.Name, m.Email, m.Subject, m.Read,
					m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&unread, "unread", false, "only unread messages")

	read := &cobra.Command{
		Use:   "read <id>",
		Short: "Print a message and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			m, err := c.Message(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "From:    %s <%s>\n", m.Name, m.Email)
			if m.Subject != "" {
				fmt.Fprintf(out, "Subject: %s\n", m.Subject)
			}
			fmt.Fprintf(out, "Date:    %s\n\n%s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Content)
			if !m.Read {
				if _, err := c.MarkRead(cmd.Context(), m.ID, true); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(list, read)
	return cmd
}

func newUploadCmd(g *globals) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			c, err := g.client()
			if err != nil {
				return err
			}
			url, err := c.Upload(cmd.Context(), folder, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "destination folder (default general)")
	return cmd
}
