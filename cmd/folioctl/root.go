package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mx-space/folio/pkg/client"
	"github.com/spf13/cobra"
)

const (
	envAPI      = "FOLIO_API"
	envPassword = "FOLIO_PASSWORD"
	defaultAPI  = "http://localhost:3000/api"
)

type globals struct {
	api       string
	tokenFile string
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Manage portfolio content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	api := os.Getenv(envAPI)
	if api == "" {
		api = defaultAPI
	}
	root.PersistentFlags().StringVar(&g.api, "api", api, "API base URL (env "+envAPI+")")
	root.PersistentFlags().StringVar(&g.tokenFile, "token-file", defaultTokenFile(), "where the session token is kept")

	root.AddCommand(
		newLoginCmd(g),
		newLogoutCmd(g),
		newProjectsCmd(g),
		newMessagesCmd(g),
		newUploadCmd(g),
	)
	return root
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".folioctl-token"
	}
	return filepath.Join(home, ".folioctl", "token")
}

func (g *globals) client() (*client.Client, error) {
	c, err := client.New(g.api)
	if err != nil {
		return nil, err
	}
	if token, err := g.readToken(); err == nil {
		c.SetToken(token)
	}
	return c, nil
}

func (g *globals) readToken() (string, error) {
	raw, err := os.ReadFile(g.tokenFile)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errors.New("empty token file")
	}
	return token, nil
}

func (g *globals) writeToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(g.tokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(g.tokenFile, []byte(token+"\n"), 0o600)
}
