// Package main is the entry point for the mdbridge CLI application.
//
// mdbridge bridges Markdown and the remote structured-document service.
// The binary exposes three surfaces:
//
// 1. "serve" runs the MCP server over stdio for AI assistant clients
// 2. "preview" fetches a document and renders it as Markdown locally
// 3. "auth" stores or removes the service token in the OS keyring
//
// The main function only wires commands together; all behavior lives in
// the internal packages.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"mdbridge/internal/config"
	"mdbridge/internal/docs"
	"mdbridge/internal/logging"
	"mdbridge/internal/markdown"
	"mdbridge/internal/mcp"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mdbridge",
		Short:         "Bridge Markdown and the structured-document service",
		Version:       mcp.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newAuthCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: "Runs the Model Context Protocol server on stdin/stdout until the\n" +
			"client disconnects. All logging goes to stderr so the protocol\n" +
			"stream stays clean.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewAppLogger()

			cfg, err := config.Load()
			if err != nil {
				logger.Error("Error loading config", "error", err)
				return err
			}
			logger.Info("Configuration loaded", "serviceURL", cfg.ServiceURL)

			return mcp.NewServer(cfg, logger).Start()
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview <document-id>",
		Short: "Fetch a document and print it as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewAppLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, err := docs.NewCredentialManager().ResolveToken()
			if err != nil {
				return err
			}

			client := docs.NewClient(cfg.ServiceURL, token, cfg.Timeout(), logger)
			doc, err := client.GetDocument(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch document %s: %w", args[0], err)
			}

			md := markdown.FromDocument(doc)
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}

			rendered, err := glamour.Render(md, "auto")
			if err != nil {
				// Terminal rendering is cosmetic; fall back to plain output.
				logger.Warn("Markdown rendering failed, printing raw", "error", err)
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print plain Markdown without terminal styling")
	return cmd
}

func newAuthCmd() *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Manage the service token",
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Store the service token in the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := promptToken(cmd)
			if err != nil {
				return err
			}

			if err := docs.NewCredentialManager().StoreServiceToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored.")
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Remove the service token from the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := docs.NewCredentialManager().DeleteServiceToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	}

	auth.AddCommand(login)
	auth.AddCommand(logout)
	return auth
}

// promptToken reads the token without echoing when stdin is a terminal,
// and falls back to a plain line read when it is piped.
func promptToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Service token: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var token string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}
