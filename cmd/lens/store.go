package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/lens/internal/store"
)

func (c *cli) newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Read and write the fallback input store",
		Long: `The store holds the four exercise texts (original, user, ai, feedback) that
lens falls back to when they are not passed on the command line. Edits made
here are picked up by a running lens session.`,
	}
	cmd.AddCommand(c.newStoreGetCmd(), c.newStoreSetCmd(), c.newStoreImportCmd(), c.newStoreUseCmd())
	return cmd
}

func (c *cli) newStoreGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			if !store.ValidKey(key) {
				return fmt.Errorf("%w: %q", store.ErrInvalidKey, args[0])
			}
			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			value, ok, err := st.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not set", key)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(value, "\n"))
			return err
		},
	}
}

func (c *cli) newStoreSetCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Store a text; the value comes from the argument, --file, or stdin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			var value string
			switch {
			case len(args) == 2:
				value = args[1]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				value = string(data)
			default:
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				value = string(data)
			}
			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Set(cmd.Context(), key, value); err != nil {
				return err
			}
			c.logger.Zap().Info("store set", zap.String("key", key), zap.Int("bytes", len(value)))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read the value from a file")
	return cmd
}

func (c *cli) newStoreImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load original.txt, user.txt, ai.txt and feedback.txt from a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			imported := 0
			for _, key := range store.InputKeys() {
				path := filepath.Join(args[0], key+".txt")
				data, err := os.ReadFile(path)
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if err := st.Set(cmd.Context(), key, string(data)); err != nil {
					return err
				}
				imported++
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", key)
			}
			if imported == 0 {
				return fmt.Errorf("no input files found in %s", args[0])
			}
			c.logger.Zap().Info("store import", zap.String("dir", args[0]), zap.Int("files", imported))
			return nil
		},
	}
}

func (c *cli) newStoreUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <yaml|sqlite>",
		Short: "Switch the store backend and save the choice to .lens/config.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.SetStoreBackend(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "store: %s at %s\n", c.cfg.StoreBackend(), c.cfg.StorePath())
			return err
		},
	}
}
