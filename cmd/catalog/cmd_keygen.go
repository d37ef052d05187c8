package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/auth"
	"github.com/af-corp/model-catalog/internal/store"
)

func newKeygenCommand(root *rootOptions) *cobra.Command {
	var (
		name    string
		env     string
		expires string
		toStore bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an admin API key for the catalog service",
		Long: `Keygen creates a random admin key and prints it once together with its
SHA-256 hash. Add the hash to admin.key_hashes in catalog.yaml, or pass
--store to record it in the Postgres admin_keys table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			dur, err := auth.ParseDuration(expires)
			if err != nil {
				return fmt.Errorf("invalid --expires: %w", err)
			}
			expiresAt := time.Now().Add(dur)

			rawKey, err := auth.GenerateKey(env)
			if err != nil {
				return err
			}
			keyHash := auth.HashKey(rawKey)
			keyPrefix := auth.KeyPrefix(rawKey)

			keyID := "(not stored)"
			if toStore {
				cfg, err := root.serviceConfig()
				if err != nil {
					return err
				}
				pool, err := store.Connect(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer pool.Close()
				keyID, err = auth.NewCachedKeyStore(pool, nil).CreateKey(cmd.Context(), name, keyHash, keyPrefix, expiresAt)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Catalog Admin Key Generated ===")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Key ID:     %s\n", keyID)
			fmt.Fprintf(out, "  Name:       %s\n", name)
			fmt.Fprintf(out, "  Key Prefix: %s\n", keyPrefix)
			fmt.Fprintf(out, "  Key Hash:   %s\n", keyHash)
			fmt.Fprintf(out, "  Expires:    %s\n", expiresAt.Format(time.RFC3339))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  Admin Key (save this, it will NOT be shown again):")
			fmt.Fprintf(out, "  %s\n", rawKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Human-friendly key name (required)")
	cmd.Flags().StringVar(&env, "env", "prod", "Environment prefix")
	cmd.Flags().StringVar(&expires, "expires", "365d", "Expiry duration (e.g. 365d, 720h)")
	cmd.Flags().BoolVar(&toStore, "store", false, "Insert the key into the admin_keys table")

	return cmd
}
