package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"

	"github.com/spf13/cobra"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <file>",
		Short: "Decrypt a configuration file and print its wallets",
		Long:  "Prints the wallets of a lily_wallet_config file without private keys and mnemonics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			password, err := readPassword("Password: ", false)
			if err != nil {
				return err
			}
			defer clear(password)

			cfg, err := bitcoin.OpenConfig(data, password)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg.Summary())
		},
	}
}
