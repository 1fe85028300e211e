// lily-setup discovers hardware wallets and creates password-encrypted
// single-signer wallet configurations.
//
// @title        Lily Wallet Setup API
// @version      1.0
// @description  Local API for hardware wallet discovery and encrypted wallet configuration export.
// @BasePath     /
package main

import (
	"os"

	"github.com/AlexZinkM/lily-wallet-setup/internal/config"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev" // this will be set by the linker

// readPassword is swapped in tests
var readPassword = config.ReadPassword

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

// newRootCmd creates a fresh command tree, used by main and by tests.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lily-setup",
		Short: "Hardware wallet discovery and encrypted wallet configuration export.",
		Long: `lily-setup lists connected hardware wallets through an HWI backend and
creates single-signer software wallets. A created wallet is appended to the
configuration, which is encrypted with your password and written as
lily_wallet_config-<timestamp>.txt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			return logging.SetLevel(config.GetLogLevel())
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newOpenCmd())

	cmd.Version = version
	return cmd
}
