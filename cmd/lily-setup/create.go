package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	"github.com/AlexZinkM/lily-wallet-setup/internal/common"
	"github.com/AlexZinkM/lily-wallet-setup/internal/config"
	"github.com/AlexZinkM/lily-wallet-setup/internal/export"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
	"github.com/AlexZinkM/lily-wallet-setup/internal/session"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		name     string
		network  string
		existing string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wallet and export the encrypted configuration",
		Long: `Shows a new 24-word mnemonic, asks for a password and writes
lily_wallet_config-<timestamp>.txt to EXPORT_DIR. With --config the new wallet
is appended to an existing configuration file, which is opened with the same
password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := config.GetNetwork()
			if network != "" {
				var err error
				if selected, err = model.ParseNetwork(network); err != nil {
					return err
				}
			}
			return runCreate(cmd, name, selected, existing)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (prompted when empty)")
	cmd.Flags().StringVar(&network, "network", "", "mainnet or testnet (default BITCOIN_NETWORK)")
	cmd.Flags().StringVar(&existing, "config", "", "existing lily_wallet_config file to extend")
	return cmd
}

func runCreate(cmd *cobra.Command, name string, network model.Network, existing string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	wz, err := session.NewWizard(bitcoin.NewMnemonic)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Write down these words and keep them somewhere safe:")
	fmt.Fprintln(out)
	for i, word := range common.SplitWords(wz.Mnemonic()) {
		fmt.Fprintf(out, "%2d. %s\n", i+1, word)
	}
	fmt.Fprintln(out)

	if _, err := prompt(in, out, "Press Enter when you have written them down"); err != nil {
		return err
	}
	if err := wz.ConfirmWords(); err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		if name, err = prompt(in, out, "Account name: "); err != nil {
			return err
		}
	}

	password, err := readPassword("Password: ", true)
	if err != nil {
		return err
	}
	defer clear(password)

	cfg := model.NewConfigObject()
	if existing != "" {
		data, err := os.ReadFile(existing)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = bitcoin.OpenConfig(data, password); err != nil {
			return fmt.Errorf("failed to open %s: %w", existing, err)
		}
	}

	exporter := export.NewDirExporter(config.GetExportDir())
	opts := bitcoin.ExportOptions{
		Format: config.GetExportFormat(),
		Params: config.GetScryptParams(),
	}

	var result *bitcoin.Export
	err = wz.Export(func(mnemonic string) error {
		exp, err := bitcoin.CreateAndExportWallet(cfg, mnemonic, name, password, network, opts)
		if err != nil {
			return err
		}
		if err := exporter.Export(cmd.Context(), exp.Artifact, exp.ContentType, exp.FileName); err != nil {
			return err
		}
		result = exp
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wallet %q created (%s)\n", result.Wallet.Name, result.Wallet.Network)
	fmt.Fprintf(out, "  xpub:        %s\n", result.Wallet.XPub)
	fmt.Fprintf(out, "  fingerprint: %s\n", result.Wallet.ParentFingerprint)
	fmt.Fprintf(out, "  wallets:     %d\n", len(result.Config.Wallets))
	fmt.Fprintf(out, "Saved %s\n", exporter.PathFor(result.FileName))
	return nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
