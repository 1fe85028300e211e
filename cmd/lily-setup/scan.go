package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	"github.com/AlexZinkM/lily-wallet-setup/internal/client"
	"github.com/AlexZinkM/lily-wallet-setup/internal/config"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var configured []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List connected hardware wallets that are not configured yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			known := make([]model.Device, 0, len(configured))
			for _, fp := range configured {
				known = append(known, model.Device{Fingerprint: fp})
			}

			hwi := client.NewHWIClient(config.GetHWIBackendURL(), config.GetEnumerateTimeout())
			devices, err := bitcoin.ScanDevices(cmd.Context(), hwi, known)
			if errors.Is(err, client.ErrEnumerationFailed) || (err == nil && len(devices) == 0) {
				fmt.Fprintln(cmd.OutOrStdout(), "no devices detected")
				return nil
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tFINGERPRINT\tMODEL\tTYPE")
			for i, d := range devices {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, d.Fingerprint, d.Model, d.Type)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&configured, "configured", nil, "fingerprints of devices already configured")
	return cmd
}
