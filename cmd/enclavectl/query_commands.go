package main

import "github.com/spf13/cobra"

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Query a single sub-account/asset balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("Balance", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
			"asset_id":       mustFlag(cmd, "asset-id"),
		})
	},
}

var subaccountBalancesCmd = &cobra.Command{
	Use:   "subaccount-balances",
	Short: "Query every non-zero asset balance of a sub-account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("SubaccountBalances", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
		})
	},
}

var signGsmCmd = &cobra.Command{
	Use:   "sign-gsm",
	Short: "Sign an arbitrary message under a wallet's own key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("SignGsm", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"domain":         mustFlag(cmd, "domain"),
			"message":        mustFlag(cmd, "message"),
		})
	},
}

var provenanceCmd = &cobra.Command{
	Use:   "provenance",
	Short: "Print a wallet's full provenance log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("Provenance", map[string]interface{}{"wallet_address": mustFlag(cmd, "wallet")})
	},
}

var provenanceByAssetCmd = &cobra.Command{
	Use:   "provenance-by-asset",
	Short: "Print a wallet's provenance log filtered to one asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("ProvenanceByAsset", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"asset_id":       mustFlag(cmd, "asset-id"),
		})
	},
}

var provenanceBySubaccountCmd = &cobra.Command{
	Use:   "provenance-by-subaccount",
	Short: "Print a wallet's provenance log filtered to one sub-account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("ProvenanceBySubaccount", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
		})
	},
}

func init() {
	all := []*cobra.Command{balanceCmd, subaccountBalancesCmd, signGsmCmd, provenanceCmd, provenanceByAssetCmd, provenanceBySubaccountCmd}
	for _, c := range all {
		c.Flags().String("wallet", "", "wallet address (required)")
		c.MarkFlagRequired("wallet")
	}

	balanceCmd.Flags().String("subaccount-id", "", "sub-account identifier (required)")
	balanceCmd.Flags().String("asset-id", "", "asset identifier (required)")
	balanceCmd.MarkFlagRequired("subaccount-id")
	balanceCmd.MarkFlagRequired("asset-id")

	subaccountBalancesCmd.Flags().String("subaccount-id", "", "sub-account identifier (required)")
	subaccountBalancesCmd.MarkFlagRequired("subaccount-id")

	signGsmCmd.Flags().String("domain", "", "host-defined signing domain (audit context only)")
	signGsmCmd.Flags().String("message", "", "message to sign verbatim (required)")
	signGsmCmd.MarkFlagRequired("message")

	provenanceByAssetCmd.Flags().String("asset-id", "", "asset identifier (required)")
	provenanceByAssetCmd.MarkFlagRequired("asset-id")

	provenanceBySubaccountCmd.Flags().String("subaccount-id", "", "sub-account identifier (required)")
	provenanceBySubaccountCmd.MarkFlagRequired("subaccount-id")

	rootCmd.AddCommand(all...)
}
