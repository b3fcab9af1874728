package main

import "github.com/spf13/cobra"

var createWalletCmd = &cobra.Command{
	Use:   "create-wallet",
	Short: "Create a new wallet (generates a fresh key under the hood)",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		owner, _ := cmd.Flags().GetString("owner")
		return sendCommand("CreateWallet", map[string]interface{}{"name": name, "owner": owner})
	},
}

var listWalletsCmd = &cobra.Command{
	Use:   "list-wallets",
	Short: "List every wallet address known to the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("ListWallets", map[string]interface{}{})
	},
}

var walletStateCmd = &cobra.Command{
	Use:   "wallet-state",
	Short: "Print a wallet's full aggregate state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("WalletState", map[string]interface{}{"wallet_address": mustFlag(cmd, "wallet")})
	},
}

func init() {
	createWalletCmd.Flags().String("name", "", "wallet display name")
	createWalletCmd.Flags().String("owner", "", "wallet owner identifier")

	walletStateCmd.Flags().String("wallet", "", "wallet address (required)")
	walletStateCmd.MarkFlagRequired("wallet")

	rootCmd.AddCommand(createWalletCmd, listWalletsCmd, walletStateCmd)
}

func mustFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
