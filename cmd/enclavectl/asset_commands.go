package main

import "github.com/spf13/cobra"

var addAssetCmd = &cobra.Command{
	Use:   "add-asset",
	Short: "Register an asset under a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"asset_id":       mustFlag(cmd, "asset-id"),
			"token_type":     mustFlag(cmd, "token-type"),
			"symbol":         mustFlag(cmd, "symbol"),
			"name":           mustFlag(cmd, "name"),
			"decimals":       mustFlagInt(cmd, "decimals"),
		}
		if v := mustFlag(cmd, "contract-address"); v != "" {
			payload["contract_address"] = v
		}
		if v := mustFlag(cmd, "token-id"); v != "" {
			payload["token_id"] = v
		}
		return sendCommand("AddAsset", payload)
	},
}

var listAssetsCmd = &cobra.Command{
	Use:   "list-assets",
	Short: "List every asset registered on a wallet with balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("ListAssets", map[string]interface{}{"wallet_address": mustFlag(cmd, "wallet")})
	},
}

var addSubaccountCmd = &cobra.Command{
	Use:   "add-subaccount",
	Short: "Register a sub-account under a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("AddSubaccount", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
			"label":          mustFlag(cmd, "label"),
			"address":        mustFlag(cmd, "address"),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addAssetCmd, listAssetsCmd, addSubaccountCmd} {
		c.Flags().String("wallet", "", "wallet address (required)")
		c.MarkFlagRequired("wallet")
	}

	addAssetCmd.Flags().String("asset-id", "", "asset identifier (required)")
	addAssetCmd.Flags().String("token-type", "ETH", "ETH, ERC20, ERC721, or ERC1155")
	addAssetCmd.Flags().String("contract-address", "", "contract address (required for ERC20/721/1155)")
	addAssetCmd.Flags().String("token-id", "", "token id (required for ERC721/1155)")
	addAssetCmd.Flags().String("symbol", "", "asset symbol")
	addAssetCmd.Flags().String("name", "", "asset display name")
	addAssetCmd.Flags().Int("decimals", 18, "asset decimals")
	addAssetCmd.MarkFlagRequired("asset-id")

	addSubaccountCmd.Flags().String("subaccount-id", "", "sub-account identifier (required)")
	addSubaccountCmd.Flags().String("label", "", "sub-account label")
	addSubaccountCmd.Flags().String("address", "", "sub-account's own address")
	addSubaccountCmd.MarkFlagRequired("subaccount-id")

	rootCmd.AddCommand(addAssetCmd, listAssetsCmd, addSubaccountCmd)
}

func mustFlagInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}
