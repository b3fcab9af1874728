package main

import "github.com/spf13/cobra"

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Record an unclaimed inbound deposit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("InboxDeposit", map[string]interface{}{
			"wallet_address":   mustFlag(cmd, "wallet"),
			"asset_id":         mustFlag(cmd, "asset-id"),
			"amount":           mustFlag(cmd, "amount"),
			"deposit_id":       mustFlag(cmd, "deposit-id"),
			"transaction_hash": mustFlag(cmd, "tx-hash"),
			"block_number":     mustFlag(cmd, "block-number"),
			"from_address":     mustFlag(cmd, "from"),
			"to_address":       mustFlag(cmd, "to"),
		})
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim an unclaimed deposit into a sub-account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("Claim", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"deposit_id":     mustFlag(cmd, "deposit-id"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
		})
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move a balance between two sub-accounts of the same wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("Transfer", map[string]interface{}{
			"wallet_address":  mustFlag(cmd, "wallet"),
			"asset_id":        mustFlag(cmd, "asset-id"),
			"amount":          mustFlag(cmd, "amount"),
			"from_subaccount": mustFlag(cmd, "from"),
			"to_subaccount":   mustFlag(cmd, "to"),
		})
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Sign and stage an on-chain withdrawal",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"asset_id":       mustFlag(cmd, "asset-id"),
			"amount":         mustFlag(cmd, "amount"),
			"subaccount_id":  mustFlag(cmd, "subaccount-id"),
			"destination":    mustFlag(cmd, "destination"),
			"chain_id":       mustFlagInt(cmd, "chain-id"),
		}
		if v, _ := cmd.Flags().GetInt64("gas-price"); v > 0 {
			payload["gas_price"] = v
		}
		if v, _ := cmd.Flags().GetInt64("gas-limit"); v > 0 {
			payload["gas_limit"] = v
		}
		return sendCommand("Withdraw", payload)
	},
}

var listOutboxCmd = &cobra.Command{
	Use:   "list-outbox",
	Short: "List a wallet's signed outbound transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("ListOutbox", map[string]interface{}{"wallet_address": mustFlag(cmd, "wallet")})
	},
}

var removeOutboxCmd = &cobra.Command{
	Use:   "remove-outbox",
	Short: "Remove an outbox entry once its transaction has been broadcast",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("RemoveOutbox", map[string]interface{}{
			"wallet_address": mustFlag(cmd, "wallet"),
			"outbox_id":      mustFlagInt(cmd, "outbox-id"),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, claimCmd, transferCmd, withdrawCmd, listOutboxCmd, removeOutboxCmd} {
		c.Flags().String("wallet", "", "wallet address (required)")
		c.MarkFlagRequired("wallet")
	}

	depositCmd.Flags().String("asset-id", "", "asset identifier (required)")
	depositCmd.Flags().String("amount", "", "deposited amount, base units (required)")
	depositCmd.Flags().String("deposit-id", "", "caller-assigned deposit identifier (required)")
	depositCmd.Flags().String("tx-hash", "", "originating transaction hash")
	depositCmd.Flags().String("block-number", "", "originating block number")
	depositCmd.Flags().String("from", "", "sender address")
	depositCmd.Flags().String("to", "", "receiving address")
	for _, flag := range []string{"asset-id", "amount", "deposit-id"} {
		depositCmd.MarkFlagRequired(flag)
	}

	claimCmd.Flags().String("deposit-id", "", "deposit to claim (required)")
	claimCmd.Flags().String("subaccount-id", "", "destination sub-account (required)")
	claimCmd.MarkFlagRequired("deposit-id")
	claimCmd.MarkFlagRequired("subaccount-id")

	transferCmd.Flags().String("asset-id", "", "asset identifier (required)")
	transferCmd.Flags().String("amount", "", "amount to transfer, base units (required)")
	transferCmd.Flags().String("from", "", "source sub-account (required)")
	transferCmd.Flags().String("to", "", "destination sub-account (required)")
	for _, flag := range []string{"asset-id", "amount", "from", "to"} {
		transferCmd.MarkFlagRequired(flag)
	}

	withdrawCmd.Flags().String("asset-id", "", "asset identifier (required)")
	withdrawCmd.Flags().String("amount", "", "amount to withdraw, base units (required)")
	withdrawCmd.Flags().String("subaccount-id", "", "source sub-account (required)")
	withdrawCmd.Flags().String("destination", "", "destination address (required)")
	withdrawCmd.Flags().Int("chain-id", 1, "target chain id")
	withdrawCmd.Flags().Int64("gas-price", 0, "gas price in wei, 0 uses the asset default")
	withdrawCmd.Flags().Int64("gas-limit", 0, "gas limit, 0 uses the asset default")
	for _, flag := range []string{"asset-id", "amount", "subaccount-id", "destination"} {
		withdrawCmd.MarkFlagRequired(flag)
	}

	removeOutboxCmd.Flags().Int("outbox-id", 0, "outbox entry id (required)")
	removeOutboxCmd.MarkFlagRequired("outbox-id")

	rootCmd.AddCommand(depositCmd, claimCmd, transferCmd, withdrawCmd, listOutboxCmd, removeOutboxCmd)
}
