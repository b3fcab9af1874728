package main

import "github.com/spf13/cobra"

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new key pair and return its address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("Keygen", map[string]interface{}{})
	},
}

var listKeysCmd = &cobra.Command{
	Use:   "list-keys",
	Short: "List every address the key manager holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand("List", map[string]interface{}{})
	},
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign an EIP-191 personal_sign message with a KM-held key",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		message, _ := cmd.Flags().GetString("message")
		return sendCommand("Sign", map[string]interface{}{
			"address": address,
			"message": []byte(message),
		})
	},
}

func init() {
	signCmd.Flags().String("address", "", "address to sign with (required)")
	signCmd.Flags().String("message", "", "message to sign (required)")
	signCmd.MarkFlagRequired("address")
	signCmd.MarkFlagRequired("message")

	rootCmd.AddCommand(keygenCmd, listKeysCmd, signCmd)
}
