package cli

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

var genSecretCmd = &cobra.Command{
	Use:   "gen-secret",
	Short: "Print a random value for JWT_SECRET_ACCESS_TOKEN",
	RunE:  runGenSecret,
}

var secretBytes int

func init() {
	genSecretCmd.Flags().IntVar(&secretBytes, "bytes", 48, "random bytes before encoding")
}

func runGenSecret(cmd *cobra.Command, args []string) error {
	if secretBytes < 32 {
		return fmt.Errorf("gen-secret: --bytes must be at least 32")
	}
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("gen-secret: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), base64.RawURLEncoding.EncodeToString(buf))
	return nil
}
