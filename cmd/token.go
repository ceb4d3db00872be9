package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/proconsult/onboard/internal/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Acquire an access token and show its claims",
	Long: `Request a client-credentials token from the identity service and print what
can be read from it without verifying the signature. Useful to check the
credentials and the deployment host.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		tok, err := rt.tokens.EnsureToken(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "identity service: %s\n", rt.urls.Identity)
		info := token.Inspect(tok)
		if !info.IsJWT {
			_, _ = fmt.Fprintln(out, "format:           opaque")
			return nil
		}
		_, _ = fmt.Fprintln(out, "format:           jwt")
		_, _ = fmt.Fprintf(out, "subject:          %s\n", info.Subject)
		_, _ = fmt.Fprintf(out, "issuer:           %s\n", info.Issuer)
		if !info.ExpiresAt.IsZero() {
			_, _ = fmt.Fprintf(out, "expires:          %s (in %s)\n",
				info.ExpiresAt.Format(time.RFC3339), time.Until(info.ExpiresAt).Round(time.Second))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
