package cli

import (
	"github.com/seva/internal/push"
	"github.com/spf13/cobra"
)

// NewGenVAPIDCommand prints a fresh Web Push key pair.
func NewGenVAPIDCommand(rootOpts *RootOptions) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "gen-vapid",
		Short: "Generate a VAPID key pair for web push",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				keys *push.VAPIDKeys
				err  error
			)
			if save != "" {
				keys, err = push.EnsureVAPIDKeys(save)
			} else {
				keys, err = push.GenerateVAPIDKeys()
			}
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), rootOpts.Format, map[string]any{
				"VAPID_PUBLIC_KEY":  keys.PublicKey,
				"VAPID_PRIVATE_KEY": keys.PrivateKey,
			})
		},
	}
	cmd.Flags().StringVarP(&save, "save", "s", "", "load the pair from this JSON file, generating and saving it if missing")
	return cmd
}
