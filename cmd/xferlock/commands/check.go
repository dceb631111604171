package commands

import (
	"xferlock/internal/services/transfer/domain"
	"xferlock/internal/services/transfer/service"

	"github.com/spf13/cobra"
)

func checkCmd(a *app) *cobra.Command {
	var (
		e       domain.Entry
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate one domain and auth code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ck, err := a.checker()
			if err != nil {
				return err
			}
			v := service.NewValidator(ck, 1, service.WithSite(a.site)).
				Validate(cmd.Context(), a.composer(), e, false, refresh)
			a.printVerdict(cmd.OutOrStdout(), e.Domain, v)
			if v.Err != nil {
				cmd.PrintErrln("registrar:", v.Err)
			}
			if !v.Valid {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&e.Domain, "domain", "", "domain to transfer in")
	cmd.Flags().StringVar(&e.AuthCode, "auth-code", "", "authorization code from the losing registrar")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore any cached registrar answer")
	_ = cmd.MarkFlagRequired("domain")
	return cmd
}
