package commands

import (
	"bufio"
	"context"
	"strings"

	"xferlock/internal/services/transfer/domain"
	"xferlock/internal/services/transfer/service"

	"github.com/spf13/cobra"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Read \"domain auth-code\" lines from stdin and print verdicts as they change",
		Long: "Each input line replaces the current entry, as if typed into a form field.\n" +
			"Lines arriving within the debounce window are coalesced and stale\n" +
			"registrar answers are dropped. At end of input the final verdict is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ck, err := a.checker()
			if err != nil {
				return err
			}
			s := service.NewSession(ck, a.composer(), service.Config{Delay: a.debounce, Site: a.site})
			defer s.Close()

			out := cmd.OutOrStdout()
			wctx, stop := context.WithCancel(cmd.Context())
			printed := make(chan struct{})
			go func() {
				defer close(printed)
				label := ""
				for v := range s.Watch(wctx) {
					if in := s.Input(); in.Domain != "" {
						label = in.Domain
					}
					a.printVerdict(out, label, v)
				}
			}()

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				s.Update(parseLine(line))
			}
			if err := sc.Err(); err != nil {
				stop()
				<-printed
				return err
			}

			final, err := s.Settle(cmd.Context())
			stop()
			<-printed
			if err != nil {
				return err
			}
			a.printVerdict(out, "final", final)
			if !final.Valid {
				return errRejected
			}
			return nil
		},
	}
}

// parseLine splits "domain auth-code"; the auth code may contain spaces
func parseLine(line string) domain.Input {
	d, code, _ := strings.Cut(line, " ")
	return domain.Input{Domain: d, AuthCode: strings.TrimSpace(code)}
}
