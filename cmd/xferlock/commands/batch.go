package commands

import (
	"fmt"
	"os"

	perr "xferlock/internal/platform/errors"
	"xferlock/internal/services/transfer/domain"
	"xferlock/internal/services/transfer/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchFile accepts either a bare list or an object with an entries list
type batchFile struct {
	Entries []domain.Entry `yaml:"entries"`
}

func readEntries(path string) ([]domain.Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []domain.Entry
	if err := yaml.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var f batchFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "decode %s", path)
	}
	return f.Entries, nil
}

func batchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Validate a YAML list of domain and auth code pairs",
		Long: "Validate a YAML list of entries like\n\n" +
			"  - domain: example.com\n    auth_code: A1b2-C3d4\n\n" +
			"Later entries repeating a domain are reported as duplicates.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return perr.InvalidArgf("%s has no entries", args[0])
			}
			ck, err := a.checker()
			if err != nil {
				return err
			}

			form := service.NewForm(ck, a.composer(), service.Config{Delay: a.debounce, Site: a.site})
			defer form.Close()
			for _, e := range entries {
				if _, err := form.Add(e); err != nil {
					return err
				}
			}
			if err := form.Settle(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ev := range form.Verdicts() {
				a.printVerdict(out, ev.Entry.Domain, ev.Verdict)
			}
			sum := form.Summary()
			if a.asJSON {
				writeJSONLine(out, sum)
			} else {
				_, _ = fmt.Fprintf(out, "%d of %d ready to transfer\n", sum.Valid, sum.Total)
			}
			if !sum.AllValid {
				return errRejected
			}
			return nil
		},
	}
}
