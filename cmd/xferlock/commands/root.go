// Package commands implements the xferlock CLI
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"xferlock/internal/adapters/registrar"
	"xferlock/internal/core/verdict"
	"xferlock/internal/modkit"
	"xferlock/internal/platform/config"
	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	acdom "xferlock/internal/services/authcheck/domain"
	acmod "xferlock/internal/services/authcheck/module"

	"github.com/spf13/cobra"
)

// errRejected makes the process exit non-zero when an entry is not accepted
var errRejected = errors.New("transfer not accepted")

type app struct {
	cfg config.Conf

	lang     string
	baseURL  string
	token    string
	timeout  time.Duration
	debounce time.Duration
	site     string
	asJSON   bool

	// remote replaces the registrar client, tests set it
	remote acdom.RemotePort
}

// Execute runs the root command with process env and stdio
func Execute() error {
	logger.Init(logger.FromEnv())
	err := newRootCmd(&app{cfg: config.New()}).Execute()
	if err != nil && !isRejected(err) {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// isRejected reports whether err only signals a rejected entry
func isRejected(err error) bool { return errors.Is(err, errRejected) }

func newRootCmd(a *app) *cobra.Command {
	remote := a.cfg.Prefix("XFER_REMOTE_")
	root := &cobra.Command{
		Use:           "xferlock",
		Short:         "Check domain transfer authorization codes against the registrar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.lang, "lang", a.cfg.MayString("XFER_DEFAULT_LOCALE", i18n.DefaultLocale), "message locale")
	pf.StringVar(&a.baseURL, "base-url", remote.MayString("BASE_URL", ""), "registrar API base URL")
	pf.StringVar(&a.token, "token", remote.MayString("TOKEN", ""), "registrar bearer token")
	pf.DurationVar(&a.timeout, "timeout", remote.MayDuration("TIMEOUT", 10*time.Second), "registrar request timeout")
	pf.DurationVar(&a.debounce, "debounce", a.cfg.MayDuration("XFER_DEBOUNCE", 500*time.Millisecond), "quiet period before a typed value is checked")
	pf.StringVar(&a.site, "site", a.cfg.MayString("XFER_SITE", ""), "site the domains are being attached to")
	pf.BoolVar(&a.asJSON, "json", false, "print verdicts as JSON lines")

	root.AddCommand(checkCmd(a), batchCmd(a), watchCmd(a), versionCmd())
	return root
}

// checker builds the cached checker over the registrar client
func (a *app) checker() (acdom.CheckerPort, error) {
	deps := modkit.Deps{Cfg: a.cfg, Log: *logger.Named("cli")}
	if a.remote == nil {
		c, err := registrar.NewClient(registrar.Options{
			BaseURL:   a.baseURL,
			Token:     a.token,
			Timeout:   a.timeout,
			UserAgent: "xferlock-cli",
		})
		if err != nil {
			return nil, err
		}
		deps.Registrar = c
	}
	return acmod.New(deps, acmod.Options{Remote: a.remote}).Checker(), nil
}

func (a *app) composer() *verdict.Composer {
	return verdict.New(i18n.Default().For(a.lang))
}

func mark(v verdict.Verdict) string {
	switch {
	case v.Valid:
		return "ok"
	case v.Loading:
		return ".."
	default:
		return "x"
	}
}

func (a *app) printVerdict(w io.Writer, label string, v verdict.Verdict) {
	if a.asJSON {
		writeJSONLine(w, map[string]any{
			"domain":      label,
			"valid":       v.Valid,
			"loading":     v.Loading,
			"message":     v.Message,
			"reason":      v.Reason,
			"can_refetch": v.CanRefetch(),
		})
		return
	}
	_, _ = fmt.Fprintf(w, "%-2s  %-30s  %-17s  %s\n", mark(v), label, v.Reason, v.Message)
}
