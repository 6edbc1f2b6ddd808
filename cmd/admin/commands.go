package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thebar-catering/thebar-site/internal/admin"
	"github.com/thebar-catering/thebar-site/internal/apiclient"
	appconfig "github.com/thebar-catering/thebar-site/internal/config"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

var errNotLoggedIn = errors.New("not logged in; run `thebar-admin login` first")

type options struct {
	apiURL    string
	tokenFile string
	lang      string
	logLevel  string
}

// session is what every subcommand works with once flags are parsed.
type session struct {
	gate   *admin.Gate
	api    *apiclient.Client
	store  *admin.FileTokenStore
	locale i18n.Locale
	logger *logging.Logger
}

func newRootCmd(cfg *appconfig.Config) *cobra.Command {
	opts := &options{
		apiURL:    cfg.AdminAPIBaseURL,
		tokenFile: cfg.AdminTokenFile,
		lang:      cfg.DefaultLocale,
		logLevel:  "warn",
	}

	root := &cobra.Command{
		Use:           "thebar-admin",
		Short:         "Operator console for THE BAR. contact submissions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", opts.apiURL, "API base URL")
	root.PersistentFlags().StringVar(&opts.tokenFile, "token-file", opts.tokenFile, "where the session token is kept (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.lang, "lang", opts.lang, "message language (cs, en, ru, uk)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level")

	open := func(cmd *cobra.Command) (*session, error) {
		return openSession(cmd, opts, cfg)
	}

	root.AddCommand(
		newLoginCmd(open, cfg),
		newLogoutCmd(open),
		newStatusCmd(open),
		newListCmd(open),
		newExportCmd(open, cfg),
	)
	return root
}

func openSession(cmd *cobra.Command, opts *options, cfg *appconfig.Config) (*session, error) {
	logger := logging.NewWithWriter(opts.logLevel, cmd.ErrOrStderr())

	path := opts.tokenFile
	if strings.TrimSpace(path) == "" {
		p, err := admin.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL: opts.apiURL,
		Timeout: cfg.AdminClientTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	locale, ok := i18n.Parse(opts.lang)
	if !ok {
		locale = i18n.Fallback
	}
	store := admin.NewFileTokenStore(path, logger)
	return &session{
		gate:   admin.NewGate(client, store, logger),
		api:    client,
		store:  store,
		locale: locale,
		logger: logger,
	}, nil
}

// requireAuth resolves the stored token and fails when there is none.
func (s *session) requireAuth(cmd *cobra.Command) error {
	state, err := s.gate.Init(cmd.Context())
	if err != nil {
		return err
	}
	if state != admin.StateAuthenticated {
		return errNotLoggedIn
	}
	return nil
}

type opener func(cmd *cobra.Command) (*session, error)

func newLoginCmd(open opener, cfg *appconfig.Config) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				password, err = readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			if err := s.gate.LoginWithPassword(cmd.Context(), username, password); err != nil {
				if apiclient.IsAuth(err) {
					return errors.New("invalid username or password")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", cfg.AdminUsername, "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (or ADMIN_PASSWORD, or prompt)")
	return cmd
}

func newLogoutCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			if err := s.gate.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatusCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the stored session is still valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			state, err := s.gate.Init(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state.String())
			return nil
		},
	}
}

func newListCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contact submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(cmd); err != nil {
				return err
			}
			dash := admin.NewDashboard(s.gate, s.api, nil, alertWriter{cmd.ErrOrStderr()}, s.locale, s.logger)
			if err := dash.Load(cmd.Context()); err != nil {
				if errors.Is(err, admin.ErrNotAuthenticated) {
					return errors.New(i18n.T(s.locale, i18n.SessionExpired))
				}
				return err
			}
			return dash.Render(cmd.OutOrStdout())
		},
	}
}

func newExportCmd(open opener, cfg *appconfig.Config) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download all submissions as contact_submissions.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(cmd); err != nil {
				return err
			}
			dash := admin.NewDashboard(s.gate, s.api, admin.DirDownloader{Dir: dir}, alertWriter{cmd.ErrOrStderr()}, s.locale, s.logger)
			path, err := dash.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", cfg.AdminDownloadDir, "directory to save the CSV in")
	return cmd
}

type alertWriter struct{ w io.Writer }

func (a alertWriter) Alert(message string) {
	fmt.Fprintln(a.w, message)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
