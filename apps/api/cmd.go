package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	echoapi "github.com/trezcool/langcenter/apps/api/echo"
	"github.com/trezcool/langcenter/apps/di"
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/user"
	logsvc "github.com/trezcool/langcenter/services/logger"
)

var readPasswordFunc = term.ReadPassword // mockable

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "langcenter-api",
		Short:         "Language Center API",
		Long:          `Serves the language center registries (users, classes, courses, finance, schedule) over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logsvc.SetLevel(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "sets the log level")
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

type serveOptions struct {
	addr               string
	resetAdminPassword bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := core.NewConfig()
			if err != nil {
				return errors.Wrap(err, "loading config")
			}
			if opts.addr != "" {
				conf.Server.Address = opts.addr
			}
			return serve(conf, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "address to listen on (overrides SERVERADDRESS)")
	cmd.Flags().BoolVar(&opts.resetAdminPassword, "reset-admin-password", false, "prompt for a new admin password before serving")
	return cmd
}

func serve(conf *core.Config, opts serveOptions) error {
	// =========================================================================
	// Set up Dependencies

	c, err := di.New(conf, os.Stdout)
	if err != nil {
		return errors.Wrap(err, "setting up dependencies")
	}
	logger := c.Logger

	if opts.resetAdminPassword {
		if err = resetAdminPassword(c.UserSvc); err != nil {
			return err
		}
	}

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	stopMails := c.UserSvc.SendWelcomeMails()
	defer stopMails()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	if conf.Server.DebugAddress != "" {
		go func() {
			if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.Deps{
		Conf:           conf,
		Logger:         logger,
		Translator:     c.Translator,
		UserSvc:        c.UserSvc,
		CourseSvc:      c.CourseSvc,
		ClassSvc:       c.ClassSvc,
		FinanceSvc:     c.FinanceSvc,
		ScheduleSvc:    c.ScheduleSvc,
		CertificateSvc: c.CertificateSvc,
		AssignmentSvc:  c.AssignmentSvc,
		AttendanceSvc:  c.AttendanceSvc,
		MaterialSvc:    c.MaterialSvc,
		Importer:       c.Importer,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		return errors.Wrap(err, "server error")

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				return errors.Wrap(err, "could not force stop server")
			}
		}
	}
	return nil
}

// resetAdminPassword prompts twice for the password of the seeded admin.
func resetAdminPassword(usrSvc *user.Service) error {
	admin, err := usrSvc.GetByID(user.AdminID)
	if err != nil {
		return errors.Wrap(err, "loading admin")
	}

	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Print("Confirm password:")
	confirm, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}

	_, err = usrSvc.ResetPassword(admin.ID, user.ResetPassword{Password: string(pwd), PasswordConfirm: string(confirm)})
	return err
}
