package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/service"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/session"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/backend"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/profile"
)

func (o *options) store() (*profile.Store, error) {
	path := o.credentials
	if path == "" {
		p, err := profile.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locate credentials file: %w", err)
		}
		path = p
	}
	return profile.NewStore(path), nil
}

func (o *options) authService() (*service.AuthService, error) {
	store, err := o.store()
	if err != nil {
		return nil, err
	}
	client := backend.NewClient(o.backendURL, 0)
	profileKey := func() string { return o.profile }
	return service.NewAuthService(client, store, zerolog.Nop(), service.WithSessionIDs(profileKey)), nil
}

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend and save the credential to the profile",
		Example: `  # Log in as the accountant
  gateway login -u ketoan < secret.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				if v := os.Getenv("CONDO_PASSWORD"); v != "" {
					password = v
				} else {
					b, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("read password: %w", err)
					}
					password = strings.TrimSpace(string(b))
				}
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			svc, err := opts.authService()
			if err != nil {
				return err
			}
			id, err := svc.Login(cmd.Context(), opts.profile, username, password)
			if err != nil {
				return err
			}
			return printIdentity(cmd.OutOrStdout(), opts.output, id)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (falls back to CONDO_PASSWORD, then stdin)")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the profile's credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.authService()
			if err != nil {
				return err
			}
			if err := svc.Logout(cmd.Context(), opts.profile); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of profile %q\n", opts.profile)
			return nil
		},
	}
}

func newWhoAmICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity stored in the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.authService()
			if err != nil {
				return err
			}
			id, err := svc.WhoAmI(cmd.Context(), opts.profile)
			if err != nil {
				return err
			}
			return printIdentity(cmd.OutOrStdout(), opts.output, id)
		},
	}
}

func newNavCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "nav <view>",
		Short: "Show what navigating to a view would do for the profile",
		Long:  "Evaluates the route guard against the stored credential: render, redirect to the role's home, or bounce to login.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			sess := session.New(store, opts.profile)
			d := access.NewGuard(nil).Navigate(cmd.Context(), sess, domain.View(args[0]))

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), d)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Outcome, d.View)
			return nil
		},
	}
}

type roleReport struct {
	Authenticated bool                `json:"authenticated"`
	Role          domain.Role         `json:"role"`
	Home          domain.View         `json:"home"`
	Capabilities  []domain.Capability `json:"capabilities"`
	Menu          []domain.View       `json:"menu"`
	Actions       []domain.Action     `json:"actions"`
}

func newRoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "role",
		Short: "Resolve the profile's role and list what it may do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sess := session.New(store, opts.profile)
			role := sess.Role(ctx)

			r := roleReport{
				Authenticated: sess.Authenticated(ctx) && role != domain.RoleNone,
				Role:          role,
				Home:          domain.ViewLogin,
				Capabilities:  role.Capabilities(),
				Menu:          access.Menu(role),
				Actions:       role.AllowedActions(),
			}
			if r.Authenticated {
				r.Home = access.HomeFor(role)
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), r)
			}
			w := cmd.OutOrStdout()
			if !r.Authenticated {
				_, _ = fmt.Fprintln(w, "Not logged in")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Role:         %s\n", r.Role)
			_, _ = fmt.Fprintf(w, "Home:         %s\n", r.Home)
			_, _ = fmt.Fprintf(w, "Capabilities: %s\n", joinStrings(r.Capabilities))
			_, _ = fmt.Fprintf(w, "Menu:         %s\n", joinStrings(r.Menu))
			_, _ = fmt.Fprintf(w, "Actions:      %s\n", joinStrings(r.Actions))
			return nil
		},
	}
}

func printIdentity(w io.Writer, format string, id *ports.Identity) error {
	if format == "json" {
		return printJSON(w, id)
	}
	name := ""
	if id.User != nil {
		name = id.User.Username
		if id.User.FullName != "" {
			name += " (" + id.User.FullName + ")"
		}
	}
	_, _ = fmt.Fprintf(w, "User: %s\nRole: %s\nHome: %s\n", name, id.Role, id.Home)
	return nil
}

func joinStrings[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
