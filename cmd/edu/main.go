package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"eduproject/internal/api"
	"eduproject/internal/app"
	"eduproject/internal/session"
	"eduproject/internal/tui"
)

const version = "1.0.0"

func newApplication(cmd *cobra.Command) (*app.Application, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return app.NewApplication(cfg)
}

// requireToken restores the persisted session for scripted subcommands.
func requireToken(application *app.Application) (session.Snapshot, error) {
	snap := application.Store.Initialize()
	if snap.Status != session.StatusAuthenticated {
		return snap, fmt.Errorf("not signed in; run `edu login` first")
	}
	return snap, nil
}

func main() {
	root := &cobra.Command{
		Use:     "edu",
		Short:   "EduProject - terminal client for academic project tracking",
		Long:    "EduProject is a terminal client for the EduProject academic project-tracking backend.\n\nRun without arguments for the interactive UI; use the subcommands for scripting.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewRoot(application), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().String("config", "", "path to config file")
	root.PersistentFlags().String("base-url", "", "override the backend base URL")

	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			application.Store.Initialize()
			result, err := application.Client.Login(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := application.Store.Login(*result); err != nil {
				return err
			}
			fmt.Printf("signed in as %s (%s)\n", result.User.Name, result.User.Role)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			application.Store.Initialize()
			if err := application.Store.Logout(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			snap, err := requireToken(application)
			if err != nil {
				return err
			}
			p := snap.Profile
			fmt.Printf("%s <%s> role=%s\n", p.Name, p.Email, p.Role)
			return nil
		},
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup <email>",
		Short: "Fetch a student's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			profile, err := application.Client.PublicStudentProfile(context.Background(), args[0])
			if err != nil {
				return err
			}
			p := profile.Profile
			fmt.Printf("%s <%s>\n", p.Name, p.Email)
			if p.RollNumber != "" {
				fmt.Printf("  roll %s  branch %s  section %s  semester %s\n", p.RollNumber, p.Branch, p.Section, p.Semester)
			}
			for _, team := range profile.Teams {
				fmt.Printf("  team: %s (%s)\n", team.Name, team.ProjectTitle)
			}
			return nil
		},
	}

	teamsCmd := &cobra.Command{
		Use:   "teams",
		Short: "List your teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return err
			}
			snap, err := requireToken(application)
			if err != nil {
				return err
			}
			var teams []api.Team
			if snap.Profile.Role == api.RoleGuide {
				teams, err = application.Client.GuideTeams(context.Background(), snap.Token)
			} else {
				teams, err = application.Client.StudentTeams(context.Background(), snap.Token)
			}
			if err != nil {
				if api.IsUnauthorized(err) {
					_ = application.Store.Logout()
					return fmt.Errorf("session expired, please log in again")
				}
				return err
			}
			for _, team := range teams {
				fmt.Printf("%s  %s  %s (%d members)\n", team.ID, team.Name, team.ProjectTitle, team.MemberCount)
			}
			return nil
		},
	}

	root.AddCommand(loginCmd, logoutCmd, whoamiCmd, lookupCmd, teamsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
