package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmds(a *app) []*cobra.Command {
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show who the CMS is signed in as",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.session().CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", u.Label)
			return nil
		},
	}
	signOut := &cobra.Command{
		Use:   "sign-out",
		Short: "Forget the stored ID token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session().SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
	return []*cobra.Command{whoami, signOut}
}
