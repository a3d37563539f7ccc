package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	userPassword string
	userReset    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a login user (or reset the password with --reset)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

func init() {
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password (required)")
	userAddCmd.Flags().BoolVar(&userReset, "reset", false, "overwrite the password of an existing user")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	if userPassword == "" {
		return errors.New("password must not be empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	username := args[0]
	if userReset {
		err = st.SetPassword(cmd.Context(), username, userPassword)
	} else {
		err = st.CreateUser(cmd.Context(), username, userPassword)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("user %q saved", username)))
	return nil
}
