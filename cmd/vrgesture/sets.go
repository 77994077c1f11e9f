package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "manage gesture sets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create SET",
		Short: "create an empty gesture set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mgr.CreateSet(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list the gesture sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.mgr.Sets()
			if err != nil {
				return err
			}
			for _, s := range sets {
				fmt.Println(s)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete SET",
		Short: "delete a gesture set with its examples and model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mgr.DeleteSet(args[0])
		},
	})
	return cmd
}
