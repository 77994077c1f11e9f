package main

import (
	"fmt"

	"github.com/neurlang/vrgesture/gesture"
	"github.com/spf13/cobra"
)

func gestureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gesture",
		Short: "manage the gestures of a set",
	}

	var hand string
	var sync bool
	create := &cobra.Command{
		Use:   "create SET NAME",
		Short: "add a gesture to the bank of a set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHand(hand)
			if err != nil {
				return err
			}
			g := gesture.New(args[1])
			g.Hand = h
			g.IsSynchronous = sync
			return app.mgr.CreateGesture(args[0], g)
		},
	}
	create.Flags().StringVar(&hand, "hand", gesture.Right.String(), "hand performing the gesture, left or right")
	create.Flags().BoolVar(&sync, "sync", false, "gesture is performed with both hands")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "list SET",
		Short: "list the gestures of a set with their example counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := app.mgr.Gestures(args[0])
			if err != nil {
				return err
			}
			for _, g := range bank {
				fmt.Printf("%s\t%s\t%d\n", g.Name, g.Hand, g.ExampleCount)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename SET FROM TO",
		Short: "rename a gesture and relabel its examples",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mgr.RenameGesture(args[0], args[1], args[2])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete SET NAME",
		Short: "delete a gesture and its examples",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mgr.DeleteGesture(args[0], args[1])
		},
	})
	return cmd
}

func recordCmd() *cobra.Command {
	var hand string
	cmd := &cobra.Command{
		Use:   "record SET NAME CAPTURE.json",
		Short: "record a captured line as an example of a gesture",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHand(hand)
			if err != nil {
				return err
			}
			line, err := readLine(args[2])
			if err != nil {
				return err
			}
			recorded, err := app.mgr.Record(args[0], args[1], line, h)
			if err != nil {
				return err
			}
			if !recorded {
				fmt.Printf("discarded: %d points, need %d\n", len(line), app.cfg.MinPoints)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hand, "hand", gesture.Right.String(), "hand that performed the capture")
	return cmd
}
