package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/inference"
	"github.com/neurlang/vrgesture/manager"
	"github.com/neurlang/vrgesture/trainer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// report is the training result without the model weights
type report struct {
	RunID    string
	Set      string
	Examples int
	Train    trainer.Evaluation
	Test     trainer.Evaluation
	Duration string
}

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train SET",
		Short: "train the recognizer of a set, interrupt to stop early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := args[0]
			ready, err := app.mgr.ReadyToTrain(set)
			if err != nil {
				return err
			}
			if !ready {
				app.log.Warn("some gestures have no examples", zap.String("set", set))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			job, err := app.mgr.BeginTraining(ctx, set, nil)
			if err != nil {
				return err
			}
			res, err := job.Wait()
			if errors.Is(err, context.Canceled) {
				app.log.Info("training stopped", zap.String("set", set))
				return err
			}
			if err != nil {
				return err
			}
			printJSON(report{
				RunID:    res.RunID,
				Set:      res.Set,
				Examples: res.Examples,
				Train:    res.Train,
				Test:     res.Test,
				Duration: res.Duration.String(),
			})
			return nil
		},
	}
}

func recognizeCmd() *cobra.Command {
	var hand string
	cmd := &cobra.Command{
		Use:   "recognize SET CAPTURE.json...",
		Short: "recognize captured lines with the trained model of a set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHand(hand)
			if err != nil {
				return err
			}
			r, err := inference.New(app.store, app.cfg.ConfidenceThreshold, app.cfg.CacheSize)
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				line, err := readLine(path)
				if err != nil {
					return err
				}
				res, err := r.Recognize(args[0], line, h, app.cfg.RawData)
				if errors.Is(err, os.ErrNotExist) {
					return errors.Wrapf(manager.ErrNotFound, "no model for %q, train it first", args[0])
				}
				if err != nil {
					return err
				}
				printJSON(res)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hand, "hand", gesture.Right.String(), "hand that performed the captures")
	return cmd
}
