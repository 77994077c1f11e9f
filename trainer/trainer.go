package trainer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neurlang/vrgesture/config"
	"github.com/neurlang/vrgesture/datasets"
	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/logging"
	"github.com/neurlang/vrgesture/model"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/neurlang/vrgesture/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoData is returned when a gesture set has no recorded examples to train on
var ErrNoData = errors.New("no recorded gestures")

// Trainer records examples and trains the recognizers of gesture sets
type Trainer struct {
	store *store.Store
	cfg   config.Config
	log   *zap.Logger
}

// New returns a trainer over s configured by cfg
func New(s *store.Store, cfg config.Config, log *zap.Logger) *Trainer {
	return &Trainer{
		store: s,
		cfg:   cfg,
		log:   logging.OrNop(log),
	}
}

// Config returns the trainer configuration
func (t *Trainer) Config() config.Config {
	return t.cfg
}

// AddExample records a captured line as an example of label. Captures shorter
// than the configured minimum are discarded: recorded is false and err nil.
// Unless raw data is configured the line is resampled before it is stored.
func (t *Trainer) AddExample(set string, line geometry.Line, hand gesture.Hand, label string) (recorded bool, err error) {
	if len(line) < t.cfg.MinPoints {
		t.log.Debug("capture discarded", zap.String("set", set), zap.String("gesture", label),
			zap.Int("points", len(line)), zap.Int("minPoints", t.cfg.MinPoints))
		return false, nil
	}
	if !hand.Valid() {
		return false, errors.Errorf("invalid hand %d", int(hand))
	}
	e := gesture.Example{Name: label, Hand: hand, Raw: t.cfg.RawData}
	if t.cfg.RawData {
		e.Data = append(geometry.Line(nil), line...)
	} else {
		e.Data, err = geometry.Capture(line, t.cfg.MinPoints, t.cfg.Points)
		if err != nil {
			return false, err
		}
	}
	if err := t.store.Append(set, &e); err != nil {
		return false, errors.WithMessagef(err, "record %q in %q", label, set)
	}
	t.log.Debug("capture recorded", zap.String("set", set), zap.String("gesture", label), zap.Int("points", len(line)))
	return true, nil
}

// Result describes one finished training run
type Result struct {
	RunID    string
	Set      string
	Examples int

	Train Evaluation
	Test  Evaluation

	Duration time.Duration
	Model    *model.Artifact
}

// TrainRecognizer trains the recognizer of a set from all its recorded
// examples and saves the model artifact. Outputs follow the order of the
// set's gesture bank, including gestures without examples. No model is
// written when any step fails.
func (t *Trainer) TrainRecognizer(ctx context.Context, set string) (*Result, error) {
	var start = time.Now()
	var runID = uuid.New().String()
	var log = t.log.With(zap.String("set", set), zap.String("run", runID))

	bank, err := t.store.LoadBank(set)
	if err != nil {
		return nil, err
	}
	examples, err := store.Collect(t.store.ReadAll(set))
	if err != nil {
		return nil, errors.WithMessagef(err, "read examples of %q", set)
	}
	if len(examples) == 0 {
		log.Warn("no recorded gestures, record some gestures first")
		return nil, errors.Wrapf(ErrNoData, "gesture set %q", set)
	}
	if len(bank) == 0 {
		return nil, errors.Wrapf(feedforward.ErrInvalidTrainingSet, "gesture set %q has no gestures", set)
	}

	labels := gesture.Labels(bank)
	rows, err := datasets.Build(examples, labels, t.cfg.NumInput())
	if err != nil {
		return nil, errors.WithMessagef(err, "build dataset of %q", set)
	}
	h := t.cfg.Learning
	train, test, err := datasets.SplitTrainTest(rows, h.TrainFraction, h.SplitSeed)
	if err != nil {
		return nil, err
	}

	net, err := feedforward.New(t.cfg.NumInput(), h.Hidden, len(labels), h.WeightSeed)
	if err != nil {
		return nil, err
	}
	net.SetLogger(log)

	log.Info("training started", zap.Int("examples", len(examples)), zap.Int("train", len(train)),
		zap.Int("test", len(test)), zap.Strings("gestures", labels), zap.Int("epochs", h.Epochs))

	if _, err := net.Train(ctx, Rows(train), h.Epochs, h.LearnRate, h.Momentum); err != nil {
		log.Error("training failed", zap.Error(err))
		return nil, errors.WithMessagef(err, "train %q", set)
	}

	result := &Result{
		RunID:    runID,
		Set:      set,
		Examples: len(examples),
		Train:    Evaluate(net, train),
		Test:     Evaluate(net, test),
		Model:    model.New(net, bank),
	}
	if err := t.store.SaveModel(set, result.Model); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)

	log.Info("training finished",
		zap.Float64("trainAccuracy", result.Train.Accuracy),
		zap.Float64("testAccuracy", result.Test.Accuracy),
		zap.Float64("testMSE", result.Test.MSE),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// Rows adapts dataset rows to network rows
func Rows(rows []datasets.Row) []feedforward.Row {
	var o = make([]feedforward.Row, len(rows))
	for i := range rows {
		o[i] = &rows[i]
	}
	return o
}
