package datasets

import (
	"math/rand"

	"github.com/pkg/errors"
)

// SplitTrainTest shuffles a copy of rows with a Fisher-Yates pass seeded by
// seed, then returns the first floor(trainFraction*len(rows)) rows as the
// train set and the rest as the test set. rows itself is not reordered.
func SplitTrainTest[T any](rows []T, trainFraction float64, seed int64) (train, test []T, err error) {
	if trainFraction < 0 || trainFraction > 1 {
		return nil, nil, errors.Errorf("train fraction %v outside [0, 1]", trainFraction)
	}
	var rnd = rand.New(rand.NewSource(seed))
	var shuffled = append([]T(nil), rows...)
	for i := range shuffled {
		r := i + rnd.Intn(len(shuffled)-i)
		shuffled[i], shuffled[r] = shuffled[r], shuffled[i]
	}
	var n = int(trainFraction * float64(len(shuffled)))
	return shuffled[:n:n], shuffled[n:], nil
}
