package optimizer

import "errors"

// ErrNoValidConfigurations is returned when a sweep's constraints reject
// every candidate in the cartesian product of its inputs.
var ErrNoValidConfigurations = errors.New("optimizer: no valid configurations in sweep space")
