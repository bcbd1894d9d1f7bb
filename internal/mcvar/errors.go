package mcvar

import "errors"

var errEmptyUniverse = errors.New("mu must have at least one factor")
