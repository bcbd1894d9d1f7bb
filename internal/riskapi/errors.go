package riskapi

import "errors"

var errRunNotFound = errors.New("run not found or result has expired")
