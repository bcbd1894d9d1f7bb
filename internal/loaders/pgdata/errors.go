package pgdata

import "errors"

var (
	errNoTickers         = errors.New("no tickers found in market_observations")
	errNoObservationRows = errors.New("no observation rows found in market_observations")
)
