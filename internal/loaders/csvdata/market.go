// Package csvdata loads market observations and portfolio rows from
// CSV files, applying the same column layout and rejection rules as
// the Postgres loader in loaders/pgdata.
package csvdata

import (
	"encoding/csv"
	"io"
	"math"
	"os"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
	"github.com/mfrandev/risk-assessment-engine/internal/universe"
)

const opMarket = "csvdata.LoadCloses"

// Closes holds a loaded market-observation table: T dated rows over N
// tickers, row-major (row t occupying Prices[t*N : (t+1)*N]).
type Closes struct {
	Dates  []string
	Prices []float64
	T      int
	N      int
	Symbols []string
}

// LoadCloses reads a market-observation CSV whose header is
// "date,<ticker1>,<ticker2>,...". Every price must be strictly
// positive and finite. The ticker list becomes the factor universe.
func LoadCloses(path string) (Closes, error) {
	f, err := os.Open(path)
	if err != nil {
		return Closes{}, rkerr.New(opMarket, rkerr.InvalidArgument, err)
	}
	defer f.Close()
	return loadCloses(f)
}

func loadCloses(r io.Reader) (Closes, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Closes{}, rkerr.New(opMarket, rkerr.InvalidArgument, err)
	}
	if len(header) < 2 {
		return Closes{}, rkerr.Newf(opMarket, rkerr.InvalidArgument, "closes header needs at least 2 columns, got %d", len(header))
	}
	if header[0] != "date" {
		return Closes{}, rkerr.Newf(opMarket, rkerr.InvalidArgument, "first header column must be %q, got %q", "date", header[0])
	}

	tickers := header[1:]
	for i, tk := range tickers {
		if tk == "" {
			return Closes{}, rkerr.Newf(opMarket, rkerr.InvalidArgument, "empty ticker symbol at header column %d", i+1)
		}
	}
	n := len(tickers)

	var dates []string
	var prices []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Closes{}, rkerr.New(opMarket, rkerr.InvalidArgument, err)
		}
		if len(record) != n+1 {
			return Closes{}, rkerr.Newf(opMarket, rkerr.InvalidArgument,
				"row has %d fields, want %d", len(record), n+1)
		}

		dates = append(dates, record[0])
		for i := 0; i < n; i++ {
			v, err := parseFinite(record[i+1])
			if err != nil || v <= 0 {
				return Closes{}, rkerr.Newf(opMarket, rkerr.InvalidArgument,
					"invalid close for ticker %q: %q", tickers[i], record[i+1])
			}
			prices = append(prices, v)
		}
	}

	t := len(dates)
	if t == 0 {
		return Closes{}, rkerr.New(opMarket, rkerr.InvalidArgument, errNoDataRows)
	}

	universe.SetDefault(tickers)

	return Closes{Dates: dates, Prices: prices, T: t, N: n, Symbols: tickers}, nil
}

// ComputeShocks converts a T x N price matrix into a (T-1) x N shock
// matrix of simple returns, shocks[t][i] = prices[t+1][i]/prices[t][i] - 1.
func ComputeShocks(pricesFlat []float64, t, n int) ([]float64, error) {
	const op = "csvdata.ComputeShocks"
	if n == 0 {
		return nil, rkerr.New(op, rkerr.InvalidArgument, errZeroDimension)
	}
	if t < 2 {
		return nil, rkerr.New(op, rkerr.InvalidArgument, errTooFewObservations)
	}
	if len(pricesFlat) != t*n {
		return nil, rkerr.Newf(op, rkerr.InvalidArgument,
			"price matrix has %d elements, want T*N = %d*%d = %d", len(pricesFlat), t, n, t*n)
	}

	shocks := make([]float64, (t-1)*n)
	for row := 1; row < t; row++ {
		prevOff := (row - 1) * n
		currOff := row * n
		shockOff := (row - 1) * n
		for i := 0; i < n; i++ {
			base := pricesFlat[prevOff+i]
			if base <= 0 {
				return nil, rkerr.New(op, rkerr.InvalidArgument, errNonPositiveBase)
			}
			shocks[shockOff+i] = pricesFlat[currOff+i]/base - 1
		}
	}
	return shocks, nil
}

func parseFinite(token string) (float64, error) {
	v, err := parseFloat(token)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNonFinite
	}
	return v, nil
}
