// Package pgdata loads market observations and portfolio rows from
// PostgreSQL tables, the relational-database analogue of the
// loaders/csvdata flat-file loaders — both deliver the same market-
// closes table and portfolio-row validation contract.
package pgdata

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/loaders/csvdata"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
	"github.com/mfrandev/risk-assessment-engine/internal/universe"
)

const (
	opCloses    = "pgdata.LoadCloses"
	opPortfolio = "pgdata.LoadPortfolio"

	minImpliedVol = 1e-8
)

// Store wraps a pgx connection pool with the two loader queries the
// risk engine needs. It holds no domain state beyond the pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing pool. The caller owns the pool's
// lifecycle (pgxpool.New / Close).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadCloses reads the market_observations table
// (ticker, observed_at, close), pivoted into a dated T x N table.
// Expects rows already ordered by observed_at then ticker.
//
// Schema:
//
//	CREATE TABLE market_observations (
//	    ticker     TEXT NOT NULL,
//	    observed_at DATE NOT NULL,
//	    close      DOUBLE PRECISION NOT NULL
//	);
func (s *Store) LoadCloses(ctx context.Context) (csvdata.Closes, error) {
	tickerRows, err := s.pool.Query(ctx, `SELECT DISTINCT ticker FROM market_observations ORDER BY ticker`)
	if err != nil {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, fmt.Errorf("list tickers: %w", err))
	}
	var tickers []string
	for tickerRows.Next() {
		var tk string
		if err := tickerRows.Scan(&tk); err != nil {
			tickerRows.Close()
			return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, err)
		}
		tickers = append(tickers, tk)
	}
	tickerRows.Close()
	if err := tickerRows.Err(); err != nil {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, err)
	}
	n := len(tickers)
	if n == 0 {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, errNoTickers)
	}
	tickerIdx := make(map[string]int, n)
	for i, tk := range tickers {
		tickerIdx[tk] = i
	}

	rows, err := s.pool.Query(ctx,
		`SELECT observed_at::TEXT, ticker, close FROM market_observations ORDER BY observed_at, ticker`)
	if err != nil {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, fmt.Errorf("query observations: %w", err))
	}
	defer rows.Close()

	dateOrder := make([]string, 0)
	dateIdx := make(map[string]int)
	var prices []float64

	for rows.Next() {
		var date, ticker string
		var close float64
		if err := rows.Scan(&date, &ticker, &close); err != nil {
			return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, err)
		}
		if close <= 0 || math.IsNaN(close) || math.IsInf(close, 0) {
			return csvdata.Closes{}, rkerr.Newf(opCloses, rkerr.InvalidArgument, "invalid close for ticker %q on %q", ticker, date)
		}
		col, ok := tickerIdx[ticker]
		if !ok {
			return csvdata.Closes{}, rkerr.Newf(opCloses, rkerr.InvalidArgument, "unexpected ticker %q", ticker)
		}

		rowIdx, ok := dateIdx[date]
		if !ok {
			rowIdx = len(dateOrder)
			dateIdx[date] = rowIdx
			dateOrder = append(dateOrder, date)
			prices = append(prices, make([]float64, n)...)
		}
		prices[rowIdx*n+col] = close
	}
	if err := rows.Err(); err != nil {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, err)
	}

	t := len(dateOrder)
	if t == 0 {
		return csvdata.Closes{}, rkerr.New(opCloses, rkerr.InvalidArgument, errNoObservationRows)
	}
	for i, p := range prices {
		if p <= 0 {
			return csvdata.Closes{}, rkerr.Newf(opCloses, rkerr.InvalidArgument,
				"missing close for ticker %q on %q", tickers[i%n], dateOrder[i/n])
		}
	}

	universe.SetDefault(tickers)

	return csvdata.Closes{
		Dates:   dateOrder,
		Prices:  prices,
		T:       t,
		N:       n,
		Symbols: tickers,
	}, nil
}

// LoadPortfolio reads the portfolio_rows table, applying the same
// validation contract as csvdata.LoadPortfolio.
//
// Schema:
//
//	CREATE TABLE portfolio_rows (
//	    id                INTEGER NOT NULL,
//	    type              SMALLINT NOT NULL,
//	    is_call           BOOLEAN,
//	    qty               DOUBLE PRECISION NOT NULL,
//	    current_price     DOUBLE PRECISION NOT NULL,
//	    underlying_price  DOUBLE PRECISION,
//	    underlying_index  INTEGER,
//	    strike            DOUBLE PRECISION,
//	    time_to_maturity  DOUBLE PRECISION,
//	    implied_vol       DOUBLE PRECISION,
//	    rate              DOUBLE PRECISION
//	);
func (s *Store) LoadPortfolio(ctx context.Context, n int) ([]instrument.Instrument, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, type, is_call, qty, current_price, underlying_price,
		        underlying_index, strike, time_to_maturity, implied_vol, rate
		 FROM portfolio_rows ORDER BY id`)
	if err != nil {
		return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, fmt.Errorf("query portfolio: %w", err))
	}
	defer rows.Close()

	var out []instrument.Instrument
	for rows.Next() {
		var (
			id                       int32
			typeRaw                  int16
			isCall                   *bool
			qty, currentPrice        float64
			underlyingPrice          *float64
			underlyingIndex          *int32
			strike, ttm, vol, rate   *float64
		)
		if err := rows.Scan(&id, &typeRaw, &isCall, &qty, &currentPrice,
			&underlyingPrice, &underlyingIndex, &strike, &ttm, &vol, &rate); err != nil {
			return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
		}

		inst, err := buildInstrument(id, typeRaw, isCall, qty, currentPrice, underlyingPrice, underlyingIndex, strike, ttm, vol, rate, n)
		if err != nil {
			return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
	}

	return out, nil
}

func buildInstrument(
	id int32, typeRaw int16, isCall *bool, qty, currentPrice float64,
	underlyingPrice *float64, underlyingIndex *int32,
	strike, ttm, vol, rate *float64, n int,
) (instrument.Instrument, error) {
	if id < 0 || int(id) >= n {
		return instrument.Instrument{}, fmt.Errorf("invalid or out-of-range id %d", id)
	}
	if typeRaw != 0 && typeRaw != 1 {
		return instrument.Instrument{}, fmt.Errorf("invalid type %d, must be 0 or 1", typeRaw)
	}
	kind := instrument.Kind(typeRaw)
	isOption := kind == instrument.Option

	if currentPrice <= 0 || math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) {
		return instrument.Instrument{}, fmt.Errorf("invalid or non-positive current_price for id %d", id)
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return instrument.Instrument{}, fmt.Errorf("invalid qty for id %d", id)
	}
	for _, p := range []*float64{underlyingPrice, strike, ttm, vol, rate} {
		if p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0)) {
			return instrument.Instrument{}, fmt.Errorf("non-finite numeric field for id %d", id)
		}
	}
	if isOption && isCall == nil {
		return instrument.Instrument{}, fmt.Errorf("option id %d missing is_call", id)
	}

	uPrice := currentPrice
	if underlyingPrice != nil {
		uPrice = *underlyingPrice
	} else if isOption {
		return instrument.Instrument{}, fmt.Errorf("option id %d missing underlying_price", id)
	}
	if uPrice <= 0 {
		return instrument.Instrument{}, fmt.Errorf("invalid or non-positive underlying_price for id %d", id)
	}

	uIndex := uint32(id)
	if underlyingIndex != nil {
		uIndex = uint32(*underlyingIndex)
	} else if isOption {
		return instrument.Instrument{}, fmt.Errorf("option id %d missing underlying_index", id)
	}
	if kind == instrument.Equity && uIndex != uint32(id) {
		return instrument.Instrument{}, fmt.Errorf("equity id %d has underlying_index != id", id)
	}
	if int(uIndex) >= n {
		return instrument.Instrument{}, fmt.Errorf("underlying_index out of bounds for id %d", id)
	}

	var strikeVal float64
	if isOption {
		if strike == nil || *strike <= 0 {
			return instrument.Instrument{}, fmt.Errorf("option id %d has invalid strike", id)
		}
		strikeVal = *strike
	}

	var ttmVal float64
	if ttm != nil {
		ttmVal = math.Max(*ttm, 0)
	} else if isOption {
		return instrument.Instrument{}, fmt.Errorf("option id %d missing time_to_maturity", id)
	}

	var volVal float64
	if isOption {
		if vol == nil {
			return instrument.Instrument{}, fmt.Errorf("option id %d missing implied_vol", id)
		}
		volVal = math.Max(*vol, minImpliedVol)
	}

	var rateVal float64
	if rate != nil {
		rateVal = *rate
	}

	isCallVal := isCall != nil && *isCall

	inst := instrument.Instrument{
		ID:              uint32(id),
		Kind:            kind,
		IsCall:          isCallVal,
		Qty:             qty,
		CurrentPrice:    currentPrice,
		UnderlyingPrice: uPrice,
		UnderlyingIndex: uIndex,
		Strike:          strikeVal,
		TimeToMaturity:  ttmVal,
		ImpliedVol:      volVal,
		Rate:            rateVal,
	}
	return inst.Canonicalize(), nil
}
