package csvdata

import (
	"encoding/csv"
	"io"
	"math"
	"os"

	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const opPortfolio = "csvdata.LoadPortfolio"

var portfolioHeader = []string{
	"id", "type", "is_call", "qty", "current_price", "underlying_price",
	"underlying_index", "strike", "time_to_maturity", "implied_vol", "rate",
}

const minImpliedVol = 1e-8

// LoadPortfolio reads a fixed 11-column portfolio CSV (see
// portfolioHeader for the exact order) and validates every row
// against the universe size n, per the rejection rules: id >= n,
// type not in {0,1}, non-finite numerics, non-positive
// current_price/underlying_price/strike, underlying_index >= n, and
// an equity whose underlying_index != id.
func LoadPortfolio(path string, n int) ([]instrument.Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
	}
	defer f.Close()
	return loadPortfolio(f, n)
}

func loadPortfolio(r io.Reader, n int) ([]instrument.Instrument, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
	}
	if len(header) != len(portfolioHeader) {
		return nil, rkerr.Newf(opPortfolio, rkerr.InvalidArgument,
			"portfolio header has %d columns, want %d", len(header), len(portfolioHeader))
	}
	for i, want := range portfolioHeader {
		if header[i] != want {
			return nil, rkerr.Newf(opPortfolio, rkerr.InvalidArgument,
				"portfolio header mismatch at column %d: got %q, want %q", i, header[i], want)
		}
	}

	var rows []instrument.Instrument
	rowIndex := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rkerr.New(opPortfolio, rkerr.InvalidArgument, err)
		}
		rowIndex++

		inst, err := parsePortfolioRow(record, n)
		if err != nil {
			return nil, rkerr.Newf(opPortfolio, rkerr.InvalidArgument, "row %d: %v", rowIndex, err)
		}
		rows = append(rows, inst)
	}

	return rows, nil
}

func parsePortfolioRow(fields []string, n int) (instrument.Instrument, error) {
	if len(fields) != len(portfolioHeader) {
		return instrument.Instrument{}, errFieldCount
	}

	id, err := parseUint32(fields[0])
	if err != nil || int(id) >= n {
		return instrument.Instrument{}, errInvalidID
	}

	typeRaw, err := parseUint32(fields[1])
	if err != nil || typeRaw > 1 {
		return instrument.Instrument{}, errInvalidType
	}
	kind := instrument.Kind(typeRaw)
	isOption := kind == instrument.Option

	isCallRaw, err := parseOptionalUint32(fields[2], isOption, 0)
	if err != nil || isCallRaw > 1 {
		return instrument.Instrument{}, errInvalidIsCall
	}

	qty, err := parseRequiredFinite(fields[3])
	if err != nil {
		return instrument.Instrument{}, errInvalidQty
	}

	currentPrice, err := parseRequiredFinite(fields[4])
	if err != nil || currentPrice <= 0 {
		return instrument.Instrument{}, errInvalidCurrentPrice
	}

	underlyingPrice, err := parseOptionalFinite(fields[5], isOption, currentPrice)
	if err != nil || underlyingPrice <= 0 {
		return instrument.Instrument{}, errInvalidUnderlyingPrice
	}

	underlyingIndex, err := parseOptionalUint32(fields[6], isOption, id)
	if err != nil {
		return instrument.Instrument{}, errInvalidUnderlyingIndex
	}
	if kind == instrument.Equity && underlyingIndex != id {
		return instrument.Instrument{}, errEquityUnderlyingMismatch
	}
	if int(underlyingIndex) >= n {
		return instrument.Instrument{}, errUnderlyingIndexOutOfBounds
	}

	var strike float64
	if isOption {
		strike, err = parseRequiredFinite(fields[7])
		if err != nil || strike <= 0 {
			return instrument.Instrument{}, errInvalidStrike
		}
	}

	timeToMaturity, err := parseOptionalFinite(fields[8], isOption, 0)
	if err != nil {
		return instrument.Instrument{}, errInvalidTTM
	}
	timeToMaturity = math.Max(timeToMaturity, 0)

	impliedVol, err := parseOptionalFinite(fields[9], isOption, 0)
	if err != nil {
		return instrument.Instrument{}, errInvalidImpliedVol
	}
	if isOption {
		impliedVol = math.Max(impliedVol, minImpliedVol)
	} else {
		impliedVol = 0
	}

	rate, err := parseOptionalFinite(fields[10], false, 0)
	if err != nil {
		return instrument.Instrument{}, errInvalidRate
	}

	inst := instrument.Instrument{
		ID:              id,
		Kind:            kind,
		IsCall:          isCallRaw == 1,
		Qty:             qty,
		CurrentPrice:    currentPrice,
		UnderlyingPrice: underlyingPrice,
		UnderlyingIndex: underlyingIndex,
		Strike:          strike,
		TimeToMaturity:  timeToMaturity,
		ImpliedVol:      impliedVol,
		Rate:            rate,
	}
	return inst.Canonicalize(), nil
}

func parseUint32(token string) (uint32, error) {
	return parseRequiredUint32(token)
}
