package csvdata

import (
	"strings"
	"testing"

	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const portfolioHeaderLine = "id,type,is_call,qty,current_price,underlying_price,underlying_index,strike,time_to_maturity,implied_vol,rate\n"

func TestLoadPortfolioParsesEquityAndOption(t *testing.T) {
	csvText := portfolioHeaderLine +
		"0,0,,100,50,,,,,,\n" +
		"1,1,1,10,2,50,0,55,0.5,0.3,0.01\n"

	rows, err := loadPortfolio(strings.NewReader(csvText), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	eq := rows[0]
	if eq.Kind != instrument.Equity || eq.UnderlyingIndex != 0 || eq.UnderlyingPrice != 50 {
		t.Errorf("equity row not canonicalized correctly: %+v", eq)
	}

	opt := rows[1]
	if opt.Kind != instrument.Option || !opt.IsCall || opt.Strike != 55 || opt.ImpliedVol != 0.3 {
		t.Errorf("option row parsed incorrectly: %+v", opt)
	}
}

func TestLoadPortfolioRejectsIDOutOfBounds(t *testing.T) {
	csvText := portfolioHeaderLine + "5,0,,100,50,,,,,,\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsBadType(t *testing.T) {
	csvText := portfolioHeaderLine + "0,2,,100,50,,,,,,\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsNonPositiveCurrentPrice(t *testing.T) {
	csvText := portfolioHeaderLine + "0,0,,100,-5,,,,,,\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsEquityUnderlyingIndexMismatch(t *testing.T) {
	csvText := portfolioHeaderLine + "0,0,,100,50,50,1,,,,\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsUnderlyingIndexOutOfBounds(t *testing.T) {
	csvText := portfolioHeaderLine + "0,1,1,10,2,50,5,55,0.5,0.3,0.01\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsNonPositiveStrike(t *testing.T) {
	csvText := portfolioHeaderLine + "0,1,1,10,2,50,0,-1,0.5,0.3,0.01\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLoadPortfolioRejectsHeaderMismatch(t *testing.T) {
	csvText := "a,b,c\n0,0,0\n"
	_, err := loadPortfolio(strings.NewReader(csvText), 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
