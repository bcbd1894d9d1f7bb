package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const testMarketCSV = `date,AAA,BBB
2024-01-01,100,50
2024-01-02,101,49
2024-01-03,99,51
`

const testPortfolioCSV = `id,type,is_call,qty,current_price,underlying_price,underlying_index,strike,time_to_maturity,implied_vol,rate
0,0,0,10,100,,,,,,
1,0,0,5,50,,,,,,
`

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadFromCSVDerivesShocksAndUniverse(t *testing.T) {
	dir := t.TempDir()
	marketPath := writeTempFile(t, dir, "market.csv", testMarketCSV)
	portfolioPath := writeTempFile(t, dir, "portfolio.csv", testPortfolioCSV)

	loaded, err := loadFromCSV(marketPath, portfolioPath)
	if err != nil {
		t.Fatalf("loadFromCSV: %v", err)
	}
	if loaded.Closes.T != 3 {
		t.Fatalf("T = %d, want 3", loaded.Closes.T)
	}
	if loaded.Closes.N != 2 {
		t.Fatalf("N = %d, want 2", loaded.Closes.N)
	}
	wantShocks := (loaded.Closes.T - 1) * loaded.Closes.N
	if len(loaded.Shocks) != wantShocks {
		t.Fatalf("len(Shocks) = %d, want %d", len(loaded.Shocks), wantShocks)
	}
	if loaded.Book.Size() != 2 {
		t.Fatalf("book size = %d, want 2", loaded.Book.Size())
	}
	if loaded.Universe.Size() != 2 {
		t.Fatalf("universe size = %d, want 2", loaded.Universe.Size())
	}
}

func TestLoadFromCSVPropagatesMarketLoadError(t *testing.T) {
	dir := t.TempDir()
	portfolioPath := writeTempFile(t, dir, "portfolio.csv", testPortfolioCSV)

	if _, err := loadFromCSV(filepath.Join(dir, "missing.csv"), portfolioPath); err == nil {
		t.Fatal("expected an error for a missing market file")
	}
}
