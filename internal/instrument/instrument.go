// Package instrument defines the Instrument data model and its
// structure-of-arrays (SoA) store — the primary input to every core
// analytic. The SoA layout is mandatory: the revaluation kernels
// stream column-wise and the layout exists for cache-friendly
// vectorization, not as an implementation convenience.
package instrument

// Kind is the closed Equity/Option variant.
type Kind uint8

const (
	Equity Kind = 0
	Option Kind = 1
)

func (k Kind) String() string {
	if k == Option {
		return "option"
	}
	return "equity"
}

// Instrument is one row of a book: an equity or European-option
// position. Equity rows must be canonicalized before use — see
// Canonicalize.
type Instrument struct {
	ID              uint32  `json:"id"`
	Kind            Kind    `json:"type"`
	IsCall          bool    `json:"is_call"`
	Qty             float64 `json:"qty"`
	CurrentPrice    float64 `json:"current_price"`
	UnderlyingPrice float64 `json:"underlying_price"`
	UnderlyingIndex uint32  `json:"underlying_index"`
	Strike          float64 `json:"strike"`
	TimeToMaturity  float64 `json:"time_to_maturity"`
	ImpliedVol      float64 `json:"implied_vol"`
	Rate            float64 `json:"rate"`
}

// Canonicalize zeroes out the option-only fields and mirrors id/price
// into the underlying fields for an equity row: is_call=false,
// strike=0, time_to_maturity=0, implied_vol=0, underlying_index=id,
// underlying_price=current_price.
func (inst Instrument) Canonicalize() Instrument {
	if inst.Kind != Equity {
		return inst
	}
	inst.IsCall = false
	inst.Strike = 0
	inst.TimeToMaturity = 0
	inst.ImpliedVol = 0
	inst.UnderlyingIndex = inst.ID
	inst.UnderlyingPrice = inst.CurrentPrice
	return inst
}

// SoA is a column-oriented store of parallel instrument fields. Every
// slice has the same length, Size(). No core component mutates an SoA
// after it is built by a loader.
type SoA struct {
	ID              []uint32
	Kind            []Kind
	IsCall          []bool
	Qty             []float64
	CurrentPrice    []float64
	UnderlyingPrice []float64
	UnderlyingIndex []uint32
	Strike          []float64
	TimeToMaturity  []float64
	ImpliedVol      []float64
	Rate            []float64
}

// NewSoA allocates an SoA with n pre-sized, zero-valued columns.
func NewSoA(n int) *SoA {
	return &SoA{
		ID:              make([]uint32, n),
		Kind:            make([]Kind, n),
		IsCall:          make([]bool, n),
		Qty:             make([]float64, n),
		CurrentPrice:    make([]float64, n),
		UnderlyingPrice: make([]float64, n),
		UnderlyingIndex: make([]uint32, n),
		Strike:          make([]float64, n),
		TimeToMaturity:  make([]float64, n),
		ImpliedVol:      make([]float64, n),
		Rate:            make([]float64, n),
	}
}

// Size returns the row count, the common length of every column.
func (s *SoA) Size() int {
	return len(s.ID)
}

// Get materializes row i as an Instrument.
func (s *SoA) Get(i int) Instrument {
	return Instrument{
		ID:              s.ID[i],
		Kind:            s.Kind[i],
		IsCall:          s.IsCall[i],
		Qty:             s.Qty[i],
		CurrentPrice:    s.CurrentPrice[i],
		UnderlyingPrice: s.UnderlyingPrice[i],
		UnderlyingIndex: s.UnderlyingIndex[i],
		Strike:          s.Strike[i],
		TimeToMaturity:  s.TimeToMaturity[i],
		ImpliedVol:      s.ImpliedVol[i],
		Rate:            s.Rate[i],
	}
}

// Set writes row i from inst; the caller is responsible for calling
// Canonicalize first if inst is an equity row.
func (s *SoA) Set(i int, inst Instrument) {
	s.ID[i] = inst.ID
	s.Kind[i] = inst.Kind
	s.IsCall[i] = inst.IsCall
	s.Qty[i] = inst.Qty
	s.CurrentPrice[i] = inst.CurrentPrice
	s.UnderlyingPrice[i] = inst.UnderlyingPrice
	s.UnderlyingIndex[i] = inst.UnderlyingIndex
	s.Strike[i] = inst.Strike
	s.TimeToMaturity[i] = inst.TimeToMaturity
	s.ImpliedVol[i] = inst.ImpliedVol
	s.Rate[i] = inst.Rate
}

// ToSoA converts a slice of Instruments into an SoA, canonicalizing
// equity rows along the way.
func ToSoA(rows []Instrument) *SoA {
	soa := NewSoA(len(rows))
	for i, row := range rows {
		soa.Set(i, row.Canonicalize())
	}
	return soa
}
