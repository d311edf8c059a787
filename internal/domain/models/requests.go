package models

// Requests for the estimation HTTP endpoints. Defined in domain for
// consistency and reuse.

type EstimateRequest struct {
	Tickers    []string `json:"tickers" validate:"required,min=1,max=50,dive,required"`
	Period     string   `json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
	UseQuantum *bool    `json:"use_quantum"` // absent means true
	Shots      int      `json:"shots" default:"1024" validate:"gt=0,lte=100000"`
}

// Quantum reports the effective use_quantum flag, defaulting to true when
// the field was omitted.
func (r *EstimateRequest) Quantum() bool {
	if r.UseQuantum == nil {
		return true
	}
	return *r.UseQuantum
}

type TimeseriesRequest struct {
	Tickers []string `json:"tickers" validate:"required,min=1,max=50,dive,required"`
	Period  string   `json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}
