package domain

import "testing"

func TestQuoteParamsValidate(t *testing.T) {
	valid := QuoteParams{
		InputMint:   "So11111111111111111111111111111111111111112",
		OutputMint:  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Amount:      "1000000000",
		SlippageBps: 50,
	}

	tests := []struct {
		name    string
		mutate  func(*QuoteParams)
		wantErr bool
	}{
		{"valid", func(p *QuoteParams) {}, false},
		{"zero slippage is allowed", func(p *QuoteParams) { p.SlippageBps = 0 }, false},
		{"max slippage is allowed", func(p *QuoteParams) { p.SlippageBps = 10000 }, false},
		{"slippage above 10000 bps", func(p *QuoteParams) { p.SlippageBps = 10001 }, true},
		{"zero amount", func(p *QuoteParams) { p.Amount = "0" }, true},
		{"empty amount", func(p *QuoteParams) { p.Amount = "" }, true},
		{"non-numeric amount", func(p *QuoteParams) { p.Amount = "1.5e9" }, true},
		{"negative amount", func(p *QuoteParams) { p.Amount = "-100" }, true},
		{"amount beyond uint64", func(p *QuoteParams) { p.Amount = "99999999999999999999999999999" }, false},
		{"missing input mint", func(p *QuoteParams) { p.InputMint = "" }, true},
		{"missing output mint", func(p *QuoteParams) { p.OutputMint = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
