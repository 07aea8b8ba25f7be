package config

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams_Valid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestWindowedParams_Valid(t *testing.T) {
	p := WindowedParams()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 30*Day, p.JoinWindow)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"negative join window", func(p *Params) { p.JoinWindow = -Day }, ErrNegativeInterval},
		{"zero membership period", func(p *Params) { p.MinMembershipPeriod = 0 }, ErrNonPositiveInterval},
		{"zero contribution interval", func(p *Params) { p.MinContributionInterval = 0 }, ErrNonPositiveInterval},
		{"zero process interval", func(p *Params) { p.MinProcessInterval = 0 }, ErrNonPositiveInterval},
		{"zero distribution interval", func(p *Params) { p.MinDistributionInterval = 0 }, ErrNonPositiveInterval},
		{"zero commitment lock", func(p *Params) { p.CommitmentLockPeriod = 0 }, ErrNonPositiveInterval},
		{"nil exit cap", func(p *Params) { p.MaxExitValue = nil }, ErrMissingCap},
		{"zero exit cap", func(p *Params) { p.MaxExitValue = big.NewInt(0) }, ErrNonPositiveCap},
		{"nil contribution cap", func(p *Params) { p.MaxContribution = nil }, ErrMissingCap},
		{"negative claim cap", func(p *Params) { p.MaxClaim = big.NewInt(-1) }, ErrNonPositiveCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.want)
		})
	}
}

func TestMaxValueCap(t *testing.T) {
	want, ok := new(big.Int).SetString("1000000000000000000000000000", 10) // 1e27
	assert.True(t, ok)
	assert.Zero(t, MaxValueCap.Cmp(want))
}
