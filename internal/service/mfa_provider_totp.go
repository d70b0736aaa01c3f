package service

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPProvider issues and checks authenticator-app codes for the profile's
// two-factor setting. Zero fields fall back to the RFC 6238 defaults every
// mainstream authenticator understands.
type TOTPProvider struct {
	Period    uint
	Skew      uint
	Digits    otp.Digits
	Algorithm otp.Algorithm
}

func NewTOTPProvider() *TOTPProvider {
	return &TOTPProvider{Period: 30, Skew: 1, Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1}
}

func (p *TOTPProvider) Enroll(issuer string, accountName string) (MFAEnrollment, error) {
	opts := p.options()
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      opts.Period,
		Digits:      opts.Digits,
		Algorithm:   opts.Algorithm,
	})
	if err != nil {
		return MFAEnrollment{}, err
	}
	return MFAEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

func (p *TOTPProvider) Validate(secret string, code string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, p.options())
	return err == nil && ok
}

func (p *TOTPProvider) options() totp.ValidateOpts {
	opts := totp.ValidateOpts{Period: p.Period, Skew: p.Skew, Digits: p.Digits, Algorithm: p.Algorithm}
	if opts.Period == 0 {
		opts.Period = 30
	}
	if opts.Skew == 0 {
		opts.Skew = 1
	}
	if opts.Digits == 0 {
		opts.Digits = otp.DigitsSix
	}
	return opts
}
