package templates

import (
	"time"
)

// Brand carries the sender identity printed in every email.
type Brand struct {
	CompanyName string
	AppName     string
	LogoURL     string
	SupportURL  string
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithStatus(status string) Option { return func(d *EmailData) { d.Status = status } }

func WithNotice(headline, message string) Option {
	return func(d *EmailData) {
		d.Headline = headline
		d.Message = message
	}
}

// NewEmailData fills the brand fields, then applies opts.
func NewEmailData(brand Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Type:        typ,
		CompanyName: brand.CompanyName,
		AppName:     brand.AppName,
		LogoURL:     brand.LogoURL,
		SupportURL:  brand.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
