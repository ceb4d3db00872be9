package registration

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/services"
)

// RegistrationNumber derives a registration number from the company name:
// the name without whitespace followed by suffix.
func RegistrationNumber(name string, suffix int) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return compact + strconv.Itoa(suffix)
}

// LicenseExpiry returns now plus months as YYYY-MM-DD.
func LicenseExpiry(now time.Time, months int) string {
	return now.AddDate(0, months, 0).Format(time.DateOnly)
}

// BuildCompanyRequest assembles the company registration payload.
func BuildCompanyRequest(name string, cur services.Currency, d config.CompanyDefaults, now time.Time, suffix int) services.CompanyRequest {
	return services.CompanyRequest{
		Name:                  name,
		CompanyID:             0,
		RegistrationNumber:    RegistrationNumber(name, suffix),
		ReportingCurrencyID:   cur.CurrencyID,
		ReportingCurrencyCode: cur.CurrencyCode,
		FinancialYearEnd:      d.FinancialYearEnd,
		LeaseTypes:            d.LeaseTypes,
		AssetType:             d.AssetTypes,
		LicenseExpiry:         LicenseExpiry(now, d.LicenseMonths),
		AllowedUsers:          d.AllowedUsers,
		AllowedLease:          d.AllowedLeases,
	}
}

// BuildUserRequest assembles the administrator registration payload.
func BuildUserRequest(form UserForm, email string, companyID int) services.UserRequest {
	return services.UserRequest{
		UserID:       0,
		Username:     strings.TrimSpace(form.Username),
		PasswordHash: form.Password,
		PhoneNumber:  strings.TrimSpace(form.PhoneNumber),
		UserAddress:  strings.TrimSpace(form.Address),
		Email:        email,
		CompanyID:    strconv.Itoa(companyID),
		Role:         "Admin",
	}
}

// BuildDemoLease assembles the demo lease for a new account. A zero
// currencyID falls back to the configured one; an empty userName to
// fallbackName.
func BuildDemoLease(d config.LeaseDefaults, companyID, currencyID int, user services.UserCreated, fallbackName string) services.LeaseRequest {
	if currencyID == 0 {
		currencyID = d.CurrencyID
	}
	userName := user.Username
	if userName == "" {
		userName = fallbackName
	}
	return services.LeaseRequest{
		LeaseData: services.DemoLease{
			LeaseID:              d.LeaseID,
			LeaseName:            d.LeaseName,
			Rental:               d.Rental,
			CommencementDate:     d.CommencementDate,
			EndDate:              d.EndDate,
			Annuity:              d.Annuity,
			IBR:                  d.IBR,
			Frequency:            d.Frequency,
			AssetType:            d.AssetType,
			CompanyID:            companyID,
			CurrencyID:           currencyID,
			GRV:                  d.GRV,
			IDC:                  d.IDC,
			Increment:            d.Increment,
			IncrementalFrequency: d.IncrementalFrequency,
			IsActive:             d.IsActive,
			LastModifiedDate:     d.LastModifiedDate,
			UserID:               strconv.Itoa(user.UserID),
			UserName:             userName,
			IsLeaseModified:      d.IsLeaseModified,
			ParentLeaseID:        d.ParentLeaseID,
		},
	}
}

// DefaultCurrency picks code from list, else the first entry.
func DefaultCurrency(list []services.Currency, code string) (services.Currency, bool) {
	if len(list) == 0 {
		return services.Currency{}, false
	}
	for _, c := range list {
		if strings.EqualFold(c.CurrencyCode, code) {
			return c, true
		}
	}
	return list[0], true
}
