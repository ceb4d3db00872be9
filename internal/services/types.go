package services

// Envelope is the {success, message, error, data} wrapper most registration
// endpoints reply with.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendOtpResponse is the reply to a send-otp request.
type SendOtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		Email string `json:"email"`
	} `json:"data,omitempty"`
}

// VerifyOtpResponse is the reply to a verify-otp request.
type VerifyOtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CompanyRequest registers a company.
type CompanyRequest struct {
	Name                  string `json:"name"`
	CompanyID             int    `json:"companyID"`
	RegistrationNumber    string `json:"registrationNumber"`
	ReportingCurrencyID   int    `json:"reportingCurrencyId"`
	ReportingCurrencyCode string `json:"reportingCurrencyCode"`
	FinancialYearEnd      string `json:"financialYearEnd"`
	LeaseTypes            string `json:"leaseTypes"`
	AssetType             string `json:"assetType"`
	LicenseKey            string `json:"licenseKey,omitempty"`
	LicenseExpiry         string `json:"licenseExpiry"`
	AllowedUsers          int    `json:"allowedUsers"`
	AllowedLease          int    `json:"allowedLease"`
}

// CompanyCreated is the data of a successful company registration.
type CompanyCreated struct {
	CompanyID int    `json:"companyId"`
	Name      string `json:"name"`
}

// UserRequest registers the administrator user. CompanyID is sent as a
// string.
type UserRequest struct {
	UserID       int    `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	PhoneNumber  string `json:"phoneNumber"`
	UserAddress  string `json:"userAddress"`
	Email        string `json:"email"`
	CompanyID    string `json:"companyID"`
	Role         string `json:"role"`
}

// UserCreated is the data of a successful user registration.
type UserCreated struct {
	UserID   int    `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// DemoLease is the lease record provisioned for a new account.
type DemoLease struct {
	LeaseID              int      `json:"leaseId"`
	LeaseName            string   `json:"leaseName"`
	Rental               float64  `json:"rental"`
	CommencementDate     string   `json:"commencementDate"`
	EndDate              string   `json:"endDate"`
	Annuity              string   `json:"annuity"`
	IBR                  float64  `json:"ibr"`
	Frequency            string   `json:"frequency"`
	AssetType            string   `json:"assetType"`
	CompanyID            int      `json:"companyId"`
	CurrencyID           int      `json:"currencyId"`
	GRV                  *float64 `json:"grv"`
	IDC                  *float64 `json:"idc"`
	Increment            *float64 `json:"increment"`
	IncrementalFrequency string   `json:"incrementalFrequency"`
	IsActive             bool     `json:"isActive"`
	LastModifiedDate     string   `json:"lastModifiedDate"`
	UserID               string   `json:"userId"`
	UserName             string   `json:"userName"`
	IsLeaseModified      bool     `json:"isLeaseModified"`
	ParentLeaseID        *int     `json:"parentLeaseId"`
}

// LeaseRequest wraps the demo lease for the lease form endpoint. LessorData
// is always null.
type LeaseRequest struct {
	LeaseData  DemoLease `json:"LeaseData"`
	LessorData *struct{} `json:"LessorData"`
}

// LeaseCreated is the reply to a lease submission.
type LeaseCreated struct {
	LeaseID int `json:"leaseId"`
}

// Currency is one entry of the currency list.
type Currency struct {
	CurrencyID   int    `json:"currencyID"`
	CurrencyCode string `json:"currencyCode"`
	CurrencyName string `json:"currencyName"`
}

type passwordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
