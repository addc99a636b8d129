package models

// CompanyInfo is the singleton business profile used on invoice printouts.
type CompanyInfo struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	GSTIN       string `json:"gstin" gorm:"column:gstin;size:15"`
	PAN         string `json:"pan" gorm:"column:pan;size:10"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	BankIFSC    string `json:"bank_ifsc" gorm:"column:bank_ifsc"`
}

func (CompanyInfo) TableName() string {
	return "company_info"
}
