package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ClientModel is the GORM model for clients table
type ClientModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Company   string    `gorm:"type:varchar(200)"`
	Email     string    `gorm:"type:varchar(200)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for ClientModel
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts ClientModel to domain Client
func (m *ClientModel) ToDomain() *finance.Client {
	return &finance.Client{
		ID:        m.ID,
		Name:      m.Name,
		Company:   m.Company,
		Email:     m.Email,
		Status:    finance.ClientStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

// InvoiceModel is the GORM model for invoices table
type InvoiceModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceNumber   string          `gorm:"column:invoice_number;type:varchar(50);uniqueIndex"`
	Title           string          `gorm:"type:varchar(200)"`
	Description     string          `gorm:"type:text"`
	ClientID        *uuid.UUID      `gorm:"column:client_id;type:uuid;index"`
	Client          *ClientModel    `gorm:"foreignKey:ClientID"`
	IssueDate       *time.Time      `gorm:"column:issue_date;type:date"`
	DueDate         *time.Time      `gorm:"column:due_date;type:date"`
	PaidDate        *time.Time      `gorm:"column:paid_date;type:date"`
	Status          string          `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaymentStatus   string          `gorm:"column:payment_status;type:varchar(20);not null;default:'unpaid'"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate         decimal.Decimal `gorm:"column:tax_rate;type:decimal(5,2);not null;default:0"`
	TaxAmount       decimal.Decimal `gorm:"column:tax_amount;type:decimal(18,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"column:paid_amount;type:decimal(18,2);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,2);not null;default:0"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'IDR'"`
	Notes           string          `gorm:"type:text"`
	Terms           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts InvoiceModel to domain Invoice with the client snapshot denormalized
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	inv := &finance.Invoice{
		ID:              m.ID,
		InvoiceNumber:   m.InvoiceNumber,
		Title:           m.Title,
		Description:     m.Description,
		IssueDate:       m.IssueDate,
		DueDate:         m.DueDate,
		PaidDate:        m.PaidDate,
		Status:          finance.InvoiceStatus(m.Status),
		PaymentStatus:   finance.PaymentStatus(m.PaymentStatus),
		Amount:          m.Amount,
		TaxRate:         m.TaxRate,
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		RemainingAmount: m.RemainingAmount,
		Currency:        m.Currency,
		Notes:           m.Notes,
		Terms:           m.Terms,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Client != nil {
		inv.Client = m.Client.ToDomain().Ref()
	} else if m.ClientID != nil {
		inv.Client.ID = *m.ClientID
	}
	return inv
}

// InvoiceModelFromDomain creates an InvoiceModel from domain Invoice
func InvoiceModelFromDomain(inv *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Title:           inv.Title,
		Description:     inv.Description,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		PaidDate:        inv.PaidDate,
		Status:          string(inv.Status),
		PaymentStatus:   string(inv.PaymentStatus),
		Amount:          inv.Amount,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		Currency:        inv.CurrencyCode(),
		Notes:           inv.Notes,
		Terms:           inv.Terms,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if inv.Client.ID != uuid.Nil {
		id := inv.Client.ID
		m.ClientID = &id
	}
	return m
}

// PaymentModel is the GORM model for payments table
type PaymentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PaymentNumber   string          `gorm:"column:payment_number;type:varchar(50)"`
	InvoiceID       uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(30);not null;default:'bank_transfer'"`
	PaymentDate     time.Time       `gorm:"column:payment_date;type:date;not null;index"`
	Status          string          `gorm:"type:varchar(20);not null;default:'completed'"`
	ReferenceNumber string          `gorm:"column:reference_number;type:varchar(100)"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentRow is a payment joined with its invoice number and client
type PaymentRow struct {
	PaymentModel
	InvoiceNumber string `gorm:"column:invoice_number"`
	ClientName    string `gorm:"column:client_name"`
	ClientCompany string `gorm:"column:client_company"`
}

// ToDomain converts PaymentRow to domain Payment
func (r *PaymentRow) ToDomain() finance.Payment {
	return finance.Payment{
		ID:              r.ID,
		PaymentNumber:   r.PaymentNumber,
		InvoiceID:       r.InvoiceID,
		InvoiceNumber:   r.InvoiceNumber,
		ClientName:      r.ClientName,
		ClientCompany:   r.ClientCompany,
		Amount:          r.Amount,
		Method:          finance.PaymentMethod(r.PaymentMethod),
		PaymentDate:     r.PaymentDate,
		Status:          finance.PaymentRecordStatus(r.Status),
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

// InvoiceFileModel is the GORM model for invoice_files table
type InvoiceFileModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	InvoiceID *uuid.UUID `gorm:"column:invoice_id;type:uuid;index"`
	FileName  string     `gorm:"column:file_name;type:varchar(255);not null"`
	FilePath  string     `gorm:"column:file_path;type:varchar(500);not null"`
	FileURL   string     `gorm:"column:file_url;type:text;not null"`
	FileType  string     `gorm:"column:file_type;type:varchar(20);not null;default:'pdf'"`
	FileSize  int64      `gorm:"column:file_size;not null;default:0"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for InvoiceFileModel
func (InvoiceFileModel) TableName() string {
	return "invoice_files"
}

// ToDomain converts InvoiceFileModel to domain InvoiceFile
func (m *InvoiceFileModel) ToDomain() finance.InvoiceFile {
	return finance.InvoiceFile{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		FileName:  m.FileName,
		FilePath:  m.FilePath,
		FileURL:   m.FileURL,
		FileType:  m.FileType,
		FileSize:  m.FileSize,
		CreatedAt: m.CreatedAt,
	}
}

// InvoiceFileModelFromDomain creates an InvoiceFileModel from domain InvoiceFile
func InvoiceFileModelFromDomain(f *finance.InvoiceFile) *InvoiceFileModel {
	return &InvoiceFileModel{
		ID:        f.ID,
		InvoiceID: f.InvoiceID,
		FileName:  f.FileName,
		FilePath:  f.FilePath,
		FileURL:   f.FileURL,
		FileType:  f.FileType,
		FileSize:  f.FileSize,
		CreatedAt: f.CreatedAt,
	}
}
