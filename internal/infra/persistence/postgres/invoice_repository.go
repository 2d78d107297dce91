package postgres

import (
	"context"
	"time"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// invoiceRepository implements the repository.InvoiceRepository interface
// against the invoice service's own database.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository is the constructor for invoiceRepository.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// FindAll retrieves every stored invoice, newest first.
func (repo *invoiceRepository) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	var invoiceModels []*model.InvoiceModel

	if err := repo.db.WithContext(ctx).
		Order("issued_on DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceModels))
	for _, invoiceM := range invoiceModels {
		invoices = append(invoices, toInvoiceDomain(invoiceM))
	}

	return invoices, nil
}

// FindByID retrieves a single invoice by its unique ID.
func (repo *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceM model.InvoiceModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoiceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice by id")
	}

	return toInvoiceDomain(&invoiceM), nil
}

// FindIssuedBefore retrieves invoices issued strictly before the cutoff,
// oldest first. Used by the retention sweep.
func (repo *invoiceRepository) FindIssuedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Invoice, error) {
	var invoiceModels []*model.InvoiceModel

	if err := repo.db.WithContext(ctx).
		Where("issued_on < ?", cutoff).
		Order("issued_on ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list invoices issued before cutoff")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceModels))
	for _, invoiceM := range invoiceModels {
		invoices = append(invoices, toInvoiceDomain(invoiceM))
	}

	return invoices, nil
}

// Create persists a new invoice with a generated identity.
func (repo *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)

	if err := repo.db.WithContext(ctx).Create(invoiceM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvoiceInvalid.WrapMessage("missing required invoice information")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create invoice")
	}

	invoice.ID = invoiceM.ID

	return nil
}

// Delete removes an invoice by ID.
func (repo *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete invoice")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvoiceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toInvoiceDomain converts a GORM InvoiceModel to a domain Invoice entity.
func toInvoiceDomain(data *model.InvoiceModel) *entity.Invoice {
	if data == nil {
		return nil
	}

	return &entity.Invoice{
		ID:           data.ID,
		OrderID:      data.OrderID,
		EIK:          data.EIK,
		CustomerName: data.CustomerName,
		TotalAmount:  data.TotalAmount,
		IssuedOn:     data.IssuedOn,
	}
}

// fromInvoiceDomain converts a domain Invoice entity to a GORM InvoiceModel.
func fromInvoiceDomain(data *entity.Invoice) *model.InvoiceModel {
	if data == nil {
		return nil
	}

	return &model.InvoiceModel{
		ID:           data.ID,
		OrderID:      data.OrderID,
		EIK:          data.EIK,
		CustomerName: data.CustomerName,
		TotalAmount:  data.TotalAmount,
		IssuedOn:     data.IssuedOn,
	}
}
