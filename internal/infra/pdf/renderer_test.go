package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"trading/config"
	"trading/internal/domain/entity"
)

func TestNewRenderer_MissingFont(t *testing.T) {
	_, err := NewRenderer(&config.Config{PDF: &config.PDFConfig{FontPath: "/nonexistent/DejaVuSans.ttf"}})
	assert.Error(t, err)

	_, err = NewRenderer(&config.Config{PDF: &config.PDFConfig{}})
	assert.Error(t, err)
}

func TestDetailLines(t *testing.T) {
	issuedOn := time.Date(2025, 3, 7, 14, 5, 0, 0, time.UTC)
	invoice := &entity.Invoice{
		ID:           uuid.MustParse("0195f4a2-0000-7000-8000-000000000001"),
		OrderID:      uuid.MustParse("0195f4a2-0000-7000-8000-000000000002"),
		EIK:          "123456789",
		CustomerName: "Acme Ltd",
		TotalAmount:  decimal.RequireFromString("1250.5"),
		IssuedOn:     issuedOn,
	}

	assert.Equal(t, "Фактура № 0195f4a2-0000-7000-8000-000000000001", titleLine(invoice))

	lines := detailLines(invoice)
	assert.Equal(t, []string{
		"Поръчка: 0195f4a2-0000-7000-8000-000000000002",
		"Клиент: Acme Ltd",
		"ЕИК: 123456789",
		"Дата на издаване: 07.03.2025 14:05",
		"Обща сума: 1250.50 лв.",
	}, lines)
}
