package orders

import (
	"testing"
	"time"

	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoicePDF(t *testing.T) {
	order := models.Order{
		ID:        1,
		UserID:    7,
		Reference: "6f1e0c1a-0000-4000-8000-000000000001",
		Status:    models.OrderStatusPaid,
		Total:     69.70,
		CreatedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{
				ProductID: 1,
				Product:   &models.Product{ID: 1, Name: "Classic Tee"},
				Size:      "M",
				Quantity:  2,
				UnitPrice: 19.90,
			},
			{
				ProductID: 2,
				Size:      "L", // product row gone, falls back to the id
				Quantity:  1,
				UnitPrice: 29.90,
			},
		},
	}
	user := models.User{ID: 7, Name: "Jane", Email: "jane@shop.test"}

	pdfBytes, filename, err := BuildInvoicePDF(order, user)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE_6f1e0c1a-0000-4000-8000-000000000001.pdf", filename)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
