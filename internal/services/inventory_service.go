package services

import (
	"wardrobe/internal/domain"
	"wardrobe/internal/repos"
)

const lowStockBelow = 5

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts the stock of one size into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID string, size domain.Size) (domain.Availability, error) {
	if !size.Valid() {
		return domain.Availability{}, validationErr("unknown size " + string(size))
	}
	d, err := s.Inv.BySize(productID, size)
	if err != nil {
		// no variant for this size counts as sold out
		if repos.IsNotFound(err) {
			return domain.Availability{Status: "OUT_OF_STOCK", Size: size}, nil
		}
		return domain.Availability{}, internal("find product detail", err)
	}

	status := "OUT_OF_STOCK"
	switch {
	case d.Quantity >= lowStockBelow:
		status = "IN_STOCK"
	case d.Quantity > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: d.Quantity, Size: size}, nil
}
