package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/restock-api/internal/application/dto"
)

// RecordMovementFromRequest adapta el body HTTP al caso de uso.
func (uc *StockUseCase) RecordMovementFromRequest(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	mov, err := uc.RecordMovement(ctx, MovementInput{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		Type:        mov.Type,
		Quantity:    mov.Quantity,
		Description: mov.Description,
		CreatedBy:   mov.CreatedBy,
		CreatedAt:   mov.CreatedAt.Format(time.RFC3339),
	}, nil
}
