package repositories

import (
	"context"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
)

// SubmissionRepository define a interface para persistência de submissões
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entities.GameSubmission) error
	FindByID(ctx context.Context, id string) (*entities.GameSubmission, error)
	// Save persiste a submissão com check otimista de concorrência:
	// o UPDATE só é aplicado se o status persistido ainda for
	// expectedPriorStatus. Corrida perdida retorna errors.ErrConflict;
	// o chamador deve recarregar e tentar de novo. Notas novas são
	// inseridas na mesma transação que a mudança de status.
	Save(ctx context.Context, submission *entities.GameSubmission, expectedPriorStatus entities.Status) error
	List(ctx context.Context, filters SubmissionFilters) ([]*entities.GameSubmission, error)
}

// SubmissionFilters contém filtros para listagem de submissões
type SubmissionFilters struct {
	DeveloperID *string
	Status      *entities.Status
	Page        int // Página (começa em 1)
	PageSize    int // Itens por página (default: 20, max: 100)
}
