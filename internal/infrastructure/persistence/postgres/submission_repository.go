package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
)

// SubmissionRepository implementa repositories.SubmissionRepository
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository cria um novo SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *entities.GameSubmission) error {
	model, err := r.toModel(submission)
	if err != nil {
		return err
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return normalizeError(err)
	}
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*entities.GameSubmission, error) {
	var model SubmissionModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, normalizeError(err)
	}

	var noteModels []*ReviewNoteModel
	if err := db.WithContext(ctx).
		Where("submission_id = ?", id).
		Order("created_at ASC").
		Find(&noteModels).Error; err != nil {
		return nil, normalizeError(err)
	}

	return r.toEntity(&model, noteModels)
}

// Save aplica o check otimista de concorrência: o UPDATE é condicionado
// ao status persistido ainda ser expectedPriorStatus. Zero linhas
// afetadas significa corrida perdida (ErrConflict); o chamador deve
// recarregar. Notas novas são inseridas junto, ignorando ids já
// persistidos, para que status e nota nunca fiquem separados.
func (r *SubmissionRepository) Save(ctx context.Context, submission *entities.GameSubmission, expectedPriorStatus entities.Status) error {
	model, err := r.toModel(submission)
	if err != nil {
		return err
	}

	db := r.getDB(ctx)
	result := db.WithContext(ctx).
		Model(&SubmissionModel{}).
		Where("id = ? AND status = ?", submission.ID, string(expectedPriorStatus)).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"description":    model.Description,
			"tags":           model.Tags,
			"category_id":    model.CategoryID,
			"package_path":   model.PackagePath,
			"thumbnail_path": model.ThumbnailPath,
			"status":         model.Status,
			"version":        model.Version,
			"submitted_at":   model.SubmittedAt,
			"updated_at":     time.Now().UTC().Unix(),
		})
	if result.Error != nil {
		return normalizeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConflict
	}

	noteModels := r.toNoteModels(submission)
	if len(noteModels) > 0 {
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&noteModels).Error; err != nil {
			return normalizeError(err)
		}
	}

	return nil
}

func (r *SubmissionRepository) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*entities.GameSubmission, error) {
	var models []*SubmissionModel

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Model(&SubmissionModel{})

	if filters.DeveloperID != nil {
		query = query.Where("developer_id = ?", *filters.DeveloperID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	query = query.Order("created_at DESC").Limit(pageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, normalizeError(err)
	}

	submissions := make([]*entities.GameSubmission, 0, len(models))
	for _, model := range models {
		// Listagens não carregam a trilha de notas
		entity, err := r.toEntity(model, nil)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, entity)
	}

	return submissions, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// normalizeError traduz falhas transitórias de infraestrutura para
// error.unavailable; o chamador pode tentar de novo a partir de um novo load
func normalizeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.ErrUnavailable
	}
	return err
}

// Conversores
func (r *SubmissionRepository) toModel(submission *entities.GameSubmission) (*SubmissionModel, error) {
	tags, err := json.Marshal(submission.Tags)
	if err != nil {
		return nil, err
	}

	var submittedAt *int64
	if submission.SubmittedAt != nil {
		ts := submission.SubmittedAt.Unix()
		submittedAt = &ts
	}

	return &SubmissionModel{
		ID:            submission.ID,
		DeveloperID:   submission.DeveloperID,
		Title:         submission.Title,
		Description:   submission.Description,
		Tags:          string(tags),
		CategoryID:    submission.CategoryID,
		PackagePath:   submission.PackagePath,
		ThumbnailPath: submission.ThumbnailPath,
		Status:        string(submission.Status),
		Version:       submission.Version,
		SubmittedAt:   submittedAt,
		CreatedAt:     submission.CreatedAt.Unix(),
		UpdatedAt:     submission.UpdatedAt.Unix(),
	}, nil
}

func (r *SubmissionRepository) toNoteModels(submission *entities.GameSubmission) []*ReviewNoteModel {
	models := make([]*ReviewNoteModel, 0, len(submission.Notes))
	for _, note := range submission.Notes {
		models = append(models, &ReviewNoteModel{
			ID:           note.ID,
			SubmissionID: submission.ID,
			AuthorID:     note.AuthorID,
			Content:      note.Content,
			Severity:     string(note.Severity),
			Resolved:     note.Resolved,
			CreatedAt:    note.CreatedAt.Unix(),
		})
	}
	return models
}

func (r *SubmissionRepository) toEntity(model *SubmissionModel, noteModels []*ReviewNoteModel) (*entities.GameSubmission, error) {
	var tags []string
	if model.Tags != "" {
		if err := json.Unmarshal([]byte(model.Tags), &tags); err != nil {
			return nil, err
		}
	}

	var submittedAt *time.Time
	if model.SubmittedAt != nil {
		ts := time.Unix(*model.SubmittedAt, 0)
		submittedAt = &ts
	}

	notes := make([]entities.ReviewNote, 0, len(noteModels))
	for _, noteModel := range noteModels {
		notes = append(notes, entities.ReviewNote{
			ID:        noteModel.ID,
			AuthorID:  noteModel.AuthorID,
			Content:   noteModel.Content,
			Severity:  entities.Severity(noteModel.Severity),
			Resolved:  noteModel.Resolved,
			CreatedAt: time.Unix(noteModel.CreatedAt, 0),
		})
	}

	return &entities.GameSubmission{
		ID:            model.ID,
		DeveloperID:   model.DeveloperID,
		Title:         model.Title,
		Description:   model.Description,
		Tags:          tags,
		CategoryID:    model.CategoryID,
		PackagePath:   model.PackagePath,
		ThumbnailPath: model.ThumbnailPath,
		Status:        entities.Status(model.Status),
		Version:       model.Version,
		SubmittedAt:   submittedAt,
		CreatedAt:     time.Unix(model.CreatedAt, 0),
		UpdatedAt:     time.Unix(model.UpdatedAt, 0),
		Notes:         notes,
	}, nil
}
