package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string  `gorm:"type:varchar(100);not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Role         string  `gorm:"type:varchar(50);not null;index"`
	AvatarURL    *string `gorm:"type:varchar(500)"`
	CreatedAt    int64   `gorm:"autoCreateTime;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime"`
	DeletedAt    *int64  `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}

// SubmissionModel é o model GORM para submissões de jogos
type SubmissionModel struct {
	ID            string  `gorm:"type:uuid;primary_key"`
	DeveloperID   string  `gorm:"type:uuid;not null;index"`
	Title         string  `gorm:"type:varchar(255);not null"`
	Description   string  `gorm:"type:text"`
	Tags          string  `gorm:"type:text"` // JSON
	CategoryID    *string `gorm:"type:uuid;index"`
	PackagePath   string  `gorm:"type:varchar(500)"`
	ThumbnailPath *string `gorm:"type:varchar(500)"`
	Status        string  `gorm:"type:varchar(50);not null;index"`
	Version       int     `gorm:"not null;default:1"`
	SubmittedAt   *int64
	CreatedAt     int64 `gorm:"autoCreateTime;index"`
	UpdatedAt     int64 `gorm:"autoUpdateTime"`
}

func (SubmissionModel) TableName() string {
	return "game_submissions"
}

// ReviewNoteModel é o model GORM para notas de revisão.
// Linhas são imutáveis: apenas INSERT, nunca UPDATE ou DELETE.
type ReviewNoteModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	SubmissionID string `gorm:"type:uuid;not null;index"`
	AuthorID     string `gorm:"type:uuid;not null"`
	Content      string `gorm:"type:text;not null"`
	Severity     string `gorm:"type:varchar(20);not null"`
	Resolved     bool   `gorm:"not null;default:false"`
	CreatedAt    int64  `gorm:"autoCreateTime;index"`
}

func (ReviewNoteModel) TableName() string {
	return "review_notes"
}
