package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electorate/contexts/identity-access/access-control-service/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// AutoMigrate creates the administrator table. Called from bootstrap only.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&administratorModel{})
}

// SeedAdministrators inserts configuration-sourced grants if absent.
func (r *Repository) SeedAdministrators(ctx context.Context, addresses []string) error {
	now := time.Now().UTC()
	for _, address := range addresses {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		row := administratorModel{
			Address:   address,
			GrantedBy: address,
			GrantedAt: now,
		}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error
		if err != nil {
			return r.logError("access_repo_seed_failed", err, "address", address)
		}
	}
	return nil
}

func (r *Repository) GetAdministrator(ctx context.Context, address string) (entities.Administrator, bool, error) {
	var row administratorModel
	err := r.db.WithContext(ctx).
		Where("address = ?", strings.TrimSpace(address)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Administrator{}, false, nil
	}
	if err != nil {
		return entities.Administrator{}, false, r.logError("access_repo_get_failed", err, "address", address)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveAdministrator(ctx context.Context, admin entities.Administrator) error {
	row := administratorModelFromEntity(admin)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"granted_by": row.GrantedBy,
			"granted_at": row.GrantedAt,
			"revoked":    row.Revoked,
			"revoked_by": row.RevokedBy,
			"revoked_at": row.RevokedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("access_repo_save_failed", err, "address", admin.Address)
	}
	return nil
}

func (r *Repository) ListAdministrators(ctx context.Context) ([]entities.Administrator, error) {
	var rows []administratorModel
	err := r.db.WithContext(ctx).Order("address asc").Find(&rows).Error
	if err != nil {
		return nil, r.logError("access_repo_list_failed", err)
	}
	items := make([]entities.Administrator, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/access-control-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("access repository operation failed", fields...)
	return err
}

type administratorModel struct {
	Address   string `gorm:"column:address;primaryKey"`
	GrantedBy string `gorm:"column:granted_by;not null"`
	GrantedAt time.Time
	Revoked   bool   `gorm:"column:revoked;not null"`
	RevokedBy string `gorm:"column:revoked_by"`
	RevokedAt *time.Time
}

func (administratorModel) TableName() string { return "administrators" }

func administratorModelFromEntity(admin entities.Administrator) administratorModel {
	return administratorModel{
		Address:   strings.TrimSpace(admin.Address),
		GrantedBy: admin.GrantedBy,
		GrantedAt: admin.GrantedAt,
		Revoked:   admin.Revoked,
		RevokedBy: admin.RevokedBy,
		RevokedAt: admin.RevokedAt,
	}
}

func (m administratorModel) toEntity() entities.Administrator {
	return entities.Administrator{
		Address:   m.Address,
		GrantedBy: m.GrantedBy,
		GrantedAt: m.GrantedAt,
		Revoked:   m.Revoked,
		RevokedBy: m.RevokedBy,
		RevokedAt: m.RevokedAt,
	}
}

// SystemClock satisfies the Clock port with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
