package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/config"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Employee{},
		&models.SalonService{},
		&models.SalonClient{},
		&models.Appointment{},
		&models.SalonImage{},
		&models.DeviceToken{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	ensureExclusionConstraint(db)

	return db
}

// Constraint de exclusão no banco como última barreira contra reserva
// dupla: a checagem em memória roda dentro de transação com lock, mas
// a constraint cobre qualquer caminho de escrita que fuja dela.
// DEFERRABLE porque a cascata desloca linhas uma a uma e o invariante
// só precisa valer no commit.
func ensureExclusionConstraint(db *gorm.DB) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Printf("btree_gist unavailable, skipping exclusion constraint: %v", err)
		return
	}

	err := db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    salon_id WITH =,
                    COALESCE(employee_id, 0) WITH =,
                    date WITH =,
                    int4range(
                        start_hour * 60 + start_minute,
                        start_hour * 60 + start_minute + duration_hours * 60 + duration_minutes
                    ) WITH &&
                )
                WHERE (status = 'pending')
                DEFERRABLE INITIALLY DEFERRED;
            END IF;
        END
        $$
    `).Error
	if err != nil {
		log.Printf("failed to ensure exclusion constraint: %v", err)
	}
}
