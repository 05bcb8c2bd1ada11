package db

import (
	"fmt"
	"log"

	"github.com/adflow-io/adflow-go/internal/config"
	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/audit"
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func createEnums() {
	enums := []string{
		`DO $$ BEGIN CREATE TYPE profile_role AS ENUM ('client', 'operator', 'admin'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE account_status AS ENUM ('active', 'inactive'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE request_type AS ENUM ('budget_change', 'keyword_add_delete', 'ad_material_edit', 'targeting_change', 'report_request', 'account_setting', 'other'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE ad_platform AS ENUM ('naver', 'kakao', 'google', 'other'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE request_priority AS ENUM ('normal', 'urgent', 'critical'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE request_status AS ENUM ('pending', 'in_progress', 'completed', 'on_hold'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}

	for _, enum := range enums {
		if err := DB.Exec(enum).Error; err != nil {
			log.Printf("Failed to create enum: %s, error: %v", enum, err)
		}
	}
}

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	createEnums()

	if err := DB.AutoMigrate(
		&profile.Profile{},
		&client.Client{},
		&request.Request{},
		&comment.Comment{},
		&attachment.Attachment{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

// InitWithGormDB swaps the global handle; used by tests.
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
