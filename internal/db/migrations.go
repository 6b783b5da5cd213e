package db

import (
	"fmt"

	"gorm.io/gorm"
)

// DDL for migration 20240213093059, frozen at that version so later changes
// to the dao models never rewrite history. Foreign keys live on the child
// tables and are declared inline because SQLite cannot add them later.

var sqliteDDL20240213 = []string{
	`CREATE TABLE "Users" (
		"user_id" integer PRIMARY KEY AUTOINCREMENT,
		"email" text NOT NULL,
		"password" text NOT NULL,
		"username" text NOT NULL,
		"mobile_number" text NOT NULL,
		"user_role" text NOT NULL
	)`,
	`CREATE UNIQUE INDEX "UX_Users_Email" ON "Users" ("email")`,
	`CREATE TABLE "Resorts" (
		"resort_id" integer PRIMARY KEY AUTOINCREMENT,
		"resort_name" text NOT NULL,
		"resort_location" text NOT NULL,
		"description" text NOT NULL,
		"resort_image_url" text NOT NULL,
		"price" integer NOT NULL,
		"capacity" integer NOT NULL,
		"resort_available_status" text NOT NULL
	)`,
	`CREATE TABLE "Bookings" (
		"booking_id" integer PRIMARY KEY AUTOINCREMENT,
		"from_date" datetime NOT NULL,
		"to_date" datetime NOT NULL,
		"address" text NOT NULL,
		"no_of_persons" integer NOT NULL,
		"total_price" real NOT NULL,
		"resort_id" integer NOT NULL,
		"user_id" integer NOT NULL,
		CONSTRAINT "fk_Bookings_resort" FOREIGN KEY ("resort_id") REFERENCES "Resorts" ("resort_id") ON DELETE CASCADE,
		CONSTRAINT "fk_Bookings_user" FOREIGN KEY ("user_id") REFERENCES "Users" ("user_id") ON DELETE CASCADE,
		CONSTRAINT "chk_Bookings_to_date" CHECK (to_date >= from_date)
	)`,
	`CREATE INDEX "IX_Bookings_ResortId" ON "Bookings" ("resort_id")`,
	`CREATE INDEX "IX_Bookings_UserId" ON "Bookings" ("user_id")`,
	`CREATE TABLE "Reviews" (
		"review_id" integer PRIMARY KEY AUTOINCREMENT,
		"subject" text NOT NULL,
		"body" text NOT NULL,
		"rating" integer NOT NULL,
		"date_created" datetime NOT NULL,
		"user_id" integer NOT NULL,
		CONSTRAINT "fk_Reviews_user" FOREIGN KEY ("user_id") REFERENCES "Users" ("user_id") ON DELETE CASCADE,
		CONSTRAINT "chk_Reviews_rating" CHECK (rating >= 1 AND rating <= 5)
	)`,
	`CREATE INDEX "IX_Reviews_UserId" ON "Reviews" ("user_id")`,
}

var postgresDDL20240213 = []string{
	`CREATE TABLE "Users" (
		"user_id" bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"email" text NOT NULL,
		"password" text NOT NULL,
		"username" text NOT NULL,
		"mobile_number" text NOT NULL,
		"user_role" text NOT NULL
	)`,
	`CREATE UNIQUE INDEX "UX_Users_Email" ON "Users" ("email")`,
	`CREATE TABLE "Resorts" (
		"resort_id" bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"resort_name" text NOT NULL,
		"resort_location" text NOT NULL,
		"description" text NOT NULL,
		"resort_image_url" text NOT NULL,
		"price" bigint NOT NULL,
		"capacity" integer NOT NULL,
		"resort_available_status" text NOT NULL
	)`,
	`CREATE TABLE "Bookings" (
		"booking_id" bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"from_date" timestamptz NOT NULL,
		"to_date" timestamptz NOT NULL,
		"address" text NOT NULL,
		"no_of_persons" integer NOT NULL,
		"total_price" double precision NOT NULL,
		"resort_id" bigint NOT NULL,
		"user_id" bigint NOT NULL,
		CONSTRAINT "fk_Bookings_resort" FOREIGN KEY ("resort_id") REFERENCES "Resorts" ("resort_id") ON DELETE CASCADE,
		CONSTRAINT "fk_Bookings_user" FOREIGN KEY ("user_id") REFERENCES "Users" ("user_id") ON DELETE CASCADE,
		CONSTRAINT "chk_Bookings_to_date" CHECK (to_date >= from_date)
	)`,
	`CREATE INDEX "IX_Bookings_ResortId" ON "Bookings" ("resort_id")`,
	`CREATE INDEX "IX_Bookings_UserId" ON "Bookings" ("user_id")`,
	`CREATE TABLE "Reviews" (
		"review_id" bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"subject" text NOT NULL,
		"body" text NOT NULL,
		"rating" integer NOT NULL,
		"date_created" timestamptz NOT NULL,
		"user_id" bigint NOT NULL,
		CONSTRAINT "fk_Reviews_user" FOREIGN KEY ("user_id") REFERENCES "Users" ("user_id") ON DELETE CASCADE,
		CONSTRAINT "chk_Reviews_rating" CHECK (rating >= 1 AND rating <= 5)
	)`,
	`CREATE INDEX "IX_Reviews_UserId" ON "Reviews" ("user_id")`,
}

// Migrations returns every migration in apply order.
func Migrations() []Migration {
	return []Migration{
		{
			ID:   "20240213093059",
			Name: "third_migration",
			Up: func(tx *gorm.DB) error {
				var ddl []string
				switch name := tx.Dialector.Name(); name {
				case "sqlite":
					ddl = sqliteDDL20240213
				case "postgres":
					ddl = postgresDDL20240213
				default:
					return fmt.Errorf("unsupported dialect %q", name)
				}

				for _, stmt := range ddl {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}

				return nil
			},
			Down: func(tx *gorm.DB) error {
				for _, table := range []string{"Reviews", "Bookings", "Resorts", "Users"} {
					if err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)).Error; err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
