package commands

import (
	"fmt"
	"log"

	"pointage/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'SUPERVISOR', 'ADMIN');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            employee_id text not null,
            card_id text,
            password text not null,
            role user_role,
            first_name text,
            last_name text,
            email text,
            phone text,
            kind text default 'employee',
            status text default 'active',
            reactivation_date date,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "One owner per badge.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS users_card_id_key
            ON users (card_id) WHERE deleted_at IS NULL AND card_id IS NOT NULL;`,
	},
	{
		Index:       4,
		Description: "Create user with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO users(employee_id, role, password)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       5,
		Description: "Create user with employee_id: Vigile01, password: 1",
		Query: `
        INSERT INTO users(employee_id, role, password)
        SELECT 'Vigile01', 'SUPERVISOR', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE employee_id = 'Vigile01');
        `,
	},
	{
		Index:       6,
		Description: "Create table: department",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: cohort.",
		Query: `
        CREATE TABLE IF NOT EXISTS cohort (
            id serial primary key,
            name text not null,
            year int,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Alter table users: directory references",
		Query: `
        ALTER TABLE users
        ADD COLUMN IF NOT EXISTS department_id int references department(id),
        ADD COLUMN IF NOT EXISTS cohort_id int references cohort(id);`,
	},
	{
		Index:       9,
		Description: "Create table: leaves.",
		Query: `
        CREATE TABLE IF NOT EXISTS leaves (
            id serial PRIMARY KEY,
            user_id int NOT NULL REFERENCES users(id),
            start_date date NOT NULL,
            end_date date NOT NULL,
            type text NOT NULL,
            reason text,
            status text NOT NULL DEFAULT 'validated',
            validator_id int REFERENCES users(id),
            created_at timestamp DEFAULT NOW(),
            created_by int REFERENCES users(id),
            updated_at timestamp,
            updated_by int REFERENCES users(id),
            deleted_at timestamp,
            deleted_by int REFERENCES users(id),
            CHECK (end_date >= start_date)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: punches.",
		Query: `
        CREATE TABLE IF NOT EXISTS punches (
            id serial PRIMARY KEY,
            user_id int NOT NULL REFERENCES users(id),
            work_day date NOT NULL,
            candidate_first_in timestamp,
            candidate_last_out timestamp,
            candidate_late boolean DEFAULT false,
            confirmed_first_in timestamp,
            confirmed_last_out timestamp,
            confirmed_late boolean DEFAULT false,
            present boolean NOT NULL DEFAULT false,
            pending boolean NOT NULL DEFAULT false,
            rejected boolean NOT NULL DEFAULT false,
            validator_id int REFERENCES users(id),
            leave_id int REFERENCES leaves(id),
            created_at timestamp DEFAULT NOW(),
            created_by int REFERENCES users(id),
            updated_at timestamp,
            updated_by int REFERENCES users(id),
            deleted_at timestamp,
            deleted_by int REFERENCES users(id)
        );`,
	},
	{
		Index:       11,
		Description: "One punch row per user per day; concurrent scans race on this.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS punches_user_day_key
            ON punches (user_id, work_day);`,
	},
	{
		Index:       12,
		Description: "Create table: journals.",
		Query: `
        CREATE TABLE IF NOT EXISTS journals (
            id serial PRIMARY KEY,
            user_id int REFERENCES users(id),
            action text NOT NULL,
            details jsonb,
            status text NOT NULL DEFAULT 'success',
            created_at timestamp DEFAULT NOW()
        );`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
