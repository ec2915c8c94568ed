// Package postgresql owns the bun database handle and the cross-cutting
// helpers every repository needs: claims checking, request struct validation,
// soft deletes and audit journaling.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type Config struct {
	Username   string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

type Database struct {
	*bun.DB

	validate *validator.Validate
}

// New opens the postgres connection and wraps it with bun.
func New(cfg Config) *Database {
	dsn := "postgres://" + cfg.Username + ":" + cfg.Password + "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.Name
	if cfg.DisableTLS {
		dsn += "?sslmode=disable"
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db, validate: validator.New()}
}

// CheckClaims returns the authenticated claims from ctx, optionally requiring
// one of the given roles.
func (d *Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, web.NewRequestError(err, http.StatusUnauthorized)
	}

	if !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields are set and then runs the
// validate tags of the struct.
func (d *Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return web.NewRequestError(errors.New("validate: not a struct"), http.StatusInternalServerError)
	}

	for _, fields := range requiredFields {
		for _, name := range strings.Split(fields, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			field := v.FieldByName(name)
			if !field.IsValid() {
				return web.NewRequestError(errors.Errorf("validate: unknown field %q", name), http.StatusInternalServerError)
			}
			if field.IsZero() {
				return web.NewRequestError(errors.Errorf("field %s is required", name), http.StatusBadRequest)
			}
		}
	}

	if err := d.validate.Struct(s); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	return nil
}

// DeleteRow soft deletes one row recording who deleted it.
func (d *Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).Where("deleted_at IS NULL AND id = ?", id)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting %s", table), http.StatusBadRequest)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting %s", table), http.StatusBadRequest)
	}
	if rows == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}

// AppendJournal records an audit entry without blocking the caller. A failed
// write is logged and dropped; the primary operation must never fail on it.
func (d *Database) AppendJournal(ctx context.Context, actorID *int, action string, details interface{}, status string) {
	payload, err := json.Marshal(details)
	if err != nil {
		web.Logger().WithFields(logrus.Fields{"action": action}).Warn("journal: marshaling details: " + err.Error())
		payload = nil
	}

	entry := entity.Journal{
		UserID:    actorID,
		Action:    action,
		Details:   payload,
		Status:    status,
		CreatedAt: time.Now(),
	}

	// Detach from the request so a canceled request does not lose the entry.
	background := context.WithoutCancel(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(background, 5*time.Second)
		defer cancel()

		if _, err := d.NewInsert().Model(&entry).Exec(writeCtx); err != nil {
			web.Logger().WithFields(logrus.Fields{
				"action": action,
				"status": status,
			}).Warn("journal: appending entry: " + err.Error())
		}
	}()
}
