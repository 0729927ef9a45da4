package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// scopedDB runs store calls in a transaction carrying the caller credential.
// With row-level security on, the credential becomes the JWT claims and role
// that the store's policies read; otherwise calls run as-is.
type scopedDB struct {
	db               *gorm.DB
	rowLevelSecurity bool
}

func (s scopedDB) run(ctx context.Context, cred Credential, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.rowLevelSecurity {
			if err := applyCredential(tx, cred); err != nil {
				return err
			}
		}
		return fn(tx)
	})
}

func applyCredential(tx *gorm.DB, cred Credential) error {
	claims, err := json.Marshal(cred.claims())
	if err != nil {
		return fmt.Errorf("failed to encode credential claims: %w", err)
	}
	if err := tx.Exec("SELECT set_config('request.jwt.claims', ?, true)", string(claims)).Error; err != nil {
		return fmt.Errorf("failed to set request claims: %w", err)
	}
	// dbRole only yields fixed role names, so it is safe to inline.
	if err := tx.Exec("SET LOCAL ROLE " + cred.dbRole()).Error; err != nil {
		return fmt.Errorf("failed to assume role %s: %w", cred.dbRole(), err)
	}
	return nil
}
