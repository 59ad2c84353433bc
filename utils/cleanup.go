package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
)

// StartRefreshTokenCleaner launches a background goroutine that periodically
// prunes expired refresh token rows. Expired tokens are also rejected lazily
// on use, so this is best-effort housekeeping.
func StartRefreshTokenCleaner(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			if db == nil {
				continue
			}
			res := db.Where("expires_at <= ?", time.Now()).Delete(&models.RefreshToken{})
			if res.Error != nil {
				if Sugar != nil {
					Sugar.Warnf("refresh token cleaner failed: %v", res.Error)
				}
				continue
			}
			if res.RowsAffected > 0 && Sugar != nil {
				Sugar.Infof("pruned %d expired refresh tokens", res.RowsAffected)
			}
		}
	}()
}
