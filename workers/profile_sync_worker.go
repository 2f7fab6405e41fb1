// workers/profile_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"wellness-game-system/models"
	"wellness-game-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileUser matches the JSON the profile service returns for changed users.
type ProfileUser struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetUserChangesResponse is the top-level structure of the profile service response.
type GetUserChangesResponse struct {
	Users []ProfileUser `json:"users"`
}

// WalletSeedWorker polls the profile service for new or changed users and
// makes sure each of them has a wallet row, so purchases and claims always
// find per-user economy state to act on. Existing wallets are never touched —
// balances are owned by this service, not by the profile mirror.
type WalletSeedWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client
}

func NewWalletSeedWorker(db *gorm.DB, profileServiceBaseURL, endpointPath, serviceToken string) *WalletSeedWorker {
	return &WalletSeedWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      profileServiceBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

func (w *WalletSeedWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Wallet Seed Worker (profile service → user_wallets)…")
	go w.run(ctx)
}

func (w *WalletSeedWorker) run(ctx context.Context) {
	// Initial sync — backfill wallets for every user the profile service knows
	lastSyncTime := time.Unix(0, 0)
	if err := w.syncBatch(ctx, lastSyncTime); err != nil {
		log.Printf("⚠️ Initial wallet seed failed: %v", err)
	} else {
		lastSyncTime = time.Now().UTC()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			batchStart := time.Now().UTC()
			if err := w.syncBatch(ctx, lastSyncTime); err != nil {
				// Keep the watermark — retry the same window next tick
				log.Printf("❌ Wallet seed batch failed: %v", err)
				continue
			}
			lastSyncTime = batchStart
		case <-ctx.Done():
			log.Println("⏹️ Wallet Seed Worker stopped")
			return
		}
	}
}

// syncBatch fetches user changes from the profile service and creates missing
// wallet rows.
func (w *WalletSeedWorker) syncBatch(ctx context.Context, since time.Time) error {
	sinceStr := since.UTC().Format(time.RFC3339)

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid profile service URL '%s': %w", w.baseURL, err)
	}
	endpointURL := base.JoinPath(w.endpointPath)
	q := endpointURL.Query()
	q.Set("since", sinceStr)
	endpointURL.RawQuery = q.Encode()
	finalURL := endpointURL.String()

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request to profile service failed: %w", err)
	}
	defer func() {
		// Always drain & close to prevent connection leaks
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("profile service non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response GetUserChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode profile service response: %w", err)
	}

	if len(response.Users) == 0 {
		return nil
	}

	var seeded, errorCount int
	for _, remoteUser := range response.Users {
		if remoteUser.ExternalID == "" {
			continue
		}
		wallet := models.UserWallet{
			ID:             uuid.NewString(),
			ExternalUserID: remoteUser.ExternalID,
			Coins:          0,
			Level:          1,
		}
		// DoNothing on conflict: never overwrite a live balance
		if err := w.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_user_id"}},
			DoNothing: true,
		}).Create(&wallet).Error; err != nil {
			errorCount++
			log.Printf("[SEED] ⚠️ Failed to seed wallet (external_id=%q): %v", remoteUser.ExternalID, err)
		} else {
			seeded++
		}
	}

	log.Printf("[SEED] ✅ Processed %d user(s) since %s (%d seeded, %d errors)",
		len(response.Users), sinceStr, seeded, errorCount)
	return nil
}
