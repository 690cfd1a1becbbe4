package jobs

import (
	"context"
	"time"

	"expertdesk-backend/internal/logger"
)

// ExpirePendingBookings cancels pending bookings whose payment window has
// closed. The WHERE clause re-checks both status and expires_at, so a booking
// approved concurrently is left alone and re-running the sweep is harmless.
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'cancelled',
			    cancel_reason = 'payment window expired',
			    expires_at = NULL,
			    updated_at = NOW()
			WHERE status = 'pending'
			  AND expires_at IS NOT NULL
			  AND expires_at < $1
			RETURNING id, expert_id, user_id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, expertID, userID int64
			if err := rows.Scan(&id, &expertID, &userID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			logger.Debug("Expired pending booking", "booking_id", id, "expert_id", expertID, "user_id", userID)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		logger.Info("Expired pending bookings", "count", count)
	})
}

// CompleteElapsedBookings promotes confirmed bookings whose session end has
// passed. Completion is what makes a booking an earning ledger input.
func (jr *JobRunner) CompleteElapsedBookings() {
	jr.runWithRecovery("CompleteElapsedBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'completed',
			    updated_at = NOW()
			WHERE status = 'confirmed'
			  AND session_end <= $1
			RETURNING id, expert_id, amount
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to complete elapsed bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, expertID int64
			var amount string
			if err := rows.Scan(&id, &expertID, &amount); err != nil {
				logger.Error("Failed to scan completed booking", "error", err)
				continue
			}
			logger.Debug("Completed elapsed booking", "booking_id", id, "expert_id", expertID, "amount", amount)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating completed bookings", "error", err)
			return
		}

		logger.Info("Completed elapsed bookings", "count", count)
	})
}
