package main

import (
	"context"
	"fmt"
	"time"

	"vendorly/internal/domain/reviews"
)

const notifyTimeout = 30 * time.Second

// background runs fn outside the request. run waits for these on shutdown.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", fmt.Sprint(err))
			}
		}()

		fn()
	}()
}

func (app *application) notifyModerated(rv *reviews.Review) {
	if app.notifier == nil {
		return
	}

	review := *rv
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := app.notifier.SendReviewNotification(ctx, &review); err != nil {
			app.logger.Warnw("error sending review notification", "review_id", review.ID, "error", err)
		}
	})
}
