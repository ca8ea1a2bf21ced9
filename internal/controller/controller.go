// Package controller runs the validate, fetch and render cycle for one
// submission against an injected display surface and input source.
package controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Zachdehooge/state-alerts/internal/fetcher"
	"github.com/Zachdehooge/state-alerts/internal/generator"
	"github.com/Zachdehooge/state-alerts/internal/observability"
	"github.com/Zachdehooge/state-alerts/internal/region"
)

// Surface is where results, errors and the loading indicator are shown.
type Surface interface {
	ShowError(msg string)
	ClearError()
	// SetLoading toggles the loading indicator and disables the action
	// control while it is on.
	SetLoading(on bool)
	// Clear empties the alerts region.
	Clear()
	// Show replaces the alerts region with view.
	Show(view generator.View)
}

// Input is the text field a submission reads from.
type Input interface {
	Value() string
	Reset()
}

// Fetcher retrieves alerts for a validated code.
type Fetcher interface {
	FetchAlerts(ctx context.Context, code region.Code) (fetcher.AlertResponse, error)
}

// Controller wires the validator, fetcher and renderer to a surface.
type Controller struct {
	fetcher Fetcher
	surface Surface
	input   Input
	metrics *observability.Metrics
	logger  logrus.FieldLogger
}

// New creates a controller. metrics may be nil.
func New(f Fetcher, surface Surface, input Input, metrics *observability.Metrics, logger logrus.FieldLogger) *Controller {
	return &Controller{
		fetcher: f,
		surface: surface,
		input:   input,
		metrics: metrics,
		logger:  logger,
	}
}

// Submit runs one cycle on the current input value. Whatever happens is
// already shown on the surface; the error is returned for callers that need
// an exit status. Overlapping calls are not serialized and the last one to
// finish owns the display.
func (c *Controller) Submit(ctx context.Context) error {
	log := c.logger.WithField("submission", uuid.NewString())

	code, err := region.Validate(c.input.Value())
	if err != nil {
		log.WithField("error", err).Debug("input rejected")
		c.surface.ShowError(err.Error())
		c.metrics.ObserveSubmission(observability.ResultInvalid)
		return err
	}
	log = log.WithField("area", code)

	c.surface.ClearError()
	c.surface.Clear()
	c.surface.SetLoading(true)
	defer c.surface.SetLoading(false)

	data, err := c.fetcher.FetchAlerts(ctx, code)
	if err != nil {
		log.WithField("error", err).Debug("submission failed")
		c.surface.ShowError(err.Error())
		c.metrics.ObserveSubmission(observability.ResultFailed)
		return err
	}

	c.surface.Show(generator.Render(data))
	c.input.Reset()
	c.metrics.ObserveSubmission(observability.ResultSucceeded)
	log.WithField("count", len(data.Features)).Debug("alerts rendered")
	return nil
}
