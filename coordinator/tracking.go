package coordinator

import (
	"context"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/errors"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
	"go.uber.org/zap"
)

const (
	msgFetchTrackingFailed  = "failed to load tracking data"
	msgCreateRecordFailed   = "failed to create tracking record"
	msgChangeRecordFailed   = "failed to change tracking record"
	msgDeleteRecordFailed   = "failed to delete tracking record"
	msgDeleteTrackingFailed = "failed to delete tracking records"
)

type TrackingGateway interface {
	GetSymptomTrackingRecords(ctx context.Context, userId int, date string) (client.SymptomTrackingGrid, error)
	GetMedTrackingRecords(ctx context.Context, userId int, date string) (client.MedTrackingGrid, error)
	CreateSymptomTrackingRecord(ctx context.Context, userId int, data client.SymptomTrackingData) (*client.SymptomTrackingRecord, error)
	UpdateSeverityLevel(ctx context.Context, userId, symtrackId int, data client.SeverityData) (*client.SymptomTrackingRecord, error)
	DeleteSymptomTrackingRecord(ctx context.Context, userId, symtrackId int) (*client.Deleted, error)
	DeleteSymptomTrackingDate(ctx context.Context, userId int, date string) (*client.Deleted, error)
	CreateMedTrackingRecord(ctx context.Context, userId int, data client.MedTrackingData) (*client.MedTrackingRecord, error)
	UpdateNumber(ctx context.Context, userId, medtrackId int, data client.NumberData) (*client.MedTrackingRecord, error)
	DeleteMedTrackingRecord(ctx context.Context, userId, medtrackId int) (*client.Deleted, error)
	DeleteMedTrackingDate(ctx context.Context, userId int, date string) (*client.Deleted, error)
}

var _ TrackingGateway = &client.Client{}

type Tracking struct {
	store   *store.Store
	slice   *tracking.Slice
	gateway TrackingGateway
	logger  *zap.SugaredLogger
}

func NewTrackingCoordinator(st *store.Store, slice *tracking.Slice, gateway TrackingGateway, logger *zap.SugaredLogger) *Tracking {
	return &Tracking{
		store:   st,
		slice:   slice,
		gateway: gateway,
		logger:  logger,
	}
}

// FetchDaysTracking loads one day of symptom and medication records into
// the named day-view. The two reads are sequential; a failure in either
// fails the whole fetch and replaces nothing.
func (c *Tracking) FetchDaysTracking(ctx context.Context, userId int, date string, view tracking.View) error {
	c.store.Update(c.slice.FetchDaysTrackingRequest)
	symptomGrid, err := c.gateway.GetSymptomTrackingRecords(ctx, userId, date)
	if err != nil {
		return c.failFetch(userId, date, err)
	}
	medGrid, err := c.gateway.GetMedTrackingRecords(ctx, userId, date)
	if err != nil {
		return c.failFetch(userId, date, err)
	}
	c.store.Update(func() {
		c.slice.FetchDaysTrackingSuccess(tracking.FetchPayload{
			View:        view,
			Symptoms:    symptomGridFromGateway(symptomGrid),
			Medications: medGridFromGateway(medGrid),
		})
	})
	return nil
}

func (c *Tracking) failFetch(userId int, date string, err error) error {
	message := errors.Message(err, msgFetchTrackingFailed)
	c.logger.Warnw("tracking fetch failed", "userId", userId, "date", date, "error", message)
	c.store.Update(func() { c.slice.FetchDaysTrackingFailure(message) })
	return err
}

func (c *Tracking) CreateSymptomTrackingRecord(ctx context.Context, userId int, data client.SymptomTrackingData, forStore tracking.SymptomRecordPayload) error {
	c.store.Update(func() { c.slice.CreateSymptomTrackingRecordRequest(forStore) })
	if _, err := c.gateway.CreateSymptomTrackingRecord(ctx, userId, data); err != nil {
		message := errors.Message(err, msgCreateRecordFailed)
		c.store.Update(func() { c.slice.CreateSymptomTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.CreateSymptomTrackingRecordSuccess)
	return nil
}

func (c *Tracking) EditSymptomTrackingRecord(ctx context.Context, userId, symtrackId int, data client.SeverityData, forStore tracking.SymptomRecordPayload) error {
	c.store.Update(func() { c.slice.EditSymptomTrackingRecordRequest(forStore) })
	if _, err := c.gateway.UpdateSeverityLevel(ctx, userId, symtrackId, data); err != nil {
		message := errors.Message(err, msgChangeRecordFailed)
		c.store.Update(func() { c.slice.EditSymptomTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.EditSymptomTrackingRecordSuccess)
	return nil
}

func (c *Tracking) DeleteSymptomTrackingRecord(ctx context.Context, userId, symtrackId int, forStore tracking.SymptomRecordRef) error {
	c.store.Update(func() { c.slice.DeleteSymptomTrackingRecordRequest(forStore) })
	if _, err := c.gateway.DeleteSymptomTrackingRecord(ctx, userId, symtrackId); err != nil {
		message := errors.Message(err, msgDeleteRecordFailed)
		c.store.Update(func() { c.slice.DeleteSymptomTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.DeleteSymptomTrackingRecordSuccess)
	return nil
}

func (c *Tracking) CreateMedTrackingRecord(ctx context.Context, userId int, data client.MedTrackingData, forStore tracking.MedRecordPayload) error {
	c.store.Update(func() { c.slice.CreateMedTrackingRecordRequest(forStore) })
	if _, err := c.gateway.CreateMedTrackingRecord(ctx, userId, data); err != nil {
		message := errors.Message(err, msgCreateRecordFailed)
		c.store.Update(func() { c.slice.CreateMedTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.CreateMedTrackingRecordSuccess)
	return nil
}

func (c *Tracking) EditMedTrackingRecord(ctx context.Context, userId, medtrackId int, data client.NumberData, forStore tracking.MedRecordPayload) error {
	c.store.Update(func() { c.slice.EditMedTrackingRecordRequest(forStore) })
	if _, err := c.gateway.UpdateNumber(ctx, userId, medtrackId, data); err != nil {
		message := errors.Message(err, msgChangeRecordFailed)
		c.store.Update(func() { c.slice.EditMedTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.EditMedTrackingRecordSuccess)
	return nil
}

func (c *Tracking) DeleteMedTrackingRecord(ctx context.Context, userId, medtrackId int, forStore tracking.MedRecordRef) error {
	c.store.Update(func() { c.slice.DeleteMedTrackingRecordRequest(forStore) })
	if _, err := c.gateway.DeleteMedTrackingRecord(ctx, userId, medtrackId); err != nil {
		message := errors.Message(err, msgDeleteRecordFailed)
		c.store.Update(func() { c.slice.DeleteMedTrackingRecordFailure(forStore.View, message) })
		return err
	}
	c.store.Update(c.slice.DeleteMedTrackingRecordSuccess)
	return nil
}

// DeleteTrackingDate removes a whole day of records on the backend and
// refetches the affected view rather than editing it speculatively.
func (c *Tracking) DeleteTrackingDate(ctx context.Context, userId int, date string, view tracking.View) error {
	if _, err := c.gateway.DeleteSymptomTrackingDate(ctx, userId, date); err != nil {
		message := errors.Message(err, msgDeleteTrackingFailed)
		c.store.Update(func() { c.slice.FetchDaysTrackingFailure(message) })
		return err
	}
	if _, err := c.gateway.DeleteMedTrackingDate(ctx, userId, date); err != nil {
		message := errors.Message(err, msgDeleteTrackingFailed)
		c.store.Update(func() { c.slice.FetchDaysTrackingFailure(message) })
		return err
	}
	return c.FetchDaysTracking(ctx, userId, date, view)
}
