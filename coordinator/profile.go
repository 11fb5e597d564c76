// Package coordinator orchestrates the optimistic mutation protocol: every
// user-initiated mutation dispatches its request transition first, performs
// a single gateway call, then dispatches the matching success or failure
// transition. Symptom and medication connection changes touch both the
// profile and tracking slices, profile first, both before the call.
//
// A coordinator does not serialize overlapping calls against the same
// slice: the slice's single history slot makes concurrent mutations unsafe,
// and the caller is expected to gate on the slice's loading flag.
package coordinator

import (
	"context"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/errors"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
	"go.uber.org/zap"
)

const (
	msgFetchProfileFailed         = "failed to fetch profile data"
	msgUpdateProfileFailed        = "failed to update profile data"
	msgDeleteProfileFailed        = "failed to delete profile"
	msgConnectDiagnosisFailed     = "failed to add diagnosis"
	msgUpdateDiagnosisFailed      = "failed to edit user diagnosis"
	msgDisconnectDiagnosisFailed  = "failed to remove diagnosis"
	msgConnectSymptomFailed       = "failed to add symptom"
	msgChangeSymptomFailed        = "failed to edit symptom"
	msgDisconnectSymptomFailed    = "failed to delete symptom"
	msgConnectMedicationFailed    = "failed to add medication"
	msgChangeMedicationFailed     = "failed to edit medication"
	msgDisconnectMedicationFailed = "failed to delete medication"
)

// ProfileGateway is the slice of the remote gateway the profile coordinator
// depends on.
type ProfileGateway interface {
	GetUser(ctx context.Context, userId int) (*client.User, error)
	EditUser(ctx context.Context, userId int, data client.UserUpdate) (*client.User, error)
	DeleteUser(ctx context.Context, userId int) (*client.Deleted, error)
	ConnectUserDiagnosis(ctx context.Context, diagnosisId, userId int, data client.UserDiagnosisData) (*client.UserDiagnosis, error)
	UpdateUserDiagnosis(ctx context.Context, diagnosisId, userId int, data client.UserDiagnosisData) (*client.UserDiagnosis, error)
	DisconnectUserDiagnosis(ctx context.Context, diagnosisId, userId int) (*client.Disconnected, error)
	ConnectUserSymptom(ctx context.Context, symptomId, userId int, data client.UserSymptomData) (*client.UserSymptom, error)
	ChangeUserSymptom(ctx context.Context, symptomId, userId int, data client.UserSymptomData) (*client.UserSymptom, error)
	DisconnectUserSymptom(ctx context.Context, symptomId, userId int) (*client.Disconnected, error)
	ConnectUserMedication(ctx context.Context, medId, userId int, data client.UserMedicationData) (*client.UserMedication, error)
	ChangeUserMedication(ctx context.Context, medId, userId int, data client.UserMedicationData) (*client.UserMedication, error)
	DisconnectUserMedication(ctx context.Context, medId, userId int) (*client.Disconnected, error)
}

var _ ProfileGateway = &client.Client{}

type Profile struct {
	store    *store.Store
	profile  *profile.Slice
	tracking *tracking.Slice
	gateway  ProfileGateway
	logger   *zap.SugaredLogger
}

func NewProfileCoordinator(st *store.Store, profileSlice *profile.Slice, trackingSlice *tracking.Slice, gateway ProfileGateway, logger *zap.SugaredLogger) *Profile {
	return &Profile{
		store:    st,
		profile:  profileSlice,
		tracking: trackingSlice,
		gateway:  gateway,
		logger:   logger,
	}
}

func (c *Profile) FetchUserProfile(ctx context.Context, userId int) error {
	c.store.Update(c.profile.FetchProfileRequest)
	user, err := c.gateway.GetUser(ctx, userId)
	if err != nil {
		message := errors.Message(err, msgFetchProfileFailed)
		c.logger.Warnw("profile fetch failed", "userId", userId, "error", message)
		c.store.Update(func() { c.profile.FetchProfileFailure(message) })
		return err
	}
	c.store.Update(func() { c.profile.FetchProfileSuccess(userFromGateway(user)) })
	return nil
}

// EditUserProfile applies update speculatively; only email and name are
// rolled back on failure because nothing else can change through this call.
func (c *Profile) EditUserProfile(ctx context.Context, userId int, data client.UserUpdate, update map[string]interface{}) error {
	c.store.Update(func() { c.profile.UpdateProfileRequest(update) })
	if _, err := c.gateway.EditUser(ctx, userId, data); err != nil {
		message := errors.Message(err, msgUpdateProfileFailed)
		c.store.Update(func() { c.profile.UpdateProfileFailure(message) })
		return err
	}
	c.store.Update(c.profile.UpdateProfileSuccess)
	return nil
}

func (c *Profile) DeleteUserProfile(ctx context.Context, userId int) error {
	c.store.Update(c.profile.DeleteProfileRequest)
	if _, err := c.gateway.DeleteUser(ctx, userId); err != nil {
		message := errors.Message(err, msgDeleteProfileFailed)
		c.store.Update(func() { c.profile.DeleteProfileFailure(message) })
		return err
	}
	c.store.Update(c.profile.DeleteProfileSuccess)
	return nil
}

// ConnectDiagnosis links the user to a diagnosis; diagnosisId 0 creates a
// new one. The speculative entry has no id until the success transition
// merges the server-assigned one onto it.
func (c *Profile) ConnectDiagnosis(ctx context.Context, userId, diagnosisId int, data client.UserDiagnosisData, forStore profile.DiagnosisPayload) error {
	c.store.Update(func() { c.profile.ConnectDiagnosisRequest(forStore) })
	userDiagnosis, err := c.gateway.ConnectUserDiagnosis(ctx, diagnosisId, userId, data)
	if err != nil {
		message := errors.Message(err, msgConnectDiagnosisFailed)
		c.store.Update(func() { c.profile.ConnectDiagnosisFailure(message) })
		return err
	}
	c.store.Update(func() { c.profile.ConnectDiagnosisSuccess(userDiagnosis.DiagnosisId) })
	return nil
}

func (c *Profile) UpdateUserDiagnosis(ctx context.Context, userId, diagnosisId int, data client.UserDiagnosisData, forStore profile.DiagnosisPayload) error {
	c.store.Update(func() { c.profile.UpdateUserDiagnosisRequest(forStore) })
	if _, err := c.gateway.UpdateUserDiagnosis(ctx, diagnosisId, userId, data); err != nil {
		message := errors.Message(err, msgUpdateDiagnosisFailed)
		c.store.Update(func() { c.profile.UpdateUserDiagnosisFailure(message) })
		return err
	}
	c.store.Update(c.profile.UpdateUserDiagnosisSuccess)
	return nil
}

func (c *Profile) DisconnectFromDiagnosis(ctx context.Context, userId, diagnosisId int) error {
	c.store.Update(func() { c.profile.DisconnectFromDiagnosisRequest(diagnosisId) })
	if _, err := c.gateway.DisconnectUserDiagnosis(ctx, diagnosisId, userId); err != nil {
		message := errors.Message(err, msgDisconnectDiagnosisFailed)
		c.store.Update(func() { c.profile.DisconnectFromDiagnosisFailure(message) })
		return err
	}
	c.store.Update(c.profile.DisconnectFromDiagnosisSuccess)
	return nil
}

// Symptom and medication connection changes keep the profile and tracking
// slices in step: the tracking twin transition follows the profile one, and
// both precede the gateway call.

func (c *Profile) ConnectSymptom(ctx context.Context, userId, symptomId int, data client.UserSymptomData, symptom string) error {
	c.store.Update(func() {
		c.profile.ConnectSymptomRequest(symptom)
		c.tracking.ConnectSymptomRequestTracking(symptom)
	})
	if _, err := c.gateway.ConnectUserSymptom(ctx, symptomId, userId, data); err != nil {
		message := errors.Message(err, msgConnectSymptomFailed)
		c.store.Update(func() {
			c.profile.ConnectSymptomFailure(message)
			c.tracking.ConnectSymptomFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.ConnectSymptomSuccess()
		c.tracking.ConnectSymptomSuccessTracking()
	})
	return nil
}

func (c *Profile) ChangeSymptom(ctx context.Context, userId, symptomId int, data client.UserSymptomData, change profile.SymptomChange) error {
	c.store.Update(func() {
		c.profile.ChangeSymptomRequest(change)
		c.tracking.ChangeSymptomRequestTracking(tracking.SymptomChange{
			OldSymptom: change.OldSymptom,
			NewSymptom: change.NewSymptom,
		})
	})
	if _, err := c.gateway.ChangeUserSymptom(ctx, symptomId, userId, data); err != nil {
		message := errors.Message(err, msgChangeSymptomFailed)
		c.store.Update(func() {
			c.profile.ChangeSymptomFailure(message)
			c.tracking.ChangeSymptomFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.ChangeSymptomSuccess()
		c.tracking.ChangeSymptomSuccessTracking()
	})
	return nil
}

func (c *Profile) DisconnectSymptom(ctx context.Context, userId, symptomId int, symptom string) error {
	c.store.Update(func() {
		c.profile.DisconnectFromSymptomRequest(symptom)
		c.tracking.DisconnectFromSymptomRequestTracking(symptom)
	})
	if _, err := c.gateway.DisconnectUserSymptom(ctx, symptomId, userId); err != nil {
		message := errors.Message(err, msgDisconnectSymptomFailed)
		c.store.Update(func() {
			c.profile.DisconnectFromSymptomFailure(message)
			c.tracking.DisconnectFromSymptomFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.DisconnectFromSymptomSuccess()
		c.tracking.DisconnectFromSymptomSuccessTracking()
	})
	return nil
}

func (c *Profile) ConnectMed(ctx context.Context, userId, medId int, data client.UserMedicationData, med profile.Medication) error {
	c.store.Update(func() {
		c.profile.ConnectMedRequest(med)
		c.tracking.ConnectMedRequestTracking(tracking.MedConnection{
			Medication: med.Medication,
			TimeOfDay:  med.TimeOfDay,
		})
	})
	if _, err := c.gateway.ConnectUserMedication(ctx, medId, userId, data); err != nil {
		message := errors.Message(err, msgConnectMedicationFailed)
		c.store.Update(func() {
			c.profile.ConnectMedFailure(message)
			c.tracking.ConnectMedFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.ConnectMedSuccess()
		c.tracking.ConnectMedSuccessTracking()
	})
	return nil
}

func (c *Profile) ChangeMed(ctx context.Context, userId, medId int, data client.UserMedicationData, change profile.MedicationChange) error {
	c.store.Update(func() {
		c.profile.ChangeMedRequest(change)
		c.tracking.ChangeMedRequestTracking(tracking.MedChange{
			OldMedication: change.OldMed,
			NewMedication: change.NewMed.Medication,
			TimeOfDay:     change.NewMed.TimeOfDay,
		})
	})
	if _, err := c.gateway.ChangeUserMedication(ctx, medId, userId, data); err != nil {
		message := errors.Message(err, msgChangeMedicationFailed)
		c.store.Update(func() {
			c.profile.ChangeMedFailure(message)
			c.tracking.ChangeMedFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.ChangeMedSuccess()
		c.tracking.ChangeMedSuccessTracking()
	})
	return nil
}

func (c *Profile) DisconnectMed(ctx context.Context, userId, medId int, medication string) error {
	c.store.Update(func() {
		c.profile.DisconnectFromMedRequest(medication)
		c.tracking.DisconnectFromMedRequestTracking(medication)
	})
	if _, err := c.gateway.DisconnectUserMedication(ctx, medId, userId); err != nil {
		message := errors.Message(err, msgDisconnectMedicationFailed)
		c.store.Update(func() {
			c.profile.DisconnectFromMedFailure(message)
			c.tracking.DisconnectFromMedFailureTracking(message)
		})
		return err
	}
	c.store.Update(func() {
		c.profile.DisconnectFromMedSuccess()
		c.tracking.DisconnectFromMedSuccessTracking()
	})
	return nil
}
