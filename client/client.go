// Package client is the HTTP gateway to the chronic backend. It owns the
// auth token for the session and normalizes every failure to a single
// DomainError before it reaches a coordinator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/chronic-org/chronic/config"
	"github.com/chronic-org/chronic/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Client struct {
	http    *http.Client
	baseUrl string
	logger  *zap.SugaredLogger

	mu    sync.RWMutex
	token string
}

func NewClient(cfg *config.Config, logger *zap.SugaredLogger) (*Client, error) {
	if cfg.GatewayUrl == "" {
		return nil, fmt.Errorf("gateway url is required")
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.GatewayTimeout},
		baseUrl: cfg.GatewayUrl,
		logger:  logger,
	}, nil
}

// errorEnvelope is the backend's failure shape. The message may be a plain
// string or an array of strings.
type errorEnvelope struct {
	Error struct {
		Message interface{} `json:"message"`
	} `json:"error"`
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.baseUrl + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Normalize(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Normalize(err)
	}
	requestId := uuid.NewString()
	req.Header.Set("X-Request-Id", requestId)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	c.logger.Debugw("gateway call", "method", method, "path", path, "requestId", requestId)
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Normalize(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Normalize(err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != nil {
			return errors.Normalize(envelope.Error.Message)
		}
		return errors.NewDomainError(res.Status)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Normalize(err)
		}
	}
	return nil
}

// Token management. The token is an in-memory session field; it is cleared
// to the empty string on logout, which is distinguishable from the unset
// state only by convention.

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

// Auth

// Ready probes the backend, which sleeps between requests on free hosting.
func (c *Client) Ready(ctx context.Context) error {
	return c.request(ctx, http.MethodGet, "auth/ready", nil, nil, nil)
}

func (c *Client) Signin(ctx context.Context, data SigninRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.request(ctx, http.MethodPost, "auth/signin", nil, data, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

func (c *Client) Register(ctx context.Context, data RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.request(ctx, http.MethodPost, "auth/register", nil, data, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Users

func (c *Client) GetUser(ctx context.Context, userId int) (*User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("users/%d", userId), nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

func (c *Client) EditUser(ctx context.Context, userId int, data UserUpdate) (*User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := c.request(ctx, http.MethodPatch, fmt.Sprintf("users/%d", userId), nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, userId int) (*Deleted, error) {
	var result Deleted
	if err := c.request(ctx, http.MethodDelete, fmt.Sprintf("users/%d", userId), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Diagnoses

func (c *Client) GetAllDiagnoses(ctx context.Context) ([]Diagnosis, error) {
	var envelope struct {
		Diagnoses []Diagnosis `json:"diagnoses"`
	}
	if err := c.request(ctx, http.MethodGet, "diagnoses", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Diagnoses, nil
}

// ConnectUserDiagnosis links a user to a diagnosis, creating the diagnosis
// when diagnosisId is 0.
func (c *Client) ConnectUserDiagnosis(ctx context.Context, diagnosisId, userId int, data UserDiagnosisData) (*UserDiagnosis, error) {
	var envelope struct {
		UserDiagnosis UserDiagnosis `json:"userDiagnosis"`
	}
	path := fmt.Sprintf("diagnoses/%d/users/%d", diagnosisId, userId)
	if err := c.request(ctx, http.MethodPost, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserDiagnosis, nil
}

func (c *Client) UpdateUserDiagnosis(ctx context.Context, diagnosisId, userId int, data UserDiagnosisData) (*UserDiagnosis, error) {
	var envelope struct {
		UserDiagnosis UserDiagnosis `json:"userDiagnosis"`
	}
	path := fmt.Sprintf("diagnoses/%d/users/%d", diagnosisId, userId)
	if err := c.request(ctx, http.MethodPatch, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserDiagnosis, nil
}

func (c *Client) DisconnectUserDiagnosis(ctx context.Context, diagnosisId, userId int) (*Disconnected, error) {
	var result Disconnected
	path := fmt.Sprintf("diagnoses/%d/users/%d", diagnosisId, userId)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Symptoms

func (c *Client) GetAllSymptoms(ctx context.Context) ([]Symptom, error) {
	var envelope struct {
		Symptoms []Symptom `json:"symptoms"`
	}
	if err := c.request(ctx, http.MethodGet, "symptoms", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Symptoms, nil
}

// ConnectUserSymptom links a user to a symptom, creating the symptom when
// symptomId is 0.
func (c *Client) ConnectUserSymptom(ctx context.Context, symptomId, userId int, data UserSymptomData) (*UserSymptom, error) {
	var envelope struct {
		UserSymptom UserSymptom `json:"userSymptom"`
	}
	path := fmt.Sprintf("symptoms/%d/users/%d", symptomId, userId)
	if err := c.request(ctx, http.MethodPost, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserSymptom, nil
}

func (c *Client) ChangeUserSymptom(ctx context.Context, symptomId, userId int, data UserSymptomData) (*UserSymptom, error) {
	var envelope struct {
		UserSymptom UserSymptom `json:"userSymptom"`
	}
	path := fmt.Sprintf("symptoms/%d/users/%d", symptomId, userId)
	if err := c.request(ctx, http.MethodPatch, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserSymptom, nil
}

func (c *Client) DisconnectUserSymptom(ctx context.Context, symptomId, userId int) (*Disconnected, error) {
	var result Disconnected
	path := fmt.Sprintf("symptoms/%d/users/%d", symptomId, userId)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Symptom tracking records

func (c *Client) CreateSymptomTrackingRecord(ctx context.Context, userId int, data SymptomTrackingData) (*SymptomTrackingRecord, error) {
	var envelope struct {
		TrackingRecord SymptomTrackingRecord `json:"trackingRecord"`
	}
	path := fmt.Sprintf("symptoms/users/%d/tracking", userId)
	if err := c.request(ctx, http.MethodPost, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.TrackingRecord, nil
}

// GetSymptomTrackingRecords returns one day of records shaped for display.
func (c *Client) GetSymptomTrackingRecords(ctx context.Context, userId int, date string) (SymptomTrackingGrid, error) {
	var envelope struct {
		TrackingRecords SymptomTrackingGrid `json:"trackingRecords"`
	}
	path := fmt.Sprintf("symptoms/users/%d/trackingbydate/%s", userId, date)
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.TrackingRecords, nil
}

func (c *Client) UpdateSeverityLevel(ctx context.Context, userId, symtrackId int, data SeverityData) (*SymptomTrackingRecord, error) {
	var envelope struct {
		TrackingRecord SymptomTrackingRecord `json:"trackingRecord"`
	}
	path := fmt.Sprintf("symptoms/users/%d/tracking/%d", userId, symtrackId)
	if err := c.request(ctx, http.MethodPatch, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.TrackingRecord, nil
}

func (c *Client) DeleteSymptomTrackingRecord(ctx context.Context, userId, symtrackId int) (*Deleted, error) {
	var result Deleted
	path := fmt.Sprintf("symptoms/users/%d/tracking/%d", userId, symtrackId)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSymptomTrackingDate removes an entire day of symptom records.
func (c *Client) DeleteSymptomTrackingDate(ctx context.Context, userId int, date string) (*Deleted, error) {
	var result Deleted
	path := fmt.Sprintf("symptoms/users/%d/trackingbydate/%s", userId, date)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Medications

func (c *Client) GetAllMeds(ctx context.Context) ([]Medication, error) {
	var envelope struct {
		Medications []Medication `json:"medications"`
	}
	if err := c.request(ctx, http.MethodGet, "meds", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Medications, nil
}

// ConnectUserMedication links a user to a medication with its protocol,
// creating the medication when medId is 0.
func (c *Client) ConnectUserMedication(ctx context.Context, medId, userId int, data UserMedicationData) (*UserMedication, error) {
	var envelope struct {
		UserMedication UserMedication `json:"userMedication"`
	}
	path := fmt.Sprintf("meds/%d/users/%d", medId, userId)
	if err := c.request(ctx, http.MethodPost, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserMedication, nil
}

func (c *Client) ChangeUserMedication(ctx context.Context, medId, userId int, data UserMedicationData) (*UserMedication, error) {
	var envelope struct {
		UserMedication UserMedication `json:"userMedication"`
	}
	path := fmt.Sprintf("meds/%d/users/%d", medId, userId)
	if err := c.request(ctx, http.MethodPatch, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.UserMedication, nil
}

func (c *Client) DisconnectUserMedication(ctx context.Context, medId, userId int) (*Disconnected, error) {
	var result Disconnected
	path := fmt.Sprintf("meds/%d/users/%d", medId, userId)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Medication tracking records

func (c *Client) CreateMedTrackingRecord(ctx context.Context, userId int, data MedTrackingData) (*MedTrackingRecord, error) {
	var envelope struct {
		TrackingRecord MedTrackingRecord `json:"trackingRecord"`
	}
	path := fmt.Sprintf("meds/users/%d/tracking", userId)
	if err := c.request(ctx, http.MethodPost, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.TrackingRecord, nil
}

func (c *Client) GetMedTrackingRecords(ctx context.Context, userId int, date string) (MedTrackingGrid, error) {
	var envelope struct {
		TrackingRecords MedTrackingGrid `json:"trackingRecords"`
	}
	path := fmt.Sprintf("meds/users/%d/trackingbydate/%s", userId, date)
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.TrackingRecords, nil
}

func (c *Client) UpdateNumber(ctx context.Context, userId, medtrackId int, data NumberData) (*MedTrackingRecord, error) {
	var envelope struct {
		TrackingRecord MedTrackingRecord `json:"trackingRecord"`
	}
	path := fmt.Sprintf("meds/users/%d/tracking/%d", userId, medtrackId)
	if err := c.request(ctx, http.MethodPatch, path, nil, data, &envelope); err != nil {
		return nil, err
	}
	return &envelope.TrackingRecord, nil
}

func (c *Client) DeleteMedTrackingRecord(ctx context.Context, userId, medtrackId int) (*Deleted, error) {
	var result Deleted
	path := fmt.Sprintf("meds/users/%d/tracking/%d", userId, medtrackId)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteMedTrackingDate removes an entire day of medication records.
func (c *Client) DeleteMedTrackingDate(ctx context.Context, userId int, date string) (*Deleted, error) {
	var result Deleted
	path := fmt.Sprintf("meds/users/%d/trackingbydate/%s", userId, date)
	if err := c.request(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Aggregated chart data

func (c *Client) GetSymptomData(ctx context.Context, q DataQuery) (map[string][]SeverityPoint, error) {
	var envelope struct {
		Dataset map[string][]SeverityPoint `json:"dataset"`
	}
	if err := c.request(ctx, http.MethodGet, "data/symptoms", dataQueryValues(q, "symptoms"), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Dataset, nil
}

func (c *Client) GetMedData(ctx context.Context, q DataQuery) (map[string][]CountPoint, error) {
	var envelope struct {
		Dataset map[string][]CountPoint `json:"dataset"`
	}
	if err := c.request(ctx, http.MethodGet, "data/meds", dataQueryValues(q, "meds"), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Dataset, nil
}

// Awareness feed: two-stage lookup, keywords to ids and ids to details.

func (c *Client) GetArticleIds(ctx context.Context, keywords []string) ([]int, error) {
	query := url.Values{}
	for _, keyword := range keywords {
		query.Add("keywords", keyword)
	}
	var envelope struct {
		ArticleIds []int `json:"articleIds"`
	}
	if err := c.request(ctx, http.MethodGet, "latest/articleIds", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.ArticleIds, nil
}

func (c *Client) GetArticles(ctx context.Context, articleIds []int) ([]Article, error) {
	query := url.Values{}
	for _, id := range articleIds {
		query.Add("articleIds", strconv.Itoa(id))
	}
	var envelope struct {
		Articles []Article `json:"articles"`
	}
	if err := c.request(ctx, http.MethodGet, "latest/articles", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Articles, nil
}

func dataQueryValues(q DataQuery, itemsKey string) url.Values {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(q.UserId))
	query.Set("startDate", q.StartDate)
	query.Set("endDate", q.EndDate)
	for _, item := range q.Items {
		query.Add(itemsKey, item)
	}
	return query
}
