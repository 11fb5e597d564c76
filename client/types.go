package client

// Wire types for the chronic backend. Field names follow the JSON the
// backend produces and consumes.

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type AuthResult struct {
	Token  string `json:"token"`
	UserId int    `json:"userId"`
}

type User struct {
	UserId      int              `json:"userId"`
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	IsAdmin     bool             `json:"isAdmin"`
	Since       string           `json:"since"`
	LastLogin   string           `json:"lastLogin"`
	Diagnoses   []UserDiagnosis  `json:"diagnoses"`
	Symptoms    []string         `json:"symptoms"`
	Medications []UserMedication `json:"medications"`
}

type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

type Diagnosis struct {
	DiagnosisId int    `json:"diagnosisId"`
	Diagnosis   string `json:"diagnosis"`
	Synonyms    string `json:"synonyms"`
}

type UserDiagnosis struct {
	DiagnosisId int      `json:"diagnosisId"`
	UserId      int      `json:"userId"`
	Diagnosis   string   `json:"diagnosis"`
	Keywords    []string `json:"keywords"`
}

// UserDiagnosisData creates or updates a user-diagnosis link. A diagnosisId
// of 0 in the path signals create-new; the name then travels in the body.
type UserDiagnosisData struct {
	Diagnosis string   `json:"diagnosis,omitempty"`
	Keywords  []string `json:"keywords"`
}

type Symptom struct {
	SymptomId int    `json:"symptomId"`
	Symptom   string `json:"symptom"`
}

type UserSymptom struct {
	SymptomId int    `json:"symptomId"`
	UserId    int    `json:"userId"`
	Symptom   string `json:"symptom"`
}

type UserSymptomData struct {
	Symptom string `json:"symptom,omitempty"`
}

type Medication struct {
	MedId      int    `json:"medId"`
	Medication string `json:"medication"`
}

type UserMedication struct {
	MedId      int      `json:"medId"`
	UserId     int      `json:"userId"`
	Medication string   `json:"medication"`
	DosageNum  float64  `json:"dosageNum"`
	DosageUnit string   `json:"dosageUnit"`
	TimeOfDay  []string `json:"timeOfDay"`
}

type UserMedicationData struct {
	Medication string   `json:"medication,omitempty"`
	DosageNum  float64  `json:"dosageNum"`
	DosageUnit string   `json:"dosageUnit"`
	TimeOfDay  []string `json:"timeOfDay"`
}

type SymptomTrackingData struct {
	SymptomId int    `json:"symptomId"`
	TrackDate string `json:"trackDate"`
	Timespan  string `json:"timespan"`
	Severity  int    `json:"severity"`
}

type SymptomTrackingRecord struct {
	SymtrackId int    `json:"symtrackId"`
	UserId     int    `json:"userId"`
	SymptomId  int    `json:"symptomId"`
	TrackDate  string `json:"trackDate"`
	Timespan   string `json:"timespan"`
	Severity   int    `json:"severity"`
}

type SeverityData struct {
	Severity int `json:"severity"`
}

type MedTrackingData struct {
	MedId     int    `json:"medId"`
	TrackDate string `json:"trackDate"`
	TimeOfDay string `json:"timeOfDay"`
	Number    int    `json:"number"`
}

type MedTrackingRecord struct {
	MedtrackId int    `json:"medtrackId"`
	UserId     int    `json:"userId"`
	MedId      int    `json:"medId"`
	TrackDate  string `json:"trackDate"`
	TimeOfDay  string `json:"timeOfDay"`
	Number     int    `json:"number"`
}

type NumberData struct {
	Number int `json:"number"`
}

// SymptomTrackingGrid and MedTrackingGrid are the display-shaped responses
// of the by-date endpoints: symptom → timespan → severity and
// time-of-day → medication → count, where a null count means scheduled but
// not yet taken.
type SymptomTrackingGrid map[string]map[string]int

type MedTrackingGrid map[string]map[string]*int

type Deleted struct {
	Deleted int `json:"deleted"`
}

type Disconnected struct {
	Disconnected []int `json:"disconnected"`
}

// DataQuery selects a time range of tracked items for charting.
type DataQuery struct {
	UserId    int
	StartDate string
	EndDate   string
	Items     []string
}

type SeverityPoint struct {
	Datetime string `json:"datetime"`
	Severity int    `json:"severity"`
}

type CountPoint struct {
	Datetime string `json:"datetime"`
	Number   int    `json:"number"`
}

type Article struct {
	ArticleId int    `json:"articleId"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Journal   string `json:"journal"`
	Date      string `json:"date"`
	Url       string `json:"url"`
}
