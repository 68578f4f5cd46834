package models

import "time"

const (
	FirestoreCertificatesCollection = "certificates"
)

// Certificate is immutable once issued. CertificateID is globally unique and
// used for public verification independent of the owning user.
type Certificate struct {
	ID             string    `json:"id" mapstructure:"id"`
	CertificateID  string    `json:"certificateId" mapstructure:"certificateId"`
	UserID         string    `json:"userId" mapstructure:"userId"`
	CourseID       string    `json:"courseId" mapstructure:"courseId"`
	CourseTitle    string    `json:"courseTitle" mapstructure:"courseTitle"`
	UserName       string    `json:"userName" mapstructure:"userName"`
	CompletionDate string    `json:"completionDate" mapstructure:"completionDate"`
	ChapterCount   int       `json:"chapterCount" mapstructure:"chapterCount"`
	IssuedAt       time.Time `json:"issuedAt" mapstructure:"issuedAt"`
	Verified       bool      `json:"verified" mapstructure:"verified"`
}

// PublicCertificate is the subset of certificate fields exposed by public
// verification.
type PublicCertificate struct {
	UserName       string `json:"userName"`
	CourseTitle    string `json:"courseTitle"`
	CompletionDate string `json:"completionDate"`
	ChapterCount   int    `json:"chapterCount"`
	Verified       bool   `json:"verified"`
}

// IssueCertificateRequest is the parameter struct for the IssueCertificate function.
type IssueCertificateRequest struct {
	UserID       string `json:",omitempty"`
	UserName     string `json:",omitempty"`
	CourseID     string `json:"courseId"`
	CourseTitle  string `json:"courseTitle"`
	ChapterCount int    `json:"chapterCount"`
}
