package repository

import (
	"fmt"
	"sort"
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) certificatesRef(userID string) *firestore.CollectionRef {
	return fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(userID).Collection(models.FirestoreCertificatesCollection)
}

// IssueCertificate creates a certificate for a completed course. Certificates
// are immutable: if one already exists for this (course, user) it is returned
// unchanged instead of issuing a duplicate.
func (fr *FirebaseRepository) IssueCertificate(c *models.IssueCertificateRequest) (*models.Certificate, error) {
	existing := fr.certificatesRef(c.UserID).Where("courseId", "==", c.CourseID).Limit(1).Documents(firebase.Context)
	doc, err := existing.Next()
	if err == nil {
		var cert models.Certificate
		if err := mapstructure.Decode(doc.Data(), &cert); err != nil {
			return nil, err
		}
		cert.ID = doc.Ref.ID
		return &cert, nil
	}
	if err != iterator.Done {
		return nil, err
	}

	now := time.Now()
	cert := &models.Certificate{
		CertificateID:  "CERT-" + uuid.New().String(),
		UserID:         c.UserID,
		CourseID:       c.CourseID,
		CourseTitle:    c.CourseTitle,
		UserName:       c.UserName,
		CompletionDate: now.Format("2006-01-02"),
		ChapterCount:   c.ChapterCount,
		IssuedAt:       now,
		Verified:       true,
	}

	ref, _, err := fr.certificatesRef(c.UserID).Add(firebase.Context, map[string]interface{}{
		"certificateId":  cert.CertificateID,
		"userId":         cert.UserID,
		"courseId":       cert.CourseID,
		"courseTitle":    cert.CourseTitle,
		"userName":       cert.UserName,
		"completionDate": cert.CompletionDate,
		"chapterCount":   cert.ChapterCount,
		"issuedAt":       cert.IssuedAt,
		"verified":       cert.Verified,
	})
	if err != nil {
		return nil, fmt.Errorf("error issuing certificate: %v", err)
	}

	cert.ID = ref.ID
	return cert, nil
}

// ListCertificates returns the user's certificates, newest first. The ordered
// query needs a Firestore index on issuedAt; if it fails, everything is
// fetched and sorted in memory instead.
func (fr *FirebaseRepository) ListCertificates(userID string) ([]*models.Certificate, error) {
	docs, err := fr.certificatesRef(userID).OrderBy("issuedAt", firestore.Desc).Documents(firebase.Context).GetAll()
	if err != nil {
		docs, err = fr.certificatesRef(userID).Documents(firebase.Context).GetAll()
		if err != nil {
			return nil, err
		}
	}

	certificates := make([]*models.Certificate, 0, len(docs))
	for _, doc := range docs {
		var cert models.Certificate
		if err := mapstructure.Decode(doc.Data(), &cert); err != nil {
			return nil, err
		}
		cert.ID = doc.Ref.ID
		certificates = append(certificates, &cert)
	}

	// Sort in memory as a safety net, in case the ordered query fell through.
	sort.SliceStable(certificates, func(i, j int) bool {
		return certificates[i].IssuedAt.After(certificates[j].IssuedAt)
	})

	return certificates, nil
}

// VerifyCertificate looks up a certificate by its public ID without knowing
// the owning user, by scanning per-user collections.
func (fr *FirebaseRepository) VerifyCertificate(certificateID string) (*models.PublicCertificate, error) {
	users := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Documents(firebase.Context)
	for {
		userDoc, err := users.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		certs := userDoc.Ref.Collection(models.FirestoreCertificatesCollection).
			Where("certificateId", "==", certificateID).Limit(1).Documents(firebase.Context)
		doc, err := certs.Next()
		if err == iterator.Done {
			continue
		}
		if err != nil {
			return nil, err
		}

		var cert models.Certificate
		if err := mapstructure.Decode(doc.Data(), &cert); err != nil {
			return nil, err
		}

		return &models.PublicCertificate{
			UserName:       cert.UserName,
			CourseTitle:    cert.CourseTitle,
			CompletionDate: cert.CompletionDate,
			ChapterCount:   cert.ChapterCount,
			Verified:       cert.Verified,
		}, nil
	}

	return nil, qerrors.CertificateNotFoundError
}
