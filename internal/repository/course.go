package repository

import (
	"fmt"
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) roadmapsRef(ownerID string) *firestore.CollectionRef {
	return fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(ownerID).Collection(models.FirestoreRoadmapsCollection)
}

func (fr *FirebaseRepository) CreateCourse(c *models.CreateCourseRequest) (course *models.Course, err error) {
	if c.Title == "" {
		return nil, qerrors.InvalidBody
	}

	course = &models.Course{
		Title:       c.Title,
		Description: c.Description,
		Chapters:    c.Chapters,
		Difficulty:  c.Difficulty,
		IsPublic:    false,
		Completed:   false,
		CreatedBy:   c.CreatedBy.ID,
		CreatedAt:   time.Now(),
	}
	if course.Difficulty == "" {
		course.Difficulty = "balanced"
	}
	if course.Chapters == nil {
		course.Chapters = []models.CourseChapter{}
	}

	ref, _, err := fr.roadmapsRef(c.CreatedBy.ID).Add(firebase.Context, map[string]interface{}{
		"courseTitle":       course.Title,
		"courseDescription": course.Description,
		"chapters":          course.Chapters,
		"difficulty":        course.Difficulty,
		"isPublic":          course.IsPublic,
		"completed":         course.Completed,
		"shareCount":        0,
		"createdBy":         course.CreatedBy,
		"createdAt":         course.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating course: %v", err)
	}

	course.ID = ref.ID
	return course, nil
}

func (fr *FirebaseRepository) GetCourse(c *models.GetCourseRequest) (*models.Course, error) {
	doc, err := fr.roadmapsRef(c.OwnerID).Doc(c.CourseID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return nil, qerrors.CourseNotFoundError
		}
		return nil, err
	}

	var course models.Course
	if err := mapstructure.Decode(doc.Data(), &course); err != nil {
		return nil, err
	}
	course.ID = doc.Ref.ID
	course.CreatedBy = c.OwnerID

	return &course, nil
}

// DeleteCourse removes an owned course and its published mirror. Deleting a
// mirror that does not exist is a no-op.
func (fr *FirebaseRepository) DeleteCourse(c *models.DeleteCourseRequest) error {
	if _, err := fr.GetCourse(&models.GetCourseRequest{CourseID: c.CourseID, OwnerID: c.OwnerID}); err != nil {
		return err
	}

	if _, err := fr.roadmapsRef(c.OwnerID).Doc(c.CourseID).Delete(firebase.Context); err != nil {
		return err
	}

	_, err := fr.firestoreClient.Collection(models.FirestorePublishedCoursesCollection).Doc(c.CourseID).Delete(firebase.Context)
	return err
}

// SetCourseVisibility updates isPublic on the owned course and reconciles the
// published mirror: upsert (merge) when going public, delete when going
// private. The mirror is keyed by the same document ID as the owned course.
func (fr *FirebaseRepository) SetCourseVisibility(c *models.SetCourseVisibilityRequest) error {
	course, err := fr.GetCourse(&models.GetCourseRequest{CourseID: c.CourseID, OwnerID: c.Owner.ID})
	if err != nil {
		return err
	}

	_, err = fr.roadmapsRef(c.Owner.ID).Doc(c.CourseID).Update(firebase.Context, []firestore.Update{
		{
			Path:  "isPublic",
			Value: c.IsPublic,
		},
		{
			Path:  "updatedAt",
			Value: time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("error updating course visibility: %v", err)
	}

	publishedRef := fr.firestoreClient.Collection(models.FirestorePublishedCoursesCollection).Doc(c.CourseID)

	if c.IsPublic {
		_, err = publishedRef.Set(firebase.Context, map[string]interface{}{
			"courseTitle":       course.Title,
			"courseDescription": course.Description,
			"chapters":          course.Chapters,
			"difficulty":        course.Difficulty,
			"createdBy":         c.Owner.ID,
			"authorName":        c.Owner.DisplayName,
			"authorImage":       c.Owner.PhotoURL,
			"status":            "published",
			"publishedAt":       time.Now(),
		}, firestore.MergeAll)
		return err
	}

	_, err = publishedRef.Delete(firebase.Context)
	return err
}

// PublishCourse writes a course directly into the global published collection
// and returns the new document ID.
func (fr *FirebaseRepository) PublishCourse(c *models.PublishCourseRequest) (string, error) {
	if c.Title == "" {
		return "", qerrors.InvalidBody
	}

	chapters := c.Chapters
	if chapters == nil {
		chapters = []models.CourseChapter{}
	}

	ref, _, err := fr.firestoreClient.Collection(models.FirestorePublishedCoursesCollection).Add(firebase.Context, map[string]interface{}{
		"courseTitle":       c.Title,
		"courseDescription": c.Description,
		"chapters":          chapters,
		"difficulty":        c.Difficulty,
		"createdBy":         c.CreatedBy.ID,
		"authorName":        c.CreatedBy.DisplayName,
		"authorImage":       c.CreatedBy.PhotoURL,
		"status":            "published",
		"publishedAt":       time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("error publishing course: %v", err)
	}

	return ref.ID, nil
}

// GetPublicCourse resolves a public course ID. The published mirror is checked
// first; only when it is absent does the lookup fall back to scanning every
// user's owned collection, which supports legacy records created before the
// mirror existed.
func (fr *FirebaseRepository) GetPublicCourse(courseID string) (*models.PublishedCourse, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestorePublishedCoursesCollection).Doc(courseID).Get(firebase.Context)
	if err == nil {
		var course models.PublishedCourse
		if err := mapstructure.Decode(doc.Data(), &course); err != nil {
			return nil, err
		}
		course.ID = doc.Ref.ID
		return &course, nil
	}
	if !notFound(err) {
		return nil, err
	}

	return fr.scanForPublicCourse(courseID)
}

// scanForPublicCourse walks every user's owned collection looking for the
// course ID. Full scan, fallback path only.
func (fr *FirebaseRepository) scanForPublicCourse(courseID string) (*models.PublishedCourse, error) {
	users := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Documents(firebase.Context)
	for {
		userDoc, err := users.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		courseDoc, err := userDoc.Ref.Collection(models.FirestoreRoadmapsCollection).Doc(courseID).Get(firebase.Context)
		if err != nil {
			if notFound(err) {
				continue
			}
			return nil, err
		}

		var course models.Course
		if err := mapstructure.Decode(courseDoc.Data(), &course); err != nil {
			return nil, err
		}

		if !course.IsPublic {
			return nil, qerrors.CourseNotPublicError
		}

		return &models.PublishedCourse{
			ID:          courseDoc.Ref.ID,
			Title:       course.Title,
			Description: course.Description,
			Chapters:    course.Chapters,
			Difficulty:  course.Difficulty,
			CreatedBy:   userDoc.Ref.ID,
			Status:      "published",
			PublishedAt: course.CreatedAt,
		}, nil
	}

	return nil, qerrors.CourseNotFoundError
}

// FirstIncompleteRoadmap returns an arbitrary owned course that is not yet
// completed, or nil when every owned course is done.
func (fr *FirebaseRepository) FirstIncompleteRoadmap(userID string) (*models.Course, error) {
	iter := fr.roadmapsRef(userID).Where("completed", "==", false).Limit(1).Documents(firebase.Context)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := mapstructure.Decode(doc.Data(), &course); err != nil {
		return nil, err
	}
	course.ID = doc.Ref.ID
	course.CreatedBy = userID

	return &course, nil
}

// FirstIncompleteYouTubeCourse returns an arbitrary external-platform course
// with progress below 100, or nil when there is none.
func (fr *FirebaseRepository) FirstIncompleteYouTubeCourse(userID string) (*models.YouTubeCourse, error) {
	iter := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(userID).
		Collection(models.FirestoreYouTubeCoursesCollection).
		Where("progress", "<", 100).Limit(1).Documents(firebase.Context)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var course models.YouTubeCourse
	if err := mapstructure.Decode(doc.Data(), &course); err != nil {
		return nil, err
	}
	course.ID = doc.Ref.ID

	return &course, nil
}
