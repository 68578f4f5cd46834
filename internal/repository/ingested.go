package repository

import (
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) ingestedCourseRef(courseID string) *firestore.DocumentRef {
	return fr.firestoreClient.Collection(models.FirestoreIngestedCoursesCollection).Doc(courseID)
}

func (fr *FirebaseRepository) GetIngestedCourse(courseID string) (*models.IngestedCourse, error) {
	doc, err := fr.ingestedCourseRef(courseID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return nil, qerrors.CourseNotFoundError
		}
		return nil, err
	}

	var course models.IngestedCourse
	if err := mapstructure.Decode(doc.Data(), &course); err != nil {
		return nil, err
	}
	course.ID = doc.Ref.ID

	return &course, nil
}

// GetChapters returns the course's chapters in stable ascending order.
func (fr *FirebaseRepository) GetChapters(courseID string) ([]*models.Chapter, error) {
	iter := fr.ingestedCourseRef(courseID).Collection(models.FirestoreChaptersCollection).
		OrderBy("order", firestore.Asc).Documents(firebase.Context)

	var chapters []*models.Chapter
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var chapter models.Chapter
		if err := mapstructure.Decode(doc.Data(), &chapter); err != nil {
			return nil, err
		}
		chapter.ID = doc.Ref.ID
		chapters = append(chapters, &chapter)
	}

	return chapters, nil
}

func (fr *FirebaseRepository) GetChapter(courseID string, chapterID string) (*models.Chapter, error) {
	doc, err := fr.ingestedCourseRef(courseID).Collection(models.FirestoreChaptersCollection).Doc(chapterID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return nil, qerrors.ChapterNotFoundError
		}
		return nil, err
	}

	var chapter models.Chapter
	if err := mapstructure.Decode(doc.Data(), &chapter); err != nil {
		return nil, err
	}
	chapter.ID = doc.Ref.ID

	return &chapter, nil
}

// GetProgress returns the per-user progress record for a course. A missing
// record is not an error: the zero-value default is returned instead.
func (fr *FirebaseRepository) GetProgress(courseID string, userID string) (*models.Progress, error) {
	doc, err := fr.ingestedCourseRef(courseID).Collection(models.FirestoreProgressCollection).Doc(userID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return &models.Progress{CompletedChapters: []int{}}, nil
		}
		return nil, err
	}

	var progress models.Progress
	if err := mapstructure.Decode(doc.Data(), &progress); err != nil {
		return nil, err
	}
	if progress.CompletedChapters == nil {
		progress.CompletedChapters = []int{}
	}

	return &progress, nil
}

// SetChapterCompletion toggles a chapter in the user's completed set and
// recomputes the stored percentage from the course's chapter count. Marking
// an already-completed chapter completed again is a no-op. The returned bool
// reports whether this write moved the course to 100%.
func (fr *FirebaseRepository) SetChapterCompletion(c *models.SetChapterCompletionRequest) (*models.Progress, bool, error) {
	if _, err := fr.GetIngestedCourse(c.CourseID); err != nil {
		return nil, false, err
	}

	progress, err := fr.GetProgress(c.CourseID, c.UserID)
	if err != nil {
		return nil, false, err
	}
	wasComplete := progress.Progress >= 100

	chapterDocs, err := fr.ingestedCourseRef(c.CourseID).Collection(models.FirestoreChaptersCollection).Documents(firebase.Context).GetAll()
	if err != nil {
		return nil, false, err
	}

	progress.SetChapter(c.ChapterNumber, c.Completed)
	progress.Progress = progress.Percentage(len(chapterDocs))
	progress.UpdatedAt = time.Now()

	_, err = fr.ingestedCourseRef(c.CourseID).Collection(models.FirestoreProgressCollection).Doc(c.UserID).Set(firebase.Context, map[string]interface{}{
		"progress":          progress.Progress,
		"completedChapters": progress.CompletedChapters,
		"updatedAt":         progress.UpdatedAt,
	}, firestore.MergeAll)
	if err != nil {
		return nil, false, err
	}

	justCompleted := !wasComplete && progress.Progress >= 100
	return progress, justCompleted, nil
}

// IngestedCoursesByUser returns up to limit of the user's ingested courses.
func (fr *FirebaseRepository) IngestedCoursesByUser(userID string, limit int) ([]*models.IngestedCourse, error) {
	iter := fr.firestoreClient.Collection(models.FirestoreIngestedCoursesCollection).
		Where("userId", "==", userID).Limit(limit).Documents(firebase.Context)

	var courses []*models.IngestedCourse
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var course models.IngestedCourse
		if err := mapstructure.Decode(doc.Data(), &course); err != nil {
			return nil, err
		}
		course.ID = doc.Ref.ID
		courses = append(courses, &course)
	}

	return courses, nil
}
