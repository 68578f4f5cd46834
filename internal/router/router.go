package router

import (
	"net/http"

	"innovision/internal/qerrors"
)

// errorStatusCode maps repository errors onto HTTP status codes. Unknown
// errors are treated as internal.
func errorStatusCode(err error) int {
	switch err {
	case qerrors.CourseNotFoundError, qerrors.ChapterNotFoundError, qerrors.UserNotFoundError,
		qerrors.ReviewNotFoundError, qerrors.CertificateNotFoundError:
		return http.StatusNotFound
	case qerrors.CourseNotPublicError, qerrors.NotCourseOwnerError:
		return http.StatusForbidden
	case qerrors.UnauthorizedError:
		return http.StatusUnauthorized
	case qerrors.InvalidBody, qerrors.InvalidRatingError, qerrors.InvalidSortError:
		return http.StatusBadRequest
	case qerrors.DatabaseUnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errorStatusCode(err))
}
